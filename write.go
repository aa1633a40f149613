package dem

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
)

// WriteTo writes g's samples to w as little-endian int16s in row-major order.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriterSize(w, 1<<16)
	rowData := make([]byte, sampleSize*g.cols)
	var written int64
	for r := range g.rows {
		encodeSamples(rowData, g.Row(r))
		n, err := bw.Write(rowData)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	if err := bw.Flush(); err != nil {
		return written, err
	}
	samplesWritten.Add(float64(g.Len()))
	return written, nil
}

// Write writes g to the .dem file at path, replacing any existing file. The
// grid is written to a temporary file in the same directory which is renamed
// to path only once it is complete. A replaced file keeps its permissions,
// otherwise the new file's permissions are 0o666 less the umask. Errors are
// *fs.PathErrors for path.
func Write(path string, g *Grid) error {
	return writeFileAtomic(path, g)
}

func writeFileAtomic(path string, wt io.WriterTo) error {
	if err := writeTempAndRename(path, wt); err != nil {
		return &fs.PathError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func writeTempAndRename(path string, wt io.WriterTo) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	perm, keepPerm := fs.FileMode(0o666), false
	if fileInfo, err := os.Stat(path); err == nil {
		perm, keepPerm = fileInfo.Mode().Perm(), true
	}

	tmp, err := createTemp(dir, base, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = wt.WriteTo(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	// The umask applies to the temporary file's mode on creation.
	if keepPerm {
		if err = os.Chmod(tmp.Name(), perm); err != nil {
			return err
		}
	}
	return os.Rename(tmp.Name(), path)
}

// createTemp creates a new file in dir with a name derived from base and
// permissions perm, subject to the umask. os.CreateTemp always uses 0o600.
func createTemp(dir, base string, perm fs.FileMode) (*os.File, error) {
	for range 100 {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(rand.Uint64(), 36)+".tmp")
		file, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
		if !errors.Is(err, fs.ErrExist) {
			return file, err
		}
	}
	return nil, &fs.PathError{Op: "createtemp", Path: filepath.Join(dir, "."+base+".*.tmp"), Err: fs.ErrExist}
}

// encodeSamples encodes samples into data as little-endian int16s.
func encodeSamples(data []byte, samples []int16) {
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(data[i*sampleSize:(i+1)*sampleSize], uint16(sample))
	}
}

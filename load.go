package dem

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Load reads a rows x cols grid from the .dem file at path.
func Load(path string, rows, cols int) (*Grid, error) {
	return load(path, rows, cols, defaultMaxSamples)
}

func load(path string, rows, cols, maxSamples int) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readGrid(file, path, rows, cols, maxSamples)
}

// LoadFS reads a rows x cols grid from the .dem file name in fsys.
func LoadFS(fsys fs.FS, name string, rows, cols int) (*Grid, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readGrid(file, name, rows, cols, defaultMaxSamples)
}

// ReadGrid reads a rows x cols grid of little-endian int16 samples in
// row-major order from r. Any data after the last sample is not read.
func ReadGrid(r io.Reader, rows, cols int) (*Grid, error) {
	return readGrid(r, "", rows, cols, defaultMaxSamples)
}

func readGrid(r io.Reader, path string, rows, cols, maxSamples int) (*Grid, error) {
	g, err := newGrid(rows, cols, maxSamples)
	if err != nil {
		return nil, err
	}

	// Decode one row at a time to avoid holding a second copy of the grid as
	// bytes.
	br := bufio.NewReaderSize(r, 1<<16)
	rowData := make([]byte, sampleSize*cols)
	for row := range rows {
		switch n, err := io.ReadFull(br, rowData); {
		case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
			return nil, &TruncatedInputError{
				Path:     path,
				Expected: int64(sampleSize) * int64(rows) * int64(cols),
				Actual:   int64(len(rowData))*int64(row) + int64(n),
			}
		case err != nil && path != "":
			return nil, fmt.Errorf("%s: %w", path, err)
		case err != nil:
			return nil, err
		}
		decodeSamples(g.Row(row), rowData)
	}
	samplesRead.Add(float64(g.Len()))
	return g, nil
}

// decodeSamples decodes little-endian int16 samples from data into samples.
func decodeSamples(samples []int16, data []byte) {
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*sampleSize : (i+1)*sampleSize]))
	}
}

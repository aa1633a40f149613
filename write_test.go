package dem_test

import (
	"bytes"
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-dem"
)

func TestGridWriteTo(t *testing.T) {
	grid := newGrid(t, [][]int16{{1, -1}, {-32768, 32767}})
	var buffer bytes.Buffer
	n, err := grid.WriteTo(&buffer)
	assert.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, []byte{0x01, 0x00, 0xff, 0xff, 0x00, 0x80, 0xff, 0x7f}, buffer.Bytes())
}

func TestWriteLoadRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(0, 0))
	grid := newRandomGrid(t, r, 5, 7)
	up, err := dem.Upsample(grid, 3)
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "elevation.dem")
	assert.NoError(t, dem.Write(path, up))

	var expected bytes.Buffer
	_, err = up.WriteTo(&expected)
	assert.NoError(t, err)
	actualBytes, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, expected.Bytes(), actualBytes)

	actual, err := dem.Load(path, up.Rows(), up.Cols())
	assert.NoError(t, err)
	assert.Equal(t, up, actual)
}

func TestWriteReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elevation.dem")
	assert.NoError(t, os.WriteFile(path, make([]byte, 1024), 0o666))

	grid := newGrid(t, [][]int16{{1, 2}})
	assert.NoError(t, dem.Write(path, grid))

	actual, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0x02, 0x00}, actual)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(entries))
}

func TestWriteMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "elevation.dem")
	err := dem.Write(path, newGrid(t, [][]int16{{1}}))
	assert.IsError(t, err, fs.ErrNotExist)
}

func TestWritePermissions(t *testing.T) {
	dir := t.TempDir()
	grid := newGrid(t, [][]int16{{1, 2}})

	// New files get the same permissions as os.Create, which applies the
	// umask to 0o666.
	reference := filepath.Join(dir, "reference")
	file, err := os.Create(reference)
	assert.NoError(t, err)
	assert.NoError(t, file.Close())
	expected, err := os.Stat(reference)
	assert.NoError(t, err)

	path := filepath.Join(dir, "new.dem")
	assert.NoError(t, dem.Write(path, grid))
	actual, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, expected.Mode().Perm(), actual.Mode().Perm())

	// Replaced files keep their permissions.
	existing := filepath.Join(dir, "existing.dem")
	assert.NoError(t, os.WriteFile(existing, nil, 0o600))
	assert.NoError(t, os.Chmod(existing, 0o640))
	assert.NoError(t, dem.Write(existing, grid))
	actual, err = os.Stat(existing)
	assert.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o640), actual.Mode().Perm())
}

func TestWriteErrorPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "elevation.dem")
	err := dem.Write(path, newGrid(t, [][]int16{{1}}))
	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr))
	assert.Equal(t, "write", pathErr.Op)
	assert.Equal(t, path, pathErr.Path)
}

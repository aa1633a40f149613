package dem

import (
	"context"
	"fmt"
	"math"
)

// sampleSize is the size of a sample in bytes.
const sampleSize = 2

// defaultMaxSamples is the largest grid that NewGrid will allocate, 2G
// samples or 4GB.
const defaultMaxSamples = math.MaxInt32

// A Grid is a rectangular grid of elevation samples stored in row-major order.
type Grid struct {
	rows    int
	cols    int
	samples []int16
}

// NewGrid returns a new zeroed Grid with the given dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	return newGrid(rows, cols, defaultMaxSamples)
}

func newGrid(rows, cols, maxSamples int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d", ErrInvalidArgument, rows, cols)
	}
	if rows > math.MaxInt/cols || rows*cols > maxSamples {
		return nil, fmt.Errorf("%w: %dx%d grid exceeds %d samples", ErrOutOfMemory, rows, cols, maxSamples)
	}
	return &Grid{
		rows:    rows,
		cols:    cols,
		samples: make([]int16, rows*cols),
	}, nil
}

// NewGridFromRows returns a new Grid containing a copy of rows. All rows must
// have the same length.
func NewGridFromRows(rows [][]int16) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidArgument)
	}
	g, err := NewGrid(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidArgument, r, len(row), g.cols)
		}
		copy(g.samples[r*g.cols:(r+1)*g.cols], row)
	}
	return g, nil
}

// Rows returns the number of rows in g.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in g.
func (g *Grid) Cols() int {
	return g.cols
}

// Len returns the number of samples in g.
func (g *Grid) Len() int {
	return len(g.samples)
}

// Data returns g's samples in row-major order. The returned slice aliases g.
func (g *Grid) Data() []int16 {
	return g.samples
}

// At returns the sample at row r and column c.
func (g *Grid) At(r, c int) int16 {
	return g.samples[g.index(r, c)]
}

// Set sets the sample at row r and column c to v.
func (g *Grid) Set(r, c int, v int16) {
	g.samples[g.index(r, c)] = v
}

// Row returns row r of g. The returned slice aliases g.
func (g *Grid) Row(r int) []int16 {
	i := g.index(r, 0)
	return g.samples[i : i+g.cols]
}

// Scale returns g's scale. Grid coordinates are pixels.
func (g *Grid) Scale() (int, int) {
	return 1, 1
}

// Samples returns the samples at coords, where X is the column and Y is the
// row. Samples outside g are NaN.
func (g *Grid) Samples(ctx context.Context, coords []Coord) ([]float64, error) {
	samples := make([]float64, len(coords))
	for i, coord := range coords {
		if !g.contains(coord.Y, coord.X) {
			samples[i] = math.NaN()
			continue
		}
		samples[i] = float64(g.samples[coord.Y*g.cols+coord.X])
	}
	return samples, nil
}

func (g *Grid) contains(r, c int) bool {
	return 0 <= r && r < g.rows && 0 <= c && c < g.cols
}

func (g *Grid) index(r, c int) int {
	if !g.contains(r, c) {
		panic(fmt.Sprintf("dem: index (%d, %d) out of range for %dx%d grid", r, c, g.rows, g.cols))
	}
	return r*g.cols + c
}

package dem_test

import (
	"context"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-dem"
)

type testRaster struct {
	scaleX  int
	scaleY  int
	samples [][]float64
}

func (t *testRaster) Samples(ctx context.Context, coords []dem.Coord) ([]float64, error) {
	samples := make([]float64, len(coords))
	for i, coord := range coords {
		r, c := coord.Y/t.scaleY, coord.X/t.scaleX
		if r < 0 || len(t.samples) <= r || c < 0 || len(t.samples[r]) <= c {
			samples[i] = math.NaN()
			continue
		}
		samples[i] = t.samples[r][c]
	}
	return samples, nil
}

func (t *testRaster) Scale() (int, int) {
	return t.scaleX, t.scaleY
}

func TestInterpolateBilinear(t *testing.T) {
	simpleRaster := &testRaster{
		scaleX: 10,
		scaleY: 10,
		samples: [][]float64{
			{0, 1, 2},
			{2, 3, 4},
			{4, 5, 6},
		},
	}
	simpleGrid := newGrid(t, [][]int16{
		{0, 10},
		{20, 30},
	})
	for _, tc := range []struct {
		name     string
		raster   dem.Raster
		coords   [][]float64
		expected []float64
	}{
		{
			name:   "raster",
			raster: simpleRaster,
			coords: [][]float64{
				{0, 0},
				{10, 0},
				{0, 10},
				{10, 10},
				{5, 5},
				{5, 0},
				{0, 5},
				{10, 5},
				{5, 10},
				{20, 20},
			},
			expected: []float64{
				0,
				1,
				2,
				3,
				1.5,
				0.5,
				1,
				2,
				2.5,
				6,
			},
		},
		{
			name:   "grid",
			raster: simpleGrid,
			coords: [][]float64{
				{0, 0},
				{0.5, 0.5},
				{1, 0.5},
				{0.5, 1},
				{1, 1},
			},
			expected: []float64{
				0,
				15,
				20,
				25,
				30,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := dem.InterpolateBilinear(context.Background(), tc.raster, tc.coords)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestInterpolateBilinearOutside(t *testing.T) {
	grid := newGrid(t, [][]int16{
		{0, 10},
		{20, 30},
	})
	actual, err := dem.InterpolateBilinear(context.Background(), grid, [][]float64{
		{-0.5, 0},
		{1.5, 0},
		{0, 1.5},
	})
	assert.NoError(t, err)
	for _, sample := range actual {
		assert.True(t, math.IsNaN(sample))
	}
}

package dem

import (
	"context"
	"fmt"
)

// A GeoGrid is a Grid georeferenced by an RSC.
type GeoGrid struct {
	*Grid
	RSC *RSC
}

// NewGeoGrid returns a new GeoGrid. The dimensions of grid must match rsc.
func NewGeoGrid(grid *Grid, rsc *RSC) (*GeoGrid, error) {
	if err := checkRSC(rsc, grid.rows, grid.cols); err != nil {
		return nil, err
	}
	if rsc.XStep == 0 || rsc.YStep == 0 {
		return nil, fmt.Errorf("%w: zero step (%g, %g)", ErrInvalidArgument, rsc.XStep, rsc.YStep)
	}
	return &GeoGrid{
		Grid: grid,
		RSC:  rsc,
	}, nil
}

// Elevation returns the interpolated elevation at each of coords, given as
// (x, y) pairs in g's units, typically longitude and latitude. Points outside
// g are NaN.
func (g *GeoGrid) Elevation(ctx context.Context, coords [][]float64) ([]float64, error) {
	pixelCoords := make([][]float64, len(coords))
	for i, coord := range coords {
		x, y := g.RSC.PixelCoord(coord[0], coord[1])
		pixelCoords[i] = []float64{x, y}
	}
	return InterpolateBilinear(ctx, g.Grid, pixelCoords)
}

// checkRSC returns an error if rsc does not describe a rows x cols grid.
func checkRSC(rsc *RSC, rows, cols int) error {
	if rsc.FileLength != rows || rsc.Width != cols {
		return fmt.Errorf("%w: rsc describes a %dx%d grid, expected %dx%d", ErrInvalidArgument, rsc.FileLength, rsc.Width, rows, cols)
	}
	return nil
}

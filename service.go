package dem

import (
	"context"
	"fmt"
	"math"

	"github.com/twpayne/go-proj/v10"
)

// An ElevationService returns elevations from a named grid in a GridSet.
type ElevationService struct {
	gridSet *GridSet
	name    string
	crs     string
	pj      *proj.PJ
}

// An ElevationServiceOption sets an option on an ElevationService.
type ElevationServiceOption func(*ElevationService)

// WithCRS sets the coordinate reference system of the coordinates passed to
// Elevation. The default is EPSG:4326 in (longitude, latitude) order.
func WithCRS(crs string) ElevationServiceOption {
	return func(s *ElevationService) {
		s.crs = crs
	}
}

// NewElevationService returns a new ElevationService for the .dem file name
// in gridSet.
func NewElevationService(gridSet *GridSet, name string, options ...ElevationServiceOption) (*ElevationService, error) {
	s := &ElevationService{
		gridSet: gridSet,
		name:    name,
	}
	for _, option := range options {
		option(s)
	}
	if s.crs != "" {
		pj, err := proj.NewCRSToCRS(s.crs, "epsg:4326", nil)
		if err != nil {
			return nil, err
		}
		s.pj = pj
	}
	return s, nil
}

// Elevation returns the elevation at each of coords. Points outside the grid,
// or all points if the grid does not exist, are NaN. If a CRS is set then the
// grid's projection must be LL.
func (s *ElevationService) Elevation(ctx context.Context, coords [][]float64) ([]float64, error) {
	grid, err := s.gridSet.Grid(ctx, s.name)
	if err != nil {
		return nil, err
	}
	if grid == nil {
		elevations := make([]float64, len(coords))
		for i := range elevations {
			elevations[i] = math.NaN()
		}
		return elevations, nil
	}

	if s.pj == nil {
		return grid.Elevation(ctx, coords)
	}
	// Coordinates are only reprojected to longitude and latitude.
	if grid.RSC.Projection != "LL" {
		return nil, fmt.Errorf("%s: %w: cannot transform %s coordinates to projection %s", s.name, ErrInvalidArgument, s.crs, grid.RSC.Projection)
	}

	coords4326 := cloneCoords(coords)
	if err := s.pj.ForwardFloat64Slices(coords4326); err != nil {
		return nil, err
	}
	// EPSG:4326 is in (latitude, longitude) order.
	flipCoords(coords4326)
	return grid.Elevation(ctx, coords4326)
}

func cloneCoords(coords [][]float64) [][]float64 {
	clonedCoordsFlat := make([]float64, 2*len(coords))
	clonedCoords := make([][]float64, len(coords))
	for i, coord := range coords {
		copy(clonedCoordsFlat[2*i:2*i+2], coord)
		clonedCoords[i] = clonedCoordsFlat[2*i : 2*i+2]
	}
	return clonedCoords
}

func flipCoords(coords [][]float64) {
	for i, coord := range coords {
		coords[i][0], coords[i][1] = coord[1], coord[0]
	}
}

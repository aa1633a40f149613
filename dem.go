// Package dem reads, upsamples and writes raw 16-bit digital elevation models.
//
// A .dem file is a headerless sequence of little-endian int16 samples in
// row-major order. Its dimensions are supplied out of band, either by the
// caller or by a ROI_PAC style .dem.rsc sidecar.
package dem

import "context"

// A Coord is a pixel coordinate.
type Coord struct {
	X int // Column.
	Y int // Row.
}

// A Raster returns samples at integer coordinates. Samples outside the raster
// are NaN.
type Raster interface {
	Samples(ctx context.Context, coords []Coord) ([]float64, error)
	Scale() (int, int)
}

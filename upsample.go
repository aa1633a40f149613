package dem

import (
	"fmt"
	"math"
)

// UpSize returns the number of samples along an axis of size samples after
// upsampling by rate. For example, 3 samples at x = 0, 1, 2 upsampled by 2
// become 5 samples at x = 0, 0.5, 1, 1.5, 2.
func UpSize(size, rate int) int {
	return rate*(size-1) + 1
}

// Upsample returns a new grid with rate-1 samples interpolated between each
// pair of consecutive samples of g in both dimensions.
func Upsample(g *Grid, rate int) (*Grid, error) {
	return upsample(g, rate, rate, defaultMaxSamples)
}

// UpsampleXY is like Upsample but with independent rates along columns
// (xRate) and rows (yRate).
func UpsampleXY(g *Grid, xRate, yRate int) (*Grid, error) {
	return upsample(g, xRate, yRate, defaultMaxSamples)
}

func upsample(g *Grid, xRate, yRate, maxSamples int) (*Grid, error) {
	if xRate < 1 || yRate < 1 {
		return nil, fmt.Errorf("%w: rate (%d, %d) must be positive", ErrInvalidArgument, xRate, yRate)
	}
	if g.rows-1 > (math.MaxInt-1)/yRate || g.cols-1 > (math.MaxInt-1)/xRate {
		return nil, fmt.Errorf("%w: upsampling %dx%d grid by (%d, %d) overflows", ErrOutOfMemory, g.rows, g.cols, xRate, yRate)
	}
	up, err := newGrid(UpSize(g.rows, yRate), UpSize(g.cols, xRate), maxSamples)
	if err != nil {
		return nil, err
	}

	// Interior cells are bilinearly interpolated from their four corners.
	for i := 0; i < g.rows-1; i++ {
		for j := 0; j < g.cols-1; j++ {
			cell := newBilinearCell(g.At(i, j), g.At(i, j+1), g.At(i+1, j), g.At(i+1, j+1))
			for bi := range yRate {
				y := float32(bi) / float32(yRate)
				row := up.Row(yRate*i + bi)
				for bj := range xRate {
					x := float32(bj) / float32(xRate)
					row[xRate*j+bj] = cell.at(x, y)
				}
			}
		}
	}

	// The last column and last row have no successor in one axis, so they are
	// linearly interpolated along the other.
	lastCol := g.cols - 1
	for i := 0; i < g.rows-1; i++ {
		h1, h2 := g.At(i, lastCol), g.At(i+1, lastCol)
		for bi := range yRate {
			y := float32(bi) / float32(yRate)
			up.Set(yRate*i+bi, xRate*lastCol, lerp(h1, h2, y))
		}
	}
	lastRow := g.rows - 1
	upLastRow := up.Row(yRate * lastRow)
	for j := 0; j < g.cols-1; j++ {
		h1, h2 := g.At(lastRow, j), g.At(lastRow, j+1)
		for bj := range xRate {
			x := float32(bj) / float32(xRate)
			upLastRow[xRate*j+bj] = lerp(h1, h2, x)
		}
	}

	up.Set(up.rows-1, up.cols-1, g.At(g.rows-1, g.cols-1))

	samplesInterpolated.Add(float64(up.Len()))
	return up, nil
}

// A bilinearCell holds the coefficients of the bilinear interpolant
// a00 + a10*x + a01*y + a11*x*y over a unit cell with corners h1 at (0, 0),
// h2 at (1, 0), h3 at (0, 1), and h4 at (1, 1).
type bilinearCell struct {
	a00, a10, a01, a11 float32
}

func newBilinearCell(h1, h2, h3, h4 int16) bilinearCell {
	i1, i2, i3, i4 := int32(h1), int32(h2), int32(h3), int32(h4)
	return bilinearCell{
		a00: float32(i1),
		a10: float32(i2 - i1),
		a01: float32(i3 - i1),
		a11: float32(i1 - i2 - i3 + i4),
	}
}

// at returns the value of the interpolant at (x, y), truncated toward zero.
// Each product is explicitly rounded to float32 so that the compiler cannot
// fuse it into a multiply-add, which would change the truncated result on some
// architectures.
func (c bilinearCell) at(x, y float32) int16 {
	v := c.a00 + float32(c.a10*x)
	v += float32(c.a01 * y)
	v += float32(float32(c.a11*x) * y)
	return truncate(v)
}

// lerp returns t*h2 + (1-t)*h1, truncated toward zero.
func lerp(h1, h2 int16, t float32) int16 {
	return truncate(float32(t*float32(h2)) + float32((1-t)*float32(h1)))
}

// truncate converts v to an int16, truncating toward zero and saturating at
// the limits of int16.
func truncate(v float32) int16 {
	switch {
	case math.IsNaN(float64(v)):
		return 0
	case v <= math.MinInt16:
		return math.MinInt16
	case v >= math.MaxInt16:
		return math.MaxInt16
	default:
		return int16(v)
	}
}

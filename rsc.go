package dem

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// rscKeyWidth is the width to which keys are left-justified in .rsc files.
const rscKeyWidth = 14

// An RSC is the contents of a ROI_PAC style .dem.rsc resource file, which
// describes the size and georeferencing of the .dem file next to it.
//
// Example:
//
//	WIDTH         10801
//	FILE_LENGTH   7201
//	X_FIRST       -157.0
//	Y_FIRST       21.0
//	X_STEP        0.000277777777
//	Y_STEP        -0.000277777777
//	X_UNIT        degrees
//	Y_UNIT        degrees
//	Z_OFFSET      0
//	Z_SCALE       1
//	PROJECTION    LL
type RSC struct {
	Width      int
	FileLength int
	XFirst     float64
	YFirst     float64
	XStep      float64
	YStep      float64
	XUnit      string
	YUnit      string
	ZOffset    int
	ZScale     int
	Projection string
}

// RSCFilename returns the name of the .rsc file for the .dem file filename.
func RSCFilename(filename string) string {
	if strings.HasSuffix(filename, ".rsc") {
		return filename
	}
	return filename + ".rsc"
}

// LoadRSC reads the .rsc file for path, which may name either the .dem file or
// the .rsc file itself.
func LoadRSC(path string) (*RSC, error) {
	data, err := os.ReadFile(RSCFilename(path))
	if err != nil {
		return nil, err
	}
	rsc, err := ReadRSC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RSCFilename(path), err)
	}
	return rsc, nil
}

// ReadRSC reads an RSC from r. Missing units, offsets, scales, and
// projections take their conventional defaults. WIDTH and FILE_LENGTH are
// required.
func ReadRSC(r io.Reader) (*RSC, error) {
	rsc := &RSC{
		XUnit:      "degrees",
		YUnit:      "degrees",
		ZOffset:    0,
		ZScale:     1,
		Projection: "LL",
	}
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		key, value := strings.ToUpper(fields[0]), fields[1]
		var err error
		switch key {
		case "WIDTH":
			rsc.Width, err = strconv.Atoi(value)
		case "FILE_LENGTH":
			rsc.FileLength, err = strconv.Atoi(value)
		case "X_FIRST":
			rsc.XFirst, err = strconv.ParseFloat(value, 64)
		case "Y_FIRST":
			rsc.YFirst, err = strconv.ParseFloat(value, 64)
		case "X_STEP":
			rsc.XStep, err = strconv.ParseFloat(value, 64)
		case "Y_STEP":
			rsc.YStep, err = strconv.ParseFloat(value, 64)
		case "X_UNIT":
			rsc.XUnit = value
		case "Y_UNIT":
			rsc.YUnit = value
		case "Z_OFFSET":
			rsc.ZOffset, err = strconv.Atoi(value)
		case "Z_SCALE":
			rsc.ZScale, err = strconv.Atoi(value)
		case "PROJECTION":
			rsc.Projection = value
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNumber, key, err)
		}
		seen[key] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for _, key := range []string{"WIDTH", "FILE_LENGTH"} {
		if !seen[key] {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidArgument, key)
		}
	}
	return rsc, nil
}

// WriteTo writes rsc to w in .rsc format.
func (rsc *RSC) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, kv := range []struct {
		key   string
		value string
	}{
		{"WIDTH", strconv.Itoa(rsc.Width)},
		{"FILE_LENGTH", strconv.Itoa(rsc.FileLength)},
		{"X_FIRST", formatFirst(rsc.XFirst)},
		{"Y_FIRST", formatFirst(rsc.YFirst)},
		{"X_STEP", strconv.FormatFloat(rsc.XStep, 'f', 12, 64)},
		{"Y_STEP", strconv.FormatFloat(rsc.YStep, 'f', 12, 64)},
		{"X_UNIT", rsc.XUnit},
		{"Y_UNIT", rsc.YUnit},
		{"Z_OFFSET", strconv.Itoa(rsc.ZOffset)},
		{"Z_SCALE", strconv.Itoa(rsc.ZScale)},
		{"PROJECTION", rsc.Projection},
	} {
		fmt.Fprintf(&b, "%-*s%s\n", rscKeyWidth, kv.key, kv.value)
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// WriteRSC writes rsc to the .rsc file for path.
func WriteRSC(path string, rsc *RSC) error {
	return writeFileAtomic(RSCFilename(path), rsc)
}

// Upsampled returns the RSC of the grid described by rsc after upsampling by
// xRate and yRate.
func (rsc *RSC) Upsampled(xRate, yRate int) *RSC {
	upsampled := *rsc
	upsampled.Width = UpSize(rsc.Width, xRate)
	upsampled.FileLength = UpSize(rsc.FileLength, yRate)
	upsampled.XStep = rsc.XStep / float64(xRate)
	upsampled.YStep = rsc.YStep / float64(yRate)
	return &upsampled
}

// PixelCoord returns the fractional column and row of the point (x, y), in
// rsc's units.
func (rsc *RSC) PixelCoord(x, y float64) (float64, float64) {
	return (x - rsc.XFirst) / rsc.XStep, (y - rsc.YFirst) / rsc.YStep
}

// formatFirst formats an origin coordinate, always including a decimal point.
func formatFirst(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

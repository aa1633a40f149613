package dem_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-dem"
)

const exampleRSC = "" +
	"WIDTH         10801\n" +
	"FILE_LENGTH   7201\n" +
	"X_FIRST       -157.0\n" +
	"Y_FIRST       21.0\n" +
	"X_STEP        0.000277777777\n" +
	"Y_STEP        -0.000277777777\n" +
	"X_UNIT        degrees\n" +
	"Y_UNIT        degrees\n" +
	"Z_OFFSET      0\n" +
	"Z_SCALE       1\n" +
	"PROJECTION    LL\n"

func TestReadRSC(t *testing.T) {
	rsc, err := dem.ReadRSC(strings.NewReader(exampleRSC))
	assert.NoError(t, err)
	assert.Equal(t, &dem.RSC{
		Width:      10801,
		FileLength: 7201,
		XFirst:     -157,
		YFirst:     21,
		XStep:      0.000277777777,
		YStep:      -0.000277777777,
		XUnit:      "degrees",
		YUnit:      "degrees",
		ZOffset:    0,
		ZScale:     1,
		Projection: "LL",
	}, rsc)

	var b strings.Builder
	_, err = rsc.WriteTo(&b)
	assert.NoError(t, err)
	assert.Equal(t, exampleRSC, b.String())
}

func TestReadRSCDefaults(t *testing.T) {
	rsc, err := dem.ReadRSC(strings.NewReader("" +
		"WIDTH 3\n" +
		"FILE_LENGTH 2\n" +
		"X_FIRST -1.5\n" +
		"\n" +
		"COMMENT\n",
	))
	assert.NoError(t, err)
	assert.Equal(t, &dem.RSC{
		Width:      3,
		FileLength: 2,
		XFirst:     -1.5,
		XUnit:      "degrees",
		YUnit:      "degrees",
		ZScale:     1,
		Projection: "LL",
	}, rsc)
}

func TestReadRSCErrors(t *testing.T) {
	for _, tc := range []struct {
		name        string
		data        string
		expectedErr string
	}{
		{
			name:        "missing_width",
			data:        "FILE_LENGTH 2\n",
			expectedErr: "invalid argument: missing WIDTH",
		},
		{
			name:        "bad_width",
			data:        "WIDTH two\nFILE_LENGTH 2\n",
			expectedErr: `line 1: WIDTH: strconv.Atoi: parsing "two": invalid syntax`,
		},
		{
			name:        "bad_step",
			data:        "WIDTH 2\nFILE_LENGTH 2\nX_STEP x\n",
			expectedErr: `line 3: X_STEP: strconv.ParseFloat: parsing "x": invalid syntax`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dem.ReadRSC(strings.NewReader(tc.data))
			assert.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestRSCUpsampled(t *testing.T) {
	rsc, err := dem.ReadRSC(strings.NewReader(exampleRSC))
	assert.NoError(t, err)

	upsampled := rsc.Upsampled(2, 3)
	assert.Equal(t, 21601, upsampled.Width)
	assert.Equal(t, 21601, upsampled.FileLength)
	assert.Equal(t, rsc.XStep/2, upsampled.XStep)
	assert.Equal(t, rsc.YStep/3, upsampled.YStep)
	assert.Equal(t, rsc.XFirst, upsampled.XFirst)
	assert.Equal(t, rsc.Projection, upsampled.Projection)

	assert.Equal(t, 10801, rsc.Width)
}

func TestRSCFilename(t *testing.T) {
	assert.Equal(t, "elevation.dem.rsc", dem.RSCFilename("elevation.dem"))
	assert.Equal(t, "elevation.dem.rsc", dem.RSCFilename("elevation.dem.rsc"))
}

func TestWriteLoadRSC(t *testing.T) {
	rsc, err := dem.ReadRSC(strings.NewReader(exampleRSC))
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "elevation.dem")
	assert.NoError(t, dem.WriteRSC(path, rsc))

	data, err := os.ReadFile(path + ".rsc")
	assert.NoError(t, err)
	assert.Equal(t, exampleRSC, string(data))

	actual, err := dem.LoadRSC(path)
	assert.NoError(t, err)
	assert.Equal(t, rsc, actual)
}

func TestRSCPixelCoord(t *testing.T) {
	rsc := &dem.RSC{
		XFirst: 10,
		YFirst: 50,
		XStep:  0.5,
		YStep:  -0.5,
	}
	x, y := rsc.PixelCoord(11, 49)
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 2.0, y)
}

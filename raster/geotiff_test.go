package raster

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *Dataset {
	nan := math.NaN()
	return &Dataset{
		Width:  3,
		Height: 2,
		Bands: [][]float64{
			{1, 2, 3, 4, 5, 6},
			{nan, 0.5, nan, -1.25, 1e300, nan},
		},
		Origin:     [2]float64{500000, 5700000},
		PixelScale: [2]float64{100, 250},
		EPSG:       25832,
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.tif")
	want := testDataset()
	require.NoError(t, WriteGeoTIFF(path, want))

	got, err := ReadGeoTIFF(path)
	require.NoError(t, err)

	assert.Equal(t, want.Width, got.Width)
	assert.Equal(t, want.Height, got.Height)
	assert.Equal(t, want.Origin, got.Origin)
	assert.Equal(t, want.PixelScale, got.PixelScale)
	assert.Equal(t, want.EPSG, got.EPSG)
	assert.False(t, got.Geographic)

	require.Len(t, got.Bands, len(want.Bands))
	for b := range want.Bands {
		require.Len(t, got.Bands[b], len(want.Bands[b]))
		for i := range want.Bands[b] {
			// Bitwise compare so NaN cells survive the trip too.
			assert.Equal(t,
				math.Float64bits(want.Bands[b][i]),
				math.Float64bits(got.Bands[b][i]),
				"band %d cell %d", b+1, i)
		}
	}
}

func TestWriteReadRoundTrip_SingleBand(t *testing.T) {
	// With one band every strip and sample tag fits its 4-byte IFD field
	// and must be stored inline rather than in the arena.
	path := filepath.Join(t.TempDir(), "single.tif")
	want := &Dataset{
		Width:      3,
		Height:     2,
		Bands:      [][]float64{{1.5, math.NaN(), -2, 0, 1e-9, 42}},
		Origin:     [2]float64{-180, 90},
		PixelScale: [2]float64{60, 45},
		EPSG:       4326,
		Geographic: true,
	}
	require.NoError(t, WriteGeoTIFF(path, want))

	got, err := ReadGeoTIFF(path)
	require.NoError(t, err)
	assert.Equal(t, want.Width, got.Width)
	assert.Equal(t, want.Height, got.Height)
	require.Len(t, got.Bands, 1)
	for i := range want.Bands[0] {
		assert.Equal(t,
			math.Float64bits(want.Bands[0][i]),
			math.Float64bits(got.Bands[0][i]),
			"cell %d", i)
	}
	assert.Equal(t, want.Origin, got.Origin)
	assert.Equal(t, want.PixelScale, got.PixelScale)
	assert.True(t, got.Geographic)
}

func TestWriteReadRoundTrip_Geographic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ident.tif")
	d := testDataset()
	d.EPSG = 4326
	d.Geographic = true
	require.NoError(t, WriteGeoTIFF(path, d))

	got, err := ReadGeoTIFF(path)
	require.NoError(t, err)
	assert.True(t, got.Geographic)
	assert.Equal(t, 4326, got.EPSG)
}

func TestWriteGeoTIFF_UserDefinedCRS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tif")
	d := testDataset()
	d.EPSG = 0
	require.NoError(t, WriteGeoTIFF(path, d))

	got, err := ReadGeoTIFF(path)
	require.NoError(t, err)
	assert.Equal(t, 0, got.EPSG, "user-defined CRS carries no EPSG code")
}

func TestValidate(t *testing.T) {
	d := &Dataset{Width: 2, Height: 2, Bands: [][]float64{{1, 2, 3, 4}}}
	require.NoError(t, d.Validate())

	assert.ErrorIs(t, (&Dataset{Width: 0, Height: 2, Bands: [][]float64{{}}}).Validate(), ErrEmptyDataset)
	assert.ErrorIs(t, (&Dataset{Width: 2, Height: 2}).Validate(), ErrEmptyDataset)

	d.Bands = append(d.Bands, []float64{1, 2, 3})
	assert.ErrorIs(t, d.Validate(), ErrBandShape)
}

func TestReadGeoTIFF_NotATIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.tif")
	require.NoError(t, os.WriteFile(path, []byte("certainly not a raster"), 0o644))

	_, err := ReadGeoTIFF(path)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestReadGeoTIFF_Missing(t *testing.T) {
	_, err := ReadGeoTIFF(filepath.Join(t.TempDir(), "nope.tif"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnsupported)
}

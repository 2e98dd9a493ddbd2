package crs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAuthID(t *testing.T) {
	c, err := FromAuthID("EPSG:25832")
	require.NoError(t, err)
	assert.Equal(t, "EPSG:25832", c.AuthID)
	assert.Contains(t, c.Proj4, "+proj=utm")
	assert.Contains(t, c.Proj4, "+zone=32")

	// Lookup is case- and whitespace-insensitive.
	c2, err := FromAuthID("  epsg:25832 ")
	require.NoError(t, err)
	assert.Equal(t, c, c2)
}

func TestFromAuthID_Unknown(t *testing.T) {
	_, err := FromAuthID("EPSG:999999")
	require.ErrorIs(t, err, ErrUnknownCRS)
}

func TestFromProj4(t *testing.T) {
	c := FromProj4(" +proj=merc +a=6378137 +b=6378137 +units=m +no_defs ")
	assert.Empty(t, c.AuthID)
	assert.Equal(t, "+proj=merc +a=6378137 +b=6378137 +units=m +no_defs", c.Proj4)
	assert.False(t, c.IsGeographic())
	assert.Equal(t, 0, c.EPSG())
}

func TestIsGeographic(t *testing.T) {
	assert.True(t, WGS84().IsGeographic())
	assert.True(t, FromProj4("+proj=latlong +datum=WGS84").IsGeographic())

	merc, err := FromAuthID("EPSG:3857")
	require.NoError(t, err)
	assert.False(t, merc.IsGeographic())
}

func TestEPSG(t *testing.T) {
	assert.Equal(t, 4326, WGS84().EPSG())

	sinu, err := FromAuthID("ESRI:54008")
	require.NoError(t, err)
	assert.Equal(t, 0, sinu.EPSG(), "non-EPSG authorities have no EPSG code")
}

func TestEqual(t *testing.T) {
	a, err := FromAuthID("EPSG:3857")
	require.NoError(t, err)
	b, err := FromAuthID("EPSG:3857")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(WGS84()))

	// CRS from bare proj4 strings compare by definition.
	assert.True(t, FromProj4("+proj=merc").Equal(FromProj4("+proj=merc")))
}

func TestString(t *testing.T) {
	assert.Equal(t, "EPSG:4326", WGS84().String())
	assert.Equal(t, "+proj=merc", FromProj4("+proj=merc").String())
}

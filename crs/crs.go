// Package crs describes coordinate reference systems and converts sample
// points between them.
//
// A CRS is identified by an authority ID such as "EPSG:25832" and carried as
// a proj4 definition string, which is what both the pure Go transform stack
// and the direct PROJ binding consume. Axis order is always x/longitude
// first, y/latitude second, regardless of what the authority declares.
package crs

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	// ErrUnknownCRS is returned when an authority ID has no known definition.
	ErrUnknownCRS = errors.New("crs: unknown authority ID")

	// ErrNoDefinition is returned when a CRS carries no proj4 string.
	ErrNoDefinition = errors.New("crs: missing proj4 definition")
)

// CRS identifies a coordinate reference system.
type CRS struct {
	// AuthID is the authority identifier, e.g. "EPSG:3857".
	// Empty for CRS built from a bare proj4 string.
	AuthID string

	// Proj4 is the proj4 definition string.
	Proj4 string
}

// wellKnown maps authority IDs to proj4 definitions. Only systems the
// module itself needs are listed; anything else comes in via FromProj4.
var wellKnown = map[string]string{
	"EPSG:4326":  "+proj=longlat +datum=WGS84 +no_defs",
	"EPSG:3857":  "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
	"EPSG:25832": "+proj=utm +zone=32 +ellps=GRS80 +units=m +no_defs",
	"EPSG:32632": "+proj=utm +zone=32 +ellps=WGS84 +datum=WGS84 +units=m +no_defs",
	"ESRI:54008": "+proj=sinu +lon_0=0 +x_0=0 +y_0=0 +a=6371007.181 +b=6371007.181 +units=m +no_defs",
}

// FromAuthID returns the CRS for a well-known authority ID.
// Returns ErrUnknownCRS for IDs without a registered definition.
func FromAuthID(id string) (CRS, error) {
	proj4, ok := wellKnown[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return CRS{}, fmt.Errorf("%w: %q", ErrUnknownCRS, id)
	}
	return CRS{AuthID: strings.ToUpper(strings.TrimSpace(id)), Proj4: proj4}, nil
}

// FromProj4 wraps a raw proj4 definition string in a CRS.
func FromProj4(definition string) CRS {
	return CRS{Proj4: strings.TrimSpace(definition)}
}

// WGS84 returns the geographic WGS84 reference (EPSG:4326).
func WGS84() CRS {
	c, _ := FromAuthID("EPSG:4326")
	return c
}

// IsGeographic reports whether the CRS is an unprojected
// longitude/latitude system.
func (c CRS) IsGeographic() bool {
	return strings.Contains(c.Proj4, "+proj=longlat") || strings.Contains(c.Proj4, "+proj=latlong")
}

// EPSG returns the numeric EPSG code, or 0 if the CRS has no EPSG
// authority ID.
func (c CRS) EPSG() int {
	var code int
	if _, err := fmt.Sscanf(c.AuthID, "EPSG:%d", &code); err != nil {
		return 0
	}
	return code
}

// Equal reports whether two CRS describe the same system. Two CRS with the
// same authority ID are equal; otherwise the proj4 strings must match.
func (c CRS) Equal(other CRS) bool {
	if c.AuthID != "" && c.AuthID == other.AuthID {
		return true
	}
	return c.Proj4 == other.Proj4
}

// String returns the authority ID if present, the proj4 string otherwise.
func (c CRS) String() string {
	if c.AuthID != "" {
		return c.AuthID
	}
	return c.Proj4
}

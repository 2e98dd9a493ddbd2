package crs

import (
	"fmt"
	"math"

	"github.com/terrascope/geometry"
	"github.com/terrascope/proj4go"
)

// Transformer converts points from a source CRS to geographic WGS84
// coordinates. Points that cannot be transformed (off-world canvas corners,
// coordinates outside the projection domain) come back as nil entries so
// slice indices stay aligned with the original grid.
type Transformer struct {
	src CRS
}

// NewTransformer creates a transformer from src to geographic coordinates.
// Returns ErrNoDefinition if src carries no proj4 string.
func NewTransformer(src CRS) (*Transformer, error) {
	if src.Proj4 == "" {
		return nil, fmt.Errorf("%w: %v", ErrNoDefinition, src)
	}
	return &Transformer{src: src}, nil
}

// ToGeographic transforms the points to longitude/latitude degrees.
// The result has exactly one entry per input point; a nil entry marks a
// point that could not be transformed. The input slice is not modified.
func (t *Transformer) ToGeographic(points []geometry.Point) []*geometry.Point {
	out := make([]*geometry.Point, len(points))
	if t.src.IsGeographic() {
		for i, p := range points {
			p := p
			if geographicBounds(p.X, p.Y) {
				out[i] = &p
			}
		}
		return out
	}

	for i, p := range points {
		// One point per call: a failed inverse must only invalidate its
		// own grid cell, never the whole batch.
		pts := []geometry.Point{p}
		if err := proj4go.Inverse(t.src.Proj4, pts); err != nil {
			continue
		}
		lon, lat := pts[0].X, pts[0].Y
		if !geographicBounds(lon, lat) {
			continue
		}
		out[i] = &geometry.Point{X: lon, Y: lat}
	}
	return out
}

// geographicBounds reports whether lon/lat is a usable geographic
// coordinate: finite and strictly inside the valid range. The poles and the
// antimeridian are excluded; factors are not defined there for most
// projections and the geodesy backends reject them anyway.
func geographicBounds(lon, lat float64) bool {
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return false
	}
	return lon > -180 && lon < 180 && lat > -90 && lat < 90
}

// Forward projects a single geographic coordinate (degrees) into the
// source CRS. Non-finite results are reported as an error.
func (t *Transformer) Forward(lon, lat float64) (x, y float64, err error) {
	if t.src.IsGeographic() {
		return lon, lat, nil
	}
	pts := []geometry.Point{{X: lon, Y: lat}}
	if err := proj4go.Forwards(t.src.Proj4, pts); err != nil {
		return 0, 0, fmt.Errorf("crs: forward transform: %w", err)
	}
	x, y = pts[0].X, pts[0].Y
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, 0, fmt.Errorf("crs: forward transform of (%v, %v) is not finite", lon, lat)
	}
	return x, y, nil
}

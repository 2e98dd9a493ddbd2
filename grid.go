package projfactors

import (
	"errors"
	"fmt"
	"math"

	"github.com/terrascope/geometry"
)

// Configuration errors, reported before any computation starts.
var (
	// ErrInvalidExtent is returned for zero-size or non-finite extents.
	ErrInvalidExtent = errors.New("projfactors: invalid canvas extent")

	// ErrInvalidSize is returned for non-positive pixel dimensions.
	ErrInvalidSize = errors.New("projfactors: invalid raster dimensions")
)

// SampleGrid is the ordered sequence of sample coordinates, one per output
// pixel. Points are pixel centers in project CRS units, row-major with the
// top (northernmost) row first. The grid is immutable after creation.
type SampleGrid struct {
	extent geometry.BoundingBox
	width  int
	height int
	points []geometry.Point
}

// BuildGrid creates the sample grid for a canvas extent at the given pixel
// dimensions. Each point is the center of one output pixel:
//
//	x = minX + (col+0.5)·sx    y = maxY − (row+0.5)·sy
//
// Degenerate extents and non-positive dimensions fail fast with a
// configuration error.
func BuildGrid(extent geometry.BoundingBox, width, height int) (*SampleGrid, error) {
	if err := validateExtent(extent); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	sx := (extent.Max.X - extent.Min.X) / float64(width)
	sy := (extent.Max.Y - extent.Min.Y) / float64(height)

	points := make([]geometry.Point, 0, width*height)
	for row := 0; row < height; row++ {
		y := extent.Max.Y - (float64(row)+0.5)*sy
		for col := 0; col < width; col++ {
			x := extent.Min.X + (float64(col)+0.5)*sx
			points = append(points, geometry.Point{X: x, Y: y})
		}
	}

	Logger().Debug("sample grid built", "width", width, "height", height, "points", len(points))

	return &SampleGrid{extent: extent, width: width, height: height, points: points}, nil
}

func validateExtent(extent geometry.BoundingBox) error {
	vals := []float64{extent.Min.X, extent.Min.Y, extent.Max.X, extent.Max.Y}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bounds", ErrInvalidExtent)
		}
	}
	if extent.Max.X-extent.Min.X <= 0 || extent.Max.Y-extent.Min.Y <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidExtent, extent)
	}
	return nil
}

// Extent returns the canvas extent the grid was built from.
func (g *SampleGrid) Extent() geometry.BoundingBox { return g.extent }

// Width returns the grid width in pixels.
func (g *SampleGrid) Width() int { return g.width }

// Height returns the grid height in pixels.
func (g *SampleGrid) Height() int { return g.height }

// Len returns the number of sample points (width × height).
func (g *SampleGrid) Len() int { return len(g.points) }

// Point returns the sample point at grid index i.
func (g *SampleGrid) Point(i int) geometry.Point { return g.points[i] }

// Points returns all sample points in grid order. The slice is shared;
// callers must not modify it.
func (g *SampleGrid) Points() []geometry.Point { return g.points }

// PixelSize returns the cell size in project CRS units per pixel.
func (g *SampleGrid) PixelSize() (sx, sy float64) {
	sx = (g.extent.Max.X - g.extent.Min.X) / float64(g.width)
	sy = (g.extent.Max.Y - g.extent.Min.Y) / float64(g.height)
	return sx, sy
}

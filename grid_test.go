package projfactors

import (
	"errors"
	"math"
	"testing"

	"github.com/terrascope/geometry"
)

// TestBuildGrid_PixelCenters verifies that a unit-cell extent samples on
// full coordinate values, top row first, left to right.
func TestBuildGrid_PixelCenters(t *testing.T) {
	// 4 wide, 3 high, cell size 1: centers land on integers.
	grid, err := BuildGrid(geometry.BBox(-1.5, -2.5, 2.5, 0.5), 4, 3)
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}

	want := [][2]float64{
		{-1, 0}, {0, 0}, {1, 0}, {2, 0},
		{-1, -1}, {0, -1}, {1, -1}, {2, -1},
		{-1, -2}, {0, -2}, {1, -2}, {2, -2},
	}
	if grid.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", grid.Len(), len(want))
	}
	for i, w := range want {
		p := grid.Point(i)
		if math.Abs(p.X-w[0]) > 1e-9 || math.Abs(p.Y-w[1]) > 1e-9 {
			t.Errorf("Point(%d) = (%v, %v), want (%v, %v)", i, p.X, p.Y, w[0], w[1])
		}
	}
}

// TestBuildGrid_Count verifies grid length equals width × height for
// non-integer cell sizes too.
func TestBuildGrid_Count(t *testing.T) {
	cases := []struct {
		name          string
		extent        geometry.BoundingBox
		width, height int
	}{
		{"square", geometry.BBox(0, 0, 100, 100), 10, 10},
		{"wide", geometry.BBox(-180, -90, 180, 90), 36, 18},
		{"odd cells", geometry.BBox(0.3, 0.7, 9.1, 4.4), 7, 3},
		{"single pixel", geometry.BBox(5, 5, 6, 6), 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid, err := BuildGrid(tc.extent, tc.width, tc.height)
			if err != nil {
				t.Fatalf("BuildGrid() error = %v", err)
			}
			if grid.Len() != tc.width*tc.height {
				t.Errorf("Len() = %d, want %d", grid.Len(), tc.width*tc.height)
			}
		})
	}
}

// TestBuildGrid_RowMajorOrder verifies that grid index r*width+c is the
// center of row r, column c.
func TestBuildGrid_RowMajorOrder(t *testing.T) {
	const width, height = 5, 4
	extent := geometry.BBox(0, 0, 50, 40)
	grid, err := BuildGrid(extent, width, height)
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			p := grid.Point(r*width + c)
			wantX := 0 + (float64(c)+0.5)*10
			wantY := 40 - (float64(r)+0.5)*10
			if p.X != wantX || p.Y != wantY {
				t.Errorf("Point(%d,%d) = (%v, %v), want (%v, %v)", r, c, p.X, p.Y, wantX, wantY)
			}
		}
	}
}

func TestBuildGrid_InvalidExtent(t *testing.T) {
	cases := []struct {
		name   string
		extent geometry.BoundingBox
	}{
		{"zero width", geometry.BBox(10, 0, 10, 5)},
		{"zero height", geometry.BBox(0, 3, 5, 3)},
		{"inverted", geometry.BBox(10, 10, 0, 0)},
		{"nan", geometry.BBox(math.NaN(), 0, 10, 10)},
		{"inf", geometry.BBox(0, 0, math.Inf(1), 10)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildGrid(tc.extent, 4, 4); !errors.Is(err, ErrInvalidExtent) {
				t.Errorf("BuildGrid() error = %v, want ErrInvalidExtent", err)
			}
		})
	}
}

func TestBuildGrid_InvalidSize(t *testing.T) {
	extent := geometry.BBox(0, 0, 10, 10)
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, 4}, {4, -1}} {
		if _, err := BuildGrid(extent, dims[0], dims[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("BuildGrid(%dx%d) error = %v, want ErrInvalidSize", dims[0], dims[1], err)
		}
	}
}

func TestSampleGrid_PixelSize(t *testing.T) {
	grid, err := BuildGrid(geometry.BBox(0, 0, 100, 50), 10, 10)
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}
	sx, sy := grid.PixelSize()
	if sx != 10 || sy != 5 {
		t.Errorf("PixelSize() = (%v, %v), want (10, 5)", sx, sy)
	}
}

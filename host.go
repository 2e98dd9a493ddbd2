package projfactors

import (
	"github.com/terrascope/geometry"

	"github.com/geoviz/projfactors/crs"
)

// CanvasState is a snapshot of the host's visible map canvas: the spatial
// extent in project CRS units and the pixel dimensions at the current
// resolution.
type CanvasState struct {
	Extent geometry.BoundingBox
	Width  int
	Height int
}

// Host is the surface of the hosting application the pipeline consumes.
// Canvas, settings store, geodesy stack and layer registry are all
// black-box collaborators; the pipeline only reads state, asks for factors
// and hands the finished layer back.
type Host interface {
	// Canvas returns the current canvas extent and pixel dimensions.
	Canvas() CanvasState

	// ProjectCRS returns the CRS the canvas is drawn in. This is also the
	// target projection whose distortion is rasterized.
	ProjectCRS() crs.CRS

	// Settings returns the host-managed settings store.
	Settings() Settings

	// Factors returns the host's own factor engine, used by the
	// host-delegated evaluator.
	Factors() FactorSource

	// Layers returns the host's layer registry.
	Layers() LayerRegistry
}

// Settings is the host-managed settings store.
type Settings interface {
	// UseProj reports the backend selection switch. True (the default)
	// selects the host-delegated evaluator; false opts into the direct
	// PROJ backend. Run reads the switch once at pipeline start; when it
	// is off, an evaluator must be injected via WithEvaluator or the run
	// fails with ErrEvaluatorRequired.
	UseProj() bool
}

// FactorSource computes projection factors through the host's geodesy
// stack. Coordinates are geographic degrees, longitude first. A point where
// factors are undefined returns an error; the pipeline records it as nodata
// and continues.
type FactorSource interface {
	Factors(target crs.CRS, lon, lat float64) (*FactorRecord, error)
}

// LayerRegistry registers finished raster layers with the host project.
type LayerRegistry interface {
	// AddRasterLayer publishes the layer. An error means the host rejected
	// it; the pipeline surfaces the error and discards the result without
	// retrying.
	AddRasterLayer(layer *Layer) error
}

// Layer is the finished raster artifact handed to the layer registry.
type Layer struct {
	// Name is the display name, e.g. "Projection Factors EPSG:25832".
	Name string

	// Path is the file the host should open: the VRT wrapper carrying the
	// band names.
	Path string

	// RasterPath is the underlying GeoTIFF the VRT references.
	RasterPath string

	// BandNames are the per-band display names in band order.
	BandNames []string

	// Extent and CRS georeference the raster.
	Extent geometry.BoundingBox
	CRS    crs.CRS
}

// Package standalone is a host implementation that works without a GUI
// application.
//
// It snapshots a canvas from constructor arguments, answers settings
// queries from plain fields, computes factors with a pure Go projection
// engine, and "publishes" layers by keeping them in memory and optionally
// rendering a pseudocolor preview PNG next to the raster. It exists so the
// pipeline can run and be tested end to end outside any GIS application,
// and doubles as the reference for wiring a real host.
package standalone

import (
	"fmt"
	"os"

	"github.com/terrascope/geometry"

	"github.com/geoviz/projfactors"
	"github.com/geoviz/projfactors/crs"
)

// Host is a self-contained projfactors.Host.
type Host struct {
	canvas  projfactors.CanvasState
	crs     crs.CRS
	useProj bool
	preview bool

	layers []*projfactors.Layer
}

// Option configures the standalone host.
type Option func(*Host)

// WithUseProj sets the backend selection switch. True (the default) keeps
// the host-delegated evaluator; false opts into the direct PROJ backend.
func WithUseProj(v bool) Option {
	return func(h *Host) { h.useProj = v }
}

// WithPreview enables rendering a pseudocolor preview PNG for every
// published layer, next to the raster file.
func WithPreview(v bool) Option {
	return func(h *Host) { h.preview = v }
}

// New creates a standalone host showing the given extent of a CRS at the
// given pixel dimensions.
func New(extent geometry.BoundingBox, width, height int, c crs.CRS, opts ...Option) *Host {
	h := &Host{
		canvas:  projfactors.CanvasState{Extent: extent, Width: width, Height: height},
		crs:     c,
		useProj: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Canvas returns the canvas snapshot.
func (h *Host) Canvas() projfactors.CanvasState { return h.canvas }

// ProjectCRS returns the canvas CRS.
func (h *Host) ProjectCRS() crs.CRS { return h.crs }

// Settings returns the host settings store.
func (h *Host) Settings() projfactors.Settings { return h }

// UseProj implements projfactors.Settings.
func (h *Host) UseProj() bool { return h.useProj }

// Factors returns the host's geodesy engine.
func (h *Host) Factors() projfactors.FactorSource { return engine{} }

// Layers returns the host's layer registry.
func (h *Host) Layers() projfactors.LayerRegistry { return h }

// AddRasterLayer implements projfactors.LayerRegistry. The layer file must
// exist; the host keeps the layer and optionally renders a preview.
func (h *Host) AddRasterLayer(layer *projfactors.Layer) error {
	if layer == nil || layer.Path == "" {
		return fmt.Errorf("standalone: layer without a file")
	}
	if _, err := os.Stat(layer.Path); err != nil {
		return fmt.Errorf("standalone: layer file: %w", err)
	}
	if h.preview {
		if err := writePreview(layer); err != nil {
			return fmt.Errorf("standalone: preview: %w", err)
		}
	}
	h.layers = append(h.layers, layer)
	return nil
}

// PublishedLayers returns the layers added so far, in publication order.
func (h *Host) PublishedLayers() []*projfactors.Layer { return h.layers }

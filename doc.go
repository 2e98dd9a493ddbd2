// Package projfactors samples a map canvas on a pixel grid and renders the
// projection distortion of the canvas CRS as a multi-band raster.
//
// # Overview
//
// For every pixel of the canvas the pipeline reprojects the pixel center to
// geographic coordinates and queries a geodesy backend for the projection
// factors at that point: meridional, parallel and areal scale, angular
// distortion, meridian convergence, meridian-parallel angle, the Tissot
// indicatrix semi-axes, and the four partial derivatives of the projection.
// Each factor becomes one Float64 band of a georeferenced GeoTIFF; a thin
// VRT wrapper attaches human-readable band names (rasters written through
// the host cannot carry band names directly). The finished layer is handed
// to the host's layer registry.
//
// # Quick Start
//
//	import (
//	    "github.com/terrascope/geometry"
//
//	    "github.com/geoviz/projfactors"
//	    "github.com/geoviz/projfactors/crs"
//	    "github.com/geoviz/projfactors/host/standalone"
//	)
//
//	utm32, _ := crs.FromAuthID("EPSG:25832")
//	h := standalone.New(geometry.BBox(500000, 5900000, 600000, 6000000), 256, 192, utm32)
//
//	layer, err := projfactors.Run(h)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Runner/Run, SampleGrid, FactorRecord, Band, BandSet, Layer
//   - Host interfaces: Host, Settings, FactorSource, LayerRegistry
//   - crs: CRS descriptions, ellipsoids and geographic transforms
//   - raster: the GeoTIFF writer/reader and the VRT band-name wrapper
//   - backend: evaluator registry (host-delegated and direct PROJ backends)
//
// # Backends
//
// Factor evaluation is pluggable. The default evaluator delegates every
// point to the host's own geodesy stack and is always available. The
// direct-library backend (backend/projlib, build tag "proj") binds PROJ
// without going through the host; it avoids per-point transform setup and is
// considerably faster, but it is only safe when the linked PROJ matches the
// version the host uses. That cannot be verified from here, so the direct
// backend is strictly opt-in via the useProj setting and is never selected
// automatically.
//
// # Coordinate System
//
// Grid order is row-major, top row first, matching raster layout: row 0 is
// the northernmost row of the canvas. Geographic coordinates are longitude/x
// first, latitude/y second, in degrees, even for authorities that declare an
// inverted axis order.
package projfactors

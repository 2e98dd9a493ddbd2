package projfactors

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/terrascope/geometry"

	"github.com/geoviz/projfactors/crs"
	"github.com/geoviz/projfactors/raster"
)

// ErrBusy is returned when Run is called while a previous invocation on the
// same Runner is still active. Overlapping runs are not supported; hosts
// should disable the triggering action for the duration of a run.
var ErrBusy = errors.New("projfactors: pipeline already running")

// ErrEvaluatorRequired is returned when the host settings opt out of the
// host-delegated evaluator but no replacement was injected. Non-default
// backends live outside this package; resolve one (e.g. with backend.New)
// and pass it in via WithEvaluator.
var ErrEvaluatorRequired = errors.New("projfactors: settings opt out of the host evaluator and none was injected")

// Runner executes the sampling pipeline. The zero value is ready to use.
// A Runner permits one invocation at a time.
type Runner struct {
	running atomic.Bool
}

var defaultRunner Runner

// Run executes the pipeline on the package-level runner.
// See [Runner.Run].
func Run(h Host, opts ...Option) (*Layer, error) {
	return defaultRunner.Run(h, opts...)
}

// Run samples the host canvas, evaluates projection factors at every pixel
// center, writes the factor bands as a GeoTIFF plus a band-naming VRT, and
// registers the result with the host's layer registry.
//
// The pipeline is strictly sequential: extent → grid → geographic
// transform → factor evaluation → band assembly → raster writing → layer
// publication. A per-point evaluation failure becomes the nodata sentinel
// in every band at that index; everything else aborts the run before a
// layer is created. Either the full band set is published or nothing is.
func (r *Runner) Run(h Host, opts ...Option) (*Layer, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.running.Store(false)

	o := defaultRunOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := Logger()

	cv := h.Canvas()
	target := h.ProjectCRS()
	log.Info("calculating projection factors for canvas",
		"crs", target.String(), "width", cv.Width, "height", cv.Height)

	grid, err := BuildGrid(cv.Extent, cv.Width, cv.Height)
	if err != nil {
		return nil, err
	}

	tr, err := crs.NewTransformer(target)
	if err != nil {
		return nil, err
	}
	geographic := tr.ToGeographic(grid.Points())

	ev := o.evaluator
	if ev == nil {
		// The settings switch is read once, here. Only the host-delegated
		// evaluator can be built from inside this package; a host that
		// opts out of it must inject the replacement.
		if s := h.Settings(); s != nil && !s.UseProj() {
			return nil, ErrEvaluatorRequired
		}
		ev = NewHostEvaluator(h.Factors())
	}
	if err := ev.Init(target); err != nil {
		return nil, fmt.Errorf("projfactors: init %s evaluator: %w", ev.Name(), err)
	}
	defer ev.Close()

	bands, failed := evaluateGrid(grid, geographic, ev)
	if failed > 0 {
		log.Warn("factors could not be calculated for all points",
			"failed", failed, "total", grid.Len())
	}
	log.Info("factors calculated", "evaluator", ev.Name(), "points", grid.Len())

	layer, err := writeLayer(grid, bands, target, o)
	if err != nil {
		return nil, err
	}

	if err := h.Layers().AddRasterLayer(layer); err != nil {
		return nil, fmt.Errorf("projfactors: host rejected layer %q: %w", layer.Name, err)
	}
	log.Info("layer published", "name", layer.Name, "path", layer.Path)
	return layer, nil
}

// evaluateGrid runs the evaluator over all transformed grid points and
// scatters the results into a fresh band set. Points without a geographic
// coordinate and points the evaluator rejects stay nodata in every band.
func evaluateGrid(grid *SampleGrid, geographic []*geometry.Point, ev FactorEvaluator) (*BandSet, int) {
	bands := NewBandSet(grid.Width(), grid.Height())
	failed := 0
	for i, pt := range geographic {
		if pt == nil {
			// The pixel had no geographic coordinate (off-world or failed
			// transform in the earlier step); keep the slot as nodata.
			bands.Scatter(i, nil)
			failed++
			continue
		}
		rec, err := ev.Evaluate(pt.X, pt.Y)
		if err != nil {
			bands.Scatter(i, nil)
			failed++
			continue
		}
		bands.Scatter(i, rec)
	}
	return bands, failed
}

func writeLayer(grid *SampleGrid, bands *BandSet, target crs.CRS, o runOptions) (*Layer, error) {
	outDir := o.outputDir
	if outDir == "" {
		dir, err := os.MkdirTemp("", "projfactors-")
		if err != nil {
			return nil, fmt.Errorf("projfactors: output directory: %w", err)
		}
		outDir = dir
	}

	name := o.layerName
	if name == "" {
		name = "Projection Factors " + displayCRS(target)
	}
	base := strings.ReplaceAll(name, ":", "_")
	base = strings.ReplaceAll(base, " ", "_")
	tifPath := filepath.Join(outDir, base+".tif")
	vrtPath := tifPath + ".vrt"

	sx, sy := grid.PixelSize()
	ds := &raster.Dataset{
		Width:      bands.Width(),
		Height:     bands.Height(),
		Origin:     [2]float64{grid.Extent().Min.X, grid.Extent().Max.Y},
		PixelScale: [2]float64{sx, sy},
		EPSG:       target.EPSG(),
		Geographic: target.IsGeographic(),
	}
	for _, b := range bands.Bands() {
		ds.Bands = append(ds.Bands, b.Data())
	}

	Logger().Debug("writing raster", "path", tifPath, "bands", len(ds.Bands))
	if err := raster.WriteGeoTIFF(tifPath, ds); err != nil {
		return nil, err
	}

	names := MetricDescriptions()
	if err := raster.WriteVRT(vrtPath, tifPath, ds, raster.VRTOptions{
		SRS:       srsText(target),
		BandNames: names,
	}); err != nil {
		return nil, err
	}

	return &Layer{
		Name:       name,
		Path:       vrtPath,
		RasterPath: tifPath,
		BandNames:  names,
		Extent:     grid.Extent(),
		CRS:        target,
	}, nil
}

func displayCRS(c crs.CRS) string {
	if c.AuthID != "" {
		return c.AuthID
	}
	return "custom CRS"
}

func srsText(c crs.CRS) string {
	if c.AuthID != "" {
		return c.AuthID
	}
	return c.Proj4
}

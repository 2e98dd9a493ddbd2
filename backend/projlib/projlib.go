//go:build proj

// Package projlib evaluates projection factors against PROJ directly,
// bypassing the host's geodesy wrapper.
//
// One projection object is created per invocation and reused for every
// point, which avoids the per-point transform setup of the host-delegated
// path and makes this backend roughly four times faster on large canvases.
// The trade-off: the PROJ linked here is not necessarily the PROJ the host
// ships, and a version mismatch silently yields factors the host would not
// produce. There is no reliable way to detect the mismatch from this side,
// so the backend is never selected automatically; it requires both the
// "proj" build tag and the useProj setting switched off.
package projlib

import (
	"fmt"
	"math"

	"github.com/pebbe/proj/v5"

	"github.com/geoviz/projfactors"
	"github.com/geoviz/projfactors/crs"
	"github.com/geoviz/projfactors/internal/tissot"
)

const degToRad = math.Pi / 180

// Evaluator computes factors through a single long-lived PROJ projection.
type Evaluator struct {
	ctx        *proj.Context
	pj         *proj.PJ
	ell        crs.Ellipsoid
	geographic bool
}

// New creates an uninitialized direct-PROJ evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Name returns the evaluator identifier.
func (e *Evaluator) Name() string { return "proj" }

// Init creates the PROJ projection for the target CRS.
func (e *Evaluator) Init(target crs.CRS) error {
	if target.Proj4 == "" {
		return fmt.Errorf("projlib: %w", crs.ErrNoDefinition)
	}
	e.ell = target.Ellipsoid()
	e.geographic = target.IsGeographic()
	if e.geographic {
		// Identity factors, no projection object needed.
		return nil
	}

	e.ctx = proj.NewContext()
	pj, err := e.ctx.Create(target.Proj4)
	if err != nil {
		e.ctx.Close()
		e.ctx = nil
		return fmt.Errorf("projlib: create projection for %v: %w", target, err)
	}
	e.pj = pj
	return nil
}

// Evaluate computes the factors at a geographic coordinate.
func (e *Evaluator) Evaluate(lon, lat float64) (*projfactors.FactorRecord, error) {
	if e.geographic {
		return projfactors.IdentityFactors(), nil
	}
	if e.pj == nil {
		return nil, fmt.Errorf("projlib: evaluator not initialized")
	}

	// proj-string transforms take radians.
	fwd := func(lo, la float64) (float64, float64, error) {
		x, y, err := e.pj.Trans(proj.Fwd, lo*degToRad, la*degToRad)
		if err != nil {
			return 0, 0, err
		}
		return x, y, nil
	}

	f, p, err := tissot.Evaluate(fwd, e.ell, lon, lat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", projfactors.ErrOutsideDomain, err)
	}
	return projfactors.FromTissot(f, p), nil
}

// Close releases the PROJ projection and context.
func (e *Evaluator) Close() {
	if e.pj != nil {
		e.pj.Close()
		e.pj = nil
	}
	if e.ctx != nil {
		e.ctx.Close()
		e.ctx = nil
	}
}

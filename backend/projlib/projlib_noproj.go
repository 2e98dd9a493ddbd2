//go:build !proj

// Package projlib evaluates projection factors against PROJ directly,
// bypassing the host's geodesy wrapper.
//
// This build does not include the PROJ binding (build tag "proj" is off):
// the evaluator registers itself so the backend name resolves, but
// initialization fails with a clear error instead of silently falling back
// to the host path.
package projlib

import (
	"errors"

	"github.com/geoviz/projfactors"
	"github.com/geoviz/projfactors/crs"
)

// ErrNotBuilt is returned by Init when the binary was built without the
// "proj" build tag.
var ErrNotBuilt = errors.New(`projlib: built without the "proj" build tag`)

// Evaluator is the direct-PROJ evaluator stub for builds without PROJ.
type Evaluator struct{}

// New creates the stub evaluator.
func New() *Evaluator { return &Evaluator{} }

// Name returns the evaluator identifier.
func (e *Evaluator) Name() string { return "proj" }

// Init always fails: the PROJ binding is not part of this build.
func (e *Evaluator) Init(crs.CRS) error { return ErrNotBuilt }

// Evaluate is never reached; Init always fails first.
func (e *Evaluator) Evaluate(lon, lat float64) (*projfactors.FactorRecord, error) {
	return nil, ErrNotBuilt
}

// Close releases nothing.
func (e *Evaluator) Close() {}

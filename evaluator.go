package projfactors

import (
	"errors"
	"fmt"

	"github.com/geoviz/projfactors/crs"
)

// Evaluation errors.
var (
	// ErrOutsideDomain marks a per-point domain failure: factors are not
	// defined at the coordinate. The pipeline records nodata and continues.
	ErrOutsideDomain = errors.New("projfactors: point outside projection domain")

	// ErrNoFactorSource is returned when the host exposes no factor engine.
	ErrNoFactorSource = errors.New("projfactors: host has no factor source")
)

// FactorEvaluator computes the factor tuple for single geographic
// coordinates against a fixed target CRS. Implementations are selected once
// per pipeline invocation and used from a single goroutine.
//
// The host-delegated evaluator in this package is the default. The direct
// PROJ evaluator lives in backend/projlib and must be opted into
// explicitly.
type FactorEvaluator interface {
	// Name returns the evaluator identifier, e.g. "host".
	Name() string

	// Init prepares the evaluator for the target CRS.
	Init(target crs.CRS) error

	// Evaluate returns the factors at a geographic coordinate (degrees,
	// longitude first). Domain failures are reported with an error that
	// wraps ErrOutsideDomain.
	Evaluate(lon, lat float64) (*FactorRecord, error)

	// Close releases evaluator resources.
	Close()
}

// HostEvaluator delegates every point to the host's factor engine. Slower
// than the direct backend (the host sets up its transform machinery per
// call) but always available and guaranteed consistent with the geodesy
// stack the rest of the host uses.
type HostEvaluator struct {
	source FactorSource
	target crs.CRS
}

// NewHostEvaluator creates the host-delegated evaluator.
func NewHostEvaluator(source FactorSource) *HostEvaluator {
	return &HostEvaluator{source: source}
}

// Name returns the evaluator identifier.
func (e *HostEvaluator) Name() string { return "host" }

// Init stores the target CRS.
func (e *HostEvaluator) Init(target crs.CRS) error {
	if e.source == nil {
		return ErrNoFactorSource
	}
	e.target = target
	return nil
}

// Evaluate queries the host factor engine for one coordinate.
func (e *HostEvaluator) Evaluate(lon, lat float64) (*FactorRecord, error) {
	rec, err := e.source.Factors(e.target, lon, lat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutsideDomain, err)
	}
	return rec, nil
}

// Close releases evaluator resources. The host engine owns its own
// lifecycle, so there is nothing to release.
func (e *HostEvaluator) Close() {}

// Package backend selects the factor evaluation backend.
//
// Two backends exist: the host-delegated evaluator (always available,
// consistent with the host's own geodesy stack) and the direct PROJ binding
// in backend/projlib (faster, opt-in, only safe when the linked PROJ
// matches the host's). Backends register themselves on import and are
// looked up by name or resolved from the host settings switch.
package backend

import (
	"errors"
	"fmt"

	"github.com/geoviz/projfactors"
)

// Backend name constants.
const (
	// BackendHost is the name of the host-delegated evaluator.
	BackendHost = "host"
	// BackendProj is the name of the direct PROJ evaluator
	// (backend/projlib, build tag "proj").
	BackendProj = "proj"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered, e.g. the direct PROJ backend in a build without it.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Factory creates an evaluator bound to a host. The host-delegated backend
// needs the host's factor engine; the direct backend ignores the host
// entirely, which is exactly its risk.
type Factory func(h projfactors.Host) (projfactors.FactorEvaluator, error)

// init registers the host-delegated backend, which is always available.
func init() {
	Register(BackendHost, func(h projfactors.Host) (projfactors.FactorEvaluator, error) {
		return projfactors.NewHostEvaluator(h.Factors()), nil
	})
}

// FromSettings resolves the backend name selected by the host settings
// switch: useProj true (the default) is the host-delegated evaluator,
// false opts into the direct PROJ backend.
func FromSettings(s projfactors.Settings) string {
	if s == nil || s.UseProj() {
		return BackendHost
	}
	return BackendProj
}

// New creates the evaluator with the given name for a host.
// Returns ErrBackendNotAvailable for unregistered names.
func New(name string, h projfactors.Host) (projfactors.FactorEvaluator, error) {
	factory := Get(name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(h)
}

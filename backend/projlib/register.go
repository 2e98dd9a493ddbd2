package projlib

import (
	"github.com/geoviz/projfactors"
	"github.com/geoviz/projfactors/backend"
)

// init registers the direct-PROJ backend on package import.
func init() {
	backend.Register(backend.BackendProj, func(projfactors.Host) (projfactors.FactorEvaluator, error) {
		return New(), nil
	})
}

package standalone

import (
	"fmt"
	"math"

	"github.com/terrascope/geometry"
	"github.com/terrascope/proj4go"

	"github.com/geoviz/projfactors"
	"github.com/geoviz/projfactors/crs"
	"github.com/geoviz/projfactors/internal/tissot"
)

// engine is the standalone host's geodesy stack: projection factors from
// numerically differentiated proj4go forward transforms. This is the
// "host-delegated" path in this host; the direct PROJ backend bypasses it.
type engine struct{}

// Factors implements projfactors.FactorSource.
func (engine) Factors(target crs.CRS, lon, lat float64) (*projfactors.FactorRecord, error) {
	if target.Proj4 == "" {
		return nil, crs.ErrNoDefinition
	}
	if target.IsGeographic() {
		// An unprojected reference used as its own target has no
		// distortion.
		return projfactors.IdentityFactors(), nil
	}
	if lat <= -90 || lat >= 90 || lon <= -180 || lon >= 180 {
		return nil, fmt.Errorf("standalone: (%v, %v) outside geographic bounds", lon, lat)
	}

	fwd := func(lo, la float64) (float64, float64, error) {
		pts := []geometry.Point{{X: lo, Y: la}}
		if err := proj4go.Forwards(target.Proj4, pts); err != nil {
			return 0, 0, err
		}
		x, y := pts[0].X, pts[0].Y
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			return 0, 0, fmt.Errorf("standalone: projection of (%v, %v) is not finite", lo, la)
		}
		return x, y, nil
	}

	f, p, err := tissot.Evaluate(fwd, target.Ellipsoid(), lon, lat)
	if err != nil {
		return nil, err
	}
	return projfactors.FromTissot(f, p), nil
}

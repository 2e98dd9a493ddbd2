package projfactors

import (
	"math"

	"github.com/geoviz/projfactors/internal/tissot"
)

// Metric identifies one projection factor band.
type Metric struct {
	// ID is the field name the geodesy stack exposes, e.g. "arealScale".
	ID string
	// Description is the human-readable band name attached via the VRT
	// wrapper.
	Description string
}

// Metrics lists all factor bands in their fixed raster band order.
// IDs and descriptions follow the factor tuple of the geodesy stack.
var Metrics = []Metric{
	{"angularDistortion", "Angular Distortion"},
	{"arealScale", "Areal Scale"},
	{"dxDlam", "Partial derivative ∂x/∂λ"},
	{"dxDphi", "Partial derivative ∂x/∂ϕ"},
	{"dyDlam", "Partial derivative ∂y/∂λ"},
	{"dyDphi", "Partial derivative ∂y/∂ϕ"},
	{"meridianConvergence", "Meridian Convergence (aka Grid Declination) (in degrees)"},
	{"meridianParallelAngle", "Meridian Parallel Angle (in degrees)"},
	{"meridionalScale", "Meridional Scale"},
	{"parallelScale", "Parallel Scale"},
	{"tissotSemimajor", "Maximum scale factor (Tissot Semimajor)"},
	{"tissotSemiminor", "Minimum scale factor (Tissot Semiminor)"},
}

// MetricDescriptions returns the band names in band order.
func MetricDescriptions() []string {
	names := make([]string, len(Metrics))
	for i, m := range Metrics {
		names[i] = m.Description
	}
	return names
}

// FactorRecord is the fixed tuple of distortion metrics at one grid point.
// Scales are dimensionless ratios, angular distortion is in radians,
// meridian convergence and the meridian-parallel angle are in degrees, and
// the partial derivatives are per radian.
type FactorRecord struct {
	AngularDistortion     float64
	ArealScale            float64
	DxDlam                float64
	DxDphi                float64
	DyDlam                float64
	DyDphi                float64
	MeridianConvergence   float64
	MeridianParallelAngle float64
	MeridionalScale       float64
	ParallelScale         float64
	TissotSemimajor       float64
	TissotSemiminor       float64
}

// Value returns the metric with the given ID, NaN for unknown IDs.
func (r *FactorRecord) Value(id string) float64 {
	switch id {
	case "angularDistortion":
		return r.AngularDistortion
	case "arealScale":
		return r.ArealScale
	case "dxDlam":
		return r.DxDlam
	case "dxDphi":
		return r.DxDphi
	case "dyDlam":
		return r.DyDlam
	case "dyDphi":
		return r.DyDphi
	case "meridianConvergence":
		return r.MeridianConvergence
	case "meridianParallelAngle":
		return r.MeridianParallelAngle
	case "meridionalScale":
		return r.MeridionalScale
	case "parallelScale":
		return r.ParallelScale
	case "tissotSemimajor":
		return r.TissotSemimajor
	case "tissotSemiminor":
		return r.TissotSemiminor
	}
	return math.NaN()
}

// IdentityFactors is the record of an unprojected geographic reference used
// as its own target: unit scales, no distortion, meridians orthogonal to
// parallels.
func IdentityFactors() *FactorRecord {
	return &FactorRecord{
		ArealScale:            1,
		DxDlam:                1,
		DyDphi:                1,
		MeridianParallelAngle: 90,
		MeridionalScale:       1,
		ParallelScale:         1,
		TissotSemimajor:       1,
		TissotSemiminor:       1,
	}
}

// FromTissot assembles a FactorRecord from the shared factor math.
func FromTissot(f tissot.Factors, p tissot.Partials) *FactorRecord {
	return &FactorRecord{
		AngularDistortion:     f.AngularDistortion,
		ArealScale:            f.ArealScale,
		DxDlam:                p.DxDlam,
		DxDphi:                p.DxDphi,
		DyDlam:                p.DyDlam,
		DyDphi:                p.DyDphi,
		MeridianConvergence:   f.MeridianConvergence,
		MeridianParallelAngle: f.MeridianParallelAngle,
		MeridionalScale:       f.MeridionalScale,
		ParallelScale:         f.ParallelScale,
		TissotSemimajor:       f.TissotSemimajor,
		TissotSemiminor:       f.TissotSemiminor,
	}
}

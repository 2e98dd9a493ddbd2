// Package tissot derives projection distortion factors from the partial
// derivatives of a forward projection.
//
// Both factor backends funnel through this package: they only differ in
// which engine performs the forward transform. The derivatives are taken
// numerically with central differences, the factor formulas follow the
// classic map projection literature (Snyder, "Map Projections - A Working
// Manual", eqs. 4-2 through 4-13).
package tissot

import (
	"errors"
	"fmt"
	"math"

	"github.com/geoviz/projfactors/crs"
)

// ErrSingular is returned when factors are undefined at a coordinate,
// e.g. on a pole where the parallel radius vanishes.
var ErrSingular = errors.New("tissot: factors undefined at coordinate")

// stepRad is the central-difference step in radians. Small enough for the
// curvature error to vanish, large enough to keep float64 cancellation
// noise below 1e-8 relative on meter-scale outputs.
const stepRad = 1e-5

const degToRad = math.Pi / 180

// Forward projects a geographic coordinate (degrees, longitude first) into
// the target CRS. Implementations report domain failures as errors.
type Forward func(lon, lat float64) (x, y float64, err error)

// Partials holds the four partial derivatives of the projected coordinates
// with respect to longitude and latitude, per radian.
type Partials struct {
	DxDlam float64 // ∂x/∂λ
	DxDphi float64 // ∂x/∂ϕ
	DyDlam float64 // ∂y/∂λ
	DyDphi float64 // ∂y/∂ϕ
}

// Factors is the scalar distortion tuple at one coordinate.
// Scales are ratios, angular distortion is in radians, convergence and the
// meridian-parallel angle are in degrees.
type Factors struct {
	MeridionalScale       float64
	ParallelScale         float64
	ArealScale            float64
	AngularDistortion     float64
	MeridianConvergence   float64
	MeridianParallelAngle float64
	TissotSemimajor       float64
	TissotSemiminor       float64
}

// Derive computes the partial derivatives of fwd at lon/lat (degrees) with
// central differences. Any failed or non-finite corner projection makes the
// whole point undefined.
func Derive(fwd Forward, lon, lat float64) (Partials, error) {
	hDeg := stepRad / degToRad

	xe, ye, err := fwd(lon+hDeg, lat)
	if err != nil {
		return Partials{}, err
	}
	xw, yw, err := fwd(lon-hDeg, lat)
	if err != nil {
		return Partials{}, err
	}
	xn, yn, err := fwd(lon, lat+hDeg)
	if err != nil {
		return Partials{}, err
	}
	xs, ys, err := fwd(lon, lat-hDeg)
	if err != nil {
		return Partials{}, err
	}

	p := Partials{
		DxDlam: (xe - xw) / (2 * stepRad),
		DxDphi: (xn - xs) / (2 * stepRad),
		DyDlam: (ye - yw) / (2 * stepRad),
		DyDphi: (yn - ys) / (2 * stepRad),
	}
	if !finite(p.DxDlam) || !finite(p.DxDphi) || !finite(p.DyDlam) || !finite(p.DyDphi) {
		return Partials{}, fmt.Errorf("%w: non-finite derivatives at (%v, %v)", ErrSingular, lon, lat)
	}
	return p, nil
}

// FromPartials turns partial derivatives into the factor tuple for a point
// at latitude lat (degrees) on the given ellipsoid.
func FromPartials(p Partials, ell crs.Ellipsoid, lat float64) (Factors, error) {
	phi := lat * degToRad
	sinPhi, cosPhi := math.Sincos(phi)
	if cosPhi < 1e-12 {
		return Factors{}, fmt.Errorf("%w: latitude %v", ErrSingular, lat)
	}

	// Meridian and prime vertical curvature radii.
	t := 1 - ell.Es*sinPhi*sinPhi
	n := ell.A / math.Sqrt(t)
	m := ell.A * (1 - ell.Es) / (t * math.Sqrt(t))

	h := math.Hypot(p.DxDphi, p.DyDphi) / m
	k := math.Hypot(p.DxDlam, p.DyDlam) / (n * cosPhi)
	s := (p.DyDphi*p.DxDlam - p.DxDphi*p.DyDlam) / (m * n * cosPhi)

	if h == 0 || k == 0 {
		return Factors{}, fmt.Errorf("%w: degenerate scale at latitude %v", ErrSingular, lat)
	}

	// Tissot semi-axes via a'+b' and a'-b' (Snyder 4-12a, 4-13).
	sum := math.Sqrt(math.Max(h*h+k*k+2*s, 0))
	diff := math.Sqrt(math.Max(h*h+k*k-2*s, 0))
	semimajor := (sum + diff) / 2
	semiminor := (sum - diff) / 2

	omega := 0.0
	if sum > 0 {
		omega = 2 * math.Asin(clamp1(diff/sum))
	}

	conv := -math.Atan2(p.DxDphi, p.DyDphi)
	theta := math.Asin(clamp1(s / (h * k)))

	f := Factors{
		MeridionalScale:       h,
		ParallelScale:         k,
		ArealScale:            s,
		AngularDistortion:     omega,
		MeridianConvergence:   conv / degToRad,
		MeridianParallelAngle: theta / degToRad,
		TissotSemimajor:       semimajor,
		TissotSemiminor:       semiminor,
	}
	if !finite(f.MeridionalScale) || !finite(f.ParallelScale) || !finite(f.ArealScale) {
		return Factors{}, fmt.Errorf("%w: non-finite factors at latitude %v", ErrSingular, lat)
	}
	return f, nil
}

// Evaluate is the common path of both backends: derive partials of fwd at
// the coordinate and convert them to factors.
func Evaluate(fwd Forward, ell crs.Ellipsoid, lon, lat float64) (Factors, Partials, error) {
	p, err := Derive(fwd, lon, lat)
	if err != nil {
		return Factors{}, Partials{}, err
	}
	f, err := FromPartials(p, ell, lat)
	if err != nil {
		return Factors{}, Partials{}, err
	}
	return f, p, nil
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

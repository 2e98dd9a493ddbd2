package crs

import (
	"strconv"
	"strings"
)

// Ellipsoid carries the reference ellipsoid parameters the factor formulas
// need: the semi-major axis in meters and the squared first eccentricity.
type Ellipsoid struct {
	A  float64 // semi-major axis (meters)
	Es float64 // first eccentricity squared; 0 for a sphere
}

// namedEllipsoids lists the ellipsoids accepted via +ellps=.
// Values follow the PROJ ellipsoid table.
var namedEllipsoids = map[string]Ellipsoid{
	"WGS84":  fromInverseFlattening(6378137.0, 298.257223563),
	"GRS80":  fromInverseFlattening(6378137.0, 298.257222101),
	"intl":   fromInverseFlattening(6378388.0, 297.0),
	"bessel": fromInverseFlattening(6377397.155, 299.1528128),
	"sphere": {A: 6370997.0, Es: 0},
}

func fromInverseFlattening(a, rf float64) Ellipsoid {
	f := 1 / rf
	return Ellipsoid{A: a, Es: f * (2 - f)}
}

// Ellipsoid derives the reference ellipsoid from the proj4 definition.
// Explicit +a/+b/+rf/+R parameters win over +ellps and +datum; without any
// ellipsoid hint the WGS84 ellipsoid is assumed.
func (c CRS) Ellipsoid() Ellipsoid {
	params := map[string]string{}
	for _, tok := range strings.Fields(c.Proj4) {
		tok = strings.TrimPrefix(tok, "+")
		if k, v, ok := strings.Cut(tok, "="); ok {
			params[k] = v
		}
	}

	if r, ok := floatParam(params, "R"); ok {
		return Ellipsoid{A: r, Es: 0}
	}
	if a, ok := floatParam(params, "a"); ok {
		if b, ok := floatParam(params, "b"); ok {
			es := 1 - (b*b)/(a*a)
			return Ellipsoid{A: a, Es: es}
		}
		if rf, ok := floatParam(params, "rf"); ok {
			return fromInverseFlattening(a, rf)
		}
		return Ellipsoid{A: a, Es: 0}
	}
	if name, ok := params["ellps"]; ok {
		if e, ok := namedEllipsoids[name]; ok {
			return e
		}
	}
	if datum, ok := params["datum"]; ok && datum == "WGS84" {
		return namedEllipsoids["WGS84"]
	}
	return namedEllipsoids["WGS84"]
}

func floatParam(params map[string]string, key string) (float64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

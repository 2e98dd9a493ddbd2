package projfactors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/geoviz/projfactors/crs"
)

// fakeSource is a FactorSource with scripted responses.
type fakeSource struct {
	rec  *FactorRecord
	err  error
	seen [][2]float64
}

func (s *fakeSource) Factors(_ crs.CRS, lon, lat float64) (*FactorRecord, error) {
	s.seen = append(s.seen, [2]float64{lon, lat})
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

func TestHostEvaluator_Name(t *testing.T) {
	e := NewHostEvaluator(&fakeSource{})
	if e.Name() != "host" {
		t.Errorf("Name() = %q, want %q", e.Name(), "host")
	}
}

func TestHostEvaluator_Delegates(t *testing.T) {
	want := IdentityFactors()
	src := &fakeSource{rec: want}
	e := NewHostEvaluator(src)
	if err := e.Init(crs.WGS84()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer e.Close()

	got, err := e.Evaluate(9.99, 53.55)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != want {
		t.Errorf("Evaluate() = %+v, want the source record", got)
	}
	if len(src.seen) != 1 || src.seen[0] != [2]float64{9.99, 53.55} {
		t.Errorf("source saw %v, want one call with (9.99, 53.55)", src.seen)
	}
}

func TestHostEvaluator_DomainErrorWrapped(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("factors invalid at point")}
	e := NewHostEvaluator(src)
	if err := e.Init(crs.WGS84()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	_, err := e.Evaluate(500000, 0)
	if !errors.Is(err, ErrOutsideDomain) {
		t.Errorf("Evaluate() error = %v, want ErrOutsideDomain", err)
	}
}

func TestHostEvaluator_NoSource(t *testing.T) {
	e := NewHostEvaluator(nil)
	if err := e.Init(crs.WGS84()); !errors.Is(err, ErrNoFactorSource) {
		t.Errorf("Init() error = %v, want ErrNoFactorSource", err)
	}
}

//go:build !proj

package projlib

import (
	"errors"
	"testing"

	"github.com/geoviz/projfactors/backend"
	"github.com/geoviz/projfactors/crs"
)

func TestStubInitFails(t *testing.T) {
	e := New()
	if e.Name() != "proj" {
		t.Errorf("Name() = %q, want %q", e.Name(), "proj")
	}
	if err := e.Init(crs.WGS84()); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("Init() error = %v, want ErrNotBuilt", err)
	}
	e.Close()
}

func TestStubStillRegisters(t *testing.T) {
	// The backend name must resolve even without the binding so the
	// settings switch produces a clear init error instead of a silent
	// fallback.
	if !backend.IsRegistered(backend.BackendProj) {
		t.Fatal("proj backend should register on package import")
	}
}

package backend

import (
	"errors"
	"testing"

	"github.com/terrascope/geometry"

	"github.com/geoviz/projfactors"
	"github.com/geoviz/projfactors/crs"
)

// fakeHost is the minimal Host for registry tests.
type fakeHost struct{ useProj bool }

func (h *fakeHost) Canvas() projfactors.CanvasState {
	return projfactors.CanvasState{Extent: geometry.BBox(0, 0, 1, 1), Width: 1, Height: 1}
}
func (h *fakeHost) ProjectCRS() crs.CRS { return crs.WGS84() }

func (h *fakeHost) Settings() projfactors.Settings { return h }

func (h *fakeHost) UseProj() bool { return h.useProj }

func (h *fakeHost) Factors() projfactors.FactorSource { return nil }

func (h *fakeHost) Layers() projfactors.LayerRegistry { return nil }

func TestHostBackendRegistered(t *testing.T) {
	if !IsRegistered(BackendHost) {
		t.Fatal("host backend should register on package import")
	}

	ev, err := New(BackendHost, &fakeHost{useProj: true})
	if err != nil {
		t.Fatalf("New(host) error = %v", err)
	}
	if ev.Name() != BackendHost {
		t.Errorf("Name() = %q, want %q", ev.Name(), BackendHost)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New("no-such-backend", &fakeHost{}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("New() error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegisterAndUnregister(t *testing.T) {
	const name = "test-backend"
	Register(name, func(projfactors.Host) (projfactors.FactorEvaluator, error) {
		return projfactors.NewHostEvaluator(nil), nil
	})
	t.Cleanup(func() { Unregister(name) })

	if !IsRegistered(name) {
		t.Error("IsRegistered() = false after Register")
	}
	found := false
	for _, n := range Available() {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, missing %q", Available(), name)
	}

	Unregister(name)
	if IsRegistered(name) {
		t.Error("IsRegistered() = true after Unregister")
	}
	if Get(name) != nil {
		t.Error("Get() should be nil after Unregister")
	}
}

func TestFromSettings(t *testing.T) {
	if got := FromSettings(&fakeHost{useProj: true}); got != BackendHost {
		t.Errorf("FromSettings(useProj=true) = %q, want %q", got, BackendHost)
	}
	if got := FromSettings(&fakeHost{useProj: false}); got != BackendProj {
		t.Errorf("FromSettings(useProj=false) = %q, want %q", got, BackendProj)
	}
	// Without a settings store the safe default is the host path.
	if got := FromSettings(nil); got != BackendHost {
		t.Errorf("FromSettings(nil) = %q, want %q", got, BackendHost)
	}
}

package projfactors

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/terrascope/geometry"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Default logger must be disabled at all levels so stages pay nothing
	// for their log calls.
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
	if err := (nopHandler{}).Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
}

// TestSetLogger_PipelineStagesObserve verifies that code calling Logger()
// internally picks up a logger installed via SetLogger: the grid builder
// logs its dimensions at debug level.
func TestSetLogger_PipelineStagesObserve(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	if _, err := BuildGrid(geometry.BBox(0, 0, 10, 10), 5, 4); err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("sample grid built")) {
		t.Errorf("grid builder did not log through the installed logger: %q", out)
	}
	for _, attr := range []string{"width=5", "height=4", "points=20"} {
		if !bytes.Contains(buf.Bytes(), []byte(attr)) {
			t.Errorf("log output missing %q: %q", attr, out)
		}
	}
}

func TestSetLogger_NilRestoresSilence(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should install the nop logger, not nil")
	}
	l.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("nop logger wrote output: %q", buf.String())
	}
}

// TestLogger_ConcurrentSwap: grid builds racing with logger swaps must
// never observe a nil logger or panic.
func TestLogger_ConcurrentSwap(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 50

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := BuildGrid(geometry.BBox(0, 0, 4, 4), 2, 2); err != nil {
				t.Errorf("BuildGrid() error = %v", err)
			}
		}()
	}
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogger(slog.New(nopHandler{}))
			SetLogger(nil)
		}()
	}

	wg.Wait()
}

package services_test

import (
	"errors"
	"strings"
	"testing"

	"tangle/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 2")
	err := services.Wrap(services.ErrExternalTool, "eeg", "run classifier", "script failed", base)

	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped base error to survive")
	}
	for _, fragment := range []string{"eeg", "run classifier", "script failed"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("error %q missing fragment %q", err, fragment)
		}
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	err := services.Wrap(nil, "adni", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("nil marker should default to ErrExternalTool, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := services.Truncate("  short  ", 200); got != "short" {
		t.Fatalf("Truncate trimmed value = %q", got)
	}
	long := strings.Repeat("x", 300)
	if got := services.Truncate(long, 200); len(got) != 200 {
		t.Fatalf("Truncate length = %d, want 200", len(got))
	}
}

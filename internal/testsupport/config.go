// Package testsupport provides shared constructors for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"tangle/internal/config"
	"tangle/internal/store"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataRoot = filepath.Join(base, "data")
	cfg.Paths.OutputDir = filepath.Join(base, "outputs")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ExternalDir = filepath.Join(base, "external")
	cfg.Run.ToolTimeout = 5

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSimulation toggles the synthesis fallback.
func WithSimulation(enabled bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Run.SimulateIfMissing = enabled
	}
}

// WithLocale sets the verdict locale.
func WithLocale(locale string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Run.Locale = locale
	}
}

// NewStore opens an output store rooted at the config's output directory.
func NewStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()
	st, err := store.New(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

// MkdirAll creates a directory tree under the test, failing the test on error.
func MkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

// WriteFile writes content to path, creating parent directories first.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

package preflight_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tangle/internal/preflight"
	"tangle/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	base := t.TempDir()

	result := preflight.CheckDirectoryAccess("Data root", base)
	if !result.Passed {
		t.Fatalf("existing directory should pass: %+v", result)
	}

	result = preflight.CheckDirectoryAccess("Data root", filepath.Join(base, "missing"))
	if result.Passed {
		t.Fatalf("missing directory should fail: %+v", result)
	}

	file := filepath.Join(base, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = preflight.CheckDirectoryAccess("Data root", file)
	if result.Passed {
		t.Fatalf("regular file should fail: %+v", result)
	}
}

func TestCheckDataLayout(t *testing.T) {
	base := t.TempDir()
	testsupport.MkdirAll(t, filepath.Join(base, "EEG_LEAD"))
	testsupport.MkdirAll(t, filepath.Join(base, "Proteomics"))

	results := preflight.CheckDataLayout(base)
	if len(results) != 5 {
		t.Fatalf("expected 5 layout checks, got %d", len(results))
	}

	byName := make(map[string]preflight.Result, len(results))
	for _, result := range results {
		byName[result.Name] = result
	}
	if !byName["EEG inputs"].Passed {
		t.Fatalf("EEG layout should pass: %+v", byName["EEG inputs"])
	}
	if byName["MRI+PET inputs"].Passed {
		t.Fatalf("MRI+PET layout should fail: %+v", byName["MRI+PET inputs"])
	}
	// Proteomics needs its raw CSV, not just the folder.
	if byName["Proteomics inputs"].Passed {
		t.Fatalf("Proteomics layout without the raw CSV should fail: %+v", byName["Proteomics inputs"])
	}

	testsupport.WriteFile(t, filepath.Join(base, "Proteomics", "proteomics_raw.csv"), "id,value\n")
	results = preflight.CheckDataLayout(base)
	for _, result := range results {
		if result.Name == "Proteomics inputs" && !result.Passed {
			t.Fatalf("Proteomics layout with the raw CSV should pass: %+v", result)
		}
	}
}

func TestRunAllCoversDirectoriesAndLayout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MkdirAll(t, cfg.Paths.DataRoot)
	testsupport.MkdirAll(t, cfg.Paths.OutputDir)
	testsupport.MkdirAll(t, cfg.Paths.LogDir)

	results := preflight.RunAll(context.Background(), cfg)
	// 3 directory checks plus 5 layout checks.
	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d: %+v", len(results), results)
	}

	if results := preflight.RunAll(context.Background(), nil); results != nil {
		t.Fatalf("nil config should produce no checks, got %+v", results)
	}
}

func TestCheckSystemDepsRespectsSimulation(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSimulation(true))
	for _, status := range preflight.CheckSystemDeps(context.Background(), cfg) {
		if !status.Optional {
			t.Fatalf("%s should be optional under simulation", status.Name)
		}
	}
}

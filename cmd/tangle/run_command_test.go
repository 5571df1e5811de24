package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tangle/internal/modality"
)

func TestRunCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populateDataRoot(t)

	out, _, err := runCLI(t, env, "run", "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var results map[string]modality.Result
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("parse run output: %v\n%s", err, out)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 module results, got %d", len(results))
	}
	for _, name := range modality.Order() {
		result, ok := results[name]
		if !ok {
			t.Fatalf("module %s missing from results", name)
		}
		if result.Status != modality.StatusSuccess {
			t.Fatalf("module %s not successful: %+v", name, result)
		}
		if len(result.Predictions) == 0 {
			t.Fatalf("module %s has no predictions", name)
		}
	}

	if _, err := os.Stat(filepath.Join(env.outputDir, "aggregate_results.json")); err != nil {
		t.Fatalf("aggregate not written: %v", err)
	}
}

func TestRunCommandTableOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populateDataRoot(t)

	out, _, err := runCLI(t, env, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "mri_pet")
	requireContains(t, out, "proteomics")
	requireContains(t, out, "Outputs written to")
	// The human summary names every modality in display form.
	requireContains(t, out, "MRI+PET:")
}

func TestRunCommandMissingFoldersStillSucceeds(t *testing.T) {
	env := setupCLITestEnv(t)
	// Data root exists but contains none of the expected folders.

	out, _, err := runCLI(t, env, "run", "--json")
	if err != nil {
		t.Fatalf("run should not fail on missing inputs: %v", err)
	}

	var results map[string]modality.Result
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("parse run output: %v", err)
	}
	for name, result := range results {
		if result.Status != modality.StatusError {
			t.Fatalf("module %s should report an error: %+v", name, result)
		}
	}
}

func TestRunCommandDataRootOverride(t *testing.T) {
	env := setupCLITestEnv(t)

	alt := filepath.Join(env.baseDir, "alt-data")
	if err := os.MkdirAll(filepath.Join(alt, "EEG_LEAD"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, env, "run", "--data-root", alt, "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var results map[string]modality.Result
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("parse run output: %v", err)
	}
	if results["eeg"].Status != modality.StatusSuccess {
		t.Fatalf("eeg should succeed under the alternate root: %+v", results["eeg"])
	}
	if results["mri_pet"].Status != modality.StatusError {
		t.Fatalf("mri_pet should fail under the alternate root: %+v", results["mri_pet"])
	}
}

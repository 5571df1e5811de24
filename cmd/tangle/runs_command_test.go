package main

import (
	"encoding/json"
	"testing"

	"tangle/internal/runlog"
)

func TestRunsCommandEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "runs")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestRunsCommandListsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populateDataRoot(t)

	if _, _, err := runCLI(t, env, "run", "--json"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, _, err := runCLI(t, env, "run", "--json"); err != nil {
		t.Fatalf("second run: %v", err)
	}

	out, _, err := runCLI(t, env, "runs", "--json")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}

	var runs []runlog.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("parse runs output: %v\n%s", err, out)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	for _, run := range runs {
		if run.FinishedAt == nil {
			t.Fatalf("run %s never finished", run.ID)
		}
		if run.Modules["eeg"] != "success" {
			t.Fatalf("run %s module statuses = %v", run.ID, run.Modules)
		}
	}

	table, _, err := runCLI(t, env, "runs", "--limit", "1")
	if err != nil {
		t.Fatalf("runs with limit: %v", err)
	}
	requireContains(t, table, runs[0].ID)
}

package main

import (
	"testing"
)

func TestLogsCommandEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "logs")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "No log entries available")
}

func TestLogsCommandShowsRunEntries(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populateDataRoot(t)

	if _, _, err := runCLI(t, env, "run", "--json"); err != nil {
		t.Fatalf("run: %v", err)
	}

	out, _, err := runCLI(t, env, "logs", "--lines", "0")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "run started")
	requireContains(t, out, "run completed")
}

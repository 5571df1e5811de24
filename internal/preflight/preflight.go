package preflight

import (
	"context"

	"tangle/internal/config"
	"tangle/internal/deps"
	"tangle/internal/runner"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data root", cfg.Paths.DataRoot))
	results = append(results, CheckDirectoryAccess("Output store", cfg.Paths.OutputDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	results = append(results, CheckDataLayout(cfg.Paths.DataRoot)...)

	return results
}

// CheckDataLayout reports which of the expected input folders exist under
// dataRoot. A missing folder is not fatal; the matching pipeline records an
// error result instead of running.
func CheckDataLayout(dataRoot string) []Result {
	results := make([]Result, 0, 5)
	for _, def := range runner.Definitions() {
		results = append(results, CheckInputFolder(dataRoot, def))
	}
	return results
}

// CheckSystemDeps evaluates the external interpreters for the given config.
// With simulation enabled the interpreters are reported as optional.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.PipelineRequirements(cfg.Run.SimulateIfMissing))
}

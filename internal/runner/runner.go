package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tangle/internal/config"
	"tangle/internal/logging"
	"tangle/internal/modality"
	"tangle/internal/services"
	"tangle/internal/store"
)

// Runner phases reported through the progress callback.
const (
	PhaseQueued     = "queued"
	PhaseStarting   = "starting"
	PhaseRunning    = "running"
	PhaseSimulating = "simulating"
	PhaseCompleted  = "completed"
	PhaseError      = "error"
)

// ProgressFunc receives live runner updates. It is UI feedback only and has
// no effect on control flow or results.
type ProgressFunc func(module, phase string, fraction float64, message string)

// Runner drives one modality pipeline.
type Runner struct {
	def    Definition
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger
	exec   Executor
}

// Option configures a Runner.
type Option func(*Runner)

// WithExecutor injects a custom subprocess executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// New constructs a Runner for the given modality definition.
func New(def Definition, cfg *config.Config, st *store.Store, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		def:    def,
		cfg:    cfg,
		store:  st,
		logger: logging.NewComponentLogger(logger, def.Name).With(logging.String(logging.FieldModule, def.Name)),
		exec:   NewExecutor(cfg.Run.ToolTimeout),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the modality name.
func (r *Runner) Name() string {
	return r.def.Name
}

// Run executes the pipeline for dataRoot. Missing inputs and tool failures
// are reported inside the returned result; a non-nil error only indicates an
// output-store fault.
func (r *Runner) Run(ctx context.Context, dataRoot string, progress ProgressFunc) (modality.Result, error) {
	report := func(phase string, fraction float64, message string) {
		if progress != nil {
			progress(r.def.Name, phase, fraction, message)
		}
	}

	report(PhaseStarting, 0.0, "Starting "+modality.DisplayName(r.def.Name))
	r.logger.Info("pipeline started", logging.String("data_root", dataRoot))

	expected := filepath.Join(dataRoot, r.def.ExpectedSubdir)
	if result, missing := r.checkInputs(expected); missing {
		report(PhaseError, 0.0, result.Interpretation)
		r.logger.Warn("expected input missing", logging.String("path", expected))
		return result, r.persist(result)
	}

	externalDir := r.cfg.ExternalProjectDir(r.def.ExternalProject)
	if !r.cfg.Run.SimulateIfMissing && dirExists(externalDir) {
		result := r.runTool(ctx, externalDir, expected, report)
		if r.def.SynthAfterTool && result.Status == modality.StatusSuccess {
			return r.synthesize(expected, report)
		}
		report(string(result.Status), 1.0, result.Interpretation)
		return result, r.persist(result)
	}

	return r.synthesize(expected, report)
}

func (r *Runner) checkInputs(expected string) (modality.Result, bool) {
	if !dirExists(expected) {
		return modality.Errorf(fmt.Sprintf("Expected %s folder not found at %s", r.def.ExpectedSubdir, expected)), true
	}
	if r.def.RequiredFile != "" {
		required := filepath.Join(expected, r.def.RequiredFile)
		if _, err := os.Stat(required); err != nil {
			return modality.Errorf("Expected " + required), true
		}
	}
	return modality.Result{}, false
}

func (r *Runner) runTool(ctx context.Context, externalDir, expected string, report func(string, float64, string)) modality.Result {
	binary, args, err := r.def.ToolCommand(externalDir, expected)
	if err != nil {
		return modality.Errorf(err.Error())
	}

	report(PhaseRunning, 0.2, "Launching "+binary+" for "+modality.DisplayName(r.def.Name))
	r.logger.Info("launching external tool", logging.String("binary", binary))

	_, stderr, err := r.exec.Run(ctx, externalDir, binary, args)
	if err != nil {
		detail := services.Truncate(stderr, 200)
		if detail == "" {
			detail = err.Error()
		}
		if errors.Is(err, services.ErrTimeout) {
			detail = "timed out: " + detail
		}
		r.logger.Error("external tool failed", logging.Error(err))
		return modality.Errorf("External script failed: " + detail)
	}

	return r.def.ToolSuccess()
}

func (r *Runner) synthesize(expected string, report func(string, float64, string)) (modality.Result, error) {
	report(PhaseSimulating, 0.3, "External project missing or simulation enabled; producing demo results")

	result := r.def.Demo()
	subjects := discoverSubjects(expected, r.def.Discovery)
	result.Predictions = synthesizePredictions(subjects, r.def.Seed, r.def.SimBase, r.def.SimSigma)

	if err := r.persist(result); err != nil {
		return result, err
	}
	report(PhaseCompleted, 1.0, result.Interpretation)
	r.logger.Info("pipeline completed",
		logging.String("status", string(result.Status)),
		logging.Int("predictions", len(result.Predictions)),
	)
	return result, nil
}

func (r *Runner) persist(result modality.Result) error {
	if err := r.store.WriteSummary(r.def.Name, result); err != nil {
		return services.Wrap(nil, r.def.Name, "persist summary", "", err)
	}
	if len(result.Predictions) > 0 {
		if err := r.store.WritePredictions(r.def.Name, result.Predictions); err != nil {
			return services.Wrap(nil, r.def.Name, "persist predictions", "", err)
		}
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

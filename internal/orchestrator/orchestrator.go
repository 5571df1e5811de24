package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"tangle/internal/config"
	"tangle/internal/logging"
	"tangle/internal/modality"
	"tangle/internal/runlog"
	"tangle/internal/runner"
	"tangle/internal/store"
)

// ModalityRunner is the contract the orchestrator needs from each pipeline.
type ModalityRunner interface {
	Name() string
	Run(ctx context.Context, dataRoot string, progress runner.ProgressFunc) (modality.Result, error)
}

// Orchestrator sequences the modality runners and persists the aggregate.
type Orchestrator struct {
	cfg     *config.Config
	store   *store.Store
	ledger  *runlog.Ledger
	logger  *slog.Logger
	runners []ModalityRunner
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRunners replaces the default runner set (primarily for tests).
func WithRunners(runners ...ModalityRunner) Option {
	return func(o *Orchestrator) {
		if len(runners) > 0 {
			o.runners = runners
		}
	}
}

// New constructs an Orchestrator with the five standard runners. The ledger
// may be nil, in which case run history is not recorded.
func New(cfg *config.Config, st *store.Store, ledger *runlog.Ledger, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:    cfg,
		store:  st,
		ledger: ledger,
		logger: logging.NewComponentLogger(logger, "orchestrator"),
	}
	for _, def := range runner.Definitions() {
		o.runners = append(o.runners, runner.New(def, cfg, st, logger))
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunAll invokes every runner in sequence against dataRoot, reporting
// progress through the callback, and writes the combined result mapping to
// the store. One failing modality never aborts the batch; its failure is
// recorded as an error-status result.
func (o *Orchestrator) RunAll(ctx context.Context, dataRoot string, progress runner.ProgressFunc) (map[string]modality.Result, error) {
	lock := flock.New(filepath.Join(o.store.Dir(), ".tangle.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("output store %s is locked by another run", o.store.Dir())
	}
	defer func() { _ = lock.Unlock() }()

	runID := ""
	if o.ledger != nil {
		runID, err = o.ledger.Begin(ctx, dataRoot, o.cfg.Run.SimulateIfMissing)
		if err != nil {
			return nil, fmt.Errorf("record run start: %w", err)
		}
		o.logger = o.logger.With(logging.String(logging.FieldRunID, runID))
	}
	o.logger.Info("run started",
		logging.String("data_root", dataRoot),
		logging.Int("modules", len(o.runners)),
	)

	results := make(map[string]modality.Result, len(o.runners))
	total := len(o.runners)
	for i, r := range o.runners {
		name := r.Name()
		if progress != nil {
			progress(name, runner.PhaseQueued, float64(i)/float64(total), "About to run "+name)
		}

		result := o.runContained(ctx, r, dataRoot, progress)
		results[name] = result

		if progress != nil {
			progress(name, string(result.Status), float64(i+1)/float64(total), result.Interpretation)
		}
	}

	if err := o.store.WriteAggregate(results); err != nil {
		return results, fmt.Errorf("persist aggregate: %w", err)
	}

	if o.ledger != nil {
		statuses := make(map[string]string, len(results))
		for name, result := range results {
			statuses[name] = string(result.Status)
		}
		if err := o.ledger.Finish(ctx, runID, statuses); err != nil {
			o.logger.Warn("run ledger update failed", logging.Error(err))
		}
	}

	o.logger.Info("run completed", logging.Int("modules", len(results)))
	return results, nil
}

// runContained executes one runner, converting errors and panics into
// error-status results so a single modality can never abort the batch.
func (o *Orchestrator) runContained(ctx context.Context, r ModalityRunner, dataRoot string, progress runner.ProgressFunc) (result modality.Result) {
	defer func() {
		if recovered := recover(); recovered != nil {
			o.logger.Error("module panicked",
				logging.String(logging.FieldModule, r.Name()),
				logging.String("panic", fmt.Sprint(recovered)),
			)
			result = modality.Errorf(fmt.Sprintf("Module raised unexpected fault: %v", recovered))
		}
	}()

	result, err := r.Run(ctx, dataRoot, progress)
	if err != nil {
		o.logger.Error("module failed",
			logging.String(logging.FieldModule, r.Name()),
			logging.Error(err),
		)
		return modality.Errorf(fmt.Sprintf("Module failed: %v", err))
	}
	return result
}

package ensemble

import (
	"log/slog"
	"sort"
	"strings"

	"tangle/internal/logging"
	"tangle/internal/modality"
	"tangle/internal/services"
	"tangle/internal/store"
)

// Aggregator combines per-modality results into subject reports and persists
// them to the output store.
type Aggregator struct {
	store    *store.Store
	logger   *slog.Logger
	verdicts Verdicts
}

// NewAggregator constructs an Aggregator writing reports to st and rendering
// verdicts for the given locale.
func NewAggregator(st *store.Store, logger *slog.Logger, locale string) *Aggregator {
	return &Aggregator{
		store:    st,
		logger:   logging.NewComponentLogger(logger, "ensemble"),
		verdicts: VerdictsFor(locale),
	}
}

// Aggregate computes the subject report and writes it to the store. The
// write happens unconditionally on every call, replacing any previous report
// for the subject. Threshold is the decision boundary applied to the combined
// probability; each modality's own labels were fixed at 0.5 when created.
func (a *Aggregator) Aggregate(subjectID string, results map[string]modality.Result, threshold float64) (Report, error) {
	if strings.TrimSpace(subjectID) == "" {
		return Report{}, services.Wrap(services.ErrValidation, "ensemble", "aggregate", "subject id required", nil)
	}

	report := Combine(subjectID, results, threshold, a.verdicts)

	if err := a.store.WriteJSON(a.store.SubjectReportPath(subjectID), report); err != nil {
		return Report{}, services.Wrap(nil, "ensemble", "persist report", subjectID, err)
	}

	a.logger.Info("subject report written",
		logging.String(logging.FieldSubjectID, subjectID),
		logging.Int("available_modules", report.Ensemble.AvailableModules),
		logging.String("label", report.Ensemble.Label),
	)
	return report, nil
}

// Combine performs the pure weighted-average reduction without side effects.
//
// Modalities are visited in sorted name order; ordering only affects
// floating-point summation, not which modalities contribute. A modality
// contributes exactly when it holds a prediction matching subjectID, with
// weight from the documented preference chain (auc, accuracy, metrics auc,
// then 1.0; zero treated as absent).
func Combine(subjectID string, results map[string]modality.Result, threshold float64, verdicts Verdicts) Report {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	perModule := make(map[string]ModuleFinding, len(names))
	missing := make([]string, 0, len(names))
	var weightedSum, weightSum float64
	available := 0

	for _, name := range names {
		result := results[name]
		pred, ok := result.FindPrediction(subjectID)
		if !ok {
			perModule[name] = ModuleFinding{
				Status:         FindingMissing,
				Interpretation: result.Interpretation,
			}
			missing = append(missing, name)
			continue
		}

		probability := pred.Probability
		perModule[name] = ModuleFinding{
			Status:      FindingOK,
			Probability: &probability,
			Label:       pred.PredictedLabel,
		}

		weight := result.Weight()
		weightedSum += probability * weight
		weightSum += weight
		available++
	}

	summary := Summary{
		AvailableModules: available,
		MissingModules:   missing,
		Label:            modality.LabelUnknown,
	}
	if weightSum > 0 {
		probability := weightedSum / weightSum
		summary.Probability = &probability
		if probability >= threshold {
			summary.Label = modality.LabelAD
		} else {
			summary.Label = modality.LabelCN
		}
	}

	return Report{
		SubjectID:  subjectID,
		PerModule:  perModule,
		Ensemble:   summary,
		FinalLabel: summary.Label,
		FinalText:  verdicts.Render(summary),
		Disclaimer: verdicts.Disclaimer(),
	}
}

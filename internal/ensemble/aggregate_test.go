package ensemble_test

import (
	"encoding/json"
	"math"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tangle/internal/ensemble"
	"tangle/internal/logging"
	"tangle/internal/modality"
	"tangle/internal/store"
)

func prediction(id string, probability float64) modality.Prediction {
	label := modality.LabelCN
	if probability >= 0.5 {
		label = modality.LabelAD
	}
	return modality.Prediction{SubjectID: id, PredictedLabel: label, Probability: probability}
}

func newAggregator(t *testing.T) (*ensemble.Aggregator, *store.Store) {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return ensemble.NewAggregator(st, logging.NewNop(), "en"), st
}

func TestAggregateWeightedScenario(t *testing.T) {
	// Three modalities: 0.9 at weight 0.9, 0.2 at weight 0.8, one missing.
	// weighted sum = 0.81 + 0.16 = 0.97; weight sum = 1.7; ≈ 0.5706 => AD.
	agg, _ := newAggregator(t)
	results := map[string]modality.Result{
		"mri_pet": {
			Status:      modality.StatusSuccess,
			AUC:         0.9,
			Predictions: []modality.Prediction{prediction("SUBJ001", 0.9)},
		},
		"eeg": {
			Status:      modality.StatusSuccess,
			AUC:         0.8,
			Predictions: []modality.Prediction{prediction("SUBJ001", 0.2)},
		},
		"adni": {
			Status:         modality.StatusError,
			Interpretation: "Expected ADNI_full folder not found",
		},
	}

	report, err := agg.Aggregate("SUBJ001", results, 0.5)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if report.Ensemble.Probability == nil {
		t.Fatal("probability should not be null")
	}
	got := *report.Ensemble.Probability
	want := 0.97 / 1.7
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("probability = %v, want %v", got, want)
	}
	if report.Ensemble.Label != modality.LabelAD {
		t.Fatalf("label = %q, want AD", report.Ensemble.Label)
	}
	if report.Ensemble.AvailableModules != 2 {
		t.Fatalf("available_modules = %d", report.Ensemble.AvailableModules)
	}
	if diff := cmp.Diff([]string{"adni"}, report.Ensemble.MissingModules); diff != "" {
		t.Fatalf("missing modules (-want +got):\n%s", diff)
	}
	if report.PerModule["adni"].Status != ensemble.FindingMissing {
		t.Fatalf("adni finding = %+v", report.PerModule["adni"])
	}
	if report.PerModule["adni"].Interpretation == "" {
		t.Fatal("missing finding should carry the module interpretation")
	}
}

func TestAggregateSingleModalityWeightCancels(t *testing.T) {
	agg, _ := newAggregator(t)
	results := map[string]modality.Result{
		"eeg": {
			Status:      modality.StatusSuccess,
			AUC:         0.37,
			Predictions: []modality.Prediction{prediction("SUBJ002", 0.42)},
		},
	}

	report, err := agg.Aggregate("SUBJ002", results, 0.5)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if *report.Ensemble.Probability != 0.42 {
		t.Fatalf("probability = %v, want exactly 0.42", *report.Ensemble.Probability)
	}
	if report.Ensemble.Label != modality.LabelCN {
		t.Fatalf("label = %q", report.Ensemble.Label)
	}
}

func TestAggregateAllMissing(t *testing.T) {
	agg, st := newAggregator(t)
	results := make(map[string]modality.Result, 5)
	for _, name := range modality.Order() {
		results[name] = modality.Result{Status: modality.StatusError, Interpretation: "folder not found"}
	}

	report, err := agg.Aggregate("SUBJ999", results, 0.5)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if report.Ensemble.Probability != nil {
		t.Fatalf("probability should be null, got %v", *report.Ensemble.Probability)
	}
	if report.Ensemble.Label != modality.LabelUnknown {
		t.Fatalf("label = %q, want unknown", report.Ensemble.Label)
	}
	if report.FinalLabel != modality.LabelUnknown {
		t.Fatalf("final_label = %q", report.FinalLabel)
	}
	if len(report.Ensemble.MissingModules) != 5 {
		t.Fatalf("missing modules = %v", report.Ensemble.MissingModules)
	}

	// The persisted JSON must carry an explicit null probability.
	data, err := os.ReadFile(st.SubjectReportPath("SUBJ999"))
	if err != nil {
		t.Fatalf("report file: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("report not JSON: %v", err)
	}
	ens := raw["ensemble"].(map[string]any)
	if value, present := ens["probability"]; !present || value != nil {
		t.Fatalf("serialized probability = %v (present=%v), want explicit null", value, present)
	}
}

func TestAggregateThresholdBoundaryUsesGTE(t *testing.T) {
	agg, _ := newAggregator(t)
	results := map[string]modality.Result{
		"eeg": {
			Status:      modality.StatusSuccess,
			Predictions: []modality.Prediction{prediction("SUBJ003", 0.7)},
		},
	}

	report, err := agg.Aggregate("SUBJ003", results, 0.7)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if report.Ensemble.Label != modality.LabelAD {
		t.Fatalf("probability exactly at threshold must classify as AD, got %q", report.Ensemble.Label)
	}
}

func TestAggregateZeroAUCFallsThroughToAccuracy(t *testing.T) {
	// auc 0 is treated as absent: the weight is accuracy 0.7, not 0 and not 1.
	results := map[string]modality.Result{
		"a": {
			Status:      modality.StatusSuccess,
			AUC:         0,
			Accuracy:    0.7,
			Predictions: []modality.Prediction{prediction("S", 1.0)},
		},
		"b": {
			Status:      modality.StatusSuccess,
			AUC:         0.7,
			Predictions: []modality.Prediction{prediction("S", 0.0)},
		},
	}

	report := ensemble.Combine("S", results, 0.5, ensemble.VerdictsFor("en"))
	// Equal weights 0.7: average of 1.0 and 0.0 is exactly 0.5.
	if *report.Ensemble.Probability != 0.5 {
		t.Fatalf("probability = %v, want 0.5 (weights must both be 0.7)", *report.Ensemble.Probability)
	}
}

func TestAggregateIdempotence(t *testing.T) {
	agg, st := newAggregator(t)
	results := map[string]modality.Result{
		"mri_pet": {
			Status:      modality.StatusSuccess,
			AUC:         0.9,
			Predictions: []modality.Prediction{prediction("SUBJ004", 0.81)},
		},
	}

	first, err := agg.Aggregate("SUBJ004", results, 0.5)
	if err != nil {
		t.Fatalf("first Aggregate failed: %v", err)
	}
	firstFile, err := os.ReadFile(st.SubjectReportPath("SUBJ004"))
	if err != nil {
		t.Fatal(err)
	}

	second, err := agg.Aggregate("SUBJ004", results, 0.5)
	if err != nil {
		t.Fatalf("second Aggregate failed: %v", err)
	}
	secondFile, err := os.ReadFile(st.SubjectReportPath("SUBJ004"))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated aggregation differs (-first +second):\n%s", diff)
	}
	if string(firstFile) != string(secondFile) {
		t.Fatal("report file should be byte-identical after overwrite")
	}
}

func TestAggregateProbabilityRange(t *testing.T) {
	agg, _ := newAggregator(t)
	probabilities := []float64{0.01, 0.33, 0.5, 0.74, 0.99}
	results := make(map[string]modality.Result)
	for i, name := range modality.Order() {
		results[name] = modality.Result{
			Status:      modality.StatusSuccess,
			AUC:         0.6 + float64(i)*0.08,
			Predictions: []modality.Prediction{prediction("SUBJ005", probabilities[i])},
		}
	}

	report, err := agg.Aggregate("SUBJ005", results, 0.5)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	got := *report.Ensemble.Probability
	if got < 0 || got > 1 {
		t.Fatalf("ensemble probability %v outside [0,1]", got)
	}
	if report.Ensemble.AvailableModules != 5 {
		t.Fatalf("available_modules = %d", report.Ensemble.AvailableModules)
	}
}

func TestAggregateEmptyResults(t *testing.T) {
	agg, _ := newAggregator(t)
	report, err := agg.Aggregate("SUBJ006", nil, 0.5)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if report.Ensemble.Label != modality.LabelUnknown {
		t.Fatalf("label = %q", report.Ensemble.Label)
	}
}

func TestAggregateRejectsEmptySubject(t *testing.T) {
	agg, _ := newAggregator(t)
	if _, err := agg.Aggregate("  ", nil, 0.5); err == nil {
		t.Fatal("expected validation error for blank subject id")
	}
}

package modality

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status reports whether a runner produced a usable result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Diagnostic labels for the binary classification target.
const (
	LabelAD      = "AD"
	LabelCN      = "CN"
	LabelUnknown = "unknown"
)

// Module names in the fixed orchestration order.
const (
	MRIPET     = "mri_pet"
	EEG        = "eeg"
	ADNI       = "adni"
	TADPOLE    = "tadpole"
	Proteomics = "proteomics"
)

// Order lists all modules in the sequence the orchestrator runs them.
func Order() []string {
	return []string{MRIPET, EEG, ADNI, TADPOLE, Proteomics}
}

// Known reports whether name is a registered module name.
func Known(name string) bool {
	for _, n := range Order() {
		if n == name {
			return true
		}
	}
	return false
}

var displayNames = map[string]string{
	MRIPET:     "MRI+PET",
	EEG:        "EEG",
	ADNI:       "ADNI",
	TADPOLE:    "TADPOLE",
	Proteomics: "Proteomics",
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the human-facing name for a module. Unregistered names
// get a best-effort title-cased rendering so reports stay readable.
func DisplayName(name string) string {
	if display, ok := displayNames[name]; ok {
		return display
	}
	return titleCaser.String(name)
}

// Prediction is one modality's estimate for one subject. Probability is the
// estimated probability of the AD class; PredictedLabel is AD exactly when
// Probability >= 0.5 at creation time.
type Prediction struct {
	SubjectID      string  `json:"subject_id"`
	PredictedLabel string  `json:"predicted_label"`
	Probability    float64 `json:"probability"`
}

// Result is the output of one modality runner for one data root.
//
// The top-level Accuracy, AUC, and F1 fields mirror the summary layout the
// external pipelines emit; a zero value means the indicator was not reported.
// Metrics carries any additional named indicators, and Details carries
// non-numeric extras (confusion counts, biomarker lists).
type Result struct {
	Status         Status             `json:"status"`
	Interpretation string             `json:"interpretation"`
	Accuracy       float64            `json:"accuracy,omitempty"`
	AUC            float64            `json:"auc,omitempty"`
	F1             float64            `json:"f1,omitempty"`
	Metrics        map[string]float64 `json:"metrics,omitempty"`
	Details        map[string]any     `json:"details,omitempty"`
	Predictions    []Prediction       `json:"predictions,omitempty"`
}

// Errorf builds an error-status Result with a formatted interpretation.
func Errorf(interpretation string) Result {
	return Result{Status: StatusError, Interpretation: interpretation}
}

// FindPrediction returns the prediction matching subjectID, if any. Matching
// is an exact string comparison; subject identifiers are not normalized
// across modalities.
func (r Result) FindPrediction(subjectID string) (Prediction, bool) {
	for _, p := range r.Predictions {
		if p.SubjectID == subjectID {
			return p, true
		}
	}
	return Prediction{}, false
}

// Weight derives the aggregation weight for this modality following the
// fixed preference chain: top-level AUC, then top-level accuracy, then the
// nested metrics auc, then 1.0. A zero-valued indicator is treated as absent
// and falls through to the next preference. This mirrors the upstream
// pipelines' summary conventions and is a documented policy, not an accident;
// callers that need zero-valued metrics to be meaningful must not use it.
func (r Result) Weight() float64 {
	if r.AUC != 0 {
		return r.AUC
	}
	if r.Accuracy != 0 {
		return r.Accuracy
	}
	if auc := r.Metrics["auc"]; auc != 0 {
		return auc
	}
	return 1.0
}

package ensemble

// FindingStatus distinguishes modalities that matched the subject from those
// that did not.
const (
	FindingOK      = "ok"
	FindingMissing = "missing"
)

// ModuleFinding records one modality's contribution to a subject report.
// OK findings carry the probability and label; missing findings carry the
// modality's run interpretation instead.
type ModuleFinding struct {
	Status         string   `json:"status"`
	Probability    *float64 `json:"probability,omitempty"`
	Label          string   `json:"label,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
}

// Summary is the combined ensemble outcome. Probability is null exactly when
// no modality contributed, in which case Label is "unknown".
type Summary struct {
	AvailableModules int      `json:"available_modules"`
	MissingModules   []string `json:"missing_modules"`
	Probability      *float64 `json:"probability"`
	Label            string   `json:"label"`
}

// Report is the aggregator's output for one subject. It is recomputed on
// every query and overwrites any previous report file for the subject.
type Report struct {
	SubjectID  string                   `json:"subject_id"`
	PerModule  map[string]ModuleFinding `json:"per_module"`
	Ensemble   Summary                  `json:"ensemble"`
	FinalLabel string                   `json:"final_label"`
	FinalText  string                   `json:"final_text"`
	Disclaimer string                   `json:"disclaimer"`
}

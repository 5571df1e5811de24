package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tangle/internal/modality"
)

// AggregateFile is the combined result mapping written after each full run.
const AggregateFile = "aggregate_results.json"

// Store is a directory-backed output store.
type Store struct {
	dir string
}

// New creates the store directory if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("store directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store root.
func (s *Store) Dir() string {
	return s.dir
}

// SummaryPath returns the summary file location for a module.
func (s *Store) SummaryPath(module string) string {
	return filepath.Join(s.dir, module+"_summary.json")
}

// PredictionsPath returns the predictions CSV location for a module.
func (s *Store) PredictionsPath(module string) string {
	return filepath.Join(s.dir, module+"_predictions.csv")
}

// SubjectReportPath returns the report location for a subject.
func (s *Store) SubjectReportPath(subjectID string) string {
	return filepath.Join(s.dir, "subject_"+sanitizeKey(subjectID)+"_report.json")
}

// WriteJSON marshals v and atomically replaces the named file inside the
// store directory.
func (s *Store) WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	return s.replaceFile(path, append(data, '\n'))
}

// WriteSummary persists a module's result summary.
func (s *Store) WriteSummary(module string, result modality.Result) error {
	return s.WriteJSON(s.SummaryPath(module), result)
}

// WriteAggregate persists the combined result mapping for all modules.
func (s *Store) WriteAggregate(results map[string]modality.Result) error {
	return s.WriteJSON(filepath.Join(s.dir, AggregateFile), results)
}

// LoadAggregate reads the combined result mapping. The boolean reports
// whether the aggregate file existed.
func (s *Store) LoadAggregate() (map[string]modality.Result, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, AggregateFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read aggregate: %w", err)
	}
	var results map[string]modality.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false, fmt.Errorf("parse aggregate: %w", err)
	}
	return results, true, nil
}

// LoadResults returns the most recent result set: the aggregate file when
// present, otherwise whatever per-module summary/prediction pairs exist.
// Modules with no summary on disk are simply absent from the mapping.
func (s *Store) LoadResults() (map[string]modality.Result, error) {
	if results, ok, err := s.LoadAggregate(); err != nil {
		return nil, err
	} else if ok {
		return results, nil
	}

	results := make(map[string]modality.Result)
	for _, module := range modality.Order() {
		data, err := os.ReadFile(s.SummaryPath(module))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s summary: %w", module, err)
		}
		var result modality.Result
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("parse %s summary: %w", module, err)
		}
		if len(result.Predictions) == 0 {
			if preds, err := s.ReadPredictions(module); err == nil {
				result.Predictions = preds
			}
		}
		results[module] = result
	}
	return results, nil
}

func (s *Store) replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func sanitizeKey(key string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", "..", "-", " ", "_")
	cleaned := strings.TrimSpace(replacer.Replace(key))
	if cleaned == "" {
		return "unnamed"
	}
	return cleaned
}

package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"tangle/internal/modality"
)

var predictionHeader = []string{"subject_id", "predicted_label", "probability"}

// WritePredictions persists a module's per-subject predictions as CSV with a
// header row.
func (s *Store) WritePredictions(module string, predictions []modality.Prediction) error {
	path := s.PredictionsPath(module)
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(predictionHeader); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range predictions {
		row := []string{p.SubjectID, p.PredictedLabel, strconv.FormatFloat(p.Probability, 'f', 3, 64)}
		if err := writer.Write(row); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("flush csv: %w", err)
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

// ReadPredictions loads a module's predictions CSV. Rows with an unparseable
// probability are dropped; a missing file yields an empty slice.
func (s *Store) ReadPredictions(module string) ([]modality.Prediction, error) {
	file, err := os.Open(s.PredictionsPath(module))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open predictions: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read predictions: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := columnIndexes(records[0])
	predictions := make([]modality.Prediction, 0, len(records)-1)
	for _, record := range records[1:] {
		pred, ok := parsePredictionRow(record, columns)
		if !ok {
			continue
		}
		predictions = append(predictions, pred)
	}
	return predictions, nil
}

func columnIndexes(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	return columns
}

func parsePredictionRow(record []string, columns map[string]int) (modality.Prediction, bool) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	id := field("subject_id")
	if id == "" {
		return modality.Prediction{}, false
	}
	probability, err := strconv.ParseFloat(field("probability"), 64)
	if err != nil {
		return modality.Prediction{}, false
	}
	return modality.Prediction{
		SubjectID:      id,
		PredictedLabel: field("predicted_label"),
		Probability:    probability,
	}, true
}

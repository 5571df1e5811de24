package runner

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tangle/internal/modality"
)

// Discovery describes how a modality infers subject identifiers from its
// input directory.
type Discovery struct {
	Subdir    string
	Pattern   string
	Recursive bool
}

const (
	minProbability = 0.01
	maxProbability = 0.99
)

// synthesizePredictions produces one clamped prediction per subject from a
// gaussian centered on the module's demo discrimination level. The per-module
// seed keeps output deterministic across runs with identical inputs.
func synthesizePredictions(subjects []string, seed int64, base, sigma float64) []modality.Prediction {
	rng := rand.New(rand.NewSource(seed))
	predictions := make([]modality.Prediction, 0, len(subjects))
	for _, subject := range subjects {
		probability := rng.NormFloat64()*sigma + base
		probability = math.Min(maxProbability, math.Max(minProbability, probability))
		probability = math.Round(probability*1000) / 1000
		label := modality.LabelCN
		if probability >= 0.5 {
			label = modality.LabelAD
		}
		predictions = append(predictions, modality.Prediction{
			SubjectID:      subject,
			PredictedLabel: label,
			Probability:    probability,
		})
	}
	return predictions
}

// discoverSubjects scans the modality's input layout for subject files and
// falls back to a fixed demo roster when nothing is found.
func discoverSubjects(expected string, discovery Discovery) []string {
	root := expected
	if discovery.Subdir != "" {
		root = filepath.Join(expected, discovery.Subdir)
	}

	var subjects []string
	if discovery.Recursive {
		subjects = globRecursive(root, discovery.Pattern)
	} else {
		matches, err := filepath.Glob(filepath.Join(root, discovery.Pattern))
		if err == nil {
			for _, match := range matches {
				subjects = append(subjects, stem(match))
			}
		}
	}
	sort.Strings(subjects)

	if len(subjects) == 0 {
		subjects = make([]string, 0, 10)
		for i := 1; i <= 10; i++ {
			subjects = append(subjects, fmt.Sprintf("SUBJ%03d", i))
		}
	}
	return subjects
}

func globRecursive(root, pattern string) []string {
	var subjects []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			subjects = append(subjects, stem(path))
		}
		return nil
	})
	return subjects
}

// stem strips the final extension from a file name, matching how the
// external pipelines name their per-subject artifacts.
func stem(path string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

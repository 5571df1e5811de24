package ensemble

import (
	"strings"

	"tangle/internal/modality"
)

// BuildRunSummary combines module outputs into a single plain-language
// paragraph, one clause per modality in the fixed run order.
func BuildRunSummary(results map[string]modality.Result) string {
	lines := make([]string, 0, len(modality.Order()))
	for _, name := range modality.Order() {
		display := modality.DisplayName(name)
		result, ok := results[name]
		if !ok || result.Status != modality.StatusSuccess {
			lines = append(lines, display+": no valid result.")
			continue
		}
		interpretation := strings.TrimSpace(result.Interpretation)
		if interpretation == "" {
			interpretation = "No interpretation available"
		}
		lines = append(lines, display+": "+interpretation)
	}
	return strings.Join(lines, " ")
}

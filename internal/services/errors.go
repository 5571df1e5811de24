package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingData marks an expected input directory or file that was absent.
	ErrMissingData = errors.New("missing data")
	// ErrExternalTool marks a subprocess that exited non-zero.
	ErrExternalTool = errors.New("external tool error")
	// ErrTimeout marks a subprocess that exceeded its deadline.
	ErrTimeout = errors.New("timeout")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks malformed caller input.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes module context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, module, operation, message string, err error) error {
	detail := buildDetail(module, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(module, operation, message string) string {
	parts := make([]string, 0, 3)
	if module = strings.TrimSpace(module); module != "" {
		parts = append(parts, module)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

// Truncate clips captured tool output so interpretations stay readable.
func Truncate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit]
}

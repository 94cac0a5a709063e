package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formval/pkg/validation"
)

var (
	// ErrUnknownOperation is returned when an operation name or value is not
	// one of the enumerated operations.
	ErrUnknownOperation = errors.New("render: unknown operation")
	// ErrRendererNotFound is returned by Registry.Get for unknown names.
	ErrRendererNotFound = errors.New("render: renderer not found")
)

// Summary flattens a validation result into form-level messages, trimming
// whitespace and removing duplicates while preserving order. Renderers that
// cannot place boxes next to fields (terminals, alert banners) use it.
func Summary(result validation.Result) []string {
	messages := make([]string, 0, len(result.Failures))
	for _, failure := range result.Failures {
		messages = append(messages, failure.Message)
	}
	return normalizeMessages(messages)
}

// MergeMessages concatenates and normalises message slices.
func MergeMessages(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// Package strings holds small string-slice helpers shared across services.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each element, drops empties, and removes duplicates
// while preserving first-seen order. Used to normalize user-supplied lists
// before validation so a repeated entry cannot inflate a count check.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

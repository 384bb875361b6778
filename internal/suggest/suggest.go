// Package suggest finds the closest known name for a mistyped one.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate nearest to input by edit distance, if one
// is within the typo limit for its length.
func Closest(input string, candidates []string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	best, bestDist := "", -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(in, strings.ToLower(cand))
		if dist > limit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist >= 0
}

// Hint formats a " (did you mean X?)" suffix, or "" when nothing is close.
func Hint(input string, candidates []string) string {
	if s, ok := Closest(input, candidates); ok {
		return " (did you mean " + s + "?)"
	}
	return ""
}

func limit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

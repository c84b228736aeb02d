// Package matcher extracts a known name from free-form report text.
package matcher

import "strings"

// Find returns the first candidate, in candidates order, that text contains
// as a substring. Position in text does not matter: with candidates
// [A, B] and text "... B ... A ...", Find returns A. No case folding or
// word-boundary checks are applied. Empty candidates never match.
func Find(text string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if strings.Contains(text, c) {
			return c, true
		}
	}
	return "", false
}

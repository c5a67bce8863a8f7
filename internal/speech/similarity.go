// Package speech scores recognized or written text against an expected
// target. Edit-distance accuracy is used by the writing task; the phonetic
// variant in pronunciation.go adds Hangul phoneme decomposition for the
// repetition task.
package speech

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// normalize strips all whitespace and case-folds the string so that
// spacing and casing differences do not count as edits.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// similarity returns the Levenshtein similarity of two normalized strings
// as a percentage. Two empty strings score 0, not 100: an empty attempt
// against an empty target carries no evidence of ability, and the zero
// keeps the value defined without dividing by zero.
func similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 0
	}
	d := matchr.Levenshtein(a, b)
	return (float64(maxLen) - float64(d)) / float64(maxLen) * 100
}

// Distance returns the Levenshtein edit distance between the normalized
// forms of a and b.
func Distance(a, b string) int {
	return matchr.Levenshtein(normalize(a), normalize(b))
}

// Accuracy scores how closely actual matches expected, 0-100.
func Accuracy(expected, actual string) int {
	return int(math.Round(similarity(normalize(expected), normalize(actual))))
}

// VerificationResult is the outcome of checking a written or spoken
// attempt against its target text.
type VerificationResult struct {
	Accuracy  int  `json:"accuracy"`   // 0-100
	IsCorrect bool `json:"is_correct"` // exact match after normalization
}

// Verify scores actual against expected. IsCorrect is a strict equality
// check on the normalized strings, independent of the accuracy value.
func Verify(expected, actual string) VerificationResult {
	ne, na := normalize(expected), normalize(actual)
	return VerificationResult{
		Accuracy:  int(math.Round(similarity(ne, na))),
		IsCorrect: ne == na,
	}
}

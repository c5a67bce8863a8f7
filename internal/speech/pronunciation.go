package speech

import (
	"math"
	"unicode/utf8"
)

// PronunciationMetrics breaks down how closely a recognized transcript
// matches the prompted text.
type PronunciationMetrics struct {
	SyllableAccuracy float64 `json:"syllable_accuracy"` // over decomposed phoneme sequences
	WordAccuracy     float64 `json:"word_accuracy"`     // over the raw normalized strings
	SpeedRatio       float64 `json:"speed_ratio"`       // spoken length relative to prompt length
	ClarityScore     float64 `json:"clarity_score"`     // weighted blend of the two accuracies
}

// Clarity weighting: phoneme-level agreement dominates, whole-word
// agreement keeps gross substitutions from scoring too high.
const (
	syllableWeight = 0.6
	wordWeight     = 0.4
)

// AnalyzePronunciation compares the recognized transcript against the
// prompt. Both strings are whitespace-stripped and case-folded first.
func AnalyzePronunciation(expected, actual string) PronunciationMetrics {
	ne, na := normalize(expected), normalize(actual)

	syllable := similarity(DecomposeHangul(ne), DecomposeHangul(na))
	word := similarity(ne, na)

	speed := 1.0
	if n := utf8.RuneCountInString(ne); n > 0 {
		speed = float64(utf8.RuneCountInString(na)) / float64(n)
	}

	return PronunciationMetrics{
		SyllableAccuracy: syllable,
		WordAccuracy:     word,
		SpeedRatio:       speed,
		ClarityScore:     syllable*syllableWeight + word*wordWeight,
	}
}

// PronunciationScore reduces the metrics to a single 0-100 score.
func PronunciationScore(expected, actual string) int {
	m := AnalyzePronunciation(expected, actual)
	score := int(math.Round(m.ClarityScore))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

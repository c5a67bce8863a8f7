package amplitude

import (
	"fmt"
	"math"
)

// readingSilenceThreshold separates pauses from speech in the reading
// task. Intentionally lower than the fluency threshold: reading aloud is
// quieter and steadier than free speech.
const readingSilenceThreshold = 10.0

// ReadingMetrics summarizes one read-aloud recording window.
type ReadingMetrics struct {
	TotalDuration    float64 `json:"total_duration"` // seconds
	WordsPerMinute   int     `json:"words_per_minute"`
	PauseCount       int     `json:"pause_count"`
	AverageAmplitude float64 `json:"average_amplitude"`
	ReadingScore     int     `json:"reading_score"` // 0-100
}

// AnalyzeReading scores a read-aloud recording. wordCount is the known
// word count of the text the patient read; totalDuration is the window
// length in seconds.
func AnalyzeReading(samples []float64, wordCount int, totalDuration float64) (ReadingMetrics, error) {
	if totalDuration < 0 {
		return ReadingMetrics{}, fmt.Errorf("amplitude: negative total duration %v", totalDuration)
	}
	if wordCount < 0 {
		return ReadingMetrics{}, fmt.Errorf("amplitude: negative word count %d", wordCount)
	}

	// Count transitions into silence. Unlike the fluency peak counter
	// there is no hysteresis band: a single threshold drives the state.
	pauseCount := 0
	inSilence := false
	for _, amp := range samples {
		if amp < readingSilenceThreshold && !inSilence {
			pauseCount++
			inSilence = true
		} else if amp >= readingSilenceThreshold {
			inSilence = false
		}
	}

	wpm := 0
	if totalDuration > 0 {
		wpm = int(math.Round(float64(wordCount) / totalDuration * 60))
	}

	avgAmplitude := mean(samples)

	// 80-180 WPM is the comfortable read-aloud band; outside it the score
	// decays linearly with distance from the 130 midpoint.
	wpmScore := 40.0
	if wpm < 80 || wpm > 180 {
		wpmScore = math.Max(0, 40-math.Abs(float64(wpm)-130)*0.3)
	}
	pauseScore := math.Max(0, 30-float64(pauseCount)*3)
	amplitudeScore := 15.0
	if avgAmplitude >= 20 && avgAmplitude <= 60 {
		amplitudeScore = 30
	}

	score := int(math.Round(wpmScore + pauseScore + amplitudeScore))
	if score > 100 {
		score = 100
	}

	return ReadingMetrics{
		TotalDuration:    totalDuration,
		WordsPerMinute:   wpm,
		PauseCount:       pauseCount,
		AverageAmplitude: roundTenth(avgAmplitude),
		ReadingScore:     score,
	}, nil
}

// Package amplitude derives speech metrics from the scalar amplitude
// stream sampled while a recording window is open. The fluency and
// reading analyzers share primitives but deliberately use different
// silence thresholds and weightings; the per-task constants must not be
// unified.
package amplitude

import (
	"fmt"
	"math"
)

// fluencySilenceThreshold separates speech frames from silence in the
// spontaneous-speech task. The peak counter enters a burst above twice
// this value and leaves it below it.
const fluencySilenceThreshold = 15.0

// FluencyMetrics summarizes one spontaneous-speech recording window.
type FluencyMetrics struct {
	TotalDuration    float64 `json:"total_duration"`    // seconds
	SpeechDuration   float64 `json:"speech_duration"`   // seconds
	SilenceRatio     float64 `json:"silence_ratio"`     // percent
	AverageAmplitude float64 `json:"average_amplitude"`
	PeakCount        int     `json:"peak_count"`    // estimated word bursts
	FluencyScore     int     `json:"fluency_score"` // 0-100
}

// AnalyzeFluency scores a spontaneous-speech recording from its amplitude
// samples. totalDuration is the recording window length in seconds and
// minDuration the minimum expected speaking time for the prompt. An empty
// sample buffer yields zero metrics rather than an error.
func AnalyzeFluency(samples []float64, totalDuration, minDuration float64) (FluencyMetrics, error) {
	if totalDuration < 0 {
		return FluencyMetrics{}, fmt.Errorf("amplitude: negative total duration %v", totalDuration)
	}
	if minDuration <= 0 {
		return FluencyMetrics{}, fmt.Errorf("amplitude: min duration must be positive, got %v", minDuration)
	}

	speechFrames := 0
	for _, amp := range samples {
		if amp >= fluencySilenceThreshold {
			speechFrames++
		}
	}

	speechDuration := 0.0
	if len(samples) > 0 {
		speechDuration = float64(speechFrames) / float64(len(samples)) * totalDuration
	}

	silenceRatio := 0.0
	if totalDuration > 0 {
		silenceRatio = (totalDuration - speechDuration) / totalDuration * 100
	}

	// Hysteresis peak counter: a new burst starts above 2x the threshold
	// and ends once the level falls back below the threshold. Samples in
	// the band between the two leave the state unchanged.
	peakCount := 0
	inPeak := false
	for _, amp := range samples {
		if amp > fluencySilenceThreshold*2 && !inPeak {
			peakCount++
			inPeak = true
		} else if amp < fluencySilenceThreshold {
			inPeak = false
		}
	}

	durationScore := math.Min(speechDuration/minDuration*50, 50)
	silenceScore := math.Max(30-silenceRatio*0.5, 0)
	peakScore := math.Min(float64(peakCount)*2, 20)

	score := int(math.Round(durationScore + silenceScore + peakScore))
	if score > 100 {
		score = 100
	}

	return FluencyMetrics{
		TotalDuration:    totalDuration,
		SpeechDuration:   roundTenth(speechDuration),
		SilenceRatio:     roundTenth(silenceRatio),
		AverageAmplitude: roundTenth(mean(samples)),
		PeakCount:        peakCount,
		FluencyScore:     score,
	}, nil
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, amp := range samples {
		sum += amp
	}
	return sum / float64(len(samples))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

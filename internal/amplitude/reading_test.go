package amplitude_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun/braintalk/internal/amplitude"
)

func TestAnalyzeReading_ComfortablePace(t *testing.T) {
	// 40 words in 20s reads at 120 WPM, inside the 80-180 band; average
	// amplitude 45 is inside the 20-60 band; no pauses.
	m, err := amplitude.AnalyzeReading(repeatSamples(45, 100), 40, 20)
	require.NoError(t, err)

	assert.Equal(t, 120, m.WordsPerMinute)
	assert.Equal(t, 0, m.PauseCount)
	assert.InDelta(t, 45, m.AverageAmplitude, 0.001)
	// wpm 40 + pause 30 + amplitude 30 = 100
	assert.Equal(t, 100, m.ReadingScore)
}

func TestAnalyzeReading_PauseCounting(t *testing.T) {
	// Transitions into silence count; staying silent does not recount.
	samples := []float64{30, 5, 5, 30, 30, 8, 30}
	m, err := amplitude.AnalyzeReading(samples, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, m.PauseCount)

	// A window that opens in silence counts the initial pause.
	leading := []float64{5, 30, 30}
	m, err = amplitude.AnalyzeReading(leading, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, m.PauseCount)

	// No hysteresis band: a sample at the threshold is speech.
	atThreshold := []float64{10, 10}
	m, err = amplitude.AnalyzeReading(atThreshold, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, m.PauseCount)
}

func TestAnalyzeReading_PausePenalty(t *testing.T) {
	// Each pause costs 3 points until the pause score floors at zero.
	pausySamples := func(pauses int) []float64 {
		samples := []float64{30}
		for i := 0; i < pauses; i++ {
			samples = append(samples, 5, 30)
		}
		return samples
	}

	m4, err := amplitude.AnalyzeReading(pausySamples(4), 40, 20)
	require.NoError(t, err)
	m6, err := amplitude.AnalyzeReading(pausySamples(6), 40, 20)
	require.NoError(t, err)
	assert.Equal(t, m4.ReadingScore-6, m6.ReadingScore)

	m12, err := amplitude.AnalyzeReading(pausySamples(12), 40, 20)
	require.NoError(t, err)
	m15, err := amplitude.AnalyzeReading(pausySamples(15), 40, 20)
	require.NoError(t, err)
	assert.Equal(t, m12.ReadingScore, m15.ReadingScore, "pause penalty floors at zero")
}

func TestAnalyzeReading_WPMOutsideBand(t *testing.T) {
	// 10 words in 20s is 30 WPM: wpmScore = max(0, 40 - |30-130|*0.3) = 10.
	m, err := amplitude.AnalyzeReading(repeatSamples(45, 50), 10, 20)
	require.NoError(t, err)
	assert.Equal(t, 30, m.WordsPerMinute)
	// wpm 10 + pause 30 + amplitude 30 = 70
	assert.Equal(t, 70, m.ReadingScore)

	// Far outside the band the wpm contribution floors at zero.
	m, err = amplitude.AnalyzeReading(repeatSamples(45, 50), 200, 20)
	require.NoError(t, err)
	assert.Equal(t, 600, m.WordsPerMinute)
	// wpm 0 + pause 30 + amplitude 30 = 60
	assert.Equal(t, 60, m.ReadingScore)
}

func TestAnalyzeReading_AmplitudeBand(t *testing.T) {
	// Too quiet and too loud both score the reduced amplitude constant.
	quiet, err := amplitude.AnalyzeReading(repeatSamples(15, 50), 40, 20)
	require.NoError(t, err)
	loud, err := amplitude.AnalyzeReading(repeatSamples(80, 50), 40, 20)
	require.NoError(t, err)

	// quiet: wpm 40 + pause 30 + amplitude 15 = 85
	assert.Equal(t, 85, quiet.ReadingScore)
	assert.Equal(t, 85, loud.ReadingScore)
}

func TestAnalyzeReading_ZeroDuration(t *testing.T) {
	m, err := amplitude.AnalyzeReading(repeatSamples(45, 10), 40, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, m.WordsPerMinute)
}

func TestAnalyzeReading_EmptySamples(t *testing.T) {
	m, err := amplitude.AnalyzeReading(nil, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, m.WordsPerMinute)
	assert.Equal(t, 0, m.PauseCount)
	assert.InDelta(t, 0, m.AverageAmplitude, 0.001)
}

func TestAnalyzeReading_InvalidInput(t *testing.T) {
	_, err := amplitude.AnalyzeReading(nil, 10, -1)
	assert.Error(t, err)

	_, err = amplitude.AnalyzeReading(nil, -1, 10)
	assert.Error(t, err)
}

package kwab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haeun/braintalk/internal/kwab"
	"github.com/haeun/braintalk/internal/models"
)

func TestAphasiaQuotient(t *testing.T) {
	// (75/100*20 + 80/100*10 + 70/100*10 + 90/100*10) * 2
	// = (15 + 8 + 7 + 9) * 2 = 78.
	got := kwab.AphasiaQuotient(80, 70, 90, 75)
	assert.InDelta(t, 78, got, 0.001)
}

func TestAphasiaQuotient_Extremes(t *testing.T) {
	assert.InDelta(t, 0, kwab.AphasiaQuotient(0, 0, 0, 0), 0.001)
	assert.InDelta(t, 100, kwab.AphasiaQuotient(100, 100, 100, 100), 0.001)
}

func TestAphasiaQuotient_Clamped(t *testing.T) {
	assert.InDelta(t, 100, kwab.AphasiaQuotient(150, 150, 150, 150), 0.001)
	assert.InDelta(t, 0, kwab.AphasiaQuotient(-20, -20, -20, -20), 0.001)
}

func TestAphasiaQuotient_SpontaneousSpeechWeighsDouble(t *testing.T) {
	onlySpontaneous := kwab.AphasiaQuotient(0, 0, 0, 100)
	onlyAuditory := kwab.AphasiaQuotient(100, 0, 0, 0)

	assert.InDelta(t, 40, onlySpontaneous, 0.001)
	assert.InDelta(t, 20, onlyAuditory, 0.001)
}

func TestQuotientFromSession(t *testing.T) {
	session := &models.TrainingSession{
		Step1: &models.Step1Result{CorrectAnswers: 8, TotalQuestions: 10},
		Step2: &models.Step2Result{AveragePronunciation: 70},
		Step3: &models.Step3Result{CorrectAnswers: 9, TotalQuestions: 10},
		Step4: &models.Step4Result{AverageFluencyScore: 75},
	}

	got := kwab.QuotientFromSession(session)
	assert.InDelta(t, 78, got, 0.001)
}

func TestQuotientFromSession_AbsentStepsContributeZero(t *testing.T) {
	session := &models.TrainingSession{
		Step2: &models.Step2Result{AveragePronunciation: 70},
	}

	// Only repetition contributes: 70/100*10*2 = 14.
	assert.InDelta(t, 14, kwab.QuotientFromSession(session), 0.001)

	// Zero questions leave the comprehension terms out too.
	session.Step1 = &models.Step1Result{CorrectAnswers: 3, TotalQuestions: 0}
	assert.InDelta(t, 14, kwab.QuotientFromSession(session), 0.001)
}

// Package kwab converts raw step results into K-WAB style battery
// subtest scores and the composite Aphasia Quotient.
package kwab

import (
	"math"

	"github.com/haeun/braintalk/internal/models"
)

// Steps holds whichever step results have been saved so far. Absent steps
// are valid input and degrade to the documented default scores.
type Steps struct {
	Step1 *models.Step1Result
	Step2 *models.Step2Result
	Step3 *models.Step3Result
	Step4 *models.Step4Result
	Step5 *models.Step5Result
	Step6 *models.Step6Result
}

// StepsOf extracts the step slots from a session.
func StepsOf(s *models.TrainingSession) Steps {
	return Steps{
		Step1: s.Step1,
		Step2: s.Step2,
		Step3: s.Step3,
		Step4: s.Step4,
		Step5: s.Step5,
		Step6: s.Step6,
	}
}

// Aggregate maps the populated steps onto the five battery subtests. It is
// total over its input domain: any subset of steps, including none, yields
// a defined score set.
func Aggregate(patient models.PatientProfile, steps Steps) models.KWABScores {
	_ = patient // carried for the report layer's normative regime; not used in conversion
	return models.KWABScores{
		SpontaneousSpeech:     convertSpontaneousSpeech(steps.Step4),
		AuditoryComprehension: convertAuditoryComprehension(steps.Step1, steps.Step3),
		Repetition:            convertRepetition(steps.Step2),
		Naming:                convertNaming(),
		Reading:               convertReading(steps.Step5),
		Writing:               convertWriting(steps.Step6),
	}
}

func convertSpontaneousSpeech(step4 *models.Step4Result) models.SpontaneousSpeechScore {
	if step4 == nil {
		return models.SpontaneousSpeechScore{}
	}

	// Shorter pauses mean more fluent speech.
	fluency := 10
	switch {
	case step4.AveragePauseMs > 1000:
		fluency = 7
	case step4.AveragePauseMs > 800:
		fluency = 8
	case step4.AveragePauseMs > 500:
		fluency = 9
	}

	content := int(math.Round(step4.CompletionRate * 10))
	if content < 0 {
		content = 0
	}
	if content > 10 {
		content = 10
	}

	return models.SpontaneousSpeechScore{ContentScore: content, FluencyScore: fluency}
}

func convertAuditoryComprehension(step1 *models.Step1Result, step3 *models.Step3Result) models.AuditoryComprehensionScore {
	yesNo := 0.0
	if step1 != nil && step1.TotalQuestions > 0 {
		yesNo = math.Min(float64(step1.CorrectAnswers)/float64(step1.TotalQuestions)*60, 60)
	}

	wordRecognition := 0.0
	if step3 != nil && step3.TotalQuestions > 0 {
		wordRecognition = math.Min(float64(step3.CorrectAnswers)/float64(step3.TotalQuestions)*60, 60)
	}

	return models.AuditoryComprehensionScore{
		YesNoScore:           yesNo,
		WordRecognitionScore: wordRecognition,
		// Command following has no feeding step yet; a mid-range constant
		// stands in until one exists.
		CommandScore: 40,
	}
}

func convertRepetition(step2 *models.Step2Result) models.RepetitionScore {
	if step2 == nil {
		return models.RepetitionScore{}
	}
	total := int(math.Round(step2.AveragePronunciation))
	if total > 100 {
		total = 100
	}
	return models.RepetitionScore{TotalScore: total}
}

// Naming has no feeding step; the constants are deliberate placeholders,
// not derived from any signal.
func convertNaming() models.NamingScore {
	return models.NamingScore{
		ObjectNamingScore:       40,
		WordFluencyScore:        10,
		SentenceCompletionScore: 6,
		SentenceResponseScore:   6,
	}
}

func convertReading(step5 *models.Step5Result) models.ReadingScore {
	if step5 == nil || step5.TotalQuestions == 0 {
		return models.ReadingScore{}
	}
	total := int(math.Round(float64(step5.CorrectAnswers) / float64(step5.TotalQuestions) * 100))
	if total > 100 {
		total = 100
	}
	return models.ReadingScore{TotalScore: total}
}

func convertWriting(step6 *models.Step6Result) models.WritingScore {
	if step6 == nil {
		return models.WritingScore{}
	}
	total := int(math.Round(step6.Accuracy))
	if total > 100 {
		total = 100
	}
	return models.WritingScore{TotalScore: total}
}

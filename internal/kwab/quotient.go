package kwab

import "github.com/haeun/braintalk/internal/models"

// AphasiaQuotient folds four normalized step scores (each 0-100) into the
// 0-100 composite. Spontaneous speech carries double the weight of the
// other three, giving a 50-point weighted sub-score that is doubled.
func AphasiaQuotient(p1, p2, p3, p4 float64) float64 {
	aq := (p4/100*20 + p1/100*10 + p2/100*10 + p3/100*10) * 2
	if aq < 0 {
		return 0
	}
	if aq > 100 {
		return 100
	}
	return aq
}

// QuotientFromSession derives the four normalized step scores from a
// session and returns the composite. Absent steps contribute 0.
func QuotientFromSession(s *models.TrainingSession) float64 {
	var p1, p2, p3, p4 float64

	if s.Step1 != nil && s.Step1.TotalQuestions > 0 {
		p1 = float64(s.Step1.CorrectAnswers) / float64(s.Step1.TotalQuestions) * 100
	}
	if s.Step2 != nil {
		p2 = s.Step2.AveragePronunciation
	}
	if s.Step3 != nil && s.Step3.TotalQuestions > 0 {
		p3 = float64(s.Step3.CorrectAnswers) / float64(s.Step3.TotalQuestions) * 100
	}
	if s.Step4 != nil {
		p4 = float64(s.Step4.AverageFluencyScore)
	}

	return AphasiaQuotient(p1, p2, p3, p4)
}

package models

import "time"

// TrainingSession accumulates the six step results for one patient and
// place. KWABScores is recomputed from the populated steps on every save,
// so it is never stale for a step that is present.
type TrainingSession struct {
	SessionID   string         `json:"session_id"`
	Patient     PatientProfile `json:"patient"`
	Place       string         `json:"place"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`

	Step1 *Step1Result `json:"step1,omitempty"`
	Step2 *Step2Result `json:"step2,omitempty"`
	Step3 *Step3Result `json:"step3,omitempty"`
	Step4 *Step4Result `json:"step4,omitempty"`
	Step5 *Step5Result `json:"step5,omitempty"`
	Step6 *Step6Result `json:"step6,omitempty"`

	KWABScores *KWABScores `json:"kwab_scores,omitempty"`
}

// PopulatedSteps returns how many of the six step slots hold a result.
func (s *TrainingSession) PopulatedSteps() int {
	n := 0
	for _, present := range []bool{
		s.Step1 != nil, s.Step2 != nil, s.Step3 != nil,
		s.Step4 != nil, s.Step5 != nil, s.Step6 != nil,
	} {
		if present {
			n++
		}
	}
	return n
}

// CompletionRate returns the share of populated step slots as a percentage.
func (s *TrainingSession) CompletionRate() float64 {
	return float64(s.PopulatedSteps()) / 6 * 100
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	Place         string
	CompletedOnly bool
	MinAge        int
	MaxAge        int
	Limit         int
	Offset        int
}

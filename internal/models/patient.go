package models

// PatientProfile identifies the patient a training session belongs to.
// It is immutable once a session has started. Age selects the normative
// regime applied by downstream report views; the engine only carries it.
type PatientProfile struct {
	Age            int `json:"age"`
	EducationYears int `json:"education_years"`
}

package models

// K-WAB style battery scores. Each subtest is converted from the raw step
// results by the kwab package; the composite Aphasia Quotient is derived
// separately by the report layer.

type SpontaneousSpeechScore struct {
	ContentScore int `json:"content_score"` // 0-10
	FluencyScore int `json:"fluency_score"` // 0-10
}

type AuditoryComprehensionScore struct {
	YesNoScore           float64 `json:"yes_no_score"`           // 0-60
	WordRecognitionScore float64 `json:"word_recognition_score"` // 0-60
	CommandScore         float64 `json:"command_score"`          // 0-60
}

type RepetitionScore struct {
	TotalScore int `json:"total_score"` // 0-100
}

type NamingScore struct {
	ObjectNamingScore       int `json:"object_naming_score"`
	WordFluencyScore        int `json:"word_fluency_score"`
	SentenceCompletionScore int `json:"sentence_completion_score"`
	SentenceResponseScore   int `json:"sentence_response_score"`
}

type ReadingScore struct {
	TotalScore int `json:"total_score"` // 0-100
}

type WritingScore struct {
	TotalScore int `json:"total_score"` // 0-100
}

// KWABScores bundles the five battery subtests.
type KWABScores struct {
	SpontaneousSpeech     SpontaneousSpeechScore     `json:"spontaneous_speech"`
	AuditoryComprehension AuditoryComprehensionScore `json:"auditory_comprehension"`
	Repetition            RepetitionScore            `json:"repetition"`
	Naming                NamingScore                `json:"naming"`
	Reading               ReadingScore               `json:"reading"`
	Writing               WritingScore               `json:"writing"`
}

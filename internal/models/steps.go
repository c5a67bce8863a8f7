package models

// Per-task result containers. Each training step produces exactly one
// result; retrying a step overwrites the previous result wholesale.

// Step1Item is a single yes/no auditory comprehension question.
// UserAnswer is nil when the patient gave no answer before the timeout.
type Step1Item struct {
	Question       string  `json:"question"`
	UserAnswer     *bool   `json:"user_answer"`
	CorrectAnswer  bool    `json:"correct_answer"`
	IsCorrect      bool    `json:"is_correct"`
	ResponseTimeMs float64 `json:"response_time_ms"`
}

// Step1Result holds the auditory comprehension (yes/no) task outcome.
type Step1Result struct {
	CorrectAnswers        int         `json:"correct_answers"`
	TotalQuestions        int         `json:"total_questions"`
	AverageResponseTimeMs float64     `json:"average_response_time_ms"`
	Items                 []Step1Item `json:"items"`
}

// Step2Item is one repetition attempt, scored from the recognized
// transcript and the face-symmetry stream.
type Step2Item struct {
	Text               string  `json:"text"`
	SymmetryScore      float64 `json:"symmetry_score"`      // 0-100
	PronunciationScore float64 `json:"pronunciation_score"` // 0-100
	AudioLevel         float64 `json:"audio_level"`         // dB
}

// Step2Result holds the repetition task outcome.
type Step2Result struct {
	Items                []Step2Item `json:"items"`
	AverageSymmetry      float64     `json:"average_symmetry"`
	AveragePronunciation float64     `json:"average_pronunciation"`
}

// Step3Result holds the word-picture matching task outcome.
type Step3Result struct {
	CorrectAnswers        int     `json:"correct_answers"`
	TotalQuestions        int     `json:"total_questions"`
	AverageResponseTimeMs float64 `json:"average_response_time_ms"`
}

// Step4Item is one spontaneous-speech prompt with its fluency telemetry.
type Step4Item struct {
	Prompt          string  `json:"prompt"`
	Completed       bool    `json:"completed"`
	PauseDurationMs float64 `json:"pause_duration_ms"`
	FluencyScore    int     `json:"fluency_score"` // 0-100, from the amplitude extractor
}

// Step4Result holds the spontaneous-speech (fluency) task outcome.
type Step4Result struct {
	Items               []Step4Item `json:"items"`
	AveragePauseMs      float64     `json:"average_pause_ms"`
	CompletionRate      float64     `json:"completion_rate"` // 0..1
	AverageFluencyScore int         `json:"average_fluency_score"`
}

// Step5Result holds the reading task outcome. The words-per-minute fields
// are populated when the reading task ran with amplitude capture.
type Step5Result struct {
	CorrectAnswers   int     `json:"correct_answers"`
	TotalQuestions   int     `json:"total_questions"`
	WordsPerMinute   int     `json:"words_per_minute,omitempty"`
	PauseCount       int     `json:"pause_count,omitempty"`
	AverageAmplitude float64 `json:"average_amplitude,omitempty"`
	ReadingScore     int     `json:"reading_score,omitempty"`
}

// Step6Result holds the writing task outcome. Accuracy comes from the
// edit-distance verification of the written text against the target.
type Step6Result struct {
	CompletedTasks int     `json:"completed_tasks"`
	TotalTasks     int     `json:"total_tasks"`
	Accuracy       float64 `json:"accuracy"` // 0-100
}

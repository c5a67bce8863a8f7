package transcribe

import "context"

// Transcription is the recognized text for one audio clip. Confidence is
// 1 minus the mean no-speech probability across segments.
type Transcription struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ClientInterface defines the interface for the speech-to-text proxy.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (*Transcription, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// Package transcribe proxies recorded audio to an OpenAI-compatible
// speech-to-text endpoint. The engine itself never touches audio; the
// capture UI posts clips through this client and feeds the recognized
// text back into the repetition scorer.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/haeun/braintalk/internal/logger"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	language   string
	log        *logger.Logger
}

// Options configures a transcription Client.
type Options struct {
	BaseURL  string
	APIKey   string
	Model    string
	Language string
	Timeout  time.Duration
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		model:      model,
		language:   opts.Language,
		log:        logger.Default().WithPrefix("transcribe"),
	}
}

type segment struct {
	NoSpeechProb float64 `json:"no_speech_prob"`
}

type transcriptionResp struct {
	Text     string    `json:"text"`
	Segments []segment `json:"segments"`
}

// Transcribe uploads one audio clip and returns the recognized text with
// a confidence estimate.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (*Transcription, error) {
	log := logger.FromContext(ctx).WithPrefix("transcribe")
	url := c.baseURL + "/audio/transcriptions"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, err
	}
	_ = mw.WriteField("model", c.model)
	if c.language != "" {
		_ = mw.WriteField("language", c.language)
	}
	_ = mw.WriteField("response_format", "verbose_json")
	if err := mw.Close(); err != nil {
		return nil, err
	}

	log.Debug("uploading %d bytes to %s", len(audio), url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("transcription request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("transcription response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("transcription failed: status=%d, body=%s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("transcription status %d: %s", resp.StatusCode, string(respBody))
	}

	var out transcriptionResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode transcription response: %v", err)
		return nil, err
	}

	// Average no-speech probability across segments; high values mean the
	// clip likely contained no usable speech.
	noSpeech := 0.0
	if len(out.Segments) > 0 {
		for _, seg := range out.Segments {
			noSpeech += seg.NoSpeechProb
		}
		noSpeech /= float64(len(out.Segments))
	}

	log.Info("transcribed %d bytes: %d chars, confidence=%.2f", len(audio), len(out.Text), 1-noSpeech)
	return &Transcription{Text: out.Text, Confidence: 1 - noSpeech}, nil
}

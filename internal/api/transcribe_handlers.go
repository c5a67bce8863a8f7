package api

import (
	"io"
	"net/http"

	"github.com/haeun/braintalk/internal/errors"
	"github.com/haeun/braintalk/internal/logger"
	"github.com/haeun/braintalk/internal/speech"
)

// maxAudioBytes caps uploaded clips; step recordings stay well under this.
const maxAudioBytes = 15 << 20

// handleTranscribe proxies a recorded clip to the speech-to-text backend.
// When the form carries an expected text, the recognized transcript is
// also scored against it and the pronunciation metrics are returned.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		log.Warn("invalid multipart form: %v", err)
		handleError(w, r, errors.NewBadRequestError("expected multipart form with an audio file"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("missing audio file"))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}
	if len(audio) == 0 {
		handleError(w, r, errors.NewBadRequestError("audio file is empty"))
		return
	}

	result, err := s.Transcriber.Transcribe(r.Context(), audio, header.Filename)
	if err != nil {
		handleError(w, r, errors.NewUpstreamError("transcription", err))
		return
	}

	resp := map[string]any{
		"text":       result.Text,
		"confidence": result.Confidence,
	}
	if expected := r.FormValue("expected"); expected != "" {
		metrics := speech.AnalyzePronunciation(expected, result.Text)
		resp["pronunciation"] = metrics
		resp["pronunciation_score"] = speech.PronunciationScore(expected, result.Text)
	}

	respondJSON(w, r, http.StatusOK, resp)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/current", s.handleCurrentSession)
		r.Get("/sessions/current/report", s.handleReport)
		r.Post("/sessions/current/steps/{step}", s.handleSaveStep)
		r.Post("/sessions/current/playback/{step}/{question}", s.handlePlayback)
		r.Post("/transcribe", s.handleTranscribe)
	})

	return r
}

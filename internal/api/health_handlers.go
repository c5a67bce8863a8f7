package api

import (
	"net/http"

	"github.com/haeun/braintalk/internal/logger"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns a readiness probe - 200 when the database answers,
// 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("readiness check failed - database: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Database unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

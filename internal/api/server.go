package api

import (
	"encoding/json"
	"net/http"

	"github.com/haeun/braintalk/internal/db"
	"github.com/haeun/braintalk/internal/logger"
	"github.com/haeun/braintalk/internal/session"
	"github.com/haeun/braintalk/internal/transcribe"
)

type Server struct {
	Sessions    *session.Service
	Transcriber transcribe.ClientInterface
	DB          *db.DB
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

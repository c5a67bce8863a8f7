package api

import (
	"net/http"

	"github.com/haeun/braintalk/internal/errors"
	"github.com/haeun/braintalk/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	respondJSON(w, r, appErr.Status, map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

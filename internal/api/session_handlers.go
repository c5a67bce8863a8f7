package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/haeun/braintalk/internal/errors"
	"github.com/haeun/braintalk/internal/logger"
	"github.com/haeun/braintalk/internal/models"
)

type startSessionRequest struct {
	Patient models.PatientProfile `json:"patient"`
	Place   string                `json:"place"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("invalid start session payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	sess, err := s.Sessions.Start(r.Context(), req.Patient, req.Place)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, sess)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Current(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, sess)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.Sessions.Report(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.SessionFilter{
		Place:         q.Get("place"),
		CompletedOnly: q.Get("completed") == "true",
	}
	filter.MinAge, _ = strconv.Atoi(q.Get("min_age"))
	filter.MaxAge, _ = strconv.Atoi(q.Get("max_age"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	sessions, err := s.Sessions.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// handleSaveStep decodes the step-specific result payload and stores it.
// Steps may arrive in any order; the battery scores are recomputed from
// whichever steps are present after the save.
func (s *Server) handleSaveStep(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil || step < 1 || step > 6 {
		log.Warn("invalid step: %s", chi.URLParam(r, "step"))
		handleError(w, r, errors.NewBadRequestError("step must be 1..6"))
		return
	}

	var sess *models.TrainingSession
	switch step {
	case 1:
		var result models.Step1Result
		if err = decodeJSON(r, &result); err == nil {
			sess, err = s.Sessions.SaveStep1(r.Context(), result)
		}
	case 2:
		var result models.Step2Result
		if err = decodeJSON(r, &result); err == nil {
			sess, err = s.Sessions.SaveStep2(r.Context(), result)
		}
	case 3:
		var result models.Step3Result
		if err = decodeJSON(r, &result); err == nil {
			sess, err = s.Sessions.SaveStep3(r.Context(), result)
		}
	case 4:
		var result models.Step4Result
		if err = decodeJSON(r, &result); err == nil {
			sess, err = s.Sessions.SaveStep4(r.Context(), result)
		}
	case 5:
		var result models.Step5Result
		if err = decodeJSON(r, &result); err == nil {
			sess, err = s.Sessions.SaveStep5(r.Context(), result)
		}
	case 6:
		var result models.Step6Result
		if err = decodeJSON(r, &result); err == nil {
			sess, err = s.Sessions.SaveStep6(r.Context(), result)
		}
	}
	if err != nil {
		if _, ok := err.(*errors.AppError); !ok {
			log.Warn("invalid step %d payload: %v", step, err)
			err = errors.NewBadRequestError("invalid step result body")
		}
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, sess)
}

func (s *Server) handlePlayback(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil || step < 1 || step > 6 {
		handleError(w, r, errors.NewBadRequestError("step must be 1..6"))
		return
	}
	question, err := strconv.Atoi(chi.URLParam(r, "question"))
	if err != nil || question < 0 {
		handleError(w, r, errors.NewBadRequestError("invalid question index"))
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"should_play": s.Sessions.FirstPlay(step, question),
	})
}

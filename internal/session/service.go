// Package session owns the active training session: starting or resuming
// one, saving per-step results, and recomputing the battery scores on
// every save.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haeun/braintalk/internal/errors"
	"github.com/haeun/braintalk/internal/kwab"
	"github.com/haeun/braintalk/internal/logger"
	"github.com/haeun/braintalk/internal/models"
	"github.com/haeun/braintalk/internal/repository"
)

// Report is the terminal contract of the scoring engine: the battery
// scores plus the composite quotient and completion ratio.
type Report struct {
	SessionID       string                `json:"session_id"`
	Patient         models.PatientProfile `json:"patient"`
	Place           string                `json:"place"`
	CompletionRate  float64               `json:"completion_rate"`
	KWABScores      *models.KWABScores    `json:"kwab_scores"`
	AphasiaQuotient float64               `json:"aphasia_quotient"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
}

// Service manages the one active session. The host UI serializes step
// transitions; the mutex only protects against concurrent HTTP handlers.
type Service struct {
	repo     repository.SessionRepository
	playback *PlaybackGuard

	mu     sync.Mutex
	active *models.TrainingSession

	now func() time.Time
}

// NewService creates a new session Service.
func NewService(repo repository.SessionRepository) *Service {
	return &Service{
		repo:     repo,
		playback: NewPlaybackGuard(),
		now:      time.Now,
	}
}

// Start begins a scoring flow for the given patient and place. A persisted
// session is resumed when its patient age matches the requested one; age is
// a coarse identity key, kept for compatibility with existing stored
// sessions. Otherwise a fresh session is created and persisted immediately.
func (s *Service) Start(ctx context.Context, patient models.PatientProfile, place string) (*models.TrainingSession, error) {
	log := logger.FromContext(ctx)

	if patient.Age < 0 {
		return nil, errors.NewValidationError("age", "must not be negative")
	}
	if patient.EducationYears < 0 {
		return nil, errors.NewValidationError("education_years", "must not be negative")
	}
	if place == "" {
		return nil, errors.NewValidationError("place", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.Latest(ctx)
	if err != nil {
		log.Error("failed to load persisted session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil && existing.Patient.Age == patient.Age {
		log.Info("resuming session %s for patient age %d", existing.SessionID, patient.Age)
		s.active = existing
		s.playback.Reset()
		return copySession(existing), nil
	}

	session := &models.TrainingSession{
		SessionID: fmt.Sprintf("session_%d", s.now().UnixMilli()),
		Patient:   patient,
		Place:     place,
		StartedAt: s.now(),
	}
	if err := s.repo.Save(ctx, session); err != nil {
		log.Error("failed to persist new session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("started session %s: place=%s, age=%d", session.SessionID, place, patient.Age)
	s.active = session
	s.playback.Reset()
	return copySession(session), nil
}

// Current returns the active session, or a NOT_FOUND error when no
// scoring flow has started.
func (s *Service) Current(ctx context.Context) (*models.TrainingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, errors.NewNotFoundError("session", "current")
	}
	return copySession(s.active), nil
}

// CompletionRate returns the share of populated step slots as a
// percentage of the six steps.
func (s *Service) CompletionRate(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return 0, errors.NewNotFoundError("session", "current")
	}
	return s.active.CompletionRate(), nil
}

// Report builds the composite report for the active session.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, errors.NewNotFoundError("session", "current")
	}

	return &Report{
		SessionID:       s.active.SessionID,
		Patient:         s.active.Patient,
		Place:           s.active.Place,
		CompletionRate:  s.active.CompletionRate(),
		KWABScores:      s.active.KWABScores,
		AphasiaQuotient: kwab.QuotientFromSession(s.active),
		CompletedAt:     s.active.CompletedAt,
	}, nil
}

// List returns persisted sessions matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter models.SessionFilter) ([]models.TrainingSession, error) {
	sessions, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return sessions, nil
}

// FirstPlay reports whether the prompt for (step, question) still needs
// to be spoken aloud, marking it as played.
func (s *Service) FirstPlay(step, question int) bool {
	return s.playback.FirstPlay(step, question)
}

// SaveStep1 stores the auditory comprehension result.
func (s *Service) SaveStep1(ctx context.Context, result models.Step1Result) (*models.TrainingSession, error) {
	if err := validateCounts(result.CorrectAnswers, result.TotalQuestions); err != nil {
		return nil, err
	}
	return s.save(ctx, 1, func(session *models.TrainingSession) {
		session.Step1 = &result
	})
}

// SaveStep2 stores the repetition result.
func (s *Service) SaveStep2(ctx context.Context, result models.Step2Result) (*models.TrainingSession, error) {
	if result.AveragePronunciation < 0 || result.AveragePronunciation > 100 {
		return nil, errors.NewValidationError("average_pronunciation", "must be within 0..100")
	}
	return s.save(ctx, 2, func(session *models.TrainingSession) {
		session.Step2 = &result
	})
}

// SaveStep3 stores the word-picture matching result.
func (s *Service) SaveStep3(ctx context.Context, result models.Step3Result) (*models.TrainingSession, error) {
	if err := validateCounts(result.CorrectAnswers, result.TotalQuestions); err != nil {
		return nil, err
	}
	return s.save(ctx, 3, func(session *models.TrainingSession) {
		session.Step3 = &result
	})
}

// SaveStep4 stores the spontaneous-speech result.
func (s *Service) SaveStep4(ctx context.Context, result models.Step4Result) (*models.TrainingSession, error) {
	if result.CompletionRate < 0 || result.CompletionRate > 1 {
		return nil, errors.NewValidationError("completion_rate", "must be within 0..1")
	}
	if result.AveragePauseMs < 0 {
		return nil, errors.NewValidationError("average_pause_ms", "must not be negative")
	}
	return s.save(ctx, 4, func(session *models.TrainingSession) {
		session.Step4 = &result
	})
}

// SaveStep5 stores the reading result.
func (s *Service) SaveStep5(ctx context.Context, result models.Step5Result) (*models.TrainingSession, error) {
	if err := validateCounts(result.CorrectAnswers, result.TotalQuestions); err != nil {
		return nil, err
	}
	return s.save(ctx, 5, func(session *models.TrainingSession) {
		session.Step5 = &result
	})
}

// SaveStep6 stores the writing result and finalizes the session.
func (s *Service) SaveStep6(ctx context.Context, result models.Step6Result) (*models.TrainingSession, error) {
	if result.Accuracy < 0 || result.Accuracy > 100 {
		return nil, errors.NewValidationError("accuracy", "must be within 0..100")
	}
	if err := validateCounts(result.CompletedTasks, result.TotalTasks); err != nil {
		return nil, err
	}
	return s.save(ctx, 6, func(session *models.TrainingSession) {
		session.Step6 = &result
		completed := s.now()
		session.CompletedAt = &completed
	})
}

// save overwrites one step slot, recomputes the battery scores over
// whichever steps are now populated, and persists the whole session.
func (s *Service) save(ctx context.Context, step int, apply func(*models.TrainingSession)) (*models.TrainingSession, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, errors.NewNotFoundError("session", "current")
	}

	apply(s.active)

	scores := kwab.Aggregate(s.active.Patient, kwab.StepsOf(s.active))
	s.active.KWABScores = &scores

	if err := s.repo.Save(ctx, s.active); err != nil {
		log.Error("failed to persist session after step %d: %v", step, err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("step %d saved: session=%s, completion=%.0f%%", step, s.active.SessionID, s.active.CompletionRate())
	return copySession(s.active), nil
}

func validateCounts(correct, total int) error {
	if total < 0 {
		return errors.NewValidationError("total", "must not be negative")
	}
	if correct < 0 || correct > total {
		return errors.NewValidationError("correct", "must be within 0..total")
	}
	return nil
}

// copySession returns a shallow copy so callers cannot mutate the slot
// pointers out from under the service.
func copySession(s *models.TrainingSession) *models.TrainingSession {
	dup := *s
	return &dup
}

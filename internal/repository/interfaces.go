package repository

import (
	"context"

	"github.com/haeun/braintalk/internal/models"
)

// SessionRepository handles training session persistence. Save overwrites
// the whole session record; there are no partial updates.
type SessionRepository interface {
	Save(ctx context.Context, session *models.TrainingSession) error
	Get(ctx context.Context, sessionID string) (*models.TrainingSession, error)
	Latest(ctx context.Context) (*models.TrainingSession, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.TrainingSession, error)
	Delete(ctx context.Context, sessionID string) error
}

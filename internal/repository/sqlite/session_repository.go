package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/haeun/braintalk/internal/logger"
	"github.com/haeun/braintalk/internal/models"
	"github.com/haeun/braintalk/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Save persists the whole session as one record, replacing any previous
// row for the same session id.
func (r *sessionRepository) Save(ctx context.Context, session *models.TrainingSession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("saving session: id=%s, steps=%d", session.SessionID, session.PopulatedSteps())

	payload, err := json.Marshal(session)
	if err != nil {
		log.Error("failed to marshal session: %v", err)
		return err
	}

	var completedAt any
	if session.CompletedAt != nil {
		completedAt = *session.CompletedAt
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO sessions (session_id, patient_age, education_years, place, started_at, completed_at, payload, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
    patient_age = excluded.patient_age,
    education_years = excluded.education_years,
    place = excluded.place,
    started_at = excluded.started_at,
    completed_at = excluded.completed_at,
    payload = excluded.payload,
    updated_at = excluded.updated_at
`, session.SessionID, session.Patient.Age, session.Patient.EducationYears, session.Place,
		session.StartedAt, completedAt, string(payload), time.Now())
	if err != nil {
		log.Error("failed to save session: %v", err)
		return err
	}
	log.Debug("session saved: id=%s", session.SessionID)
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, sessionID string) (*models.TrainingSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%s", sessionID)

	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM sessions WHERE session_id = ?`, sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%s", sessionID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return r.decode(ctx, payload)
}

// Latest returns the most recently started session, or nil when none
// exists. A record whose payload no longer deserializes is treated the
// same as no session at all.
func (r *sessionRepository) Latest(ctx context.Context) (*models.TrainingSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting latest session")

	var payload string
	err := r.db.QueryRowContext(ctx, `
SELECT payload FROM sessions ORDER BY started_at DESC, session_id DESC LIMIT 1
`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no persisted session")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get latest session: %v", err)
		return nil, err
	}
	return r.decode(ctx, payload)
}

func (r *sessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.TrainingSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions: place=%s, completed_only=%t, min_age=%d, max_age=%d",
		filter.Place, filter.CompletedOnly, filter.MinAge, filter.MaxAge)

	query := sqlBuilder.Select("payload").From("sessions")

	if filter.Place != "" {
		query = query.Where(squirrel.Eq{"place": filter.Place})
	}
	if filter.CompletedOnly {
		query = query.Where("completed_at IS NOT NULL")
	}
	if filter.MinAge > 0 {
		query = query.Where(squirrel.GtOrEq{"patient_age": filter.MinAge})
	}
	if filter.MaxAge > 0 {
		query = query.Where(squirrel.LtOrEq{"patient_age": filter.MaxAge})
	}

	query = query.OrderBy("started_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.TrainingSession
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		session, err := r.decode(ctx, payload)
		if err != nil {
			return nil, err
		}
		if session == nil {
			// Corrupt rows are skipped, not fatal for a listing.
			continue
		}
		sessions = append(sessions, *session)
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, rows.Err()
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("deleting session: id=%s", sessionID)

	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		log.Error("failed to delete session: %v", err)
	}
	return err
}

// decode unmarshals a stored payload. Corrupt payloads yield (nil, nil):
// the engine treats an unreadable record as no session rather than
// attempting repair.
func (r *sessionRepository) decode(ctx context.Context, payload string) (*models.TrainingSession, error) {
	var session models.TrainingSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		logger.FromContext(ctx).WithPrefix("session_repo").Warn("discarding corrupt session payload: %v", err)
		return nil, nil
	}
	return &session, nil
}

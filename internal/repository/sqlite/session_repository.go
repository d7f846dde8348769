package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, profileID int64, sessionType string) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	res, err := r.db.ExecContext(ctx, `INSERT INTO study_sessions (profile_id, session_type) VALUES (?, ?)`, profileID, sessionType)
	if err != nil {
		log.Error("failed to create %s session: %v", sessionType, err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("session created: id=%d, type=%s", id, sessionType)
	return id, nil
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.StudySession, error) {
	var s models.StudySession
	var finished sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, session_type, words_total, words_correct, started_at, finished_at
FROM study_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.ProfileID, &s.SessionType, &s.WordsTotal, &s.WordsCorrect, &s.StartedAt, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("session_repo").Error("failed to get session %d: %v", id, err)
		return nil, err
	}
	s.FinishedAt = timePtr(finished)
	return &s, nil
}

func (r *sessionRepository) Finish(ctx context.Context, id int64, total, correct int, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE study_sessions SET words_total = ?, words_correct = ?, finished_at = ? WHERE id = ?
`, total, correct, utc(at), id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("session_repo").Error("failed to finish session %d: %v", id, err)
	}
	return err
}

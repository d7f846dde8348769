package repository

import (
	"context"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// SessionRepository handles study session bookkeeping
type SessionRepository interface {
	Create(ctx context.Context, profileID int64, sessionType string) (int64, error)
	Get(ctx context.Context, id int64) (*models.StudySession, error)
	Finish(ctx context.Context, id int64, total, correct int, at time.Time) error
}

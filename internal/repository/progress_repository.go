package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// ErrStaleProgress is returned when a progress row changed after it was read.
var ErrStaleProgress = errors.New("word progress was modified concurrently")

// ProgressRepository handles per-learner word scheduling state
type ProgressRepository interface {
	Get(ctx context.Context, profileID int64, wordIDs []int64) (map[int64]models.WordProgress, error)
	// Due returns words whose next review is at or before now, earliest
	// first, ties broken by word id.
	Due(ctx context.Context, profileID int64, now time.Time, limit int) ([]models.DueWord, error)
	// InsertNew stores rows for words that have no progress yet and returns
	// how many were inserted. Existing rows are left untouched.
	InsertNew(ctx context.Context, rows []models.WordProgress) (int, error)
	// RecentlyLearned returns ids of learned or known words with learned_at
	// at or after since, most recent first.
	RecentlyLearned(ctx context.Context, profileID int64, since time.Time, limit int) ([]int64, error)
	// SaveReviews writes updated rows and their review events atomically.
	// Each row must still carry the version it was read with, otherwise
	// ErrStaleProgress is returned and nothing is written.
	SaveReviews(ctx context.Context, rows []models.WordProgress, events []models.ReviewEvent) error
}

package repository

import (
	"context"

	"github.com/vytor/wordflash/internal/models"
)

// StatsRepository aggregates a learner's review history. Words are
// restricted to lang; translations are left for the caller to fill in.
type StatsRepository interface {
	// WeakWords returns words with at least one wrong review event, most
	// wrong answers first, and the total number of such words.
	WeakWords(ctx context.Context, profileID int64, lang string, limit int) ([]models.WeakWord, int, error)
	// ReviewPlan returns scheduled words ordered by next review then lemma,
	// and the total number of scheduled words. A limit of zero means all.
	ReviewPlan(ctx context.Context, profileID int64, lang string, limit int) ([]models.ReviewPlanItem, int, error)
}

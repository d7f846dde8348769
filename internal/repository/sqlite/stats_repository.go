package sqlite

import (
	"context"
	"database/sql"
	"math"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

// Per-word answer tallies of a learner; bound to the profile id.
const reviewTallies = `
SELECT word_id,
    SUM(CASE WHEN result = 'wrong' THEN 1 ELSE 0 END) AS wrong_count,
    SUM(CASE WHEN result = 'correct' THEN 1 ELSE 0 END) AS correct_count
FROM review_events
WHERE profile_id = ?
GROUP BY word_id
HAVING SUM(CASE WHEN result = 'wrong' THEN 1 ELSE 0 END) > 0
`

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) WeakWords(ctx context.Context, profileID int64, lang string, limit int) ([]models.WeakWord, int, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching weak words: profile_id=%d, lang=%s, limit=%d", profileID, lang, limit)

	var total int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM (`+reviewTallies+`) e
JOIN words w ON w.id = e.word_id
JOIN word_progress p ON p.profile_id = ? AND p.word_id = e.word_id
WHERE w.lang = ?
`, profileID, profileID, lang).Scan(&total)
	if err != nil {
		log.Error("failed to count weak words: %v", err)
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT e.word_id, e.wrong_count, e.correct_count, w.lemma, p.learned_at, p.next_review_at
FROM (`+reviewTallies+`) e
JOIN words w ON w.id = e.word_id
JOIN word_progress p ON p.profile_id = ? AND p.word_id = e.word_id
WHERE w.lang = ?
ORDER BY e.wrong_count DESC, e.correct_count ASC, e.word_id ASC
LIMIT ?
`, profileID, profileID, lang, limit)
	if err != nil {
		log.Error("failed to query weak words: %v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var words []models.WeakWord
	for rows.Next() {
		var w models.WeakWord
		var learnedAt, nextReviewAt sql.NullTime
		if err := rows.Scan(&w.WordID, &w.WrongCount, &w.CorrectCount, &w.Word, &learnedAt, &nextReviewAt); err != nil {
			log.Error("failed to scan weak word row: %v", err)
			return nil, 0, err
		}
		w.LearnedAt = timePtr(learnedAt)
		w.NextReviewAt = timePtr(nextReviewAt)
		w.Accuracy = accuracy(w.CorrectCount, w.WrongCount)
		words = append(words, w)
	}
	log.Debug("found %d of %d weak words", len(words), total)
	return words, total, rows.Err()
}

func (r *statsRepository) ReviewPlan(ctx context.Context, profileID int64, lang string, limit int) ([]models.ReviewPlanItem, int, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching review plan: profile_id=%d, lang=%s, limit=%d", profileID, lang, limit)

	scheduled := squirrel.And{
		squirrel.Eq{"p.profile_id": profileID, "w.lang": lang},
		squirrel.NotEq{"p.next_review_at": nil},
	}

	countQuery, countArgs, err := sqlBuilder.Select("COUNT(*)").
		From("word_progress p").
		Join("words w ON w.id = p.word_id").
		Where(scheduled).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count scheduled words: %v", err)
		return nil, 0, err
	}

	q := sqlBuilder.Select(
		"p.word_id", "w.lemma", "p.learned_at", "p.next_review_at", "p.stage",
		"EXISTS (SELECT 1 FROM custom_words cw WHERE cw.profile_id = p.profile_id AND cw.word_id = p.word_id)",
	).
		From("word_progress p").
		Join("words w ON w.id = p.word_id").
		Where(scheduled).
		OrderBy("p.next_review_at ASC", "w.lemma ASC", "p.word_id ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query review plan: %v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.ReviewPlanItem
	for rows.Next() {
		var it models.ReviewPlanItem
		var learnedAt, nextReviewAt sql.NullTime
		if err := rows.Scan(&it.WordID, &it.Word, &learnedAt, &nextReviewAt, &it.Stage, &it.Custom); err != nil {
			log.Error("failed to scan review plan row: %v", err)
			return nil, 0, err
		}
		it.LearnedAt = timePtr(learnedAt)
		it.NextReviewAt = nextReviewAt.Time.UTC()
		items = append(items, it)
	}
	log.Debug("found %d of %d scheduled words", len(items), total)
	return items, total, rows.Err()
}

func accuracy(correct, wrong int) float64 {
	attempts := correct + wrong
	if attempts == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(attempts)*1000) / 1000
}

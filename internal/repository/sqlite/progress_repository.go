package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

var progressColumns = []string{
	"p.profile_id", "p.word_id", "p.status", "p.stage", "p.repetitions", "p.interval_days", "p.ease_factor",
	"p.learned_at", "p.last_review_at", "p.next_review_at", "p.correct_streak", "p.wrong_streak", "p.version",
}

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func scanProgress(row interface{ Scan(...any) error }, extra ...any) (models.WordProgress, error) {
	var p models.WordProgress
	var learnedAt, lastReviewAt, nextReviewAt sql.NullTime
	dest := []any{
		&p.ProfileID, &p.WordID, &p.Status, &p.Stage, &p.Repetitions, &p.IntervalDays, &p.EaseFactor,
		&learnedAt, &lastReviewAt, &nextReviewAt, &p.CorrectStreak, &p.WrongStreak, &p.Version,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return p, err
	}
	p.LearnedAt = timePtr(learnedAt)
	p.LastReviewAt = timePtr(lastReviewAt)
	p.NextReviewAt = timePtr(nextReviewAt)
	return p, nil
}

func (r *progressRepository) Get(ctx context.Context, profileID int64, wordIDs []int64) (map[int64]models.WordProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	out := make(map[int64]models.WordProgress, len(wordIDs))
	if len(wordIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlBuilder.Select(progressColumns...).
		From("word_progress p").
		Where(squirrel.Eq{"p.profile_id": profileID, "p.word_id": wordIDs}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		out[p.WordID] = p
	}
	log.Debug("loaded %d of %d progress rows", len(out), len(wordIDs))
	return out, rows.Err()
}

func (r *progressRepository) Due(ctx context.Context, profileID int64, now time.Time, limit int) ([]models.DueWord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching due words: profile_id=%d, limit=%d", profileID, limit)

	query, args, err := sqlBuilder.Select(append(progressColumns, "w.lemma")...).
		From("word_progress p").
		Join("words w ON w.id = p.word_id").
		Where(squirrel.Eq{"p.profile_id": profileID}).
		Where(squirrel.NotEq{"p.next_review_at": nil}).
		Where(squirrel.LtOrEq{"p.next_review_at": utc(now)}).
		OrderBy("p.next_review_at ASC", "p.word_id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query due words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var due []models.DueWord
	for rows.Next() {
		var lemma string
		p, err := scanProgress(rows, &lemma)
		if err != nil {
			log.Error("failed to scan due word row: %v", err)
			return nil, err
		}
		due = append(due, models.DueWord{WordProgress: p, Lemma: lemma})
	}
	log.Debug("found %d due words", len(due))
	return due, rows.Err()
}

func (r *progressRepository) InsertNew(ctx context.Context, rows []models.WordProgress) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	if len(rows) == 0 {
		return 0, nil
	}

	inserted := 0
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO word_progress (profile_id, word_id, status, stage, repetitions, interval_days, ease_factor,
    learned_at, last_review_at, next_review_at, correct_streak, wrong_streak)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(profile_id, word_id) DO NOTHING
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, p := range rows {
			res, err := stmt.ExecContext(ctx, p.ProfileID, p.WordID, p.Status, p.Stage, p.Repetitions, p.IntervalDays, p.EaseFactor,
				nullableTime(p.LearnedAt), nullableTime(p.LastReviewAt), nullableTime(p.NextReviewAt), p.CorrectStreak, p.WrongStreak)
			if err != nil {
				log.Error("failed to insert progress for word %d: %v", p.WordID, err)
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Debug("inserted %d of %d progress rows", inserted, len(rows))
	return inserted, nil
}

func (r *progressRepository) RecentlyLearned(ctx context.Context, profileID int64, since time.Time, limit int) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	query, args, err := sqlBuilder.Select("word_id").
		From("word_progress").
		Where(squirrel.Eq{"profile_id": profileID, "status": []string{models.StatusLearned, models.StatusKnown}}).
		Where(squirrel.NotEq{"learned_at": nil}).
		Where(squirrel.GtOrEq{"learned_at": utc(since)}).
		OrderBy("learned_at DESC", "word_id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query recently learned words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	log.Debug("found %d recently learned words", len(ids))
	return ids, rows.Err()
}

func (r *progressRepository) SaveReviews(ctx context.Context, rows []models.WordProgress, events []models.ReviewEvent) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("saving %d progress rows and %d review events", len(rows), len(events))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, p := range rows {
			res, err := tx.ExecContext(ctx, `
UPDATE word_progress
SET status = ?, stage = ?, repetitions = ?, interval_days = ?, ease_factor = ?,
    learned_at = ?, last_review_at = ?, next_review_at = ?, correct_streak = ?, wrong_streak = ?,
    version = version + 1
WHERE profile_id = ? AND word_id = ? AND version = ?
`, p.Status, p.Stage, p.Repetitions, p.IntervalDays, p.EaseFactor,
				nullableTime(p.LearnedAt), nullableTime(p.LastReviewAt), nullableTime(p.NextReviewAt), p.CorrectStreak, p.WrongStreak,
				p.ProfileID, p.WordID, p.Version)
			if err != nil {
				log.Error("failed to update progress for word %d: %v", p.WordID, err)
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				log.Warn("stale progress row: profile_id=%d, word_id=%d, version=%d", p.ProfileID, p.WordID, p.Version)
				return fmt.Errorf("word %d: %w", p.WordID, repository.ErrStaleProgress)
			}
		}

		for _, e := range events {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO review_events (profile_id, word_id, result, created_at)
VALUES (?, ?, ?, ?)
`, e.ProfileID, e.WordID, e.Result, utc(e.CreatedAt)); err != nil {
				log.Error("failed to insert review event for word %d: %v", e.WordID, err)
				return err
			}
		}
		return nil
	})
}

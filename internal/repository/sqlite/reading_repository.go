package sqlite

import (
	"context"
	"database/sql"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type readingRepository struct {
	db *sql.DB
}

// NewReadingRepository creates a new ReadingRepository implementation
func NewReadingRepository(db *sql.DB) repository.ReadingRepository {
	return &readingRepository{db: db}
}

func (r *readingRepository) UpsertCorpus(ctx context.Context, slug, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO corpora (slug, name)
VALUES (?, ?)
ON CONFLICT(slug) DO UPDATE SET name = excluded.name
RETURNING id
`, slug, name).Scan(&id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("reading_repo").Error("failed to upsert corpus %s: %v", slug, err)
	}
	return id, err
}

func (r *readingRepository) SetCorpusEnabled(ctx context.Context, profileID, corpusID int64, enabled bool) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_corpora (profile_id, corpus_id, enabled)
VALUES (?, ?, ?)
ON CONFLICT(profile_id, corpus_id) DO UPDATE SET enabled = excluded.enabled
`, profileID, corpusID, enabled)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("reading_repo").Error("failed to toggle corpus %d: %v", corpusID, err)
	}
	return err
}

func (r *readingRepository) EnabledCorpora(ctx context.Context, profileID int64) ([]int64, error) {
	return r.queryIDs(ctx, `SELECT corpus_id FROM user_corpora WHERE profile_id = ? AND enabled = 1 ORDER BY corpus_id`, profileID)
}

func (r *readingRepository) Corpora(ctx context.Context, profileID int64) ([]models.Corpus, error) {
	query, args, err := sqlBuilder.
		Select("c.id", "c.slug", "c.name", "COUNT(s.id)", "COALESCE(MAX(uc.enabled), 0)").
		From("corpora c").
		LeftJoin("reading_sources s ON s.corpus_id = c.id").
		LeftJoin("user_corpora uc ON uc.corpus_id = c.id AND uc.profile_id = ?", profileID).
		GroupBy("c.id", "c.slug", "c.name").
		OrderBy("c.name", "c.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("reading_repo").Error("failed to list corpora: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.Corpus
	for rows.Next() {
		var c models.Corpus
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Sources, &c.Enabled); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *readingRepository) SourceBySlug(ctx context.Context, slug string) (*models.ReadingSource, error) {
	rows, err := r.querySources(ctx, sqlBuilder.Select(sourceColumns...).
		From("reading_sources s").
		LeftJoin("corpora c ON c.id = s.corpus_id").
		Where(squirrel.Eq{"s.slug": slug}))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *readingRepository) DeleteSource(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reading_sources WHERE id = ?`, id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("reading_repo").Error("failed to delete source %d: %v", id, err)
	}
	return err
}

func (r *readingRepository) InsertSource(ctx context.Context, src models.ReadingSource, passages []models.NewPassage) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("reading_repo")
	log.Debug("inserting source %s with %d passages", src.Slug, len(passages))

	var sourceID int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO reading_sources (corpus_id, slug, title, lang)
VALUES (?, ?, ?, ?)
`, src.CorpusID, src.Slug, src.Title, src.Lang)
		if err != nil {
			log.Error("failed to insert source %s: %v", src.Slug, err)
			return err
		}
		if sourceID, err = res.LastInsertId(); err != nil {
			return err
		}

		passageStmt, err := tx.PrepareContext(ctx, `
INSERT INTO reading_passages (source_id, position, word_count, text) VALUES (?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer passageStmt.Close()

		tokenStmt, err := tx.PrepareContext(ctx, `
INSERT INTO reading_passage_tokens (passage_id, token, count) VALUES (?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer tokenStmt.Close()

		for _, p := range passages {
			res, err := passageStmt.ExecContext(ctx, sourceID, p.Position, p.WordCount, p.Text)
			if err != nil {
				log.Error("failed to insert passage %d of %s: %v", p.Position, src.Slug, err)
				return err
			}
			passageID, err := res.LastInsertId()
			if err != nil {
				return err
			}
			for token, count := range p.TokenCounts {
				if _, err := tokenStmt.ExecContext(ctx, passageID, token, count); err != nil {
					log.Error("failed to insert token %q: %v", token, err)
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Info("source %s stored: id=%d, passages=%d", src.Slug, sourceID, len(passages))
	return sourceID, nil
}

var sourceColumns = []string{"s.id", "s.corpus_id", "s.slug", "s.title", "s.lang", "COALESCE(c.name, '')", "s.created_at"}

func (r *readingRepository) Sources(ctx context.Context, lang string, corpusIDs []int64) ([]models.ReadingSource, error) {
	query := sqlBuilder.Select(sourceColumns...).
		From("reading_sources s").
		LeftJoin("corpora c ON c.id = s.corpus_id").
		Where(squirrel.Eq{"s.lang": lang}).
		OrderBy("s.id ASC")
	if len(corpusIDs) > 0 {
		query = query.Where(squirrel.Eq{"s.corpus_id": corpusIDs})
	}
	return r.querySources(ctx, query)
}

func (r *readingRepository) querySources(ctx context.Context, b squirrel.SelectBuilder) ([]models.ReadingSource, error) {
	log := logger.FromContext(ctx).WithPrefix("reading_repo")
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query sources: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sources []models.ReadingSource
	for rows.Next() {
		var s models.ReadingSource
		var corpusID sql.NullInt64
		if err := rows.Scan(&s.ID, &corpusID, &s.Slug, &s.Title, &s.Lang, &s.CorpusName, &s.CreatedAt); err != nil {
			log.Error("failed to scan source row: %v", err)
			return nil, err
		}
		s.CorpusID = int64Ptr(corpusID)
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

func (r *readingRepository) Passages(ctx context.Context, lang string) ([]models.Passage, error) {
	log := logger.FromContext(ctx).WithPrefix("reading_repo")
	log.Debug("loading passages for lang=%s", lang)

	rows, err := r.db.QueryContext(ctx, `
SELECT p.id, p.source_id, p.position, p.word_count, p.text
FROM reading_passages p
JOIN reading_sources s ON s.id = p.source_id
WHERE s.lang = ?
ORDER BY p.id
`, lang)
	if err != nil {
		log.Error("failed to query passages: %v", err)
		return nil, err
	}
	var passages []models.Passage
	byID := make(map[int64]int)
	for rows.Next() {
		p := models.Passage{Tokens: make(map[string]struct{})}
		if err := rows.Scan(&p.ID, &p.SourceID, &p.Position, &p.WordCount, &p.Text); err != nil {
			rows.Close()
			log.Error("failed to scan passage row: %v", err)
			return nil, err
		}
		byID[p.ID] = len(passages)
		passages = append(passages, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tokenRows, err := r.db.QueryContext(ctx, `
SELECT t.passage_id, t.token
FROM reading_passage_tokens t
JOIN reading_passages p ON p.id = t.passage_id
JOIN reading_sources s ON s.id = p.source_id
WHERE s.lang = ?
`, lang)
	if err != nil {
		log.Error("failed to query passage tokens: %v", err)
		return nil, err
	}
	defer tokenRows.Close()

	for tokenRows.Next() {
		var passageID int64
		var token string
		if err := tokenRows.Scan(&passageID, &token); err != nil {
			return nil, err
		}
		if i, ok := byID[passageID]; ok {
			passages[i].Tokens[token] = struct{}{}
		}
	}
	log.Debug("loaded %d passages for lang=%s", len(passages), lang)
	return passages, tokenRows.Err()
}

func (r *readingRepository) Languages(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT lang FROM reading_sources`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []string
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, err
		}
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, rows.Err()
}

func (r *readingRepository) BlockedPassages(ctx context.Context, profileID int64) ([]int64, error) {
	return r.queryIDs(ctx, `SELECT passage_id FROM reading_passage_blocks WHERE profile_id = ? ORDER BY passage_id`, profileID)
}

func (r *readingRepository) BlockPassages(ctx context.Context, profileID int64, passageIDs []int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("reading_repo")

	blocked := 0
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, id := range passageIDs {
			res, err := tx.ExecContext(ctx, `
INSERT INTO reading_passage_blocks (profile_id, passage_id)
SELECT ?, id FROM reading_passages WHERE id = ?
ON CONFLICT(profile_id, passage_id) DO NOTHING
`, profileID, id)
			if err != nil {
				log.Error("failed to block passage %d: %v", id, err)
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			blocked += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Debug("blocked %d passages for profile %d", blocked, profileID)
	return blocked, nil
}

func (r *readingRepository) queryIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("reading_repo").Error("failed to query ids: %v", err)
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
	return ids, rows.Err()
}


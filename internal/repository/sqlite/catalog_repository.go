package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository implementation
func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) UpsertWord(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO words (lemma, lang, rank)
VALUES (?, ?, ?)
ON CONFLICT(lemma, lang) DO UPDATE SET rank = COALESCE(excluded.rank, words.rank)
RETURNING id
`, w.Lemma, w.Lang, w.Rank).Scan(&id)
	if err != nil {
		log.Error("failed to upsert word %q: %v", w.Lemma, err)
		return 0, err
	}
	return id, nil
}

func (r *catalogRepository) AddTranslation(ctx context.Context, wordID int64, targetLang, text string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO translations (word_id, target_lang, text)
VALUES (?, ?, ?)
ON CONFLICT(word_id, target_lang, text) DO NOTHING
`, wordID, targetLang, text)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("catalog_repo").Error("failed to add translation for word %d: %v", wordID, err)
	}
	return err
}

func (r *catalogRepository) AddCustomWord(ctx context.Context, profileID, wordID int64, targetLang, translation string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO custom_words (profile_id, word_id, target_lang, translation)
VALUES (?, ?, ?, ?)
ON CONFLICT(profile_id, word_id, target_lang) DO UPDATE SET translation = excluded.translation
`, profileID, wordID, targetLang, translation)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("catalog_repo").Error("failed to add custom word %d: %v", wordID, err)
	}
	return err
}

func (r *catalogRepository) Words(ctx context.Context, ids []int64) (map[int64]models.Word, error) {
	out := make(map[int64]models.Word, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlBuilder.Select("id", "lemma", "lang", "rank").
		From("words").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("catalog_repo").Error("failed to load words: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		out[w.ID] = w
	}
	return out, rows.Err()
}

func (r *catalogRepository) Translations(ctx context.Context, profileID int64, wordIDs []int64, targetLang string) (models.TranslationSet, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("loading translations: profile_id=%d, words=%d, lang=%s", profileID, len(wordIDs), targetLang)

	set := make(models.TranslationSet)
	if len(wordIDs) == 0 {
		return set, nil
	}

	catalog := sqlBuilder.Select("word_id", "text", "'"+models.TranslationCatalog+"'").
		From("translations").
		Where(squirrel.Eq{"word_id": wordIDs, "target_lang": targetLang})
	custom := sqlBuilder.Select("word_id", "translation", "'"+models.TranslationCustom+"'").
		From("custom_words").
		Where(squirrel.Eq{"profile_id": profileID, "word_id": wordIDs, "target_lang": targetLang})

	query, args, err := catalog.Suffix("UNION ALL").SuffixExpr(custom).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to load translations: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		t := models.Translation{TargetLang: targetLang}
		if err := rows.Scan(&t.WordID, &t.Text, &t.Source); err != nil {
			log.Error("failed to scan translation row: %v", err)
			return nil, err
		}
		set[t.WordID] = append(set[t.WordID], t)
	}
	return set, rows.Err()
}

func (r *catalogRepository) CustomWordsToLearn(ctx context.Context, profileID int64, lang, targetLang string, limit int) ([]models.Word, error) {
	query, args, err := sqlBuilder.Select("w.id", "w.lemma", "w.lang", "w.rank").
		From("custom_words c").
		Join("words w ON w.id = c.word_id").
		LeftJoin("word_progress p ON p.word_id = c.word_id AND p.profile_id = c.profile_id").
		Where(squirrel.Eq{"c.profile_id": profileID, "c.target_lang": targetLang, "w.lang": lang}).
		Where("p.word_id IS NULL").
		OrderBy("c.created_at ASC", "c.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryWords(ctx, query, args...)
}

func (r *catalogRepository) CatalogWordsToLearn(ctx context.Context, profileID int64, lang, targetLang string, limit int) ([]models.Word, error) {
	query, args, err := sqlBuilder.Select("w.id", "w.lemma", "w.lang", "w.rank").
		From("words w").
		Where(squirrel.Eq{"w.lang": lang}).
		Where(squirrel.NotEq{"w.rank": nil}).
		Where("EXISTS (SELECT 1 FROM translations t WHERE t.word_id = w.id AND t.target_lang = ?)", targetLang).
		Where("NOT EXISTS (SELECT 1 FROM word_progress p WHERE p.word_id = w.id AND p.profile_id = ?)", profileID).
		OrderBy("w.rank ASC", "w.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryWords(ctx, query, args...)
}

func (r *catalogRepository) queryWords(ctx context.Context, query string, args ...any) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, w)
	}
	log.Debug("found %d words", len(words))
	return words, rows.Err()
}

func scanWord(row interface{ Scan(...any) error }) (models.Word, error) {
	var w models.Word
	var rank sql.NullInt64
	if err := row.Scan(&w.ID, &w.Lemma, &w.Lang, &rank); err != nil {
		return w, err
	}
	w.Rank = intPtr(rank)
	return w, nil
}

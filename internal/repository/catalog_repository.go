package repository

import (
	"context"

	"github.com/vytor/wordflash/internal/models"
)

// CatalogRepository handles words and their translations
type CatalogRepository interface {
	UpsertWord(ctx context.Context, w models.Word) (int64, error)
	AddTranslation(ctx context.Context, wordID int64, targetLang, text string) error
	AddCustomWord(ctx context.Context, profileID, wordID int64, targetLang, translation string) error
	Words(ctx context.Context, ids []int64) (map[int64]models.Word, error)
	// Translations returns the union of catalog translations and the
	// learner's custom ones for the given words.
	Translations(ctx context.Context, profileID int64, wordIDs []int64, targetLang string) (models.TranslationSet, error)
	// CustomWordsToLearn returns the learner's custom words without progress,
	// oldest first.
	CustomWordsToLearn(ctx context.Context, profileID int64, lang, targetLang string, limit int) ([]models.Word, error)
	// CatalogWordsToLearn returns ranked catalog words without progress that
	// have a translation in targetLang, by rank.
	CatalogWordsToLearn(ctx context.Context, profileID int64, lang, targetLang string, limit int) ([]models.Word, error)
}

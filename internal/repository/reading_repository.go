package repository

import (
	"context"

	"github.com/vytor/wordflash/internal/models"
)

// ReadingRepository handles reading sources, passages and learner filters
type ReadingRepository interface {
	UpsertCorpus(ctx context.Context, slug, name string) (int64, error)
	SetCorpusEnabled(ctx context.Context, profileID, corpusID int64, enabled bool) error
	EnabledCorpora(ctx context.Context, profileID int64) ([]int64, error)
	// Corpora lists every corpus with the learner's enabled flag.
	Corpora(ctx context.Context, profileID int64) ([]models.Corpus, error)

	SourceBySlug(ctx context.Context, slug string) (*models.ReadingSource, error)
	DeleteSource(ctx context.Context, id int64) error
	// InsertSource stores a source with its passages and token counts in one
	// transaction and returns the new source id.
	InsertSource(ctx context.Context, src models.ReadingSource, passages []models.NewPassage) (int64, error)
	// Sources lists sources in lang. A non-empty corpusIDs restricts the
	// result to those corpora.
	Sources(ctx context.Context, lang string, corpusIDs []int64) ([]models.ReadingSource, error)
	// Passages loads every passage in lang together with its token set.
	Passages(ctx context.Context, lang string) ([]models.Passage, error)
	Languages(ctx context.Context) ([]string, error)

	BlockedPassages(ctx context.Context, profileID int64) ([]int64, error)
	// BlockPassages returns how many passages were newly blocked.
	BlockPassages(ctx context.Context, profileID int64, passageIDs []int64) (int, error)
}

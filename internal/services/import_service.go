package services

import (
	"context"
	"strings"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/reading"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/textnorm"
)

// ImportService loads reading texts and word catalogs
type ImportService interface {
	ImportText(ctx context.Context, in models.TextImport) (*models.TextImportResult, error)
	// ImportCatalog stores words in lang with translations into targetLang.
	ImportCatalog(ctx context.Context, lang, targetLang string, rows []models.CatalogRow) (*models.CatalogImportResult, error)
}

// IndexRefresher rebuilds the passage index of a language after new
// passages were stored.
type IndexRefresher interface {
	RefreshIndex(ctx context.Context, lang string) error
}

// ImportConfig bounds the size of imported passages.
type ImportConfig struct {
	PassageMinWords int
	PassageMaxWords int
}

type importService struct {
	reading   repository.ReadingRepository
	catalog   repository.CatalogRepository
	refresher IndexRefresher
	cfg       ImportConfig
}

// NewImportService creates a new ImportService. refresher may be nil when no
// index is cached in this process.
func NewImportService(readingRepo repository.ReadingRepository, catalog repository.CatalogRepository, refresher IndexRefresher, cfg ImportConfig) ImportService {
	if cfg.PassageMinWords <= 0 {
		cfg.PassageMinWords = reading.DefaultPassageMinWords
	}
	if cfg.PassageMaxWords < cfg.PassageMinWords {
		cfg.PassageMaxWords = max(reading.DefaultPassageMaxWords, cfg.PassageMinWords)
	}
	return &importService{reading: readingRepo, catalog: catalog, refresher: refresher, cfg: cfg}
}

func (s *importService) ImportText(ctx context.Context, in models.TextImport) (*models.TextImportResult, error) {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Title = strings.TrimSpace(in.Title)
	in.Lang = strings.ToLower(strings.TrimSpace(in.Lang))
	log := logger.FromContext(ctx).WithFields(map[string]any{"slug": in.Slug, "lang": in.Lang})

	if in.Slug == "" {
		return nil, errors.NewValidationError("slug", "cannot be empty")
	}
	if in.Lang == "" {
		return nil, errors.NewValidationError("lang", "cannot be empty")
	}
	if in.Title == "" {
		in.Title = in.Slug
	}

	existing, err := s.reading.SourceBySlug(ctx, in.Slug)
	if err != nil {
		log.Error("failed to look up source: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		if !in.Replace {
			log.Info("source already imported, skipping")
			return &models.TextImportResult{SourceID: existing.ID, Slug: in.Slug, Skipped: true}, nil
		}
		if err := s.reading.DeleteSource(ctx, existing.ID); err != nil {
			log.Error("failed to replace source: %v", err)
			return nil, errors.NewInternalError(err)
		}
		log.Info("replacing existing source id=%d", existing.ID)
	}

	passages := reading.SplitText(in.Text, s.cfg.PassageMinWords, s.cfg.PassageMaxWords)
	if len(passages) == 0 {
		return nil, errors.NewValidationError("text", "contains no words")
	}

	src := models.ReadingSource{Slug: in.Slug, Title: in.Title, Lang: in.Lang}
	if slug := strings.TrimSpace(in.CorpusSlug); slug != "" {
		name := strings.TrimSpace(in.CorpusName)
		if name == "" {
			name = slug
		}
		corpusID, err := s.reading.UpsertCorpus(ctx, slug, name)
		if err != nil {
			log.Error("failed to store corpus %s: %v", slug, err)
			return nil, errors.NewInternalError(err)
		}
		src.CorpusID = &corpusID
	}

	id, err := s.reading.InsertSource(ctx, src, passages)
	if err != nil {
		log.Error("failed to store source: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if s.refresher != nil {
		if err := s.refresher.RefreshIndex(ctx, in.Lang); err != nil {
			// The stored passages are picked up by the next scheduled refresh.
			log.Warn("index refresh after import failed: %v", err)
		}
	}
	log.Info("imported %d passages", len(passages))
	return &models.TextImportResult{SourceID: id, Slug: in.Slug, Passages: len(passages)}, nil
}

func (s *importService) ImportCatalog(ctx context.Context, lang, targetLang string, rows []models.CatalogRow) (*models.CatalogImportResult, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{"lang": lang, "target_lang": targetLang})
	if lang == "" || targetLang == "" {
		return nil, errors.NewValidationError("lang", "source and target languages are required")
	}

	out := &models.CatalogImportResult{}
	for _, row := range rows {
		lemma := textnorm.Normalize(row.Lemma)
		if lemma == "" || len(row.Translations) == 0 {
			out.Skipped++
			continue
		}
		id, err := s.catalog.UpsertWord(ctx, models.Word{Lemma: lemma, Lang: lang, Rank: row.Rank})
		if err != nil {
			log.Error("failed to store word %q: %v", lemma, err)
			return nil, errors.NewInternalError(err)
		}
		out.Words++
		for _, t := range row.Translations {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if err := s.catalog.AddTranslation(ctx, id, targetLang, t); err != nil {
				log.Error("failed to store translation of %q: %v", lemma, err)
				return nil, errors.NewInternalError(err)
			}
			out.Translations++
		}
	}
	log.Info("catalog imported: %d words, %d translations, %d skipped", out.Words, out.Translations, out.Skipped)
	return out, nil
}

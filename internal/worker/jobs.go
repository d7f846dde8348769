package worker

import (
	"context"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
)

// ImportTextJob splits a reading text into passages and stores them.
type ImportTextJob struct {
	Importer TextImporter
	Input    models.TextImport
}

func (j *ImportTextJob) Name() string { return "import_text" }

func (j *ImportTextJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"slug": j.Input.Slug,
		"lang": j.Input.Lang,
	})
	log.Info("starting background text import")

	res, err := j.Importer.ImportText(ctx, j.Input)
	if err != nil {
		log.Error("text import failed: %v", err)
		return err
	}
	if res.Skipped {
		log.Info("source already present, nothing imported")
		return nil
	}
	log.Info("imported source id=%d with %d passages", res.SourceID, res.Passages)
	return nil
}

// RefreshIndexJob rebuilds the passage index of one language.
type RefreshIndexJob struct {
	Refresher IndexRefresher
	Lang      string
}

func (j *RefreshIndexJob) Name() string { return "refresh_index" }

func (j *RefreshIndexJob) Run(ctx context.Context) error {
	return j.Refresher.RefreshIndex(ctx, j.Lang)
}

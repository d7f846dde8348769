package worker

import (
	"context"

	"github.com/vytor/wordflash/internal/models"
)

// TextImporter stores a reading text. It is satisfied by the import service
// without this package importing services.
type TextImporter interface {
	ImportText(ctx context.Context, in models.TextImport) (*models.TextImportResult, error)
}

// IndexRefresher rebuilds the cached passage index of a language.
type IndexRefresher interface {
	RefreshIndex(ctx context.Context, lang string) error
}

package jobs

import "github.com/vytor/wordflash/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueTextImport(in models.TextImport) error
	EnqueueIndexRefresh(lang string) error
}

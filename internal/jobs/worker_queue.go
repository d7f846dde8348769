package jobs

import (
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool      *worker.Pool
	importer  worker.TextImporter
	refresher worker.IndexRefresher
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, importer worker.TextImporter, refresher worker.IndexRefresher) JobQueue {
	return &WorkerQueue{
		pool:      pool,
		importer:  importer,
		refresher: refresher,
	}
}

func (q *WorkerQueue) EnqueueTextImport(in models.TextImport) error {
	return q.pool.Submit(&worker.ImportTextJob{
		Importer: q.importer,
		Input:    in,
	})
}

func (q *WorkerQueue) EnqueueIndexRefresh(lang string) error {
	return q.pool.Submit(&worker.RefreshIndexJob{
		Refresher: q.refresher,
		Lang:      lang,
	})
}

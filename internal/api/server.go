package api

import (
	"context"

	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	ProfileService services.ProfileService
	StudyService   services.StudyService
	ReadingService services.ReadingService
	StatsService   services.StatsService
	JobQueue       jobs.JobQueue
	DB             Pinger
	// ImportLimiter throttles the import endpoints per client. Nil disables it.
	ImportLimiter *RateLimiter
}

package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/wordflash/internal/logger"
)

// IndexRebuilder rebuilds every cached passage index.
type IndexRebuilder interface {
	RefreshAll(ctx context.Context) error
}

// IndexScheduler periodically rebuilds the passage indexes so passages
// imported by other processes become visible.
type IndexScheduler struct {
	scheduler *gocron.Scheduler
	rebuilder IndexRebuilder
	interval  time.Duration
	log       *logger.Logger
}

// NewIndexScheduler creates a scheduler running every interval.
func NewIndexScheduler(rebuilder IndexRebuilder, interval time.Duration) *IndexScheduler {
	return &IndexScheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		rebuilder: rebuilder,
		interval:  interval,
		log:       logger.Default().WithPrefix("index-scheduler"),
	}
}

// Start schedules the refresh and returns immediately. A non-positive
// interval disables it.
func (s *IndexScheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.log.Info("periodic index refresh disabled")
		return nil
	}
	_, err := s.scheduler.Every(s.interval).
		SingletonMode().
		WaitForSchedule().
		Do(s.refresh, ctx)
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Info("refreshing passage indexes every %s", s.interval)
	return nil
}

// Stop terminates scheduled refreshes.
func (s *IndexScheduler) Stop() {
	s.scheduler.Stop()
}

func (s *IndexScheduler) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := s.rebuilder.RefreshAll(logger.NewContext(ctx, s.log)); err != nil {
		s.log.Error("index refresh failed: %v", err)
		return
	}
	s.log.Debug("index refresh finished in %v", time.Since(start))
}

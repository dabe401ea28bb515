// Package scheduler runs the periodic cache refresh in the background.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher re-fetches every cached station. *repository.CachedSource
// satisfies it.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Scheduler periodically refreshes the online measurement cache so repeat
// lookups stay reasonably fresh without the menu having to ask for it.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a scheduler refreshing through r every interval.
func New(r Refresher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: r,
		interval:  interval,
		timeout:   time.Minute,
		logger:    logger,
	}
}

// Start schedules the refresh job and starts the scheduler in the
// background.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		if err := s.refresher.RefreshAll(ctx); err != nil {
			s.logger.Error("background refresh failed", "error", err)
			return
		}
		s.logger.Info("background refresh completed", "took", time.Since(start))
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("refresh scheduler started", "interval", s.interval)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

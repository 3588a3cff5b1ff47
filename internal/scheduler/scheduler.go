// Package scheduler runs harvests on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/goleads/internal/logger"
)

// JobFunc is a job the scheduler fires.
type JobFunc func(ctx context.Context)

// Scheduler fires registered jobs on cron expressions. Each entry has its
// own overlap guard: a tick that lands while that entry's previous run is
// still in flight is skipped, without blocking other entries.
type Scheduler struct {
	cron   *cron.Cron
	logger logger.Logger
	jitter time.Duration
}

// New creates a scheduler. Each run is delayed by a random amount up to
// jitter before it starts; zero disables the delay.
func New(jitter time.Duration, log logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: log,
		jitter: jitter,
	}
}

// Add registers a named job under a cron expression.
func (s *Scheduler) Add(ctx context.Context, name, spec string, job JobFunc) error {
	var running sync.Mutex

	_, err := s.cron.AddFunc(spec, func() {
		if !running.TryLock() {
			s.logger.Warn("previous run still in flight, skipping tick",
				logger.String("job", name),
			)
			return
		}
		defer running.Unlock()

		if !s.waitJitter(ctx) {
			return
		}

		s.logger.Info("scheduled run starting",
			logger.String("job", name),
			logger.String("spec", spec),
		)
		job(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q for %s: %w", spec, name, err)
	}
	return nil
}

// waitJitter sleeps a random fraction of the configured jitter. It returns
// false when the context is cancelled during the wait.
func (s *Scheduler) waitJitter(ctx context.Context) bool {
	if s.jitter <= 0 {
		return true
	}

	delay := rand.N(s.jitter)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Start begins firing in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
}

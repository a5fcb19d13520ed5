// Package scheduler runs the periodic reservation lifecycle jobs.
package scheduler

import (
	"context"
	"log"
	"time"
)

// Sweeper is the subset of the lifecycle service the scheduler drives.
type Sweeper interface {
	ProcessExpired(ctx context.Context) (int, error)
	SendReminders(ctx context.Context) (int, error)
}

type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
}

func New(sweeper Sweeper, interval time.Duration) *Scheduler {
	return &Scheduler{sweeper: sweeper, interval: interval}
}

// Start runs one pass immediately and then ticks at the configured
// interval until the context is cancelled.  Job errors are logged and
// the loop keeps running.
func (s *Scheduler) Start(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.sweeper.ProcessExpired(ctx); err != nil {
		log.Printf("scheduler: expiration sweep failed: %v", err)
	}
	if _, err := s.sweeper.SendReminders(ctx); err != nil {
		log.Printf("scheduler: reminder pass failed: %v", err)
	}
}

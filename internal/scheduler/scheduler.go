package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

const defaultInterval = 5 * time.Minute

// Pruner drops idle sessions.
type Pruner interface {
	Prune() int
	Len() int
}

// Scheduler periodically removes idle dashboard sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
}

// New creates a new Scheduler.
func New(pruner Pruner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pruner:    pruner,
		interval:  interval,
	}
}

// Start schedules the prune job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.runPrune)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) runPrune() {
	removed := s.pruner.Prune()
	if removed > 0 {
		slog.Info("pruned idle sessions", "removed", removed, "remaining", s.pruner.Len())
	}
}

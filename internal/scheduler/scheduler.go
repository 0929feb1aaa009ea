package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"weather-dashboard/pkg/logger"
)

// Sweeper removes sessions idle for longer than maxIdle.
type Sweeper interface {
	Sweep(maxIdle time.Duration) int
	Len() int
}

// Scheduler periodically evicts idle sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
	maxIdle   time.Duration
	l         *logger.Logger
}

func New(sweeper Sweeper, interval, maxIdle time.Duration, l *logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		interval:  interval,
		maxIdle:   maxIdle,
		l:         l,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = time.Minute
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(func() {
		removed := s.sweeper.Sweep(s.maxIdle)
		s.l.Debug("session sweep completed", map[string]any{
			"removed": removed,
			"active":  s.sweeper.Len(),
		})
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()

	s.l.Info("session sweeper started", map[string]any{
		"interval": interval.String(),
		"maxIdle":  s.maxIdle.String(),
	})

	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

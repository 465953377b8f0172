package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Task is a unit of periodic background work.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	task     Task
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

const defaultTimeout = time.Minute

// NewScheduler builds a scheduler for task. Each run is bounded by timeout;
// a non-positive timeout falls back to one minute.
func NewScheduler(task Task, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Scheduler{
		task:     task,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("task", task.Name()),
	}
}

// Start runs the task once immediately and then on every tick until ctx is
// cancelled. Task errors are logged and do not stop the loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "timeout", s.timeout)

	s.runTask(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runTask(ctx)
		}
	}
}

func (s *Scheduler) runTask(ctx context.Context) {
	taskCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.task.Run(taskCtx); err != nil {
		s.logger.Error("task failed", "error", err)
	}
}

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTask struct {
	runs atomic.Int32
	err  error
}

func (t *countingTask) Name() string { return "counting" }

func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	return t.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestScheduler_RunsImmediatelyAndOnTicks(t *testing.T) {
	task := &countingTask{}
	sched := NewScheduler(task, 10*time.Millisecond, time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Start(ctx) }()

	require.Eventually(t, func() bool { return task.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_TaskErrorDoesNotStopLoop(t *testing.T) {
	task := &countingTask{err: errors.New("boom")}
	sched := NewScheduler(task, 10*time.Millisecond, time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sched.Start(ctx) }()

	require.Eventually(t, func() bool { return task.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

type deadlineTask struct {
	deadlines chan time.Duration
}

func (t *deadlineTask) Name() string { return "deadline" }

func (t *deadlineTask) Run(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		return errors.New("no deadline")
	}
	select {
	case t.deadlines <- time.Until(deadline):
	default:
	}
	return nil
}

func TestScheduler_RunUsesConfiguredTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{name: "configured", timeout: 250 * time.Millisecond, want: 250 * time.Millisecond},
		{name: "zero falls back", timeout: 0, want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &deadlineTask{deadlines: make(chan time.Duration, 1)}
			sched := NewScheduler(task, time.Hour, tt.timeout, testLogger())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() { _ = sched.Start(ctx) }()

			select {
			case remaining := <-task.deadlines:
				assert.LessOrEqual(t, remaining, tt.want)
				assert.Greater(t, remaining, tt.want-100*time.Millisecond)
			case <-time.After(time.Second):
				t.Fatal("task did not run")
			}
		})
	}
}

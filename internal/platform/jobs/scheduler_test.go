package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler() *Scheduler {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second)
}

func TestAdd_RejectsDuplicatesAndBadSpecs(t *testing.T) {
	s := newScheduler()
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.Add("stats", "@every 1m", noop))
	assert.ErrorContains(t, s.Add("stats", "@every 1m", noop), "already registered")
	assert.ErrorContains(t, s.Add("broken", "every tuesday-ish", noop), "schedule")
}

func TestRunNow_BoundsJobWithTimeout(t *testing.T) {
	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)), 10*time.Millisecond)
	var sawDeadline atomic.Bool

	s.RunNow("slow", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		<-ctx.Done()
		return ctx.Err()
	})

	assert.True(t, sawDeadline.Load())
}

func TestRun_ExecutesScheduledJobsUntilCancelled(t *testing.T) {
	s := newScheduler()
	var runs atomic.Int32
	require.NoError(t, s.Add("tick", "@every 1s", func(context.Context) error {
		runs.Add(1)
		return errors.New("logged, not fatal")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

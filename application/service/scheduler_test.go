package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("not a cron", RunnerFunc(func(context.Context) error { return nil }), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	var runs atomic.Int32
	s, err := NewScheduler("@every 1s", RunnerFunc(func(context.Context) error {
		runs.Add(1)
		return nil
	}), nil)
	require.NoError(t, err)

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	var active, maxActive atomic.Int32
	release := make(chan struct{})
	s, err := NewScheduler("@every 1s", RunnerFunc(func(ctx context.Context) error {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}), nil)
	require.NoError(t, err)

	s.Start(context.Background())
	require.Eventually(t, func() bool { return active.Load() == 1 }, 5*time.Second, 5*time.Millisecond)
	time.Sleep(1500 * time.Millisecond)
	close(release)
	s.Stop()

	assert.Equal(t, int32(1), maxActive.Load())
}

func TestScheduler_RunNow(t *testing.T) {
	called := false
	s, err := NewScheduler("0 3 * * *", RunnerFunc(func(context.Context) error {
		called = true
		return nil
	}), nil)
	require.NoError(t, err)

	require.NoError(t, s.RunNow(context.Background()))
	assert.True(t, called)
}

package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnceExecutesAllJobs(t *testing.T) {
	s := NewScheduler()

	var first, second int
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first++
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second++
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, 2, first)
	// A failing job is logged, never fatal to the pass.
	assert.Equal(t, 2, second)
}

func TestScheduler_StartRunsJobImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()

	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := NewScheduler()

	ctxSeen := make(chan context.Context, 1)
	s.AddJob("observe", time.Hour, func(ctx context.Context) error {
		select {
		case ctxSeen <- ctx:
		default:
		}
		return nil
	})

	s.Start()
	ctx := <-ctxSeen
	s.Stop()

	require.Error(t, ctx.Err())
}

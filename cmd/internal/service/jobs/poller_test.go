package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_RunsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller("test", 5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	require.NoError(t, p.Start(context.Background()))
	assert.True(t, p.Running())
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	p.Stop()
	assert.False(t, p.Running())

	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestPoller_KeepsTickingAfterFailures(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller("test", 5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("upstream down")
	}, nil)

	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestPoller_SlowTickDoesNotBlockLoop(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	p := NewPoller("test", 5*time.Millisecond, func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			select {
			case <-release:
			case <-ctx.Done():
			}
		}
		return nil
	}, nil)

	require.NoError(t, p.Start(context.Background()))
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	close(release)
	p.Stop()
}

func TestPoller_StopCancelsInFlightTick(t *testing.T) {
	started := make(chan struct{}, 1)
	p := NewPoller("test", 5*time.Millisecond, func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		return ctx.Err()
	}, nil)

	require.NoError(t, p.Start(context.Background()))
	<-started

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestPoller_StartTwice(t *testing.T) {
	p := NewPoller("test", time.Hour, func(ctx context.Context) error { return nil }, nil)

	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	assert.ErrorIs(t, p.Start(context.Background()), ErrPollerRunning)
}

func TestPoller_RestartAfterStop(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller("test", 5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	require.NoError(t, p.Start(context.Background()))
	p.Stop()
	before := calls.Load()

	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()
	assert.Eventually(t, func() bool { return calls.Load() > before }, time.Second, time.Millisecond)
}

func TestPoller_ParentContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller("test", time.Hour, func(ctx context.Context) error { return nil }, nil)

	require.NoError(t, p.Start(ctx))
	cancel()
	assert.Eventually(t, func() bool { return !p.Running() }, time.Second, time.Millisecond)

	require.NoError(t, p.Start(context.Background()))
	p.Stop()
}

func TestPoller_InvalidInterval(t *testing.T) {
	p := NewPoller("test", 0, func(ctx context.Context) error { return nil }, nil)
	assert.ErrorIs(t, p.Start(context.Background()), ErrInvalidInterval)
	assert.False(t, p.Running())
}

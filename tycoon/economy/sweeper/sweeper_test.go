package sweeper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

type fakeTarget struct {
	calls atomic.Int32
	fail  bool
}

func (f *fakeTarget) SweepExpiredModifiers(context.Context) (*gold.SweepResult, error) {
	n := f.calls.Add(1)
	if f.fail {
		return nil, errors.New("database unavailable")
	}
	return &gold.SweepResult{Deactivated: int64(n)}, nil
}

func TestRunSweepsUntilCancelled(t *testing.T) {
	target := &fakeTarget{}
	s := New(target, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, runs := s.Last()
		return runs >= 3
	}, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	last, runs := s.Last()
	require.NotNil(t, last)
	assert.Equal(t, int64(runs), last.Deactivated)
}

func TestRunSurvivesFailures(t *testing.T) {
	target := &fakeTarget{fail: true}
	s := New(target, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return target.calls.Load() >= 2
	}, time.Second, time.Millisecond)
	cancel()
	<-done

	last, runs := s.Last()
	assert.Nil(t, last)
	assert.Zero(t, runs)
}

func TestNewDefaultsInterval(t *testing.T) {
	s := New(&fakeTarget{}, 0)
	assert.Positive(t, s.interval)
}

package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSweeper struct {
	expired   atomic.Int32
	reminders atomic.Int32
}

func (f *fakeSweeper) ProcessExpired(ctx context.Context) (int, error) {
	f.expired.Add(1)
	return 0, nil
}

func (f *fakeSweeper) SendReminders(ctx context.Context) (int, error) {
	f.reminders.Add(1)
	return 0, nil
}

func TestSchedulerRunsImmediatelyAndTicks(t *testing.T) {
	f := &fakeSweeper{}
	s := New(f, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	// One immediate pass plus a few ticks before the deadline.
	assert.GreaterOrEqual(t, f.expired.Load(), int32(2))
	assert.GreaterOrEqual(t, f.reminders.Load(), int32(2))
	assert.Equal(t, f.expired.Load(), f.reminders.Load())
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	f := &fakeSweeper{}
	s := New(f, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
	assert.Equal(t, int32(1), f.expired.Load())
}

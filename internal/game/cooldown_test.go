package game

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickRecorder struct {
	mu    sync.Mutex
	ticks []int
}

func (r *tickRecorder) record(remaining int) {
	r.mu.Lock()
	r.ticks = append(r.ticks, remaining)
	r.mu.Unlock()
}

func (r *tickRecorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ticks...)
}

func TestCountdownRunsToCompletion(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cd := NewCountdown(clock)
	rec := &tickRecorder{}

	done := make(chan struct{})
	go func() {
		cd.Run(3, rec.record)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		clock.BlockUntil(1)
		clock.Advance(time.Second)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not complete")
	}
	assert.Equal(t, []int{3, 2, 1}, rec.snapshot())
}

func TestCountdownAbortStopsEarly(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cd := NewCountdown(clock)
	rec := &tickRecorder{}

	done := make(chan struct{})
	go func() {
		cd.Run(10, rec.record)
		close(done)
	}()

	clock.BlockUntil(1)
	cd.Abort()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("abort did not stop the countdown")
	}
	require.Equal(t, []int{10}, rec.snapshot())

	// Aborting again, after completion, is a no-op.
	cd.Abort()
	cd.Abort()
}

func TestCountdownAbortWithNothingRunning(t *testing.T) {
	cd := NewCountdown(clockwork.NewFakeClock())
	assert.NotPanics(t, func() {
		cd.Abort()
		cd.Abort()
	})
}

func TestCountdownNewRunSupersedesPrior(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cd := NewCountdown(clock)

	first := make(chan struct{})
	go func() {
		cd.Run(10, nil)
		close(first)
	}()
	clock.BlockUntil(1)

	second := make(chan struct{})
	go func() {
		cd.Run(1, nil)
		close(second)
	}()

	// Starting the second run must release the first immediately.
	select {
	case <-first:
	case <-time.After(2 * time.Second):
		t.Fatal("first countdown was not invalidated")
	}

	// The first run's unexpired timer still counts as a clock waiter.
	clock.BlockUntil(2)
	clock.Advance(time.Second)
	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("second countdown did not complete")
	}
}

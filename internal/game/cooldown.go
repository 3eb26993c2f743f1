package game

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Countdown is the interruptible pacing primitive for answer windows and the
// pre-round cooldown. At most one run is active per instance; starting a new
// run invalidates any prior one so a stale completion can never fire twice.
type Countdown struct {
	clock clockwork.Clock

	mu     sync.Mutex
	cancel chan struct{}
}

func NewCountdown(clock clockwork.Clock) *Countdown {
	return &Countdown{clock: clock}
}

// Run blocks for the given number of seconds, invoking onTick with the
// remaining count at the top of every second. It returns early when Abort is
// called or when a newer Run supersedes this one.
func (c *Countdown) Run(seconds int, onTick func(remaining int)) {
	c.mu.Lock()
	if c.cancel != nil {
		close(c.cancel)
	}
	cancel := make(chan struct{})
	c.cancel = cancel
	c.mu.Unlock()

	for remaining := seconds; remaining > 0; remaining-- {
		if onTick != nil {
			onTick(remaining)
		}
		select {
		case <-c.clock.After(time.Second):
		case <-cancel:
			return
		}
	}

	c.mu.Lock()
	if c.cancel == cancel {
		c.cancel = nil
	}
	c.mu.Unlock()
}

// Abort wakes the active run, if any. Aborting with nothing running, or a
// run that already completed, is a no-op.
func (c *Countdown) Abort() {
	c.mu.Lock()
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
	c.mu.Unlock()
}

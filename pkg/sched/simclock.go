package sched

import (
	"context"
	"sync"
	"time"
)

// SimClock is a virtual Clock. Halting with an armed alarm jumps time straight
// to the alarm, so a simulated hour takes as long as the work done in it.
// It blocks only when no alarm is armed and no event is pending.
type SimClock struct {
	mu    sync.Mutex
	now   time.Duration
	alarm time.Duration
	armed bool
	event bool

	wake chan struct{}
}

var _ Clock = (*SimClock)(nil)

// NewSimClock returns a SimClock starting at zero.
func NewSimClock() *SimClock {
	return &SimClock{wake: make(chan struct{}, 1)}
}

// Now returns the virtual time.
func (c *SimClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// SetAlarm arms the alarm for at.
func (c *SimClock) SetAlarm(at time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if at <= c.now {
		return false
	}
	c.alarm = at
	c.armed = true
	return true
}

// WaitForEvent consumes a pending event, or fires the armed alarm by advancing
// virtual time to it, or blocks until SendEvent or ctx is done.
func (c *SimClock) WaitForEvent(ctx context.Context) error {
	c.mu.Lock()
	if c.event {
		c.clearEventLocked()
		c.mu.Unlock()
		return nil
	}
	if c.armed {
		c.armed = false
		if c.alarm > c.now {
			c.now = c.alarm
		}
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	select {
	case <-c.wake:
		c.mu.Lock()
		c.event = false
		c.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendEvent marks an event pending.
func (c *SimClock) SendEvent() {
	c.mu.Lock()
	c.event = true
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Advance moves virtual time forward by d. An armed alarm that falls inside
// the step is fired.
func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	fired := c.armed && c.alarm <= c.now
	if fired {
		c.armed = false
		c.event = true
	}
	c.mu.Unlock()

	if fired {
		select {
		case c.wake <- struct{}{}:
		default:
		}
	}
}

// Armed returns the armed alarm, if any.
func (c *SimClock) Armed() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alarm, c.armed
}

func (c *SimClock) clearEventLocked() {
	c.event = false
	select {
	case <-c.wake:
	default:
	}
}

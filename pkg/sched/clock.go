package sched

import (
	"context"
	"sync"
	"time"
)

// Clock is the monotonic time base plus the single wake-up alarm of the core.
type Clock interface {
	// Now returns the time elapsed since the clock started.
	Now() time.Duration
	// SetAlarm arms the alarm for at, replacing any armed alarm. It returns
	// false without arming anything if at has already passed.
	SetAlarm(at time.Duration) bool
	// WaitForEvent halts until the alarm fires or SendEvent is called. An event
	// sent while nobody waits is remembered, so the next call returns at once.
	WaitForEvent(ctx context.Context) error
	// SendEvent wakes WaitForEvent. It is safe to call from any goroutine.
	SendEvent()
}

// RealClock is a Clock backed by the runtime timer.
type RealClock struct {
	start time.Time
	event chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

var _ Clock = (*RealClock)(nil)

// NewRealClock returns a RealClock starting at zero.
func NewRealClock() *RealClock {
	return &RealClock{
		start: time.Now(),
		event: make(chan struct{}, 1),
	}
}

// Now returns the wall time elapsed since NewRealClock.
func (c *RealClock) Now() time.Duration {
	return time.Since(c.start)
}

// SetAlarm arms a one-shot timer that raises the event at at.
func (c *RealClock) SetAlarm(at time.Duration) bool {
	d := at - c.Now()
	if d <= 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(d, c.SendEvent)
	return true
}

// WaitForEvent blocks until an event is pending or ctx is done.
func (c *RealClock) WaitForEvent(ctx context.Context) error {
	select {
	case <-c.event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendEvent marks an event pending.
func (c *RealClock) SendEvent() {
	select {
	case c.event <- struct{}{}:
	default:
	}
}

// Stop releases the armed timer, if any.
func (c *RealClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

package sched

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Task is a cooperatively scheduled goroutine. Its methods may only be called
// from the task itself.
type Task struct {
	s      *Scheduler
	name   string
	fn     func(t *Task)
	resume chan struct{}

	// Owned by the scheduler goroutine, published through the baton.
	started bool
	done    bool

	// Guarded by s.mu.
	ready       bool
	deadline    time.Duration
	hasDeadline bool
}

// Name returns the registered task name.
func (t *Task) Name() string { return t.name }

// Now returns the scheduler clock time.
func (t *Task) Now() time.Duration { return t.s.clock.Now() }

// Sleep suspends the task for d.
func (t *Task) Sleep(d time.Duration) {
	t.SleepUntil(t.Now() + d)
}

// SleepUntil suspends the task until the clock reaches at.
func (t *Task) SleepUntil(at time.Duration) {
	Await[struct{}](t, &Timer{at: at})
}

// After returns a timer firing d from now, for use with Select.
func (t *Task) After(d time.Duration) *Timer {
	return &Timer{at: t.Now() + d}
}

// Yield gives every other runnable task a turn before continuing.
func (t *Task) Yield() {
	t.wake()
	t.park()
}

// wake marks the task runnable and raises the clock event.
func (t *Task) wake() {
	t.s.mu.Lock()
	t.ready = true
	t.s.mu.Unlock()
	t.s.clock.SendEvent()
}

// park hands the baton back and blocks until the next turn.
func (t *Task) park() {
	select {
	case t.s.yield <- struct{}{}:
	case <-t.s.closed:
		runtime.Goexit()
	}
	select {
	case <-t.resume:
	case <-t.s.closed:
		runtime.Goexit()
	}
}

// main runs the task body on its first turn.
func (t *Task) main() {
	defer func() {
		t.done = true
		select {
		case t.s.yield <- struct{}{}:
		case <-t.s.closed:
		}
	}()

	t.fn(t)
	t.s.logger.Debug("Task finished", zap.String("task", t.name))
}

func (t *Task) setDeadline(at time.Duration) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if !t.hasDeadline || at < t.deadline {
		t.deadline = at
		t.hasDeadline = true
	}
}

func (t *Task) clearDeadline() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.hasDeadline = false
}

// Package sched is a cooperative run-to-completion scheduler with tickless sleep.
//
// Tasks are goroutines, but only one of them runs at a time: the scheduler
// hands a baton to each runnable task in registration order and waits for it
// to park again at a wait. Everything a task does between two waits is
// therefore atomic with respect to every other task. When no task is runnable
// the scheduler arms one alarm for the nearest deadline and halts on the Clock
// until the alarm or an interrupt wakes it.
package sched

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs a fixed set of tasks.
type Scheduler struct {
	clock  Clock
	logger *zap.Logger

	// mu guards the wake-up state of every task: ready, deadline, hasDeadline.
	mu    sync.Mutex
	tasks []*Task

	yield     chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
	started   bool
}

// New creates a scheduler on clock.
func New(clock Clock, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		clock:  clock,
		logger: logger.Named("sched"),
		yield:  make(chan struct{}),
		closed: make(chan struct{}),
	}
}

// Spawn registers a task. Tasks must be registered before the first Tick;
// they run in registration order and start on their first turn.
func (s *Scheduler) Spawn(name string, fn func(t *Task)) *Task {
	if s.started {
		panic("sched: Spawn after start")
	}
	t := &Task{
		s:      s,
		name:   name,
		fn:     fn,
		resume: make(chan struct{}),
		ready:  true,
	}
	s.tasks = append(s.tasks, t)
	s.logger.Debug("Task registered", zap.String("task", name))
	return t
}

// Now returns the clock time.
func (s *Scheduler) Now() time.Duration {
	return s.clock.Now()
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Tick runs one round-robin pass over all tasks, giving a turn to each task
// that is woken or whose deadline has passed. It reports whether any task is
// runnable again after the pass.
func (s *Scheduler) Tick() bool {
	select {
	case <-s.closed:
		return false
	default:
	}
	s.started = true

	for _, t := range s.tasks {
		if t.done {
			continue
		}
		if !s.take(t) {
			continue
		}
		s.turn(t)
	}

	return s.runnable()
}

// take consumes the wake-up of t and reports whether t should get a turn.
func (s *Scheduler) take(t *Task) bool {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if t.hasDeadline && now >= t.deadline {
		t.ready = true
	}
	run := t.ready
	t.ready = false
	return run
}

// turn passes the baton to t and waits for it to park or finish.
func (s *Scheduler) turn(t *Task) {
	if !t.started {
		t.started = true
		go t.main()
	} else {
		t.resume <- struct{}{}
	}
	<-s.yield
}

func (s *Scheduler) runnable() bool {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.done {
			continue
		}
		if t.ready || (t.hasDeadline && now >= t.deadline) {
			return true
		}
	}
	return false
}

// nextDeadline returns the nearest deadline across all parked tasks.
func (s *Scheduler) nextDeadline() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		at    time.Duration
		found bool
	)
	for _, t := range s.tasks {
		if t.done || !t.hasDeadline {
			continue
		}
		if !found || t.deadline < at {
			at = t.deadline
			found = true
		}
	}
	return at, found
}

// Run schedules tasks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Tick() {
			continue
		}
		if at, ok := s.nextDeadline(); ok && !s.clock.SetAlarm(at) {
			// The deadline passed while arming, run it now.
			continue
		}
		if err := s.clock.WaitForEvent(ctx); err != nil {
			return err
		}
	}
}

// RunFor schedules tasks until the clock has advanced by d or ctx is done.
// A pass is always made at the end time, so work due exactly then runs.
func (s *Scheduler) RunFor(ctx context.Context, d time.Duration) error {
	until := s.clock.Now() + d
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		remaining := s.Tick()
		if s.clock.Now() >= until {
			return nil
		}
		if remaining {
			continue
		}
		at, ok := s.nextDeadline()
		if !ok || at > until {
			at = until
		}
		if !s.clock.SetAlarm(at) {
			continue
		}
		if err := s.clock.WaitForEvent(ctx); err != nil {
			return err
		}
	}
}

// Close releases the goroutines of all parked tasks. The scheduler must not
// be running.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
}

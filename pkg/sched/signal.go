package sched

import (
	"sync"
	"time"
)

// Signal is a single-slot mailbox. A Send overwrites any value that has not
// been taken yet, and each value is taken at most once.
//
// Send may be called from any goroutine, including interrupt handlers.
type Signal[T any] struct {
	mu      sync.Mutex
	val     T
	has     bool
	waiters []*Task
}

var _ Source[int] = (*Signal[int])(nil)

// NewSignal returns an empty signal.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Send stores v and wakes the waiting tasks.
func (s *Signal[T]) Send(v T) {
	s.mu.Lock()
	s.val = v
	s.has = true
	waiters := append([]*Task(nil), s.waiters...)
	s.mu.Unlock()

	for _, t := range waiters {
		t.wake()
	}
}

// TryTake takes the pending value, if any.
func (s *Signal[T]) TryTake() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if !s.has {
		return zero, false
	}
	v := s.val
	s.val = zero
	s.has = false
	return v, true
}

// Pending reports whether a value is waiting to be taken.
func (s *Signal[T]) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.has
}

// Reset drops the pending value.
func (s *Signal[T]) Reset() {
	s.TryTake()
}

// Wait suspends t until a value is available and takes it.
func (s *Signal[T]) Wait(t *Task) T {
	return Await[T](t, s)
}

// WaitTimeout is Wait bounded by d. It reports false on timeout.
func (s *Signal[T]) WaitTimeout(t *Task, d time.Duration) (T, bool) {
	r := Select[T, struct{}](t, s, t.After(d))
	return r.First, r.IsFirst
}

func (s *Signal[T]) tryTake(*Task) (T, bool) { return s.TryTake() }

func (s *Signal[T]) register(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waiters = append(s.waiters, t)
}

func (s *Signal[T]) unregister(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.waiters {
		if w == t {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}
}

// Broadcast delivers every value to all subscribed signals.
type Broadcast[T any] struct {
	mu   sync.Mutex
	subs []*Signal[T]
}

// Subscribe returns a new signal receiving every subsequent Send.
func (b *Broadcast[T]) Subscribe() *Signal[T] {
	s := NewSignal[T]()
	b.mu.Lock()
	b.subs = append(b.subs, s)
	b.mu.Unlock()
	return s
}

// Send stores v in every subscriber.
func (b *Broadcast[T]) Send(v T) {
	b.mu.Lock()
	subs := append([]*Signal[T](nil), b.subs...)
	b.mu.Unlock()

	for _, s := range subs {
		s.Send(v)
	}
}

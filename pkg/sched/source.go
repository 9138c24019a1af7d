package sched

import "time"

// Source is something a task can wait on: a Signal or a Timer.
type Source[T any] interface {
	// tryTake consumes a resolved value without blocking.
	tryTake(t *Task) (T, bool)
	// register asks the source to wake t when it may have resolved.
	register(t *Task)
	unregister(t *Task)
}

// Await suspends t until src resolves and returns its value.
//
// The task registers before polling, so a value delivered from an interrupt
// between the poll and the park still wakes it. Spurious wake-ups only cost
// another poll.
func Await[T any](t *Task, src Source[T]) T {
	src.register(t)
	defer src.unregister(t)

	for {
		if v, ok := src.tryTake(t); ok {
			return v
		}
		t.park()
	}
}

// Either is the result of Select. Exactly one side is set, as told by IsFirst.
type Either[A, B any] struct {
	First   A
	Second  B
	IsFirst bool
}

// Select suspends t until a or b resolves and returns whichever did. When both
// are resolved, a wins. The losing wait is abandoned without consuming anything.
func Select[A, B any](t *Task, a Source[A], b Source[B]) Either[A, B] {
	a.register(t)
	defer a.unregister(t)
	b.register(t)
	defer b.unregister(t)

	for {
		if v, ok := a.tryTake(t); ok {
			return Either[A, B]{First: v, IsFirst: true}
		}
		if v, ok := b.tryTake(t); ok {
			return Either[A, B]{Second: v}
		}
		t.park()
	}
}

// Timer is a deadline on the scheduler clock.
type Timer struct {
	at time.Duration
}

var _ Source[struct{}] = (*Timer)(nil)

// Deadline returns the clock time the timer fires at.
func (tm *Timer) Deadline() time.Duration { return tm.at }

// Wait suspends t until the timer fires.
func (tm *Timer) Wait(t *Task) {
	Await[struct{}](t, tm)
}

func (tm *Timer) tryTake(t *Task) (struct{}, bool) {
	return struct{}{}, t.Now() >= tm.at
}

func (tm *Timer) register(t *Task) { t.setDeadline(tm.at) }

func (tm *Timer) unregister(t *Task) { t.clearDeadline() }

package sched

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T) (*Scheduler, *SimClock) {
	t.Helper()
	clock := NewSimClock()
	s := New(clock, nil)
	t.Cleanup(s.Close)
	return s, clock
}

func TestSleep_ResumesAtDeadline(t *testing.T) {
	s, _ := newSim(t)

	var woke []time.Duration
	s.Spawn("sleeper", func(t *Task) {
		for i := 0; i < 3; i++ {
			t.Sleep(100 * time.Millisecond)
			woke = append(woke, t.Now())
		}
	})

	require.NoError(t, s.RunFor(context.Background(), time.Second))
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, woke)
}

func TestTick_RoundRobin(t *testing.T) {
	s, _ := newSim(t)

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		s.Spawn(name, func(t *Task) {
			for i := 0; i < 2; i++ {
				order = append(order, t.Name())
				t.Yield()
			}
		})
	}

	assert.True(t, s.Tick())
	assert.True(t, s.Tick())
	assert.False(t, s.Tick())
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, order)
}

func TestTick_IdleWhenWaiting(t *testing.T) {
	s, _ := newSim(t)

	sig := NewSignal[int]()
	s.Spawn("waiter", func(t *Task) {
		sig.Wait(t)
	})

	assert.False(t, s.Tick())
	_, ok := s.nextDeadline()
	assert.False(t, ok)

	sig.Send(1)
	assert.True(t, s.runnable())
}

func TestSignal_WaitAcrossTasks(t *testing.T) {
	s, _ := newSim(t)

	sig := NewSignal[int]()
	var (
		got int
		at  time.Duration
	)
	s.Spawn("consumer", func(t *Task) {
		got = sig.Wait(t)
		at = t.Now()
	})
	s.Spawn("producer", func(t *Task) {
		t.Sleep(50 * time.Millisecond)
		sig.Send(7)
	})

	require.NoError(t, s.RunFor(context.Background(), time.Second))
	assert.Equal(t, 7, got)
	assert.Equal(t, 50*time.Millisecond, at)
}

func TestSignal_LatestValueWins(t *testing.T) {
	sig := NewSignal[int]()

	sig.Send(1)
	sig.Send(2)
	assert.True(t, sig.Pending())

	v, ok := sig.TryTake()
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = sig.TryTake()
	assert.False(t, ok)

	sig.Send(3)
	sig.Reset()
	assert.False(t, sig.Pending())
}

func TestSignal_WaitTimeout(t *testing.T) {
	tests := []struct {
		name      string
		sendAfter time.Duration
		wantOK    bool
		wantAt    time.Duration
	}{
		{name: "value before timeout", sendAfter: 100 * time.Millisecond, wantOK: true, wantAt: 100 * time.Millisecond},
		{name: "timeout", sendAfter: 500 * time.Millisecond, wantOK: false, wantAt: 300 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSim(t)

			sig := NewSignal[string]()
			var (
				got string
				ok  bool
				at  time.Duration
			)
			s.Spawn("waiter", func(t *Task) {
				got, ok = sig.WaitTimeout(t, 300*time.Millisecond)
				at = t.Now()
			})
			s.Spawn("sender", func(t *Task) {
				t.Sleep(tt.sendAfter)
				sig.Send("hi")
			})

			require.NoError(t, s.RunFor(context.Background(), time.Second))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAt, at)
			if tt.wantOK {
				assert.Equal(t, "hi", got)
			} else {
				assert.Empty(t, got)
				// The late value is still there for the next wait.
				assert.True(t, sig.Pending())
			}
		})
	}
}

func TestSelect_FirstResolvedWins(t *testing.T) {
	s, _ := newSim(t)

	a := NewSignal[int]()
	b := NewSignal[string]()
	var results []Either[int, string]
	s.Spawn("selector", func(t *Task) {
		for i := 0; i < 2; i++ {
			results = append(results, Select[int, string](t, a, b))
		}
	})
	s.Spawn("sender", func(t *Task) {
		t.Sleep(10 * time.Millisecond)
		b.Send("b")
		t.Sleep(10 * time.Millisecond)
		a.Send(1)
	})

	require.NoError(t, s.RunFor(context.Background(), time.Second))
	require.Len(t, results, 2)
	assert.False(t, results[0].IsFirst)
	assert.Equal(t, "b", results[0].Second)
	assert.True(t, results[1].IsFirst)
	assert.Equal(t, 1, results[1].First)
}

func TestSelect_PrefersFirstWhenBothReady(t *testing.T) {
	s, _ := newSim(t)

	a := NewSignal[int]()
	b := NewSignal[int]()
	a.Send(1)
	b.Send(2)

	var r Either[int, int]
	s.Spawn("selector", func(t *Task) {
		r = Select[int, int](t, a, b)
	})

	s.Tick()
	assert.True(t, r.IsFirst)
	assert.Equal(t, 1, r.First)
	assert.True(t, b.Pending())
}

func TestBroadcast(t *testing.T) {
	var b Broadcast[bool]
	x := b.Subscribe()
	y := b.Subscribe()

	b.Send(true)

	v, ok := x.TryTake()
	assert.True(t, ok)
	assert.True(t, v)
	v, ok = y.TryTake()
	assert.True(t, ok)
	assert.True(t, v)
}

// racyClock lets the deadline pass while the alarm is being armed.
type racyClock struct {
	*SimClock
	fails int
	waits int
}

func (c *racyClock) SetAlarm(at time.Duration) bool {
	if c.fails > 0 {
		c.fails--
		c.SimClock.Advance(at - c.SimClock.Now())
		return false
	}
	return c.SimClock.SetAlarm(at)
}

func (c *racyClock) WaitForEvent(ctx context.Context) error {
	c.waits++
	return c.SimClock.WaitForEvent(ctx)
}

func TestRunFor_AlarmArmingRetries(t *testing.T) {
	clock := &racyClock{SimClock: NewSimClock(), fails: 1}
	s := New(clock, nil)
	defer s.Close()

	var woke time.Duration
	s.Spawn("sleeper", func(t *Task) {
		t.Sleep(100 * time.Millisecond)
		woke = t.Now()
	})

	require.NoError(t, s.RunFor(context.Background(), 100*time.Millisecond))
	assert.Equal(t, 100*time.Millisecond, woke)
	assert.Equal(t, 0, clock.waits, "a failed arm must not halt")
}

func TestRun_AlarmArmingRetries(t *testing.T) {
	clock := &racyClock{SimClock: NewSimClock(), fails: 1}
	s := New(clock, nil)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var woke []time.Duration
	s.Spawn("sleeper", func(t *Task) {
		t.Sleep(10 * time.Millisecond)
		woke = append(woke, t.Now())
		t.Sleep(10 * time.Millisecond)
		woke = append(woke, t.Now())
		cancel()
	})

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, woke)
	assert.Equal(t, 1, clock.waits, "only the armed alarm waits")
}

func TestRun_RealClockAlarm(t *testing.T) {
	clock := NewRealClock()
	defer clock.Stop()
	s := New(clock, nil)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var elapsed time.Duration
	s.Spawn("sleeper", func(t *Task) {
		start := time.Now()
		t.Sleep(20 * time.Millisecond)
		elapsed = time.Since(start)
		cancel()
	})

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestRun_WakesOnExternalSend(t *testing.T) {
	s, _ := newSim(t)

	sig := NewSignal[int]()
	got := make(chan int, 1)
	s.Spawn("consumer", func(t *Task) {
		got <- sig.Wait(t)
		sig.Wait(t)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	sig.Send(5)

	select {
	case v := <-got:
		assert.Equal(t, 5, v)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer was not woken")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestSpawn_AfterStartPanics(t *testing.T) {
	s, _ := newSim(t)
	s.Spawn("a", func(t *Task) {})
	s.Tick()

	assert.Panics(t, func() { s.Spawn("b", func(t *Task) {}) })
}

func TestClose_StopsTicking(t *testing.T) {
	s, _ := newSim(t)

	runs := 0
	s.Spawn("spinner", func(t *Task) {
		for {
			runs++
			t.Yield()
		}
	})

	assert.True(t, s.Tick())
	s.Close()
	assert.False(t, s.Tick())
	assert.Equal(t, 1, runs)
}

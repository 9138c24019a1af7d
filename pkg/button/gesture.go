package button

import (
	"time"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/sched"
)

type gestureState uint8

const (
	firstClick gestureState = iota
	forLow                  // pressed, waiting for release
	forHigh                 // released, waiting for another press
	holdFinish              // hold reported, waiting for release
)

// Gestures turns raw states into gesture events.
//
// Presses separated by less than the gesture timeout are counted. Silence
// after a release ends a click sequence; a press outlasting the timeout is a
// hold. Any raw state arriving out of order restarts recognition without
// emitting anything.
type Gestures struct {
	in      *sched.Signal[RawState]
	out     *sched.Signal[Event]
	timeout time.Duration
	logger  *zap.Logger
}

// NewGestures creates a gesture generator reading in.
func NewGestures(cfg config.ButtonConfig, in *sched.Signal[RawState], logger *zap.Logger) *Gestures {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gestures{
		in:      in,
		out:     sched.NewSignal[Event](),
		timeout: cfg.GestureTimeout,
		logger:  logger.Named("gesture"),
	}
}

// Events returns the signal gestures are delivered on. Only the latest
// unconsumed event is kept.
func (g *Gestures) Events() *sched.Signal[Event] {
	return g.out
}

// Run is the gesture task body. It never returns.
func (g *Gestures) Run(t *sched.Task) {
	state, clicks := firstClick, 0
	for {
		state, clicks = g.step(t, state, clicks)
	}
}

func (g *Gestures) step(t *sched.Task, state gestureState, clicks int) (gestureState, int) {
	switch state {
	case forLow:
		raw, ok := g.in.WaitTimeout(t, g.timeout)
		if !ok {
			g.emit(NewHold(clicks))
			return holdFinish, 0
		}
		if raw != Depress {
			return g.reset(raw, state)
		}
		return forHigh, clicks

	case forHigh:
		raw, ok := g.in.WaitTimeout(t, g.timeout)
		if !ok {
			g.emit(NewClick(clicks))
			return firstClick, 0
		}
		if raw != Press {
			return g.reset(raw, state)
		}
		if clicks < MaxCount {
			clicks++
		}
		return forLow, clicks

	case holdFinish:
		raw := g.in.Wait(t)
		if raw != Depress {
			return g.reset(raw, state)
		}
		g.emit(NewHoldEnd())
		return firstClick, 0

	default:
		raw := g.in.Wait(t)
		if raw != Press {
			return g.reset(raw, state)
		}
		return forLow, 1
	}
}

func (g *Gestures) reset(raw RawState, state gestureState) (gestureState, int) {
	g.logger.Debug("Unexpected raw state", zap.Stringer("raw", raw), zap.Uint8("state", uint8(state)))
	return firstClick, 0
}

func (g *Gestures) emit(e Event) {
	g.logger.Debug("Gesture", zap.Stringer("event", e))
	g.out.Send(e)
}

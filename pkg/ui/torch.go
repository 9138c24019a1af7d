// Package ui maps button gestures onto torch behavior.
//
// A locked torch only lights momentarily while the button is held. Three
// clicks unlock it; four clicks or a long idle period lock it again. While
// unlocked a click or a hold turns the light on, holds ramp the level and a
// double click toggles boost.
package ui

import (
	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/button"
	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/sched"
	"github.com/itohio/golamp/pkg/state"
)

// Light is the brightness control the torch drives.
type Light interface {
	SetLevel(level uint8)
	SetLevelGradual(level uint8)
	Blink(t *sched.Task, n int)
}

// Torch is the UI task.
type Torch struct {
	cfg     config.UIConfig
	light   Light
	state   *state.State
	events  *sched.Signal[button.Event]
	lockout *sched.Signal[button.RawState]
	logger  *zap.Logger

	saved uint8
}

// NewTorch creates the UI task. events carries gestures; lockout carries the
// debounced raw button state used for the momentary light while locked.
func NewTorch(cfg config.UIConfig, light Light, st *state.State, events *sched.Signal[button.Event], lockout *sched.Signal[button.RawState], logger *zap.Logger) *Torch {
	if logger == nil {
		logger = zap.NewNop()
	}
	st.Unlocked.Set(cfg.StartUnlocked)
	return &Torch{
		cfg:     cfg,
		light:   light,
		state:   st,
		events:  events,
		lockout: lockout,
		logger:  logger.Named("ui"),
		saved:   cfg.DefaultLevel,
	}
}

// Run is the UI task body. It never returns.
func (u *Torch) Run(t *sched.Task) {
	for {
		if u.state.Unlocked.Get() {
			u.unlocked(t)
		} else {
			u.locked(t)
		}
	}
}

func (u *Torch) locked(t *sched.Task) {
	r := sched.Select[button.Event, button.RawState](t, u.events, u.lockout)
	if !r.IsFirst {
		switch r.Second {
		case button.Press:
			u.light.SetLevel(u.cfg.LockoutLevel)
		case button.Depress:
			u.light.SetLevel(0)
		}
		return
	}

	if r.First.Is(button.Click, 3) {
		u.light.Blink(t, 1)
		u.state.Unlocked.Set(true)
		u.saved = u.cfg.DefaultLevel
		u.logger.Info("Unlocked")
	}
}

func (u *Torch) unlocked(t *sched.Task) {
	e, ok := u.events.WaitTimeout(t, u.cfg.LockTimeout)
	if !ok {
		u.logger.Debug("Idle timeout")
		u.lock(t)
		return
	}

	switch {
	case e.Is(button.Click, 1):
		u.saved = u.torchOn(t, u.saved)
	case e.Is(button.Hold, 1):
		u.saved = u.torchOn(t, u.cfg.DefaultLevel)
	case e.Is(button.Click, 4):
		u.lock(t)
	}
}

func (u *Torch) lock(t *sched.Task) {
	u.light.Blink(t, 1)
	u.state.Unlocked.Set(false)
	// Raw states seen while unlocked are stale.
	u.lockout.Reset()
	u.logger.Info("Locked")
}

// torchOn keeps the light on at level until switched off and returns the
// level it was switched off at.
func (u *Torch) torchOn(t *sched.Task, level uint8) uint8 {
	u.state.On.Set(true)
	u.logger.Debug("On", zap.Uint8("level", level))

	level = u.ramping(t, level)

	u.light.SetLevelGradual(0)
	u.state.On.Set(false)
	u.logger.Debug("Off", zap.Uint8("level", level))
	return level
}

func (u *Torch) ramping(t *sched.Task, level uint8) uint8 {
	beforeBoost := level
	lastUp := t.Now()
	u.light.SetLevelGradual(level)

	for {
		e := u.events.Wait(t)
		switch {
		case e.Is(button.Click, 1):
			return level
		case e.Is(button.Hold, 1):
			dir := 1
			if t.Now()-lastUp <= u.cfg.RampReverse {
				dir = -1
			}
			level = u.ramp(t, level, dir)
			if dir > 0 {
				lastUp = t.Now()
			}
		case e.Is(button.Hold, 2):
			level = u.ramp(t, level, -1)
		case e.Is(button.Click, 2):
			if level == u.cfg.BoostLevel {
				level = beforeBoost
			} else {
				beforeBoost = level
				level = u.cfg.BoostLevel
			}
			u.light.SetLevelGradual(level)
		}
	}
}

// ramp moves level by dir every ramp step until the next gesture arrives,
// usually the end of the hold.
func (u *Torch) ramp(t *sched.Task, level uint8, dir int) uint8 {
	for {
		if _, ok := u.events.WaitTimeout(t, u.cfg.RampStep); ok {
			return level
		}
		level = addSat(level, dir)
		u.light.SetLevelGradual(level)
	}
}

func addSat(v uint8, d int) uint8 {
	n := int(v) + d
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	default:
		return uint8(n)
	}
}

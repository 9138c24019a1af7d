package device

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/hal/sim"
	"github.com/itohio/golamp/pkg/sched"
)

const ms = time.Millisecond

type rig struct {
	dev   *Device
	board *sim.Board
}

func newRig(t *testing.T, mutate func(*config.Config)) *rig {
	t.Helper()

	cfg := config.Default()
	cfg.Sim.NoiseLevel = 0
	if mutate != nil {
		mutate(cfg)
	}

	clock := sched.NewSimClock()
	board := sim.New(&cfg.Sim, clock.Now, nil)
	dev, err := New(cfg, board.Board(), clock, nil, nil)
	require.NoError(t, err)
	t.Cleanup(dev.Close)

	r := &rig{dev: dev, board: board}
	r.run(t, 100*ms)
	return r
}

func (r *rig) run(t *testing.T, d time.Duration) {
	t.Helper()
	require.NoError(t, r.dev.Scheduler.RunFor(context.Background(), d))
}

func (r *rig) clicks(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		r.board.Button.Press()
		r.run(t, 80*ms)
		r.board.Button.Release()
		r.run(t, 80*ms)
	}
	r.run(t, time.Second)
}

func TestDevice_StartsDark(t *testing.T) {
	r := newRig(t, nil)

	assert.False(t, r.dev.State.Unlocked.Get())
	assert.Zero(t, r.board.Output())
	assert.False(t, r.board.Aux.Level())
	assert.True(t, r.board.ButtonLED.Level())
	assert.InDelta(t, 4.0, r.dev.State.Voltage.Get().Float(), 0.05)
}

func TestDevice_UnlockAndSwitch(t *testing.T) {
	r := newRig(t, nil)

	r.clicks(t, 3)
	require.True(t, r.dev.State.Unlocked.Get())
	assert.Zero(t, r.dev.Governor.Applied())

	r.clicks(t, 1)
	assert.True(t, r.dev.State.On.Get())
	assert.Equal(t, uint8(27), r.dev.Governor.Applied())
	assert.Greater(t, r.board.Output(), 0.0)

	r.clicks(t, 1)
	assert.False(t, r.dev.State.On.Get())
	assert.Zero(t, r.dev.Governor.Applied())
	assert.Zero(t, r.board.Output())

	assert.Positive(t, r.board.Watchdog.Feeds())
	assert.False(t, r.board.Watchdog.Expired())
}

func TestDevice_LockedMomentary(t *testing.T) {
	r := newRig(t, nil)

	r.board.Button.Press()
	r.run(t, 100*ms)
	assert.Equal(t, uint8(30), r.dev.Governor.Applied())
	assert.False(t, r.board.ButtonLED.Level())

	r.board.Button.Release()
	r.run(t, time.Second)
	assert.Zero(t, r.dev.Governor.Applied())
	assert.False(t, r.dev.State.Unlocked.Get())
	assert.True(t, r.board.ButtonLED.Level())
}

func TestDevice_HoldRamps(t *testing.T) {
	r := newRig(t, func(cfg *config.Config) {
		cfg.UI.StartUnlocked = true
	})

	// Hold turns on at the default level.
	r.board.Button.Press()
	r.run(t, time.Second)
	r.board.Button.Release()
	r.run(t, 700*ms)
	require.True(t, r.dev.State.On.Get())
	require.Equal(t, uint8(27), r.dev.Governor.Level())

	// A second hold ramps up.
	r.board.Button.Press()
	r.run(t, time.Second)
	r.board.Button.Release()
	r.run(t, 200*ms)
	assert.Greater(t, r.dev.Governor.Level(), uint8(50))
}

func TestDevice_CriticalTemperature(t *testing.T) {
	r := newRig(t, func(cfg *config.Config) {
		cfg.UI.StartUnlocked = true
	})

	r.clicks(t, 1)
	require.True(t, r.dev.State.On.Get())
	require.Greater(t, r.board.Output(), 0.0)

	r.board.SetTemperature(70)
	r.run(t, 300*ms)
	assert.True(t, r.board.Power.Stopped())
	assert.Zero(t, r.board.Output())
	assert.False(t, r.board.Aux.Level())
}

func TestDevice_TelemetryFollowsBattery(t *testing.T) {
	r := newRig(t, func(cfg *config.Config) {
		cfg.UI.StartUnlocked = true
	})

	r.clicks(t, 1)
	require.True(t, r.dev.State.On.Get())

	// Below the instant stop threshold the output is cut while the light
	// stays logically on.
	r.board.SetBattery(2.7)
	r.run(t, 10*time.Second)
	assert.True(t, r.dev.State.On.Get())
	assert.Zero(t, r.dev.Governor.Applied())
	assert.Zero(t, r.board.Output())
}

// Package power is the brightness governor: a fixed-rate control loop that
// converts the requested brightness and the live telemetry into the level
// actually applied to the LED.
//
// Each tick the ramped level moves toward the requested one, a hard clamp
// cuts the output on absolute voltage or temperature limits, and two
// saturating integrals of soft limit excursions derate it proportionally.
package power

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/sched"
	"github.com/itohio/golamp/pkg/state"
	"github.com/itohio/golamp/pkg/units"
)

const (
	// fastGap is the distance above which the ramp takes fast steps.
	fastGap = 50
	// fastStep is the ramp step while far from the target.
	fastStep = 3
)

// Governor owns the power path. Its Run method is the governor task; the
// level setters are called from other tasks.
type Governor struct {
	state  *state.State
	paths  *Paths
	wake   *sched.Signal[struct{}]
	logger *zap.Logger

	tickRate         int
	period           time.Duration
	instantStopTemp  units.Temperature
	maxTemp          units.Temperature
	minVolts         units.Voltage
	instantStopVolts units.Voltage
	blinkLevel       uint8
	blinkPeriod      time.Duration

	// Owned by the governor task.
	overTemp   accumulator
	underVolts accumulator
	applied    uint8
}

// New creates a governor driving paths from the levels and readings in st.
func New(cfg config.GovernorConfig, st *state.State, paths *Paths, logger *zap.Logger) *Governor {
	if logger == nil {
		logger = zap.NewNop()
	}
	floor := units.FromFloat(cfg.AccumulatorFloor)
	ceil := units.FromFloat(cfg.AccumulatorCeil)

	return &Governor{
		state:            st,
		paths:            paths,
		wake:             sched.NewSignal[struct{}](),
		logger:           logger.Named("governor"),
		tickRate:         cfg.TickRate,
		period:           time.Second / time.Duration(cfg.TickRate),
		instantStopTemp:  units.Celsius(cfg.InstantStopTemp),
		maxTemp:          units.Celsius(cfg.MaxTemp),
		minVolts:         units.Volts(cfg.MinVolts),
		instantStopVolts: units.Volts(cfg.InstantStopVolts),
		blinkLevel:       cfg.BlinkLevel,
		blinkPeriod:      cfg.BlinkPeriod,
		overTemp:         accumulator{floor: floor, ceil: ceil},
		underVolts:       accumulator{floor: floor, ceil: ceil},
	}
}

// SetLevel sets the requested and the ramped level at once, for effects that
// must not ramp.
func (g *Governor) SetLevel(level uint8) {
	prev := g.state.Desired.Swap(level)
	g.state.Gradual.Set(level)
	g.wakeIf(prev, level)
}

// SetLevelGradual sets the requested level; the output ramps toward it.
func (g *Governor) SetLevelGradual(level uint8) {
	prev := g.state.Desired.Swap(level)
	g.wakeIf(prev, level)
}

// Level returns the requested level.
func (g *Governor) Level() uint8 {
	return g.state.Desired.Get()
}

// Applied returns the level last written to the power path.
func (g *Governor) Applied() uint8 {
	return g.applied
}

// Blink flashes the light n times at the blink level and then restores the
// requested level. It suspends t for the duration.
func (g *Governor) Blink(t *sched.Task, n int) {
	prev := g.state.Desired.Get()
	for i := 0; i < n; i++ {
		g.SetLevel(g.blinkLevel)
		t.Sleep(g.blinkPeriod)
		g.SetLevel(prev)
		t.Sleep(g.blinkPeriod)
	}
}

func (g *Governor) wakeIf(prev, level uint8) {
	if prev == 0 && level != 0 {
		g.wake.Send(struct{}{})
	}
}

// Run is the governor task body. It never returns.
func (g *Governor) Run(t *sched.Task) {
	for {
		// Idle: rails down until a non-zero level is requested.
		g.wake.Wait(t)
		g.logger.Debug("Activated", zap.Duration("at", t.Now()))
		g.activate(t)
		g.logger.Debug("Idle", zap.Duration("at", t.Now()))
	}
}

// activate runs the fixed-rate tick loop until the light is fully off.
func (g *Governor) activate(t *sched.Task) {
	g.overTemp.reset()
	g.underVolts.reset()

	next := t.Now()
	for {
		if g.tick(t) {
			return
		}
		next += g.period
		t.SleepUntil(next)
	}
}

// tick runs one control step and reports whether the governor may go idle.
func (g *Governor) tick(t *sched.Task) bool {
	desired := g.state.Desired.Get()
	gradual := g.state.Gradual.Update(func(v uint8) uint8 {
		return stepToward(v, desired)
	})

	volts := g.state.Voltage.Get()
	temp := g.state.Temperature.Get()

	actual := gradual
	if volts < g.instantStopVolts || temp > g.instantStopTemp {
		actual = 0
	}

	g.overTemp.add(temp.Fixed() - g.maxTemp.Fixed())
	if volts < g.minVolts {
		g.underVolts.add(units.One)
	} else {
		g.underVolts.add(-units.One)
	}
	actual = subSat(actual, g.decrease())

	if actual != g.applied {
		g.logger.Debug("Apply",
			zap.Uint8("level", actual),
			zap.Uint8("gradual", gradual),
			zap.Float64("over_temp", toFloat(g.overTemp.v)),
			zap.Float64("under_volts", toFloat(g.underVolts.v)),
		)
		g.paths.Apply(t, actual)
		g.applied = actual
	}

	return actual == 0 && gradual == 0
}

// decrease is the derating in levels: the sum of both integrals per second.
func (g *Governor) decrease() int {
	sum := g.overTemp.v + g.underVolts.v
	d := fixed.Int52_12(int64(sum) / int64(g.tickRate)).Floor()
	if d < 0 {
		return 0
	}
	return d
}

func stepToward(v, target uint8) uint8 {
	switch {
	case v < target:
		step := uint8(1)
		if target-v > fastGap {
			step = fastStep
		}
		return v + step
	case v > target:
		step := uint8(1)
		if v-target > fastGap {
			step = fastStep
		}
		return v - step
	default:
		return v
	}
}

func subSat(v uint8, d int) uint8 {
	if d >= int(v) {
		return 0
	}
	return v - uint8(d)
}

func toFloat(x fixed.Int52_12) float64 {
	return float64(x) / float64(units.One)
}

// Package telemetry samples the battery and driver sensors, publishes the
// smoothed readings to the shared state and keeps the watchdog fed.
package telemetry

import (
	"time"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/hal"
	"github.com/itohio/golamp/pkg/sched"
	"github.com/itohio/golamp/pkg/state"
	"github.com/itohio/golamp/pkg/units"
)

// Monitor is the telemetry task.
type Monitor struct {
	sensors  hal.Sensors
	watchdog hal.Watchdog
	latch    hal.PowerLatch
	state    *state.State
	poke     *sched.Signal[struct{}]
	logger   *zap.Logger

	onInterval  time.Duration
	offInterval time.Duration
	critical    units.Temperature

	voltage     smoother
	temperature smoother
}

// NewMonitor creates the telemetry task for board. The smoothed readings are
// seeded from cfg so the first samples do not start from zero.
func NewMonitor(cfg config.TelemetryConfig, board hal.Board, st *state.State, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		sensors:     board.Sensors,
		watchdog:    board.Watchdog,
		latch:       board.Power,
		state:       st,
		poke:        sched.NewSignal[struct{}](),
		logger:      logger.Named("telemetry"),
		onInterval:  cfg.OnInterval,
		offInterval: cfg.OffInterval,
		critical:    units.Celsius(cfg.CriticalTemp),
		voltage:     newSmoother(units.Volts(cfg.SeedVolts).Fixed()),
		temperature: newSmoother(units.Celsius(cfg.SeedTemp).Fixed()),
	}
}

// Poke requests an immediate sample. Safe from any task or interrupt.
func (m *Monitor) Poke() {
	m.poke.Send(struct{}{})
}

// Run is the telemetry task body. It samples every on interval while the
// light is on, otherwise at most every off interval or when poked.
func (m *Monitor) Run(t *sched.Task) {
	for {
		m.Sample()
		if m.state.On.Get() {
			t.Sleep(m.onInterval)
			continue
		}
		m.poke.WaitTimeout(t, m.offInterval)
	}
}

// Sample takes one reading of each sensor and feeds the watchdog. A failed
// read leaves the previous value in place.
func (m *Monitor) Sample() {
	if v, err := m.sensors.Voltage(); err != nil {
		m.logger.Warn("Voltage read failed", zap.Error(err))
	} else {
		m.state.Voltage.Set(units.Voltage(m.voltage.update(v.Fixed())))
	}

	if c, err := m.sensors.Temperature(); err != nil {
		m.logger.Warn("Temperature read failed", zap.Error(err))
	} else {
		m.state.Temperature.Set(units.Temperature(m.temperature.update(c.Fixed())))
		if c > m.critical {
			m.logger.Error("Critical temperature", zap.Stringer("temperature", c))
			m.latch.EmergencyStop()
			return
		}
	}

	m.watchdog.Feed()
}

// Package sim is a simulated board for tests and the host simulator.
//
// Outputs are recorded, the button is scripted, and the sensors follow a
// first-order thermal model and a linear battery drain driven by the light
// output.
package sim

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/curve"
	"github.com/itohio/golamp/pkg/hal"
	"github.com/itohio/golamp/pkg/units"
)

// WatchdogPeriod is how long the watchdog tolerates not being fed.
const WatchdogPeriod = 6 * time.Second

// Op is one recorded output write.
type Op struct {
	At    time.Duration
	Name  string
	Value int
}

// Board simulates the light.
type Board struct {
	cfg    config.SimConfig
	now    func() time.Duration
	params curve.Params
	logger *zap.Logger

	Button    *Button
	ButtonLED *Pin
	Range     *Pin
	Aux       *Pin
	Boost     *Pin
	DAC       *DAC
	Watchdog  *Watchdog
	Power     *Latch

	mu          sync.Mutex
	ops         []Op
	last        time.Duration
	temperature float64
	battery     float64
}

var _ hal.Sensors = (*Board)(nil)

// New creates a simulated board. now is the time base, usually the scheduler
// clock.
func New(cfg *config.SimConfig, now func() time.Duration, logger *zap.Logger) *Board {
	if cfg == nil {
		cfg = &config.Default().Sim
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Board{
		cfg:         *cfg,
		now:         now,
		params:      curve.DefaultParams(),
		logger:      logger.Named("sim"),
		last:        now(),
		temperature: cfg.Ambient,
		battery:     cfg.BatteryVolts,
	}
	b.Button = &Button{}
	b.ButtonLED = &Pin{board: b, name: "button_led"}
	b.Range = &Pin{board: b, name: "range"}
	b.Aux = &Pin{board: b, name: "aux"}
	b.Boost = &Pin{board: b, name: "boost"}
	b.DAC = &DAC{board: b}
	b.Watchdog = &Watchdog{now: now, last: now()}
	b.Power = &Latch{board: b, logger: b.logger}
	return b
}

// Board returns the peripherals as the hal aggregate.
func (b *Board) Board() hal.Board {
	return hal.Board{
		Button:    b.Button,
		ButtonLED: b.ButtonLED,
		Range:     b.Range,
		Aux:       b.Aux,
		Boost:     b.Boost,
		DAC:       b.DAC,
		Sensors:   b,
		Watchdog:  b.Watchdog,
		Power:     b.Power,
	}
}

// Ops returns a copy of the recorded output writes.
func (b *Board) Ops() []Op {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Op(nil), b.ops...)
}

// ResetOps clears the recorded output writes.
func (b *Board) ResetOps() {
	b.mu.Lock()
	b.ops = nil
	b.mu.Unlock()
}

// record applies an output change and logs it. The models are advanced first
// so the elapsed interval is integrated with the previous output.
func (b *Board) record(name string, value int, apply func()) {
	at := b.now()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advanceLocked(at)
	apply()
	b.ops = append(b.ops, Op{At: at, Name: name, Value: value})
}

// Output returns the normalized light output currently produced, 0 when any
// stage of the power path is off. It only takes the peripheral locks.
func (b *Board) Output() float64 {
	if !b.Aux.Level() || !b.Boost.Level() || !b.DAC.Enabled() {
		return 0
	}
	e := curve.Entry{HighRange: b.Range.Level(), Code: b.DAC.Code()}
	return float64(e.Output(b.params))
}

// SetTemperature overrides the modeled temperature. The model keeps evolving
// from the new value.
func (b *Board) SetTemperature(c float64) {
	b.mu.Lock()
	b.advanceLocked(b.now())
	b.temperature = c
	b.mu.Unlock()
}

// SetBattery overrides the modeled battery voltage.
func (b *Board) SetBattery(v float64) {
	b.mu.Lock()
	b.advanceLocked(b.now())
	b.battery = v
	b.mu.Unlock()
}

// Voltage returns the battery voltage.
func (b *Board) Voltage() (units.Voltage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	at := b.now()
	b.advanceLocked(at)
	return units.Volts(b.battery + b.noise(at)), nil
}

// Temperature returns the driver temperature.
func (b *Board) Temperature() (units.Temperature, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	at := b.now()
	b.advanceLocked(at)
	return units.Celsius(b.temperature + b.noise(at)*100), nil
}

// advanceLocked integrates the models up to at using the output in effect
// since the last step.
func (b *Board) advanceLocked(at time.Duration) {
	dt := at - b.last
	if dt <= 0 {
		return
	}
	b.last = at

	output := b.Output()

	// Thermal response: exponential approach to steady state
	target := b.cfg.Ambient + b.cfg.HeatRise*output
	alpha := dt.Seconds() / b.cfg.ThermalTau.Seconds()
	if alpha > 1 {
		alpha = 1
	}
	b.temperature += alpha * (target - b.temperature)

	b.battery -= b.cfg.DrainRate * output * dt.Hours()
	if b.battery < b.cfg.EmptyVolts {
		b.battery = b.cfg.EmptyVolts
	}
}

func (b *Board) noise(at time.Duration) float64 {
	if b.cfg.NoiseLevel == 0 {
		return 0
	}
	ns := float64(at.Nanoseconds())
	return (math.Sin(ns*0.001) + math.Cos(ns*0.0013)) * b.cfg.NoiseLevel * 0.5
}

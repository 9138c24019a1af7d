//go:build tinygo

// Package mcu is the TinyGo board backend: machine pins, the on-chip DAC and
// ADC, the hardware watchdog and a CPU reset for the emergency stop.
package mcu

import (
	"fmt"
	"machine"

	"golang.org/x/image/math/fixed"

	"github.com/itohio/golamp/pkg/hal"
	"github.com/itohio/golamp/pkg/units"
)

const (
	adcReferenceMV = 3300
	adcResolution  = 12
	watchdogMillis = 6000
)

// Pins assigns the board signals.
type Pins struct {
	Button      machine.Pin // Active low, pulled up
	ButtonLED   machine.Pin // machine.NoPin disables the indicator
	Range       machine.Pin
	Aux         machine.Pin
	Boost       machine.Pin
	PowerEnable machine.Pin
	Voltage     machine.Pin // ADC
	Temperature machine.Pin // ADC
}

// Scales converts ADC counts. Each full scale is the reading at the ADC
// reference; the temperature sensor is linear with an offset.
type Scales struct {
	Voltage           fixed.Int52_12
	Temperature       fixed.Int52_12
	TemperatureOffset fixed.Int52_12
}

// Board is a light on a microcontroller.
type Board struct {
	button   *button
	led      hal.OutputPin
	rng      pin
	aux      pin
	boost    pin
	power    *latch
	dac      *dac
	sensors  *sensors
	watchdog watchdog
}

// Open configures the pins, converters and the watchdog. The power-enable
// pin is driven high first.
func Open(p Pins, s Scales) (*Board, error) {
	out := func(mp machine.Pin, initial bool) pin {
		mp.Configure(machine.PinConfig{Mode: machine.PinOutput})
		mp.Set(initial)
		return pin(mp)
	}

	b := &Board{
		power: &latch{line: out(p.PowerEnable, true)},
		rng:   out(p.Range, false),
		aux:   out(p.Aux, false),
		boost: out(p.Boost, false),
		led:   hal.NopPin{},
	}
	if p.ButtonLED != machine.NoPin {
		b.led = out(p.ButtonLED, false)
	}

	p.Button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	b.button = &button{pin: p.Button}

	adcCfg := machine.ADCConfig{Reference: adcReferenceMV, Resolution: adcResolution}
	machine.InitADC()
	v := machine.ADC{Pin: p.Voltage}
	v.Configure(adcCfg)
	c := machine.ADC{Pin: p.Temperature}
	c.Configure(adcCfg)
	b.sensors = &sensors{voltage: v, temperature: c, scales: s}

	machine.DAC0.Configure(machine.DACConfig{})
	b.dac = &dac{d: machine.DAC0}
	b.dac.Set(0)

	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: watchdogMillis}); err != nil {
		return nil, fmt.Errorf("configure watchdog: %w", err)
	}
	if err := machine.Watchdog.Start(); err != nil {
		return nil, fmt.Errorf("start watchdog: %w", err)
	}
	return b, nil
}

// Board returns the peripherals as the hal aggregate.
func (b *Board) Board() hal.Board {
	return hal.Board{
		Button:    b.button,
		ButtonLED: b.led,
		Range:     b.rng,
		Aux:       b.aux,
		Boost:     b.boost,
		DAC:       b.dac,
		Sensors:   b.sensors,
		Watchdog:  b.watchdog,
		Power:     b.power,
	}
}

type pin machine.Pin

func (p pin) Set(high bool) { machine.Pin(p).Set(high) }

type button struct {
	pin machine.Pin
}

func (b *button) Get() bool { return b.pin.Get() }

func (b *button) SetInterrupt(handler func()) error {
	return b.pin.SetInterrupt(machine.PinFalling, func(machine.Pin) { handler() })
}

// dac has no power-down control; disabling parks it at zero.
type dac struct {
	d       machine.DAC
	code    uint16
	enabled bool
}

func (d *dac) Enable(on bool) {
	d.enabled = on
	d.write()
}

func (d *dac) Set(code uint16) {
	d.code = code
	d.write()
}

func (d *dac) write() {
	var v uint16
	if d.enabled {
		// machine.DAC takes a left-aligned 16-bit value.
		v = d.code << 4
	}
	d.d.Set(v)
}

type sensors struct {
	voltage     machine.ADC
	temperature machine.ADC
	scales      Scales
}

// ADC results are left-aligned 16-bit values.
func (s *sensors) Voltage() (units.Voltage, error) {
	return units.Voltage(units.Scale(s.voltage.Get()>>4, s.scales.Voltage)), nil
}

func (s *sensors) Temperature() (units.Temperature, error) {
	raw := units.Scale(s.temperature.Get()>>4, s.scales.Temperature)
	return units.Temperature(raw - s.scales.TemperatureOffset), nil
}

type watchdog struct{}

func (watchdog) Feed() { machine.Watchdog.Update() }

type latch struct {
	line pin
}

func (l *latch) EmergencyStop() {
	l.line.Set(false)
	machine.CPUReset()
}

var (
	_ hal.InputPin   = (*button)(nil)
	_ hal.OutputPin  = pin(0)
	_ hal.DAC        = (*dac)(nil)
	_ hal.Sensors    = (*sensors)(nil)
	_ hal.Watchdog   = watchdog{}
	_ hal.PowerLatch = (*latch)(nil)
)

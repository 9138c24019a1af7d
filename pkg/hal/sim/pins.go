package sim

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/hal"
)

// Button is a scripted active-low push button.
type Button struct {
	mu      sync.Mutex
	pressed bool
	handler func()
}

var _ hal.InputPin = (*Button)(nil)

// Get returns the pin level: low while pressed.
func (b *Button) Get() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.pressed
}

// SetInterrupt installs the falling edge handler.
func (b *Button) SetInterrupt(handler func()) error {
	b.mu.Lock()
	b.handler = handler
	b.mu.Unlock()
	return nil
}

// Press pulls the pin low and fires the interrupt.
func (b *Button) Press() {
	b.mu.Lock()
	edge := !b.pressed
	b.pressed = true
	handler := b.handler
	b.mu.Unlock()

	if edge && handler != nil {
		handler()
	}
}

// Release lets the pin go high. There is no rising edge interrupt.
func (b *Button) Release() {
	b.mu.Lock()
	b.pressed = false
	b.mu.Unlock()
}

// Bounce fires the interrupt without changing the level, as contact bounce
// on release does.
func (b *Button) Bounce() {
	b.mu.Lock()
	handler := b.handler
	b.mu.Unlock()

	if handler != nil {
		handler()
	}
}

// Pin is a recording output.
type Pin struct {
	board *Board
	name  string

	mu     sync.Mutex
	level  bool
	writes int
}

var _ hal.OutputPin = (*Pin)(nil)

// Set drives the pin.
func (p *Pin) Set(high bool) {
	v := 0
	if high {
		v = 1
	}
	p.board.record(p.name, v, func() {
		p.mu.Lock()
		p.level = high
		p.writes++
		p.mu.Unlock()
	})
}

// Level returns the driven level.
func (p *Pin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Writes returns how many times the pin was driven.
func (p *Pin) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// DAC is a recording 12-bit DAC.
type DAC struct {
	board *Board

	mu      sync.Mutex
	enabled bool
	code    uint16
	writes  int
}

var _ hal.DAC = (*DAC)(nil)

// Enable powers the DAC output.
func (d *DAC) Enable(on bool) {
	v := 0
	if on {
		v = 1
	}
	d.board.record("dac_enable", v, func() {
		d.mu.Lock()
		d.enabled = on
		d.mu.Unlock()
	})
}

// Set writes a code.
func (d *DAC) Set(code uint16) {
	d.board.record("dac", int(code), func() {
		d.mu.Lock()
		d.code = code
		d.writes++
		d.mu.Unlock()
	})
}

// Enabled reports whether the output is powered.
func (d *DAC) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// Code returns the last written code.
func (d *DAC) Code() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.code
}

// Writes returns how many codes were written.
func (d *DAC) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// Watchdog tracks feeding against WatchdogPeriod.
type Watchdog struct {
	now func() time.Duration

	mu      sync.Mutex
	last    time.Duration
	feeds   int
	longest time.Duration
}

var _ hal.Watchdog = (*Watchdog)(nil)

// Feed restarts the watchdog period.
func (w *Watchdog) Feed() {
	at := w.now()
	w.mu.Lock()
	defer w.mu.Unlock()
	if gap := at - w.last; gap > w.longest {
		w.longest = gap
	}
	w.last = at
	w.feeds++
}

// Feeds returns how many times the watchdog was fed.
func (w *Watchdog) Feeds() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.feeds
}

// Expired reports whether the watchdog would have reset the device, either
// now or at any point in the past.
func (w *Watchdog) Expired() bool {
	at := w.now()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.longest > WatchdogPeriod || at-w.last > WatchdogPeriod
}

// Latch simulates the power-enable line.
type Latch struct {
	board  *Board
	logger *zap.Logger

	mu      sync.Mutex
	stopped bool
	onStop  func()
}

var _ hal.PowerLatch = (*Latch)(nil)

// OnStop installs a callback run by EmergencyStop, typically cancelling the
// simulation.
func (l *Latch) OnStop(fn func()) {
	l.mu.Lock()
	l.onStop = fn
	l.mu.Unlock()
}

// EmergencyStop records the stop, drops the LED supply and runs the
// callback. Unlike hardware it returns.
func (l *Latch) EmergencyStop() {
	l.mu.Lock()
	l.stopped = true
	fn := l.onStop
	l.mu.Unlock()

	l.logger.Warn("Emergency stop")
	l.board.Aux.Set(false)
	l.board.Boost.Set(false)
	l.board.DAC.Enable(false)
	if fn != nil {
		fn()
	}
}

// Stopped reports whether EmergencyStop was called.
func (l *Latch) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

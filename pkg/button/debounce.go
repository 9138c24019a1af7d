package button

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/hal"
	"github.com/itohio/golamp/pkg/sched"
)

// Debouncer turns falling-edge interrupts on an active-low pin into
// Press/Depress raw states.
//
// A press is accepted if the pin is still low one settle interval after the
// edge. A release is accepted after two consecutive high polls, so a missed
// release edge is never needed.
type Debouncer struct {
	pin    hal.InputPin
	led    hal.OutputPin
	edge   *sched.Signal[struct{}]
	out    sched.Broadcast[RawState]
	settle time.Duration
	poll   time.Duration
	logger *zap.Logger
}

// NewDebouncer installs the edge interrupt on pin. led is lit while the
// button is idle and may be nil.
func NewDebouncer(cfg config.ButtonConfig, pin hal.InputPin, led hal.OutputPin, logger *zap.Logger) (*Debouncer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if led == nil {
		led = hal.NopPin{}
	}

	d := &Debouncer{
		pin:    pin,
		led:    led,
		edge:   sched.NewSignal[struct{}](),
		settle: cfg.Settle,
		poll:   cfg.Poll,
		logger: logger.Named("debounce"),
	}

	if err := pin.SetInterrupt(func() { d.edge.Send(struct{}{}) }); err != nil {
		return nil, fmt.Errorf("failed to install button interrupt: %w", err)
	}
	return d, nil
}

// Subscribe returns a signal receiving every raw state. All subscriptions
// must be made before the scheduler starts.
func (d *Debouncer) Subscribe() *sched.Signal[RawState] {
	return d.out.Subscribe()
}

// Run is the debouncer task body. It never returns.
func (d *Debouncer) Run(t *sched.Task) {
	for {
		d.led.Set(true)
		d.waitLow(t)
		d.led.Set(false)

		t.Sleep(d.settle)
		if d.pin.Get() {
			d.logger.Debug("Press rejected", zap.Duration("at", t.Now()))
			continue
		}
		d.out.Send(Press)

		d.waitRelease(t)
		d.out.Send(Depress)
	}
}

// waitLow returns once a falling edge left the pin low. Edges found high on
// re-check are spurious and ignored.
func (d *Debouncer) waitLow(t *sched.Task) {
	for d.pin.Get() {
		d.edge.Wait(t)
	}
	d.edge.Reset()
}

func (d *Debouncer) waitRelease(t *sched.Task) {
	for {
		t.Sleep(d.poll)
		if !d.pin.Get() {
			continue
		}
		t.Sleep(d.poll)
		if d.pin.Get() {
			return
		}
	}
}

//go:build linux

package gpio

import (
	"fmt"
	"os"
	"sync"

	"github.com/warthog618/go-gpiocdev"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/hal"
)

// Board is a light wired to a Linux GPIO chip.
type Board struct {
	chip     *gpiocdev.Chip
	button   *buttonLine
	outputs  []*outputLine
	led      hal.OutputPin
	rng      *outputLine
	aux      *outputLine
	boost    *outputLine
	power    *powerLatch
	dac      *sysfsDAC
	sensors  *sysfsSensors
	watchdog hal.Watchdog
	logger   *zap.Logger
}

// Open requests the lines described by cfg. The power-enable line is driven
// high first and held until EmergencyStop or Close.
func Open(cfg config.HardwareConfig, logger *zap.Logger) (b *Board, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("gpio")

	chip, err := gpiocdev.NewChip(cfg.Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", cfg.Chip, err)
	}

	b = &Board{
		chip:     chip,
		led:      hal.NopPin{},
		watchdog: nopWatchdog{},
		logger:   logger,
		dac: &sysfsDAC{
			rawPath:       cfg.DACPath,
			powerdownPath: cfg.DACEnablePath,
			logger:        logger,
		},
		sensors: &sysfsSensors{
			voltagePath:  cfg.VoltagePath,
			voltageScale: cfg.VoltageScale,
			tempPath:     cfg.TempPath,
			tempScale:    cfg.TempScale,
		},
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, b.Close())
			b = nil
		}
	}()

	power, err := b.output("power_enable", cfg.PowerEnableLine, 1)
	if err != nil {
		return b, err
	}
	b.power = &powerLatch{line: power, logger: logger}

	if b.rng, err = b.output("range", cfg.RangeLine, 0); err != nil {
		return b, err
	}
	if b.aux, err = b.output("aux", cfg.AuxLine, 0); err != nil {
		return b, err
	}
	if b.boost, err = b.output("boost", cfg.BoostLine, 0); err != nil {
		return b, err
	}
	if cfg.ButtonLEDLine >= 0 {
		led, err := b.output("button_led", cfg.ButtonLEDLine, 0)
		if err != nil {
			return b, err
		}
		b.led = led
	}

	b.button = &buttonLine{logger: logger}
	b.button.line, err = chip.RequestLine(cfg.ButtonLine,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(b.button.event),
	)
	if err != nil {
		return b, fmt.Errorf("request button line %d: %w", cfg.ButtonLine, err)
	}

	if cfg.WatchdogPath != "" {
		wd, err := openWatchdog(cfg.WatchdogPath, logger)
		if err != nil {
			return b, err
		}
		b.watchdog = wd
	}

	logger.Info("Board opened", zap.String("chip", cfg.Chip))
	return b, nil
}

func (b *Board) output(name string, offset, initial int) (*outputLine, error) {
	line, err := b.chip.RequestLine(offset, gpiocdev.AsOutput(initial))
	if err != nil {
		return nil, fmt.Errorf("request %s line %d: %w", name, offset, err)
	}
	o := &outputLine{line: line, name: name, logger: b.logger}
	b.outputs = append(b.outputs, o)
	return o, nil
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

// Close switches the light off and releases all lines.
func (b *Board) Close() error {
	var err error
	if b.dac != nil {
		b.dac.Set(0)
		b.dac.Enable(false)
	}
	if wd, ok := b.watchdog.(*watchdogDevice); ok {
		err = multierr.Append(err, wd.Close())
	}
	if b.button != nil && b.button.line != nil {
		err = multierr.Append(err, b.button.line.Close())
	}
	// Power enable is first in the list and released last.
	for i := len(b.outputs) - 1; i >= 0; i-- {
		o := b.outputs[i]
		o.Set(false)
		err = multierr.Append(err, o.line.Close())
	}
	return multierr.Append(err, b.chip.Close())
}

// buttonLine is an input line whose falling edges are dispatched to the
// installed handler from the gpiocdev event goroutine.
type buttonLine struct {
	line   *gpiocdev.Line
	logger *zap.Logger

	mu      sync.Mutex
	handler func()
}

var _ hal.InputPin = (*buttonLine)(nil)

func (p *buttonLine) Get() bool {
	v, err := p.line.Value()
	if err != nil {
		p.logger.Warn("Button read failed", zap.Error(err))
		return true
	}
	return v != 0
}

func (p *buttonLine) SetInterrupt(handler func()) error {
	p.mu.Lock()
	p.handler = handler
	p.mu.Unlock()
	return nil
}

func (p *buttonLine) event(gpiocdev.LineEvent) {
	p.mu.Lock()
	h := p.handler
	p.mu.Unlock()
	if h != nil {
		h()
	}
}

type outputLine struct {
	line   *gpiocdev.Line
	name   string
	logger *zap.Logger
}

var _ hal.OutputPin = (*outputLine)(nil)

func (o *outputLine) Set(high bool) {
	v := 0
	if high {
		v = 1
	}
	if err := o.line.SetValue(v); err != nil {
		o.logger.Warn("Line write failed", zap.String("line", o.name), zap.Error(err))
	}
}

// powerLatch drops the power-enable line. On a host there is no hardware
// reset, so the process exits instead.
type powerLatch struct {
	line   *outputLine
	logger *zap.Logger
}

var _ hal.PowerLatch = (*powerLatch)(nil)

func (l *powerLatch) EmergencyStop() {
	l.line.Set(false)
	l.logger.Error("Emergency stop")
	_ = l.logger.Sync()
	os.Exit(1)
}

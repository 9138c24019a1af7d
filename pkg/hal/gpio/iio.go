// Package gpio is the Linux board backend: GPIO character device lines for
// the button and the power path switches, IIO sysfs attributes for the DAC
// and the sensors, and the kernel watchdog device.
package gpio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/hal"
	"github.com/itohio/golamp/pkg/units"
)

func writeAttr(path, value string) error {
	return os.WriteFile(path, []byte(value+"\n"), 0o644)
}

func readAttr(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

// sysfsDAC drives an IIO DAC channel through its raw and powerdown
// attributes.
type sysfsDAC struct {
	rawPath       string
	powerdownPath string
	logger        *zap.Logger
}

var _ hal.DAC = (*sysfsDAC)(nil)

func (d *sysfsDAC) Enable(on bool) {
	v := "1"
	if on {
		v = "0"
	}
	if err := writeAttr(d.powerdownPath, v); err != nil {
		d.logger.Warn("DAC enable failed", zap.Bool("on", on), zap.Error(err))
	}
}

func (d *sysfsDAC) Set(code uint16) {
	if err := writeAttr(d.rawPath, strconv.FormatUint(uint64(code), 10)); err != nil {
		d.logger.Warn("DAC write failed", zap.Uint16("code", code), zap.Error(err))
	}
}

// sysfsSensors reads raw integer attributes and scales them.
type sysfsSensors struct {
	voltagePath  string
	voltageScale float64
	tempPath     string
	tempScale    float64
}

var _ hal.Sensors = (*sysfsSensors)(nil)

func (s *sysfsSensors) Voltage() (units.Voltage, error) {
	raw, err := readAttr(s.voltagePath)
	if err != nil {
		return 0, fmt.Errorf("read voltage: %w", err)
	}
	return units.Volts(float64(raw) * s.voltageScale), nil
}

func (s *sysfsSensors) Temperature() (units.Temperature, error) {
	raw, err := readAttr(s.tempPath)
	if err != nil {
		return 0, fmt.Errorf("read temperature: %w", err)
	}
	return units.Celsius(float64(raw) * s.tempScale), nil
}

// watchdogDevice is the kernel watchdog. Any write restarts the timer.
type watchdogDevice struct {
	f      *os.File
	logger *zap.Logger
}

var _ hal.Watchdog = (*watchdogDevice)(nil)

func openWatchdog(path string, logger *zap.Logger) (*watchdogDevice, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open watchdog %s: %w", path, err)
	}
	return &watchdogDevice{f: f, logger: logger}, nil
}

func (w *watchdogDevice) Feed() {
	if _, err := w.f.Write([]byte{0}); err != nil {
		w.logger.Warn("Watchdog feed failed", zap.Error(err))
	}
}

// Close disarms the watchdog with the magic close character.
func (w *watchdogDevice) Close() error {
	if _, err := w.f.Write([]byte("V")); err != nil {
		w.f.Close()
		return fmt.Errorf("disarm watchdog: %w", err)
	}
	return w.f.Close()
}

type nopWatchdog struct{}

func (nopWatchdog) Feed() {}

// Package hal defines the physical boundary of the light: one button, the LED
// driver, the sensors, the watchdog and the power latch.
//
// Backends live in sub-packages: sim for tests and the host simulator, gpio for
// Linux boards, mcu for TinyGo targets.
package hal

import (
	"github.com/itohio/golamp/pkg/units"
)

// InputPin is a digital input.
type InputPin interface {
	// Get returns the current level, true for high.
	Get() bool
	// SetInterrupt installs handler for falling edges. The handler runs in
	// interrupt context and must not block.
	SetInterrupt(handler func()) error
}

// OutputPin is a digital output.
type OutputPin interface {
	Set(high bool)
}

// DAC is the 12-bit control input of the LED driver.
type DAC interface {
	Enable(on bool)
	Set(code uint16)
}

// Sensors provides raw, unsmoothed readings.
type Sensors interface {
	Voltage() (units.Voltage, error)
	Temperature() (units.Temperature, error)
}

// Watchdog resets the device unless fed regularly.
type Watchdog interface {
	Feed()
}

// PowerLatch controls the main power-enable line.
type PowerLatch interface {
	// EmergencyStop drops the power-enable line and resets. It does not return
	// on hardware.
	EmergencyStop()
}

// Board is the set of peripherals the firmware drives.
type Board struct {
	Button    InputPin  // Active low
	ButtonLED OutputPin // Optional indicator, may be nil

	Range OutputPin // High selects the high gain range
	Aux   OutputPin // Pre-regulator enable
	Boost OutputPin // Boost converter enable
	DAC   DAC

	Sensors  Sensors
	Watchdog Watchdog
	Power    PowerLatch
}

// NopPin is an OutputPin that ignores writes.
type NopPin struct{}

// Set does nothing.
func (NopPin) Set(bool) {}

var _ OutputPin = NopPin{}

// Package units holds the fixed-point physical quantities exchanged between the
// telemetry collaborator and the power governor.
//
// Readings are stored with 12 fractional bits so that comparisons and
// accumulations are exact integer operations on every target, including
// cores without a floating-point unit.
package units

import (
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"
)

const (
	fracBits = 12
	one      = 1 << fracBits
)

// Voltage is a battery voltage in volts.
type Voltage fixed.Int52_12

// Volts converts a floating-point voltage into a Voltage.
func Volts(v float64) Voltage {
	return Voltage(fromFloat(v))
}

// Fixed returns the underlying fixed-point value.
func (v Voltage) Fixed() fixed.Int52_12 { return fixed.Int52_12(v) }

// Float returns the voltage in volts.
func (v Voltage) Float() float64 { return toFloat(fixed.Int52_12(v)) }

func (v Voltage) String() string { return fmt.Sprintf("%.3fV", v.Float()) }

// Temperature is a die/board temperature in degrees Celsius.
type Temperature fixed.Int52_12

// Celsius converts a floating-point temperature into a Temperature.
func Celsius(c float64) Temperature {
	return Temperature(fromFloat(c))
}

// Fixed returns the underlying fixed-point value.
func (t Temperature) Fixed() fixed.Int52_12 { return fixed.Int52_12(t) }

// Float returns the temperature in degrees Celsius.
func (t Temperature) Float() float64 { return toFloat(fixed.Int52_12(t)) }

func (t Temperature) String() string { return fmt.Sprintf("%.2fC", t.Float()) }

// Scale converts a 12-bit converter count into a quantity, where fullScale
// is the value a count of 4096 would read. Backends use it for ADC inputs.
func Scale(raw uint16, fullScale fixed.Int52_12) fixed.Int52_12 {
	return fixed.Int52_12(int64(raw) * int64(fullScale) >> fracBits)
}

// FromFloat converts a float into the 52.12 representation used by this package.
func FromFloat(f float64) fixed.Int52_12 { return fromFloat(f) }

// One is 1.0 in the 52.12 representation.
const One = fixed.Int52_12(one)

func fromFloat(f float64) fixed.Int52_12 {
	return fixed.Int52_12(math.Round(f * one))
}

func toFloat(x fixed.Int52_12) float64 {
	return float64(x) / one
}

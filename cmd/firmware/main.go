//go:build tinygo

//go:generate tinygo flash -target=xiao

// Command firmware is the light firmware for a XIAO SAMD21 board.
package main

import (
	"context"
	"machine"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/device"
	"github.com/itohio/golamp/pkg/hal/mcu"
	"github.com/itohio/golamp/pkg/sched"
	"github.com/itohio/golamp/pkg/units"
)

var pins = mcu.Pins{
	Button:      machine.D1,
	ButtonLED:   machine.LED,
	Range:       machine.D2,
	Aux:         machine.D3,
	Boost:       machine.D4,
	PowerEnable: machine.D5,
	Voltage:     machine.A6,
	Temperature: machine.A7,
}

var scales = mcu.Scales{
	// 1:1 divider on the 3.3 V reference.
	Voltage: units.Volts(6.6).Fixed(),
	// TMP36: 10 mV per degree, 500 mV at 0 C.
	Temperature:       units.Celsius(330).Fixed(),
	TemperatureOffset: units.Celsius(50).Fixed(),
}

func main() {
	board, err := mcu.Open(pins, scales)
	if err != nil {
		println("board:", err.Error())
		machine.CPUReset()
	}

	dev, err := device.New(config.Default(), board.Board(), sched.NewRealClock(), nil, nil)
	if err != nil {
		println("device:", err.Error())
		machine.CPUReset()
	}

	// Only returns when the context is done, which never happens here.
	dev.Run(context.Background())
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/itohio/golamp/pkg/hal/sim"
	"github.com/itohio/golamp/pkg/state"
)

var errQuit = errors.New("quit")

// clickPeriod is how long each half of a scripted click lasts.
const clickPeriod = 80 * time.Millisecond

// console executes simulator commands, one per line:
//
//	press | release         button level
//	click [n]               n short presses
//	hold <duration>         press, wait, release
//	wait <duration>         let time pass
//	temp <celsius>          override the modeled temperature
//	battery <volts>         override the modeled battery voltage
//	status                  print the shared state
//	quit
type console struct {
	board *sim.Board
	state *state.State
	wait  func(time.Duration) error
	out   io.Writer
}

func (c *console) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "press":
		c.board.Button.Press()
		return nil
	case "release":
		c.board.Button.Release()
		return nil
	case "click":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return fmt.Errorf("click: invalid count %q", args[0])
			}
			n = v
		}
		for i := 0; i < n; i++ {
			c.board.Button.Press()
			if err := c.wait(clickPeriod); err != nil {
				return err
			}
			c.board.Button.Release()
			if err := c.wait(clickPeriod); err != nil {
				return err
			}
		}
		return nil
	case "hold":
		d, err := durationArg(cmd, args)
		if err != nil {
			return err
		}
		c.board.Button.Press()
		if err := c.wait(d); err != nil {
			return err
		}
		c.board.Button.Release()
		return nil
	case "wait":
		d, err := durationArg(cmd, args)
		if err != nil {
			return err
		}
		return c.wait(d)
	case "temp":
		v, err := floatArg(cmd, args)
		if err != nil {
			return err
		}
		c.board.SetTemperature(v)
		return nil
	case "battery":
		v, err := floatArg(cmd, args)
		if err != nil {
			return err
		}
		c.board.SetBattery(v)
		return nil
	case "status":
		s := c.state.Snapshot()
		fmt.Fprintf(c.out, "on=%t unlocked=%t desired=%d gradual=%d voltage=%s temperature=%s output=%.3f\n",
			s.On, s.Unlocked, s.Desired, s.Gradual, s.Voltage, s.Temperature, c.board.Output())
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func durationArg(cmd string, args []string) (time.Duration, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected a duration", cmd)
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", cmd, err)
	}
	return d, nil
}

func floatArg(cmd string, args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected a number", cmd)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", cmd, err)
	}
	return v, nil
}

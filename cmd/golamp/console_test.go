package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/device"
	"github.com/itohio/golamp/pkg/hal/sim"
	"github.com/itohio/golamp/pkg/sched"
)

func newConsole(t *testing.T) (*console, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.Sim.NoiseLevel = 0

	clock := sched.NewSimClock()
	board := sim.New(&cfg.Sim, clock.Now, nil)
	dev, err := device.New(cfg, board.Board(), clock, nil, nil)
	require.NoError(t, err)
	t.Cleanup(dev.Close)

	var out bytes.Buffer
	return &console{
		board: board,
		state: dev.State,
		out:   &out,
		wait: func(d time.Duration) error {
			return dev.Scheduler.RunFor(context.Background(), d)
		},
	}, &out
}

func TestConsole_Script(t *testing.T) {
	c, out := newConsole(t)

	script := []string{
		"# unlock and switch on",
		"wait 100ms",
		"click 3",
		"wait 1s",
		"",
		"click",
		"wait 1s",
		"status",
	}
	for _, line := range script {
		require.NoError(t, c.exec(line), line)
	}

	assert.Contains(t, out.String(), "on=true unlocked=true desired=27 gradual=27")

	require.NoError(t, c.exec("hold 1s"))
	require.NoError(t, c.exec("temp 45.5"))
	require.NoError(t, c.exec("battery 3.9"))
	assert.ErrorIs(t, c.exec("quit"), errQuit)
}

func TestConsole_Errors(t *testing.T) {
	c, _ := newConsole(t)

	tests := []string{
		"jump",
		"click zero",
		"click 0",
		"hold",
		"wait soon",
		"temp",
		"battery lots",
	}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			err := c.exec(line)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, errQuit)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

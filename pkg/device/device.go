// Package device assembles the light: shared state, button input, governor,
// telemetry and UI tasks on one cooperative scheduler.
package device

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/button"
	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/curve"
	"github.com/itohio/golamp/pkg/hal"
	"github.com/itohio/golamp/pkg/power"
	"github.com/itohio/golamp/pkg/sched"
	"github.com/itohio/golamp/pkg/state"
	"github.com/itohio/golamp/pkg/telemetry"
	"github.com/itohio/golamp/pkg/ui"
)

// Device is a wired light.
type Device struct {
	Scheduler *sched.Scheduler
	State     *state.State
	Governor  *power.Governor
	Telemetry *telemetry.Monitor
	Torch     *ui.Torch
}

// New wires the tasks for board on clock. The power path is shut down before
// returning. table nil selects the generated default curve.
func New(cfg *config.Config, board hal.Board, clock sched.Clock, table *curve.Table, logger *zap.Logger) (*Device, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if table == nil {
		table = &curve.Default
	}

	st := state.New()
	s := sched.New(clock, logger)

	deb, err := button.NewDebouncer(cfg.Button, board.Button, board.ButtonLED, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create debouncer: %w", err)
	}
	gestures := button.NewGestures(cfg.Button, deb.Subscribe(), logger)

	paths := power.NewPaths(board, table, cfg.Governor.BringUpDelay, logger)
	paths.Off()
	gov := power.New(cfg.Governor, st, paths, logger)

	mon := telemetry.NewMonitor(cfg.Telemetry, board, st, logger)
	paths.OnBringUp(mon.Poke)

	torch := ui.NewTorch(cfg.UI, gov, st, gestures.Events(), deb.Subscribe(), logger)

	s.Spawn("telemetry", mon.Run)
	s.Spawn("debounce", deb.Run)
	s.Spawn("gestures", gestures.Run)
	s.Spawn("ui", torch.Run)
	s.Spawn("governor", gov.Run)

	return &Device{
		Scheduler: s,
		State:     st,
		Governor:  gov,
		Telemetry: mon,
		Torch:     torch,
	}, nil
}

// Run schedules the tasks until ctx is done.
func (d *Device) Run(ctx context.Context) error {
	return d.Scheduler.Run(ctx)
}

// Close releases the task goroutines. Run must have returned.
func (d *Device) Close() {
	d.Scheduler.Close()
}

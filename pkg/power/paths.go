package power

import (
	"time"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/curve"
	"github.com/itohio/golamp/pkg/hal"
	"github.com/itohio/golamp/pkg/sched"
)

// Paths drives the LED power path: pre-regulator (aux), boost converter,
// gain range selector and DAC.
type Paths struct {
	aux   hal.OutputPin
	boost hal.OutputPin
	rng   hal.OutputPin
	dac   hal.DAC

	table     *curve.Table
	settle    time.Duration
	onBringUp func()
	logger    *zap.Logger

	powered bool
}

// NewPaths creates the power path driver. settle is the delay between the
// pre-regulator and the boost converter on bring-up.
func NewPaths(board hal.Board, table *curve.Table, settle time.Duration, logger *zap.Logger) *Paths {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Paths{
		aux:    board.Aux,
		boost:  board.Boost,
		rng:    board.Range,
		dac:    board.DAC,
		table:  table,
		settle: settle,
		logger: logger.Named("paths"),
	}
}

// OnBringUp installs a hook run after every power-up sequence.
func (p *Paths) OnBringUp(fn func()) {
	p.onBringUp = fn
}

// Powered reports whether the rails are up.
func (p *Paths) Powered() bool {
	return p.powered
}

// Apply configures the path for level. Level 0 shuts everything down; a
// non-zero level from the shut down state first runs the bring-up sequence,
// suspending t for the settle delay.
func (p *Paths) Apply(t *sched.Task, level uint8) {
	entry, ok := p.table.Lookup(level)
	if !ok {
		p.Off()
		return
	}
	if !p.powered {
		p.bringUp(t)
	}
	p.dac.Set(entry.Code)
	p.rng.Set(entry.HighRange)
}

// Off shuts the path down: DAC to zero and disabled, low range, rails off.
func (p *Paths) Off() {
	p.dac.Set(0)
	p.dac.Enable(false)
	p.rng.Set(false)
	p.aux.Set(false)
	p.boost.Set(false)
	if p.powered {
		p.logger.Debug("Power down")
	}
	p.powered = false
}

func (p *Paths) bringUp(t *sched.Task) {
	p.logger.Debug("Bring up", zap.Duration("at", t.Now()))

	p.dac.Set(0)
	p.dac.Enable(true)
	p.rng.Set(false)
	p.aux.Set(true)
	t.Sleep(p.settle)
	p.boost.Set(true)
	p.powered = true

	if p.onBringUp != nil {
		p.onBringUp()
	}
}

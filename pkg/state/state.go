// Package state is the process-wide shared state store.
//
// Every field is an independent Cell guarded by its own mutex. Locks are only
// ever held inside a single Get/Set/Update call, so no task can hold one across
// a suspension point and no task can block another indefinitely.
package state

import (
	"sync"

	"github.com/itohio/golamp/pkg/units"
)

// Cell is a single value guarded by a short-held mutex.
// The zero value holds the zero value of T and is ready to use.
type Cell[T any] struct {
	mu sync.Mutex
	v  T
}

// NewCell returns a cell holding v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{v: v}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

// Set replaces the current value.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// Swap replaces the current value and returns the previous one.
func (c *Cell[T]) Swap(v T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.v
	c.v = v
	return old
}

// Update applies fn to the value as one read-modify-write and returns the result.
// fn must not block.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = fn(c.v)
	return c.v
}

// State holds the cells shared by all tasks.
type State struct {
	// On is true while the light is in a lit mode.
	On Cell[bool]
	// Unlocked is false while the light is in lockout.
	Unlocked Cell[bool]

	// Desired is the brightness target set by the UI.
	Desired Cell[uint8]
	// Gradual is the rate-limited brightness converging to Desired.
	Gradual Cell[uint8]

	// Voltage and Temperature are the latest smoothed telemetry readings.
	Voltage     Cell[units.Voltage]
	Temperature Cell[units.Temperature]
}

// New returns a State with start-up defaults: off, locked, zero levels and
// zero readings. Zero readings keep the output clamped until telemetry lands.
func New() *State {
	return &State{}
}

// Snapshot is a point-in-time copy of State for diagnostics.
type Snapshot struct {
	On          bool
	Unlocked    bool
	Desired     uint8
	Gradual     uint8
	Voltage     units.Voltage
	Temperature units.Temperature
}

// Snapshot copies every cell. Cells are read one by one, so the copy is not
// atomic across cells.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		On:          s.On.Get(),
		Unlocked:    s.Unlocked.Get(),
		Desired:     s.Desired.Get(),
		Gradual:     s.Gradual.Get(),
		Voltage:     s.Voltage.Get(),
		Temperature: s.Temperature.Get(),
	}
}

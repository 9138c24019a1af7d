// Package button turns the single push button into gestures.
//
// A debouncer task converts pin edges into Press/Depress raw states, and a
// gesture task converts the timing of raw states into Click(n), Hold(n) and
// HoldEnd events.
package button

import "fmt"

// RawState is a debounced button state.
type RawState uint8

const (
	// Depress is a confirmed release.
	Depress RawState = iota
	// Press is a confirmed press.
	Press
)

func (s RawState) String() string {
	if s == Press {
		return "Press"
	}
	return "Depress"
}

// Kind is the gesture kind.
type Kind uint8

const (
	// Click is n short presses followed by silence.
	Click Kind = iota + 1
	// Hold is n-1 short presses followed by a long one.
	Hold
	// HoldEnd is the release ending a Hold.
	HoldEnd
)

func (k Kind) String() string {
	switch k {
	case Click:
		return "Click"
	case Hold:
		return "Hold"
	case HoldEnd:
		return "HoldEnd"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MaxCount is the largest press count an event carries. Longer sequences
// collapse to it.
const MaxCount = 7

// Event is a gesture.
type Event struct {
	Kind Kind
	// Count is 1..MaxCount for Click and Hold, 0 for HoldEnd.
	Count uint8
}

// NewClick returns Click(n) with n clamped to 1..MaxCount.
func NewClick(n int) Event { return Event{Kind: Click, Count: clamp(n)} }

// NewHold returns Hold(n) with n clamped to 1..MaxCount.
func NewHold(n int) Event { return Event{Kind: Hold, Count: clamp(n)} }

// NewHoldEnd returns HoldEnd.
func NewHoldEnd() Event { return Event{Kind: HoldEnd} }

// Is reports whether e is the given kind with the given count. Count is
// ignored for HoldEnd.
func (e Event) Is(kind Kind, count int) bool {
	if e.Kind != kind {
		return false
	}
	return kind == HoldEnd || e.Count == clamp(count)
}

func (e Event) String() string {
	if e.Kind == HoldEnd {
		return "HoldEnd"
	}
	return fmt.Sprintf("%s(%d)", e.Kind, e.Count)
}

func clamp(n int) uint8 {
	switch {
	case n < 1:
		return 1
	case n > MaxCount:
		return MaxCount
	default:
		return uint8(n)
	}
}

// Package curve maps the 256 brightness levels onto the two gain paths of the
// LED driver.
//
// The table is computed offline by Generate and embedded as Default; nothing in
// this package runs on the control path except Table.Lookup.
package curve

//go:generate go run ../../cmd/curvegen -o table_gen.go

import (
	"github.com/chewxy/math32"
)

const (
	// FullScale is the number of DAC codes.
	FullScale = 4096
	// MaxCode is the largest DAC code.
	MaxCode = FullScale - 1
	// Steps is the number of table entries.
	Steps = 256
)

// Params describes the analog front-end used for calibration.
type Params struct {
	// SenseRatio is how much weaker the low range is than the high range.
	SenseRatio float32
	// HighRangeOffset is added to every high range output so that the lowest
	// high range codes never look brighter than the top of the low range.
	HighRangeOffset float32
	// Strict drops codes where the two ranges overlap.
	Strict bool
	// LowCeiling drops low range codes at or above it in strict mode.
	LowCeiling uint16
	// HighFloor drops high range codes at or below it in strict mode.
	HighFloor uint16
}

// DefaultParams returns the parameters the Default table was generated with.
func DefaultParams() Params {
	return Params{
		SenseRatio:      412,
		HighRangeOffset: 0,
		Strict:          true,
		LowCeiling:      3000,
		HighFloor:       10,
	}
}

// Entry is one physical driver configuration.
type Entry struct {
	HighRange bool
	Code      uint16
}

// Output returns the normalized light output of e, 1.0 being the high range at
// full scale.
//
// Every intermediate is forced to float32 so the result does not depend on
// whether the compiler fuses multiply-adds on the build host.
func (e Entry) Output(p Params) float32 {
	v := float32(e.Code) / FullScale
	if e.HighRange {
		return float32(v + p.HighRangeOffset)
	}
	scale := float32(1 / p.SenseRatio)
	return float32(v * scale)
}

// Candidates enumerates the usable configurations: low range first, then high
// range, codes ascending within each.
func Candidates(p Params) []Entry {
	out := make([]Entry, 0, 2*FullScale)
	for _, high := range []bool{false, true} {
		for code := uint16(0); code <= MaxCode; code++ {
			if !usable(p, high, code) {
				continue
			}
			out = append(out, Entry{HighRange: high, Code: code})
		}
	}
	return out
}

func usable(p Params, high bool, code uint16) bool {
	if !high && code == 0 {
		// no output at all
		return false
	}
	if p.Strict {
		if high && code <= p.HighFloor {
			return false
		}
		if !high && code >= p.LowCeiling {
			return false
		}
	}
	return true
}

// Target returns the perceptual target for table index i: ((i+1)/256)^4.
func Target(i int) float32 {
	x := float32(i+1) / Steps
	x2 := float32(x * x)
	return float32(x2 * x2)
}

// Generate computes the table for p by nearest-match search against a fourth
// power curve. Ties keep the candidate that was enumerated first.
func Generate(p Params) Table {
	cands := Candidates(p)
	outs := make([]float32, len(cands))
	for i, c := range cands {
		outs[i] = c.Output(p)
	}

	var t Table
	for i := range t {
		target := Target(i)
		best := 0
		bestDist := math32.Inf(1)
		for j, out := range outs {
			d := math32.Abs(float32(out - target))
			if d < bestDist {
				best, bestDist = j, d
			}
		}
		t[i] = cands[best]
	}
	return t
}

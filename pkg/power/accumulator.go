package power

import "golang.org/x/image/math/fixed"

// accumulator is a saturating fixed-point integral.
type accumulator struct {
	v     fixed.Int52_12
	floor fixed.Int52_12
	ceil  fixed.Int52_12
}

func (a *accumulator) add(x fixed.Int52_12) {
	v := a.v + x
	switch {
	case v < a.floor:
		v = a.floor
	case v > a.ceil:
		v = a.ceil
	}
	a.v = v
}

// reset zeroes the integral, clamped into its bounds.
func (a *accumulator) reset() {
	a.v = 0
	a.add(0)
}

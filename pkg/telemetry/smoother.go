package telemetry

import "golang.org/x/image/math/fixed"

// smoother is a first-order low-pass filter with a weight of 1/8 per sample.
type smoother struct {
	v fixed.Int52_12
}

func newSmoother(seed fixed.Int52_12) smoother {
	return smoother{v: seed}
}

// update folds in x and returns the new estimate.
func (s *smoother) update(x fixed.Int52_12) fixed.Int52_12 {
	s.v += x/8 - s.v/8
	return s.v
}

// Package series provides magnitude series helpers and circular summary
// statistics for rose diagrams.
//
// A rose diagram maps a series onto directional bins; the statistics here
// treat each bin's bisector as an angle and the magnitudes as weights,
// yielding the standard circular moments (mean direction, mean resultant
// length, circular variance).
package series

import "math"

// Sum returns the sum of the series.
func Sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// Max returns the largest value in the series, or 0 for an empty series.
func Max(values []float64) float64 {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// BisectorAngles returns the bin bisector angles, in radians, for n bins
// starting at 12 o'clock. Clockwise matches the layout engine's default
// direction.
func BisectorAngles(n int, clockwise bool) []float64 {
	if n <= 0 {
		return nil
	}
	dir := 1.0
	if clockwise {
		dir = -1.0
	}
	half := math.Pi / float64(n)
	out := make([]float64, n)
	for k := range out {
		out[k] = math.Pi/2 + dir*(2*math.Pi*float64(k)/float64(n)+half)
	}
	return out
}

package series

import (
	"encoding/json"
	"math"
)

// CircularMean calculates the weighted mean direction of circular data
// (angles in radians). A nil weights slice means equal weights.
func CircularMean(angles, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}
	var sumSin, sumCos float64
	for i, a := range angles {
		w := 1.0
		if weights != nil && i < len(weights) {
			w = weights[i]
		}
		sumSin += w * math.Sin(a)
		sumCos += w * math.Cos(a)
	}
	return math.Atan2(sumSin, sumCos)
}

// MeanResultantLength calculates the mean resultant length R, ranging from
// 0 (uniform spread) to 1 (all weight in one direction).
func MeanResultantLength(angles, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}
	var sumSin, sumCos, sumWeights float64
	for i, a := range angles {
		w := 1.0
		if weights != nil && i < len(weights) {
			w = weights[i]
		}
		sumSin += w * math.Sin(a)
		sumCos += w * math.Cos(a)
		sumWeights += w
	}
	if sumWeights == 0 {
		return 0
	}
	return math.Sqrt(sumSin*sumSin+sumCos*sumCos) / sumWeights
}

// CircularVariance calculates the circular variance 1 - R.
func CircularVariance(angles, weights []float64) float64 {
	return 1 - MeanResultantLength(angles, weights)
}

// CircularStdDev calculates the circular standard deviation
// sqrt(-2 ln R). It is +Inf when the distribution is uniform (R = 0).
func CircularStdDev(angles, weights []float64) float64 {
	r := MeanResultantLength(angles, weights)
	return math.Sqrt(-2 * math.Log(r))
}

// RayleighUniform tests whether the weighted directions are consistent
// with a uniform circular distribution, using the large-n approximation of
// the Rayleigh test at the 0.05 level.
func RayleighUniform(angles, weights []float64) bool {
	r := MeanResultantLength(angles, weights)
	n := float64(len(angles))
	z := n * r * r
	return math.Exp(-z) > 0.05
}

// Summary holds the circular moments of a binned magnitude series.
type Summary struct {
	Bins            int     `json:"bins"`
	Total           float64 `json:"total"`
	MeanDirection   float64 `json:"mean_direction"`   // radians
	ResultantLength float64 `json:"resultant_length"` // R in [0,1]
	Variance        float64 `json:"variance"`         // 1 - R
	StdDev          float64 `json:"std_dev"`          // sqrt(-2 ln R)
	Uniform         bool    `json:"uniform"`          // Rayleigh test outcome
}

// MarshalJSON omits std_dev when it is not finite (R = 0 makes it
// unbounded, and JSON cannot represent infinity).
func (s Summary) MarshalJSON() ([]byte, error) {
	type alias Summary
	out := struct {
		alias
		StdDev *float64 `json:"std_dev,omitempty"`
	}{alias: alias(s)}
	if !math.IsInf(s.StdDev, 0) && !math.IsNaN(s.StdDev) {
		out.StdDev = &s.StdDev
	}
	return json.Marshal(out)
}

// MeanDirectionDegrees returns the mean direction normalized to [0, 360).
func (s Summary) MeanDirectionDegrees() float64 {
	deg := s.MeanDirection * 180 / math.Pi
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

// Summarize computes the circular summary of a magnitude series laid out
// over its own bin count, weighting each bin bisector by its magnitude.
func Summarize(values []float64, clockwise bool) Summary {
	angles := BisectorAngles(len(values), clockwise)
	return Summary{
		Bins:            len(values),
		Total:           Sum(values),
		MeanDirection:   CircularMean(angles, values),
		ResultantLength: MeanResultantLength(angles, values),
		Variance:        CircularVariance(angles, values),
		StdDev:          CircularStdDev(angles, values),
		Uniform:         RayleighUniform(angles, values),
	}
}

// Package analytics provides the shared types and numeric helpers for the
// quality-metrics statistical engine (descriptive stats, trend, correlation,
// forecasting, insight synthesis).
package analytics

import "math"

// Series is an ordered sequence of samples paired index-for-index with epoch
// millisecond timestamps. Timestamps are expected ascending for trend and
// forecast use; this is a caller precondition and is not enforced here.
type Series struct {
	Values     []float64 `json:"values"`
	Timestamps []int64   `json:"timestamps"`
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s.Values)
}

// Mean calculates the mean of a slice of values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationVariance calculates the population variance (divide by n).
// Skewness and kurtosis reuse the same sigma, so this must stay by-n.
func PopulationVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(values))
}

// PopulationStdDev calculates the population standard deviation.
func PopulationStdDev(values []float64) float64 {
	return math.Sqrt(PopulationVariance(values))
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

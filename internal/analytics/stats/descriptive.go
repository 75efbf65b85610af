// Package stats implements the descriptive summarizer: order statistics,
// moments, and IQR outliers for a single numeric series.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/qualimetry/qualimetry/internal/analytics"
)

// Summary holds the descriptive statistics for one series. It is computed
// fresh on every call and never mutated afterwards.
type Summary struct {
	Count    int       `json:"count"`
	Mean     float64   `json:"mean"`
	Median   float64   `json:"median"`
	Mode     float64   `json:"mode"`
	StdDev   float64   `json:"std_dev"`
	Variance float64   `json:"variance"`
	Skewness float64   `json:"skewness"`
	Kurtosis float64   `json:"kurtosis"` // excess kurtosis (normal = 0)
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Range    float64   `json:"range"`
	Q1       float64   `json:"q1"`
	Q2       float64   `json:"q2"`
	Q3       float64   `json:"q3"`
	Outliers []float64 `json:"outliers"`
}

// Summarize computes descriptive statistics for the given values. The input
// is never mutated; order statistics work on a sorted copy.
func Summarize(values []float64) (*Summary, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("summarize: %w", analytics.ErrEmptyInput)
	}

	n := len(values)
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := analytics.Mean(values)
	variance := analytics.PopulationVariance(values)
	stdDev := math.Sqrt(variance)

	q1 := percentile(sorted, 0.25)
	q2 := percentile(sorted, 0.5)
	q3 := percentile(sorted, 0.75)

	summary := &Summary{
		Count:    n,
		Mean:     mean,
		Median:   median(sorted),
		Mode:     mode(values),
		StdDev:   stdDev,
		Variance: variance,
		Skewness: standardizedMoment(values, mean, stdDev, 3),
		Kurtosis: kurtosis(values, mean, stdDev),
		Min:      sorted[0],
		Max:      sorted[n-1],
		Range:    sorted[n-1] - sorted[0],
		Q1:       q1,
		Q2:       q2,
		Q3:       q3,
		Outliers: outliers(sorted, q1, q3),
	}

	return summary, nil
}

// median returns the middle element, or the average of the two middle
// elements for even counts. Expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// mode returns the most frequent value. Ties are broken by first occurrence
// in the original, unsorted order.
func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best := values[0]
	bestCount := counts[best]
	for _, v := range values {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

// percentile computes the p-quantile by linear interpolation on rank
// p*(n-1). Expects sorted input and p in [0,1].
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	rank := p * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// standardizedMoment computes mean(((x-mu)/sigma)^k), 0 for constant series.
func standardizedMoment(values []float64, mean, stdDev float64, k float64) float64 {
	if stdDev == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += math.Pow((v-mean)/stdDev, k)
	}
	return sum / float64(len(values))
}

// kurtosis returns excess kurtosis, 0 for constant series.
func kurtosis(values []float64, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	return standardizedMoment(values, mean, stdDev, 4) - 3
}

// outliers returns the values outside the Tukey fences [q1-1.5*IQR,
// q3+1.5*IQR], ascending for reproducibility. Expects sorted input.
func outliers(sorted []float64, q1, q3 float64) []float64 {
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	result := []float64{}
	for _, v := range sorted {
		if v < lower || v > upper {
			result = append(result, v)
		}
	}
	return result
}

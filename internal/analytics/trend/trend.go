// Package trend implements regression-based trend characterization,
// autocorrelation seasonality detection, and breakpoint detection. Its
// regression and seasonality primitives are shared with the forecaster.
package trend

import (
	"fmt"
	"math"

	"github.com/qualimetry/qualimetry/internal/analytics"
)

// Direction categorizes the overall movement of a series.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
	// DirectionCyclical is reserved for a seasonality-driven override; the
	// current classification rule never emits it.
	DirectionCyclical Direction = "cyclical"
)

// MinDataPoints is the minimum series length for trend analysis.
const MinDataPoints = 3

// Analysis is the result of trend characterization for one series.
type Analysis struct {
	Direction   Direction    `json:"direction"`
	Slope       float64      `json:"slope"`
	Strength    float64      `json:"strength"`   // |R^2|, clamped [0,1]
	Confidence  float64      `json:"confidence"` // derived, clamped [0,1]
	Seasonality Seasonality  `json:"seasonality"`
	Breakpoints []Breakpoint `json:"breakpoints"`
}

// Options controls optional analysis stages.
type Options struct {
	SeasonalityDetection bool
}

// Analyze fits a least-squares trend over the series and classifies it.
// Timestamps are expected ascending (caller precondition).
func Analyze(values []float64, timestamps []int64, opts Options) (*Analysis, error) {
	if len(values) < MinDataPoints {
		return nil, fmt.Errorf("trend analysis needs at least %d points, have %d: %w",
			MinDataPoints, len(values), analytics.ErrInsufficientData)
	}
	if len(values) != len(timestamps) {
		return nil, fmt.Errorf("values/timestamps length mismatch (%d vs %d): %w",
			len(values), len(timestamps), analytics.ErrInvalidInput)
	}

	x := NormalizeTimestamps(timestamps)
	slope, _, r2 := LinearRegression(x, values)

	analysis := &Analysis{
		Direction:   classify(slope, r2),
		Slope:       slope,
		Strength:    analytics.Clamp01(math.Abs(r2)),
		Confidence:  confidence(values, r2),
		Seasonality: Seasonality{},
		Breakpoints: detectBreakpoints(values, timestamps),
	}

	if opts.SeasonalityDetection {
		analysis.Seasonality = DetectSeasonality(values)
	}

	return analysis, nil
}

// classify applies the direction rule: stable when the fit is weak or the
// slope negligible, otherwise by slope sign.
func classify(slope, r2 float64) Direction {
	if math.Abs(r2) < 0.1 || math.Abs(slope) < 0.001 {
		return DirectionStable
	}
	if slope > 0 {
		return DirectionIncreasing
	}
	return DirectionDecreasing
}

// confidence derives a [0,1] score from R^2, adjusted for sample size and
// relative dispersion.
func confidence(values []float64, r2 float64) float64 {
	conf := r2

	n := len(values)
	if n < 10 {
		conf *= 0.8
	} else if n > 50 {
		conf *= 1.1
	}

	cv := coefficientOfVariation(values)
	if cv < 0.1 {
		conf *= 1.2
	} else if cv > 0.5 {
		conf *= 0.7
	}

	return analytics.Clamp01(conf)
}

// coefficientOfVariation returns stddev/|mean|. A zero mean with nonzero
// dispersion counts as unbounded variation.
func coefficientOfVariation(values []float64) float64 {
	mean := analytics.Mean(values)
	stdDev := analytics.PopulationStdDev(values)
	if mean == 0 {
		if stdDev == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return stdDev / math.Abs(mean)
}

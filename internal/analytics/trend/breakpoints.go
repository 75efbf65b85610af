package trend

import (
	"math"

	"github.com/qualimetry/qualimetry/internal/analytics"
)

// BreakpointKind categorizes a detected structural change.
type BreakpointKind string

const (
	BreakpointOutlier BreakpointKind = "outlier"
	// The window-mean rule below only ever produces outlier breakpoints;
	// the remaining kinds are valid output values reserved for future
	// detection rules.
	BreakpointTrendChange       BreakpointKind = "trend_change"
	BreakpointSeasonalityChange BreakpointKind = "seasonality_change"
)

// Breakpoint marks a point where the series deviates sharply from both of
// its neighboring windows.
type Breakpoint struct {
	Timestamp  int64          `json:"timestamp"`
	Kind       BreakpointKind `json:"kind"`
	Confidence float64        `json:"confidence"`
}

// minBreakpointPoints is the minimum series length for breakpoint scanning.
const minBreakpointPoints = 10

// detectBreakpoints slides a window of max(3, n/10) over the interior of the
// series and flags points deviating from both the preceding and following
// window means by more than twice the population variance.
func detectBreakpoints(values []float64, timestamps []int64) []Breakpoint {
	n := len(values)
	if n < minBreakpointPoints {
		return nil
	}

	window := n / 10
	if window < 3 {
		window = 3
	}

	threshold := 2 * analytics.PopulationVariance(values)
	if threshold == 0 {
		return nil
	}

	var breakpoints []Breakpoint
	for i := window; i+window < n; i++ {
		beforeMean := analytics.Mean(values[i-window : i])
		afterMean := analytics.Mean(values[i+1 : i+1+window])

		beforeDiff := math.Abs(values[i] - beforeMean)
		afterDiff := math.Abs(values[i] - afterMean)

		if beforeDiff > threshold && afterDiff > threshold {
			breakpoints = append(breakpoints, Breakpoint{
				Timestamp:  timestamps[i],
				Kind:       BreakpointOutlier,
				Confidence: math.Min(0.9, (beforeDiff+afterDiff)/(2*threshold)),
			})
		}
	}

	return breakpoints
}

// Package correlation implements pairwise association measures between two
// equal-length series: Pearson, Spearman, and Kendall, with a coarse
// significance approximation.
package correlation

import (
	"fmt"
	"math"
	"sort"

	"github.com/qualimetry/qualimetry/internal/analytics"
	"github.com/qualimetry/qualimetry/internal/config"
)

// Method identifies a correlation measure.
type Method string

const (
	MethodPearson  Method = "pearson"
	MethodSpearman Method = "spearman"
	MethodKendall  Method = "kendall"
)

// Strength buckets the magnitude of a correlation coefficient.
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// MinDataPoints is the minimum series length for correlation analysis.
const MinDataPoints = 3

// Result is the outcome of one correlation method over a series pair.
type Result struct {
	Method         Method   `json:"method"`
	Correlation    float64  `json:"correlation"` // in [-1, 1]
	PValue         float64  `json:"p_value"`     // bucketed approximation, not an exact CDF
	Significant    bool     `json:"significant"` // p < 0.05
	Strength       Strength `json:"strength"`
	Interpretation string   `json:"interpretation"`
}

// Analyze runs every enabled correlation method over the pair and returns
// one result per method whose |coefficient| clears the configured minimum.
func Analyze(x, y []float64, cfg config.CorrelationConfig) ([]Result, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("series length mismatch (%d vs %d): %w",
			len(x), len(y), analytics.ErrInvalidInput)
	}
	if len(x) < MinDataPoints {
		return nil, fmt.Errorf("correlation needs at least %d points, have %d: %w",
			MinDataPoints, len(x), analytics.ErrInvalidInput)
	}

	type methodFunc struct {
		method  Method
		enabled bool
		fn      func(x, y []float64) float64
	}

	methods := []methodFunc{
		{MethodPearson, cfg.EnablePearson, Pearson},
		{MethodSpearman, cfg.EnableSpearman, Spearman},
		{MethodKendall, cfg.EnableKendall, Kendall},
	}

	results := []Result{}
	for _, m := range methods {
		if !m.enabled {
			continue
		}
		r := m.fn(x, y)
		if math.Abs(r) < cfg.MinCorrelation {
			continue
		}
		results = append(results, buildResult(m.method, r, len(x)))
	}

	return results, nil
}

// buildResult derives the significance and interpretation fields for a
// computed coefficient.
func buildResult(method Method, r float64, n int) Result {
	p := approximatePValue(r, n)
	result := Result{
		Method:      method,
		Correlation: r,
		PValue:      p,
		Significant: p < 0.05,
		Strength:    strength(r),
	}
	result.Interpretation = interpret(result)
	return result
}

// Pearson computes the product-moment correlation, 0 when either series is
// constant.
func Pearson(x, y []float64) float64 {
	n := len(x)
	meanX := analytics.Mean(x)
	meanY := analytics.Mean(y)

	var numerator, denomX, denomY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	denom := math.Sqrt(denomX * denomY)
	if denom == 0 {
		return 0
	}
	return numerator / denom
}

// Spearman rank-transforms both series and applies the Pearson formula.
// Ranks are assigned by sorted position with stable ordering; tied values do
// NOT receive averaged ranks, which differs from the textbook definition
// when duplicates exist.
func Spearman(x, y []float64) float64 {
	return Pearson(ranks(x), ranks(y))
}

// ranks assigns rank 1..n by ascending value, ties broken by original
// position (stable sort).
func ranks(values []float64) []float64 {
	n := len(values)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return values[indices[a]] < values[indices[b]]
	})

	ranked := make([]float64, n)
	for rank, idx := range indices {
		ranked[idx] = float64(rank + 1)
	}
	return ranked
}

// Kendall computes tau-a over all unordered pairs: (concordant - discordant)
// / (concordant + discordant), 0 when every pair is tied in x or y.
func Kendall(x, y []float64) float64 {
	n := len(x)
	concordant := 0
	discordant := 0

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			dx := x[j] - x[i]
			dy := y[j] - y[i]
			product := dx * dy
			if product > 0 {
				concordant++
			} else if product < 0 {
				discordant++
			}
		}
	}

	total := concordant + discordant
	if total == 0 {
		return 0
	}
	return float64(concordant-discordant) / float64(total)
}

// approximatePValue maps the t-statistic t = r*sqrt((n-2)/(1-r^2)) through
// fixed critical-value buckets. This is a coarse lookup, not a Student's-t
// CDF; it is adequate for significance flagging at alpha = 0.05 only.
func approximatePValue(r float64, n int) float64 {
	if n <= 2 {
		return 0.5
	}

	denom := 1 - r*r
	if denom <= 0 {
		// |r| = 1: the t-statistic diverges, report the smallest bucket.
		return 0.001
	}

	t := math.Abs(r * math.Sqrt(float64(n-2)/denom))
	switch {
	case t > 3.291:
		return 0.001
	case t > 2.576:
		return 0.01
	case t > 1.96:
		return 0.05
	case t > 1.645:
		return 0.1
	default:
		return 0.5
	}
}

// strength buckets |r| at the 0.3 and 0.7 cutoffs.
func strength(r float64) Strength {
	abs := math.Abs(r)
	switch {
	case abs >= 0.7:
		return StrengthStrong
	case abs >= 0.3:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// interpret composes a human-readable summary of direction, strength, and
// significance.
func interpret(r Result) string {
	direction := "positive"
	if r.Correlation < 0 {
		direction = "negative"
	}

	significance := "not statistically significant"
	if r.Significant {
		significance = "statistically significant"
	}

	return fmt.Sprintf("%s %s correlation (%s, %.3f), %s",
		r.Strength, direction, r.Method, r.Correlation, significance)
}

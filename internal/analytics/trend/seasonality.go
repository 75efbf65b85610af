package trend

import "github.com/qualimetry/qualimetry/internal/analytics"

// Seasonality describes detected periodicity in a series.
type Seasonality struct {
	Detected bool    `json:"detected"`
	Period   int     `json:"period"`   // in samples
	Strength float64 `json:"strength"` // autocorrelation at the detected lag
}

// minSeasonalityPoints is the minimum series length for seasonality
// detection; shorter series yield an empty descriptor.
const minSeasonalityPoints = 20

// seasonalityThreshold is the autocorrelation above which a lag counts as a
// detected period.
const seasonalityThreshold = 0.3

// DetectSeasonality scans autocorrelation at lags 1..min(20, n/2) and
// reports the strongest lag when it exceeds the detection threshold.
func DetectSeasonality(values []float64) Seasonality {
	n := len(values)
	if n < minSeasonalityPoints {
		return Seasonality{}
	}

	mean := analytics.Mean(values)
	variance := analytics.PopulationVariance(values)
	if variance == 0 {
		return Seasonality{}
	}

	maxLag := n / 2
	if maxLag > 20 {
		maxLag = 20
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := 1; lag <= maxLag; lag++ {
		corr := autocorrelation(values, mean, variance, lag)
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestCorr <= seasonalityThreshold {
		return Seasonality{}
	}

	return Seasonality{
		Detected: true,
		Period:   bestLag,
		Strength: bestCorr,
	}
}

// autocorrelation computes the lagged self-correlation
// sum((x_i - mu)(x_{i+lag} - mu)) / ((n-lag) * variance).
func autocorrelation(values []float64, mean, variance float64, lag int) float64 {
	n := len(values)
	sum := 0.0
	for i := 0; i+lag < n; i++ {
		sum += (values[i] - mean) * (values[i+lag] - mean)
	}
	return sum / (float64(n-lag) * variance)
}

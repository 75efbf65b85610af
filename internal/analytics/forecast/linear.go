package forecast

import (
	"fmt"

	"github.com/qualimetry/qualimetry/internal/analytics/trend"
)

// LinearForecaster projects the least-squares line fitted against sample
// index positions.
type LinearForecaster struct{}

// NewLinearForecaster creates a new linear forecaster.
func NewLinearForecaster() *LinearForecaster {
	return &LinearForecaster{}
}

func init() {
	RegisterForecaster("linear", NewLinearForecaster())
}

// Name returns the method name.
func (f *LinearForecaster) Name() string {
	return "linear"
}

// Forecast fits values against indices 0..n-1 and extrapolates horizon
// steps. Predictions are clamped at zero.
func (f *LinearForecaster) Forecast(values []float64, horizon int) ([]float64, []float64, error) {
	n := len(values)
	if n < 2 {
		return nil, nil, fmt.Errorf("linear forecast needs at least 2 points, have %d", n)
	}

	slope, intercept, _ := trend.LinearRegression(trend.IndexPositions(n), values)

	fitted := make([]float64, n)
	for i := range fitted {
		fitted[i] = intercept + slope*float64(i)
	}

	predictions := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		predictions[i] = intercept + slope*float64(n+i)
	}

	return clampNonNegative(predictions), fitted, nil
}

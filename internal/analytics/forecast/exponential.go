package forecast

import "fmt"

// smoothingAlpha is the fixed single-parameter smoothing factor.
const smoothingAlpha = 0.3

// ExponentialForecaster implements single-parameter exponential smoothing
// with a fixed alpha.
type ExponentialForecaster struct{}

// NewExponentialForecaster creates a new exponential smoothing forecaster.
func NewExponentialForecaster() *ExponentialForecaster {
	return &ExponentialForecaster{}
}

func init() {
	RegisterForecaster("exponential", NewExponentialForecaster())
}

// Name returns the method name.
func (f *ExponentialForecaster) Name() string {
	return "exponential"
}

// Forecast seeds the projection with the last observation and iterates
// forecast = alpha*last + (1-alpha)*forecast per step.
//
// Named approximation: because `last` is fixed at the final observation, the
// iteration is already at its fixed point and every projected value equals
// the last observation. This is NOT the textbook exponential-smoothing
// recursion; it reproduces the upstream behavior on purpose.
func (f *ExponentialForecaster) Forecast(values []float64, horizon int) ([]float64, []float64, error) {
	n := len(values)
	if n == 0 {
		return nil, nil, fmt.Errorf("exponential forecast needs a non-empty series")
	}

	// In-sample fit via the standard one-step-ahead smoothing recursion.
	fitted := make([]float64, n)
	fitted[0] = values[0]
	for i := 1; i < n; i++ {
		fitted[i] = smoothingAlpha*values[i-1] + (1-smoothingAlpha)*fitted[i-1]
	}

	last := values[n-1]
	projection := last
	predictions := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		projection = smoothingAlpha*last + (1-smoothingAlpha)*projection
		predictions[i] = projection
	}

	return clampNonNegative(predictions), fitted, nil
}

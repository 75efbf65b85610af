package forecast

import (
	"fmt"

	"github.com/qualimetry/qualimetry/internal/analytics/trend"
)

// quadraticCoefficient is the fixed leading coefficient of the degree-2 fit.
const quadraticCoefficient = 0.001

// PolynomialForecaster projects a degree-2 curve a*x^2 + b*x + c.
//
// Named approximation: `a` is pinned at a small constant instead of being
// solved from the normal equations; b and c are then back-solved by an OLS
// line fit on the residual y - a*x^2. This is not a true least-squares
// quadratic fit and is kept deliberately.
type PolynomialForecaster struct{}

// NewPolynomialForecaster creates a new degree-2 polynomial forecaster.
func NewPolynomialForecaster() *PolynomialForecaster {
	return &PolynomialForecaster{}
}

func init() {
	RegisterForecaster("polynomial", NewPolynomialForecaster())
}

// Name returns the method name.
func (f *PolynomialForecaster) Name() string {
	return "polynomial"
}

// Forecast fits the fixed-a quadratic against sample indices and projects
// horizon steps, clamped at zero.
func (f *PolynomialForecaster) Forecast(values []float64, horizon int) ([]float64, []float64, error) {
	n := len(values)
	if n < 3 {
		return nil, nil, fmt.Errorf("polynomial forecast needs at least 3 points, have %d", n)
	}

	x := trend.IndexPositions(n)

	// Back-solve b and c from the residual after removing the fixed
	// quadratic term.
	adjusted := make([]float64, n)
	for i := range values {
		adjusted[i] = values[i] - quadraticCoefficient*x[i]*x[i]
	}
	b, c, _ := trend.LinearRegression(x, adjusted)

	evaluate := func(xi float64) float64 {
		return quadraticCoefficient*xi*xi + b*xi + c
	}

	fitted := make([]float64, n)
	for i := range fitted {
		fitted[i] = evaluate(x[i])
	}

	predictions := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		predictions[i] = evaluate(float64(n + i))
	}

	return clampNonNegative(predictions), fitted, nil
}

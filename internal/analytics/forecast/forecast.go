// Package forecast implements short-horizon projection over a numeric series
// via independent per-method forecasters plus an ensemble combiner. A single
// method's failure never aborts the batch.
package forecast

import (
	"fmt"
	"math"

	"github.com/qualimetry/qualimetry/internal/analytics"
	"github.com/qualimetry/qualimetry/internal/analytics/trend"
	"github.com/qualimetry/qualimetry/internal/config"
	"github.com/qualimetry/qualimetry/internal/logging"
)

// MinDataPoints is the minimum series length for forecasting.
const MinDataPoints = 10

// Per-method accuracy is a fixed constant rather than a computed fit-quality
// metric. Known limitation, kept for parity with downstream consumers.
const (
	methodAccuracy   = 0.8
	ensembleAccuracy = 0.85
)

// Bound is a (lower, upper) confidence interval around one prediction.
type Bound struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ErrorMetrics are in-sample fit metrics (fitted vs actual).
type ErrorMetrics struct {
	MAE  float64 `json:"mae"`
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	MAPE float64 `json:"mape"`
}

// Result is the projection produced by one method (or the ensemble).
type Result struct {
	Method      string            `json:"method"`
	Predictions []float64         `json:"predictions"`
	Bounds      []Bound           `json:"bounds"`
	Accuracy    float64           `json:"accuracy"`
	Metrics     ErrorMetrics      `json:"metrics"`
	Seasonality trend.Seasonality `json:"seasonality"`
}

// Forecaster is one projection method. Forecast returns horizon predictions
// plus the in-sample fitted values used for error metrics.
type Forecaster interface {
	// Name returns the method name.
	Name() string
	// Forecast projects horizon future values from the series.
	Forecast(values []float64, horizon int) (predictions, fitted []float64, err error)
}

var forecasterRegistry = make(map[string]Forecaster)

// RegisterForecaster adds a forecaster to the registry.
func RegisterForecaster(name string, forecaster Forecaster) {
	forecasterRegistry[name] = forecaster
}

// GetForecaster returns a forecaster by name.
func GetForecaster(name string) (Forecaster, error) {
	if forecaster, ok := forecasterRegistry[name]; ok {
		return forecaster, nil
	}
	return nil, fmt.Errorf("unknown forecaster: %s", name)
}

// ListForecasters returns the available forecaster names.
func ListForecasters() []string {
	names := make([]string, 0, len(forecasterRegistry))
	for name := range forecasterRegistry {
		names = append(names, name)
	}
	return names
}

// Run executes every configured method independently and appends the
// ensemble when at least two methods succeeded. Method failures are logged
// and their results omitted; only input-shape violations fail the call.
func Run(values []float64, timestamps []int64, horizon int, cfg config.ForecastingConfig, logger *logging.Logger) ([]Result, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("negative horizon %d: %w", horizon, analytics.ErrInvalidInput)
	}
	if len(values) < MinDataPoints {
		return nil, fmt.Errorf("forecast needs at least %d points, have %d: %w",
			MinDataPoints, len(values), analytics.ErrInsufficientData)
	}

	// Seasonality is characterized on the input series, not the projection.
	seasonality := trend.Seasonality{}
	if cfg.SeasonalityDetection {
		seasonality = trend.DetectSeasonality(values)
	}

	results := []Result{}
	for _, name := range cfg.Methods {
		forecaster, err := GetForecaster(name)
		if err != nil {
			logger.Warn("Skipping unknown forecast method", "method", name, "error", err)
			continue
		}

		// Each method is isolated: its failure must not abort the batch.
		predictions, fitted, err := forecaster.Forecast(values, horizon)
		if err != nil {
			logger.Warn("Forecast method failed", "method", name, "error", err)
			continue
		}

		results = append(results, Result{
			Method:      name,
			Predictions: predictions,
			Bounds:      confidenceBounds(predictions, methodAccuracy),
			Accuracy:    methodAccuracy,
			Metrics:     computeMetrics(values, fitted),
			Seasonality: seasonality,
		})
	}

	if len(results) >= 2 {
		results = append(results, combineEnsemble(results, horizon))
	}

	return results, nil
}

// confidenceBounds derives per-prediction intervals from the fixed accuracy:
// margin = prediction * (1 - accuracy) * 1.96, lower clamped at zero.
func confidenceBounds(predictions []float64, accuracy float64) []Bound {
	bounds := make([]Bound, len(predictions))
	for i, p := range predictions {
		margin := p * (1 - accuracy) * 1.96
		bounds[i] = Bound{
			Lower: math.Max(0, p-margin),
			Upper: p + margin,
		}
	}
	return bounds
}

// computeMetrics calculates in-sample error metrics of fitted vs actual.
func computeMetrics(actual, fitted []float64) ErrorMetrics {
	if len(actual) != len(fitted) || len(actual) == 0 {
		return ErrorMetrics{}
	}

	var sumAbs, sumSq, sumPct float64
	pctCount := 0
	for i := range actual {
		diff := actual[i] - fitted[i]
		sumAbs += math.Abs(diff)
		sumSq += diff * diff
		if actual[i] != 0 {
			sumPct += math.Abs(diff / actual[i])
			pctCount++
		}
	}

	n := float64(len(actual))
	metrics := ErrorMetrics{
		MAE: sumAbs / n,
		MSE: sumSq / n,
	}
	metrics.RMSE = math.Sqrt(metrics.MSE)
	if pctCount > 0 {
		metrics.MAPE = (sumPct / float64(pctCount)) * 100
	}
	return metrics
}

// clampNonNegative floors every value at zero in place and returns the slice.
func clampNonNegative(values []float64) []float64 {
	for i, v := range values {
		if v < 0 {
			values[i] = 0
		}
	}
	return values
}

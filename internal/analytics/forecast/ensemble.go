package forecast

import "github.com/qualimetry/qualimetry/internal/analytics/trend"

// combineEnsemble averages the successful methods' predictions index-wise.
// Indices missing from a shorter prediction sequence are skipped rather than
// treated as zero. The ensemble reports the fixed ensemble accuracy and no
// seasonality of its own.
func combineEnsemble(members []Result, horizon int) Result {
	predictions := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		sum := 0.0
		count := 0
		for _, m := range members {
			if i >= len(m.Predictions) {
				continue
			}
			sum += m.Predictions[i]
			count++
		}
		if count > 0 {
			predictions[i] = sum / float64(count)
		}
	}

	return Result{
		Method:      "ensemble",
		Predictions: predictions,
		Bounds:      confidenceBounds(predictions, ensembleAccuracy),
		Accuracy:    ensembleAccuracy,
		Metrics:     averageMetrics(members),
		Seasonality: trend.Seasonality{},
	}
}

// averageMetrics pools the members' in-sample error metrics.
func averageMetrics(members []Result) ErrorMetrics {
	if len(members) == 0 {
		return ErrorMetrics{}
	}

	var out ErrorMetrics
	for _, m := range members {
		out.MAE += m.Metrics.MAE
		out.MSE += m.Metrics.MSE
		out.RMSE += m.Metrics.RMSE
		out.MAPE += m.Metrics.MAPE
	}

	n := float64(len(members))
	out.MAE /= n
	out.MSE /= n
	out.RMSE /= n
	out.MAPE /= n
	return out
}

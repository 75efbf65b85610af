// Package insight combines the outputs of the descriptive, trend,
// correlation, and forecast analyzers into severity-ranked findings. A
// failing sub-analysis yields fewer insights, never an error.
package insight

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/qualimetry/qualimetry/internal/analytics/correlation"
	"github.com/qualimetry/qualimetry/internal/analytics/forecast"
	"github.com/qualimetry/qualimetry/internal/analytics/stats"
	"github.com/qualimetry/qualimetry/internal/analytics/trend"
	"github.com/qualimetry/qualimetry/internal/config"
	"github.com/qualimetry/qualimetry/internal/logging"
)

// Category classifies what an insight is about.
type Category string

const (
	CategoryTrend       Category = "trend"
	CategoryCorrelation Category = "correlation"
	CategoryAnomaly     Category = "anomaly"
	CategoryForecast    Category = "forecast"
)

// Severity ranks how urgent an insight is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Insight is one synthesized finding. Produced here, persisted nowhere.
type Insight struct {
	Category        Category           `json:"category"`
	Severity        Severity           `json:"severity"`
	Confidence      float64            `json:"confidence"`
	Description     string             `json:"description"`
	Recommendations []string           `json:"recommendations"`
	Metrics         map[string]float64 `json:"metrics"`
	Timestamp       int64              `json:"timestamp"` // epoch milliseconds
}

// Synthesize runs every enabled analyzer over the series and converts their
// outputs into insights via fixed threshold rules. Correlated series are
// optional companions analyzed pairwise against the primary series.
func Synthesize(values []float64, timestamps []int64, correlated map[string][]float64, cfg config.AnalyticsConfig, logger *logging.Logger) []Insight {
	now := time.Now().UnixMilli()
	insights := []Insight{}

	insights = append(insights, summaryInsights(values, cfg, logger, now)...)
	insights = append(insights, trendInsights(values, timestamps, cfg, logger, now)...)
	insights = append(insights, correlationInsights(values, correlated, cfg, logger, now)...)
	insights = append(insights, forecastInsights(values, timestamps, cfg, logger, now)...)

	return insights
}

func summaryInsights(values []float64, cfg config.AnalyticsConfig, logger *logging.Logger, now int64) []Insight {
	if !cfg.EnableStatisticalAnalysis || !cfg.StatisticalMethods.Descriptive {
		return nil
	}

	summary, err := stats.Summarize(values)
	if err != nil {
		logger.Warn("Descriptive analysis skipped during synthesis", "error", err)
		return nil
	}

	var insights []Insight

	if len(summary.Outliers) > 0 {
		insights = append(insights, Insight{
			Category:    CategoryAnomaly,
			Severity:    SeverityMedium,
			Confidence:  0.8,
			Description: fmt.Sprintf("Detected %d outlier value(s) outside the interquartile fences", len(summary.Outliers)),
			Recommendations: []string{
				"Inspect the flagged samples for collection or ingestion faults",
				"Verify upstream sources emitted valid measurements at those times",
			},
			Metrics: map[string]float64{
				"outlier_count": float64(len(summary.Outliers)),
				"q1":            summary.Q1,
				"q3":            summary.Q3,
			},
			Timestamp: now,
		})
	}

	if math.Abs(summary.Skewness) > 1 {
		insights = append(insights, Insight{
			Category:    CategoryTrend,
			Severity:    SeverityLow,
			Confidence:  0.7,
			Description: fmt.Sprintf("Distribution is heavily skewed (skewness %.2f)", summary.Skewness),
			Recommendations: []string{
				"Consider whether a subset of sources is dragging the metric",
			},
			Metrics: map[string]float64{
				"skewness": summary.Skewness,
				"mean":     summary.Mean,
				"median":   summary.Median,
			},
			Timestamp: now,
		})
	}

	return insights
}

func trendInsights(values []float64, timestamps []int64, cfg config.AnalyticsConfig, logger *logging.Logger, now int64) []Insight {
	if !cfg.EnableTrendForecasting {
		return nil
	}

	analysis, err := trend.Analyze(values, timestamps, trend.Options{
		SeasonalityDetection: cfg.Forecasting.SeasonalityDetection,
	})
	if err != nil {
		logger.Warn("Trend analysis skipped during synthesis", "error", err)
		return nil
	}

	var insights []Insight

	if analysis.Direction == trend.DirectionDecreasing && analysis.Strength > 0.5 {
		insights = append(insights, Insight{
			Category:    CategoryTrend,
			Severity:    SeverityHigh,
			Confidence:  analysis.Confidence,
			Description: fmt.Sprintf("Quality scores are declining (slope %.4f, strength %.2f)", analysis.Slope, analysis.Strength),
			Recommendations: []string{
				"Review recent pipeline or source changes coinciding with the decline",
				"Tighten validation on the inputs feeding this metric",
			},
			Metrics: map[string]float64{
				"slope":    analysis.Slope,
				"strength": analysis.Strength,
			},
			Timestamp: now,
		})
	}

	if analysis.Seasonality.Detected {
		insights = append(insights, Insight{
			Category:    CategoryTrend,
			Severity:    SeverityMedium,
			Confidence:  analysis.Seasonality.Strength,
			Description: fmt.Sprintf("Periodic pattern detected with period %d samples", analysis.Seasonality.Period),
			Recommendations: []string{
				"Align monitoring windows with the detected period to avoid false alerts",
			},
			Metrics: map[string]float64{
				"period":   float64(analysis.Seasonality.Period),
				"strength": analysis.Seasonality.Strength,
			},
			Timestamp: now,
		})
	}

	return insights
}

func correlationInsights(values []float64, correlated map[string][]float64, cfg config.AnalyticsConfig, logger *logging.Logger, now int64) []Insight {
	if !cfg.EnableCorrelationAnalysis || len(correlated) == 0 {
		return nil
	}

	// Deterministic output regardless of map iteration order.
	names := make([]string, 0, len(correlated))
	for name := range correlated {
		names = append(names, name)
	}
	sort.Strings(names)

	var insights []Insight
	for _, name := range names {
		results, err := correlation.Analyze(values, correlated[name], cfg.Correlation)
		if err != nil {
			logger.Warn("Correlation analysis skipped during synthesis",
				"series", name, "error", err)
			continue
		}

		for _, r := range results {
			if !r.Significant || math.Abs(r.Correlation) <= 0.7 {
				continue
			}
			insights = append(insights, Insight{
				Category:    CategoryCorrelation,
				Severity:    SeverityMedium,
				Confidence:  math.Abs(r.Correlation),
				Description: fmt.Sprintf("Metric moves with %q: %s", name, r.Interpretation),
				Recommendations: []string{
					"Investigate whether the correlated series shares an upstream cause",
				},
				Metrics: map[string]float64{
					"correlation": r.Correlation,
					"p_value":     r.PValue,
				},
				Timestamp: now,
			})
		}
	}

	return insights
}

func forecastInsights(values []float64, timestamps []int64, cfg config.AnalyticsConfig, logger *logging.Logger, now int64) []Insight {
	if !cfg.EnablePredictiveModeling || len(values) == 0 {
		return nil
	}

	results, err := forecast.Run(values, timestamps, cfg.Forecasting.Horizon, cfg.Forecasting, logger)
	if err != nil {
		logger.Warn("Forecasting skipped during synthesis", "error", err)
		return nil
	}

	best := bestForecast(results)
	if best == nil || len(best.Predictions) == 0 {
		return nil
	}

	last := values[len(values)-1]
	next := best.Predictions[0]
	if next >= last*0.9 {
		return nil
	}

	return []Insight{{
		Category:    CategoryForecast,
		Severity:    SeverityHigh,
		Confidence:  best.Accuracy,
		Description: fmt.Sprintf("Forecast (%s) projects a drop from %.2f to %.2f over the next period", best.Method, last, next),
		Recommendations: []string{
			"Plan remediation before the projected decline materializes",
			"Increase sampling frequency to confirm the trajectory early",
		},
		Metrics: map[string]float64{
			"last_observed":   last,
			"next_prediction": next,
		},
		Timestamp: now,
	}}
}

// bestForecast picks the highest-accuracy result, preferring earlier entries
// on ties so output stays deterministic.
func bestForecast(results []forecast.Result) *forecast.Result {
	var best *forecast.Result
	for i := range results {
		if best == nil || results[i].Accuracy > best.Accuracy {
			best = &results[i]
		}
	}
	return best
}

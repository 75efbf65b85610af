package insight

import (
	"testing"

	"github.com/qualimetry/qualimetry/internal/config"
	"github.com/qualimetry/qualimetry/internal/logging"
)

func fullConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		EnableStatisticalAnalysis: true,
		EnableTrendForecasting:    true,
		EnableCorrelationAnalysis: true,
		EnablePredictiveModeling:  true,
		StatisticalMethods: config.StatisticalMethodsConfig{
			Descriptive: true,
		},
		Forecasting: config.ForecastingConfig{
			Methods:         []string{"linear", "exponential"},
			Horizon:         6,
			ConfidenceLevel: 0.95,
		},
		Correlation: config.CorrelationConfig{
			EnablePearson:  true,
			EnableSpearman: true,
			EnableKendall:  true,
			MinCorrelation: 0.1,
		},
	}
}

func decliningSeries(n int) ([]float64, []int64) {
	values := make([]float64, n)
	timestamps := make([]int64, n)
	for i := 0; i < n; i++ {
		values[i] = 100 - 5*float64(i)
		timestamps[i] = int64(i)
	}
	return values, timestamps
}

func categories(insights []Insight) map[Category]int {
	counts := make(map[Category]int)
	for _, ins := range insights {
		counts[ins.Category]++
	}
	return counts
}

func TestSynthesize_DecliningSeries(t *testing.T) {
	values, timestamps := decliningSeries(20)

	insights := Synthesize(values, timestamps, nil, fullConfig(), logging.Nop())

	counts := categories(insights)
	if counts[CategoryTrend] == 0 {
		t.Error("Expected a trend insight for a strongly declining series")
	}
	if counts[CategoryForecast] == 0 {
		t.Error("Expected a forecast insight when projections drop further")
	}

	foundHigh := false
	for _, ins := range insights {
		if ins.Category == CategoryTrend && ins.Severity == SeverityHigh {
			foundHigh = true
		}
		if ins.Confidence < 0 || ins.Confidence > 1 {
			t.Errorf("Confidence out of range: %+v", ins)
		}
		if ins.Description == "" {
			t.Errorf("Expected non-empty description: %+v", ins)
		}
		if len(ins.Recommendations) == 0 {
			t.Errorf("Expected recommendations: %+v", ins)
		}
		if ins.Timestamp == 0 {
			t.Errorf("Expected timestamp set: %+v", ins)
		}
	}
	if !foundHigh {
		t.Error("Expected high-severity trend insight")
	}
}

func TestSynthesize_OutlierProducesAnomaly(t *testing.T) {
	values := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 100}
	timestamps := make([]int64, len(values))
	for i := range timestamps {
		timestamps[i] = int64(i)
	}

	cfg := fullConfig()
	// Only descriptive statistics; keeps the test focused on the anomaly rule.
	cfg.EnableTrendForecasting = false
	cfg.EnableCorrelationAnalysis = false
	cfg.EnablePredictiveModeling = false

	insights := Synthesize(values, timestamps, nil, cfg, logging.Nop())

	counts := categories(insights)
	if counts[CategoryAnomaly] != 1 {
		t.Fatalf("Expected exactly one anomaly insight, got %v", insights)
	}

	for _, ins := range insights {
		if ins.Category == CategoryAnomaly {
			if ins.Severity != SeverityMedium {
				t.Errorf("Expected medium severity, got %s", ins.Severity)
			}
			if ins.Confidence != 0.8 {
				t.Errorf("Expected confidence 0.8, got %f", ins.Confidence)
			}
			if ins.Metrics["outlier_count"] != 1 {
				t.Errorf("Expected outlier_count 1, got %v", ins.Metrics)
			}
		}
	}
}

func TestSynthesize_CorrelatedSeries(t *testing.T) {
	values, timestamps := decliningSeries(20)
	companion := make([]float64, len(values))
	for i := range companion {
		companion[i] = values[i] * 2
	}

	cfg := fullConfig()
	cfg.EnableStatisticalAnalysis = false
	cfg.EnableTrendForecasting = false
	cfg.EnablePredictiveModeling = false

	insights := Synthesize(values, timestamps, map[string][]float64{"latency": companion}, cfg, logging.Nop())

	counts := categories(insights)
	if counts[CategoryCorrelation] == 0 {
		t.Fatalf("Expected correlation insights, got %v", insights)
	}
	for _, ins := range insights {
		if ins.Category != CategoryCorrelation {
			continue
		}
		if ins.Confidence <= 0.7 {
			t.Errorf("Expected confidence above 0.7, got %f", ins.Confidence)
		}
	}
}

func TestSynthesize_AllDisabled(t *testing.T) {
	values, timestamps := decliningSeries(20)

	cfg := config.AnalyticsConfig{}

	insights := Synthesize(values, timestamps, nil, cfg, logging.Nop())
	if len(insights) != 0 {
		t.Errorf("Expected no insights with everything disabled, got %v", insights)
	}
}

func TestSynthesize_FailuresAreIsolated(t *testing.T) {
	// Too short for trend, forecast, and correlation; only the summary runs.
	values := []float64{1, 1}
	timestamps := []int64{0, 1}

	insights := Synthesize(values, timestamps, map[string][]float64{"other": {1, 2}}, fullConfig(), logging.Nop())

	// No panics, no errors: just no findings from the failed analyses.
	for _, ins := range insights {
		if ins.Category == CategoryForecast || ins.Category == CategoryCorrelation {
			t.Errorf("Unexpected insight from failed analysis: %+v", ins)
		}
	}
}

func TestSynthesize_StableSeriesIsQuiet(t *testing.T) {
	values := make([]float64, 30)
	timestamps := make([]int64, 30)
	for i := range values {
		values[i] = 50
		timestamps[i] = int64(i)
	}

	insights := Synthesize(values, timestamps, nil, fullConfig(), logging.Nop())
	if len(insights) != 0 {
		t.Errorf("Expected no insights for a flat healthy series, got %v", insights)
	}
}

package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qualimetry/qualimetry/internal/analytics/insight"
	"github.com/qualimetry/qualimetry/internal/cache"
	"github.com/qualimetry/qualimetry/internal/config"
	"github.com/qualimetry/qualimetry/internal/events"
	"github.com/qualimetry/qualimetry/internal/logging"
)

const testSubject = "qualimetry.insights"

func newTestService(cfg config.AnalyticsConfig) (*AnalyticsService, *cache.MemoryCache, *events.MemoryPublisher) {
	memCache := cache.NewMemoryCache(time.Minute)
	publisher := events.NewMemoryPublisher()
	svc := NewAnalyticsService(logging.Nop(), cfg, memCache, publisher, testSubject)
	return svc, memCache, publisher
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

func TestSummarize(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())

	summary, err := svc.Summarize(context.Background(), []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Count)
	assert.Equal(t, 3.0, summary.Mean)
}

func TestSummarize_Disabled(t *testing.T) {
	cfg := config.DefaultAnalyticsConfig()
	cfg.EnableStatisticalAnalysis = false
	svc, _, _ := newTestService(cfg)

	_, err := svc.Summarize(context.Background(), []float64{1, 2, 3})
	require.Error(t, err)

	svcErr, ok := err.(*ServiceError)
	require.True(t, ok)
	assert.Equal(t, CodeFeatureDisabled, svcErr.Code)
}

func TestSummarize_EmptyInput(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())

	_, err := svc.Summarize(context.Background(), nil)
	require.Error(t, err)

	svcErr, ok := err.(*ServiceError)
	require.True(t, ok)
	assert.Equal(t, CodeEmptyInput, svcErr.Code)
}

func TestSummarize_CachesResult(t *testing.T) {
	svc, memCache, _ := newTestService(config.DefaultAnalyticsConfig())

	first, err := svc.Summarize(context.Background(), []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 1, memCache.Len())

	second, err := svc.Summarize(context.Background(), []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, memCache.Len())
}

func TestSummarize_NoCacheConfigured(t *testing.T) {
	svc := NewAnalyticsService(logging.Nop(), config.DefaultAnalyticsConfig(), nil, nil, testSubject)

	summary, err := svc.Summarize(context.Background(), []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Count)
}

func TestAnalyzeTrend(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())
	values, timestamps := decliningSeries(20)

	analysis, err := svc.AnalyzeTrend(context.Background(), values, timestamps)
	require.NoError(t, err)
	assert.Equal(t, "decreasing", string(analysis.Direction))
}

func TestAnalyzeTrend_Disabled(t *testing.T) {
	cfg := config.DefaultAnalyticsConfig()
	cfg.EnableTrendForecasting = false
	svc, _, _ := newTestService(cfg)

	values, timestamps := decliningSeries(20)
	_, err := svc.AnalyzeTrend(context.Background(), values, timestamps)
	require.Error(t, err)
	assert.Equal(t, CodeFeatureDisabled, err.(*ServiceError).Code)
}

func TestAnalyzeTrend_InsufficientData(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())

	_, err := svc.AnalyzeTrend(context.Background(), []float64{1, 2}, []int64{0, 1})
	require.Error(t, err)
	assert.Equal(t, CodeInsufficientData, err.(*ServiceError).Code)
}

func TestCorrelate(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())

	results, err := svc.Correlate(context.Background(),
		[]float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.InDelta(t, 1.0, r.Correlation, 1e-9)
	}
}

func TestCorrelate_Disabled(t *testing.T) {
	cfg := config.DefaultAnalyticsConfig()
	cfg.EnableCorrelationAnalysis = false
	svc, _, _ := newTestService(cfg)

	_, err := svc.Correlate(context.Background(), []float64{1, 2, 3}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.Equal(t, CodeFeatureDisabled, err.(*ServiceError).Code)
}

func TestCorrelate_LengthMismatch(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())

	_, err := svc.Correlate(context.Background(), []float64{1, 2, 3}, []float64{1, 2})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidInput, err.(*ServiceError).Code)
}

func TestForecast_DefaultHorizon(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())
	values, timestamps := decliningSeries(20)

	results, err := svc.Forecast(context.Background(), values, timestamps, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	// Default horizon is 12.
	assert.Len(t, results[0].Predictions, 12)
}

func TestForecast_ExplicitHorizon(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())
	values, timestamps := decliningSeries(20)

	horizon := 3
	results, err := svc.Forecast(context.Background(), values, timestamps, &horizon)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Len(t, results[0].Predictions, 3)
}

func TestForecast_Disabled(t *testing.T) {
	cfg := config.DefaultAnalyticsConfig()
	cfg.EnablePredictiveModeling = false
	svc, _, _ := newTestService(cfg)

	values, timestamps := decliningSeries(20)
	_, err := svc.Forecast(context.Background(), values, timestamps, nil)
	require.Error(t, err)
	assert.Equal(t, CodeFeatureDisabled, err.(*ServiceError).Code)
}

func TestForecast_InsufficientData(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())

	_, err := svc.Forecast(context.Background(),
		[]float64{1, 2, 3}, []int64{0, 1, 2}, nil)
	require.Error(t, err)
	assert.Equal(t, CodeInsufficientData, err.(*ServiceError).Code)
}

func TestSynthesizeInsights_PublishesEvents(t *testing.T) {
	svc, _, publisher := newTestService(config.DefaultAnalyticsConfig())
	values, timestamps := decliningSeries(20)

	insights, err := svc.SynthesizeInsights(context.Background(), values, timestamps, nil)
	require.NoError(t, err)
	require.NotEmpty(t, insights)

	published := publisher.Messages(testSubject)
	require.Len(t, published, len(insights))

	var decoded insight.Insight
	require.NoError(t, json.Unmarshal(published[0], &decoded))
	assert.Equal(t, insights[0].Category, decoded.Category)
	assert.Equal(t, insights[0].Description, decoded.Description)
}

func TestSynthesizeInsights_EmptyInput(t *testing.T) {
	svc, _, _ := newTestService(config.DefaultAnalyticsConfig())

	_, err := svc.SynthesizeInsights(context.Background(), nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, CodeEmptyInput, err.(*ServiceError).Code)
}

func TestSynthesizeInsights_NoPublisher(t *testing.T) {
	svc := NewAnalyticsService(logging.Nop(), config.DefaultAnalyticsConfig(), nil, nil, testSubject)
	values, timestamps := decliningSeries(20)

	insights, err := svc.SynthesizeInsights(context.Background(), values, timestamps, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, insights)
}

package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/qualimetry/qualimetry/internal/analytics/correlation"
	"github.com/qualimetry/qualimetry/internal/analytics/forecast"
	"github.com/qualimetry/qualimetry/internal/analytics/insight"
	"github.com/qualimetry/qualimetry/internal/analytics/stats"
	"github.com/qualimetry/qualimetry/internal/analytics/trend"
	"github.com/qualimetry/qualimetry/internal/cache"
	"github.com/qualimetry/qualimetry/internal/config"
	"github.com/qualimetry/qualimetry/internal/events"
	"github.com/qualimetry/qualimetry/internal/logging"
)

// AnalyticsService orchestrates the statistical engine: it enforces feature
// flags, memoizes results, and publishes synthesized insights as events.
type AnalyticsService struct {
	logger    *logging.Logger
	cfg       config.AnalyticsConfig
	cache     cache.ResultCache // nil means caching disabled
	publisher events.Publisher  // nil means event publishing disabled
	subject   string
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	logger *logging.Logger,
	cfg config.AnalyticsConfig,
	resultCache cache.ResultCache,
	publisher events.Publisher,
	subject string,
) *AnalyticsService {
	return &AnalyticsService{
		logger:    logger,
		cfg:       cfg,
		cache:     resultCache,
		publisher: publisher,
		subject:   subject,
	}
}

// Summarize computes descriptive statistics for a series.
func (s *AnalyticsService) Summarize(ctx context.Context, values []float64) (*stats.Summary, error) {
	if !s.cfg.EnableStatisticalAnalysis || !s.cfg.StatisticalMethods.Descriptive {
		return nil, NewServiceError(CodeFeatureDisabled, "statistical analysis is disabled")
	}

	key := cache.Key("summary", nil, values)
	var cached stats.Summary
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	startExec := time.Now()
	summary, err := stats.Summarize(values)
	if err != nil {
		return nil, mapEngineError(err)
	}

	s.cacheSet(ctx, key, summary)
	s.logger.Debug("Summary computed",
		"count", summary.Count,
		"latency_ms", time.Since(startExec).Milliseconds())

	return summary, nil
}

// AnalyzeTrend runs trend analysis over a timestamped series.
func (s *AnalyticsService) AnalyzeTrend(ctx context.Context, values []float64, timestamps []int64) (*trend.Analysis, error) {
	if !s.cfg.EnableTrendForecasting {
		return nil, NewServiceError(CodeFeatureDisabled, "trend analysis is disabled")
	}

	opts := trend.Options{SeasonalityDetection: s.cfg.Forecasting.SeasonalityDetection}

	key := cache.Key("trend", opts, struct {
		Values     []float64 `json:"values"`
		Timestamps []int64   `json:"timestamps"`
	}{values, timestamps})
	var cached trend.Analysis
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	startExec := time.Now()
	analysis, err := trend.Analyze(values, timestamps, opts)
	if err != nil {
		return nil, mapEngineError(err)
	}

	s.cacheSet(ctx, key, analysis)
	s.logger.Debug("Trend analysis completed",
		"direction", string(analysis.Direction),
		"latency_ms", time.Since(startExec).Milliseconds())

	return analysis, nil
}

// Correlate computes correlation coefficients between two series.
func (s *AnalyticsService) Correlate(ctx context.Context, x, y []float64) ([]correlation.Result, error) {
	if !s.cfg.EnableCorrelationAnalysis {
		return nil, NewServiceError(CodeFeatureDisabled, "correlation analysis is disabled")
	}

	key := cache.Key("correlation", s.cfg.Correlation, struct {
		X []float64 `json:"x"`
		Y []float64 `json:"y"`
	}{x, y})
	var cached []correlation.Result
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	startExec := time.Now()
	results, err := correlation.Analyze(x, y, s.cfg.Correlation)
	if err != nil {
		return nil, mapEngineError(err)
	}

	s.cacheSet(ctx, key, results)
	s.logger.Debug("Correlation analysis completed",
		"methods", len(results),
		"latency_ms", time.Since(startExec).Milliseconds())

	return results, nil
}

// Forecast projects the series over the requested horizon. A nil horizon
// means the configured default.
func (s *AnalyticsService) Forecast(ctx context.Context, values []float64, timestamps []int64, horizon *int) ([]forecast.Result, error) {
	if !s.cfg.EnablePredictiveModeling {
		return nil, NewServiceError(CodeFeatureDisabled, "predictive modeling is disabled")
	}

	h := s.cfg.Forecasting.Horizon
	if horizon != nil {
		h = *horizon
	}

	key := cache.Key("forecast", s.cfg.Forecasting, struct {
		Values     []float64 `json:"values"`
		Timestamps []int64   `json:"timestamps"`
		Horizon    int       `json:"horizon"`
	}{values, timestamps, h})
	var cached []forecast.Result
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	startExec := time.Now()
	results, err := forecast.Run(values, timestamps, h, s.cfg.Forecasting, s.logger)
	if err != nil {
		return nil, mapEngineError(err)
	}

	s.cacheSet(ctx, key, results)
	s.logger.Info("Forecast completed",
		"horizon", h,
		"methods", len(results),
		"latency_ms", time.Since(startExec).Milliseconds())

	return results, nil
}

// SynthesizeInsights runs every enabled analysis and returns the combined
// findings. Each insight is also published as an event; publish failures are
// logged and never fail the request.
func (s *AnalyticsService) SynthesizeInsights(ctx context.Context, values []float64, timestamps []int64, correlated map[string][]float64) ([]insight.Insight, error) {
	if len(values) == 0 {
		return nil, NewServiceError(CodeEmptyInput, "insights need a non-empty series")
	}

	startExec := time.Now()
	insights := insight.Synthesize(values, timestamps, correlated, s.cfg, s.logger)

	s.publishInsights(ctx, insights)

	s.logger.Info("Insight synthesis completed",
		"insights", len(insights),
		"latency_ms", time.Since(startExec).Milliseconds())

	return insights, nil
}

// publishInsights emits one event per insight on the configured subject.
func (s *AnalyticsService) publishInsights(ctx context.Context, insights []insight.Insight) {
	if s.publisher == nil || len(insights) == 0 {
		return
	}

	messages := make([]events.BatchMessage, 0, len(insights))
	for _, ins := range insights {
		data, err := json.Marshal(ins)
		if err != nil {
			s.logger.Warn("Failed to encode insight event", "error", err)
			continue
		}
		messages = append(messages, events.BatchMessage{
			Subject: s.subject,
			Data:    data,
		})
	}

	published, err := s.publisher.PublishBatch(ctx, messages)
	if err != nil {
		s.logger.Warn("Failed to publish insight events",
			"published", published, "total", len(messages), "error", err)
	}
}

// cacheGet reports whether key was found and decoded into dest.
func (s *AnalyticsService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}

	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Cache read failed", "error", err)
		return false
	}
	if !hit {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("Cache entry corrupt, recomputing", "error", err)
		return false
	}
	return true
}

// cacheSet stores a result, logging failures without propagating them.
func (s *AnalyticsService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Failed to encode cache entry", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logger.Warn("Cache write failed", "error", err)
	}
}

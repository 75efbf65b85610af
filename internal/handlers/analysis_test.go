package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/qualimetry/qualimetry/internal/config"
	"github.com/qualimetry/qualimetry/internal/logging"
	"github.com/qualimetry/qualimetry/internal/models"
)

func setupTestApp(cfg config.Config) *fiber.App {
	h := New(logging.Nop(), cfg, nil, nil)

	app := fiber.New()
	app.Post("/v1/series/summary", h.Summary)
	app.Post("/v1/series/trend", h.Trend)
	app.Post("/v1/series/correlation", h.Correlation)
	app.Post("/v1/series/forecast", h.Forecast)
	app.Post("/v1/series/insights", h.Insights)
	return app
}

func defaultTestConfig() config.Config {
	return *config.DefaultConfig()
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, []byte) {
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	return resp.StatusCode, respBody
}

func errorCode(t *testing.T, body []byte) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("Failed to unmarshal error response: %v", err)
	}
	return errResp.Error.Code
}

func TestSummary_OK(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	status, body := postJSON(t, app, "/v1/series/summary", models.SummaryRequest{
		Values: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	})

	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}

	var summary map[string]interface{}
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if summary["mean"] != 5.5 {
		t.Errorf("Expected mean 5.5, got %v", summary["mean"])
	}
	if summary["count"] != float64(10) {
		t.Errorf("Expected count 10, got %v", summary["count"])
	}
}

func TestSummary_EmptyInput(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	status, body := postJSON(t, app, "/v1/series/summary", models.SummaryRequest{})

	if status != fiber.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", status, body)
	}
	if code := errorCode(t, body); code != "EMPTY_INPUT" {
		t.Errorf("Expected EMPTY_INPUT, got %s", code)
	}
}

func TestSummary_FeatureDisabled(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Analytics.EnableStatisticalAnalysis = false
	app := setupTestApp(cfg)

	status, body := postJSON(t, app, "/v1/series/summary", models.SummaryRequest{
		Values: []float64{1, 2, 3},
	})

	if status != fiber.StatusForbidden {
		t.Fatalf("Expected 403, got %d: %s", status, body)
	}
	if code := errorCode(t, body); code != "FEATURE_DISABLED" {
		t.Errorf("Expected FEATURE_DISABLED, got %s", code)
	}
}

func TestSummary_InvalidJSON(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	req := httptest.NewRequest("POST", "/v1/series/summary", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if code := errorCode(t, body); code != "INVALID_JSON" {
		t.Errorf("Expected INVALID_JSON, got %s", code)
	}
}

func TestTrend_OK(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	values := make([]float64, 20)
	timestamps := make([]int64, 20)
	for i := range values {
		values[i] = float64(2 * i)
		timestamps[i] = int64(i)
	}

	status, body := postJSON(t, app, "/v1/series/trend", models.TrendRequest{
		Values:     values,
		Timestamps: timestamps,
	})

	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}

	var analysis map[string]interface{}
	if err := json.Unmarshal(body, &analysis); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if analysis["direction"] != "increasing" {
		t.Errorf("Expected increasing direction, got %v", analysis["direction"])
	}
}

func TestTrend_InsufficientData(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	status, body := postJSON(t, app, "/v1/series/trend", models.TrendRequest{
		Values:     []float64{1, 2},
		Timestamps: []int64{0, 1},
	})

	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d: %s", status, body)
	}
	if code := errorCode(t, body); code != "INSUFFICIENT_DATA" {
		t.Errorf("Expected INSUFFICIENT_DATA, got %s", code)
	}
}

func TestCorrelation_OK(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	status, body := postJSON(t, app, "/v1/series/correlation", models.CorrelationRequest{
		X: []float64{1, 2, 3, 4, 5},
		Y: []float64{2, 4, 6, 8, 10},
	})

	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}

	var payload struct {
		Results []map[string]interface{} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(payload.Results) != 3 {
		t.Errorf("Expected 3 method results, got %d", len(payload.Results))
	}
}

func TestCorrelation_LengthMismatch(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	status, body := postJSON(t, app, "/v1/series/correlation", models.CorrelationRequest{
		X: []float64{1, 2, 3},
		Y: []float64{1, 2},
	})

	if status != fiber.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", status, body)
	}
	if code := errorCode(t, body); code != "INVALID_INPUT" {
		t.Errorf("Expected INVALID_INPUT, got %s", code)
	}
}

func TestForecast_OK(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	values := make([]float64, 20)
	timestamps := make([]int64, 20)
	for i := range values {
		values[i] = float64(i)
		timestamps[i] = int64(i)
	}

	horizon := 5
	status, body := postJSON(t, app, "/v1/series/forecast", models.ForecastRequest{
		Values:     values,
		Timestamps: timestamps,
		Horizon:    &horizon,
	})

	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}

	var payload struct {
		Forecasts []struct {
			Method      string    `json:"method"`
			Predictions []float64 `json:"predictions"`
		} `json:"forecasts"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	// 3 configured methods + ensemble.
	if len(payload.Forecasts) != 4 {
		t.Fatalf("Expected 4 forecasts, got %d", len(payload.Forecasts))
	}
	for _, f := range payload.Forecasts {
		if len(f.Predictions) != 5 {
			t.Errorf("Expected 5 predictions for %s, got %d", f.Method, len(f.Predictions))
		}
	}
}

func TestForecast_NegativeHorizon(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	horizon := -1
	status, body := postJSON(t, app, "/v1/series/forecast", models.ForecastRequest{
		Values:  []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Horizon: &horizon,
	})

	if status != fiber.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", status, body)
	}
	if code := errorCode(t, body); code != "INVALID_REQUEST" {
		t.Errorf("Expected INVALID_REQUEST, got %s", code)
	}
}

func TestInsights_OK(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	values := make([]float64, 20)
	timestamps := make([]int64, 20)
	for i := range values {
		values[i] = 100 - 5*float64(i)
		timestamps[i] = int64(i)
	}

	status, body := postJSON(t, app, "/v1/series/insights", models.InsightsRequest{
		Values:     values,
		Timestamps: timestamps,
	})

	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}

	var payload struct {
		Insights []map[string]interface{} `json:"insights"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(payload.Insights) == 0 {
		t.Error("Expected insights for a declining series")
	}
}

func TestInsights_EmptyInput(t *testing.T) {
	app := setupTestApp(defaultTestConfig())

	status, body := postJSON(t, app, "/v1/series/insights", models.InsightsRequest{})

	if status != fiber.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", status, body)
	}
	if code := errorCode(t, body); code != "EMPTY_INPUT" {
		t.Errorf("Expected EMPTY_INPUT, got %s", code)
	}
}

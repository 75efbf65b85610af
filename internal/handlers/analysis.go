package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qualimetry/qualimetry/internal/models"
)

// Summary handles descriptive statistics requests
// POST /v1/series/summary
func (h *Handler) Summary(c *fiber.Ctx) error {
	var body models.SummaryRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidJSON(c, err)
	}

	summary, err := h.analyticsService.Summarize(c.Context(), body.Values)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(summary)
}

// Trend handles trend analysis requests
// POST /v1/series/trend
func (h *Handler) Trend(c *fiber.Ctx) error {
	var body models.TrendRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidJSON(c, err)
	}

	analysis, err := h.analyticsService.AnalyzeTrend(c.Context(), body.Values, body.Timestamps)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(analysis)
}

// Correlation handles pairwise correlation requests
// POST /v1/series/correlation
func (h *Handler) Correlation(c *fiber.Ctx) error {
	var body models.CorrelationRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidJSON(c, err)
	}

	results, err := h.analyticsService.Correlate(c.Context(), body.X, body.Y)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"results": results})
}

// Forecast handles forecast requests
// POST /v1/series/forecast
func (h *Handler) Forecast(c *fiber.Ctx) error {
	var body models.ForecastRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidJSON(c, err)
	}

	if body.Horizon != nil && *body.Horizon < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "horizon must not be negative",
			},
		})
	}

	results, err := h.analyticsService.Forecast(c.Context(), body.Values, body.Timestamps, body.Horizon)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"forecasts": results})
}

// Insights handles insight synthesis requests
// POST /v1/series/insights
func (h *Handler) Insights(c *fiber.Ctx) error {
	var body models.InsightsRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidJSON(c, err)
	}

	insights, err := h.analyticsService.SynthesizeInsights(
		c.Context(), body.Values, body.Timestamps, body.Correlated)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"insights": insights})
}

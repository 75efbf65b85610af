package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qualimetry/qualimetry/internal/cache"
	"github.com/qualimetry/qualimetry/internal/config"
	"github.com/qualimetry/qualimetry/internal/events"
	"github.com/qualimetry/qualimetry/internal/logging"
	"github.com/qualimetry/qualimetry/internal/models"
	"github.com/qualimetry/qualimetry/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger           *logging.Logger
	analyticsService *services.AnalyticsService
}

// New creates a new handler instance
func New(logger *logging.Logger, cfg config.Config, resultCache cache.ResultCache, publisher events.Publisher) *Handler {
	analyticsService := services.NewAnalyticsService(
		logger, cfg.Analytics, resultCache, publisher, cfg.Events.Subject)

	return &Handler{
		logger:           logger,
		analyticsService: analyticsService,
	}
}

// serviceError converts a service error into an HTTP response.
func serviceError(c *fiber.Ctx, err error) error {
	if svcErr, ok := err.(*services.ServiceError); ok {
		status := fiber.StatusInternalServerError
		switch svcErr.Code {
		case services.CodeFeatureDisabled:
			status = fiber.StatusForbidden
		case services.CodeEmptyInput, services.CodeInvalidInput:
			status = fiber.StatusBadRequest
		case services.CodeInsufficientData:
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			},
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "ANALYSIS_FAILED",
			Message: err.Error(),
		},
	})
}

// invalidJSON responds to an unparseable request body.
func invalidJSON(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_JSON",
			Message: "Failed to parse JSON body",
			Details: map[string]interface{}{"error": err.Error()},
		},
	})
}

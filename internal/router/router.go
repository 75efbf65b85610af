package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/qualimetry/qualimetry/internal/cache"
	"github.com/qualimetry/qualimetry/internal/config"
	"github.com/qualimetry/qualimetry/internal/events"
	"github.com/qualimetry/qualimetry/internal/handlers"
	"github.com/qualimetry/qualimetry/internal/logging"
	"github.com/qualimetry/qualimetry/internal/middleware"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, resultCache cache.ResultCache, publisher events.Publisher, cfg config.Config) *handlers.Handler {
	h := handlers.New(logger, cfg, resultCache, publisher)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Series Analysis Routes
	v1.Post("/series/summary", h.Summary)
	v1.Post("/series/trend", h.Trend)
	v1.Post("/series/correlation", h.Correlation)
	v1.Post("/series/forecast", h.Forecast)
	v1.Post("/series/insights", h.Insights)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, resultCache cache.ResultCache, publisher events.Publisher, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Qualimetry Analytics",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, resultCache, publisher, cfg)

	return app
}

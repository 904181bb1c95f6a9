package routes

import (
	"github.com/osa911/landing/internal/api/middleware"
	"github.com/osa911/landing/internal/config"
	"github.com/osa911/landing/internal/logging"
	"github.com/osa911/landing/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, staticDir string) {
	logger := logging.GetGlobalLogger()

	api := router.Group("/api")

	// Health check endpoint
	SetupHealthRoutes(api, h.Health)

	// Contact routes (public)
	SetupContactRoutes(api, h.Contact, m)

	// Landing SPA and JSON 404s
	SetupFallback(router, staticDir)

	if staticDir != "" {
		logger.Info("Serving landing site from %s", staticDir)
	}
	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(telemetry.Middleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.LimitRequestBody(middleware.DefaultMaxBodySize))
}

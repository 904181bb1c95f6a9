package routes

import (
	"github.com/osa911/landing/internal/api/handlers"
	"github.com/osa911/landing/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains all the route-scoped middleware
type Middleware struct {
	Validation       *middleware.ValidationMiddleware
	ContactRateLimit middleware.RateLimitConfig
}

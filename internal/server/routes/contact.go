package routes

import (
	"github.com/osa911/landing/internal/api/handlers"
	"github.com/osa911/landing/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	// Public endpoint, rate limited before the body is even validated
	router.POST("/contact",
		middleware.RateLimitMiddleware(m.ContactRateLimit),
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}

package middleware

import (
	"time"

	"github.com/osa911/landing/internal/api/constants"
	"github.com/osa911/landing/internal/logging"
	"github.com/osa911/landing/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger is a middleware that logs request information.
// Lines are only written when the logger was configured with request logging.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}

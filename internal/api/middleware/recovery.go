package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/osa911/landing/internal/api/constants"
	"github.com/osa911/landing/internal/api/dto/common"
	"github.com/osa911/landing/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns panics into a 500 with the standard body and logs the stack
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewErrorResponse(common.ErrCodeInternalServer, "Error interno del servidor", ""))
			}
		}()

		c.Next()
	}
}

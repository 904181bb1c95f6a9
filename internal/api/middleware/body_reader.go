package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/osa911/landing/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize caps request bodies; a contact form is a few KB at most
const DefaultMaxBodySize int64 = 64 * 1024

// LimitRequestBody rejects bodies larger than maxBodySize with a 413 before
// any binding happens. Accepted bodies are handed on unchanged.
func LimitRequestBody(maxBodySize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only process requests that carry a body
		if c.Request.Body == nil || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch) {
			c.Next()
			return
		}

		// Read one byte past the cap to tell "exactly max" from "too large"
		bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeBadRequest, msgInvalidBody, ""))
			return
		}

		if int64(len(bodyBytes)) > maxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse(common.ErrCodeTooLarge, "Solicitud demasiado grande", ""))
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		c.Next()
	}
}

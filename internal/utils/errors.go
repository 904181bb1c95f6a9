package utils

import (
	"net/http"

	"github.com/osa911/landing/internal/api/dto/common"
	"github.com/osa911/landing/internal/logging"
	"github.com/osa911/landing/internal/service"

	"github.com/gin-gonic/gin"
)

// HandleAPIError is a utility function for consistent error handling across the API.
// The full error is always logged; it is only echoed as detail outside release mode.
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string) {
	logging.GetGlobalLogger().LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	detail := ""
	if err != nil && gin.Mode() != gin.ReleaseMode {
		detail = err.Error()
	}

	c.JSON(status, common.NewErrorResponse(code, message, detail))
}

// HandleRelayError maps a contact relay failure onto an HTTP response
func HandleRelayError(c *gin.Context, err error) {
	re := service.AsRelayError(err)

	status := http.StatusInternalServerError
	if re.IsClientError() {
		status = http.StatusBadRequest
	}

	HandleAPIError(c, re, status, common.ErrorCode(re.Category), re.Message)
}

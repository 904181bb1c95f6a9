package utils

import (
	"net/http"

	"github.com/osa911/landing/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with a message
func HandleSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(message))
}

// HandleJSON sends an arbitrary body with 200
func HandleJSON(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

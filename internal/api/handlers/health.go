package handlers

import (
	"github.com/osa911/landing/internal/api/dto/common"
	"github.com/osa911/landing/internal/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check is a liveness probe; it does not touch any upstream
func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleJSON(c, common.HealthResponse{OK: true})
}

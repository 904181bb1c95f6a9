package server

import (
	"net/http"

	"github.com/osa911/landing/internal/api/handlers"
	"github.com/osa911/landing/internal/config"
	"github.com/osa911/landing/internal/logging"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	cfg        *config.Config
	services   *Services
	logger     *logging.Logger
	httpServer *http.Server
}

// Services holds the domain services the handlers call into
type Services struct {
	Contact handlers.ContactRelayer
}

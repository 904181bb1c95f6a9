package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/landing/internal/api/handlers"
	"github.com/osa911/landing/internal/api/middleware"
	"github.com/osa911/landing/internal/config"
	"github.com/osa911/landing/internal/logging"
	"github.com/osa911/landing/internal/server/routes"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new server instance
func NewServer(cfg *config.Config, services *Services) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	if services == nil || services.Contact == nil {
		return nil, errors.New("server: contact service is required")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.RedirectTrailingSlash = false

	return &Server{
		router:   router,
		cfg:      cfg,
		services: services,
		logger:   logging.GetGlobalLogger(),
	}, nil
}

// Init wires middleware, handlers and routes
func (s *Server) Init() error {
	routes.SetupGlobalMiddleware(s.router, s.cfg, s.logger)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(s.services.Contact, s.logger),
		Health:  handlers.NewHealthHandler(),
	}

	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(),
		ContactRateLimit: middleware.RateLimitConfig{
			RPS:   s.cfg.Contact.RateRPS,
			Burst: s.cfg.Contact.RateBurst,
		},
	}

	routes.Setup(s.router, h, m, s.cfg.StaticDir)

	// The write timeout leaves room for captcha verification plus two SMTP round trips
	s.httpServer = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      3*s.cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return stripTrailingSlash(s.router)
}

// Start listens on the configured port and blocks until the server stops.
// A clean Shutdown makes Start return nil.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("server: Init must be called before Start")
	}

	s.logger.Info("Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight requests, including relays already under way
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// stripTrailingSlash removes the need for strict trailing slash matching.
// It runs before gin's router so "/api/contact/" matches "/api/contact".
func stripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; p != "/" && strings.HasSuffix(p, "/") {
			r.URL.Path = strings.TrimRight(p, "/")
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}

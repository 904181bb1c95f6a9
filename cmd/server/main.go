package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa911/landing/internal/config"
	"github.com/osa911/landing/internal/logging"
	"github.com/osa911/landing/internal/server"
	"github.com/osa911/landing/internal/service"
	"github.com/osa911/landing/internal/telemetry"
	"github.com/osa911/landing/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger configuration
	logConfig := &logging.LogConfig{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Requests:   cfg.LogRequests,
	}

	// Configure and get logger
	if err := logging.InitLogger(logConfig); err != nil {
		panic(err)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting landing API %s in %s mode", version.Info(), cfg.Environment)

	// Missing secrets are reported per request, not fatal at boot
	for _, warning := range cfg.Warnings() {
		logger.Warn("Configuration: %s", warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracing, err := telemetry.Init(ctx, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}
	if tracing != nil {
		logger.Info("Exporting traces to %s", cfg.OTLPEndpoint)
	}

	// Create services
	captcha := service.NewRecaptchaService(cfg.Captcha, cfg.UpstreamTimeout)
	mailer := service.NewSMTPMailer(cfg.SMTP, cfg.UpstreamTimeout)
	contactService := service.NewContactService(cfg, captcha, mailer, logger)

	// Create and start server
	srv, err := server.NewServer(cfg, &server.Services{Contact: contactService})
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		os.Exit(1)
	}

	// Initialize server
	if err := srv.Init(); err != nil {
		logger.Error("Failed to initialize server: %v", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Failed to start server: %v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout*3+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		logger.Error("Tracing shutdown failed: %v", err)
	}

	logger.Info("Server stopped")
}

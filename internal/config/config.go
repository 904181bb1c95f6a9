package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"API_PORT" envDefault:"3000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173,http://localhost"`
	StaticDir      string   `env:"STATIC_DIR"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	Captcha CaptchaConfig
	SMTP    SMTPConfig
	Contact ContactConfig

	// Bound applied to every outbound call (captcha verify, SMTP verify, SMTP send)
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"8s"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// CaptchaConfig holds reCAPTCHA verification settings
type CaptchaConfig struct {
	SecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	VerifyURL string  `env:"RECAPTCHA_VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`
	MinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0"`
}

// SMTPConfig holds mail relay settings
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
}

// ContactConfig holds where contact submissions are delivered
type ContactConfig struct {
	ToEmail  string `env:"CONTACT_TO_EMAIL"`
	CCEmail  string `env:"CONTACT_CC_EMAIL"`
	FromName string `env:"CONTACT_FROM_NAME" envDefault:"Formulario Web"`

	RateRPS   int `env:"CONTACT_RATE_RPS" envDefault:"1"`
	RateBurst int `env:"CONTACT_RATE_BURST" envDefault:"5"`
}

// IsComplete reports whether host, user and password are all set
func (s SMTPConfig) IsComplete() bool {
	return s.Host != "" && s.User != "" && s.Password != ""
}

// Address returns host:port for dialing the relay
func (s SMTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Destination returns the primary recipient, falling back to the SMTP user
func (c *Config) Destination() string {
	if c.Contact.ToEmail != "" {
		return c.Contact.ToEmail
	}
	return c.SMTP.User
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Warnings lists settings the contact pipeline needs but that are missing.
// They are not fatal at startup; the request path reports them per call.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Captcha.SecretKey == "" {
		warnings = append(warnings, "RECAPTCHA_SECRET_KEY is not set; contact submissions will be rejected")
	}

	var missing []string
	if c.SMTP.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.SMTP.User == "" {
		missing = append(missing, "SMTP_USER")
	}
	if c.SMTP.Password == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if len(missing) > 0 {
		warnings = append(warnings, fmt.Sprintf("SMTP configuration incomplete: missing %s", strings.Join(missing, ", ")))
	}

	if c.Destination() == "" {
		warnings = append(warnings, "neither CONTACT_TO_EMAIL nor SMTP_USER is set; no destination address")
	}
	return warnings
}

// Validate checks values that would make the server misbehave rather than fail per request
func (c *Config) Validate() error {
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("SMTP_PORT must be between 1 and 65535, got %d", c.SMTP.Port)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Contact.RateRPS <= 0 || c.Contact.RateBurst <= 0 {
		return fmt.Errorf("CONTACT_RATE_RPS and CONTACT_RATE_BURST must be positive")
	}
	if c.Captcha.MinScore < 0 || c.Captcha.MinScore > 1 {
		return fmt.Errorf("RECAPTCHA_MIN_SCORE must be between 0 and 1")
	}
	return nil
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv never overwrites variables already present in the process
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds the configuration from the current process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

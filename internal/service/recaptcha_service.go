package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osa911/landing/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// CaptchaVerifier checks a challenge token with the captcha provider
type CaptchaVerifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// RecaptchaService handles reCAPTCHA verification
type RecaptchaService struct {
	secretKey string
	verifyURL string
	minScore  float64
	client    *http.Client
}

// NewRecaptchaService creates a new reCAPTCHA service
func NewRecaptchaService(cfg config.CaptchaConfig, timeout time.Duration) *RecaptchaService {
	return &RecaptchaService{
		secretKey: cfg.SecretKey,
		verifyURL: cfg.VerifyURL,
		minScore:  cfg.MinScore,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// recaptchaResponse represents the response from Google's reCAPTCHA API
type recaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       *float64 `json:"score,omitempty"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// VerifyToken verifies a reCAPTCHA token.
// Returns ErrCaptchaNotConfigured without any network call when the secret is
// missing, ErrCaptchaUnavailable when the provider cannot be reached or
// answers garbage, and ErrCaptchaRejected when the token is not accepted.
func (s *RecaptchaService) VerifyToken(ctx context.Context, token string) error {
	if s.secretKey == "" {
		return ErrCaptchaNotConfigured
	}

	if token == "" {
		return fmt.Errorf("%w: token is required", ErrCaptchaRejected)
	}

	// Prepare the request
	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptchaUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Send verification request
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptchaUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: verifier returned status %d", ErrCaptchaUnavailable, resp.StatusCode)
	}

	// Parse response
	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to parse reCAPTCHA response: %v", ErrCaptchaUnavailable, err)
	}

	// Check if verification was successful
	if !result.Success {
		return fmt.Errorf("%w: %v", ErrCaptchaRejected, result.ErrorCodes)
	}

	// Check score (only reCAPTCHA v3 answers carry one)
	if result.Score != nil && *result.Score < s.minScore {
		return fmt.Errorf("%w: score too low: %.2f < %.2f", ErrCaptchaRejected, *result.Score, s.minScore)
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/osa911/landing/internal/config"
)

func newVerifier(t *testing.T, status int, body string, calls *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		if r.PostForm.Get("secret") != "secret" {
			t.Errorf("expected secret %q, got %q", "secret", r.PostForm.Get("secret"))
		}
		if r.PostForm.Get("response") != "token-123" {
			t.Errorf("expected response token %q, got %q", "token-123", r.PostForm.Get("response"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifyToken(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		minScore float64
		wantErr  error
	}{
		{"v2 success", http.StatusOK, `{"success":true,"hostname":"localhost"}`, 0.5, nil},
		{"v3 good score", http.StatusOK, `{"success":true,"score":0.9}`, 0.5, nil},
		{"v3 low score", http.StatusOK, `{"success":true,"score":0.1}`, 0.5, ErrCaptchaRejected},
		{"rejected", http.StatusOK, `{"success":false,"error-codes":["invalid-input-response"]}`, 0, ErrCaptchaRejected},
		{"garbage body", http.StatusOK, `<html>`, 0, ErrCaptchaUnavailable},
		{"upstream error", http.StatusServiceUnavailable, `{}`, 0, ErrCaptchaUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := newVerifier(t, tt.status, tt.body, &calls)

			svc := NewRecaptchaService(config.CaptchaConfig{
				SecretKey: "secret",
				VerifyURL: srv.URL,
				MinScore:  tt.minScore,
			}, time.Second)

			err := svc.VerifyToken(context.Background(), "token-123")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("VerifyToken() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("VerifyToken() error = %v, want %v", err, tt.wantErr)
			}
			if calls != 1 {
				t.Errorf("expected 1 verifier call, got %d", calls)
			}
		})
	}
}

func TestVerifyToken_MissingSecretMakesNoCall(t *testing.T) {
	calls := 0
	srv := newVerifier(t, http.StatusOK, `{"success":true}`, &calls)

	svc := NewRecaptchaService(config.CaptchaConfig{VerifyURL: srv.URL}, time.Second)

	if err := svc.VerifyToken(context.Background(), "token-123"); !errors.Is(err, ErrCaptchaNotConfigured) {
		t.Fatalf("expected ErrCaptchaNotConfigured, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no verifier call, got %d", calls)
	}
}

func TestVerifyToken_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	svc := NewRecaptchaService(config.CaptchaConfig{SecretKey: "secret", VerifyURL: srv.URL}, 50*time.Millisecond)

	err := svc.VerifyToken(context.Background(), "token-123")
	if !errors.Is(err, ErrCaptchaUnavailable) {
		t.Fatalf("expected ErrCaptchaUnavailable on timeout, got %v", err)
	}
}

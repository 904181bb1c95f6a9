package service

import (
	"errors"
	"fmt"
)

// Category tags why a contact relay attempt failed
type Category string

const (
	CategoryInvalidInput     Category = "INVALID_INPUT"
	CategoryCaptchaRejected  Category = "CAPTCHA_REJECTED"
	CategoryConfigIncomplete Category = "CONFIG_INCOMPLETE"
	CategoryRelayUnreachable Category = "RELAY_UNREACHABLE"
	CategorySendFailed       Category = "SEND_FAILED"
	CategoryInternal         Category = "INTERNAL"
)

// Sentinel errors for service layer
var (
	ErrValidation           = errors.New("validation error")
	ErrCaptchaNotConfigured = errors.New("reCAPTCHA secret key not configured")
	ErrCaptchaRejected      = errors.New("reCAPTCHA verification failed")
	ErrCaptchaUnavailable   = errors.New("reCAPTCHA verification unavailable")
	ErrMailNotConfigured    = errors.New("SMTP configuration incomplete")
	ErrNoDestination        = errors.New("no destination address configured")
)

// RelayError is a failed relay step: the category drives the HTTP status,
// Message is safe to show to visitors and Err keeps the full cause for logs.
type RelayError struct {
	Category Category
	Message  string
	Err      error
}

func (e *RelayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Category, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether the caller, not the server, caused the failure
func (e *RelayError) IsClientError() bool {
	return e.Category == CategoryInvalidInput || e.Category == CategoryCaptchaRejected
}

// AsRelayError extracts a RelayError, wrapping anything else as internal
func AsRelayError(err error) *RelayError {
	var re *RelayError
	if errors.As(err, &re) {
		return re
	}
	return &RelayError{Category: CategoryInternal, Message: MsgInternal, Err: err}
}

func fail(category Category, message string, err error) *RelayError {
	return &RelayError{Category: category, Message: message, Err: err}
}

package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/osa911/landing/internal/config"
	"github.com/osa911/landing/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type stubCaptcha struct {
	err   error
	calls int
	token string
}

func (s *stubCaptcha) VerifyToken(_ context.Context, token string) error {
	s.calls++
	s.token = token
	return s.err
}

type stubMailer struct {
	verifyErr   error
	sendErr     error
	sendBlocks  bool
	verifyCalls int
	sendCalls   int
	sent        *Envelope
}

func (m *stubMailer) Verify(_ context.Context) error {
	m.verifyCalls++
	return m.verifyErr
}

func (m *stubMailer) Send(ctx context.Context, env *Envelope) error {
	m.sendCalls++
	m.sent = env
	if m.sendBlocks {
		<-ctx.Done()
		return ctx.Err()
	}
	return m.sendErr
}

func testConfig() *config.Config {
	return &config.Config{
		UpstreamTimeout: time.Second,
		Captcha:         config.CaptchaConfig{SecretKey: "secret"},
		SMTP: config.SMTPConfig{
			Host:     "smtp.example.com",
			Port:     587,
			User:     "web@example.com",
			Password: "pw",
		},
		Contact: config.ContactConfig{FromName: "Formulario Web"},
	}
}

func validSubmission() ContactSubmission {
	return ContactSubmission{
		FirstName:    "Ana",
		LastName:     "García",
		Email:        "ana@example.com",
		Phone:        "+34 600 000 000",
		Message:      "Hola,\nquiero información.",
		CaptchaToken: "token-123",
	}
}

func newTestService(cfg *config.Config, c CaptchaVerifier, m Mailer) *ContactService {
	return NewContactService(cfg, c, m, logging.NewWriterLogger(io.Discard, logging.LevelDebug))
}

func relayErr(t *testing.T, err error) *RelayError {
	t.Helper()
	var re *RelayError
	require.ErrorAs(t, err, &re)
	return re
}

func TestRelay_Success(t *testing.T) {
	captcha := &stubCaptcha{}
	mailer := &stubMailer{}
	cfg := testConfig()
	cfg.Contact.CCEmail = "cc@example.com"

	err := newTestService(cfg, captcha, mailer).Relay(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, 1, captcha.calls)
	assert.Equal(t, "token-123", captcha.token)
	assert.Equal(t, 1, mailer.verifyCalls)
	assert.Equal(t, 1, mailer.sendCalls)

	env := mailer.sent
	require.NotNil(t, env)
	assert.Equal(t, "Nuevo mensaje de contacto de Ana García", env.Subject)
	assert.Equal(t, []string{"web@example.com"}, env.To)
	assert.Equal(t, []string{"cc@example.com"}, env.CC)
	assert.Equal(t, "web@example.com", env.From)
	assert.Equal(t, "Formulario Web", env.FromName)
	assert.Equal(t, "ana@example.com", env.ReplyTo)
	assert.Contains(t, env.Text, "Teléfono: +34 600 000 000")
	assert.Contains(t, env.Text, "Mensaje:\nHola,\nquiero información.")
	assert.Contains(t, env.HTML, "Hola,<br>quiero información.")
}

func TestRelay_InputChecks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *ContactSubmission)
		message string
	}{
		{"missing captcha", func(s *ContactSubmission) { s.CaptchaToken = "" }, MsgCaptchaRequired},
		{"missing captcha wins over missing fields", func(s *ContactSubmission) { s.CaptchaToken = ""; s.Phone = "" }, MsgCaptchaRequired},
		{"blank first name", func(s *ContactSubmission) { s.FirstName = "  " }, MsgMissingFields},
		{"missing message", func(s *ContactSubmission) { s.Message = "" }, MsgMissingFields},
		{"malformed email", func(s *ContactSubmission) { s.Email = "a@b" }, MsgInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captcha := &stubCaptcha{}
			mailer := &stubMailer{}
			sub := validSubmission()
			tt.mutate(&sub)

			re := relayErr(t, newTestService(testConfig(), captcha, mailer).Relay(context.Background(), sub))

			assert.Equal(t, CategoryInvalidInput, re.Category)
			assert.Equal(t, tt.message, re.Message)
			assert.True(t, re.IsClientError())
			assert.Zero(t, captcha.calls, "verifier must not be called")
			assert.Zero(t, mailer.verifyCalls+mailer.sendCalls)
		})
	}
}

func TestRelay_CaptchaRejected(t *testing.T) {
	captcha := &stubCaptcha{err: ErrCaptchaRejected}
	mailer := &stubMailer{}

	re := relayErr(t, newTestService(testConfig(), captcha, mailer).Relay(context.Background(), validSubmission()))

	assert.Equal(t, CategoryCaptchaRejected, re.Category)
	assert.Equal(t, MsgCaptchaInvalid, re.Message)
	assert.Zero(t, mailer.verifyCalls)
	assert.Zero(t, mailer.sendCalls)
}

func TestRelay_CaptchaNotConfiguredFailsClosed(t *testing.T) {
	captcha := &stubCaptcha{err: ErrCaptchaNotConfigured}
	mailer := &stubMailer{}

	re := relayErr(t, newTestService(testConfig(), captcha, mailer).Relay(context.Background(), validSubmission()))

	assert.Equal(t, CategoryConfigIncomplete, re.Category)
	assert.Equal(t, MsgCaptchaConfig, re.Message)
	assert.False(t, re.IsClientError())
	assert.Zero(t, mailer.verifyCalls+mailer.sendCalls)
}

func TestRelay_CaptchaProviderDown(t *testing.T) {
	captcha := &stubCaptcha{err: errors.New("dial tcp: connection refused")}
	mailer := &stubMailer{}

	re := relayErr(t, newTestService(testConfig(), captcha, mailer).Relay(context.Background(), validSubmission()))

	assert.Equal(t, CategoryRelayUnreachable, re.Category)
	assert.Equal(t, MsgCaptchaUnavailable, re.Message)
	assert.Zero(t, mailer.verifyCalls)
}

func TestRelay_SMTPConfigIncomplete(t *testing.T) {
	for _, field := range []string{"host", "user", "password"} {
		t.Run(field, func(t *testing.T) {
			cfg := testConfig()
			switch field {
			case "host":
				cfg.SMTP.Host = ""
			case "user":
				cfg.SMTP.User = ""
			case "password":
				cfg.SMTP.Password = ""
			}
			captcha := &stubCaptcha{}
			mailer := &stubMailer{}

			re := relayErr(t, newTestService(cfg, captcha, mailer).Relay(context.Background(), validSubmission()))

			assert.Equal(t, CategoryConfigIncomplete, re.Category)
			assert.Equal(t, MsgSMTPConfig, re.Message)
			assert.ErrorIs(t, re, ErrMailNotConfigured)
			assert.Equal(t, 1, captcha.calls)
			assert.Zero(t, mailer.verifyCalls, "no connection attempt without credentials")
		})
	}
}

func TestRelay_RelayUnreachable(t *testing.T) {
	mailer := &stubMailer{verifyErr: errors.New("dial tcp 10.0.0.1:587: i/o timeout")}

	re := relayErr(t, newTestService(testConfig(), &stubCaptcha{}, mailer).Relay(context.Background(), validSubmission()))

	assert.Equal(t, CategoryRelayUnreachable, re.Category)
	assert.Equal(t, MsgRelayUnreachable, re.Message)
	assert.Zero(t, mailer.sendCalls)
}

func TestRelay_SendRejected(t *testing.T) {
	mailer := &stubMailer{sendErr: errors.New("550 mailbox unavailable")}

	re := relayErr(t, newTestService(testConfig(), &stubCaptcha{}, mailer).Relay(context.Background(), validSubmission()))

	assert.Equal(t, CategorySendFailed, re.Category)
	assert.Equal(t, MsgSendFailed, re.Message)
	assert.NotEqual(t, MsgRelayUnreachable, re.Message)
	assert.Contains(t, re.Error(), "550 mailbox unavailable")
}

func TestRelay_SendTimeoutIsUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.UpstreamTimeout = 20 * time.Millisecond
	mailer := &stubMailer{sendBlocks: true}

	re := relayErr(t, newTestService(cfg, &stubCaptcha{}, mailer).Relay(context.Background(), validSubmission()))

	assert.Equal(t, CategoryRelayUnreachable, re.Category)
	assert.Equal(t, 1, mailer.sendCalls)
}

func TestRelay_NoRetries(t *testing.T) {
	mailer := &stubMailer{sendErr: errors.New("421 try again later")}

	_ = newTestService(testConfig(), &stubCaptcha{}, mailer).Relay(context.Background(), validSubmission())

	assert.Equal(t, 1, mailer.verifyCalls)
	assert.Equal(t, 1, mailer.sendCalls)
}

type panickyMailer struct{ stubMailer }

func (p *panickyMailer) Send(context.Context, *Envelope) error { panic("boom") }

func TestRelay_PanicBecomesInternalError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc := newTestService(testConfig(), &stubCaptcha{}, &panickyMailer{})
	svc.tracer = tp.Tracer("test")

	re := relayErr(t, svc.Relay(context.Background(), validSubmission()))

	assert.Equal(t, CategoryInternal, re.Category)
	assert.Equal(t, MsgInternal, re.Message)
	assert.Contains(t, re.Error(), "panic in send")

	// Every span opened for the attempt is closed, the panicking step included
	assert.Len(t, recorder.Ended(), len(recorder.Started()))

	var sendSpan sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		if span.Name() == "contact.send" {
			sendSpan = span
		}
	}
	require.NotNil(t, sendSpan)
	assert.Equal(t, codes.Error, sendSpan.Status().Code)
}

func TestCompose_HeaderInjectionAndEscaping(t *testing.T) {
	svc := newTestService(testConfig(), &stubCaptcha{}, &stubMailer{})
	sub := validSubmission()
	sub.FirstName = "Ana\r\nBcc: evil@example.com"
	sub.Message = "<script>alert(1)</script>"

	env := svc.compose(sub)

	assert.NotContains(t, env.Subject, "\n")
	assert.NotContains(t, env.HTML, "<script>")
	assert.Contains(t, env.Text, "<script>alert(1)</script>")
	assert.Equal(t, []string{"web@example.com"}, env.To)
	assert.Nil(t, env.CC)
}

func TestCompose_PrefersContactDestination(t *testing.T) {
	cfg := testConfig()
	cfg.Contact.ToEmail = "hola@example.com"

	env := newTestService(cfg, &stubCaptcha{}, &stubMailer{}).compose(validSubmission())

	assert.Equal(t, []string{"hola@example.com"}, env.To)
	assert.True(t, strings.HasPrefix(env.Text, "Nombre: Ana García\n"))
}

func TestAsRelayError(t *testing.T) {
	plain := errors.New("boom")
	re := AsRelayError(plain)
	assert.Equal(t, CategoryInternal, re.Category)
	assert.ErrorIs(t, re, plain)

	original := fail(CategorySendFailed, MsgSendFailed, plain)
	assert.Same(t, original, AsRelayError(original))
}

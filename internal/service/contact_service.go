package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osa911/landing/internal/api/sanitization"
	"github.com/osa911/landing/internal/config"
	"github.com/osa911/landing/internal/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Messages returned to callers of the contact endpoint
const (
	MsgSuccess            = "Mensaje enviado correctamente"
	MsgCaptchaRequired    = "Captcha requerido"
	MsgMissingFields      = "Faltan campos obligatorios"
	MsgInvalidEmail       = "Email inválido"
	MsgCaptchaConfig      = "Configuración del captcha incompleta"
	MsgCaptchaUnavailable = "No se pudo verificar el captcha"
	MsgCaptchaInvalid     = "Captcha inválido"
	MsgSMTPConfig         = "Configuración SMTP incompleta. Revisa SMTP_HOST, SMTP_USER y SMTP_PASS."
	MsgNoDestination      = "No hay correo de destino configurado"
	MsgRelayUnreachable   = "No se pudo conectar al servidor de correo (SMTP)."
	MsgSendFailed         = "No se pudo enviar el mensaje"
	MsgInternal           = "Error interno al enviar el mensaje"
)

const subjectTemplate = "Nuevo mensaje de contacto de %s %s"

const tracerName = "github.com/osa911/landing/internal/service"

// ContactSubmission is the server-side view of one contact request
type ContactSubmission struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Message      string
	CaptchaToken string
}

// ContactService verifies the captcha of a submission and relays it by email
type ContactService struct {
	cfg     *config.Config
	captcha CaptchaVerifier
	mailer  Mailer
	logger  *logging.Logger
	tracer  trace.Tracer
	timeout time.Duration
	steps   []relayStep
}

// relayState is threaded through the steps of one attempt
type relayState struct {
	submission ContactSubmission
	envelope   *Envelope
}

type relayStep struct {
	name string
	run  func(ctx context.Context, st *relayState) *RelayError
}

// NewContactService wires the relay pipeline. cfg is read, never mutated.
func NewContactService(cfg *config.Config, captcha CaptchaVerifier, mailer Mailer, logger *logging.Logger) *ContactService {
	s := &ContactService{
		cfg:     cfg,
		captcha: captcha,
		mailer:  mailer,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		timeout: cfg.UpstreamTimeout,
	}
	s.steps = []relayStep{
		{name: "check_input", run: s.checkInput},
		{name: "verify_captcha", run: s.verifyCaptcha},
		{name: "check_mail_config", run: s.checkMailConfig},
		{name: "verify_relay", run: s.verifyRelay},
		{name: "send", run: s.send},
	}
	return s
}

// Relay runs every step in order and stops at the first failure, which is
// returned as a *RelayError. No step is retried.
func (s *ContactService) Relay(ctx context.Context, sub ContactSubmission) error {
	ctx, span := s.tracer.Start(ctx, "contact.relay")
	defer span.End()

	st := &relayState{submission: sub}
	for _, step := range s.steps {
		if re := s.runStep(ctx, step, st); re != nil {
			span.SetAttributes(attribute.String("contact.failure", string(re.Category)))
			span.SetStatus(codes.Error, re.Message)
			s.logger.Error("contact relay failed at %s [%s]: %v", step.name, re.Category, re)
			return re
		}
	}

	s.logger.Info("contact message from %s relayed to %s", sub.Email, strings.Join(st.envelope.To, ", "))
	return nil
}

// runStep runs one step inside its own span. A panicking step fails the
// attempt as INTERNAL and its span is still ended.
func (s *ContactService) runStep(ctx context.Context, step relayStep, st *relayState) (re *RelayError) {
	ctx, span := s.tracer.Start(ctx, "contact."+step.name,
		trace.WithAttributes(attribute.String("contact.step", step.name)))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			re = fail(CategoryInternal, MsgInternal, fmt.Errorf("panic in %s: %v", step.name, r))
		}
		if re != nil {
			span.RecordError(re)
			span.SetStatus(codes.Error, string(re.Category))
		}
	}()

	return step.run(ctx, st)
}

func (s *ContactService) checkInput(_ context.Context, st *relayState) *RelayError {
	sub := st.submission
	if strings.TrimSpace(sub.CaptchaToken) == "" {
		return fail(CategoryInvalidInput, MsgCaptchaRequired, ErrValidation)
	}
	for _, v := range []string{sub.FirstName, sub.LastName, sub.Email, sub.Phone, sub.Message} {
		if strings.TrimSpace(v) == "" {
			return fail(CategoryInvalidInput, MsgMissingFields, ErrValidation)
		}
	}
	if !sanitization.IsEmailShaped(sub.Email) {
		return fail(CategoryInvalidInput, MsgInvalidEmail, ErrValidation)
	}
	return nil
}

func (s *ContactService) verifyCaptcha(ctx context.Context, st *relayState) *RelayError {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.captcha.VerifyToken(ctx, st.submission.CaptchaToken)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrCaptchaNotConfigured):
		return fail(CategoryConfigIncomplete, MsgCaptchaConfig, err)
	case errors.Is(err, ErrCaptchaRejected):
		return fail(CategoryCaptchaRejected, MsgCaptchaInvalid, err)
	default:
		return fail(CategoryRelayUnreachable, MsgCaptchaUnavailable, err)
	}
}

func (s *ContactService) checkMailConfig(_ context.Context, st *relayState) *RelayError {
	if !s.cfg.SMTP.IsComplete() {
		return fail(CategoryConfigIncomplete, MsgSMTPConfig, ErrMailNotConfigured)
	}
	if s.cfg.Destination() == "" {
		return fail(CategoryConfigIncomplete, MsgNoDestination, ErrNoDestination)
	}
	st.envelope = s.compose(st.submission)
	return nil
}

func (s *ContactService) verifyRelay(ctx context.Context, _ *relayState) *RelayError {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.mailer.Verify(ctx); err != nil {
		return fail(CategoryRelayUnreachable, MsgRelayUnreachable, err)
	}
	return nil
}

func (s *ContactService) send(ctx context.Context, st *relayState) *RelayError {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.mailer.Send(ctx, st.envelope); err != nil {
		// An expired deadline means the relay stopped answering, not that it refused
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fail(CategoryRelayUnreachable, MsgRelayUnreachable, err)
		}
		return fail(CategorySendFailed, MsgSendFailed, err)
	}
	return nil
}

// compose builds the notification email for a submission
func (s *ContactService) compose(sub ContactSubmission) *Envelope {
	firstName := sanitization.SanitizeLine(sub.FirstName)
	lastName := sanitization.SanitizeLine(sub.LastName)
	email := sanitization.SanitizeLine(sub.Email)
	phone := sanitization.SanitizeLine(sub.Phone)

	text := fmt.Sprintf("Nombre: %s %s\nEmail: %s\nTeléfono: %s\n\nMensaje:\n%s\n",
		firstName, lastName, email, phone, sub.Message)

	html := fmt.Sprintf(
		"<h2>Nuevo mensaje de contacto</h2>\n"+
			"<p><strong>Nombre:</strong> %s %s</p>\n"+
			"<p><strong>Email:</strong> %s</p>\n"+
			"<p><strong>Teléfono:</strong> %s</p>\n"+
			"<p><strong>Mensaje:</strong></p>\n"+
			"<p>%s</p>\n",
		sanitization.EscapeHTML(firstName),
		sanitization.EscapeHTML(lastName),
		sanitization.EscapeHTML(email),
		sanitization.EscapeHTML(phone),
		sanitization.HTMLLineBreaks(sub.Message),
	)

	env := &Envelope{
		FromName: s.cfg.Contact.FromName,
		From:     s.cfg.SMTP.User,
		To:       []string{s.cfg.Destination()},
		ReplyTo:  email,
		Subject:  fmt.Sprintf(subjectTemplate, firstName, lastName),
		Text:     text,
		HTML:     html,
	}
	if s.cfg.Contact.CCEmail != "" {
		env.CC = []string{s.cfg.Contact.CCEmail}
	}
	return env
}

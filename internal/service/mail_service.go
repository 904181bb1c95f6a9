package service

import (
	"context"
	"fmt"
	"time"

	"github.com/osa911/landing/internal/config"

	"github.com/wneessen/go-mail"
)

// Envelope is a composed email ready to be handed to a Mailer
type Envelope struct {
	FromName string
	From     string
	To       []string
	CC       []string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

// Mailer delivers envelopes through a mail relay. Verify only proves the
// relay is reachable and accepts our credentials; it sends nothing.
type Mailer interface {
	Verify(ctx context.Context) error
	Send(ctx context.Context, env *Envelope) error
}

// SMTPMailer talks to an authenticated SMTP relay
type SMTPMailer struct {
	cfg     config.SMTPConfig
	timeout time.Duration
}

// NewSMTPMailer creates a mailer for the configured relay
func NewSMTPMailer(cfg config.SMTPConfig, timeout time.Duration) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, timeout: timeout}
}

func (m *SMTPMailer) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.timeout),
	}
	// 465 is implicit TLS; everything else upgrades with STARTTLS when offered
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

// Verify dials, authenticates and hangs up
func (m *SMTPMailer) Verify(ctx context.Context) error {
	client, err := m.newClient()
	if err != nil {
		return err
	}
	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", m.cfg.Address(), err)
	}
	return client.Close()
}

// Send delivers env over a fresh connection
func (m *SMTPMailer) Send(ctx context.Context, env *Envelope) error {
	msg, err := buildMsg(env)
	if err != nil {
		return err
	}

	client, err := m.newClient()
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func buildMsg(env *Envelope) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(env.FromName, env.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(env.To...); err != nil {
		return nil, fmt.Errorf("invalid destination address: %w", err)
	}
	if len(env.CC) > 0 {
		if err := msg.Cc(env.CC...); err != nil {
			return nil, fmt.Errorf("invalid cc address: %w", err)
		}
	}
	// The visitor's address only passed a loose shape check; drop it rather
	// than fail the whole send when it is not RFC 5322 compliant.
	if env.ReplyTo != "" {
		_ = msg.ReplyTo(env.ReplyTo)
	}

	msg.Subject(env.Subject)
	msg.SetBodyString(mail.TypeTextPlain, env.Text)
	if env.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, env.HTML)
	}
	return msg, nil
}

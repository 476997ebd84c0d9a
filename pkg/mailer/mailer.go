package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/jagrati-dev/jagrati-api/pkg/config"
)

// Mailer delivers plain-text email. Delivery errors are always returned to
// the caller, never swallowed.
type Mailer interface {
	Send(ctx context.Context, subject, body string, to ...string) error
}

// DeliveryObserver receives the outcome of every delivery attempt.
type DeliveryObserver interface {
	RecordMailDelivery(success bool)
}

type observedMailer struct {
	next     Mailer
	observer DeliveryObserver
}

// WithObserver wraps a mailer so delivery outcomes are reported to the
// observer. A nil observer returns the mailer unchanged.
func WithObserver(next Mailer, observer DeliveryObserver) Mailer {
	if observer == nil {
		return next
	}
	return &observedMailer{next: next, observer: observer}
}

func (m *observedMailer) Send(ctx context.Context, subject, body string, to ...string) error {
	err := m.next.Send(ctx, subject, body, to...)
	m.observer.RecordMailDelivery(err == nil)
	return err
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTP builds a mailer from SMTP configuration.
func NewSMTP(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send delivers a single plain-text message to the given recipients.
func (m *SMTPMailer) Send(ctx context.Context, subject, body string, to ...string) error {
	if len(to) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail %q: %w", subject, err)
	}

	return nil
}

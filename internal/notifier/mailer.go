package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/curaious/taskhive/internal/config"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through the configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(conf *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(conf.SMTP_HOST, conf.SMTP_PORT, conf.SMTP_USERNAME, conf.SMTP_PASSWORD),
		from:   conf.SMTP_FROM,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}

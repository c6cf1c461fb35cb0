package mailer

import (
	"context"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends transactional email. Dispatch failures are logged by the
// caller and never surfaced to end users.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type SMTPMailer struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

func NewSMTPMailer(config *SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		fromEmail: config.FromEmail,
		fromName:  config.FromName,
	}
}

func (s *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.fromEmail, s.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

package mailer

import (
	"context"
	"fmt"

	"github.com/heksoli/Stocks-Watcher/config"

	mail "github.com/wneessen/go-mail"
)

// WelcomeEmailData is the payload for one welcome email dispatch.
type WelcomeEmailData struct {
	Email string
	Name  string
	Intro string
}

// Sender dispatches transactional email via an external relay.
type Sender interface {
	SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error
}

// SMTPSender sends mail through an SMTP relay. Relay errors are returned
// unwrapped in meaning: the caller's host runtime owns retry.
type SMTPSender struct {
	client  *mail.Client
	appName string
	from    string
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender builds a sender from the SMTP configuration.
func NewSMTPSender(cfg config.SMTPConf, appName string) (*SMTPSender, error) {
	if cfg.From == "" {
		return nil, fmt.Errorf("EMAIL_FROM is required")
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPSender{
		client:  client,
		appName: appName,
		from:    cfg.From,
	}, nil
}

// SendWelcomeEmail renders the welcome template and hands the message to
// the relay with an HTML body and a plain-text fallback.
func (s *SMTPSender) SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error {
	msg := mail.NewMsg()

	if err := msg.FromFormat(s.appName, s.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(data.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	msg.Subject(fmt.Sprintf("Welcome to %s - your stock market toolkit is ready 🚀", s.appName))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Welcome to %s! Thanks for joining!", s.appName))
	msg.AddAlternativeString(mail.TypeTextHTML, RenderWelcomeEmail(data.Name, data.Intro))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send welcome email to %s: %w", data.Email, err)
	}

	return nil
}

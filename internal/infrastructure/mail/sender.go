package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-anon-inbox/internal/config"
	"github.com/mailgun/mailgun-go/v4"
	"gopkg.in/gomail.v2"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// NewSender picks the delivery backend named by cfg.MailProvider.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.MailProvider {
	case "smtp":
		return NewSMTPSender(gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword), cfg.MailFrom), nil
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, fmt.Errorf("mailgun provider requires MAILGUN_DOMAIN and MAILGUN_API_KEY")
		}
		mg := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
		if cfg.MailgunEURegion {
			mg.SetAPIBase(mailgun.APIBaseEU)
		}
		return NewMailgunSender(mg, cfg.MailFrom), nil
	case "log", "":
		return LogSender{}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}

type smtpDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	dialer smtpDialer
	from   string
}

func NewSMTPSender(d smtpDialer, from string) *SMTPSender {
	return &SMTPSender{dialer: d, from: from}
}

func (s *SMTPSender) Send(_ context.Context, m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

type mailgunClient interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// MailgunSender delivers mail through the Mailgun HTTP API.
type MailgunSender struct {
	client  mailgunClient
	from    string
	timeout time.Duration
}

func NewMailgunSender(c mailgunClient, from string) *MailgunSender {
	return &MailgunSender{client: c, from: from, timeout: 10 * time.Second}
}

func (s *MailgunSender) Send(ctx context.Context, m Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg := s.client.NewMessage(s.from, m.Subject, m.Text, m.To)
	if m.HTML != "" {
		msg.SetHtml(m.HTML)
	}
	_, id, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	slog.Debug("mailgun accepted message", "id", id, "to", m.To)
	return nil
}

// LogSender writes mail to the log instead of delivering it. Used in development.
type LogSender struct{}

func (LogSender) Send(_ context.Context, m Message) error {
	slog.Info("mail not delivered (log provider)", "to", m.To, "subject", m.Subject, "body", m.Text)
	return nil
}

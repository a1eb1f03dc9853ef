package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/go-anon-inbox/internal/config"
	"github.com/matcornic/hermes/v2"
)

// VerificationMailer renders and sends the signup verification code.
type VerificationMailer struct {
	hermes  hermes.Hermes
	sender  Sender
	appName string
	ttl     time.Duration
}

func NewVerificationMailer(cfg *config.Config, sender Sender, ttl time.Duration) *VerificationMailer {
	return &VerificationMailer{
		hermes: hermes.Hermes{
			Theme:         new(hermes.Default),
			TextDirection: hermes.TDLeftToRight,
			Product: hermes.Product{
				Name: cfg.AppName,
				Link: cfg.AppURL,
			},
		},
		sender:  sender,
		appName: cfg.AppName,
		ttl:     ttl,
	}
}

func (v *VerificationMailer) SendVerificationEmail(ctx context.Context, to, username, code string) error {
	email := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				fmt.Sprintf("Thank you for registering with %s.", v.appName),
			},
			Actions: []hermes.Action{
				{
					Instructions: "Please use the following verification code to complete your registration:",
					InviteCode:   code,
				},
			},
			Outros: []string{
				fmt.Sprintf("This code is valid for %s.", humanDuration(v.ttl)),
				"If you did not request this code, please ignore this email.",
			},
		},
	}

	html, err := v.hermes.GenerateHTML(email)
	if err != nil {
		return fmt.Errorf("render verification html: %w", err)
	}
	text, err := v.hermes.GeneratePlainText(email)
	if err != nil {
		return fmt.Errorf("render verification text: %w", err)
	}

	return v.sender.Send(ctx, Message{
		To:      to,
		Subject: fmt.Sprintf("%s | Verification Code", v.appName),
		HTML:    html,
		Text:    text,
	})
}

func humanDuration(d time.Duration) string {
	switch {
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}

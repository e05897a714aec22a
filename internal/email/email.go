// Package email sends transactional mail through Resend. Without an
// API key (or in dev mode) sends are logged instead of delivered, so
// local environments work without credentials.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender struct {
	client    *resend.Client
	logger    *slog.Logger
	fromEmail string
	appName   string
	appURL    string
}

func NewSender(apiKey, fromEmail, appName, appURL string, logger *slog.Logger) *Sender {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	return &Sender{
		client:    client,
		logger:    logger,
		fromEmail: fromEmail,
		appName:   appName,
		appURL:    appURL,
	}
}

func (s *Sender) SendWelcome(ctx context.Context, toEmail, name string) error {
	subject := fmt.Sprintf("Welcome to %s!", s.appName)
	body := fmt.Sprintf(
		"Hello %s!\n\nYour %s account has been created successfully.\n\nStart tracking your goals at %s\n\nThanks,\nThe %s Team\n",
		name, s.appName, s.appURL, s.appName,
	)
	return s.send(ctx, "welcome", toEmail, subject, body)
}

func (s *Sender) SendPasswordReset(ctx context.Context, toEmail, token, name string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)
	subject := fmt.Sprintf("Password Reset Request - %s", s.appName)
	body := fmt.Sprintf(
		"Hello %s!\n\nWe received a request to reset your %s password.\n\nReset it here: %s\n\nThis link expires in 1 hour. If you didn't request this reset, please ignore this email.\n\nThanks,\nThe %s Team\n",
		name, s.appName, resetURL, s.appName,
	)
	return s.send(ctx, "password_reset", toEmail, subject, body)
}

func (s *Sender) send(ctx context.Context, kind, toEmail, subject, body string) error {
	if s.client == nil {
		s.logger.Info("email send simulated (no API key configured)",
			slog.String("type", kind), slog.String("to", toEmail), slog.String("subject", subject))
		return nil
	}
	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{toEmail},
		Subject: subject,
		Text:    body,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send %s email: %w", kind, err)
	}
	s.logger.Info("email sent", slog.String("type", kind), slog.String("to", toEmail))
	return nil
}

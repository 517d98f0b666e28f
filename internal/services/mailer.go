package services

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Mail is one outgoing email.
type Mail struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers email through an external provider.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// ResendMailer sends email through the Resend API.
type ResendMailer struct {
	client  *resend.Client
	from    string
	replyTo string
	logger  *zap.Logger
}

func NewResendMailer(apiKey, from, replyTo string, logger *zap.Logger) *ResendMailer {
	return &ResendMailer{
		client:  resend.NewClient(apiKey),
		from:    from,
		replyTo: replyTo,
		logger:  logger,
	}
}

func (m *ResendMailer) Send(ctx context.Context, mail Mail) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{mail.To},
		Subject: mail.Subject,
		Html:    mail.HTML,
	}
	if m.replyTo != "" {
		params.ReplyTo = m.replyTo
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	m.logger.Info("email sent",
		zap.String("message_id", sent.Id),
		zap.String("to", mail.To),
		zap.String("subject", mail.Subject))
	return nil
}

// NoopMailer logs instead of sending; used when email is disabled in
// config (local development).
type NoopMailer struct {
	logger *zap.Logger
}

func NewNoopMailer(logger *zap.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

func (m *NoopMailer) Send(_ context.Context, mail Mail) error {
	m.logger.Info("email delivery disabled, dropping message",
		zap.String("to", mail.To),
		zap.String("subject", mail.Subject))
	return nil
}

package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/freelance-directory/internal/config"
)

// Message is a plain-text email.
type Message struct {
	Subject string
	Body    string
	From    string
	To      []string
}

// Mailer delivers messages. Delivery is synchronous and not retried.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New selects SMTP delivery when a host is configured and logs messages otherwise.
func New(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.SMTPHost == "" {
		logger.Warn("MAIL_SMTP_HOST not provided; emails will only be logged")
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg)
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer constructs a LogMailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("email",
		zap.String("from", msg.From),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

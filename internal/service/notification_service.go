package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/freelance-directory/internal/events"
	"github.com/spec-kit/freelance-directory/internal/mail"
)

// NotificationConfig holds sender details for outgoing mail.
type NotificationConfig struct {
	SiteName string
	From     string
}

// NotificationService turns account events into emails.
type NotificationService struct {
	mailer mail.Mailer
	logger *zap.Logger
	cfg    NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(mailer mail.Mailer, logger *zap.Logger, cfg NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		mailer: mailer,
		logger: logger,
		cfg:    cfg,
	}
}

// RegisterHandlers subscribes to the events that carry a mailed link.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	return n.sendLink(ctx, event, mail.ActivationTemplate)
}

func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	return n.sendLink(ctx, event, mail.PasswordResetTemplate)
}

func (n *NotificationService) sendLink(ctx context.Context, event events.Event, tpl *mail.Template) error {
	payload, ok := event.Payload.(events.LinkPayload)
	if !ok {
		return errors.New("unexpected payload for " + string(event.Type))
	}
	if payload.Email == "" {
		n.logger.Warn("no email address; skipping notification",
			zap.String("user_id", event.UserID),
			zap.String("event_type", string(event.Type)))
		return nil
	}

	subject, body, err := tpl.Render(mail.LinkData{
		SiteName: n.cfg.SiteName,
		Username: payload.Username,
		URL:      payload.URL,
		ValidFor: payload.ValidFor.String(),
	})
	if err != nil {
		return err
	}

	err = n.mailer.Send(ctx, mail.Message{
		Subject: subject,
		Body:    body,
		From:    n.cfg.From,
		To:      []string{payload.Email},
	})
	if err != nil {
		n.logger.Warn("email delivery failed",
			zap.String("user_id", event.UserID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	n.logger.Debug("email sent",
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
	return nil
}

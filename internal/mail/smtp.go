package mail

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"

	"github.com/spec-kit/freelance-directory/internal/config"
)

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer constructs an SMTPMailer.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.From,
	}
}

// Send dials the relay and delivers msg. The context is only checked before dialing;
// gomail has no cancellation support.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gm, err := m.build(msg)
	if err != nil {
		return err
	}
	return m.dialer.DialAndSend(gm)
}

func (m *SMTPMailer) build(msg Message) (*gomail.Message, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("no recipients specified")
	}
	from := msg.From
	if from == "" {
		from = m.from
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	return gm, nil
}

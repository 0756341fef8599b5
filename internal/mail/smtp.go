package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/quillcms/quill/internal/config"
)

// SMTPSender delivers through an SMTP relay via gomail.
type SMTPSender struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if len(m.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	from := m.From
	if from == "" {
		from = s.cfg.From
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", m.To...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)

	return s.dialer.DialAndSend(msg)
}

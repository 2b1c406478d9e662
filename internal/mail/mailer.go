package mail

import (
	"errors"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

// Mailer delivers notification mail through an SMTP relay. Delivery failures
// are returned to the caller; notification consumers treat them as non-fatal.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer builds the mailer. When no SMTP host is configured the mailer is
// disabled and Send becomes a logged no-op.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	m := &Mailer{from: cfg.From, logger: logger}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// Send delivers a message with both plain-text and HTML bodies.
func (m *Mailer) Send(to, subject, html, text string) error {
	if to == "" {
		return errors.New("recipient required")
	}
	if m.dialer == nil {
		m.logger.Debug("smtp not configured; dropping mail",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	return m.dialer.DialAndSend(msg)
}

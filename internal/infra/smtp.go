package infra

import (
	"errors"
	"fmt"
	"net/smtp"

	"abbafoods/internal/config"

	"github.com/jordan-wright/email"
)

// ErrMailerNoConfigurado is returned when SMTP_HOST is empty.
var ErrMailerNoConfigurado = errors.New("mailer: SMTP no configurado")

// Mailer sends plain-text mails, optionally with one attachment.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Configurado reports whether an SMTP host is set.
func (m *Mailer) Configurado() bool { return m != nil && m.host != "" }

// Send delivers one message. attachPath may be empty.
func (m *Mailer) Send(to []string, subject, body, attachPath string) error {
	if !m.Configurado() {
		return ErrMailerNoConfigurado
	}
	e := email.NewEmail()
	e.From = m.user
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)

	if attachPath != "" {
		if _, err := e.AttachFile(attachPath); err != nil {
			return fmt.Errorf("mailer: attach: %w", err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return e.Send(m.addr, auth)
}

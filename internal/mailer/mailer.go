package mailer

import (
	"context"

	"github.com/wneessen/go-mail"

	"github.com/Cdiksha/Smart-ToDo/internal/config"
)

// SMTP отправляет письма через внешний SMTP-сервер.
// Без логина и пароля отправка считается выключенной.
type SMTP struct {
	cfg config.MailConfig
}

func NewSMTP(cfg config.MailConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) Configured() bool {
	return s.cfg.Configured()
}

func (s *SMTP) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.Username); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	policy := mail.NoTLS
	if s.cfg.UseTLS {
		policy = mail.TLSMandatory
	}

	client, err := mail.NewClient(s.cfg.Server,
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPortPolicy(policy),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

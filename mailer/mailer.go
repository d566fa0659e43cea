package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"registration-api/config"
	"registration-api/models"
)

// Mailer sends registration emails over SMTP. A deployment without a mail
// transport gets an inert Mailer whose sends return nil immediately; that
// is a normal running mode, not a degraded one.
type Mailer struct {
	client     *mail.Client
	from       string
	adminEmail string
}

// New builds a Mailer from the deployment configuration.
func New(cfg *config.Config) (*Mailer, error) {
	m := &Mailer{from: cfg.EmailFrom, adminEmail: cfg.EmailAdmin}
	if !cfg.MailConfigured() {
		return m, nil
	}

	opts := []mail.Option{mail.WithPort(cfg.SMTPPort)}
	if cfg.SMTPSecure {
		opts = append(opts, mail.WithSSL())
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPass),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build smtp client: %w", err)
	}
	m.client = client
	return m, nil
}

// Enabled reports whether a mail transport is configured.
func (m *Mailer) Enabled() bool {
	return m.client != nil
}

// SendConfirmation emails the registrant a summary of their submission.
func (m *Mailer) SendConfirmation(ctx context.Context, reg models.Registration) error {
	if m.client == nil {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(reg.Email); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("Registration received - %s", reg.Name))
	msg.SetBodyString(mail.TypeTextPlain, confirmationText(reg))
	msg.AddAlternativeString(mail.TypeTextHTML, confirmationHTML(reg))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

// SendAdminNotice emails the admin address the full stored record. It is a
// no-op when no transport or no admin address is configured.
func (m *Mailer) SendAdminNotice(ctx context.Context, reg models.Registration) error {
	if m.client == nil || m.adminEmail == "" {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.adminEmail); err != nil {
		return fmt.Errorf("invalid admin address: %w", err)
	}
	msg.Subject(fmt.Sprintf("New registration: %s", reg.Name))
	msg.SetBodyString(mail.TypeTextHTML, adminHTML(reg))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send admin notification: %w", err)
	}
	return nil
}

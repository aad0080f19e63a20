// Package mailer delivers feedback notifications over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer sends feedback mail to the support inbox. A zero-config
// mailer is disabled and drops sends silently, so the app runs
// without SMTP credentials.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

func New(host string, port int, username, password, from, to string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from, to: to}
}

// Enabled reports whether SMTP delivery is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.host != "" && m.to != ""
}

// SendFeedback mails one feedback submission to the support address.
func (m *Mailer) SendFeedback(ctx context.Context, name, email, category, message string) error {
	if !m.Enabled() {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mailer: from: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("mailer: to: %w", err)
	}
	if email != "" {
		if err := msg.ReplyTo(email); err != nil {
			return fmt.Errorf("mailer: reply-to: %w", err)
		}
	}

	msg.Subject(fmt.Sprintf("EchoLearn feedback: %s", category))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"New feedback submission\n\nName: %s\nEmail: %s\nCategory: %s\n\n%s\n",
		name, email, category, message,
	))

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	)
	if err != nil {
		return fmt.Errorf("mailer: client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// Package mail delivers outbound messages such as confirmation codes.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a message to a single recipient. The auth service depends on
// this interface so tests can capture deliveries instead of sending them.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTPMailer creates a mailer pointed at host:port, sending as from.
func NewSMTPMailer(host, port, from string) *SMTPMailer {
	return &SMTPMailer{addr: host + ":" + port, from: from}
}

// Send delivers the message, returning the transport error as-is so callers
// can surface delivery failures.
func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes messages to the structured log instead of sending them.
// Used in development when no SMTP host is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func NewLogMailer() *LogMailer {
	return &LogMailer{Logger: slog.Default()}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.Logger.InfoContext(ctx, "mail delivery (log only)",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}

// Package mailer provides SMTP delivery for transactional mail such as
// password-reset links. Delivery is a single synchronous attempt; callers
// decide what a failure means.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds SMTP connection credentials.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Client sends mail through a single SMTP endpoint.
type Client struct {
	cfg Config
}

// New creates a mailer from SMTP credentials.
func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Send delivers one HTML email. Authentication is skipped when no username
// is configured (local relays, test servers).
func (c *Client) Send(to, subject, body string) error {
	addr := c.cfg.Host + ":" + c.cfg.Port

	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	raw := buildRaw(c.cfg.From, to, subject, body)
	if err := smtp.SendMail(addr, auth, c.cfg.From, []string{to}, raw); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}

func buildRaw(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

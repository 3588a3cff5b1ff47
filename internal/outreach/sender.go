// Package outreach sends campaign emails to leads and records every
// attempt in the outreach log.
package outreach

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/logger"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages. Implementations must be safe for concurrent
// use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender returns an SMTP sender when configured, otherwise the dry-run
// log sender.
func NewSender(cfg config.SMTPConfig, log logger.Logger) Sender {
	if cfg.Host == "" {
		log.Info("smtp not configured, outreach runs dry")
		return &logSender{logger: log}
	}
	return &smtpSender{cfg: cfg}
}

// smtpSender delivers over SMTP with optional AUTH PLAIN.
type smtpSender struct {
	cfg config.SMTPConfig
}

func (s *smtpSender) Send(_ context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	payload := buildPayload(s.cfg.From, msg)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// buildPayload assembles RFC 5322 headers and the plain-text body.
func buildPayload(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// logSender logs instead of sending. Default when SMTP is unconfigured.
type logSender struct {
	logger logger.Logger
}

func (s *logSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("outreach dry run",
		logger.String("to", msg.To),
		logger.String("subject", msg.Subject),
	)
	return nil
}

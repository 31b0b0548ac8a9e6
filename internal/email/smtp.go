package email

import (
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// SMTPConfig holds the server credentials for the SMTP channel. The channel
// is considered configured only when host, username, and password are all
// present.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	UseTLS    bool
	FromEmail string
	FromName  string
}

// SMTPChannel delivers over plain SMTP with optional STARTTLS. Only reached
// when no API key is configured.
type SMTPChannel struct {
	cfg         SMTPConfig
	dialTimeout time.Duration
}

func NewSMTPChannel(cfg SMTPConfig) *SMTPChannel {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPChannel{cfg: cfg, dialTimeout: 10 * time.Second}
}

func (c *SMTPChannel) Name() string { return ChannelSMTP }

func (c *SMTPChannel) Configured() bool {
	return c.cfg.Host != "" && c.cfg.Username != "" && c.cfg.Password != ""
}

func (c *SMTPChannel) Send(m Message) error {
	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))

	conn, err := net.DialTimeout("tcp", addr, c.dialTimeout)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			// Shared hosts commonly block outbound SMTP; steer the operator
			// toward the HTTP API channel.
			return fmt.Errorf("connection refused, the network may block outbound SMTP; set MAIL_API_KEY to deliver via the HTTP API instead: %w", err)
		}
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	conn.SetDeadline(time.Now().Add(30 * time.Second))

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if c.cfg.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: c.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(c.cfg.FromEmail); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(m.To); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMIME(c.cfg.FromEmail, c.cfg.FromName, m)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	return client.Quit()
}

// buildMIME assembles a multipart/mixed message: a plain-text body plus the
// base64-encoded attachment.
func buildMIME(fromEmail, fromName string, m Message) []byte {
	const boundary = "chorechart-mime-boundary"

	var b strings.Builder
	writeHeader := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}

	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}
	writeHeader("From", from)
	writeHeader("To", m.To)
	writeHeader("Subject", m.Subject)
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", `multipart/mixed; boundary="`+boundary+`"`)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	writeHeader("Content-Type", `text/plain; charset="utf-8"`)
	b.WriteString("\r\n")
	b.WriteString(m.TextBody)
	b.WriteString("\r\n")

	if len(m.Attachment) > 0 {
		b.WriteString("--" + boundary + "\r\n")
		writeHeader("Content-Type", m.AttachmentMIME+`; name="`+m.AttachmentName+`"`)
		writeHeader("Content-Transfer-Encoding", "base64")
		writeHeader("Content-Disposition", `attachment; filename="`+m.AttachmentName+`"`)
		b.WriteString("\r\n")
		b.WriteString(wrapBase64(m.Attachment))
		b.WriteString("\r\n")
	}

	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

// wrapBase64 encodes data and folds it at the 76-column MIME limit.
func wrapBase64(data []byte) string {
	enc := base64.StdEncoding.EncodeToString(data)

	var b strings.Builder
	for len(enc) > 76 {
		b.WriteString(enc[:76])
		b.WriteString("\r\n")
		enc = enc[76:]
	}
	b.WriteString(enc)
	return b.String()
}

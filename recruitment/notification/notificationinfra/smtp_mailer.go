package notificationinfra

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/talencee/careers/pkg/fsx"
	"github.com/talencee/careers/recruitment/notification"
)

// SMTPConfig holds the outbound SMTP settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
	Timeout  time.Duration
}

// SMTPMailer delivers messages over SMTP, upgrading with STARTTLS when asked
type SMTPMailer struct {
	cfg      SMTPConfig
	composer *composer
	dialer   *net.Dialer
}

var _ notification.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates an SMTP mailer that reads attachments from files
func NewSMTPMailer(cfg SMTPConfig, files fsx.FileSystem) *SMTPMailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPMailer{
		cfg:      cfg,
		composer: newComposer(files),
		dialer:   &net.Dialer{Timeout: cfg.Timeout},
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg *notification.Message) (string, error) {
	raw, id, err := m.composer.compose(ctx, msg)
	if err != nil {
		return "", err
	}

	if err := m.deliver(ctx, envelopeAddress(msg.From), envelopeAddress(msg.To), raw); err != nil {
		return "", notification.ErrSendFailed(err).WithDetail("to", msg.To)
	}
	return id, nil
}

func (m *SMTPMailer) deliver(ctx context.Context, from, to string, raw []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	conn, err := m.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	deadline := time.Now().Add(m.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if m.cfg.UseTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}
	if m.cfg.Username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
			if err := c.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end body: %w", err)
	}
	return c.Quit()
}

// envelopeAddress strips a display name, keeping the bare address
func envelopeAddress(s string) string {
	if addr, err := mail.ParseAddress(s); err == nil {
		return addr.Address
	}
	return s
}

// Package mailer delivers outgoing letters through an SMTP relay.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"feder/internal/platform/config"
)

var ErrTLSRequired = errors.New("mailer: relay does not offer STARTTLS")

const defaultTimeout = 30 * time.Second

// SMTP sends one message per connection to the configured relay.
type SMTP struct {
	cfg       config.SMTPConfig
	tlsConfig *tls.Config
	timeout   time.Duration
}

func NewSMTP(cfg config.SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg, timeout: defaultTimeout}
}

// WithTLSConfig overrides the client TLS settings used for STARTTLS.
func (s *SMTP) WithTLSConfig(cfg *tls.Config) *SMTP {
	s.tlsConfig = cfg
	return s
}

func (s *SMTP) Send(ctx context.Context, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("smtp relay address: %w", err)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("dial smtp relay: %w", err)
	}
	deadline := time.Now().Add(s.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	// The greeting is read lazily by Hello.
	cl := smtp.NewClient(conn)
	defer cl.Close()

	if err := cl.Hello(s.cfg.Hostname); err != nil {
		return fmt.Errorf("smtp hello: %w", err)
	}

	if ok, _ := cl.Extension("STARTTLS"); ok {
		cfg := s.tlsConfig.Clone()
		if cfg == nil {
			cfg = &tls.Config{}
		}
		cfg.ServerName = host
		if err := cl.StartTLS(cfg); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	} else if s.cfg.RequireTLS {
		return ErrTLSRequired
	}

	if s.cfg.Username != "" {
		if err := cl.Auth(sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := cl.Mail(from, nil); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := cl.Rcpt(rcpt, nil); err != nil {
			return fmt.Errorf("smtp rcpt to %s: %w", rcpt, err)
		}
	}
	wc, err := cl.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return fmt.Errorf("smtp data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	return cl.Quit()
}

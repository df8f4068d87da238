package mailer

import (
	"context"
	"io"
	"net"
	"sync"
	"testing"

	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feder/internal/platform/config"
)

// relayBackend records every transaction the relay accepts.
type relayBackend struct {
	mu       sync.Mutex
	username string
	password string
	from     string
	rcpts    []string
	data     string
}

func (b *relayBackend) NewSession(*smtp.Conn) (smtp.Session, error) {
	return &relaySession{b: b}, nil
}

type relaySession struct {
	b *relayBackend
}

func (s *relaySession) AuthPlain(username, password string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.username, s.b.password = username, password
	return nil
}

func (s *relaySession) Mail(from string, _ *smtp.MailOptions) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.from = from
	return nil
}

func (s *relaySession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.rcpts = append(s.b.rcpts, to)
	return nil
}

func (s *relaySession) Data(r io.Reader) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.data = string(body)
	return nil
}

func (s *relaySession) Reset()        {}
func (s *relaySession) Logout() error { return nil }

func startRelay(t *testing.T, allowAuth bool) (*relayBackend, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	be := &relayBackend{}
	srv := smtp.NewServer(be)
	srv.Domain = "relay.test"
	srv.AllowInsecureAuth = allowAuth
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Close() })
	return be, ln.Addr().String()
}

func TestSendDeliversMessage(t *testing.T) {
	be, addr := startRelay(t, true)
	m := NewSMTP(config.SMTPConfig{
		Addr:     addr,
		Hostname: "feder.test",
		Username: "feder",
		Password: "secret",
	})

	msg := "Subject: Wniosek\r\n\r\nTresc\r\n"
	err := m.Send(context.Background(), "case-1@fedrowanie.localhost", []string{"ug@example.pl", "kopia@example.pl"}, []byte(msg))
	require.NoError(t, err)

	be.mu.Lock()
	defer be.mu.Unlock()
	assert.Equal(t, "feder", be.username)
	assert.Equal(t, "secret", be.password)
	assert.Equal(t, "case-1@fedrowanie.localhost", be.from)
	assert.Equal(t, []string{"ug@example.pl", "kopia@example.pl"}, be.rcpts)
	assert.Equal(t, msg, be.data)
}

func TestSendWithoutCredentialsSkipsAuth(t *testing.T) {
	be, addr := startRelay(t, false)
	m := NewSMTP(config.SMTPConfig{Addr: addr, Hostname: "feder.test"})

	require.NoError(t, m.Send(context.Background(), "a@b.pl", []string{"c@d.pl"}, []byte("Subject: x\r\n\r\ny\r\n")))
	be.mu.Lock()
	defer be.mu.Unlock()
	assert.Empty(t, be.username)
	assert.Equal(t, []string{"c@d.pl"}, be.rcpts)
}

func TestSendRequiresTLSWhenConfigured(t *testing.T) {
	be, addr := startRelay(t, false)
	m := NewSMTP(config.SMTPConfig{
		Addr:       addr,
		Hostname:   "feder.test",
		RequireTLS: true,
	})

	err := m.Send(context.Background(), "a@b.pl", []string{"c@d.pl"}, []byte("x"))
	assert.ErrorIs(t, err, ErrTLSRequired)
	be.mu.Lock()
	defer be.mu.Unlock()
	assert.Empty(t, be.from)
}

func TestSendRejectsBadAddress(t *testing.T) {
	m := NewSMTP(config.SMTPConfig{Addr: "no-port"})
	err := m.Send(context.Background(), "a@b.pl", []string{"c@d.pl"}, []byte("x"))
	assert.Error(t, err)
}

// Package eml reads and writes raw RFC 5322 messages as stored for letters.
package eml

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zlib"
)

// Headers are the fields recovered from a raw message when the gateway
// manifest leaves them empty.
type Headers struct {
	Subject   string
	MessageID string
	From      string
	Date      time.Time
}

// ReadHeaders parses the header block of a raw message. Individual headers
// that fail to decode are left empty.
func ReadHeaders(r io.Reader) (*Headers, error) {
	mr, err := mail.CreateReader(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read message header: %w", err)
	}
	defer mr.Close()

	h := mr.Header
	out := &Headers{}
	if subject, err := h.Subject(); err == nil {
		out.Subject = subject
	}
	if msgID, err := h.MessageID(); err == nil {
		out.MessageID = msgID
	}
	if from, err := h.AddressList("From"); err == nil && len(from) > 0 {
		out.From = from[0].Address
	}
	if date, err := h.Date(); err == nil {
		out.Date = date
	}
	return out, nil
}

// Compress returns the zlib encoding of data.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("compress message: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress message: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates a zlib payload fully into memory.
func Decompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress message: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress message: %w", err)
	}
	return out, nil
}

// NewReader wraps a stored message so reads yield the plain message. Closing
// the result closes src as well.
func NewReader(src io.ReadCloser, compressed bool) (io.ReadCloser, error) {
	if !compressed {
		return src, nil
	}
	zr, err := zlib.NewReader(src)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("decompress message: %w", err)
	}
	return &inflater{ReadCloser: zr, src: src}, nil
}

type inflater struct {
	io.ReadCloser
	src io.Closer
}

func (i *inflater) Close() error {
	zerr := i.ReadCloser.Close()
	if err := i.src.Close(); err != nil {
		return err
	}
	return zerr
}

// Message is an outgoing plain-text letter.
type Message struct {
	From      string
	To        string
	Subject   string
	Body      string
	MessageID string
	Date      time.Time
}

// NewMessageID returns a globally unique id-left@domain value, without angle
// brackets.
func NewMessageID(domain string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + "@" + domain
}

// Compose renders m as a single-part text/plain message.
func Compose(m Message) ([]byte, error) {
	var h mail.Header
	h.SetDate(m.Date)
	h.SetAddressList("From", []*mail.Address{{Address: m.From}})
	h.SetAddressList("To", []*mail.Address{{Address: m.To}})
	h.SetSubject(m.Subject)
	h.SetMessageID(m.MessageID)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("compose message: %w", err)
	}
	if _, err := io.WriteString(w, m.Body); err != nil {
		return nil, fmt.Errorf("compose message: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compose message: %w", err)
	}
	return buf.Bytes(), nil
}

// TrimMessageID strips the angle brackets some sources keep around
// Message-ID values.
func TrimMessageID(value string) string {
	return strings.Trim(strings.TrimSpace(value), "<>")
}

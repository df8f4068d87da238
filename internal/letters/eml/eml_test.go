package eml

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "From: Urzad Gminy <ug@example.pl>\r\n" +
	"To: case-0a1b2c3d4e5f@fedrowanie.localhost\r\n" +
	"Subject: Odpowiedz na wniosek\r\n" +
	"Message-Id: <abc123@example.pl>\r\n" +
	"Date: Mon, 30 Jul 2018 11:33:22 +0200\r\n" +
	"\r\n" +
	"Tresc odpowiedzi\r\n"

func TestReadHeaders(t *testing.T) {
	h, err := ReadHeaders(bytes.NewReader([]byte(sample)))
	require.NoError(t, err)

	assert.Equal(t, "Odpowiedz na wniosek", h.Subject)
	assert.Equal(t, "abc123@example.pl", h.MessageID)
	assert.Equal(t, "ug@example.pl", h.From)
	assert.Equal(t, 2018, h.Date.Year())
}

func TestReadHeadersRejectsGarbage(t *testing.T) {
	_, err := ReadHeaders(bytes.NewReader([]byte("12345")))
	assert.Error(t, err)
}

func TestCompressRoundTrip(t *testing.T) {
	packed, err := Compress([]byte(sample))
	require.NoError(t, err)
	assert.NotEqual(t, []byte(sample), packed)

	plain, err := Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, sample, string(plain))

	rc, err := NewReader(io.NopCloser(bytes.NewReader(packed)), true)
	require.NoError(t, err)
	defer rc.Close()
	streamed, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sample, string(streamed))
}

func TestNewReaderPassesPlainThrough(t *testing.T) {
	rc, err := NewReader(io.NopCloser(bytes.NewReader([]byte(sample))), false)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sample, string(got))
}

func TestComposeProducesReadableHeaders(t *testing.T) {
	msgID := NewMessageID("fedrowanie.localhost")
	raw, err := Compose(Message{
		From:      "case-0a1b2c3d4e5f@fedrowanie.localhost",
		To:        "ug@example.pl",
		Subject:   "Wniosek o informacje publiczna",
		Body:      "Prosze o informacje.\n\n--\nStopka",
		MessageID: msgID,
		Date:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	h, err := ReadHeaders(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Wniosek o informacje publiczna", h.Subject)
	assert.Equal(t, msgID, h.MessageID)
	assert.Equal(t, "case-0a1b2c3d4e5f@fedrowanie.localhost", h.From)
	assert.Contains(t, string(raw), "Prosze o informacje.")
}

func TestTrimMessageID(t *testing.T) {
	assert.Equal(t, "abc@example.pl", TrimMessageID(" <abc@example.pl> "))
	assert.Equal(t, "abc@example.pl", TrimMessageID("abc@example.pl"))
}

package models

import (
	"strings"

	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/validation"
)

// ManifestVersion is the only manifest layout the webhook understands.
const ManifestVersion = "v2"

// Manifest is the JSON description the mail gateway sends alongside the raw
// message.
type Manifest struct {
	Version    string          `json:"version"`
	Headers    ManifestHeaders `json:"headers"`
	Text       ManifestText    `json:"text"`
	Files      []ManifestFile  `json:"files" validate:"dive"`
	FilesCount int             `json:"files_count" validate:"min=0"`
	EML        ManifestEML     `json:"eml"`
}

type ManifestHeaders struct {
	AutoReplyType *string  `json:"auto_reply_type"`
	CC            []string `json:"cc"`
	Date          string   `json:"date"`
	From          []string `json:"from"`
	MessageID     string   `json:"message_id"`
	Subject       string   `json:"subject"`
	To            []string `json:"to"`
	ToPlus        []string `json:"to+"`
}

type ManifestText struct {
	Content     string `json:"content"`
	Quote       string `json:"quote"`
	HTMLContent string `json:"html_content"`
	HTMLQuote   string `json:"html_quote"`
}

type ManifestFile struct {
	Content  string `json:"content"`
	Filename string `json:"filename" validate:"required"`
}

type ManifestEML struct {
	Filename   string `json:"filename"`
	Compressed bool   `json:"compressed"`
}

func (m *Manifest) Normalize() {
	m.Version = strings.TrimSpace(m.Version)
	m.Headers.MessageID = strings.TrimSpace(m.Headers.MessageID)
	m.Headers.Subject = strings.TrimSpace(m.Headers.Subject)
}

func (m *Manifest) Validate() error {
	if m.Version == "" {
		return dErrors.New(dErrors.CodeBadRequest, "manifest version is required")
	}
	if m.Version != ManifestVersion {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported manifest version "+m.Version)
	}
	return validation.Struct(m)
}

// Recipients returns the addresses used for case matching: the gateway's
// expanded "to+" list when present, the plain To header otherwise.
func (m *Manifest) Recipients() []string {
	if len(m.Headers.ToPlus) > 0 {
		return m.Headers.ToPlus
	}
	return m.Headers.To
}

func (m *Manifest) Sender() string {
	if len(m.Headers.From) == 0 {
		return ""
	}
	return m.Headers.From[0]
}

// InboundFile is an attachment received as a multipart file part.
type InboundFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// InboundMessage is everything the webhook received for one message.
type InboundMessage struct {
	Manifest Manifest
	EML      []byte
	Files    []InboundFile
}

// IngestResult reports what happened to an inbound message.
type IngestResult struct {
	Letter    *Letter
	Matched   bool
	Duplicate bool
}

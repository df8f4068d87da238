package models

import (
	"fmt"
	"time"

	casemodels "feder/internal/cases/models"
	id "feder/pkg/domain"
)

type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// SpamStatus is the moderation verdict on a letter. It is stored as a small
// integer and rendered as its name.
type SpamStatus int

const (
	SpamUnknown SpamStatus = iota
	SpamSpam
	SpamNonSpam
)

func (s SpamStatus) String() string {
	switch s {
	case SpamSpam:
		return "spam"
	case SpamNonSpam:
		return "non_spam"
	default:
		return "unknown"
	}
}

func (s SpamStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SpamStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "unknown":
		*s = SpamUnknown
	case "spam":
		*s = SpamSpam
	case "non_spam":
		*s = SpamNonSpam
	default:
		return fmt.Errorf("unknown spam status %q", b)
	}
	return nil
}

// CanTransitionTo allows only unknown→spam and unknown→non_spam. Staying in
// the current state is handled by callers as a no-op.
func (s SpamStatus) CanTransitionTo(next SpamStatus) bool {
	return s == SpamUnknown && (next == SpamSpam || next == SpamNonSpam)
}

// MessageType is the auto-reply classification of an inbound letter.
type MessageType string

const (
	MessageRegular                 MessageType = "regular"
	MessageVacationReply           MessageType = "vacation_reply"
	MessageDispositionNotification MessageType = "disposition_notification"
)

// ParseAutoReplyType maps the gateway's auto_reply_type header. Anything
// unrecognized is a regular letter.
func ParseAutoReplyType(value *string) MessageType {
	if value == nil {
		return MessageRegular
	}
	switch *value {
	case "vacation-reply":
		return MessageVacationReply
	case "disposition-notification":
		return MessageDispositionNotification
	default:
		return MessageRegular
	}
}

// Milestone is the case flag this message type latches. Vacation replies
// latch nothing.
func (t MessageType) Milestone() casemodels.Milestone {
	switch t {
	case MessageDispositionNotification:
		return casemodels.MilestoneConfirmation
	case MessageRegular:
		return casemodels.MilestoneResponse
	default:
		return casemodels.MilestoneNone
	}
}

// Letter is one message exchanged with an institution, inbound or outbound.
// CaseID is nil while the letter is unrecognized.
type Letter struct {
	ID              id.LetterID    `json:"id"`
	RecordID        id.RecordID    `json:"record_id"`
	CaseID          *id.CaseID     `json:"case_id"`
	Direction       Direction      `json:"direction"`
	Title           string         `json:"title"`
	Body            string         `json:"body"`
	Quote           string         `json:"quote"`
	HTMLBody        string         `json:"html_body"`
	HTMLQuote       string         `json:"html_quote"`
	FromAddress     string         `json:"from_address"`
	MessageIDHeader string         `json:"message_id_header"`
	MessageType     MessageType    `json:"message_type"`
	Spam            SpamStatus     `json:"spam"`
	EMLKey          string         `json:"-"`
	EMLCompressed   bool           `json:"-"`
	AuthorID        *id.OperatorID `json:"author_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	Attachments     []Attachment   `json:"attachments"`
}

func (l *Letter) IsIncoming() bool {
	return l.Direction == DirectionIncoming
}

func (l *Letter) IsSpam() bool {
	return l.Spam == SpamSpam
}

func (l *Letter) HasEML() bool {
	return l.EMLKey != ""
}

// Attachment is a file carried by a letter. Blobs are content-addressed, so
// two attachments with the same Digest share one BlobKey.
type Attachment struct {
	ID          id.AttachmentID `json:"id"`
	LetterID    id.LetterID     `json:"letter_id"`
	Filename    string          `json:"filename"`
	ContentType string          `json:"content_type"`
	Size        int64           `json:"size"`
	Digest      string          `json:"digest"`
	BlobKey     string          `json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BlobKeyFor returns the content-addressed storage key for digest.
func BlobKeyFor(digest string) string {
	if len(digest) < 2 {
		return "attachments/" + digest
	}
	return "attachments/" + digest[:2] + "/" + digest
}

// EMLKeyFor returns the storage key of a letter's raw message.
func EMLKeyFor(letterID id.LetterID, compressed bool) string {
	key := "eml/" + letterID.String() + ".eml"
	if compressed {
		key += ".z"
	}
	return key
}

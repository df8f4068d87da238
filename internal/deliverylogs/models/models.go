package models

import (
	"time"

	"github.com/goccy/go-json"

	id "feder/pkg/domain"
)

// Status is the delivery state reported by the mail provider.
type Status string

const (
	StatusOpen       Status = "open"
	StatusOK         Status = "ok"
	StatusSpamBounce Status = "spambounce"
	StatusSoftBounce Status = "softbounce"
	StatusHardBounce Status = "hardbounce"
	StatusDropped    Status = "dropped"
	StatusDeferred   Status = "deferred"
	StatusUnknown    Status = "unknown"
)

// Statuses lists every status from most to least significant. DeriveStatus
// walks it in this order.
var Statuses = []Status{
	StatusOpen,
	StatusOK,
	StatusSpamBounce,
	StatusSoftBounce,
	StatusHardBounce,
	StatusDropped,
	StatusDeferred,
	StatusUnknown,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Row is one decoded provider log entry.
type Row map[string]any

// String returns the value at key when it is a non-empty string.
func (r Row) String(key string) string {
	v, ok := r[key].(string)
	if !ok {
		return ""
	}
	return v
}

// DeriveStatus returns the first status whose <status>_time or <status>_desc
// field is truthy, or StatusUnknown.
func DeriveStatus(r Row) Status {
	for _, status := range Statuses {
		if truthy(r[string(status)+"_time"]) || truthy(r[string(status)+"_desc"]) {
			return status
		}
	}
	return StatusUnknown
}

// truthy treats absent, null, false, zero, and empty values as unset.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// EmailLog is the reconciled delivery state of one message to one recipient.
type EmailLog struct {
	ID        id.EmailLogID `json:"id"`
	CaseID    id.CaseID     `json:"case_id"`
	LetterID  *id.LetterID  `json:"letter_id"`
	EmailID   string        `json:"email_id"`
	To        string        `json:"to"`
	Status    Status        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	RecordCount int         `json:"record_count"`
	Records     []LogRecord `json:"records,omitempty"`
}

// LogRecord keeps one raw provider row. Records are never deduplicated.
type LogRecord struct {
	ID         id.LogRecordID  `json:"id"`
	EmailLogID id.EmailLogID   `json:"email_log_id"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ImportResult counts rows that were stored and rows that were skipped.
type ImportResult struct {
	Skipped int `json:"skipped"`
	Saved   int `json:"saved"`
}

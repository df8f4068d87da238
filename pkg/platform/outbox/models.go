// Package outbox implements the transactional outbox: domain writes append an
// Entry in the same transaction, and a worker publishes pending entries to the
// event bus afterwards.
package outbox

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	id "feder/pkg/domain"
)

// Entry is one pending event.
type Entry struct {
	ID          id.OutboxID
	Topic       string
	Key         string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// NewEntry marshals payload and stamps a fresh ID.
func NewEntry(topic, key, eventType string, payload any, now time.Time) (Entry, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:        id.OutboxID(uuid.New()),
		Topic:     topic,
		Key:       key,
		EventType: eventType,
		Payload:   body,
		CreatedAt: now,
	}, nil
}

// Store persists entries. Append joins the caller's transaction.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	FetchUnpublished(ctx context.Context, limit int) ([]Entry, error)
	MarkPublished(ctx context.Context, ids []id.OutboxID, at time.Time) error
}

// Publisher delivers a batch of entries to the event bus.
type Publisher interface {
	Publish(ctx context.Context, entries []Entry) error
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	id "feder/pkg/domain"
	"feder/pkg/platform/outbox"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[id.OutboxID]*outbox.Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[id.OutboxID]*outbox.Entry)}
}

func (s *InMemoryStore) Append(_ context.Context, entry outbox.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := entry
	s.entries[entry.ID] = &e
	return nil
}

func (s *InMemoryStore) FetchUnpublished(_ context.Context, limit int) ([]outbox.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pending []outbox.Entry
	for _, e := range s.entries {
		if e.PublishedAt == nil {
			pending = append(pending, *e)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, ids []id.OutboxID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entryID := range ids {
		if e, ok := s.entries[entryID]; ok {
			published := at
			e.PublishedAt = &published
		}
	}
	return nil
}

// All returns every entry, published or not. Test helper.
func (s *InMemoryStore) All() []outbox.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]outbox.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

package store

import (
	"context"
	"sort"
	"sync"

	"feder/internal/virusscan/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/sentinel"
)

var ErrNotFound = sentinel.ErrNotFound

type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[id.ScanRequestID]*models.Request
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requests: make(map[id.ScanRequestID]*models.Request)}
}

func (s *InMemoryStore) CreateMany(_ context.Context, requests []*models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range requests {
		cp := *r
		s.requests[r.ID] = &cp
	}
	return nil
}

// ListByStatus returns up to limit requests in status, oldest first.
func (s *InMemoryStore) ListByStatus(_ context.Context, status models.Status, limit int) ([]*models.Request, error) {
	return s.list(func(r *models.Request) bool { return r.Status == status }, limit), nil
}

func (s *InMemoryStore) List(_ context.Context, filter models.ListFilter) ([]*models.Request, error) {
	return s.list(func(r *models.Request) bool {
		return filter.Status == nil || r.Status == *filter.Status
	}, filter.Limit), nil
}

// Update stores r if the stored request is still in from. The bool reports
// whether the write happened.
func (s *InMemoryStore) Update(_ context.Context, r *models.Request, from models.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.requests[r.ID]
	if !ok {
		return false, ErrNotFound
	}
	if current.Status != from {
		return false, nil
	}
	cp := *r
	s.requests[r.ID] = &cp
	return true, nil
}

func (s *InMemoryStore) AnyInfected(_ context.Context, attachmentID id.AttachmentID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.requests {
		if r.AttachmentID == attachmentID && r.Status == models.StatusInfected {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryStore) list(keep func(*models.Request) bool, limit int) []*models.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Request, 0)
	for _, r := range s.requests {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

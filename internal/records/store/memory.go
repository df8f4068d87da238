package store

import (
	"context"
	"sort"
	"sync"

	"feder/internal/records/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/sentinel"
)

var (
	ErrNotFound     = sentinel.ErrNotFound
	ErrAlreadyOwned = sentinel.ErrInvalidState
)

type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.RecordID]*models.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.RecordID]*models.Record)}
}

func (s *InMemoryStore) Append(_ context.Context, r *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = clone(r)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, recordID id.RecordID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[recordID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(r), nil
}

func (s *InMemoryStore) ListByCase(_ context.Context, caseID id.CaseID) ([]*models.Record, error) {
	return s.filter(func(r *models.Record) bool { return r.CaseID != nil && *r.CaseID == caseID }), nil
}

func (s *InMemoryStore) ListOrphans(_ context.Context) ([]*models.Record, error) {
	return s.filter(func(r *models.Record) bool { return r.CaseID == nil }), nil
}

func (s *InMemoryStore) AdoptOrphan(_ context.Context, recordID id.RecordID, caseID id.CaseID) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[recordID]
	if !ok {
		return nil, ErrNotFound
	}
	if r.CaseID != nil {
		return nil, ErrAlreadyOwned
	}
	r.CaseID = &caseID
	return clone(r), nil
}

func (s *InMemoryStore) filter(keep func(*models.Record) bool) []*models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Record{}
	for _, r := range s.records {
		if keep(r) {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func clone(r *models.Record) *models.Record {
	cp := *r
	if r.CaseID != nil {
		caseID := *r.CaseID
		cp.CaseID = &caseID
	}
	return &cp
}

package store

import (
	"context"
	"sort"
	"sync"

	"feder/internal/deliverylogs/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/sentinel"
)

var ErrNotFound = sentinel.ErrNotFound

type logKey struct {
	caseID  id.CaseID
	emailID string
	to      string
}

type InMemoryStore struct {
	mu      sync.RWMutex
	logs    map[id.EmailLogID]*models.EmailLog
	byKey   map[logKey]id.EmailLogID
	records map[id.EmailLogID][]models.LogRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		logs:    make(map[id.EmailLogID]*models.EmailLog),
		byKey:   make(map[logKey]id.EmailLogID),
		records: make(map[id.EmailLogID][]models.LogRecord),
	}
}

func (s *InMemoryStore) Upsert(_ context.Context, log *models.EmailLog) (*models.EmailLog, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := logKey{caseID: log.CaseID, emailID: log.EmailID, to: log.To}
	if existingID, ok := s.byKey[key]; ok {
		existing := s.logs[existingID]
		if existing.Status != log.Status {
			existing.Status = log.Status
			existing.UpdatedAt = log.UpdatedAt
		}
		cp := *existing
		return &cp, false, nil
	}
	cp := *log
	cp.Records = nil
	s.logs[log.ID] = &cp
	s.byKey[key] = log.ID
	out := cp
	return &out, true, nil
}

func (s *InMemoryStore) AppendRecord(_ context.Context, rec *models.LogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[rec.EmailLogID]; !ok {
		return ErrNotFound
	}
	s.records[rec.EmailLogID] = append(s.records[rec.EmailLogID], *rec)
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, logID id.EmailLogID) (*models.EmailLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.logs[logID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	cp.RecordCount = len(s.records[logID])
	return &cp, nil
}

func (s *InMemoryStore) ListByCase(_ context.Context, caseID id.CaseID) ([]*models.EmailLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.EmailLog, 0)
	for _, l := range s.logs {
		if l.CaseID != caseID {
			continue
		}
		cp := *l
		cp.RecordCount = len(s.records[l.ID])
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ListRecords returns the raw rows of a log in arrival order.
func (s *InMemoryStore) ListRecords(_ context.Context, logID id.EmailLogID) ([]models.LogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LogRecord, len(s.records[logID]))
	copy(out, s.records[logID])
	return out, nil
}

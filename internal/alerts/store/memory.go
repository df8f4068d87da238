package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"feder/internal/alerts/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/sentinel"
)

var (
	ErrNotFound      = sentinel.ErrNotFound
	ErrAlreadySolved = sentinel.ErrInvalidState
)

type InMemoryStore struct {
	mu     sync.RWMutex
	alerts map[id.AlertID]*models.Alert
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{alerts: make(map[id.AlertID]*models.Alert)}
}

func (s *InMemoryStore) Create(_ context.Context, a *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.alerts[a.ID] = &cp
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, alertID id.AlertID) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.alerts[alertID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// Solve moves an open alert to solved.
func (s *InMemoryStore) Solve(_ context.Context, alertID id.AlertID, solverID id.OperatorID, at time.Time) (*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[alertID]
	if !ok {
		return nil, ErrNotFound
	}
	if a.IsSolved() {
		return nil, ErrAlreadySolved
	}
	a.Status = models.StatusSolved
	a.SolverID = &solverID
	solvedAt := at
	a.SolvedAt = &solvedAt
	cp := *a
	return &cp, nil
}

// List returns alerts newest first, optionally limited to one status.
func (s *InMemoryStore) List(_ context.Context, status *models.Status) ([]*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Alert, 0)
	for _, a := range s.alerts {
		if status != nil && a.Status != *status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

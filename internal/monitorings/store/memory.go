package store

import (
	"context"
	"sync"

	"feder/internal/monitorings/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/sentinel"
)

// ErrNotFound is returned when a monitoring or institution does not exist.
var ErrNotFound = sentinel.ErrNotFound

type InMemoryStore struct {
	mu           sync.RWMutex
	monitorings  map[id.MonitoringID]*models.Monitoring
	institutions map[id.InstitutionID]*models.Institution
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		monitorings:  make(map[id.MonitoringID]*models.Monitoring),
		institutions: make(map[id.InstitutionID]*models.Institution),
	}
}

func (s *InMemoryStore) CreateMonitoring(_ context.Context, m *models.Monitoring) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.monitorings[m.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindMonitoring(_ context.Context, monitoringID id.MonitoringID) (*models.Monitoring, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.monitorings[monitoringID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *InMemoryStore) CreateInstitution(_ context.Context, i *models.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *i
	s.institutions[i.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindInstitution(_ context.Context, institutionID id.InstitutionID) (*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.institutions[institutionID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *i
	return &cp, nil
}

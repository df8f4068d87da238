package store

import (
	"context"
	"sort"
	"sync"

	"feder/internal/cases/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/sentinel"
)

var (
	ErrNotFound    = sentinel.ErrNotFound
	ErrAddressUsed = sentinel.ErrAlreadyUsed
)

type InMemoryStore struct {
	mu      sync.RWMutex
	cases   map[id.CaseID]*models.Case
	aliases map[string]models.Alias
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		cases:   make(map[id.CaseID]*models.Case),
		aliases: make(map[string]models.Alias),
	}
}

func (s *InMemoryStore) addressTaken(address string) bool {
	if _, ok := s.aliases[address]; ok {
		return true
	}
	for _, c := range s.cases {
		if c.Email == address {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) Create(_ context.Context, c *models.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addressTaken(c.Email) {
		return ErrAddressUsed
	}
	cp := *c
	cp.Aliases = nil
	s.cases[c.ID] = &cp
	return nil
}

func (s *InMemoryStore) AddAlias(_ context.Context, alias *models.Alias) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[alias.CaseID]; !ok {
		return ErrNotFound
	}
	if s.addressTaken(alias.Email) {
		return ErrAddressUsed
	}
	s.aliases[alias.Email] = *alias
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, caseID id.CaseID) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[caseID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.withAliases(c), nil
}

// FindByAddresses prefers a primary address match over an alias match and,
// within the same kind, the oldest case.
func (s *InMemoryStore) FindByAddresses(_ context.Context, addresses []string) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		wanted[a] = struct{}{}
	}

	var primary []*models.Case
	for _, c := range s.cases {
		if _, ok := wanted[c.Email]; ok {
			primary = append(primary, c)
		}
	}
	if best := oldest(primary); best != nil {
		return s.withAliases(best), nil
	}

	var viaAlias []*models.Case
	for address := range wanted {
		if a, ok := s.aliases[address]; ok {
			viaAlias = append(viaAlias, s.cases[a.CaseID])
		}
	}
	if best := oldest(viaAlias); best != nil {
		return s.withAliases(best), nil
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) MarkMilestone(_ context.Context, caseID id.CaseID, milestone models.Milestone) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[caseID]
	if !ok {
		return false, ErrNotFound
	}
	return c.ApplyMilestone(milestone), nil
}

func (s *InMemoryStore) List(_ context.Context, filter models.ListFilter) ([]*models.Case, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Case
	for _, c := range s.cases {
		if filter.Matches(c) {
			matched = append(matched, c)
		}
	}
	sortCases(matched)

	total := len(matched)
	if filter.Offset >= total {
		return []*models.Case{}, total, nil
	}
	end := min(filter.Offset+filter.Limit, total)
	page := make([]*models.Case, 0, end-filter.Offset)
	for _, c := range matched[filter.Offset:end] {
		page = append(page, s.withAliases(c))
	}
	return page, total, nil
}

func (s *InMemoryStore) AddressIndex(_ context.Context) (map[string]id.CaseID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index := make(map[string]id.CaseID, len(s.cases))
	for _, c := range s.cases {
		index[c.Email] = c.ID
	}
	return index, nil
}

func (s *InMemoryStore) withAliases(c *models.Case) *models.Case {
	cp := *c
	cp.Aliases = []models.Alias{}
	for _, a := range s.aliases {
		if a.CaseID == c.ID {
			cp.Aliases = append(cp.Aliases, a)
		}
	}
	sort.Slice(cp.Aliases, func(i, j int) bool {
		if cp.Aliases[i].CreatedAt.Equal(cp.Aliases[j].CreatedAt) {
			return cp.Aliases[i].Email < cp.Aliases[j].Email
		}
		return cp.Aliases[i].CreatedAt.Before(cp.Aliases[j].CreatedAt)
	})
	return &cp
}

func sortCases(cs []*models.Case) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].ID.String() < cs[j].ID.String()
		}
		return cs[i].CreatedAt.Before(cs[j].CreatedAt)
	})
}

func oldest(cs []*models.Case) *models.Case {
	if len(cs) == 0 {
		return nil
	}
	sortCases(cs)
	return cs[0]
}

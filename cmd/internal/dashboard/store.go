package dashboard

import (
	"sync"
	"time"

	"webnotas/cmd/internal/domain/entity"
)

// CompanyStore is the id -> company index shared by the views. It is a
// best-effort snapshot: every Replace drops the previous contents, so it is
// exactly as stale as the last registry reload.
type CompanyStore struct {
	mu       sync.RWMutex
	byID     map[entity.ID]entity.Company
	loadedAt time.Time
	now      func() time.Time
}

func NewCompanyStore() *CompanyStore {
	return &CompanyStore{
		byID: map[entity.ID]entity.Company{},
		now:  time.Now,
	}
}

// Replace swaps the whole index at once. Readers see either the old or the
// new snapshot, never a mix.
func (s *CompanyStore) Replace(companies []entity.Company) {
	byID := make(map[entity.ID]entity.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	s.mu.Lock()
	s.byID = byID
	s.loadedAt = s.now()
	s.mu.Unlock()
}

func (s *CompanyStore) Lookup(id entity.ID) (entity.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	return c, ok
}

// DisplayName resolves a company name, falling back to the raw id when the
// company is not (or no longer) cached.
func (s *CompanyStore) DisplayName(id entity.ID) string {
	if c, ok := s.Lookup(id); ok {
		return c.Name
	}
	return id.String()
}

func (s *CompanyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// LoadedAt is the time of the last Replace, zero before the first one.
func (s *CompanyStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

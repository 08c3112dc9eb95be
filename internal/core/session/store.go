package session

import (
	"sync"
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
)

type entry struct {
	identity  access.Identity
	expiresAt time.Time
}

// store は開いているセッションを保持します。
type store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func newStore() *store {
	return &store{entries: make(map[string]entry)}
}

func (s *store) put(id string, identity access.Identity, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry{identity: identity, expiresAt: expiresAt}
}

func (s *store) get(id string) (entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

func (s *store) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

func (s *store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

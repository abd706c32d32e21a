package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process session store. It is the default backend and
// is also used throughout the tests.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*Project
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]*Project)}
}

// Get retrieves a session by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Project, error) {
	s.mu.RLock()
	p, ok := s.projects[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if p.IsExpired() {
		return nil, ErrExpired
	}
	return p, nil
}

// Set stores a session.
func (s *MemoryStore) Set(ctx context.Context, p *Project) error {
	s.mu.Lock()
	s.projects[p.ID] = p
	s.mu.Unlock()
	return nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.projects, id)
	s.mu.Unlock()
	return nil
}

// Cleanup removes expired sessions.
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.projects {
		if p.IsExpired() {
			delete(s.projects, id)
		}
	}
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

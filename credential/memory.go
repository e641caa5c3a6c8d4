package credential

import (
	"context"
	"sync"
)

// MemoryStore keeps identities in a map. The write lock covers only the
// uniqueness check and the insert.
type MemoryStore struct {
	mu         sync.RWMutex
	identities map[string]Identity
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{identities: make(map[string]Identity)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Insert(ctx context.Context, id Identity) error {
	if err := ctx.Err(); err != nil {
		return unavailable("insert", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.identities[id.Username]; exists {
		return ErrAlreadyExists
	}
	s.identities[id.Username] = id
	return nil
}

func (s *MemoryStore) Lookup(ctx context.Context, username string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, unavailable("lookup", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.identities[username]
	if !ok {
		return Identity{}, ErrNotFound
	}
	return id, nil
}

// Len returns the number of stored identities.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.identities)
}

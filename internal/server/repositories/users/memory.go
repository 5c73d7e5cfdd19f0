package users

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/flatauth/internal/server/models"
)

// MemoryStore keeps the collection in process memory. Slices are copied on
// the way in and out so callers never share backing arrays with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryStore(initial ...models.User) *MemoryStore {
	return &MemoryStore{users: slices.Clone(initial)}
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) SaveAll(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = slices.Clone(users)
	return nil
}

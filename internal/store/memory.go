package store

import (
	"context"
	"sync"

	"github.com/stepupp/account-server-go/internal/model"
)

// MemoryStore is an in-memory Store for tests. It returns copies so
// callers cannot mutate the stored snapshots in place.
type MemoryStore struct {
	mu      sync.Mutex
	pending []model.PendingUser
	users   []model.User
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadPending(ctx context.Context) ([]model.PendingUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.PendingUser(nil), s.pending...), nil
}

func (s *MemoryStore) SavePending(ctx context.Context, users []model.PendingUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append([]model.PendingUser(nil), users...)
	return nil
}

func (s *MemoryStore) LoadUsers(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User(nil), s.users...), nil
}

func (s *MemoryStore) SaveUsers(ctx context.Context, users []model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]model.User(nil), users...)
	return nil
}

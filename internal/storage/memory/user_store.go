package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

// UserStore is an in-memory implementation of storage.UserStore.
type UserStore struct {
	mu   sync.RWMutex
	data map[string]*domain.User // keyed by email
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{data: make(map[string]*domain.User)}
}

// Compile-time interface check.
var _ storage.UserStore = (*UserStore)(nil)

// Insert adds a new user. Returns ErrDuplicateKey if email exists.
func (s *UserStore) Insert(_ context.Context, u *domain.User) error {
	if u == nil || u.Email == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[u.Email]; exists {
		return storage.ErrDuplicateKey
	}

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	cp := *u
	cp.AssignedStrategies = append([]string(nil), u.AssignedStrategies...)
	s.data[u.Email] = &cp
	return nil
}

// GetByEmail retrieves a user. Returns ErrNotFound if not exists.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.data[email]
	if !exists {
		return nil, storage.ErrNotFound
	}
	cp := *u
	cp.AssignedStrategies = append([]string(nil), u.AssignedStrategies...)
	return &cp, nil
}

// List retrieves all users ordered by creation time DESC.
func (s *UserStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.User, 0, len(s.data))
	for _, u := range s.data {
		cp := *u
		cp.AssignedStrategies = append([]string(nil), u.AssignedStrategies...)
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].Email < result[j].Email
	})
	return result, nil
}

// Delete removes a user. Returns ErrNotFound if not exists.
func (s *UserStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[email]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, email)
	return nil
}

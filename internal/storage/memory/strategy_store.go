package memory

import (
	"context"
	"sort"
	"sync"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

// StrategyStore is an in-memory implementation of storage.StrategyStore.
type StrategyStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Strategy // keyed by name
}

// NewStrategyStore creates a new in-memory strategy store.
func NewStrategyStore() *StrategyStore {
	return &StrategyStore{data: make(map[string]*domain.Strategy)}
}

// Compile-time interface check.
var _ storage.StrategyStore = (*StrategyStore)(nil)

// Insert adds a new strategy. Returns ErrDuplicateKey if name exists.
func (s *StrategyStore) Insert(_ context.Context, strat *domain.Strategy) error {
	if strat == nil || strat.Name == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[strat.Name]; exists {
		return storage.ErrDuplicateKey
	}

	cp := *strat
	s.data[strat.Name] = &cp
	return nil
}

// GetByName retrieves a strategy. Returns ErrNotFound if not exists.
func (s *StrategyStore) GetByName(_ context.Context, name string) (*domain.Strategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	strat, exists := s.data[name]
	if !exists {
		return nil, storage.ErrNotFound
	}
	cp := *strat
	return &cp, nil
}

// List retrieves all strategies ordered by name ASC.
func (s *StrategyStore) List(_ context.Context) ([]*domain.Strategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Strategy, 0, len(s.data))
	for _, strat := range s.data {
		cp := *strat
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

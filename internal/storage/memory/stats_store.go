package memory

import (
	"context"
	"sync"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

// StatsStore is an in-memory implementation of storage.StatsStore.
type StatsStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.StatsSnapshot // keyed by strategy name, append order
}

// NewStatsStore creates a new in-memory stats store.
func NewStatsStore() *StatsStore {
	return &StatsStore{data: make(map[string][]*domain.StatsSnapshot)}
}

// Compile-time interface check.
var _ storage.StatsStore = (*StatsStore)(nil)

// Insert persists a snapshot.
func (s *StatsStore) Insert(_ context.Context, snap *domain.StatsSnapshot) error {
	if snap == nil || snap.StrategyName == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *snap
	s.data[snap.StrategyName] = append(s.data[snap.StrategyName], &cp)
	return nil
}

// GetLatest retrieves the most recent snapshot for a strategy.
// Returns ErrNotFound if none exists.
func (s *StatsStore) GetLatest(_ context.Context, strategyName string) (*domain.StatsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snaps := s.data[strategyName]
	if len(snaps) == 0 {
		return nil, storage.ErrNotFound
	}

	latest := snaps[0]
	for _, snap := range snaps[1:] {
		if !snap.ComputedAt.Before(latest.ComputedAt) {
			latest = snap
		}
	}
	cp := *latest
	return &cp, nil
}

// Clear removes all snapshots.
func (s *StatsStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]*domain.StatsSnapshot)
	return nil
}

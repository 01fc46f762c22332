package memory

import (
	"context"
	"sync"
	"time"

	"tradinghub/internal/returns"
	"tradinghub/internal/storage"
)

// EquityCurveStore is an in-memory implementation of storage.EquityCurveStore.
type EquityCurveStore struct {
	mu   sync.RWMutex
	data map[string]curveVersion // keyed by strategy name
}

type curveVersion struct {
	computedAt time.Time
	points     []returns.EquityPoint
}

// NewEquityCurveStore creates a new in-memory equity curve store.
func NewEquityCurveStore() *EquityCurveStore {
	return &EquityCurveStore{data: make(map[string]curveVersion)}
}

// Compile-time interface check.
var _ storage.EquityCurveStore = (*EquityCurveStore)(nil)

// Replace swaps a strategy's stored curve for the given points. An older
// computed_at than the stored version is ignored.
func (s *EquityCurveStore) Replace(_ context.Context, strategyName string, computedAt time.Time, points []returns.EquityPoint) error {
	if strategyName == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, exists := s.data[strategyName]; exists && computedAt.Before(cur.computedAt) {
		return nil
	}

	cp := make([]returns.EquityPoint, len(points))
	copy(cp, points)
	s.data[strategyName] = curveVersion{computedAt: computedAt, points: cp}
	return nil
}

// GetByStrategy retrieves the stored curve ordered by timestamp ASC.
// A strategy with no stored curve yields an empty slice.
func (s *EquityCurveStore) GetByStrategy(_ context.Context, strategyName string) ([]returns.EquityPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cur := s.data[strategyName]
	out := make([]returns.EquityPoint, len(cur.points))
	copy(out, cur.points)
	return out, nil
}

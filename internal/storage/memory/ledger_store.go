package memory

import (
	"context"
	"sync"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

// LedgerStore is an in-memory implementation of storage.LedgerStore.
type LedgerStore struct {
	mu   sync.RWMutex
	data map[string]domain.Ledger // keyed by strategy name
}

// NewLedgerStore creates a new in-memory ledger store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{data: make(map[string]domain.Ledger)}
}

// Compile-time interface check.
var _ storage.LedgerStore = (*LedgerStore)(nil)

// Append adds events to a strategy's ledger. The batch must be ascending
// and must not precede the stored ledger's last event.
func (s *LedgerStore) Append(_ context.Context, strategyName string, events []domain.TradeEvent) error {
	if strategyName == "" {
		return storage.ErrInvalidInput
	}
	if len(events) == 0 {
		return nil
	}
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.data[strategyName]
	if last := existing.Last(); last != nil && events[0].Timestamp.Before(last.Timestamp) {
		return storage.ErrInvalidInput
	}

	s.data[strategyName] = append(existing, events...)
	return nil
}

// GetByStrategy retrieves the full ledger ordered by timestamp ASC.
// An unknown strategy yields an empty ledger.
func (s *LedgerStore) GetByStrategy(_ context.Context, strategyName string) (domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing := s.data[strategyName]
	out := make(domain.Ledger, len(existing))
	copy(out, existing)
	return out, nil
}

// LastEvent retrieves the most recent event. Returns ErrNotFound for an
// empty ledger.
func (s *LedgerStore) LastEvent(_ context.Context, strategyName string) (*domain.TradeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	last := s.data[strategyName].Last()
	if last == nil {
		return nil, storage.ErrNotFound
	}
	cp := *last
	return &cp, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

// StatsStore implements storage.StatsStore using PostgreSQL. The metric set
// is stored as one JSONB document per snapshot rather than one column per
// statistic, so adding a metric is a code change only.
type StatsStore struct {
	pool *Pool
}

// NewStatsStore creates a new StatsStore.
func NewStatsStore(pool *Pool) *StatsStore {
	return &StatsStore{pool: pool}
}

// Compile-time interface check.
var _ storage.StatsStore = (*StatsStore)(nil)

// Insert persists a snapshot.
func (s *StatsStore) Insert(ctx context.Context, snap *domain.StatsSnapshot) error {
	if snap == nil || snap.StrategyName == "" {
		return storage.ErrInvalidInput
	}

	metrics, err := json.Marshal(snap.Record)
	if err != nil {
		return fmt.Errorf("marshal stats record: %w", err)
	}

	query := `
		INSERT INTO strategy_stats (strategy_name, computed_at, metrics)
		VALUES ($1, $2, $3)
	`

	if _, err := s.pool.Exec(ctx, query, snap.StrategyName, snap.ComputedAt, metrics); err != nil {
		return fmt.Errorf("insert stats snapshot: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recent snapshot for a strategy.
// Returns ErrNotFound if none exists.
func (s *StatsStore) GetLatest(ctx context.Context, strategyName string) (*domain.StatsSnapshot, error) {
	query := `
		SELECT strategy_name, computed_at, metrics
		FROM strategy_stats
		WHERE strategy_name = $1
		ORDER BY computed_at DESC, id DESC
		LIMIT 1
	`

	var snap domain.StatsSnapshot
	var metrics []byte

	err := s.pool.QueryRow(ctx, query, strategyName).Scan(&snap.StrategyName, &snap.ComputedAt, &metrics)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get latest stats snapshot: %w", err)
	}

	if err := json.Unmarshal(metrics, &snap.Record); err != nil {
		return nil, fmt.Errorf("unmarshal stats record: %w", err)
	}
	return &snap, nil
}

// Clear removes all snapshots.
func (s *StatsStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM strategy_stats`); err != nil {
		return fmt.Errorf("clear stats snapshots: %w", err)
	}
	return nil
}

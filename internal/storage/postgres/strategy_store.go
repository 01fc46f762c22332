package postgres

import (
	"context"
	"fmt"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

// StrategyStore implements storage.StrategyStore using PostgreSQL.
type StrategyStore struct {
	pool *Pool
}

// NewStrategyStore creates a new StrategyStore.
func NewStrategyStore(pool *Pool) *StrategyStore {
	return &StrategyStore{pool: pool}
}

// Compile-time interface check.
var _ storage.StrategyStore = (*StrategyStore)(nil)

// Insert adds a new strategy. Returns ErrDuplicateKey if name exists.
func (s *StrategyStore) Insert(ctx context.Context, strat *domain.Strategy) error {
	if strat == nil || strat.Name == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO strategies_config (name, exchange, symbol, time_horizon, total_return)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query,
		strat.Name,
		strat.Exchange,
		strat.Symbol,
		strat.TimeHorizon,
		strat.TotalReturn,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert strategy: %w", err)
	}
	return nil
}

// GetByName retrieves a strategy by name. Returns ErrNotFound if not exists.
func (s *StrategyStore) GetByName(ctx context.Context, name string) (*domain.Strategy, error) {
	query := `
		SELECT name, exchange, symbol, time_horizon, total_return
		FROM strategies_config
		WHERE name = $1
	`

	var strat domain.Strategy
	err := s.pool.QueryRow(ctx, query, name).Scan(
		&strat.Name,
		&strat.Exchange,
		&strat.Symbol,
		&strat.TimeHorizon,
		&strat.TotalReturn,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get strategy by name: %w", err)
	}
	return &strat, nil
}

// List retrieves all strategies ordered by name ASC.
func (s *StrategyStore) List(ctx context.Context) ([]*domain.Strategy, error) {
	query := `
		SELECT name, exchange, symbol, time_horizon, total_return
		FROM strategies_config
		ORDER BY name ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}
	defer rows.Close()

	var strategies []*domain.Strategy
	for rows.Next() {
		var strat domain.Strategy
		err := rows.Scan(
			&strat.Name,
			&strat.Exchange,
			&strat.Symbol,
			&strat.TimeHorizon,
			&strat.TotalReturn,
		)
		if err != nil {
			return nil, fmt.Errorf("scan strategy row: %w", err)
		}
		strategies = append(strategies, &strat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate strategy rows: %w", err)
	}

	return strategies, nil
}

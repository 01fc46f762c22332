package postgres

import (
	"context"
	"fmt"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

// LedgerStore implements storage.LedgerStore using PostgreSQL. All ledgers
// share one backtest_events table keyed by (strategy_name, ts).
type LedgerStore struct {
	pool *Pool
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(pool *Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// Compile-time interface check.
var _ storage.LedgerStore = (*LedgerStore)(nil)

// Append adds events to a strategy's ledger. The first event must not
// precede the stored ledger's last timestamp; within the batch events must
// be ascending. Returns ErrDuplicateKey if a timestamp already exists.
func (s *LedgerStore) Append(ctx context.Context, strategyName string, events []domain.TradeEvent) error {
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

	last, err := s.LastEvent(ctx, strategyName)
	if err != nil && err != storage.ErrNotFound {
		return err
	}
	if last != nil && events[0].Timestamp.Before(last.Timestamp) {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO backtest_events (
			strategy_name, ts, action, buy_price, sell_price, pnl_percent, pnl_sum, balance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, e := range events {
		_, err := tx.Exec(ctx, query,
			strategyName,
			e.Timestamp,
			string(e.Action),
			e.BuyPrice,
			e.SellPrice,
			e.PnlPercent,
			e.PnlSum,
			e.Balance,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert ledger event: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// GetByStrategy retrieves the full ledger ordered by timestamp ASC.
// An unknown strategy yields an empty ledger.
func (s *LedgerStore) GetByStrategy(ctx context.Context, strategyName string) (domain.Ledger, error) {
	query := `
		SELECT ts, action, buy_price, sell_price, pnl_percent, pnl_sum, balance
		FROM backtest_events
		WHERE strategy_name = $1
		ORDER BY ts ASC
	`

	rows, err := s.pool.Query(ctx, query, strategyName)
	if err != nil {
		return nil, fmt.Errorf("get ledger by strategy: %w", err)
	}
	defer rows.Close()

	var ledger domain.Ledger
	for rows.Next() {
		var e domain.TradeEvent
		var action string

		err := rows.Scan(
			&e.Timestamp,
			&action,
			&e.BuyPrice,
			&e.SellPrice,
			&e.PnlPercent,
			&e.PnlSum,
			&e.Balance,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}

		e.Action = domain.Action(action)
		ledger = append(ledger, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}

	return ledger, nil
}

// LastEvent retrieves the most recent event. Returns ErrNotFound for an
// empty ledger.
func (s *LedgerStore) LastEvent(ctx context.Context, strategyName string) (*domain.TradeEvent, error) {
	query := `
		SELECT ts, action, buy_price, sell_price, pnl_percent, pnl_sum, balance
		FROM backtest_events
		WHERE strategy_name = $1
		ORDER BY ts DESC
		LIMIT 1
	`

	var e domain.TradeEvent
	var action string

	err := s.pool.QueryRow(ctx, query, strategyName).Scan(
		&e.Timestamp,
		&action,
		&e.BuyPrice,
		&e.SellPrice,
		&e.PnlPercent,
		&e.PnlSum,
		&e.Balance,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get last ledger event: %w", err)
	}

	e.Action = domain.Action(action)
	return &e, nil
}

package storage

import (
	"context"
	"time"

	"tradinghub/internal/domain"
	"tradinghub/internal/returns"
)

// StrategyStore provides access to the strategy configuration catalog.
type StrategyStore interface {
	// Insert adds a new strategy. Returns ErrDuplicateKey if name exists.
	Insert(ctx context.Context, s *domain.Strategy) error

	// GetByName retrieves a strategy. Returns ErrNotFound if not exists.
	GetByName(ctx context.Context, name string) (*domain.Strategy, error)

	// List retrieves all strategies ordered by name ASC.
	List(ctx context.Context) ([]*domain.Strategy, error)
}

// LedgerStore provides access to per-strategy backtest ledgers.
type LedgerStore interface {
	// Append adds events to a strategy's ledger. Events must continue the
	// existing ledger in timestamp order.
	Append(ctx context.Context, strategyName string, events []domain.TradeEvent) error

	// GetByStrategy retrieves the full ledger ordered by timestamp ASC.
	// An unknown strategy yields an empty ledger, not an error.
	GetByStrategy(ctx context.Context, strategyName string) (domain.Ledger, error)

	// LastEvent retrieves the most recent event. Returns ErrNotFound for
	// an empty ledger.
	LastEvent(ctx context.Context, strategyName string) (*domain.TradeEvent, error)
}

// StatsStore provides access to computed statistics snapshots.
type StatsStore interface {
	// Insert persists a snapshot.
	Insert(ctx context.Context, snap *domain.StatsSnapshot) error

	// GetLatest retrieves the most recent snapshot for a strategy.
	// Returns ErrNotFound if none exists.
	GetLatest(ctx context.Context, strategyName string) (*domain.StatsSnapshot, error)

	// Clear removes all snapshots, ahead of a full regeneration.
	Clear(ctx context.Context) error
}

// UserStore provides access to dashboard user accounts.
type UserStore interface {
	// Insert adds a new user. Returns ErrDuplicateKey if email exists.
	Insert(ctx context.Context, u *domain.User) error

	// GetByEmail retrieves a user. Returns ErrNotFound if not exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves all users ordered by creation time DESC.
	List(ctx context.Context) ([]*domain.User, error)

	// Delete removes a user. Returns ErrNotFound if not exists.
	Delete(ctx context.Context, email string) error
}

// EquityCurveStore persists computed equity curves for charting.
type EquityCurveStore interface {
	// Replace swaps a strategy's stored curve for the given points.
	Replace(ctx context.Context, strategyName string, computedAt time.Time, points []returns.EquityPoint) error

	// GetByStrategy retrieves the stored curve ordered by timestamp ASC.
	GetByStrategy(ctx context.Context, strategyName string) ([]returns.EquityPoint, error)
}

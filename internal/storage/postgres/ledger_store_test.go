package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
	"tradinghub/internal/storage/postgres"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 12, 0, 0, 0, time.UTC)
}

func fptr(v float64) *float64 { return &v }

func TestLedgerStore_AppendAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	events := []domain.TradeEvent{
		{Timestamp: day(1), Action: domain.ActionBuy, BuyPrice: fptr(42000), PnlSum: 10},
		{Timestamp: day(2), Action: domain.ActionSell, SellPrice: fptr(41500), PnlPercent: -1.5, PnlSum: -5},
	}
	require.NoError(t, store.Append(ctx, "btc-fast", events))

	got, err := store.GetByStrategy(ctx, "btc-fast")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.ActionBuy, got[0].Action)
	assert.True(t, got[0].Timestamp.Equal(day(1)))
	require.NotNil(t, got[0].BuyPrice)
	assert.Equal(t, 42000.0, *got[0].BuyPrice)
	assert.Nil(t, got[0].SellPrice)
	assert.Equal(t, -5.0, got[1].PnlSum)
}

func TestLedgerStore_UnknownStrategyIsEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewLedgerStore(pool)

	got, err := store.GetByStrategy(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLedgerStore_LastEvent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	_, err := store.LastEvent(ctx, "btc-fast")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Append(ctx, "btc-fast", []domain.TradeEvent{
		{Timestamp: day(1), Action: domain.ActionBuy, PnlSum: 10},
		{Timestamp: day(2), Action: domain.ActionSell, PnlSum: 25},
	}))

	last, err := store.LastEvent(ctx, "btc-fast")
	require.NoError(t, err)
	assert.Equal(t, 25.0, last.PnlSum)
}

func TestLedgerStore_RejectsOutOfOrderAppend(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "btc-fast", []domain.TradeEvent{
		{Timestamp: day(5), Action: domain.ActionBuy},
	}))

	err := store.Append(ctx, "btc-fast", []domain.TradeEvent{
		{Timestamp: day(3), Action: domain.ActionSell},
	})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestLedgerStore_DuplicateTimestamp(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "btc-fast", []domain.TradeEvent{
		{Timestamp: day(1), Action: domain.ActionBuy},
	}))

	err := store.Append(ctx, "btc-fast", []domain.TradeEvent{
		{Timestamp: day(1), Action: domain.ActionSell},
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

func TestStatsStore_InsertAndGetLatest(t *testing.T) {
	store := NewStatsStore()
	ctx := context.Background()

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(6 * time.Hour)

	older := &domain.StatsSnapshot{StrategyName: "alpha", ComputedAt: t1,
		Record: domain.StatsRecord{NumberOfTrades: 1}}
	newer := &domain.StatsSnapshot{StrategyName: "alpha", ComputedAt: t2,
		Record: domain.StatsRecord{NumberOfTrades: 2}}

	if err := store.Insert(ctx, older); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, newer); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetLatest(ctx, "alpha")
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if got.Record.NumberOfTrades != 2 {
		t.Errorf("expected the newer snapshot, got %d trades", got.Record.NumberOfTrades)
	}
}

func TestStatsStore_GetLatestNotFound(t *testing.T) {
	store := NewStatsStore()

	_, err := store.GetLatest(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsStore_Clear(t *testing.T) {
	store := NewStatsStore()
	ctx := context.Background()

	snap := &domain.StatsSnapshot{StrategyName: "alpha", ComputedAt: time.Now()}
	if err := store.Insert(ctx, snap); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.GetLatest(ctx, "alpha"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after Clear, got %v", err)
	}
}

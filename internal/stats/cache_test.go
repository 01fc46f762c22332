package stats

import (
	"testing"
	"time"

	"tradinghub/internal/domain"
)

func TestCache_HitAndMiss(t *testing.T) {
	c := NewCache()
	ts := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	rec := &domain.StatsRecord{NumberOfTrades: 2}

	if _, ok := c.Get("alpha", ts); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Put("alpha", ts, rec)

	got, ok := c.Get("alpha", ts)
	if !ok || got.NumberOfTrades != 2 {
		t.Fatalf("expected hit with 2 trades, got ok=%v", ok)
	}

	// A grown ledger has a newer last timestamp: the old entry is a miss.
	if _, ok := c.Get("alpha", ts.Add(time.Hour)); ok {
		t.Error("expected miss for newer ledger version")
	}
	// Other strategies are unaffected.
	if _, ok := c.Get("beta", ts); ok {
		t.Error("expected miss for different strategy")
	}
}

func TestCache_PutEvictsOldVersions(t *testing.T) {
	c := NewCache()
	t1 := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)

	c.Put("alpha", t1, &domain.StatsRecord{NumberOfTrades: 1})
	c.Put("alpha", t2, &domain.StatsRecord{NumberOfTrades: 2})

	if _, ok := c.Get("alpha", t1); ok {
		t.Error("expected old version to be evicted")
	}
	got, ok := c.Get("alpha", t2)
	if !ok || got.NumberOfTrades != 2 {
		t.Errorf("expected current version with 2 trades, got ok=%v", ok)
	}
}

package catalog

import (
	"testing"

	"tradinghub/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func sampleSummaries() []domain.StrategySummary {
	return []domain.StrategySummary{
		{Name: "btc-fast", Symbol: "BTCUSDT", Exchange: "binance", TimeHorizon: "1h", Pnl: fptr(120)},
		{Name: "btc-slow", Symbol: "BTCUSDT", Exchange: "binance", TimeHorizon: "1d", Pnl: fptr(-30)},
		{Name: "eth-mid", Symbol: "ETHUSDT", Exchange: "bybit", TimeHorizon: "1h", Pnl: fptr(45)},
		{Name: "sol-new", Symbol: "SOLUSDT", Exchange: "binance", TimeHorizon: "4h", Pnl: nil},
		{Name: "eth-flat", Symbol: "ETHUSDT", Exchange: "binance", TimeHorizon: "1h", Pnl: fptr(0)},
	}
}

func TestApply_ConjunctiveFilters(t *testing.T) {
	got := Apply(sampleSummaries(), Filter{Symbol: "BTCUSDT", Exchange: "binance"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	got = Apply(sampleSummaries(), Filter{Symbol: "BTCUSDT", TimeHorizon: "1h"})
	if len(got) != 1 || got[0].Name != "btc-fast" {
		t.Fatalf("expected only btc-fast, got %v", got)
	}
}

func TestApply_AllAndEmptyMatchEverything(t *testing.T) {
	s := sampleSummaries()

	if got := Apply(s, Filter{}); len(got) != len(s) {
		t.Errorf("empty filter: expected %d, got %d", len(s), len(got))
	}
	if got := Apply(s, Filter{Symbol: "all", Exchange: "all", TimeHorizon: "all"}); len(got) != len(s) {
		t.Errorf("all filter: expected %d, got %d", len(s), len(got))
	}
}

func TestApply_Idempotent(t *testing.T) {
	f := Filter{Exchange: "binance"}
	once := Apply(sampleSummaries(), f)
	twice := Apply(once, f)

	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d then %d", len(once), len(twice))
	}
}

func TestQuery_SortDescNullsLast(t *testing.T) {
	res := Query(sampleSummaries(), Filter{}, OrderDesc, Page{Size: 10, Index: 1})

	wantOrder := []string{"btc-fast", "eth-mid", "eth-flat", "btc-slow", "sol-new"}
	if len(res.Items) != len(wantOrder) {
		t.Fatalf("expected %d items, got %d", len(wantOrder), len(res.Items))
	}
	for i, w := range wantOrder {
		if res.Items[i].Name != w {
			t.Errorf("position %d: expected %s, got %s", i, w, res.Items[i].Name)
		}
	}
}

func TestQuery_SortAscNullsLast(t *testing.T) {
	res := Query(sampleSummaries(), Filter{}, OrderAsc, Page{Size: 10, Index: 1})

	if res.Items[0].Name != "btc-slow" {
		t.Errorf("expected btc-slow first, got %s", res.Items[0].Name)
	}
	if res.Items[len(res.Items)-1].Name != "sol-new" {
		t.Errorf("expected null pnl last, got %s", res.Items[len(res.Items)-1].Name)
	}
}

func TestQuery_OrderNonePreservesInput(t *testing.T) {
	res := Query(sampleSummaries(), Filter{}, OrderNone, Page{Size: 10, Index: 1})

	want := sampleSummaries()
	for i := range want {
		if res.Items[i].Name != want[i].Name {
			t.Errorf("position %d: expected %s, got %s", i, want[i].Name, res.Items[i].Name)
		}
	}
}

func TestQuery_Pagination(t *testing.T) {
	// 12 strategies, page size 10: page 1 has 10, page 2 has 2.
	var s []domain.StrategySummary
	for i := 0; i < 12; i++ {
		s = append(s, domain.StrategySummary{Name: string(rune('a' + i)), Symbol: "BTCUSDT"})
	}

	p1 := Query(s, Filter{}, OrderNone, Page{Size: 10, Index: 1})
	if len(p1.Items) != 10 || p1.TotalCount != 12 || p1.TotalPages != 2 {
		t.Fatalf("page 1: got %d items, count %d, pages %d", len(p1.Items), p1.TotalCount, p1.TotalPages)
	}

	p2 := Query(s, Filter{}, OrderNone, Page{Size: 10, Index: 2})
	if len(p2.Items) != 2 {
		t.Fatalf("page 2: expected 2 items, got %d", len(p2.Items))
	}

	// Pages cover the whole set without overlap.
	seen := make(map[string]bool)
	for _, it := range append(p1.Items, p2.Items...) {
		if seen[it.Name] {
			t.Errorf("item %s appears on two pages", it.Name)
		}
		seen[it.Name] = true
	}
	if len(seen) != 12 {
		t.Errorf("pages cover %d items, expected 12", len(seen))
	}
}

func TestQuery_OutOfRangePage(t *testing.T) {
	s := sampleSummaries()

	res := Query(s, Filter{}, OrderNone, Page{Size: 10, Index: 3})
	if len(res.Items) != 0 {
		t.Errorf("expected empty page, got %d items", len(res.Items))
	}
	if res.TotalCount != len(s) || res.TotalPages != 1 {
		t.Errorf("expected count %d pages 1, got count %d pages %d", len(s), res.TotalCount, res.TotalPages)
	}

	res = Query(s, Filter{}, OrderNone, Page{Size: 10, Index: 0})
	if len(res.Items) != 0 {
		t.Errorf("expected empty page for index 0, got %d items", len(res.Items))
	}
}

func TestCount_SharedSignPredicate(t *testing.T) {
	c := Count(sampleSummaries())

	if c.Total != 5 {
		t.Errorf("expected total 5, got %d", c.Total)
	}
	if c.Profitable != 2 {
		t.Errorf("expected 2 profitable, got %d", c.Profitable)
	}
	if c.Losing != 1 {
		t.Errorf("expected 1 losing, got %d", c.Losing)
	}
	// Zero and null P&L are neither profitable nor losing.
	if c.Profitable+c.Losing == c.Total {
		t.Error("expected neutral strategies outside both classes")
	}

	// Average over the 4 valued entries: (120 - 30 + 45 + 0) / 4.
	if c.AveragePnl == nil || *c.AveragePnl != 33.75 {
		t.Errorf("expected average pnl 33.75, got %v", c.AveragePnl)
	}
}

func TestGroupBySymbol(t *testing.T) {
	groups := GroupBySymbol(sampleSummaries())

	if len(groups) != 3 {
		t.Fatalf("expected 3 symbols, got %d", len(groups))
	}
	if len(groups["BTCUSDT"]) != 2 || len(groups["ETHUSDT"]) != 2 || len(groups["SOLUSDT"]) != 1 {
		t.Errorf("unexpected group sizes: %v", groups)
	}
}

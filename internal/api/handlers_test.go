package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tradinghub/internal/domain"
	"tradinghub/internal/stats"
	"tradinghub/internal/storage/memory"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 12, 0, 0, 0, time.UTC)
}

type testEnv struct {
	server     *Server
	strategies *memory.StrategyStore
	ledgers    *memory.LedgerStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		strategies: memory.NewStrategyStore(),
		ledgers:    memory.NewLedgerStore(),
	}
	env.server = NewServer(Config{
		Strategies:   env.strategies,
		Ledgers:      env.ledgers,
		Stats:        memory.NewStatsStore(),
		Users:        memory.NewUserStore(),
		Curves:       memory.NewEquityCurveStore(),
		StatsOptions: stats.Options{},
		Logger:       zerolog.Nop(),
	})
	return env
}

func (e *testEnv) seedStrategy(t *testing.T, s *domain.Strategy, events []domain.TradeEvent) {
	t.Helper()
	ctx := context.Background()
	if err := e.strategies.Insert(ctx, s); err != nil {
		t.Fatalf("seed strategy %s: %v", s.Name, err)
	}
	if len(events) > 0 {
		if err := e.ledgers.Append(ctx, s.Name, events); err != nil {
			t.Fatalf("seed ledger %s: %v", s.Name, err)
		}
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	e.server.ServeHTTP(rr, req)
	return rr
}

func defaultLedger() []domain.TradeEvent {
	return []domain.TradeEvent{
		{Timestamp: day(1), Action: domain.ActionBuy, PnlSum: 10},
		{Timestamp: day(2), Action: domain.ActionDirectionChange, PnlPercent: -1.5, PnlSum: -5},
		{Timestamp: day(3), Action: domain.ActionTakeProfit, PnlPercent: 2.5, PnlSum: 20},
	}
}

func TestListStrategies_FilterSortAndCounts(t *testing.T) {
	env := newTestEnv(t)
	env.seedStrategy(t, &domain.Strategy{Name: "btc-fast", Symbol: "BTCUSDT", Exchange: "binance", TimeHorizon: "1h"}, defaultLedger())
	env.seedStrategy(t, &domain.Strategy{Name: "btc-slow", Symbol: "BTCUSDT", Exchange: "binance", TimeHorizon: "1d"}, []domain.TradeEvent{
		{Timestamp: day(1), Action: domain.ActionSell, PnlSum: -40},
	})
	env.seedStrategy(t, &domain.Strategy{Name: "eth-mid", Symbol: "ETHUSDT", Exchange: "bybit", TimeHorizon: "1h"}, nil)

	rr := env.do(t, http.MethodGet, "/api/strategies?symbol=BTCUSDT&sort=desc", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Items      []domain.StrategySummary `json:"items"`
		TotalCount int                      `json:"total_count"`
		TotalPages int                      `json:"total_pages"`
		Counts     struct {
			Total      int `json:"total"`
			Profitable int `json:"profitable"`
			Losing     int `json:"losing"`
		} `json:"counts"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.TotalCount != 2 || len(resp.Items) != 2 {
		t.Fatalf("expected 2 BTC strategies, got count %d items %d", resp.TotalCount, len(resp.Items))
	}
	// desc: btc-fast (pnl 20) before btc-slow (pnl -40)
	if resp.Items[0].Name != "btc-fast" || resp.Items[1].Name != "btc-slow" {
		t.Errorf("unexpected order: %s, %s", resp.Items[0].Name, resp.Items[1].Name)
	}
	if resp.Counts.Profitable != 1 || resp.Counts.Losing != 1 {
		t.Errorf("expected 1 profitable / 1 losing, got %d / %d", resp.Counts.Profitable, resp.Counts.Losing)
	}
}

func TestListStrategies_EmptyLedgerHasNullPnl(t *testing.T) {
	env := newTestEnv(t)
	env.seedStrategy(t, &domain.Strategy{Name: "eth-mid", Symbol: "ETHUSDT"}, nil)

	rr := env.do(t, http.MethodGet, "/api/strategies", "")
	var resp struct {
		Items []domain.StrategySummary `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Pnl != nil {
		t.Fatalf("expected one item with null pnl, got %+v", resp.Items)
	}
}

func TestListStrategies_BadSortParam(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/strategies?sort=sideways", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGetStrategy(t *testing.T) {
	env := newTestEnv(t)
	env.seedStrategy(t, &domain.Strategy{Name: "btc-fast", Symbol: "BTCUSDT"}, defaultLedger())

	rr := env.do(t, http.MethodGet, "/api/strategies/btc-fast", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Strategy   domain.Strategy    `json:"strategy"`
		Ledger     []domain.TradeEvent `json:"ledger"`
		CurrentPnl *float64           `json:"current_pnl"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Strategy.Name != "btc-fast" {
		t.Errorf("expected strategy btc-fast, got %s", resp.Strategy.Name)
	}
	if len(resp.Ledger) != 3 {
		t.Errorf("expected 3 ledger events, got %d", len(resp.Ledger))
	}
	if resp.CurrentPnl == nil || *resp.CurrentPnl != 20 {
		t.Errorf("expected current pnl 20, got %v", resp.CurrentPnl)
	}
}

func TestGetStrategy_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/strategies/missing", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestStrategyMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.seedStrategy(t, &domain.Strategy{Name: "btc-fast", Symbol: "BTCUSDT"}, defaultLedger())

	rr := env.do(t, http.MethodGet, "/api/strategy-metrics?strategy=btc-fast", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var rec domain.StatsRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.TotalReturn == nil || *rec.TotalReturn != 2.0 {
		t.Errorf("expected total return 2.0, got %v", rec.TotalReturn)
	}
	if rec.NumberOfTrades != 2 {
		t.Errorf("expected 2 trades, got %d", rec.NumberOfTrades)
	}

	// Second request is served from cache and must agree.
	rr2 := env.do(t, http.MethodGet, "/api/strategy-metrics?strategy=btc-fast", "")
	if rr2.Code != http.StatusOK {
		t.Fatalf("expected 200 from cache, got %d", rr2.Code)
	}
	if rr.Body.String() != rr2.Body.String() {
		t.Error("cached response differs from computed response")
	}
}

func TestStrategyMetrics_ParamRequired(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/strategy-metrics", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestStrategyMetrics_UnknownStrategy(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/strategy-metrics?strategy=missing", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestStrategyMetrics_MalformedLedger(t *testing.T) {
	env := newTestEnv(t)
	// tp with no open position pairs nothing
	env.seedStrategy(t, &domain.Strategy{Name: "broken", Symbol: "BTCUSDT"}, []domain.TradeEvent{
		{Timestamp: day(1), Action: domain.ActionTakeProfit, PnlPercent: 1},
	})

	rr := env.do(t, http.MethodGet, "/api/strategy-metrics?strategy=broken", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestAvailableStrategies_GroupedBySymbol(t *testing.T) {
	env := newTestEnv(t)
	env.seedStrategy(t, &domain.Strategy{Name: "btc-fast", Symbol: "BTCUSDT"}, nil)
	env.seedStrategy(t, &domain.Strategy{Name: "btc-slow", Symbol: "BTCUSDT"}, nil)
	env.seedStrategy(t, &domain.Strategy{Name: "eth-mid", Symbol: "ETHUSDT"}, nil)

	rr := env.do(t, http.MethodGet, "/api/strategies/available", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var groups map[string][]domain.StrategySummary
	if err := json.Unmarshal(rr.Body.Bytes(), &groups); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(groups["BTCUSDT"]) != 2 || len(groups["ETHUSDT"]) != 1 {
		t.Errorf("unexpected grouping: %v", groups)
	}
}

func TestUserLifecycle(t *testing.T) {
	env := newTestEnv(t)

	body := `{"email":"a@example.com","name":"A","password":"secret","assigned_strategies":["btc-fast"]}`
	rr := env.do(t, http.MethodPost, "/api/users", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	// Password must never appear in responses.
	if strings.Contains(rr.Body.String(), "secret") {
		t.Error("password leaked in create response")
	}

	rr = env.do(t, http.MethodPost, "/api/users", body)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/api/users/a@example.com", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodDelete, "/api/users/a@example.com", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/api/users/a@example.com", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}
}

func TestCreateUser_EmailRequired(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/users", `{"name":"A"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestEquityCurve_DerivedFromLedger(t *testing.T) {
	env := newTestEnv(t)
	env.seedStrategy(t, &domain.Strategy{Name: "btc-fast", Symbol: "BTCUSDT"}, defaultLedger())

	rr := env.do(t, http.MethodGet, "/api/strategies/btc-fast/equity-curve", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var points []struct {
		Equity float64 `json:"equity"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []float64{1010, 995, 1020}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i, w := range want {
		if points[i].Equity != w {
			t.Errorf("point %d: expected %f, got %f", i, w, points[i].Equity)
		}
	}
}

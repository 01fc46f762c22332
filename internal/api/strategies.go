package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"tradinghub/internal/catalog"
	"tradinghub/internal/domain"
	"tradinghub/internal/returns"
	"tradinghub/internal/stats"
	"tradinghub/internal/storage"
)

const defaultPageSize = 10

// catalogResponse is one page of the strategy listing.
type catalogResponse struct {
	Items      []domain.StrategySummary `json:"items"`
	TotalCount int                      `json:"total_count"`
	TotalPages int                      `json:"total_pages"`
	Counts     catalog.Counts           `json:"counts"`
}

// handleListStrategies serves the catalog page.
// GET /api/strategies?symbol=&exchange=&time_horizon=&sort=&page=&page_size=
func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.loadSummaries(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("load strategy summaries")
		respondStorageError(w, err)
		return
	}

	q := r.URL.Query()
	filter := catalog.Filter{
		Symbol:      q.Get("symbol"),
		Exchange:    q.Get("exchange"),
		TimeHorizon: q.Get("time_horizon"),
	}

	order := catalog.OrderNone
	switch q.Get("sort") {
	case "asc":
		order = catalog.OrderAsc
	case "desc":
		order = catalog.OrderDesc
	case "", "none":
	default:
		respondError(w, http.StatusBadRequest, "sort must be asc, desc or none")
		return
	}

	page := catalog.Page{Size: defaultPageSize, Index: 1}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page.Index = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "page_size must be a positive integer")
			return
		}
		page.Size = n
	}

	filtered := catalog.Apply(summaries, filter)
	res := catalog.Query(filtered, catalog.Filter{}, order, page)

	respondJSON(w, http.StatusOK, catalogResponse{
		Items:      res.Items,
		TotalCount: res.TotalCount,
		TotalPages: res.TotalPages,
		Counts:     catalog.Count(filtered),
	})
}

// handleAvailableStrategies groups the catalog by symbol for the
// assignment picker.
// GET /api/strategies/available
func (s *Server) handleAvailableStrategies(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.loadSummaries(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("load strategy summaries")
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, catalog.GroupBySymbol(summaries))
}

// handleGetStrategy serves one strategy's config, full ledger and current P&L.
// GET /api/strategies/{name}
func (s *Server) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	strat, err := s.strategies.GetByName(r.Context(), name)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	led, err := s.ledgers.GetByStrategy(r.Context(), name)
	if err != nil {
		s.log.Error().Err(err).Str("strategy", name).Msg("load ledger")
		respondStorageError(w, err)
		return
	}
	if led == nil {
		led = domain.Ledger{}
	}

	var currentPnl *float64
	if last := led.Last(); last != nil {
		currentPnl = &last.PnlSum
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"strategy":    strat,
		"ledger":      led,
		"current_pnl": currentPnl,
	})
}

// handleEquityCurve serves a strategy's equity curve. The stored curve is
// preferred; without a curve store, or before the first stats run, the curve
// is derived from the ledger.
// GET /api/strategies/{name}/equity-curve
func (s *Server) handleEquityCurve(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if _, err := s.strategies.GetByName(r.Context(), name); err != nil {
		respondStorageError(w, err)
		return
	}

	if s.curves != nil {
		points, err := s.curves.GetByStrategy(r.Context(), name)
		if err != nil {
			s.log.Error().Err(err).Str("strategy", name).Msg("load stored equity curve")
			respondStorageError(w, err)
			return
		}
		if len(points) > 0 {
			respondJSON(w, http.StatusOK, points)
			return
		}
	}

	led, err := s.ledgers.GetByStrategy(r.Context(), name)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	points, _, err := returns.EquityCurve(led, s.statsOpts.InitialBalance)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	if points == nil {
		points = []returns.EquityPoint{}
	}
	respondJSON(w, http.StatusOK, points)
}

// handleStrategyMetrics computes the full statistics record for one
// strategy, cached against the ledger's last event timestamp: any append
// invalidates the entry.
// GET /api/strategy-metrics?strategy=name
func (s *Server) handleStrategyMetrics(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("strategy")
	if name == "" {
		respondError(w, http.StatusBadRequest, "strategy query parameter is required")
		return
	}

	strat, err := s.strategies.GetByName(r.Context(), name)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	var lastTS time.Time
	last, err := s.ledgers.LastEvent(r.Context(), name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Error().Err(err).Str("strategy", name).Msg("load last ledger event")
		respondStorageError(w, err)
		return
	}
	if last != nil {
		lastTS = last.Timestamp
	}

	if rec, ok := s.cache.Get(name, lastTS); ok {
		respondJSON(w, http.StatusOK, rec)
		return
	}

	led, err := s.ledgers.GetByStrategy(r.Context(), name)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	opts := s.statsOpts
	opts.TotalReturnOverride = strat.TotalReturn

	rec, err := stats.Compute(led, opts)
	if err != nil {
		s.log.Warn().Err(err).Str("strategy", name).Msg("compute strategy metrics")
		respondStorageError(w, err)
		return
	}

	s.cache.Put(name, lastTS, rec)
	respondJSON(w, http.StatusOK, rec)
}

// loadSummaries joins the strategy catalog with each ledger's final
// cumulative P&L. A strategy with an empty ledger gets a nil P&L.
func (s *Server) loadSummaries(ctx context.Context) ([]domain.StrategySummary, error) {
	strategies, err := s.strategies.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.StrategySummary, 0, len(strategies))
	for _, strat := range strategies {
		sum := domain.StrategySummary{
			Name:        strat.Name,
			Exchange:    strat.Exchange,
			Symbol:      strat.Symbol,
			TimeHorizon: strat.TimeHorizon,
		}

		last, err := s.ledgers.LastEvent(ctx, strat.Name)
		switch {
		case err == nil:
			pnl := last.PnlSum
			sum.Pnl = &pnl
		case errors.Is(err, storage.ErrNotFound):
			// empty ledger, no P&L yet
		default:
			return nil, err
		}

		summaries = append(summaries, sum)
	}
	return summaries, nil
}

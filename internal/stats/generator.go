package stats

import (
	"context"
	"fmt"
	"time"

	"tradinghub/internal/domain"
	"tradinghub/internal/returns"
	"tradinghub/internal/storage"
)

// Generator loads ledgers, computes statistics records and persists them as
// snapshots, one strategy at a time. It is the batch counterpart of Compute.
type Generator struct {
	strategyStore storage.StrategyStore
	ledgerStore   storage.LedgerStore
	statsStore    storage.StatsStore
	curveStore    storage.EquityCurveStore // optional

	opts Options

	// Failures records per-strategy errors from the last GenerateAll run
	// instead of aborting the whole batch on the first bad ledger.
	Failures map[string]error
}

// NewGenerator creates a stats generator. curveStore may be nil when equity
// curves are not persisted.
func NewGenerator(strategies storage.StrategyStore, ledgers storage.LedgerStore, stats storage.StatsStore, curves storage.EquityCurveStore, opts Options) *Generator {
	return &Generator{
		strategyStore: strategies,
		ledgerStore:   ledgers,
		statsStore:    stats,
		curveStore:    curves,
		opts:          opts,
		Failures:      make(map[string]error),
	}
}

// GenerateOne computes and persists the snapshot for a single strategy.
// The strategy record's total-return override, when present, takes
// precedence over the ledger-derived value.
func (g *Generator) GenerateOne(ctx context.Context, strategyName string) (*domain.StatsSnapshot, error) {
	strat, err := g.strategyStore.GetByName(ctx, strategyName)
	if err != nil {
		return nil, fmt.Errorf("load strategy %s: %w", strategyName, err)
	}

	l, err := g.ledgerStore.GetByStrategy(ctx, strategyName)
	if err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", strategyName, err)
	}

	opts := g.opts
	opts.TotalReturnOverride = strat.TotalReturn

	rec, err := Compute(l, opts)
	if err != nil {
		return nil, fmt.Errorf("compute stats %s: %w", strategyName, err)
	}

	now := time.Now().UTC()
	snap := &domain.StatsSnapshot{
		StrategyName: strategyName,
		ComputedAt:   now,
		Record:       *rec,
	}
	if err := g.statsStore.Insert(ctx, snap); err != nil {
		return nil, fmt.Errorf("store stats %s: %w", strategyName, err)
	}

	if g.curveStore != nil {
		curve, _, err := returns.EquityCurve(l, opts.InitialBalance)
		if err == nil && len(curve) > 0 {
			if err := g.curveStore.Replace(ctx, strategyName, now, curve); err != nil {
				return nil, fmt.Errorf("store equity curve %s: %w", strategyName, err)
			}
		}
	}

	return snap, nil
}

// GenerateAll clears existing snapshots and regenerates one per strategy.
// A strategy whose ledger is malformed is recorded in Failures and skipped;
// the batch continues. Returns the number of snapshots written.
func (g *Generator) GenerateAll(ctx context.Context) (int, error) {
	strategies, err := g.strategyStore.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list strategies: %w", err)
	}

	if err := g.statsStore.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clear stats: %w", err)
	}

	g.Failures = make(map[string]error)
	written := 0
	for _, s := range strategies {
		if _, err := g.GenerateOne(ctx, s.Name); err != nil {
			g.Failures[s.Name] = err
			continue
		}
		written++
	}
	return written, nil
}

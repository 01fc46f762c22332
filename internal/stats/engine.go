// Package stats turns a strategy's trade ledger into the full dashboard
// statistics record. Every metric family is a pure function over the ledger
// and its derived return series; the package holds no state between calls.
package stats

import (
	"tradinghub/internal/domain"
	"tradinghub/internal/ledger"
	"tradinghub/internal/returns"
)

// Options configures a single computation. The zero value is usable: daily
// bucketing, the default 1000-unit initial balance, no override, no benchmark.
type Options struct {
	// Period selects the bucket size of the primary return series that
	// ratio, tail-risk and distribution statistics are computed on.
	Period returns.Period

	// InitialBalance overrides the equity denominator. <= 0 selects the
	// default 1000 units.
	InitialBalance float64

	// TotalReturnOverride, when set, is the authoritative total return in
	// percent (from the strategy record) and replaces the ledger-derived
	// value.
	TotalReturnOverride *float64

	// Benchmark is an external benchmark return series (fractional, one
	// entry per primary bucket, same order). Alpha, beta, R², information
	// ratio and Treynor ratio stay nil without it; no proxy is substituted.
	Benchmark []float64
}

// inputs carries everything the metric families share, derived once per call.
type inputs struct {
	curve   []returns.EquityPoint
	initial float64

	primary []float64 // fractional returns, primary period buckets
	ppy     float64   // periods per year for the primary period
	daily   []float64
	weekly  []float64
	monthly []float64

	trades      []ledger.Trade
	elapsedDays float64

	totalReturn float64 // fractional, override applied

	drawdowns []float64 // fractional drawdown per curve point
	episodes  []ddEpisode
}

// Compute derives the complete statistics record for one ledger.
// Undefined statistics come back nil; a structurally broken ledger fails
// with ledger.ErrMalformedLedger.
func Compute(l domain.Ledger, opts Options) (*domain.StatsRecord, error) {
	if opts.Period == "" {
		opts.Period = returns.PeriodDay
	}

	curve, initial, err := returns.EquityCurve(l, opts.InitialBalance)
	if err != nil {
		return nil, err
	}
	trades, err := ledger.ExtractTrades(l)
	if err != nil {
		return nil, err
	}

	in := &inputs{
		curve:   curve,
		initial: initial,
		ppy:     opts.Period.PeriodsPerYear(),
		trades:  trades,
	}
	in.daily = bucketValues(curve, returns.PeriodDay, initial)
	in.weekly = bucketValues(curve, returns.PeriodWeek, initial)
	in.monthly = bucketValues(curve, returns.PeriodMonth, initial)
	switch opts.Period {
	case returns.PeriodWeek:
		in.primary = in.weekly
	case returns.PeriodMonth:
		in.primary = in.monthly
	default:
		in.primary = in.daily
	}
	if len(curve) > 0 {
		in.elapsedDays = curve[len(curve)-1].Timestamp.Sub(curve[0].Timestamp).Hours() / 24
		in.totalReturn = curve[len(curve)-1].Equity/initial - 1
	}
	if opts.TotalReturnOverride != nil {
		in.totalReturn = *opts.TotalReturnOverride / 100
	}
	in.drawdowns, in.episodes = drawdownSeries(curve)

	rec := &domain.StatsRecord{}
	fillReturnFamily(rec, in, len(curve) > 0)
	fillRatioFamily(rec, in, opts.Benchmark)
	fillDrawdownFamily(rec, in)
	fillTailRiskFamily(rec, in)
	fillDistributionFamily(rec, in)
	fillTradeFamily(rec, in)
	fillDirectionFamilies(rec, in)
	return rec, nil
}

func bucketValues(curve []returns.EquityPoint, p returns.Period, initial float64) []float64 {
	bs := returns.BucketReturns(curve, p, initial)
	out := make([]float64, len(bs))
	for i, b := range bs {
		out[i] = b.Return
	}
	return out
}

package stats

import (
	"math"

	"tradinghub/internal/domain"
)

// fillRatioFamily sets the risk-adjusted and profitability ratios.
// Benchmark-dependent ratios (alpha, beta, R², information, Treynor) stay nil
// unless a benchmark series of matching length is supplied.
func fillRatioFamily(rec *domain.StatsRecord, in *inputs, benchmark []float64) {
	rs := in.primary

	m, mOK := mean(rs)
	sd, sdOK := sampleStddev(rs)

	// Sharpe, zero risk-free rate, annualized by sqrt(periods/year).
	if mOK && sdOK && sd > 0 {
		rec.SharpeRatio = ptr(m / sd * math.Sqrt(in.ppy))
	}

	// Sortino: downside deviation is the root mean square of negative
	// bucket returns; nil when no bucket lost money.
	if dd, ok := downsideDeviation(rs); ok {
		rec.DownsideDeviation = ptr(dd * 100)
		if mOK && dd > 0 {
			rec.SortinoRatio = ptr(m / dd * math.Sqrt(in.ppy))
		}
	}

	if sdOK {
		rec.Volatility = ptr(sd * 100)
		rec.AnnualizedVolatility = ptr(sd * math.Sqrt(in.ppy) * 100)
		if sd > 0 {
			rec.RiskReturnRatio = ptr(in.totalReturn / sd)
		}
	}

	// Omega at a zero threshold over bucket returns.
	pos, neg := positives(rs), negatives(rs)
	if len(neg) > 0 {
		rec.OmegaRatio = ptr(sum(pos) / -sum(neg))
	}

	// Trade-denominated ratios.
	tr := tradeReturns(in.trades)
	wins, losses := positives(tr), negatives(tr)
	grossProfit, grossLoss := sum(wins), -sum(losses)

	if grossLoss > 0 {
		rec.ProfitFactor = ptr(grossProfit / grossLoss)
		rec.GainToPainRatio = ptr(grossProfit / grossLoss)
	}
	avgWin, winOK := mean(wins)
	avgLoss, lossOK := mean(losses)
	if winOK && lossOK && avgLoss != 0 {
		rec.PayoffRatio = ptr(avgWin / -avgLoss)
		rec.ProfitLossRatio = rec.PayoffRatio
	}

	// CPC index: profit factor × win rate × payoff ratio.
	if rec.ProfitFactor != nil && rec.PayoffRatio != nil && len(tr) > 0 {
		winRate := float64(len(wins)) / float64(len(tr))
		rec.CPCRatio = ptr(*rec.ProfitFactor * winRate * *rec.PayoffRatio)
	}

	// Common sense ratio: profit factor scaled by the bucket tail ratio.
	if rec.ProfitFactor != nil {
		sorted := sortedCopy(rs)
		p95, ok95 := percentile(sorted, 0.95)
		p5, ok5 := percentile(sorted, 0.05)
		if ok95 && ok5 && p5 != 0 {
			rec.CommonSenseRatio = ptr(*rec.ProfitFactor * p95 / math.Abs(p5))
		}
	}

	fillBenchmarkRatios(rec, in, benchmark)
}

// fillBenchmarkRatios computes alpha, beta, R², information ratio and Treynor
// ratio against an external benchmark. Length mismatch means the series are
// not aligned and everything stays nil rather than computing against a proxy.
func fillBenchmarkRatios(rec *domain.StatsRecord, in *inputs, benchmark []float64) {
	rs := in.primary
	if len(benchmark) == 0 || len(benchmark) != len(rs) || len(rs) < 2 {
		return
	}

	mr, _ := mean(rs)
	mb, _ := mean(benchmark)

	var covRB, varB, varR float64
	for i := range rs {
		covRB += (rs[i] - mr) * (benchmark[i] - mb)
		varB += (benchmark[i] - mb) * (benchmark[i] - mb)
		varR += (rs[i] - mr) * (rs[i] - mr)
	}
	n1 := float64(len(rs) - 1)
	covRB, varB, varR = covRB/n1, varB/n1, varR/n1

	if varB == 0 {
		return
	}
	beta := covRB / varB
	rec.Beta = ptr(beta)

	// Annualized active return over the beta-adjusted benchmark, percent.
	rec.Alpha = ptr((mr - beta*mb) * in.ppy * 100)

	if varR > 0 {
		corr := covRB / math.Sqrt(varR*varB)
		rec.RSquared = ptr(corr * corr)
	}

	diff := make([]float64, len(rs))
	for i := range rs {
		diff[i] = rs[i] - benchmark[i]
	}
	if md, ok := mean(diff); ok {
		if sd, ok := sampleStddev(diff); ok && sd > 0 {
			rec.InformationRatio = ptr(md / sd * math.Sqrt(in.ppy))
		}
	}

	if beta != 0 {
		rec.TreynorRatio = ptr(mr * in.ppy * 100 / beta)
	}
}

// downsideDeviation is sqrt(mean(r² | r < 0)) over the negative returns.
// Undefined when no bucket return is negative.
func downsideDeviation(rs []float64) (float64, bool) {
	neg := negatives(rs)
	if len(neg) == 0 {
		return 0, false
	}
	sumSq := 0.0
	for _, r := range neg {
		sumSq += r * r
	}
	return math.Sqrt(sumSq / float64(len(neg))), true
}

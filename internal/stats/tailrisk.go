package stats

import (
	"math"

	"tradinghub/internal/domain"
	"tradinghub/internal/ledger"
)

// fillTailRiskFamily sets VaR, CVaR, the Ulcer index and risk of ruin.
func fillTailRiskFamily(rec *domain.StatsRecord, in *inputs) {
	sorted := sortedCopy(in.primary)

	// Empirical VaR at 95%: the 5th percentile bucket return.
	if v, ok := percentile(sorted, 0.05); ok {
		rec.VaR95 = ptr(v * 100)
	}

	// CVaR at 99%: mean of the returns at or below the 1st percentile.
	if cut, ok := percentile(sorted, 0.01); ok {
		var tail []float64
		for _, r := range sorted {
			if r <= cut {
				tail = append(tail, r)
			}
		}
		if m, ok := mean(tail); ok {
			rec.CVaR99 = ptr(m * 100)
		}
	}

	// Ulcer index: RMS of the percent drawdown series.
	if len(in.drawdowns) > 0 {
		sumSq := 0.0
		for _, d := range in.drawdowns {
			sumSq += d * 100 * d * 100
		}
		rec.UlcerIndex = ptr(math.Sqrt(sumSq / float64(len(in.drawdowns))))
	}

	rec.RiskOfRuin = riskOfRuin(in.trades)
}

// riskOfRuin estimates ruin probability with a fixed-fraction model:
// ((1−A)/(1+A))^(1/|avgLoss|) where A = winRate − lossRate and the average
// fractional loss sizes the capital unit. A non-positive edge means certain
// ruin under the model. Nil when the ledger has no trades or no losing
// trades (no loss to size the capital unit with).
func riskOfRuin(trades []ledger.Trade) *float64 {
	rs := tradeReturns(trades)
	n := len(rs)
	if n == 0 {
		return nil
	}
	wins, losses := positives(rs), negatives(rs)
	if len(losses) == 0 {
		return nil
	}

	winRate := float64(len(wins)) / float64(n)
	lossRate := float64(len(losses)) / float64(n)
	edge := winRate - lossRate
	if edge <= 0 {
		return ptr(100)
	}

	avgLoss, _ := mean(losses) // percent, negative
	units := 1 / math.Abs(avgLoss/100)
	return ptr(math.Pow((1-edge)/(1+edge), units) * 100)
}

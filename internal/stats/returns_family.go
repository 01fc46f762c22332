package stats

import (
	"math"

	"tradinghub/internal/domain"
)

// fillReturnFamily sets total/daily/weekly/monthly return and CAGR, plus the
// calendar bucket win/loss counts. hasCurve distinguishes an empty ledger
// (all nil) from a flat one (zeros).
func fillReturnFamily(rec *domain.StatsRecord, in *inputs, hasCurve bool) {
	if !hasCurve {
		return
	}

	rec.TotalReturn = ptr(in.totalReturn * 100)

	// Per-period returns are geometric mean bucket returns: the constant
	// bucket return that compounds to the same total.
	if v, ok := geometricMeanReturn(in.daily); ok {
		rec.DailyReturn = ptr(v * 100)
	}
	if v, ok := geometricMeanReturn(in.weekly); ok {
		rec.WeeklyReturn = ptr(v * 100)
	}
	if v, ok := geometricMeanReturn(in.monthly); ok {
		rec.MonthlyReturn = ptr(v * 100)
	}

	// CAGR over the ledger's elapsed calendar days; undefined when the
	// ledger spans no time or the account went to zero or below.
	if in.elapsedDays > 0 && 1+in.totalReturn > 0 {
		cagr := math.Pow(1+in.totalReturn, 365/in.elapsedDays) - 1
		rec.CAGR = ptr(cagr * 100)
	}

	// Zero-return buckets count as neither winning nor losing.
	rec.WinningWeeks = len(positives(in.weekly))
	rec.LosingWeeks = len(negatives(in.weekly))
	rec.WinningMonths = len(positives(in.monthly))
	rec.LosingMonths = len(negatives(in.monthly))
	if n := len(in.monthly); n > 0 {
		rec.WinningMonthsPercent = ptr(float64(rec.WinningMonths) / float64(n) * 100)
		rec.NegativeMonthsPercent = ptr(float64(rec.LosingMonths) / float64(n) * 100)
	}
}

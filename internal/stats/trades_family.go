package stats

import (
	"tradinghub/internal/domain"
	"tradinghub/internal/ledger"
)

func tradeReturns(trades []ledger.Trade) []float64 {
	out := make([]float64, len(trades))
	for i, t := range trades {
		out[i] = t.ReturnPct
	}
	return out
}

// fillTradeFamily sets the statistics derived from individual round trips,
// independent of the periodic return series.
func fillTradeFamily(rec *domain.StatsRecord, in *inputs) {
	trades := in.trades
	rs := tradeReturns(trades)
	n := len(trades)
	rec.NumberOfTrades = n
	rec.ConsecutiveWins = longestStreak(rs, domain.PnlProfitable)
	rec.ConsecutiveLosses = longestStreak(rs, domain.PnlLosing)
	if n == 0 {
		return
	}

	wins, losses := positives(rs), negatives(rs)
	rec.WinRate = ptr(float64(len(wins)) / float64(n) * 100)
	rec.LossRate = ptr(float64(len(losses)) / float64(n) * 100)

	if v, ok := mean(wins); ok {
		rec.AverageWin = ptr(v)
		rec.AvgProfitPerTrade = ptr(v)
		rec.LargestWin = ptr(maxOf(wins))
	}
	if v, ok := mean(losses); ok {
		rec.AverageLoss = ptr(v)
		rec.AvgLossPerTrade = ptr(v)
		rec.LargestLoss = ptr(minOf(losses))
	}

	rec.TotalProfit = ptr(sum(wins))
	rec.NetProfit = ptr(sum(rs))

	avg, _ := mean(rs)
	rec.AvgTradeReturn = ptr(avg)
	rec.ProfitabilityPerTrade = ptr(in.totalReturn * 100 / float64(n))

	durations := make([]float64, n)
	for i, t := range trades {
		durations[i] = t.DurationDays()
	}
	if v, ok := mean(durations); ok {
		rec.AverageTradeDuration = ptr(v)
	}
}

// fillDirectionFamilies sets the long- and short-trade breakdowns. Pooling
// the two partitions reproduces the unpartitioned trade family: counts add
// up and count-weighted average returns recombine.
func fillDirectionFamilies(rec *domain.StatsRecord, in *inputs) {
	long := filterByDirection(in.trades, domain.DirectionLong)
	short := filterByDirection(in.trades, domain.DirectionShort)

	rec.NumLongTrades = len(long)
	rec.NumShortTrades = len(short)
	if n := len(in.trades); n > 0 {
		rec.LongTradesPercent = ptr(float64(len(long)) / float64(n) * 100)
		rec.ShortTradesPercent = ptr(float64(len(short)) / float64(n) * 100)
	}

	rec.TotalLongReturn, rec.AvgLongReturnPerTrade, rec.WinRateLongTrades,
		rec.AvgLongTradeDuration, rec.MaxLongTradeReturn, rec.MinLongTradeReturn = directionStats(long)
	rec.TotalShortReturn, rec.AvgShortReturnPerTrade, rec.WinRateShortTrades,
		rec.AvgShortTradeDuration, rec.MaxShortTradeReturn, rec.MinShortTradeReturn = directionStats(short)
}

func filterByDirection(trades []ledger.Trade, d domain.Direction) []ledger.Trade {
	var out []ledger.Trade
	for _, t := range trades {
		if t.Direction == d {
			out = append(out, t)
		}
	}
	return out
}

func directionStats(trades []ledger.Trade) (total, avg, winRate, avgDuration, maxReturn, minReturn *float64) {
	if len(trades) == 0 {
		return nil, nil, nil, nil, nil, nil
	}
	rs := tradeReturns(trades)

	total = ptr(sum(rs))
	m, _ := mean(rs)
	avg = ptr(m)
	winRate = ptr(float64(len(positives(rs))) / float64(len(rs)) * 100)
	maxReturn = ptr(maxOf(rs))
	minReturn = ptr(minOf(rs))

	durations := make([]float64, len(trades))
	for i, t := range trades {
		durations[i] = t.DurationDays()
	}
	d, _ := mean(durations)
	avgDuration = ptr(d)
	return
}

// longestStreak finds the longest run of trades in the given class.
// Zero-return trades break both kinds of streak without joining either.
func longestStreak(rs []float64, class domain.PnlClass) int {
	longest, current := 0, 0
	for _, r := range rs {
		if domain.ClassifyPnl(r) == class {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

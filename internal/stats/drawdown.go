package stats

import (
	"math"
	"time"

	"tradinghub/internal/domain"
	"tradinghub/internal/returns"
)

// ddEpisode is one distinct drawdown: it starts when equity first drops below
// a prior peak and ends when that peak is recovered or the series ends.
type ddEpisode struct {
	start    time.Time // first point below the peak
	end      time.Time // recovery point or last point of the series
	maxDepth float64   // deepest fractional drawdown inside the episode
	points   int       // curve points spent below the peak
	open     bool      // true when the series ended before recovery
}

func (e ddEpisode) days() float64 {
	return e.end.Sub(e.start).Hours() / 24
}

// drawdownSeries derives the per-point fractional drawdown from the running
// peak, plus the distinct drawdown episodes.
func drawdownSeries(curve []returns.EquityPoint) ([]float64, []ddEpisode) {
	if len(curve) == 0 {
		return nil, nil
	}

	dds := make([]float64, len(curve))
	var episodes []ddEpisode
	var cur *ddEpisode

	peak := curve[0].Equity
	for i, pt := range curve {
		if pt.Equity > peak {
			peak = pt.Equity
		}
		dd := 0.0
		if peak > 0 {
			dd = (peak - pt.Equity) / peak
		}
		dds[i] = dd

		switch {
		case dd > 0 && cur == nil:
			episodes = append(episodes, ddEpisode{start: pt.Timestamp, end: pt.Timestamp, maxDepth: dd, points: 1, open: true})
			cur = &episodes[len(episodes)-1]
		case dd > 0:
			cur.end = pt.Timestamp
			cur.points++
			if dd > cur.maxDepth {
				cur.maxDepth = dd
			}
		case cur != nil: // recovered to the prior peak
			cur.end = pt.Timestamp
			cur.open = false
			cur = nil
		}
	}

	return dds, episodes
}

// fillDrawdownFamily sets the drawdown statistics and the drawdown-derived
// ratios (Calmar, recovery factor, conditional drawdown at risk).
func fillDrawdownFamily(rec *domain.StatsRecord, in *inputs) {
	if len(in.curve) == 0 {
		return
	}

	maxDD := 0.0
	var maxEpisode *ddEpisode
	for i := range in.episodes {
		if in.episodes[i].maxDepth > maxDD {
			maxDD = in.episodes[i].maxDepth
			maxEpisode = &in.episodes[i]
		}
	}

	rec.MaxDrawdown = ptr(maxDD * 100)
	if maxEpisode != nil {
		rec.MaxDrawdownDays = intPtr(int(math.Round(maxEpisode.days())))
	} else {
		rec.MaxDrawdownDays = intPtr(0)
	}

	if n := len(in.episodes); n > 0 {
		depths, durations := 0.0, 0.0
		longest := 0
		for _, e := range in.episodes {
			depths += e.maxDepth
			durations += e.days()
			if e.points > longest {
				longest = e.points
			}
		}
		rec.AvgDrawdown = ptr(depths / float64(n) * 100)
		rec.AvgDrawdownDays = ptr(durations / float64(n))
		rec.DrawdownDuration = intPtr(longest)
	} else {
		rec.AvgDrawdown = ptr(0)
		rec.AvgDrawdownDays = ptr(0)
		rec.DrawdownDuration = intPtr(0)
	}

	// Current drawdown: distance from the last running peak at the final
	// point, with the days spent in the still-open episode.
	last := in.drawdowns[len(in.drawdowns)-1]
	rec.CurrentDrawdown = ptr(last * 100)
	if n := len(in.episodes); n > 0 && in.episodes[n-1].open {
		rec.CurrentDrawdownDays = intPtr(int(math.Round(in.episodes[n-1].days())))
	} else {
		rec.CurrentDrawdownDays = intPtr(0)
	}

	// Conditional drawdown at risk: mean of the worst 5% drawdown points.
	sorted := sortedCopy(in.drawdowns)
	if cut, ok := percentile(sorted, 0.95); ok {
		var tail []float64
		for _, d := range sorted {
			if d >= cut {
				tail = append(tail, d)
			}
		}
		if m, ok := mean(tail); ok {
			rec.ConditionalDrawdownAtRisk = ptr(m * 100)
		}
	}

	if maxDD > 0 {
		if rec.CAGR != nil {
			rec.CalmarRatio = ptr(*rec.CAGR / (maxDD * 100))
		}
		rec.RecoveryFactor = ptr(in.totalReturn * 100 / (maxDD * 100))
	}
}

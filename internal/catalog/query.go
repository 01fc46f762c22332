// Package catalog filters, sorts and paginates strategy summaries for the
// listing page. It operates on plain summary slices and shares its sign
// classification with the stats engine through domain.ClassifyPnl.
package catalog

import (
	"sort"

	"tradinghub/internal/domain"
)

// Filter restricts the catalog. An empty or "all" field matches everything;
// provided fields combine conjunctively.
type Filter struct {
	Symbol      string
	Exchange    string
	TimeHorizon string
}

// SortOrder controls P&L ordering. OrderNone preserves input order.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
	OrderNone SortOrder = "none"
)

// Page selects one 1-based page of the result.
type Page struct {
	Size  int
	Index int
}

// Result is one catalog page plus the totals pagination needs.
type Result struct {
	Items      []domain.StrategySummary `json:"items"`
	TotalCount int                      `json:"total_count"`
	TotalPages int                      `json:"total_pages"`
}

// Summary statistics over a filtered catalog.
type Counts struct {
	Total      int      `json:"total"`
	Profitable int      `json:"profitable"`
	Losing     int      `json:"losing"`
	AveragePnl *float64 `json:"average_pnl"`
}

// Query filters, sorts and paginates summaries. The sort is stable: equal or
// null P&L keeps input order. An out-of-range page index yields empty items
// with correct totals; it is not an error.
func Query(summaries []domain.StrategySummary, f Filter, order SortOrder, p Page) Result {
	filtered := Apply(summaries, f)

	if order == OrderAsc || order == OrderDesc {
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := filtered[i].Pnl, filtered[j].Pnl
			// Null P&L sorts after all valued entries either direction.
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			case order == OrderAsc:
				return *a < *b
			default:
				return *b < *a
			}
		})
	}

	total := len(filtered)
	size := p.Size
	if size <= 0 {
		size = total
	}

	totalPages := 0
	if total > 0 && size > 0 {
		totalPages = (total + size - 1) / size
	}

	res := Result{Items: []domain.StrategySummary{}, TotalCount: total, TotalPages: totalPages}
	if p.Index < 1 || p.Index > totalPages {
		return res
	}

	start := (p.Index - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	res.Items = filtered[start:end]
	return res
}

// Apply returns the summaries matching the filter, in input order.
// The result is a fresh slice; the input is never reordered.
func Apply(summaries []domain.StrategySummary, f Filter) []domain.StrategySummary {
	out := make([]domain.StrategySummary, 0, len(summaries))
	for _, s := range summaries {
		if matches(f.Symbol, s.Symbol) && matches(f.Exchange, s.Exchange) && matches(f.TimeHorizon, s.TimeHorizon) {
			out = append(out, s)
		}
	}
	return out
}

// Count classifies a filtered catalog with the shared P&L predicate, so the
// listing's profitable/losing badges agree with per-strategy win rates.
func Count(summaries []domain.StrategySummary) Counts {
	c := Counts{Total: len(summaries)}
	pnlSum, pnlN := 0.0, 0
	for _, s := range summaries {
		switch domain.ClassifyPnlPtr(s.Pnl) {
		case domain.PnlProfitable:
			c.Profitable++
		case domain.PnlLosing:
			c.Losing++
		}
		if s.Pnl != nil {
			pnlSum += *s.Pnl
			pnlN++
		}
	}
	if pnlN > 0 {
		avg := pnlSum / float64(pnlN)
		c.AveragePnl = &avg
	}
	return c
}

// GroupBySymbol buckets summaries by symbol for the assignment picker, which
// allows at most one strategy per symbol per user.
func GroupBySymbol(summaries []domain.StrategySummary) map[string][]domain.StrategySummary {
	out := make(map[string][]domain.StrategySummary)
	for _, s := range summaries {
		out[s.Symbol] = append(out[s.Symbol], s)
	}
	return out
}

func matches(filter, value string) bool {
	return filter == "" || filter == "all" || filter == value
}

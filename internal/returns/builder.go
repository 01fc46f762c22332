// Package returns derives the equity curve and calendar-bucketed return
// series every downstream statistic consumes. All functions are pure; the
// input ledger is read-only.
package returns

import (
	"time"

	"tradinghub/internal/domain"
	"tradinghub/internal/ledger"
)

// DefaultInitialBalance is the equity denominator used when the caller
// supplies none, matching the backtester's 1000-unit starting account.
const DefaultInitialBalance = 1000.0

// Period selects the calendar bucketing of the return series.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Valid reports whether p is one of the known bucketings.
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// PeriodsPerYear is the annualization factor for a period.
func (p Period) PeriodsPerYear() float64 {
	switch p {
	case PeriodWeek:
		return 52
	case PeriodMonth:
		return 12
	default:
		return 365
	}
}

// EquityPoint is one point of the running account value.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Equity    float64   `json:"equity"`
}

// Bucket is one calendar bucket of the return series. Return is the
// fractional compounded return over the bucket: equity at bucket end over
// equity entering the bucket, minus one.
type Bucket struct {
	Start  time.Time `json:"period_start"`
	Return float64   `json:"period_return"`
}

// Series is the derived return series of one ledger: the full equity curve
// plus one bucket set for the requested period. Computed fresh per call,
// never persisted by this package.
type Series struct {
	Period         Period
	InitialBalance float64
	Curve          []EquityPoint
	Buckets        []Bucket
}

// Build validates the ledger and derives its equity curve and bucketed
// returns. initialBalance <= 0 selects DefaultInitialBalance. An empty
// ledger yields an empty series, not an error.
func Build(l domain.Ledger, p Period, initialBalance float64) (*Series, error) {
	curve, initial, err := EquityCurve(l, initialBalance)
	if err != nil {
		return nil, err
	}
	return &Series{
		Period:         p,
		InitialBalance: initial,
		Curve:          curve,
		Buckets:        BucketReturns(curve, p, initial),
	}, nil
}

// EquityCurve derives one equity point per ledger event. The event's
// recorded balance is authoritative when present; rows without a balance
// fall back to initialBalance + PnlSum. The returned initial balance is the
// resolved denominator for total-return arithmetic.
func EquityCurve(l domain.Ledger, initialBalance float64) ([]EquityPoint, float64, error) {
	if err := ledger.Validate(l); err != nil {
		return nil, 0, err
	}
	if initialBalance <= 0 {
		initialBalance = DefaultInitialBalance
	}
	if len(l) == 0 {
		return nil, initialBalance, nil
	}

	curve := make([]EquityPoint, len(l))
	for i, ev := range l {
		equity := ev.Balance
		if equity == 0 {
			equity = initialBalance + ev.PnlSum
		}
		curve[i] = EquityPoint{Timestamp: ev.Timestamp, Equity: equity}
	}
	return curve, initialBalance, nil
}

// BucketReturns groups an equity curve into non-overlapping calendar buckets
// and compounds each bucket's return against the equity entering it. The
// product of (1+r) over all buckets therefore reproduces finalEquity/initial.
func BucketReturns(curve []EquityPoint, p Period, initial float64) []Bucket {
	if len(curve) == 0 {
		return nil
	}

	var buckets []Bucket
	entering := initial
	start := bucketStart(curve[0].Timestamp, p)
	last := curve[0].Equity

	for _, pt := range curve[1:] {
		s := bucketStart(pt.Timestamp, p)
		if !s.Equal(start) {
			buckets = append(buckets, Bucket{Start: start, Return: last/entering - 1})
			entering = last
			start = s
		}
		last = pt.Equity
	}
	buckets = append(buckets, Bucket{Start: start, Return: last/entering - 1})

	return buckets
}

// Returns extracts the fractional bucket returns in order.
func (s *Series) Returns() []float64 {
	out := make([]float64, len(s.Buckets))
	for i, b := range s.Buckets {
		out[i] = b.Return
	}
	return out
}

// FinalEquity returns the last curve point's equity, or the initial balance
// for an empty curve.
func (s *Series) FinalEquity() float64 {
	if len(s.Curve) == 0 {
		return s.InitialBalance
	}
	return s.Curve[len(s.Curve)-1].Equity
}

// bucketStart truncates a timestamp to its calendar bucket in UTC.
// Weeks start on Monday.
func bucketStart(t time.Time, p Period) time.Time {
	t = t.UTC()
	switch p {
	case PeriodWeek:
		day := t.Truncate(24 * time.Hour)
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case PeriodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

package stats

import (
	"math"
	"sort"
)

// ptr boxes a value for the record's nullable fields.
func ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s
}

func mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	return sum(xs) / float64(len(xs)), true
}

// sampleStddev is the unbiased (n-1) standard deviation.
// Undefined below 2 samples.
func sampleStddev(xs []float64) (float64, bool) {
	n := len(xs)
	if n < 2 {
		return 0, false
	}
	m, _ := mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1)), true
}

// percentile uses linear interpolation over an ascending-sorted slice.
// p is the fraction (0.05 = 5th percentile).
func percentile(sorted []float64, p float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	if n == 1 {
		return sorted[0], true
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1], true
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower]), true
}

func sortedCopy(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	sort.Float64s(out)
	return out
}

// positives / negatives split a series by strict sign. Zeros land in neither,
// the same rule domain.ClassifyPnl applies to trades.
func positives(xs []float64) []float64 {
	var out []float64
	for _, x := range xs {
		if x > 0 {
			out = append(out, x)
		}
	}
	return out
}

func negatives(xs []float64) []float64 {
	var out []float64
	for _, x := range xs {
		if x < 0 {
			out = append(out, x)
		}
	}
	return out
}

// geometricMeanReturn averages fractional bucket returns multiplicatively:
// (Π(1+r))^(1/n) − 1. Undefined on an empty set or when a bucket loses the
// whole account.
func geometricMeanReturn(rs []float64) (float64, bool) {
	if len(rs) == 0 {
		return 0, false
	}
	prod := 1.0
	for _, r := range rs {
		g := 1 + r
		if g <= 0 {
			return 0, false
		}
		prod *= g
	}
	return math.Pow(prod, 1/float64(len(rs))) - 1, true
}

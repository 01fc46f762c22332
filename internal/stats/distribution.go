package stats

import (
	"tradinghub/internal/domain"
)

// fillDistributionFamily sets skewness and excess kurtosis of the primary
// bucket return distribution, using the standard unbiased estimators.
func fillDistributionFamily(rec *domain.StatsRecord, in *inputs) {
	rec.Skewness = skewness(in.primary)
	rec.Kurtosis = kurtosis(in.primary)
}

// skewness: adjusted Fisher-Pearson, n/((n-1)(n-2)) · Σ((x−x̄)/s)³.
// Undefined below 3 samples or with zero variance.
func skewness(xs []float64) *float64 {
	n := float64(len(xs))
	if n < 3 {
		return nil
	}
	m, _ := mean(xs)
	s, ok := sampleStddev(xs)
	if !ok || s == 0 {
		return nil
	}
	sumCubed := 0.0
	for _, x := range xs {
		z := (x - m) / s
		sumCubed += z * z * z
	}
	return ptr(n / ((n - 1) * (n - 2)) * sumCubed)
}

// kurtosis: unbiased excess kurtosis,
// n(n+1)/((n-1)(n-2)(n-3)) · Σz⁴ − 3(n-1)²/((n-2)(n-3)).
// Undefined below 4 samples or with zero variance.
func kurtosis(xs []float64) *float64 {
	n := float64(len(xs))
	if n < 4 {
		return nil
	}
	m, _ := mean(xs)
	s, ok := sampleStddev(xs)
	if !ok || s == 0 {
		return nil
	}
	sumQuart := 0.0
	for _, x := range xs {
		z := (x - m) / s
		sumQuart += z * z * z * z
	}
	k := n * (n + 1) / ((n - 1) * (n - 2) * (n - 3)) * sumQuart
	k -= 3 * (n - 1) * (n - 1) / ((n - 2) * (n - 3))
	return ptr(k)
}

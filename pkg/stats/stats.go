// Package stats holds the small numeric kernels behind the rankings:
// the FIB index (an h-index over retweet counts) and the percentile
// cutoff used to flag superspreaders.
package stats

import (
	"math"
	"sort"
)

// FibIndex computes the h-index of a list of retweet counts: the largest
// k such that the user has k posts each retweeted at least k times.
// Returns 0 when the criterion is never met. The input slice is sorted
// in place.
func FibIndex(rtCounts []int) int {
	sort.Ints(rtCounts)

	for position := len(rtCounts); position >= 1; position-- {
		if rtCounts[len(rtCounts)-position] >= position {
			return position
		}
	}

	return 0
}

// Percentile returns the value at percentile p (0 < p <= 100) using
// midpoint interpolation: when the rank falls between two order
// statistics, their mean is returned.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower < 0 {
		lower = 0
	}
	if upper > len(sorted)-1 {
		upper = len(sorted) - 1
	}

	if lower == upper {
		return sorted[lower]
	}
	return (sorted[lower] + sorted[upper]) / 2
}

// ProportionRemaining is the share of totalRTs left after removing
// removedRTs, clamped at 0 for rounding noise.
func ProportionRemaining(totalRTs int64, removedRTs int64) float64 {
	if totalRTs == 0 {
		return 0
	}

	prop := float64(totalRTs-removedRTs) / float64(totalRTs)
	if prop < 0 {
		return 0
	}
	return prop
}

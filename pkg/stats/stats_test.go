package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFibIndex(t *testing.T) {
	tests := []struct {
		name     string
		rtCounts []int
		expected int
	}{
		{name: "no posts", rtCounts: []int{}, expected: 0},
		{name: "single post never retweeted", rtCounts: []int{0}, expected: 0},
		{name: "single post retweeted once", rtCounts: []int{1}, expected: 1},
		{name: "classic h-index shape", rtCounts: []int{10, 8, 5, 4, 3}, expected: 4},
		{name: "all posts below own rank", rtCounts: []int{1, 1, 1, 1}, expected: 1},
		{name: "uniform large counts capped by post count", rtCounts: []int{100, 100, 100}, expected: 3},
		{name: "unsorted input", rtCounts: []int{3, 10, 4, 8, 5}, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FibIndex(tt.rtCounts))
		})
	}
}

func TestPercentile(t *testing.T) {
	t.Run("empty input yields NaN", func(t *testing.T) {
		require.True(t, math.IsNaN(Percentile(nil, 99)))
	})

	t.Run("single value", func(t *testing.T) {
		require.InDelta(t, 7.0, Percentile([]float64{7}, 99), 1e-9)
	})

	t.Run("exact order statistic", func(t *testing.T) {
		values := []float64{1, 2, 3, 4, 5}
		require.InDelta(t, 3.0, Percentile(values, 50), 1e-9)
	})

	t.Run("midpoint between neighbours", func(t *testing.T) {
		values := []float64{1, 2, 3, 4}
		// rank = 0.5*3 = 1.5, mean of 2 and 3
		require.InDelta(t, 2.5, Percentile(values, 50), 1e-9)
	})

	t.Run("99th percentile of a hundred values", func(t *testing.T) {
		values := make([]float64, 100)
		for i := range values {
			values[i] = float64(i + 1)
		}
		// rank = 0.99*99 = 98.01, mean of 99 and 100
		require.InDelta(t, 99.5, Percentile(values, 99), 1e-9)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		values := []float64{3, 1, 2}
		Percentile(values, 50)
		require.Equal(t, []float64{3, 1, 2}, values)
	})
}

func TestProportionRemaining(t *testing.T) {
	require.InDelta(t, 1.0, ProportionRemaining(100, 0), 1e-9)
	require.InDelta(t, 0.75, ProportionRemaining(100, 25), 1e-9)
	require.InDelta(t, 0.0, ProportionRemaining(100, 100), 1e-9)
	require.InDelta(t, 0.0, ProportionRemaining(100, 150), 1e-9)
	require.InDelta(t, 0.0, ProportionRemaining(0, 0), 1e-9)
}

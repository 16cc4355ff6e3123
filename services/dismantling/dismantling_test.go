package dismantling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDismantle(t *testing.T) {
	rtCounts := map[string][]int{
		"userA": {10},
		"userB": {5, 5},
	}

	steps := Dismantle(StrategyFib, []string{"userA", "userB"}, 20, rtCounts)

	require.Len(t, steps, 3)

	require.Equal(t, 0, steps[0].Removed)
	require.InDelta(t, 1.0, steps[0].ProportionRemaining, 1e-9)

	require.Equal(t, 1, steps[1].Removed)
	require.Equal(t, "userA", steps[1].UserID)
	require.InDelta(t, 0.5, steps[1].ProportionRemaining, 1e-9)

	require.Equal(t, 2, steps[2].Removed)
	require.Equal(t, "userB", steps[2].UserID)
	require.InDelta(t, 0.0, steps[2].ProportionRemaining, 1e-9)

	for _, step := range steps {
		require.Equal(t, StrategyFib, step.Strategy)
	}
}

func TestDismantleUsersWithoutFutureActivityChangeNothing(t *testing.T) {
	rtCounts := map[string][]int{"userA": {8}}

	steps := Dismantle(StrategyPopular, []string{"silent", "userA"}, 8, rtCounts)

	require.Len(t, steps, 3)
	require.InDelta(t, 1.0, steps[1].ProportionRemaining, 1e-9, "removing an inactive user keeps everything")
	require.InDelta(t, 0.0, steps[2].ProportionRemaining, 1e-9)
}

func TestDismantleGoldStandard(t *testing.T) {
	rtCounts := map[string][]int{
		"userA": {4},
		"userB": {12},
	}

	steps := DismantleGoldStandard([]string{"userA", "userB", "userC"}, 16, rtCounts)

	require.Len(t, steps, 3)

	require.Equal(t, "userB", steps[0].UserID)
	require.InDelta(t, 0.75, steps[0].ProportionRemovedOwn, 1e-9)
	require.Equal(t, 1, steps[0].Removed)

	require.Equal(t, "userA", steps[1].UserID)
	require.InDelta(t, 0.25, steps[1].ProportionRemovedOwn, 1e-9)
	require.Equal(t, 2, steps[1].Removed)

	// userC never appears in the future window, implicit score of zero.
	require.Equal(t, "userC", steps[2].UserID)
	require.InDelta(t, 0.0, steps[2].ProportionRemovedOwn, 1e-9)
	require.Equal(t, 3, steps[2].Removed)

	for _, step := range steps {
		require.Equal(t, StrategyGoldStandard, step.Strategy)
	}
}

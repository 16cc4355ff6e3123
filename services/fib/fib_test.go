package fib

import (
	"testing"

	"superspreader-analytics/models/entities"

	"github.com/stretchr/testify/require"
)

func TestComputeRanking(t *testing.T) {
	tweets := []entities.Tweet{
		// userA: three originals retweeted 5, 4 and 3 times, FIB index 3.
		{ID: "a1", UserID: "userA", RetweetCount: 5},
		{ID: "a2", UserID: "userA", RetweetCount: 4},
		{ID: "a3", UserID: "userA", RetweetCount: 3},
		// userC: two originals retweeted twice each, FIB index 2.
		{ID: "c1", UserID: "userC", RetweetCount: 2},
		{ID: "c2", UserID: "userC", RetweetCount: 2},
		// userB: a single original retweeted once, FIB index 1.
		{ID: "b1", UserID: "userB", RetweetCount: 1},
	}

	ranking := ComputeRanking(tweets, 99, "2026-08-27")

	require.Len(t, ranking, 3)

	require.Equal(t, "userA", ranking[0].UserID)
	require.Equal(t, 3, ranking[0].Score)
	require.Equal(t, 1, ranking[0].Rank)

	require.Equal(t, "userC", ranking[1].UserID)
	require.Equal(t, 2, ranking[1].Score)
	require.Equal(t, 2, ranking[1].Rank)

	require.Equal(t, "userB", ranking[2].UserID)
	require.Equal(t, 1, ranking[2].Score)
	require.Equal(t, 3, ranking[2].Rank)

	// 99th percentile of {1, 2, 3} is 2.5 under midpoint
	// interpolation, only userA clears it.
	require.True(t, ranking[0].Superspreader)
	require.False(t, ranking[1].Superspreader)
	require.False(t, ranking[2].Superspreader)

	for _, score := range ranking {
		require.Equal(t, "2026-08-27", score.RunDay)
	}
}

func TestComputeRankingCountsRetweetsForTheOriginalPoster(t *testing.T) {
	tweets := []entities.Tweet{
		{ID: "rt1", UserID: "amplifier", IsRetweet: true, RetweetedStatusID: "orig", RetweetedUserID: "author", RetweetedRetweetCount: 4},
		{ID: "rt2", UserID: "amplifier2", IsRetweet: true, RetweetedStatusID: "orig", RetweetedUserID: "author", RetweetedRetweetCount: 7},
	}

	ranking := ComputeRanking(tweets, 99, "2026-08-27")

	require.Len(t, ranking, 1)
	require.Equal(t, "author", ranking[0].UserID)
	require.Equal(t, 1, ranking[0].Score)
}

func TestComputeRankingBreaksTiesByUserID(t *testing.T) {
	tweets := []entities.Tweet{
		{ID: "x1", UserID: "zed", RetweetCount: 1},
		{ID: "y1", UserID: "abe", RetweetCount: 1},
	}

	ranking := ComputeRanking(tweets, 99, "2026-08-27")

	require.Len(t, ranking, 2)
	require.Equal(t, "abe", ranking[0].UserID)
	require.Equal(t, "zed", ranking[1].UserID)
}

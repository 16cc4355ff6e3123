package baselines

import (
	"testing"

	"superspreader-analytics/models/entities"
	baselinesRepo "superspreader-analytics/repositories/baselines"

	"github.com/stretchr/testify/require"
)

func TestComputeInfluential(t *testing.T) {
	tweets := []entities.Tweet{
		{ID: "a1", UserID: "userA", RetweetCount: 5},
		{ID: "a2", UserID: "userA", RetweetCount: 3},
		{ID: "b1", UserID: "userB", RetweetCount: 10},
		// Duplicate observation of b1 with a smaller count, must not add up.
		{ID: "rt", UserID: "other", IsRetweet: true, RetweetedStatusID: "b1", RetweetedUserID: "userB", RetweetedRetweetCount: 6},
	}

	scores := ComputeInfluential(tweets)

	require.Len(t, scores, 2)
	require.Equal(t, "userB", scores[0].UserID)
	require.InDelta(t, 10.0, scores[0].Value, 1e-9)
	require.Equal(t, 1, scores[0].Rank)

	require.Equal(t, "userA", scores[1].UserID)
	require.InDelta(t, 8.0, scores[1].Value, 1e-9)
	require.Equal(t, 2, scores[1].Rank)

	require.Equal(t, baselinesRepo.KindInfluential, scores[0].Kind)
}

func TestComputePopularAveragesFollowerObservations(t *testing.T) {
	tweets := []entities.Tweet{
		{ID: "a1", UserID: "userA", RetweetCount: 1, FollowersCount: 100},
		{ID: "a2", UserID: "userA", RetweetCount: 1, FollowersCount: 300},
	}

	scores := ComputePopular(tweets, nil)

	require.Len(t, scores, 1)
	require.Equal(t, "userA", scores[0].UserID)
	require.InDelta(t, 200.0, scores[0].Value, 1e-9)
	require.Equal(t, baselinesRepo.KindPopular, scores[0].Kind)
}

func TestComputePopularFallsBackToAccountLookup(t *testing.T) {
	// userGhost is only ever seen through retweets of their posts, so no
	// follower observation exists in the tweet rows.
	tweets := []entities.Tweet{
		{ID: "rt", UserID: "amplifier", IsRetweet: true, RetweetedStatusID: "g1", RetweetedUserID: "userGhost", RetweetedRetweetCount: 4, FollowersCount: 50},
	}

	var asked []string
	lookup := func(userIDs []string) map[string]int {
		asked = userIDs
		return map[string]int{"userGhost": 4000}
	}

	scores := ComputePopular(tweets, lookup)

	require.Equal(t, []string{"userGhost"}, asked)
	require.Len(t, scores, 1)
	require.Equal(t, "userGhost", scores[0].UserID)
	require.InDelta(t, 4000.0, scores[0].Value, 1e-9)
}

func TestComputePopularLeavesUnknownUsersAtZero(t *testing.T) {
	tweets := []entities.Tweet{
		{ID: "rt", UserID: "amplifier", IsRetweet: true, RetweetedStatusID: "g1", RetweetedUserID: "userGhost", RetweetedRetweetCount: 4},
	}

	scores := ComputePopular(tweets, func([]string) map[string]int { return nil })

	require.Len(t, scores, 1)
	require.InDelta(t, 0.0, scores[0].Value, 1e-9)
}

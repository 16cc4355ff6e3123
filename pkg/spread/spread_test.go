package spread

import (
	"sort"
	"testing"

	"superspreader-analytics/models/entities"

	"github.com/stretchr/testify/require"
)

func TestUserRetweetCountsAttributesRetweetsToOriginalPoster(t *testing.T) {
	tweets := []entities.Tweet{
		{ID: "rt1", UserID: "follower1", IsRetweet: true, RetweetedStatusID: "orig1", RetweetedUserID: "author", RetweetedRetweetCount: 12},
		{ID: "rt2", UserID: "follower2", IsRetweet: true, RetweetedStatusID: "orig1", RetweetedUserID: "author", RetweetedRetweetCount: 30},
	}

	counts := UserRetweetCounts(tweets)

	require.Len(t, counts, 1)
	require.Equal(t, []int{30}, counts["author"], "same status observed twice, only the largest count survives")
	require.NotContains(t, counts, "follower1")
}

func TestUserRetweetCountsKeepsDistinctPostsApart(t *testing.T) {
	tweets := []entities.Tweet{
		{ID: "a", UserID: "author", RetweetCount: 5},
		{ID: "b", UserID: "author", RetweetCount: 2},
		{ID: "rt", UserID: "other", IsRetweet: true, RetweetedStatusID: "c", RetweetedUserID: "author", RetweetedRetweetCount: 9},
	}

	counts := UserRetweetCounts(tweets)

	got := counts["author"]
	sort.Ints(got)
	require.Equal(t, []int{2, 5, 9}, got)
}

func TestUserRetweetCountsDropsSilentOriginals(t *testing.T) {
	tweets := []entities.Tweet{
		{ID: "quiet", UserID: "author", RetweetCount: 0},
		{ID: "broken", UserID: "someone", IsRetweet: true, RetweetedStatusID: "x", RetweetedUserID: ""},
	}

	require.Empty(t, UserRetweetCounts(tweets))
}

func TestUserRetweetCountsPrefersLaterLargerObservation(t *testing.T) {
	tweets := []entities.Tweet{
		{ID: "a", UserID: "author", RetweetCount: 3},
		{ID: "rt", UserID: "other", IsRetweet: true, RetweetedStatusID: "a", RetweetedUserID: "author", RetweetedRetweetCount: 7},
	}

	counts := UserRetweetCounts(tweets)
	require.Equal(t, []int{7}, counts["author"])
}

func TestTotalRetweets(t *testing.T) {
	counts := map[string][]int{
		"a": {1, 2, 3},
		"b": {10},
	}
	require.Equal(t, int64(16), TotalRetweets(counts))
	require.Equal(t, int64(0), TotalRetweets(nil))
}

func TestSumFor(t *testing.T) {
	counts := map[string][]int{
		"a": {1, 2},
		"b": {10},
	}
	require.Equal(t, int64(3), SumFor([]string{"a"}, counts))
	require.Equal(t, int64(13), SumFor([]string{"a", "b"}, counts))
	require.Equal(t, int64(0), SumFor([]string{"missing"}, counts))
}

package tweets

import (
	"testing"

	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"

	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Impl {
	t.Helper()

	db := databases.NewWithDSN(":memory:")
	require.NoError(t, db.Run())
	require.NoError(t, db.GetDB().AutoMigrate(&entities.Tweet{}, &entities.TweetError{}))
	t.Cleanup(db.Shutdown)

	return New(db)
}

func TestSaveOrUpdateKeepsLargestRetweetCount(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "1", UserID: "u", RetweetCount: 10}))
	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "1", UserID: "u", RetweetCount: 4}))

	tweets, err := repo.FetchAll()
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	require.Equal(t, 10, tweets[0].RetweetCount, "a stale observation must not shrink the count")

	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "1", UserID: "u", RetweetCount: 25}))
	tweets, err = repo.FetchAll()
	require.NoError(t, err)
	require.Equal(t, 25, tweets[0].RetweetCount)
}

func TestExistingIDsCoversTweetsAndErrors(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "1", UserID: "u"}))
	require.NoError(t, repo.SaveError(entities.TweetError{TweetID: "2", Title: "Not Found Error"}))

	existing, err := repo.ExistingIDs()
	require.NoError(t, err)
	require.Contains(t, existing, "1")
	require.Contains(t, existing, "2", "failed lookups must not be requested again")
	require.NotContains(t, existing, "3")
}

func TestFetchBetweenTimestamps(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "before", UserID: "u", Timestamp: 99}))
	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "start", UserID: "u", Timestamp: 100}))
	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "inside", UserID: "u", Timestamp: 150}))
	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "end", UserID: "u", Timestamp: 200}))

	tweets, err := repo.FetchBetweenTimestamps(100, 200)
	require.NoError(t, err)

	ids := make([]string, 0, len(tweets))
	for _, tweet := range tweets {
		ids = append(ids, tweet.ID)
	}
	require.ElementsMatch(t, []string{"start", "inside"}, ids, "start is inclusive, end is exclusive")
}

func TestDistinctUserIDs(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "1", UserID: "a"}))
	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "2", UserID: "a"}))
	require.NoError(t, repo.SaveOrUpdate(entities.Tweet{ID: "3", UserID: "b"}))

	userIDs, err := repo.DistinctUserIDs()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, userIDs)
}

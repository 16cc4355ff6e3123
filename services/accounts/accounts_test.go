package accounts

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"superspreader-analytics/models/entities"

	"github.com/stretchr/testify/require"
)

type mockTweets struct {
	userIDs []string
}

func (m *mockTweets) SaveOrUpdate(entities.Tweet) error   { return nil }
func (m *mockTweets) SaveError(entities.TweetError) error { return nil }
func (m *mockTweets) FetchAll() ([]entities.Tweet, error) { return nil, nil }
func (m *mockTweets) FetchBetweenTimestamps(int64, int64) ([]entities.Tweet, error) {
	return nil, nil
}
func (m *mockTweets) ExistingIDs() (map[string]struct{}, error) { return nil, nil }
func (m *mockTweets) DistinctUserIDs() ([]string, error)        { return m.userIDs, nil }
func (m *mockTweets) Count() int64                              { return 0 }

type mockAccounts struct {
	saved  []entities.Account
	errors []entities.AccountError
}

func (m *mockAccounts) SaveOrUpdate(account entities.Account) error {
	m.saved = append(m.saved, account)
	return nil
}

func (m *mockAccounts) SaveError(accountError entities.AccountError) error {
	m.errors = append(m.errors, accountError)
	return nil
}

func (m *mockAccounts) FetchByUserIDs([]string) ([]entities.Account, error) {
	return m.saved, nil
}

func (m *mockAccounts) Count() int64 { return int64(len(m.saved)) }

const userLookupBody = `{
	"data": [
		{
			"id": "42",
			"username": "author42",
			"name": "Author FortyTwo",
			"created_at": "2012-05-01T10:00:00.000Z",
			"protected": false,
			"verified": true,
			"public_metrics": {"followers_count": 1200, "following_count": 300, "tweet_count": 9000}
		}
	],
	"errors": [
		{"title": "Not Found Error", "detail": "Could not find user with ids: [99].", "value": "99", "resource_id": "99"}
	]
}`

func TestCollectOncePersistsAccountsAndErrors(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write([]byte(userLookupBody))
	}))
	defer server.Close()

	accountsRepo := &mockAccounts{}
	service := &Impl{
		baseURL:     server.URL,
		bearerToken: "test-token",
		client:      server.Client(),
		accounts:    accountsRepo,
		tweets:      &mockTweets{userIDs: []string{"42", "99"}},
	}

	service.CollectOnce()

	require.Equal(t, "Bearer test-token", authHeader)

	require.Len(t, accountsRepo.saved, 1)
	account := accountsRepo.saved[0]
	require.Equal(t, "42", account.UserID)
	require.Equal(t, "author42", account.ScreenName)
	require.Equal(t, "Author FortyTwo", account.Name)
	require.Equal(t, 1200, account.FollowersCount)
	require.Equal(t, 300, account.FollowingCount)
	require.Equal(t, 9000, account.TweetCount)
	require.True(t, account.Verified)
	require.False(t, account.Protected)
	require.NotEmpty(t, account.CollectedAt)

	require.Len(t, accountsRepo.errors, 1)
	require.Equal(t, "99", accountsRepo.errors[0].UserID)
	require.Equal(t, "Not Found Error", accountsRepo.errors[0].Title)
}

func TestCollectOnceChunksLookups(t *testing.T) {
	var chunkSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chunkSizes = append(chunkSizes, len(strings.Split(r.URL.Query().Get("ids"), ",")))
		w.Write([]byte(`{"data":[],"errors":[]}`))
	}))
	defer server.Close()

	userIDs := make([]string, 150)
	for i := range userIDs {
		userIDs[i] = strconv.Itoa(i)
	}

	service := &Impl{
		baseURL:     server.URL,
		bearerToken: "t",
		client:      server.Client(),
		accounts:    &mockAccounts{},
		tweets:      &mockTweets{userIDs: userIDs},
	}

	service.CollectOnce()

	require.Equal(t, []int{100, 50}, chunkSizes)
}

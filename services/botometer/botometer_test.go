package botometer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/dates"

	"github.com/stretchr/testify/require"
)

type mockTweets struct {
	tweets []entities.Tweet
}

func (m *mockTweets) SaveOrUpdate(entities.Tweet) error   { return nil }
func (m *mockTweets) SaveError(entities.TweetError) error { return nil }
func (m *mockTweets) FetchAll() ([]entities.Tweet, error) { return m.tweets, nil }
func (m *mockTweets) FetchBetweenTimestamps(int64, int64) ([]entities.Tweet, error) {
	return m.tweets, nil
}
func (m *mockTweets) ExistingIDs() (map[string]struct{}, error) { return nil, nil }
func (m *mockTweets) DistinctUserIDs() ([]string, error)        { return nil, nil }
func (m *mockTweets) Count() int64                              { return int64(len(m.tweets)) }

type mockBotscores struct {
	saved  []entities.BotScore
	scored map[string]struct{}
}

func (m *mockBotscores) Save(score entities.BotScore) error {
	m.saved = append(m.saved, score)
	return nil
}

func (m *mockBotscores) FetchAll() ([]entities.BotScore, error) { return m.saved, nil }

func (m *mockBotscores) ScoredIDs() (map[string]struct{}, error) {
	if m.scored == nil {
		return map[string]struct{}{}, nil
	}
	return m.scored, nil
}

func (m *mockBotscores) Count() int64 { return int64(len(m.saved)) }

func TestScoreOnceSendsV1PayloadAndSavesScores(t *testing.T) {
	var apiKey string
	var payload []liteTweet
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("X-RapidAPI-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`[{"tweet_id":"t1","user_id":"u1","botscore":0.8}]`))
	}))
	defer server.Close()

	tweets := &mockTweets{tweets: []entities.Tweet{{
		ID:             "t1",
		UserID:         "u1",
		ScreenName:     "someone",
		Text:           "some text",
		Timestamp:      time.Date(2020, time.February, 10, 15, 4, 5, 0, time.UTC).Unix(),
		FollowersCount: 77,
	}}}
	botscores := &mockBotscores{}
	service := &Impl{
		baseURL:   server.URL,
		apiKey:    "rapid-key",
		client:    server.Client(),
		tweets:    tweets,
		botscores: botscores,
	}

	service.ScoreOnce()

	require.Equal(t, "rapid-key", apiKey)

	require.Len(t, payload, 1)
	require.Equal(t, "t1", payload[0].IDStr)
	require.Equal(t, "some text", payload[0].Text)
	require.Equal(t, "u1", payload[0].User.IDStr)
	require.Equal(t, "someone", payload[0].User.ScreenName)
	require.Equal(t, 77, payload[0].User.FollowersCount)

	created, err := time.Parse(dates.TwitterV1Format, payload[0].CreatedAt)
	require.NoError(t, err)
	require.Equal(t, 2020, created.Year())

	require.Len(t, botscores.saved, 1)
	require.Equal(t, "t1", botscores.saved[0].TweetID)
	require.Equal(t, "u1", botscores.saved[0].UserID)
	require.InDelta(t, 0.8, botscores.saved[0].Score, 1e-9)
	require.NotZero(t, botscores.saved[0].ProbeTimestamp)
}

func TestScoreOnceSkipsAlreadyScoredTweets(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	tweets := &mockTweets{tweets: []entities.Tweet{{ID: "done", UserID: "u"}}}
	botscores := &mockBotscores{scored: map[string]struct{}{"done": {}}}
	service := &Impl{
		baseURL:   server.URL,
		apiKey:    "rapid-key",
		client:    server.Client(),
		tweets:    tweets,
		botscores: botscores,
	}

	service.ScoreOnce()

	require.Zero(t, calls)
	require.Empty(t, botscores.saved)
}

func TestScoreOnceWithoutAPIKeyDoesNothing(t *testing.T) {
	tweets := &mockTweets{tweets: []entities.Tweet{{ID: "t1", UserID: "u"}}}
	botscores := &mockBotscores{}
	service := &Impl{tweets: tweets, botscores: botscores}

	service.ScoreOnce()

	require.Empty(t, botscores.saved)
}

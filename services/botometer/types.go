package botometer

import (
	"net/http"
	"time"

	botscoresRepo "superspreader-analytics/repositories/botscores"
	tweetsRepo "superspreader-analytics/repositories/tweets"
)

const (
	clientHTTPTimeout = 30 * time.Second
	delayBetweenCall  = 2 * time.Second
	checkChunkSize    = 100
)

type Service interface {
	ScoreOnce()
}

type Impl struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	tweets    tweetsRepo.Repository
	botscores botscoresRepo.Repository
}

// BotometerLite bulk check payload: a list of V1-style tweet objects.
type liteTweet struct {
	IDStr     string   `json:"id_str"`
	Text      string   `json:"text"`
	CreatedAt string   `json:"created_at"`
	User      liteUser `json:"user"`
}

type liteUser struct {
	IDStr          string `json:"id_str"`
	ScreenName     string `json:"screen_name"`
	FollowersCount int    `json:"followers_count"`
}

type liteScore struct {
	TweetID  string  `json:"tweet_id"`
	UserID   string  `json:"user_id"`
	BotScore float64 `json:"botscore"`
}

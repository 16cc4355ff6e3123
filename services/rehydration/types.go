package rehydration

import (
	"net/http"
	"time"

	tweetsRepo "superspreader-analytics/repositories/tweets"
)

const (
	lookupChunkSize   = 100
	delayBetweenCall  = 1 * time.Second
	clientHTTPTimeout = 15 * time.Second
	maxChunkRetries   = 5
	tweetFields       = "id,text,created_at,author_id,public_metrics,referenced_tweets"
	userFields        = "id,username,public_metrics"
)

type Service interface {
	CollectOnce()
}

type Impl struct {
	baseURL     string
	bearerToken string
	tweetIDsDir string
	client      *http.Client
	repository  tweetsRepo.Repository
	domains     []string
}

// V2 tweet lookup envelope. Only the fields the study needs are mapped.
type lookupResponse struct {
	Data     []tweetObject `json:"data"`
	Errors   []lookupError `json:"errors"`
	Includes includes      `json:"includes"`
}

type tweetObject struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	AuthorID         string            `json:"author_id"`
	CreatedAt        string            `json:"created_at"`
	PublicMetrics    tweetMetrics      `json:"public_metrics"`
	ReferencedTweets []referencedTweet `json:"referenced_tweets"`
}

type tweetMetrics struct {
	RetweetCount int `json:"retweet_count"`
}

type referencedTweet struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type includes struct {
	Users  []userObject  `json:"users"`
	Tweets []tweetObject `json:"tweets"`
}

type userObject struct {
	ID            string      `json:"id"`
	Username      string      `json:"username"`
	PublicMetrics userMetrics `json:"public_metrics"`
}

type userMetrics struct {
	FollowersCount int `json:"followers_count"`
}

type lookupError struct {
	Title      string `json:"title"`
	Detail     string `json:"detail"`
	Value      string `json:"value"`
	ResourceID string `json:"resource_id"`
}

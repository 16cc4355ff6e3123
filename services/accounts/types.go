package accounts

import (
	"net/http"
	"time"

	accountsRepo "superspreader-analytics/repositories/accounts"
	tweetsRepo "superspreader-analytics/repositories/tweets"
)

const (
	lookupChunkSize   = 100
	delayBetweenCall  = 1 * time.Second
	clientHTTPTimeout = 15 * time.Second
	userFields        = "id,username,name,created_at,protected,verified,public_metrics"
)

type Service interface {
	CollectOnce()
}

type Impl struct {
	baseURL     string
	bearerToken string
	client      *http.Client
	accounts    accountsRepo.Repository
	tweets      tweetsRepo.Repository
}

type lookupResponse struct {
	Data   []userObject  `json:"data"`
	Errors []lookupError `json:"errors"`
}

type userObject struct {
	ID            string      `json:"id"`
	Username      string      `json:"username"`
	Name          string      `json:"name"`
	CreatedAt     string      `json:"created_at"`
	Protected     bool        `json:"protected"`
	Verified      bool        `json:"verified"`
	PublicMetrics userMetrics `json:"public_metrics"`
}

type userMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
}

type lookupError struct {
	Title      string `json:"title"`
	Detail     string `json:"detail"`
	Value      string `json:"value"`
	ResourceID string `json:"resource_id"`
}

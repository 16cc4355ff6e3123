package toxicity

import (
	"errors"
	"net/http"
	"time"

	toxicityRepo "superspreader-analytics/repositories/toxicity"
	tweetsRepo "superspreader-analytics/repositories/tweets"
)

const (
	clientHTTPTimeout = 15 * time.Second
	delayBetweenCall  = 50 * time.Millisecond
	maxBackoff        = 120 * time.Second
	// Wait after an unexpected API error before moving on, the server
	// may need a moment to recover.
	unexpectedErrorWait = 15 * time.Second
	maxTriesPerTweet    = 10
	progressLogEvery    = 5000
)

var (
	ErrNoAPIKeys = errors.New("no perspective API keys configured")

	// errLanguage marks tweets the API cannot score: either the
	// language is unsupported or undetectable. Not retryable.
	errLanguage = errors.New("language not supported")

	errRateLimited = errors.New("rate limited")
)

type Service interface {
	ScoreOnce()
}

type Impl struct {
	baseURL    string
	keys       []string
	keyIndex   int
	client     *http.Client
	sleep      func(time.Duration)
	tweets     tweetsRepo.Repository
	scores     toxicityRepo.Repository
}

type analyzeRequest struct {
	Comment             comment                  `json:"comment"`
	RequestedAttributes map[string]attributeSpec `json:"requestedAttributes"`
}

type comment struct {
	Text string `json:"text"`
}

type attributeSpec struct{}

type analyzeResponse struct {
	AttributeScores map[string]attributeScore `json:"attributeScores"`
}

type attributeScore struct {
	SummaryScore summaryScore `json:"summaryScore"`
}

type summaryScore struct {
	Value float64 `json:"value"`
}

type apiError struct {
	Error apiErrorBody `json:"error"`
}

type apiErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

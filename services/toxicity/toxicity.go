package toxicity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	toxicityRepo "superspreader-analytics/repositories/toxicity"
	tweetsRepo "superspreader-analytics/repositories/tweets"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, tweets tweetsRepo.Repository, scores toxicityRepo.Repository) (*Impl, error) {
	rawKeys := viper.GetString(constants.PerspectiveAPIKeys)

	var keys []string
	for _, key := range strings.Split(rawKeys, ",") {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}

	service := &Impl{
		baseURL: viper.GetString(constants.PerspectiveBaseURL),
		keys:    keys,
		client:  &http.Client{Timeout: clientHTTPTimeout},
		sleep:   time.Sleep,
		tweets:  tweets,
		scores:  scores,
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.ToxicityCronTab), true),
		gocron.NewTask(func() { service.ScoreOnce() }),
		gocron.WithName("Score tweet toxicity"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

// ScoreOnce queries the Perspective API for every original tweet that
// has neither a score nor a recorded language error. Several keys are
// rotated to shorten rate-limit waits; with a single key the backoff
// alone carries the run.
func (service *Impl) ScoreOnce() {
	if len(service.keys) == 0 {
		log.Warn().Err(ErrNoAPIKeys).Msg("Toxicity scoring skipped")
		return
	}

	log.Info().Int("keys", len(service.keys)).Msg("Start scoring toxicity")

	tweets, err := service.tweets.FetchAll()
	if err != nil {
		log.Error().Err(err).Msg("Cannot load tweets, aborting run")
		return
	}

	checked, err := service.scores.CheckedIDs()
	if err != nil {
		log.Error().Err(err).Msg("Cannot load checked IDs, aborting run")
		return
	}

	// Retweets repeat the original text, so only originals are queried.
	seen := make(map[string]struct{})
	processed := 0
	for _, tweet := range tweets {
		if tweet.IsRetweet {
			continue
		}
		if _, done := checked[tweet.ID]; done {
			continue
		}
		if _, dup := seen[tweet.ID]; dup {
			continue
		}
		seen[tweet.ID] = struct{}{}

		service.scoreTweet(tweet)

		processed++
		if processed%progressLogEvery == 0 {
			log.Info().Int("processed", processed).Msg("Toxicity progress")
		}
	}

	log.Info().Int("processed", processed).Msg("End scoring toxicity")
}

func (service *Impl) scoreTweet(tweet entities.Tweet) {
	for tries := 1; tries <= maxTriesPerTweet; tries++ {
		service.sleep(delayBetweenCall)

		score, err := service.analyze(tweet.Text)
		switch {
		case err == nil:
			row := entities.ToxicityScore{TweetID: tweet.ID, Score: score}
			if errSave := service.scores.Save(row); errSave != nil {
				log.Error().Err(errSave).Str(constants.LogTweetID, tweet.ID).Msg("Cannot save toxicity score")
			}
			return

		case err == errLanguage:
			row := entities.ToxicityScore{TweetID: tweet.ID, LanguageError: true}
			if errSave := service.scores.Save(row); errSave != nil {
				log.Error().Err(errSave).Str(constants.LogTweetID, tweet.ID).Msg("Cannot save language error")
			}
			return

		case err == errRateLimited:
			service.switchKey()
			service.sleep(backoff(tries))

		default:
			log.Warn().Err(err).Str(constants.LogTweetID, tweet.ID).Msg("Toxicity query failed, skipping tweet")
			service.switchKey()
			service.sleep(unexpectedErrorWait)
			return
		}
	}

	log.Warn().Str(constants.LogTweetID, tweet.ID).Msg("Toxicity query kept being rate limited, skipping tweet")
}

func (service *Impl) analyze(text string) (float64, error) {
	payload := analyzeRequest{
		Comment:             comment{Text: text},
		RequestedAttributes: map[string]attributeSpec{"TOXICITY": {}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode analyze request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1alpha1/comments:analyze?key=%s", service.baseURL, service.currentKey())
	resp, err := service.client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to call perspective API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read perspective response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var analyzed analyzeResponse
		if errDecode := json.Unmarshal(raw, &analyzed); errDecode != nil {
			return 0, fmt.Errorf("failed to decode perspective response: %w", errDecode)
		}
		return analyzed.AttributeScores["TOXICITY"].SummaryScore.Value, nil

	case http.StatusTooManyRequests:
		return 0, errRateLimited

	case http.StatusBadRequest:
		var failure apiError
		if errDecode := json.Unmarshal(raw, &failure); errDecode == nil &&
			strings.Contains(strings.ToLower(failure.Error.Message), "language") {
			return 0, errLanguage
		}
		return 0, fmt.Errorf("perspective API rejected request: %s", string(raw))

	default:
		return 0, fmt.Errorf("perspective API returned status %d", resp.StatusCode)
	}
}

func (service *Impl) currentKey() string {
	return service.keys[service.keyIndex]
}

// switchKey advances to the next key in the ring.
func (service *Impl) switchKey() {
	service.keyIndex = (service.keyIndex + 1) % len(service.keys)
}

// backoff grows exponentially with jitter and never waits longer than
// two minutes.
func backoff(tries int) time.Duration {
	secs := math.Pow(2, float64(tries)) + rand.Float64()
	if secs > maxBackoff.Seconds() {
		secs = maxBackoff.Seconds()
	}
	return time.Duration(secs * float64(time.Second))
}

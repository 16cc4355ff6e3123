package botometer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	botscoresRepo "superspreader-analytics/repositories/botscores"
	tweetsRepo "superspreader-analytics/repositories/tweets"
	"superspreader-analytics/utils/chunks"
	"superspreader-analytics/utils/dates"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, tweets tweetsRepo.Repository, botscores botscoresRepo.Repository) (*Impl, error) {
	service := &Impl{
		baseURL:   viper.GetString(constants.BotometerBaseURL),
		apiKey:    viper.GetString(constants.BotometerAPIKey),
		client:    &http.Client{Timeout: clientHTTPTimeout},
		tweets:    tweets,
		botscores: botscores,
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.BotometerCronTab), true),
		gocron.NewTask(func() { service.ScoreOnce() }),
		gocron.WithName("Score bot likelihood"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

// ScoreOnce sends every unscored tweet to the BotometerLite bulk
// endpoint and stores one bot score per tweet, timestamped with the
// probe time so per-user means can be recomputed later.
func (service *Impl) ScoreOnce() {
	if service.apiKey == "" {
		log.Warn().Msg("No botometer API key configured, skipping bot scoring")
		return
	}

	log.Info().Msg("Start scoring bot likelihood")

	tweets, err := service.tweets.FetchAll()
	if err != nil {
		log.Error().Err(err).Msg("Cannot load tweets, aborting run")
		return
	}

	scored, err := service.botscores.ScoredIDs()
	if err != nil {
		log.Error().Err(err).Msg("Cannot load scored IDs, aborting run")
		return
	}

	var pending []entities.Tweet
	for _, tweet := range tweets {
		if _, done := scored[tweet.ID]; !done {
			pending = append(pending, tweet)
		}
	}

	tweetChunks := chunks.Split(pending, checkChunkSize)
	for num, chunk := range tweetChunks {
		if errChunk := service.scoreChunk(chunk); errChunk != nil {
			log.Error().Err(errChunk).
				Int(constants.LogChunkNumber, num+1).
				Int(constants.LogChunkCount, len(tweetChunks)).
				Msg("Bot score chunk failed, continuing with next")
		}
		time.Sleep(delayBetweenCall)
	}

	log.Info().Int("pendingTweets", len(pending)).Msg("End scoring bot likelihood")
}

func (service *Impl) scoreChunk(tweets []entities.Tweet) error {
	payload := make([]liteTweet, 0, len(tweets))
	for _, tweet := range tweets {
		payload = append(payload, liteTweet{
			IDStr:     tweet.ID,
			Text:      tweet.Text,
			CreatedAt: time.Unix(tweet.Timestamp, 0).UTC().Format(dates.TwitterV1Format),
			User: liteUser{
				IDStr:          tweet.UserID,
				ScreenName:     tweet.ScreenName,
				FollowersCount: tweet.FollowersCount,
			},
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode bot score request: %w", err)
	}

	endpoint := service.baseURL + "/botometer-lite/check_accounts_in_bulk"
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build bot score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", service.apiKey)

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call botometer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("botometer returned status %d", resp.StatusCode)
	}

	var results []liteScore
	if errDecode := json.NewDecoder(resp.Body).Decode(&results); errDecode != nil {
		return fmt.Errorf("failed to decode botometer response: %w", errDecode)
	}

	probe := time.Now().UTC().Unix()
	for _, result := range results {
		row := entities.BotScore{
			TweetID:        result.TweetID,
			UserID:         result.UserID,
			Score:          result.BotScore,
			ProbeTimestamp: probe,
		}
		if errSave := service.botscores.Save(row); errSave != nil {
			log.Error().Err(errSave).Str(constants.LogTweetID, result.TweetID).Msg("Cannot save bot score")
		}
	}

	return nil
}

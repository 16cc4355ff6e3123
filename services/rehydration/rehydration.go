package rehydration

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	tweetsRepo "superspreader-analytics/repositories/tweets"
	"superspreader-analytics/utils/chunks"
	"superspreader-analytics/utils/dates"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, repository tweetsRepo.Repository) (*Impl, error) {
	service := &Impl{
		baseURL:     viper.GetString(constants.TwitterBaseURL),
		bearerToken: viper.GetString(constants.TwitterBearerToken),
		tweetIDsDir: viper.GetString(constants.TweetIDsDir),
		client:      &http.Client{Timeout: clientHTTPTimeout},
		repository:  repository,
		domains:     constants.GetLowCredibilityDomains(),
	}

	if viper.GetBool(constants.Production) {
		service.CollectOnce()
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.RehydrationCronTab), true),
		gocron.NewTask(func() { service.CollectOnce() }),
		gocron.WithName("Rehydrate tweet IDs"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

// CollectOnce rehydrates every tweet ID under the configured directory
// that has not been fetched yet. Raw data cannot be redistributed with
// the study, so the IDs are all we start from.
func (service *Impl) CollectOnce() {
	log.Info().Msg("Start rehydrating tweet IDs")

	ids, err := service.readTweetIDFiles()
	if err != nil {
		log.Error().Err(err).Msg("Cannot read tweet ID files, aborting run")
		return
	}

	existing, err := service.repository.ExistingIDs()
	if err != nil {
		log.Error().Err(err).Msg("Cannot list already rehydrated IDs, aborting run")
		return
	}

	var pending []string
	for _, id := range ids {
		if _, done := existing[id]; !done {
			pending = append(pending, id)
		}
	}

	idChunks := chunks.Split(pending, lookupChunkSize)
	log.Info().
		Int("pendingIDs", len(pending)).
		Int(constants.LogChunkCount, len(idChunks)).
		Msg("Rehydration batches prepared")

	for num, chunk := range idChunks {
		if err := service.collectChunk(chunk); err != nil {
			log.Error().Err(err).
				Int(constants.LogChunkNumber, num+1).
				Msg("Chunk failed, continuing with next")
		}
		time.Sleep(delayBetweenCall)
	}

	log.Info().Msg("End rehydrating tweet IDs")
}

func (service *Impl) readTweetIDFiles() ([]string, error) {
	entries, err := os.ReadDir(service.tweetIDsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tweet ID directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		path := filepath.Join(service.tweetIDsDir, entry.Name())
		file, errOpen := os.Open(path)
		if errOpen != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, errOpen)
		}

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			id := strings.TrimSpace(scanner.Text())
			if id != "" {
				ids = append(ids, id)
			}
		}
		errScan := scanner.Err()
		file.Close()
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, errScan)
		}

		log.Debug().Str(constants.LogFileName, entry.Name()).Msg("Tweet ID file loaded")
	}

	return ids, nil
}

func (service *Impl) collectChunk(ids []string) error {
	response, err := service.lookupTweets(ids)
	if err != nil {
		return err
	}

	followersByUser := make(map[string]userObject, len(response.Includes.Users))
	for _, user := range response.Includes.Users {
		followersByUser[user.ID] = user
	}

	originals := make(map[string]tweetObject, len(response.Includes.Tweets))
	for _, tweet := range response.Includes.Tweets {
		originals[tweet.ID] = tweet
	}

	for _, tweet := range response.Data {
		entity := service.mapTweetToEntity(tweet, followersByUser, originals)
		if errSave := service.repository.SaveOrUpdate(entity); errSave != nil {
			log.Error().Err(errSave).Str(constants.LogTweetID, tweet.ID).Msg("Cannot save tweet")
		}
	}

	for _, lookupErr := range response.Errors {
		tweetID := lookupErr.ResourceID
		if tweetID == "" {
			tweetID = lookupErr.Value
		}
		errRow := entities.TweetError{TweetID: tweetID, Title: lookupErr.Title, Detail: lookupErr.Detail}
		if errSave := service.repository.SaveError(errRow); errSave != nil {
			log.Error().Err(errSave).Str(constants.LogTweetID, tweetID).Msg("Cannot save tweet error")
		}
	}

	return nil
}

func (service *Impl) lookupTweets(ids []string) (*lookupResponse, error) {
	endpoint := fmt.Sprintf("%s/2/tweets?ids=%s&tweet.fields=%s&expansions=author_id,referenced_tweets.id&user.fields=%s",
		service.baseURL, url.QueryEscape(strings.Join(ids, ",")), tweetFields, userFields)

	for tries := 1; tries <= maxChunkRetries; tries++ {
		req, err := http.NewRequest(http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build lookup request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+service.bearerToken)

		resp, err := service.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tweets: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			wait := time.Duration(1<<tries) * time.Second
			log.Warn().
				Int(constants.LogStatusCode, resp.StatusCode).
				Dur("wait", wait).
				Msg("Rate limited by lookup endpoint, backing off")
			time.Sleep(wait)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("lookup endpoint returned status %d", resp.StatusCode)
		}

		var lookup lookupResponse
		errDecode := json.NewDecoder(resp.Body).Decode(&lookup)
		resp.Body.Close()
		if errDecode != nil {
			return nil, fmt.Errorf("failed to decode lookup response: %w", errDecode)
		}

		return &lookup, nil
	}

	return nil, fmt.Errorf("lookup still rate limited after %d tries", maxChunkRetries)
}

func (service *Impl) mapTweetToEntity(tweet tweetObject, users map[string]userObject, originals map[string]tweetObject) entities.Tweet {
	entity := entities.Tweet{
		ID:             tweet.ID,
		UserID:         tweet.AuthorID,
		Text:           tweet.Text,
		RetweetCount:   tweet.PublicMetrics.RetweetCount,
		LowCredibility: service.containsLowCredibilityDomain(tweet.Text),
	}

	if author, ok := users[tweet.AuthorID]; ok {
		entity.ScreenName = author.Username
		entity.FollowersCount = author.PublicMetrics.FollowersCount
	}

	if created, err := time.Parse(time.RFC3339, tweet.CreatedAt); err == nil {
		entity.Timestamp = created.UTC().Unix()
	} else if created, err := dates.ParseTwitterDate(tweet.CreatedAt); err == nil {
		entity.Timestamp = created.Unix()
	}

	for _, ref := range tweet.ReferencedTweets {
		if ref.Type != "retweeted" {
			continue
		}

		entity.IsRetweet = true
		entity.RetweetedStatusID = ref.ID
		if original, ok := originals[ref.ID]; ok {
			entity.RetweetedUserID = original.AuthorID
			entity.RetweetedRetweetCount = original.PublicMetrics.RetweetCount
		}
	}

	return entity
}

func (service *Impl) containsLowCredibilityDomain(text string) bool {
	lowered := strings.ToLower(text)
	for _, domain := range service.domains {
		if strings.Contains(lowered, domain) {
			return true
		}
	}
	return false
}

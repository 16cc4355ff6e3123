package accounts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	accountsRepo "superspreader-analytics/repositories/accounts"
	tweetsRepo "superspreader-analytics/repositories/tweets"
	"superspreader-analytics/utils/chunks"
	"superspreader-analytics/utils/dates"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, accounts accountsRepo.Repository, tweets tweetsRepo.Repository) (*Impl, error) {
	service := &Impl{
		baseURL:     viper.GetString(constants.TwitterBaseURL),
		bearerToken: viper.GetString(constants.TwitterBearerToken),
		client:      &http.Client{Timeout: clientHTTPTimeout},
		accounts:    accounts,
		tweets:      tweets,
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.AccountsCronTab), true),
		gocron.NewTask(func() { service.CollectOnce() }),
		gocron.WithName("Refresh account states"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

// CollectOnce downloads the current state of every account seen in the
// rehydrated tweets. Suspended or deleted accounts land in the error
// table, mirroring the data/errors file pair of the study.
func (service *Impl) CollectOnce() {
	log.Info().Msg("Start refreshing account states")

	userIDs, err := service.tweets.DistinctUserIDs()
	if err != nil {
		log.Error().Err(err).Msg("Cannot list user IDs, aborting run")
		return
	}

	idChunks := chunks.Split(userIDs, lookupChunkSize)
	for num, chunk := range idChunks {
		log.Debug().
			Int(constants.LogChunkNumber, num+1).
			Int(constants.LogChunkCount, len(idChunks)).
			Msg("Looking up account chunk")

		if errChunk := service.collectChunk(chunk); errChunk != nil {
			log.Error().Err(errChunk).
				Int(constants.LogChunkNumber, num+1).
				Msg("Account chunk failed, continuing with next")
		}
		time.Sleep(delayBetweenCall)
	}

	log.Info().Msg("End refreshing account states")
}

func (service *Impl) collectChunk(userIDs []string) error {
	endpoint := fmt.Sprintf("%s/2/users?ids=%s&user.fields=%s",
		service.baseURL, url.QueryEscape(strings.Join(userIDs, ",")), userFields)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build user lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+service.bearerToken)

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("user lookup returned status %d", resp.StatusCode)
	}

	var lookup lookupResponse
	if errDecode := json.NewDecoder(resp.Body).Decode(&lookup); errDecode != nil {
		return fmt.Errorf("failed to decode user lookup response: %w", errDecode)
	}

	today := dates.DateToString(time.Now(), dates.DateFormat)
	for _, user := range lookup.Data {
		account := entities.Account{
			UserID:         user.ID,
			ScreenName:     user.Username,
			Name:           user.Name,
			FollowersCount: user.PublicMetrics.FollowersCount,
			FollowingCount: user.PublicMetrics.FollowingCount,
			TweetCount:     user.PublicMetrics.TweetCount,
			Verified:       user.Verified,
			Protected:      user.Protected,
			CreatedAt:      user.CreatedAt,
			CollectedAt:    today,
		}
		if errSave := service.accounts.SaveOrUpdate(account); errSave != nil {
			log.Error().Err(errSave).Str(constants.LogUserID, user.ID).Msg("Cannot save account")
		}
	}

	for _, lookupErr := range lookup.Errors {
		userID := lookupErr.ResourceID
		if userID == "" {
			userID = lookupErr.Value
		}
		errRow := entities.AccountError{UserID: userID, Title: lookupErr.Title, Detail: lookupErr.Detail}
		if errSave := service.accounts.SaveError(errRow); errSave != nil {
			log.Error().Err(errSave).Str(constants.LogUserID, userID).Msg("Cannot save account error")
		}
	}

	return nil
}

package timelines

import (
	"strings"
	"sync"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	accountsRepo "superspreader-analytics/repositories/accounts"
	fibRepo "superspreader-analytics/repositories/fib"
	tweetsRepo "superspreader-analytics/repositories/tweets"

	"github.com/go-co-op/gocron/v2"
	twitterscraper "github.com/n0madic/twitter-scraper"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler,
	tweets tweetsRepo.Repository,
	accounts accountsRepo.Repository,
	fib fibRepo.Repository) (*Impl, error) {
	service := &Impl{
		tweetCount: viper.GetInt(constants.TweetCount),
		topLimit:   viper.GetInt(constants.TopUsersLimit),
		scraper:    twitterscraper.New(),
		tweets:     tweets,
		accounts:   accounts,
		fib:        fib,
		domains:    constants.GetLowCredibilityDomains(),
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.TimelinesCronTab), true),
		gocron.NewTask(func() { service.FetchOnce() }),
		gocron.WithName("Fetch top user timelines"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

// FetchOnce scrapes the recent timeline of every current top-ranked
// account whose screen name is known, keeping the corpus of
// superspreader activity current between full rehydration runs.
func (service *Impl) FetchOnce() {
	log.Info().Msg("Start fetching top user timelines")

	runDay, err := service.fib.LatestRunDay()
	if err != nil || runDay == "" {
		log.Warn().Err(err).Msg("No FIB ranking available yet, skipping timelines")
		return
	}

	top, err := service.fib.TopForRun(runDay, service.topLimit)
	if err != nil {
		log.Error().Err(err).Str(constants.LogRunDay, runDay).Msg("Cannot load top users, aborting run")
		return
	}

	userIDs := make([]string, 0, len(top))
	for _, score := range top {
		userIDs = append(userIDs, score.UserID)
	}

	accounts, err := service.accounts.FetchByUserIDs(userIDs)
	if err != nil {
		log.Error().Err(err).Msg("Cannot resolve screen names, aborting run")
		return
	}

	var wg sync.WaitGroup
	for _, account := range accounts {
		if account.ScreenName == "" || account.Protected {
			continue
		}

		wg.Add(1)
		go func(account entities.Account) {
			defer wg.Done()
			service.checkAccount(account)
		}(account)
	}

	wg.Wait()
	log.Info().Msg("End fetching top user timelines")
}

func (service *Impl) checkAccount(account entities.Account) {
	log.Info().
		Str(constants.LogUserID, account.UserID).
		Str(constants.LogScreenName, account.ScreenName).
		Msg("Reading timeline...")

	scraped, _, err := service.scraper.FetchTweets(account.ScreenName, service.tweetCount, "")
	if err != nil {
		log.Error().Err(err).
			Str(constants.LogScreenName, account.ScreenName).
			Msg("Cannot retrieve timeline, ignored")
		return
	}

	for _, tweet := range scraped {
		entity := service.mapTweetToEntity(tweet, account)
		if errSave := service.tweets.SaveOrUpdate(entity); errSave != nil {
			log.Error().Err(errSave).Str(constants.LogTweetID, tweet.ID).Msg("Cannot save scraped tweet")
		}
	}
}

func (service *Impl) mapTweetToEntity(tweet *twitterscraper.Tweet, account entities.Account) entities.Tweet {
	entity := entities.Tweet{
		ID:             tweet.ID,
		UserID:         tweet.UserID,
		ScreenName:     account.ScreenName,
		Text:           tweet.Text,
		Timestamp:      tweet.Timestamp,
		RetweetCount:   tweet.Retweets,
		FollowersCount: account.FollowersCount,
		LowCredibility: service.containsLowCredibilityDomain(tweet.Text),
	}

	if tweet.RetweetedStatus != nil {
		entity.IsRetweet = true
		entity.RetweetedStatusID = tweet.RetweetedStatus.ID
		entity.RetweetedUserID = tweet.RetweetedStatus.UserID
		entity.RetweetedRetweetCount = tweet.RetweetedStatus.Retweets
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

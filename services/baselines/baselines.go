package baselines

import (
	"fmt"
	"sort"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	"superspreader-analytics/pkg/spread"
	accountsRepo "superspreader-analytics/repositories/accounts"
	baselinesRepo "superspreader-analytics/repositories/baselines"
	tweetsRepo "superspreader-analytics/repositories/tweets"
	"superspreader-analytics/utils/dates"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, tweets tweetsRepo.Repository, accounts accountsRepo.Repository, baselines baselinesRepo.Repository) (*Impl, error) {
	start, err := dates.StringToDate(viper.GetString(constants.StudyStartDate), dates.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid study start date: %w", err)
	}
	split, err := dates.StringToDate(viper.GetString(constants.StudySplitDate), dates.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid study split date: %w", err)
	}

	service := &Impl{
		windowStart: start.Unix(),
		windowEnd:   split.Unix(),
		tweets:      tweets,
		accounts:    accounts,
		baselines:   baselines,
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.AnalysisCronTab), true),
		gocron.NewTask(func() { service.ComputeOnce() }),
		gocron.WithName("Compute baseline rankings"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

// ComputeOnce rebuilds both baseline rankings from the observation
// window: "influential" users earned the most retweets, "popular" users
// have the most followers.
func (service *Impl) ComputeOnce() {
	log.Info().Msg("Start computing baseline rankings")

	tweets, err := service.tweets.FetchBetweenTimestamps(service.windowStart, service.windowEnd)
	if err != nil {
		log.Error().Err(err).Msg("Cannot load tweets, aborting run")
		return
	}
	if len(tweets) == 0 {
		log.Warn().Msg("No tweets in the observation window, nothing to rank")
		return
	}

	for _, tweet := range tweets {
		if tweet.Timestamp >= service.windowEnd {
			log.Error().Str(constants.LogTweetID, tweet.ID).Msg("Tweet after the window split leaked into the baseline data, aborting run")
			return
		}
	}

	influential := ComputeInfluential(tweets)
	if errSave := service.baselines.ReplaceKind(baselinesRepo.KindInfluential, influential); errSave != nil {
		log.Error().Err(errSave).Msg("Cannot save influential baseline")
		return
	}

	popular := ComputePopular(tweets, service.lookupFollowers)
	if errSave := service.baselines.ReplaceKind(baselinesRepo.KindPopular, popular); errSave != nil {
		log.Error().Err(errSave).Msg("Cannot save popular baseline")
		return
	}

	log.Info().
		Int("influentialUsers", len(influential)).
		Int("popularUsers", len(popular)).
		Msg("End computing baseline rankings")
}

// Top returns the best ranked users of one baseline kind.
func (service *Impl) Top(kind string, limit int) ([]entities.BaselineScore, error) {
	scores, err := service.baselines.FetchKind(kind)
	if err != nil {
		return nil, err
	}
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// ComputeInfluential ranks users by the sum of the deduplicated retweet
// counts their posts earned inside the window.
func ComputeInfluential(tweets []entities.Tweet) []entities.BaselineScore {
	rtCounts := spread.UserRetweetCounts(tweets)

	scores := make([]entities.BaselineScore, 0, len(rtCounts))
	for userID, counts := range rtCounts {
		var total int64
		for _, count := range counts {
			total += int64(count)
		}
		scores = append(scores, entities.BaselineScore{
			Kind:   baselinesRepo.KindInfluential,
			UserID: userID,
			Value:  float64(total),
		})
	}

	sortAndRank(scores)
	return scores
}

// ComputePopular ranks the same user set by mean observed follower
// count. Users only seen through retweets of their posts have no
// follower observation of their own; the lookup callback fills those
// from the account table when possible.
func ComputePopular(tweets []entities.Tweet, lookupFollowers func(userIDs []string) map[string]int) []entities.BaselineScore {
	sums := make(map[string]int64)
	observations := make(map[string]int64)
	for _, tweet := range tweets {
		if tweet.IsRetweet {
			continue
		}
		sums[tweet.UserID] += int64(tweet.FollowersCount)
		observations[tweet.UserID]++
	}

	rtCounts := spread.UserRetweetCounts(tweets)
	var unobserved []string
	for userID := range rtCounts {
		if observations[userID] == 0 {
			unobserved = append(unobserved, userID)
		}
	}

	var known map[string]int
	if lookupFollowers != nil && len(unobserved) > 0 {
		known = lookupFollowers(unobserved)
	}

	scores := make([]entities.BaselineScore, 0, len(rtCounts))
	for userID := range rtCounts {
		var mean float64
		if observations[userID] > 0 {
			mean = float64(sums[userID]) / float64(observations[userID])
		} else if followers, ok := known[userID]; ok {
			mean = float64(followers)
		}
		scores = append(scores, entities.BaselineScore{
			Kind:   baselinesRepo.KindPopular,
			UserID: userID,
			Value:  mean,
		})
	}

	sortAndRank(scores)
	return scores
}

func (service *Impl) lookupFollowers(userIDs []string) map[string]int {
	accounts, err := service.accounts.FetchByUserIDs(userIDs)
	if err != nil {
		log.Warn().Err(err).Msg("Cannot look up follower counts, leaving them at zero")
		return nil
	}

	followers := make(map[string]int, len(accounts))
	for _, account := range accounts {
		followers[account.UserID] = account.FollowersCount
	}
	return followers
}

func sortAndRank(scores []entities.BaselineScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Value != scores[j].Value {
			return scores[i].Value > scores[j].Value
		}
		return scores[i].UserID < scores[j].UserID
	})

	for i := range scores {
		scores[i].Rank = i + 1
	}
}

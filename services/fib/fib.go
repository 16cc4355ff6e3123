package fib

import (
	"fmt"
	"sort"
	"time"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	"superspreader-analytics/pkg/observer"
	"superspreader-analytics/pkg/spread"
	"superspreader-analytics/pkg/stats"
	fibRepo "superspreader-analytics/repositories/fib"
	tweetsRepo "superspreader-analytics/repositories/tweets"
	"superspreader-analytics/utils/dates"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, tweets tweetsRepo.Repository, scores fibRepo.Repository) (*Impl, error) {
	start, err := dates.StringToDate(viper.GetString(constants.StudyStartDate), dates.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid study start date: %w", err)
	}
	split, err := dates.StringToDate(viper.GetString(constants.StudySplitDate), dates.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid study split date: %w", err)
	}

	service := &Impl{
		percentileThreshold: viper.GetFloat64(constants.FibPercentileThreshold),
		windowStart:         start.Unix(),
		windowEnd:           split.Unix(),
		tweets:              tweets,
		scores:              scores,
		observers:           map[observer.Observer]struct{}{},
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.FibCronTab), true),
		gocron.NewTask(func() { service.ComputeOnce() }),
		gocron.WithName("Compute FIB ranking"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

func (service *Impl) notify(e observer.Event) {
	for o := range service.observers {
		o.OnNotify(e)
	}
}

// ComputeOnce recalculates the full FIB ranking over the observation
// window and persists it as today's snapshot.
func (service *Impl) ComputeOnce() {
	log.Info().Msg("Start computing FIB ranking")

	tweets, err := service.tweets.FetchBetweenTimestamps(service.windowStart, service.windowEnd)
	if err != nil {
		log.Error().Err(err).Msg("Cannot load tweets, aborting run")
		return
	}
	if len(tweets) == 0 {
		log.Warn().Msg("No tweets in the observation window, nothing to rank")
		return
	}

	runDay := dates.DateToString(time.Now(), dates.DateFormat)
	ranking := ComputeRanking(tweets, service.percentileThreshold, runDay)

	if errSave := service.scores.ReplaceRun(runDay, ranking); errSave != nil {
		log.Error().Err(errSave).Str(constants.LogRunDay, runDay).Msg("Cannot save FIB ranking")
		return
	}

	superspreaders := 0
	for _, score := range ranking {
		if score.Superspreader {
			superspreaders++
		}
	}
	log.Info().
		Str(constants.LogRunDay, runDay).
		Int("rankedUsers", len(ranking)).
		Int("superspreaders", superspreaders).
		Msg("End computing FIB ranking")

	top := ranking
	if len(top) > superspreaders {
		top = top[:superspreaders]
	}
	service.notify(observer.NewRankingEvent(runDay, top))
}

func (service *Impl) LatestTop(limit int) ([]entities.FibScore, error) {
	runDay, err := service.scores.LatestRunDay()
	if err != nil {
		return nil, err
	}
	if runDay == "" {
		return nil, nil
	}

	return service.scores.TopForRun(runDay, limit)
}

// ComputeRanking turns a tweet window into a complete FIB ranking.
// Users whose score reaches the percentile threshold value are flagged
// as superspreaders. Ties are broken by user ID so reruns are stable.
func ComputeRanking(tweets []entities.Tweet, percentileThreshold float64, runDay string) []entities.FibScore {
	rtCounts := spread.UserRetweetCounts(tweets)

	ranking := make([]entities.FibScore, 0, len(rtCounts))
	scoreValues := make([]float64, 0, len(rtCounts))
	for userID, counts := range rtCounts {
		score := stats.FibIndex(counts)
		ranking = append(ranking, entities.FibScore{RunDay: runDay, UserID: userID, Score: score})
		scoreValues = append(scoreValues, float64(score))
	}

	cutoff := stats.Percentile(scoreValues, percentileThreshold)
	log.Debug().
		Float64("percentile", percentileThreshold).
		Float64("cutoff", cutoff).
		Msg("Superspreader threshold computed")

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].UserID < ranking[j].UserID
	})

	for i := range ranking {
		ranking[i].Rank = i + 1
		ranking[i].Superspreader = float64(ranking[i].Score) >= cutoff
	}

	return ranking
}

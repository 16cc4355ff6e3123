package dismantling

import (
	"fmt"
	"sort"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	"superspreader-analytics/pkg/spread"
	"superspreader-analytics/pkg/stats"
	baselinesRepo "superspreader-analytics/repositories/baselines"
	botscoresRepo "superspreader-analytics/repositories/botscores"
	dismantlingRepo "superspreader-analytics/repositories/dismantling"
	fibRepo "superspreader-analytics/repositories/fib"
	tweetsRepo "superspreader-analytics/repositories/tweets"
	"superspreader-analytics/utils/dates"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler,
	tweets tweetsRepo.Repository,
	fib fibRepo.Repository,
	baselines baselinesRepo.Repository,
	botscores botscoresRepo.Repository,
	results dismantlingRepo.Repository) (*Impl, error) {
	split, err := dates.StringToDate(viper.GetString(constants.StudySplitDate), dates.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid study split date: %w", err)
	}
	end, err := dates.StringToDate(viper.GetString(constants.StudyEndDate), dates.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid study end date: %w", err)
	}

	service := &Impl{
		futureStart: split.Unix(),
		futureEnd:   end.Unix(),
		tweets:      tweets,
		fib:         fib,
		baselines:   baselines,
		botscores:   botscores,
		results:     results,
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.AnalysisCronTab), true),
		gocron.NewTask(func() { service.ComputeOnce() }),
		gocron.WithName("Run dismantling analysis"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

// ComputeOnce ranks users with every strategy computed on the
// observation window, then measures how much low-credibility retweeting
// in the later window each cumulative removal would have eliminated.
func (service *Impl) ComputeOnce() {
	log.Info().Msg("Start dismantling analysis")

	future, err := service.tweets.FetchBetweenTimestamps(service.futureStart, service.futureEnd)
	if err != nil {
		log.Error().Err(err).Msg("Cannot load future window, aborting run")
		return
	}
	if len(future) == 0 {
		log.Warn().Msg("No tweets in the future window, nothing to dismantle")
		return
	}

	rtCounts := spread.UserRetweetCounts(future)
	totalRTs := spread.TotalRetweets(rtCounts)
	if totalRTs == 0 {
		log.Warn().Msg("Future window carries no retweets, nothing to dismantle")
		return
	}

	rankings, err := service.loadRankings()
	if err != nil {
		log.Error().Err(err).Msg("Cannot load rankings, aborting run")
		return
	}

	for strategy, userIDs := range rankings {
		steps := Dismantle(strategy, userIDs, totalRTs, rtCounts)
		if errSave := service.results.ReplaceStrategy(strategy, steps); errSave != nil {
			log.Error().Err(errSave).Str(constants.LogStrategy, strategy).Msg("Cannot save removal curve")
			continue
		}
		log.Info().Str(constants.LogStrategy, strategy).Int("steps", len(steps)).Msg("Removal curve stored")
	}

	gold := DismantleGoldStandard(rankings[StrategyPopular], totalRTs, rtCounts)
	if errSave := service.results.ReplaceStrategy(StrategyGoldStandard, gold); errSave != nil {
		log.Error().Err(errSave).Str(constants.LogStrategy, StrategyGoldStandard).Msg("Cannot save gold standard")
	}

	log.Info().Msg("End dismantling analysis")
}

// loadRankings returns, per strategy, the user IDs sorted from the most
// to the least influential under that strategy. Users known to the
// baselines but missing from the FIB ranking were never retweeted in
// the observation window; they join the tail with an implicit score of
// zero.
func (service *Impl) loadRankings() (map[string][]string, error) {
	popular, err := service.baselines.FetchKind(baselinesRepo.KindPopular)
	if err != nil {
		return nil, fmt.Errorf("failed to load popular baseline: %w", err)
	}
	influential, err := service.baselines.FetchKind(baselinesRepo.KindInfluential)
	if err != nil {
		return nil, fmt.Errorf("failed to load influential baseline: %w", err)
	}

	runDay, err := service.fib.LatestRunDay()
	if err != nil {
		return nil, fmt.Errorf("failed to find latest FIB run: %w", err)
	}
	fibScores, err := service.fib.FetchRun(runDay)
	if err != nil {
		return nil, fmt.Errorf("failed to load FIB run %s: %w", runDay, err)
	}

	rankings := map[string][]string{
		StrategyPopular:     baselineUserIDs(popular),
		StrategyInfluential: baselineUserIDs(influential),
	}

	fibUsers := make([]string, 0, len(fibScores))
	scored := make(map[string]struct{}, len(fibScores))
	for _, score := range fibScores {
		fibUsers = append(fibUsers, score.UserID)
		scored[score.UserID] = struct{}{}
	}
	for _, userID := range rankings[StrategyPopular] {
		if _, ok := scored[userID]; !ok {
			fibUsers = append(fibUsers, userID)
		}
	}
	rankings[StrategyFib] = fibUsers

	botRanking, err := service.botscoreRanking(rankings[StrategyPopular])
	if err != nil {
		return nil, err
	}
	if len(botRanking) > 0 {
		rankings[StrategyBotscore] = botRanking
	} else {
		log.Warn().Msg("No bot scores collected yet, skipping botscore strategy")
	}

	return rankings, nil
}

// botscoreRanking orders the baseline users by their mean bot score.
func (service *Impl) botscoreRanking(baselineUsers []string) ([]string, error) {
	scores, err := service.botscores.FetchAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load bot scores: %w", err)
	}
	if len(scores) == 0 {
		return nil, nil
	}

	inBaseline := make(map[string]struct{}, len(baselineUsers))
	for _, userID := range baselineUsers {
		inBaseline[userID] = struct{}{}
	}

	sums := make(map[string]float64)
	counts := make(map[string]int64)
	for _, score := range scores {
		if _, ok := inBaseline[score.UserID]; !ok {
			continue
		}
		sums[score.UserID] += score.Score
		counts[score.UserID]++
	}

	type meanScore struct {
		userID string
		mean   float64
	}
	means := make([]meanScore, 0, len(sums))
	for userID, sum := range sums {
		means = append(means, meanScore{userID: userID, mean: sum / float64(counts[userID])})
	}

	sort.Slice(means, func(i, j int) bool {
		if means[i].mean != means[j].mean {
			return means[i].mean > means[j].mean
		}
		return means[i].userID < means[j].userID
	})

	userIDs := make([]string, 0, len(means))
	for _, mean := range means {
		userIDs = append(userIDs, mean.userID)
	}
	return userIDs, nil
}

// Dismantle removes users in rank order and records the proportion of
// retweets remaining after each cumulative removal, starting at 1.0
// before anyone is removed.
func Dismantle(strategy string, rankedUsers []string, totalRTs int64, rtCounts map[string][]int) []entities.DismantlingStep {
	steps := make([]entities.DismantlingStep, 0, len(rankedUsers)+1)
	steps = append(steps, entities.DismantlingStep{Strategy: strategy, Removed: 0, ProportionRemaining: 1.0})

	var removedRTs int64
	for i, userID := range rankedUsers {
		removedRTs += spread.SumFor([]string{userID}, rtCounts)
		steps = append(steps, entities.DismantlingStep{
			Strategy:            strategy,
			Removed:             i + 1,
			UserID:              userID,
			ProportionRemaining: stats.ProportionRemaining(totalRTs, removedRTs),
		})

		if (i+1)%progressLogEvery == 0 {
			log.Debug().Str(constants.LogStrategy, strategy).Int("processed", i+1).Msg("Dismantling progress")
		}
	}

	return steps
}

// DismantleGoldStandard measures each user in isolation: the proportion
// of future retweets that disappear when only that user is removed,
// sorted from the largest contribution down.
func DismantleGoldStandard(userIDs []string, totalRTs int64, rtCounts map[string][]int) []entities.DismantlingStep {
	steps := make([]entities.DismantlingStep, 0, len(userIDs))
	for _, userID := range userIDs {
		removed := spread.SumFor([]string{userID}, rtCounts)
		steps = append(steps, entities.DismantlingStep{
			Strategy:             StrategyGoldStandard,
			UserID:               userID,
			ProportionRemovedOwn: float64(removed) / float64(totalRTs),
		})
	}

	sort.Slice(steps, func(i, j int) bool {
		if steps[i].ProportionRemovedOwn != steps[j].ProportionRemovedOwn {
			return steps[i].ProportionRemovedOwn > steps[j].ProportionRemovedOwn
		}
		return steps[i].UserID < steps[j].UserID
	})

	for i := range steps {
		steps[i].Removed = i + 1
	}

	return steps
}

func baselineUserIDs(scores []entities.BaselineScore) []string {
	userIDs := make([]string, 0, len(scores))
	for _, score := range scores {
		userIDs = append(userIDs, score.UserID)
	}
	return userIDs
}

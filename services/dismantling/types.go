package dismantling

import (
	baselinesRepo "superspreader-analytics/repositories/baselines"
	botscoresRepo "superspreader-analytics/repositories/botscores"
	dismantlingRepo "superspreader-analytics/repositories/dismantling"
	fibRepo "superspreader-analytics/repositories/fib"
	tweetsRepo "superspreader-analytics/repositories/tweets"
)

const (
	StrategyFib          = "fib"
	StrategyPopular      = "popular"
	StrategyInfluential  = "influential"
	StrategyBotscore     = "botscore"
	StrategyGoldStandard = "gold-standard"

	progressLogEvery = 2000
)

type Service interface {
	ComputeOnce()
}

type Impl struct {
	futureStart int64
	futureEnd   int64
	tweets      tweetsRepo.Repository
	fib         fibRepo.Repository
	baselines   baselinesRepo.Repository
	botscores   botscoresRepo.Repository
	results     dismantlingRepo.Repository
}

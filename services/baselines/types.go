package baselines

import (
	"superspreader-analytics/models/entities"
	accountsRepo "superspreader-analytics/repositories/accounts"
	baselinesRepo "superspreader-analytics/repositories/baselines"
	tweetsRepo "superspreader-analytics/repositories/tweets"
)

type Service interface {
	ComputeOnce()
	Top(kind string, limit int) ([]entities.BaselineScore, error)
}

type Impl struct {
	windowStart int64
	windowEnd   int64
	tweets      tweetsRepo.Repository
	accounts    accountsRepo.Repository
	baselines   baselinesRepo.Repository
}

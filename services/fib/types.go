package fib

import (
	"superspreader-analytics/models/entities"
	"superspreader-analytics/pkg/observer"
	fibRepo "superspreader-analytics/repositories/fib"
	tweetsRepo "superspreader-analytics/repositories/tweets"
)

type Service interface {
	ComputeOnce()
	LatestTop(limit int) ([]entities.FibScore, error)
	RegisterObserver(o observer.Observer)
}

type Impl struct {
	percentileThreshold float64
	windowStart         int64
	windowEnd           int64
	tweets              tweetsRepo.Repository
	scores              fibRepo.Repository
	observers           map[observer.Observer]struct{}
}

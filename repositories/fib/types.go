package fib

import (
	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

type Repository interface {
	ReplaceRun(runDay string, scores []entities.FibScore) error
	FetchRun(runDay string) ([]entities.FibScore, error)
	TopForRun(runDay string, limit int) ([]entities.FibScore, error)
	LatestRunDay() (string, error)
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}

package baselines

import (
	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

const (
	KindPopular     = "popular"
	KindInfluential = "influential"
)

type Repository interface {
	ReplaceKind(kind string, scores []entities.BaselineScore) error
	FetchKind(kind string) ([]entities.BaselineScore, error)
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}

package dismantling

import (
	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

type Repository interface {
	ReplaceStrategy(strategy string, steps []entities.DismantlingStep) error
	FetchStrategy(strategy string) ([]entities.DismantlingStep, error)
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}

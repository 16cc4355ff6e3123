package botscores

import (
	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

type Repository interface {
	Save(score entities.BotScore) error
	FetchAll() ([]entities.BotScore, error)
	ScoredIDs() (map[string]struct{}, error)
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}

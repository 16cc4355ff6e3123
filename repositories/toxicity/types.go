package toxicity

import (
	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

type Repository interface {
	Save(score entities.ToxicityScore) error
	CheckedIDs() (map[string]struct{}, error)
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}

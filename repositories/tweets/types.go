package tweets

import (
	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

type Repository interface {
	SaveOrUpdate(tweet entities.Tweet) error
	SaveError(tweetError entities.TweetError) error
	FetchAll() ([]entities.Tweet, error)
	FetchBetweenTimestamps(startTimestamp int64, endTimestamp int64) ([]entities.Tweet, error)
	ExistingIDs() (map[string]struct{}, error)
	DistinctUserIDs() ([]string, error)
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}

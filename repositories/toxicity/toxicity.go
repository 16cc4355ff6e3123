package toxicity

import (
	"fmt"

	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) Save(score entities.ToxicityScore) error {
	return repo.db.GetDB().Save(&score).Error
}

// CheckedIDs returns tweet IDs already scored or recorded as language
// errors. Both are skipped on restart.
func (repo *Impl) CheckedIDs() (map[string]struct{}, error) {
	var tweetIDs []string
	if err := repo.db.GetDB().Model(&entities.ToxicityScore{}).Pluck("tweet_id", &tweetIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch checked tweet ids: %w", err)
	}

	checked := make(map[string]struct{}, len(tweetIDs))
	for _, id := range tweetIDs {
		checked[id] = struct{}{}
	}

	return checked, nil
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.ToxicityScore{}).Count(count)

	return *count
}

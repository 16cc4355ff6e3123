package botscores

import (
	"fmt"

	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) Save(score entities.BotScore) error {
	return repo.db.GetDB().Save(&score).Error
}

func (repo *Impl) FetchAll() ([]entities.BotScore, error) {
	var scores []entities.BotScore
	result := repo.db.GetDB().Find(&scores)

	return scores, result.Error
}

func (repo *Impl) ScoredIDs() (map[string]struct{}, error) {
	var tweetIDs []string
	if err := repo.db.GetDB().Model(&entities.BotScore{}).Pluck("tweet_id", &tweetIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch scored tweet ids: %w", err)
	}

	scored := make(map[string]struct{}, len(tweetIDs))
	for _, id := range tweetIDs {
		scored[id] = struct{}{}
	}

	return scored, nil
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.BotScore{}).Count(count)

	return *count
}

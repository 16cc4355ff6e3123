package tweets

import (
	"errors"
	"fmt"

	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"

	"gorm.io/gorm"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) SaveOrUpdate(tweet entities.Tweet) error {
	var existingTweet entities.Tweet

	result := repo.db.GetDB().Where("id = ?", tweet.ID).First(&existingTweet)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := repo.db.GetDB().Create(&tweet).Error; err != nil {
				return fmt.Errorf("failed to create tweet: %w", err)
			}
		} else {
			return fmt.Errorf("failed to check tweet existence: %w", result.Error)
		}
	} else {
		// Retweet counts only grow; keep the largest value on record.
		if tweet.RetweetCount < existingTweet.RetweetCount {
			tweet.RetweetCount = existingTweet.RetweetCount
		}
		if tweet.RetweetedRetweetCount < existingTweet.RetweetedRetweetCount {
			tweet.RetweetedRetweetCount = existingTweet.RetweetedRetweetCount
		}
		if err := repo.db.GetDB().Model(&existingTweet).Updates(tweet).Error; err != nil {
			return fmt.Errorf("failed to update tweet: %w", err)
		}
	}

	return nil
}

func (repo *Impl) SaveError(tweetError entities.TweetError) error {
	return repo.db.GetDB().Save(&tweetError).Error
}

func (repo *Impl) FetchAll() ([]entities.Tweet, error) {
	var tweets []entities.Tweet
	result := repo.db.GetDB().Find(&tweets)

	return tweets, result.Error
}

func (repo *Impl) FetchBetweenTimestamps(startTimestamp int64, endTimestamp int64) ([]entities.Tweet, error) {
	var tweets []entities.Tweet

	result := repo.db.GetDB().
		Where("timestamp >= ?", startTimestamp).
		Where("timestamp < ?", endTimestamp).
		Find(&tweets)

	return tweets, result.Error
}

// ExistingIDs returns every tweet ID already rehydrated or recorded as an
// error, so restarted collection runs skip them.
func (repo *Impl) ExistingIDs() (map[string]struct{}, error) {
	var tweetIDs []string
	if err := repo.db.GetDB().Model(&entities.Tweet{}).Pluck("id", &tweetIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tweet ids: %w", err)
	}

	var errorIDs []string
	if err := repo.db.GetDB().Model(&entities.TweetError{}).Pluck("tweet_id", &errorIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tweet error ids: %w", err)
	}

	existing := make(map[string]struct{}, len(tweetIDs)+len(errorIDs))
	for _, id := range tweetIDs {
		existing[id] = struct{}{}
	}
	for _, id := range errorIDs {
		existing[id] = struct{}{}
	}

	return existing, nil
}

func (repo *Impl) DistinctUserIDs() ([]string, error) {
	var userIDs []string
	result := repo.db.GetDB().Model(&entities.Tweet{}).Distinct("user_id").Pluck("user_id", &userIDs)

	return userIDs, result.Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.Tweet{}).Count(count)

	return *count
}

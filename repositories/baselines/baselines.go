package baselines

import (
	"fmt"

	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) ReplaceKind(kind string, scores []entities.BaselineScore) error {
	tx := repo.db.GetDB().Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to open transaction: %w", tx.Error)
	}

	if err := tx.Where("kind = ?", kind).Delete(&entities.BaselineScore{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear %s baseline: %w", kind, err)
	}

	for _, score := range scores {
		if err := tx.Create(&score).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save baseline score: %w", err)
		}
	}

	return tx.Commit().Error
}

func (repo *Impl) FetchKind(kind string) ([]entities.BaselineScore, error) {
	var scores []entities.BaselineScore
	result := repo.db.GetDB().
		Where("kind = ?", kind).
		Order("rank asc").
		Find(&scores)

	return scores, result.Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.BaselineScore{}).Count(count)

	return *count
}

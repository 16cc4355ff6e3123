package dismantling

import (
	"fmt"

	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) ReplaceStrategy(strategy string, steps []entities.DismantlingStep) error {
	tx := repo.db.GetDB().Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to open transaction: %w", tx.Error)
	}

	if err := tx.Where("strategy = ?", strategy).Delete(&entities.DismantlingStep{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear %s curve: %w", strategy, err)
	}

	for _, step := range steps {
		if err := tx.Create(&step).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save dismantling step: %w", err)
		}
	}

	return tx.Commit().Error
}

func (repo *Impl) FetchStrategy(strategy string) ([]entities.DismantlingStep, error) {
	var steps []entities.DismantlingStep
	result := repo.db.GetDB().
		Where("strategy = ?", strategy).
		Order("removed asc").
		Find(&steps)

	return steps, result.Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.DismantlingStep{}).Count(count)

	return *count
}

package fib

import (
	"fmt"

	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

// ReplaceRun swaps the ranking snapshot of a run day in one transaction so
// readers never see a half-written ranking.
func (repo *Impl) ReplaceRun(runDay string, scores []entities.FibScore) error {
	tx := repo.db.GetDB().Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to open transaction: %w", tx.Error)
	}

	if err := tx.Where("run_day = ?", runDay).Delete(&entities.FibScore{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear run %s: %w", runDay, err)
	}

	for _, score := range scores {
		if err := tx.Create(&score).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save fib score: %w", err)
		}
	}

	return tx.Commit().Error
}

func (repo *Impl) FetchRun(runDay string) ([]entities.FibScore, error) {
	var scores []entities.FibScore
	result := repo.db.GetDB().
		Where("run_day = ?", runDay).
		Order("rank asc").
		Find(&scores)

	return scores, result.Error
}

func (repo *Impl) TopForRun(runDay string, limit int) ([]entities.FibScore, error) {
	var scores []entities.FibScore
	result := repo.db.GetDB().
		Where("run_day = ?", runDay).
		Order("rank asc").
		Limit(limit).
		Find(&scores)

	return scores, result.Error
}

func (repo *Impl) LatestRunDay() (string, error) {
	var runDay string
	result := repo.db.GetDB().
		Model(&entities.FibScore{}).
		Select("run_day").
		Order("run_day desc").
		Limit(1).
		Scan(&runDay)

	return runDay, result.Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.FibScore{}).Count(count)

	return *count
}

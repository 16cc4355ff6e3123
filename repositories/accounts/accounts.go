package accounts

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

func (repo *Impl) SaveOrUpdate(account entities.Account) error {
	var existing entities.Account

	result := repo.db.GetDB().Where("user_id = ?", account.UserID).First(&existing)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := repo.db.GetDB().Create(&account).Error; err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}
		} else {
			return fmt.Errorf("failed to check account existence: %w", result.Error)
		}
	} else {
		if err := repo.db.GetDB().Model(&existing).Updates(account).Error; err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
	}

	return nil
}

func (repo *Impl) SaveError(accountError entities.AccountError) error {
	return repo.db.GetDB().Save(&accountError).Error
}

func (repo *Impl) FetchByUserIDs(userIDs []string) ([]entities.Account, error) {
	var accounts []entities.Account
	result := repo.db.GetDB().Where("user_id IN ?", userIDs).Find(&accounts)

	return accounts, result.Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.Account{}).Count(count)

	return *count
}

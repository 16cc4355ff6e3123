package accounts

import (
	"superspreader-analytics/models/entities"
	"superspreader-analytics/utils/databases"
)

type Repository interface {
	SaveOrUpdate(account entities.Account) error
	SaveError(accountError entities.AccountError) error
	FetchByUserIDs(userIDs []string) ([]entities.Account, error)
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}

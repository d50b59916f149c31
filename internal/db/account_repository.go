package db

import (
	"github.com/terraincognita07/periodcalendar/internal/models"
	"gorm.io/gorm"
)

type AccountRepository struct {
	database *gorm.DB
}

func NewAccountRepository(database *gorm.DB) *AccountRepository {
	return &AccountRepository{database: database}
}

func (repo *AccountRepository) Find() (models.Account, bool, error) {
	account := models.Account{}
	result := repo.database.Where("id = ?", models.AccountRowID).Limit(1).Find(&account)
	if result.Error != nil {
		return models.Account{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Account{}, false, nil
	}
	return account, true, nil
}

func (repo *AccountRepository) Save(account *models.Account) error {
	account.ID = models.AccountRowID
	return repo.database.Save(account).Error
}

package db

import "gorm.io/gorm"

type Repositories struct {
	database *gorm.DB

	Entries  *CycleEntryRepository
	Settings *SettingsRepository
	Accounts *AccountRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		database: database,
		Entries:  NewCycleEntryRepository(database),
		Settings: NewSettingsRepository(database),
		Accounts: NewAccountRepository(database),
	}
}

func (repos *Repositories) Database() *gorm.DB {
	return repos.database
}

package services

import (
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
)

type PeriodHistoryRepository interface {
	ListPeriodDays() ([]models.CycleEntry, error)
}

type CycleEntryRepository interface {
	PeriodHistoryRepository
	List() ([]models.CycleEntry, error)
	ListRange(from *time.Time, to *time.Time) ([]models.CycleEntry, error)
	FindByDate(dayStart time.Time) (models.CycleEntry, bool, error)
	Upsert(entry *models.CycleEntry) error
	DeleteByDate(dayStart time.Time) (bool, error)
	DeleteAll() error
}

type SettingsRepository interface {
	Load() (models.UserSettings, error)
	Save(settings *models.UserSettings) error
}

type AccountRepository interface {
	Find() (models.Account, bool, error)
	Save(account *models.Account) error
}

package db

import (
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"gorm.io/gorm"
)

type CycleEntryRepository struct {
	database *gorm.DB
}

func NewCycleEntryRepository(database *gorm.DB) *CycleEntryRepository {
	return &CycleEntryRepository{database: database}
}

func (repo *CycleEntryRepository) List() ([]models.CycleEntry, error) {
	entries := make([]models.CycleEntry, 0)
	if err := repo.database.Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListRange returns entries in [from, to). A nil bound is open.
func (repo *CycleEntryRepository) ListRange(from *time.Time, to *time.Time) ([]models.CycleEntry, error) {
	query := repo.database.Model(&models.CycleEntry{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date < ?", *to)
	}

	entries := make([]models.CycleEntry, 0)
	if err := query.Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *CycleEntryRepository) ListPeriodDays() ([]models.CycleEntry, error) {
	entries := make([]models.CycleEntry, 0)
	if err := repo.database.
		Select("id", "date", "is_period").
		Where("is_period = ?", true).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByDate looks up the entry stored for the calendar day starting at dayStart.
func (repo *CycleEntryRepository) FindByDate(dayStart time.Time) (models.CycleEntry, bool, error) {
	entry := models.CycleEntry{}
	result := repo.database.
		Where("date >= ? AND date < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.CycleEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleEntry{}, false, nil
	}
	return entry, true, nil
}

// Upsert stores entry as the only entry of its calendar day.
func (repo *CycleEntryRepository) Upsert(entry *models.CycleEntry) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		existing := models.CycleEntry{}
		result := tx.
			Where("date >= ? AND date < ?", entry.Date, entry.Date.AddDate(0, 0, 1)).
			Limit(1).
			Find(&existing)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return tx.Create(entry).Error
		}

		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		return tx.Save(entry).Error
	})
}

func (repo *CycleEntryRepository) DeleteByDate(dayStart time.Time) (bool, error) {
	result := repo.database.
		Where("date >= ? AND date < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Delete(&models.CycleEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *CycleEntryRepository) DeleteAll() error {
	return repo.database.Where("1 = 1").Delete(&models.CycleEntry{}).Error
}

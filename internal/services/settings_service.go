package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/periodcalendar/internal/models"
)

var ErrInvalidSettings = errors.New("invalid settings")

// SettingsUpdate changes only the fields that are set.
type SettingsUpdate struct {
	AvgCycleLength     *int    `json:"avg_cycle_length"`
	PeriodDuration     *int    `json:"period_duration"`
	NotifBeforePeriod  *int    `json:"notif_before_period"`
	NotifOvulation     *bool   `json:"notif_ovulation"`
	NotifFertileWindow *bool   `json:"notif_fertile_window"`
	ThemeMode          *string `json:"theme_mode"`
}

func (update SettingsUpdate) Empty() bool {
	return update.AvgCycleLength == nil &&
		update.PeriodDuration == nil &&
		update.NotifBeforePeriod == nil &&
		update.NotifOvulation == nil &&
		update.NotifFertileWindow == nil &&
		update.ThemeMode == nil
}

type SettingsService struct {
	settings SettingsRepository
}

func NewSettingsService(settings SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (service *SettingsService) Get() (models.UserSettings, error) {
	return service.settings.Load()
}

func (service *SettingsService) Update(update SettingsUpdate) (models.UserSettings, error) {
	settings, err := service.settings.Load()
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("load settings: %w", err)
	}

	applySettingsUpdate(&settings, update)
	if err := settings.Validate(); err != nil {
		return models.UserSettings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := service.settings.Save(&settings); err != nil {
		return models.UserSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

func applySettingsUpdate(settings *models.UserSettings, update SettingsUpdate) {
	if update.AvgCycleLength != nil {
		settings.AvgCycleLength = *update.AvgCycleLength
	}
	if update.PeriodDuration != nil {
		settings.PeriodDuration = *update.PeriodDuration
	}
	if update.NotifBeforePeriod != nil {
		settings.NotifBeforePeriod = *update.NotifBeforePeriod
	}
	if update.NotifOvulation != nil {
		settings.NotifOvulation = *update.NotifOvulation
	}
	if update.NotifFertileWindow != nil {
		settings.NotifFertileWindow = *update.NotifFertileWindow
	}
	if update.ThemeMode != nil {
		// Unknown values are kept verbatim so Validate rejects them.
		settings.ThemeMode = models.ThemeMode(*update.ThemeMode)
	}
}

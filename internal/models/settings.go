package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	SettingsRowID = 1

	DefaultCycleLength       = 28
	DefaultPeriodDuration    = 5
	DefaultNotifBeforePeriod = 1

	MinSettingsCycleLength = 15
	MaxSettingsCycleLength = 45
	MinPeriodDuration      = 1
	MaxPeriodDuration      = 10
	MaxNotifBeforePeriod   = 7
)

var ErrSettingsOutOfRange = errors.New("settings value out of range")

// UserSettings is the single settings row of the installation. Column
// defaults live in the migrations so that gorm writes zero values as given.
type UserSettings struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	AvgCycleLength     int       `gorm:"not null" json:"avg_cycle_length"`
	PeriodDuration     int       `gorm:"not null" json:"period_duration"`
	NotifBeforePeriod  int       `gorm:"not null" json:"notif_before_period"`
	NotifOvulation     bool      `gorm:"not null" json:"notif_ovulation"`
	NotifFertileWindow bool      `gorm:"not null" json:"notif_fertile_window"`
	ThemeMode          ThemeMode `gorm:"not null" json:"theme_mode"`
	UpdatedAt          time.Time `json:"-"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

func DefaultUserSettings() UserSettings {
	return UserSettings{
		ID:                 SettingsRowID,
		AvgCycleLength:     DefaultCycleLength,
		PeriodDuration:     DefaultPeriodDuration,
		NotifBeforePeriod:  DefaultNotifBeforePeriod,
		NotifOvulation:     true,
		NotifFertileWindow: true,
		ThemeMode:          ThemeSystem,
	}
}

func (settings UserSettings) Validate() error {
	if settings.AvgCycleLength < MinSettingsCycleLength || settings.AvgCycleLength > MaxSettingsCycleLength {
		return fmt.Errorf("%w: average cycle length must be between %d and %d days",
			ErrSettingsOutOfRange, MinSettingsCycleLength, MaxSettingsCycleLength)
	}
	if settings.PeriodDuration < MinPeriodDuration || settings.PeriodDuration > MaxPeriodDuration {
		return fmt.Errorf("%w: period duration must be between %d and %d days",
			ErrSettingsOutOfRange, MinPeriodDuration, MaxPeriodDuration)
	}
	if settings.NotifBeforePeriod < 0 || settings.NotifBeforePeriod > MaxNotifBeforePeriod {
		return fmt.Errorf("%w: period reminder must be between 0 and %d days ahead",
			ErrSettingsOutOfRange, MaxNotifBeforePeriod)
	}
	if !settings.ThemeMode.Valid() {
		return fmt.Errorf("%w: unknown theme mode %q", ErrSettingsOutOfRange, settings.ThemeMode)
	}
	return nil
}

// PeriodNotificationDate is the day the period reminder fires for nextPeriodDate.
func (settings UserSettings) PeriodNotificationDate(nextPeriodDate time.Time) time.Time {
	return nextPeriodDate.AddDate(0, 0, -settings.NotifBeforePeriod)
}

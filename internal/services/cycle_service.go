package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
)

type CycleService struct {
	entries      PeriodHistoryRepository
	settings     SettingsRepository
	recentWeight float64
}

// CycleLengthSuggestion compares the configured average with the value
// blended from logged history.
type CycleLengthSuggestion struct {
	Current    int  `json:"current"`
	Suggested  int  `json:"suggested"`
	HasHistory bool `json:"has_history"`
}

func (suggestion CycleLengthSuggestion) Changed() bool {
	return suggestion.Suggested != suggestion.Current
}

// DayCheck reports where a single date falls in the predicted cycle.
type DayCheck struct {
	Date            time.Time
	HasHistory      bool
	InFertileWindow bool
	IsOvulationDay  bool
}

func NewCycleService(entries PeriodHistoryRepository, settings SettingsRepository, recentWeight float64) *CycleService {
	if recentWeight < 0 || recentWeight > 1 {
		recentWeight = prediction.DefaultRecentCycleWeight
	}
	return &CycleService{
		entries:      entries,
		settings:     settings,
		recentWeight: recentWeight,
	}
}

func (service *CycleService) loadHistory() ([]prediction.Entry, models.UserSettings, error) {
	periodDays, err := service.entries.ListPeriodDays()
	if err != nil {
		return nil, models.UserSettings{}, fmt.Errorf("load period days: %w", err)
	}
	settings, err := service.settings.Load()
	if err != nil {
		return nil, models.UserSettings{}, fmt.Errorf("load settings: %w", err)
	}
	return toPredictionEntries(periodDays), settings, nil
}

func (service *CycleService) Overview(today time.Time) (prediction.CycleSummary, error) {
	history, settings, err := service.loadHistory()
	if err != nil {
		return prediction.CycleSummary{}, err
	}
	return prediction.CreateCycleSummary(history, settings.AvgCycleLength, today)
}

// Predictions chains cycles predictions from the latest logged period.
func (service *CycleService) Predictions(today time.Time, cycles int) ([]prediction.CyclePrediction, error) {
	history, settings, err := service.loadHistory()
	if err != nil {
		return nil, err
	}
	return prediction.EnhancedPredictions(history, settings.AvgCycleLength, cycles, today)
}

func (service *CycleService) SuggestedCycleLength() (CycleLengthSuggestion, error) {
	history, settings, err := service.loadHistory()
	if err != nil {
		return CycleLengthSuggestion{}, err
	}
	_, hasHistory := prediction.AverageCycleLength(history)
	return CycleLengthSuggestion{
		Current:    settings.AvgCycleLength,
		Suggested:  prediction.SuggestUpdatedCycleLength(history, settings.AvgCycleLength, service.recentWeight),
		HasHistory: hasHistory,
	}, nil
}

// ApplySuggestedCycleLength stores the suggested average and returns the
// updated settings.
func (service *CycleService) ApplySuggestedCycleLength() (models.UserSettings, error) {
	history, settings, err := service.loadHistory()
	if err != nil {
		return models.UserSettings{}, err
	}

	settings.AvgCycleLength = prediction.SuggestUpdatedCycleLength(history, settings.AvgCycleLength, service.recentWeight)
	if err := settings.Validate(); err != nil {
		return models.UserSettings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := service.settings.Save(&settings); err != nil {
		return models.UserSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// Check classifies date against the next predicted cycle. Without any logged
// period both flags stay false.
func (service *CycleService) Check(date time.Time, today time.Time) (DayCheck, error) {
	history, settings, err := service.loadHistory()
	if err != nil {
		return DayCheck{}, err
	}

	check := DayCheck{Date: prediction.DateOnly(date)}
	lastPeriodDate, ok := prediction.LastPeriodStartDate(history)
	if !ok {
		return check, nil
	}
	check.HasHistory = true

	cycleLength := prediction.EffectiveCycleLength(history, settings.AvgCycleLength)
	check.InFertileWindow, err = prediction.IsInFertileWindow(date, lastPeriodDate, cycleLength, today)
	if err != nil {
		return DayCheck{}, err
	}
	check.IsOvulationDay, err = prediction.IsOvulationDay(date, lastPeriodDate, cycleLength, today)
	if err != nil {
		return DayCheck{}, err
	}
	return check, nil
}

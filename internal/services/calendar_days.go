package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
)

const MonthLayout = "2006-01"

type CalendarDayState struct {
	Date        time.Time
	Day         int
	InMonth     bool
	IsToday     bool
	IsPeriod    bool
	IsPredicted bool
	IsFertility bool
	IsOvulation bool
	HasData     bool
}

type CalendarMonth struct {
	Month time.Time
	Days  []CalendarDayState
}

type CalendarService struct {
	entries  CycleEntryRepository
	settings SettingsRepository
}

func NewCalendarService(entries CycleEntryRepository, settings SettingsRepository) *CalendarService {
	return &CalendarService{
		entries:  entries,
		settings: settings,
	}
}

// ParseMonth parses YYYY-MM into the first day of that month.
func ParseMonth(raw string) (time.Time, error) {
	parsed, err := time.Parse(MonthLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM month", ErrInvalidEntryDate, raw)
	}
	return prediction.Date(parsed.Year(), parsed.Month(), 1), nil
}

// CalendarGridRange returns the Sunday on or before the first of the month
// and the Saturday on or after its last day.
func CalendarGridRange(monthStart time.Time) (time.Time, time.Time) {
	monthStart = prediction.Date(monthStart.Year(), monthStart.Month(), 1)
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))
	return gridStart, gridEnd
}

func (service *CalendarService) Month(month time.Time, today time.Time) (CalendarMonth, error) {
	entries, err := service.entries.List()
	if err != nil {
		return CalendarMonth{}, fmt.Errorf("load entries: %w", err)
	}
	settings, err := service.settings.Load()
	if err != nil {
		return CalendarMonth{}, fmt.Errorf("load settings: %w", err)
	}

	monthStart := prediction.Date(month.Year(), month.Month(), 1)
	days, err := BuildCalendarDayStates(monthStart, entries, settings, today)
	if err != nil {
		return CalendarMonth{}, err
	}
	return CalendarMonth{Month: monthStart, Days: days}, nil
}

type calendarMarks struct {
	predicted map[string]bool
	fertility map[string]bool
	ovulation map[string]bool
	cycles    int
}

// predictCalendarMarks flags predicted period, fertile and ovulation days
// inside [gridStart, gridEnd]. Cycles that end before gridStart are skipped
// arithmetically, so far-away months cost the same as nearby ones.
func predictCalendarMarks(lastPeriodDate time.Time, cycleLength int, periodDuration int, gridStart time.Time, gridEnd time.Time, today time.Time) (calendarMarks, error) {
	marks := calendarMarks{
		predicted: make(map[string]bool),
		fertility: make(map[string]bool),
		ovulation: make(map[string]bool),
	}
	if err := prediction.ValidateCycleLength(cycleLength); err != nil {
		return marks, err
	}

	mark := func(set map[string]bool, day time.Time) {
		if prediction.BetweenInclusive(day, gridStart, gridEnd) {
			set[FormatDay(day)] = true
		}
	}

	cycleStart := prediction.DateOnly(lastPeriodDate)
	// A skipped cycle's last predicted period day is cycleStart+periodDuration-1.
	if gap := prediction.DaysBetween(cycleStart, gridStart) - periodDuration; gap > 0 {
		cycleStart = prediction.AddDays(cycleStart, gap/cycleLength*cycleLength)
	}

	for {
		next, err := prediction.PredictCycle(cycleStart, cycleLength, today)
		if err != nil {
			return marks, err
		}
		if next.FertileWindowStart.After(gridEnd) {
			break
		}
		marks.cycles++

		for offset := 0; offset < periodDuration; offset++ {
			mark(marks.predicted, prediction.AddDays(next.NextPeriodDate, offset))
		}
		for day := next.FertileWindowStart; !day.After(next.FertileWindowEnd); day = prediction.AddDays(day, 1) {
			mark(marks.fertility, day)
		}
		mark(marks.ovulation, next.OvulationDate)

		cycleStart = next.NextPeriodDate
	}
	return marks, nil
}

// BuildCalendarDayStates lays out the month grid. Predicted cycles are
// chained from the latest logged period until they pass the grid end.
func BuildCalendarDayStates(monthStart time.Time, entries []models.CycleEntry, settings models.UserSettings, today time.Time) ([]CalendarDayState, error) {
	gridStart, gridEnd := CalendarGridRange(monthStart)

	entryByDate := make(map[string]models.CycleEntry, len(entries))
	for _, entry := range entries {
		entryByDate[FormatDay(prediction.DateOnly(entry.Date))] = entry
	}

	var marks calendarMarks
	history := toPredictionEntries(entries)
	if lastPeriodDate, ok := prediction.LastPeriodStartDate(history); ok {
		cycleLength := prediction.EffectiveCycleLength(history, settings.AvgCycleLength)
		periodDuration := settings.PeriodDuration
		if periodDuration < models.MinPeriodDuration {
			periodDuration = models.DefaultPeriodDuration
		}

		var err error
		marks, err = predictCalendarMarks(lastPeriodDate, cycleLength, periodDuration, gridStart, gridEnd, today)
		if err != nil {
			return nil, err
		}
	}

	todayKey := FormatDay(prediction.DateOnly(today))

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := FormatDay(day)
		entry, hasEntry := entryByDate[key]
		days = append(days, CalendarDayState{
			Date:        day,
			Day:         day.Day(),
			InMonth:     day.Month() == monthStart.Month(),
			IsToday:     key == todayKey,
			IsPeriod:    hasEntry && entry.IsPeriod,
			IsPredicted: marks.predicted[key],
			IsFertility: marks.fertility[key],
			IsOvulation: marks.ovulation[key],
			HasData:     hasEntry && entry.HasData(),
		})
	}
	return days, nil
}

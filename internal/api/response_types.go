package api

import (
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

// Dates leave the API as YYYY-MM-DD strings. Unknown dates are null.

type predictionResponse struct {
	NextPeriodDate      string `json:"next_period_date"`
	OvulationDate       string `json:"ovulation_date"`
	FertileWindowStart  string `json:"fertile_window_start"`
	FertileWindowEnd    string `json:"fertile_window_end"`
	FertileWindowLength int    `json:"fertile_window_length"`
	DaysUntilNextPeriod int    `json:"days_until_next_period"`
	DaysUntilOvulation  int    `json:"days_until_ovulation"`
}

type summaryResponse struct {
	LastPeriodDate     *string             `json:"last_period_date"`
	CurrentCycleDay    *int                `json:"current_cycle_day"`
	NextPrediction     *predictionResponse `json:"next_prediction"`
	AverageCycleLength int                 `json:"average_cycle_length"`
	ActualCycleLengths []int               `json:"actual_cycle_lengths"`
	IsRegular          bool                `json:"is_regular"`
}

type entryResponse struct {
	Date      string `json:"date"`
	IsPeriod  bool   `json:"is_period"`
	FlowLevel string `json:"flow_level"`
	Mood      string `json:"mood"`
	Cramps    string `json:"cramps"`
	Notes     string `json:"notes"`
}

type dayCheckResponse struct {
	Date            string `json:"date"`
	HasHistory      bool   `json:"has_history"`
	InFertileWindow bool   `json:"in_fertile_window"`
	IsOvulationDay  bool   `json:"is_ovulation_day"`
}

type calendarDayResponse struct {
	Date        string `json:"date"`
	Day         int    `json:"day"`
	InMonth     bool   `json:"in_month"`
	IsToday     bool   `json:"is_today"`
	IsPeriod    bool   `json:"is_period"`
	IsPredicted bool   `json:"is_predicted"`
	IsFertility bool   `json:"is_fertility"`
	IsOvulation bool   `json:"is_ovulation"`
	HasData     bool   `json:"has_data"`
}

type calendarResponse struct {
	Month string                `json:"month"`
	Days  []calendarDayResponse `json:"days"`
}

type reminderResponse struct {
	Kind      string `json:"kind"`
	Date      string `json:"date"`
	DaysAhead int    `json:"days_ahead"`
	Title     string `json:"title"`
	Message   string `json:"message"`
}

type suggestionResponse struct {
	Current    int  `json:"current"`
	Suggested  int  `json:"suggested"`
	HasHistory bool `json:"has_history"`
	Changed    bool `json:"changed"`
}

type loginResponse struct {
	Token              string    `json:"token"`
	ExpiresAt          time.Time `json:"expires_at"`
	MustChangePassword bool      `json:"must_change_password"`
}

func optionalDay(value time.Time) *string {
	if value.IsZero() {
		return nil
	}
	formatted := services.FormatDay(value)
	return &formatted
}

func newPredictionResponse(value prediction.CyclePrediction) predictionResponse {
	return predictionResponse{
		NextPeriodDate:      services.FormatDay(value.NextPeriodDate),
		OvulationDate:       services.FormatDay(value.OvulationDate),
		FertileWindowStart:  services.FormatDay(value.FertileWindowStart),
		FertileWindowEnd:    services.FormatDay(value.FertileWindowEnd),
		FertileWindowLength: value.FertileWindowLength(),
		DaysUntilNextPeriod: value.DaysUntilNextPeriod,
		DaysUntilOvulation:  value.DaysUntilOvulation,
	}
}

func newPredictionResponses(values []prediction.CyclePrediction) []predictionResponse {
	result := make([]predictionResponse, 0, len(values))
	for _, value := range values {
		result = append(result, newPredictionResponse(value))
	}
	return result
}

func newSummaryResponse(summary prediction.CycleSummary) summaryResponse {
	response := summaryResponse{
		LastPeriodDate:     optionalDay(summary.LastPeriodDate),
		AverageCycleLength: summary.AverageCycleLength,
		ActualCycleLengths: summary.ActualCycleLengths,
		IsRegular:          summary.IsRegular,
	}
	if response.ActualCycleLengths == nil {
		response.ActualCycleLengths = []int{}
	}
	if summary.CurrentCycleDay > 0 {
		day := summary.CurrentCycleDay
		response.CurrentCycleDay = &day
	}
	if summary.NextPrediction != nil {
		next := newPredictionResponse(*summary.NextPrediction)
		response.NextPrediction = &next
	}
	return response
}

func newEntryResponse(entry models.CycleEntry) entryResponse {
	return entryResponse{
		Date:      services.FormatDay(entry.Date),
		IsPeriod:  entry.IsPeriod,
		FlowLevel: string(entry.FlowLevel),
		Mood:      string(entry.Mood),
		Cramps:    string(entry.Cramps),
		Notes:     entry.Notes,
	}
}

func newEntryResponses(entries []models.CycleEntry) []entryResponse {
	result := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, newEntryResponse(entry))
	}
	return result
}

func newCalendarResponse(month services.CalendarMonth) calendarResponse {
	days := make([]calendarDayResponse, 0, len(month.Days))
	for _, day := range month.Days {
		days = append(days, calendarDayResponse{
			Date:        services.FormatDay(day.Date),
			Day:         day.Day,
			InMonth:     day.InMonth,
			IsToday:     day.IsToday,
			IsPeriod:    day.IsPeriod,
			IsPredicted: day.IsPredicted,
			IsFertility: day.IsFertility,
			IsOvulation: day.IsOvulation,
			HasData:     day.HasData,
		})
	}
	return calendarResponse{Month: month.Month.Format(services.MonthLayout), Days: days}
}

func newReminderResponses(reminders []services.Reminder) []reminderResponse {
	result := make([]reminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		result = append(result, reminderResponse{
			Kind:      string(reminder.Kind),
			Date:      services.FormatDay(reminder.Date),
			DaysAhead: reminder.DaysAhead,
			Title:     reminder.Title,
			Message:   reminder.Message,
		})
	}
	return result
}

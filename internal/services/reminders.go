package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
)

type ReminderKind string

const (
	ReminderPeriod        ReminderKind = "period"
	ReminderFertileWindow ReminderKind = "fertile_window"
	ReminderOvulation     ReminderKind = "ovulation"
)

// Reminder is one notification planned for Date, DaysAhead days after the
// day it was planned on.
type Reminder struct {
	Kind      ReminderKind `json:"kind"`
	Date      time.Time    `json:"date"`
	DaysAhead int          `json:"days_ahead"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
}

func (reminder Reminder) Key() string {
	return string(reminder.Kind) + ":" + FormatDay(reminder.Date)
}

// PlanReminders returns the reminders enabled in settings for next, skipping
// those dated before today. A nil prediction plans nothing.
func PlanReminders(next *prediction.CyclePrediction, settings models.UserSettings, today time.Time) []Reminder {
	reminders := make([]Reminder, 0, 3)
	if next == nil {
		return reminders
	}
	today = prediction.DateOnly(today)

	if settings.NotifBeforePeriod > 0 {
		date := prediction.DateOnly(settings.PeriodNotificationDate(next.NextPeriodDate))
		if !date.Before(today) {
			reminders = append(reminders, Reminder{
				Kind:      ReminderPeriod,
				Date:      date,
				DaysAhead: prediction.DaysBetween(today, date),
				Title:     "Cycle Update",
				Message:   periodReminderMessage(settings.NotifBeforePeriod),
			})
		}
	}

	if settings.NotifFertileWindow && !next.FertileWindowStart.Before(today) {
		reminders = append(reminders, Reminder{
			Kind:      ReminderFertileWindow,
			Date:      next.FertileWindowStart,
			DaysAhead: prediction.DaysBetween(today, next.FertileWindowStart),
			Title:     "Fertility Tracker",
			Message:   "Fertile window starts today",
		})
	}

	if settings.NotifOvulation && !next.OvulationDate.Before(today) {
		reminders = append(reminders, Reminder{
			Kind:      ReminderOvulation,
			Date:      next.OvulationDate,
			DaysAhead: prediction.DaysBetween(today, next.OvulationDate),
			Title:     "Cycle Tracker",
			Message:   "Ovulation expected today",
		})
	}

	return reminders
}

func periodReminderMessage(daysUntil int) string {
	switch daysUntil {
	case 0:
		return "Your cycle is due today"
	case 1:
		return "Your cycle is due tomorrow"
	default:
		return fmt.Sprintf("Your cycle is due in %d days", daysUntil)
	}
}

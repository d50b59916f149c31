package services

import (
	"testing"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
)

func mustPredictCycle(t *testing.T, lastPeriod string, today string) *prediction.CyclePrediction {
	t.Helper()

	next, err := prediction.PredictCycle(mustParseDay(t, lastPeriod), 28, mustParseDay(t, today))
	if err != nil {
		t.Fatalf("predict cycle: %v", err)
	}
	return &next
}

func TestPlanRemindersAllEnabled(t *testing.T) {
	t.Parallel()

	today := mustParseDay(t, "2024-01-10")
	reminders := PlanReminders(mustPredictCycle(t, "2024-01-01", "2024-01-10"), models.DefaultUserSettings(), today)
	if len(reminders) != 3 {
		t.Fatalf("expected 3 reminders, got %d: %+v", len(reminders), reminders)
	}

	expected := []struct {
		kind      ReminderKind
		date      string
		daysAhead int
		message   string
	}{
		{kind: ReminderPeriod, date: "2024-01-28", daysAhead: 18, message: "Your cycle is due tomorrow"},
		{kind: ReminderFertileWindow, date: "2024-01-10", daysAhead: 0, message: "Fertile window starts today"},
		{kind: ReminderOvulation, date: "2024-01-15", daysAhead: 5, message: "Ovulation expected today"},
	}
	for index, want := range expected {
		got := reminders[index]
		if got.Kind != want.kind || FormatDay(got.Date) != want.date || got.DaysAhead != want.daysAhead || got.Message != want.message {
			t.Fatalf("reminder %d: expected %+v, got %+v", index, want, got)
		}
	}
}

func TestPlanRemindersRespectsSettingsAndSkipsPastDates(t *testing.T) {
	t.Parallel()

	settings := models.DefaultUserSettings()
	settings.NotifBeforePeriod = 3
	settings.NotifOvulation = false

	today := mustParseDay(t, "2024-01-12")
	reminders := PlanReminders(mustPredictCycle(t, "2024-01-01", "2024-01-12"), settings, today)
	if len(reminders) != 1 {
		t.Fatalf("expected only the period reminder, got %+v", reminders)
	}
	if reminders[0].Kind != ReminderPeriod || FormatDay(reminders[0].Date) != "2024-01-26" {
		t.Fatalf("unexpected reminder %+v", reminders[0])
	}
	if reminders[0].Message != "Your cycle is due in 3 days" {
		t.Fatalf("unexpected message %q", reminders[0].Message)
	}

	settings.NotifBeforePeriod = 0
	if reminders := PlanReminders(mustPredictCycle(t, "2024-01-01", "2024-01-12"), settings, today); len(reminders) != 0 {
		t.Fatalf("expected no reminders with period reminder disabled, got %+v", reminders)
	}
}

func TestPlanRemindersWithoutPrediction(t *testing.T) {
	t.Parallel()

	if reminders := PlanReminders(nil, models.DefaultUserSettings(), mustParseDay(t, "2024-01-12")); len(reminders) != 0 {
		t.Fatalf("expected no reminders without prediction, got %+v", reminders)
	}
}

func TestPeriodReminderMessage(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0: "Your cycle is due today",
		1: "Your cycle is due tomorrow",
		5: "Your cycle is due in 5 days",
	}
	for days, want := range cases {
		if got := periodReminderMessage(days); got != want {
			t.Fatalf("expected %q for %d days, got %q", want, days, got)
		}
	}
}

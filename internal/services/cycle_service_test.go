package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
)

func newCycleServiceFixture(t *testing.T, periodDays ...string) (*CycleService, *cycleEntryRepositoryStub, *settingsRepositoryStub) {
	t.Helper()

	entries := newCycleEntryRepositoryStub()
	entries.addPeriodDays(t, periodDays...)
	settings := newSettingsRepositoryStub()
	return NewCycleService(entries, settings, prediction.DefaultRecentCycleWeight), entries, settings
}

func TestCycleServiceOverviewUsesObservedAverage(t *testing.T) {
	t.Parallel()

	service, entries, _ := newCycleServiceFixture(t, "2024-01-01", "2024-01-29", "2024-02-28")
	nonPeriod := models.CycleEntry{Date: mustParseDay(t, "2024-02-10"), Mood: models.MoodCalm}
	if err := entries.Upsert(&nonPeriod); err != nil {
		t.Fatalf("seed non-period entry: %v", err)
	}

	summary, err := service.Overview(mustParseDay(t, "2024-03-05"))
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if summary.AverageCycleLength != 29 {
		t.Fatalf("expected observed average 29, got %d", summary.AverageCycleLength)
	}
	if FormatDay(summary.LastPeriodDate) != "2024-02-28" {
		t.Fatalf("expected last period 2024-02-28, got %s", FormatDay(summary.LastPeriodDate))
	}
	if summary.CurrentCycleDay != 7 {
		t.Fatalf("expected cycle day 7, got %d", summary.CurrentCycleDay)
	}
	if summary.NextPrediction == nil || FormatDay(summary.NextPrediction.NextPeriodDate) != "2024-03-28" {
		t.Fatalf("expected next period 2024-03-28, got %+v", summary.NextPrediction)
	}
	if !summary.IsRegular {
		t.Fatal("expected regular history")
	}
}

func TestCycleServiceOverviewWithoutHistory(t *testing.T) {
	t.Parallel()

	service, _, _ := newCycleServiceFixture(t)
	summary, err := service.Overview(mustParseDay(t, "2024-03-05"))
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if summary.HasLastPeriod() || summary.NextPrediction != nil || summary.CurrentCycleDay != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
	if summary.AverageCycleLength != models.DefaultCycleLength {
		t.Fatalf("expected configured average %d, got %d", models.DefaultCycleLength, summary.AverageCycleLength)
	}
}

func TestCycleServiceOverviewPropagatesRepositoryErrors(t *testing.T) {
	t.Parallel()

	service, entries, _ := newCycleServiceFixture(t)
	entries.listErr = errStubFailure
	if _, err := service.Overview(mustParseDay(t, "2024-03-05")); !errors.Is(err, errStubFailure) {
		t.Fatalf("expected stub failure, got %v", err)
	}
}

func TestCycleServicePredictions(t *testing.T) {
	t.Parallel()

	service, _, _ := newCycleServiceFixture(t, "2024-01-01")
	predictions, err := service.Predictions(mustParseDay(t, "2024-01-02"), 3)
	if err != nil {
		t.Fatalf("predictions: %v", err)
	}

	expected := []string{"2024-01-29", "2024-02-26", "2024-03-25"}
	if len(predictions) != len(expected) {
		t.Fatalf("expected %d predictions, got %d", len(expected), len(predictions))
	}
	for index, want := range expected {
		if got := FormatDay(predictions[index].NextPeriodDate); got != want {
			t.Fatalf("prediction %d: expected %s, got %s", index, want, got)
		}
	}

	if _, err := service.Predictions(mustParseDay(t, "2024-01-02"), 13); !errors.Is(err, prediction.ErrCycleCountOutOfRange) {
		t.Fatalf("expected cycle count error, got %v", err)
	}
}

func TestCycleServiceSuggestAndApplyCycleLength(t *testing.T) {
	t.Parallel()

	service, _, settings := newCycleServiceFixture(t, "2024-01-01", "2024-02-05", "2024-03-11")

	suggestion, err := service.SuggestedCycleLength()
	if err != nil {
		t.Fatalf("suggested cycle length: %v", err)
	}
	// 28*0.7 + 35*0.3 = 30.1
	if suggestion.Current != 28 || suggestion.Suggested != 30 || !suggestion.HasHistory || !suggestion.Changed() {
		t.Fatalf("unexpected suggestion %+v", suggestion)
	}

	updated, err := service.ApplySuggestedCycleLength()
	if err != nil {
		t.Fatalf("apply suggested cycle length: %v", err)
	}
	if updated.AvgCycleLength != 30 || settings.settings.AvgCycleLength != 30 || settings.saves != 1 {
		t.Fatalf("expected stored average 30, got %+v (saves %d)", settings.settings, settings.saves)
	}
}

func TestCycleServiceSuggestionWithoutHistoryKeepsCurrent(t *testing.T) {
	t.Parallel()

	service, _, _ := newCycleServiceFixture(t, "2024-01-01")
	suggestion, err := service.SuggestedCycleLength()
	if err != nil {
		t.Fatalf("suggested cycle length: %v", err)
	}
	if suggestion.HasHistory || suggestion.Changed() {
		t.Fatalf("expected unchanged suggestion without history, got %+v", suggestion)
	}
}

func TestCycleServiceCheck(t *testing.T) {
	t.Parallel()

	service, _, _ := newCycleServiceFixture(t, "2024-01-01")
	today := mustParseDay(t, "2024-01-02")

	cases := []struct {
		date      string
		fertile   bool
		ovulation bool
	}{
		{date: "2024-01-09", fertile: false, ovulation: false},
		{date: "2024-01-10", fertile: true, ovulation: false},
		{date: "2024-01-15", fertile: true, ovulation: true},
		{date: "2024-01-16", fertile: false, ovulation: false},
	}
	for _, tc := range cases {
		check, err := service.Check(mustParseDay(t, tc.date), today)
		if err != nil {
			t.Fatalf("check %s: %v", tc.date, err)
		}
		if !check.HasHistory || check.InFertileWindow != tc.fertile || check.IsOvulationDay != tc.ovulation {
			t.Fatalf("check %s: expected fertile=%v ovulation=%v, got %+v", tc.date, tc.fertile, tc.ovulation, check)
		}
	}

	empty, _, _ := newCycleServiceFixture(t)
	check, err := empty.Check(mustParseDay(t, "2024-01-15"), today)
	if err != nil {
		t.Fatalf("check without history: %v", err)
	}
	if check.HasHistory || check.InFertileWindow || check.IsOvulationDay {
		t.Fatalf("expected all flags false without history, got %+v", check)
	}
}

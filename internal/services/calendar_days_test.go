package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/periodcalendar/internal/models"
)

func findCalendarDayState(t *testing.T, days []CalendarDayState, date string) CalendarDayState {
	t.Helper()
	for _, day := range days {
		if FormatDay(day.Date) == date {
			return day
		}
	}
	t.Fatalf("calendar day %s not found", date)
	return CalendarDayState{}
}

func TestCalendarGridRange(t *testing.T) {
	t.Parallel()

	start, end := CalendarGridRange(mustParseDay(t, "2024-01-01"))
	if FormatDay(start) != "2023-12-31" || FormatDay(end) != "2024-02-03" {
		t.Fatalf("expected 2023-12-31..2024-02-03, got %s..%s", FormatDay(start), FormatDay(end))
	}

	start, end = CalendarGridRange(mustParseDay(t, "2026-02-14"))
	if FormatDay(start) != "2026-02-01" || FormatDay(end) != "2026-02-28" {
		t.Fatalf("expected 2026-02-01..2026-02-28, got %s..%s", FormatDay(start), FormatDay(end))
	}
}

func TestParseMonth(t *testing.T) {
	t.Parallel()

	month, err := ParseMonth("2024-02")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if FormatDay(month) != "2024-02-01" {
		t.Fatalf("expected 2024-02-01, got %s", FormatDay(month))
	}
	if _, err := ParseMonth("2024-2-1"); !errors.Is(err, ErrInvalidEntryDate) {
		t.Fatalf("expected invalid month error, got %v", err)
	}
}

func TestCalendarServiceMonthFlags(t *testing.T) {
	t.Parallel()

	entries := newCycleEntryRepositoryStub()
	entries.addPeriodDays(t, "2024-01-01")
	notesOnly := models.CycleEntry{Date: mustParseDay(t, "2024-01-05"), FlowLevel: models.FlowNone, Cramps: models.CrampsNone, Notes: "headache"}
	if err := entries.Upsert(&notesOnly); err != nil {
		t.Fatalf("seed notes entry: %v", err)
	}
	service := NewCalendarService(entries, newSettingsRepositoryStub())

	month, err := service.Month(mustParseDay(t, "2024-01-20"), mustParseDay(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if FormatDay(month.Month) != "2024-01-01" {
		t.Fatalf("expected month start 2024-01-01, got %s", FormatDay(month.Month))
	}
	if len(month.Days) != 35 {
		t.Fatalf("expected 35 grid days, got %d", len(month.Days))
	}

	if day := findCalendarDayState(t, month.Days, "2023-12-31"); day.InMonth {
		t.Fatal("expected leading Sunday to be outside the month")
	}
	if day := findCalendarDayState(t, month.Days, "2024-01-01"); !day.IsPeriod || !day.HasData || !day.InMonth {
		t.Fatalf("expected logged period day, got %+v", day)
	}
	if day := findCalendarDayState(t, month.Days, "2024-01-05"); day.IsPeriod || !day.HasData {
		t.Fatalf("expected notes-only day with data, got %+v", day)
	}
	if day := findCalendarDayState(t, month.Days, "2024-01-09"); day.IsFertility {
		t.Fatal("expected 2024-01-09 outside the fertile window")
	}
	if day := findCalendarDayState(t, month.Days, "2024-01-10"); !day.IsToday || !day.IsFertility || day.IsOvulation {
		t.Fatalf("expected today at fertile window start, got %+v", day)
	}
	if day := findCalendarDayState(t, month.Days, "2024-01-15"); !day.IsOvulation || !day.IsFertility {
		t.Fatalf("expected ovulation inside fertile window, got %+v", day)
	}
	for _, date := range []string{"2024-01-29", "2024-02-02"} {
		if day := findCalendarDayState(t, month.Days, date); !day.IsPredicted {
			t.Fatalf("expected %s to be a predicted period day", date)
		}
	}
	if day := findCalendarDayState(t, month.Days, "2024-02-03"); day.IsPredicted {
		t.Fatal("expected predicted period to last five days")
	}
}

func TestCalendarServiceChainsCyclesIntoLaterMonths(t *testing.T) {
	t.Parallel()

	entries := newCycleEntryRepositoryStub()
	entries.addPeriodDays(t, "2024-01-01")
	service := NewCalendarService(entries, newSettingsRepositoryStub())

	month, err := service.Month(mustParseDay(t, "2024-03-01"), mustParseDay(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	// 2024-01-01 + 2*28 = 2024-02-26, + 28 = 2024-03-25
	if day := findCalendarDayState(t, month.Days, "2024-03-25"); !day.IsPredicted {
		t.Fatal("expected third predicted period on 2024-03-25")
	}
	if day := findCalendarDayState(t, month.Days, "2024-03-11"); !day.IsOvulation {
		t.Fatal("expected ovulation on 2024-03-11")
	}
}

func TestCalendarServiceWithoutHistoryHasNoPredictions(t *testing.T) {
	t.Parallel()

	service := NewCalendarService(newCycleEntryRepositoryStub(), newSettingsRepositoryStub())
	month, err := service.Month(mustParseDay(t, "2024-01-01"), mustParseDay(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	for _, day := range month.Days {
		if day.IsPredicted || day.IsFertility || day.IsOvulation || day.IsPeriod {
			t.Fatalf("expected no flags without history, got %+v", day)
		}
	}
}

func TestPredictCalendarMarksSkipsCyclesBeforeGrid(t *testing.T) {
	t.Parallel()

	gridStart, gridEnd := CalendarGridRange(mustParseDay(t, "9999-06-01"))
	marks, err := predictCalendarMarks(mustParseDay(t, "2024-01-01"), 15, 10, gridStart, gridEnd, mustParseDay(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("predict marks: %v", err)
	}
	if marks.cycles > 5 {
		t.Fatalf("expected only cycles overlapping the grid to be walked, got %d", marks.cycles)
	}
	if len(marks.predicted) != 25 || len(marks.fertility) != 12 || len(marks.ovulation) != 2 {
		t.Fatalf("unexpected mark counts: predicted=%d fertility=%d ovulation=%d",
			len(marks.predicted), len(marks.fertility), len(marks.ovulation))
	}
	// period predicted on 9999-05-27 still spills into the grid
	for _, day := range []string{"9999-05-30", "9999-06-05", "9999-06-11", "9999-07-03"} {
		if !marks.predicted[day] {
			t.Fatalf("expected %s to be a predicted period day", day)
		}
	}
	if !marks.ovulation["9999-06-12"] || !marks.ovulation["9999-06-27"] {
		t.Fatalf("unexpected ovulation days %v", marks.ovulation)
	}
}

func TestBuildCalendarDayStatesLastSupportedMonth(t *testing.T) {
	t.Parallel()

	entries := []models.CycleEntry{{Date: mustParseDay(t, "2024-01-01"), IsPeriod: true}}
	settings := models.DefaultUserSettings()
	days, err := BuildCalendarDayStates(mustParseDay(t, "9999-12-01"), entries, settings, mustParseDay(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("build calendar: %v", err)
	}
	if len(days) != 35 {
		t.Fatalf("expected 35 grid days, got %d", len(days))
	}
	predicted := 0
	for _, day := range days {
		if day.IsPredicted {
			predicted++
		}
	}
	if predicted == 0 {
		t.Fatal("expected predicted periods in the far-future month")
	}
}

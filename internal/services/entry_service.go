package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
)

const MaxEntryNotesLength = 2000

var (
	ErrFutureEntryDate = errors.New("entry date is in the future")
	ErrInvalidEntry    = errors.New("invalid entry")
)

// EntryInput is a day log as received from the API, the CLI or a CSV row.
// Empty level fields mean "not specified".
type EntryInput struct {
	Date      string `json:"date"`
	IsPeriod  bool   `json:"is_period"`
	FlowLevel string `json:"flow_level"`
	Mood      string `json:"mood"`
	Cramps    string `json:"cramps"`
	Notes     string `json:"notes"`
}

type EntryService struct {
	entries CycleEntryRepository
}

func NewEntryService(entries CycleEntryRepository) *EntryService {
	return &EntryService{entries: entries}
}

// NormalizeEntryInput validates input and converts it to a storable entry.
// Flow is forced to none on non-period days.
func NormalizeEntryInput(input EntryInput) (models.CycleEntry, error) {
	day, err := ParseDay(input.Date)
	if err != nil {
		return models.CycleEntry{}, err
	}

	flow := models.FlowNone
	if raw := strings.TrimSpace(input.FlowLevel); raw != "" {
		flow = models.FlowLevel(strings.ToLower(raw))
		if !flow.Valid() {
			return models.CycleEntry{}, fmt.Errorf("%w: unknown flow level %q", ErrInvalidEntry, input.FlowLevel)
		}
	}
	if !input.IsPeriod {
		flow = models.FlowNone
	}

	mood := models.Mood(strings.ToLower(strings.TrimSpace(input.Mood)))
	if !mood.Valid() {
		return models.CycleEntry{}, fmt.Errorf("%w: unknown mood %q", ErrInvalidEntry, input.Mood)
	}

	cramps := models.CrampsNone
	if raw := strings.TrimSpace(input.Cramps); raw != "" {
		cramps = models.CrampsLevel(strings.ToLower(raw))
		if !cramps.Valid() {
			return models.CycleEntry{}, fmt.Errorf("%w: unknown cramps level %q", ErrInvalidEntry, input.Cramps)
		}
	}

	return models.CycleEntry{
		Date:      day,
		IsPeriod:  input.IsPeriod,
		FlowLevel: flow,
		Mood:      mood,
		Cramps:    cramps,
		Notes:     TrimEntryNotes(input.Notes),
	}, nil
}

func TrimEntryNotes(value string) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= MaxEntryNotesLength {
		return value
	}
	return string(runes[:MaxEntryNotesLength])
}

// Upsert stores input as the entry of its day, replacing any earlier one.
func (service *EntryService) Upsert(input EntryInput, today time.Time) (models.CycleEntry, error) {
	entry, err := NormalizeEntryInput(input)
	if err != nil {
		return models.CycleEntry{}, err
	}
	if entry.Date.After(prediction.DateOnly(today)) {
		return models.CycleEntry{}, fmt.Errorf("%w: %s", ErrFutureEntryDate, FormatDay(entry.Date))
	}
	if err := service.entries.Upsert(&entry); err != nil {
		return models.CycleEntry{}, fmt.Errorf("store entry: %w", err)
	}
	return entry, nil
}

func (service *EntryService) Get(rawDate string) (models.CycleEntry, bool, error) {
	day, err := ParseDay(rawDate)
	if err != nil {
		return models.CycleEntry{}, false, err
	}
	return service.entries.FindByDate(day)
}

// Delete removes the entry of rawDate and reports whether one existed.
func (service *EntryService) Delete(rawDate string) (bool, error) {
	day, err := ParseDay(rawDate)
	if err != nil {
		return false, err
	}
	return service.entries.DeleteByDate(day)
}

// List returns entries with from <= date <= to; nil bounds are open.
func (service *EntryService) List(from *time.Time, to *time.Time) ([]models.CycleEntry, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: range start %s is after end %s", ErrInvalidEntryDate, FormatDay(*from), FormatDay(*to))
	}

	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start := prediction.DateOnly(*from)
		fromStart = &start
	}
	if to != nil {
		end := prediction.AddDays(*to, 1)
		toEnd = &end
	}
	return service.entries.ListRange(fromStart, toEnd)
}

func (service *EntryService) DeleteAll() error {
	return service.entries.DeleteAll()
}

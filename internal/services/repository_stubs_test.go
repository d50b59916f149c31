package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
)

var errStubFailure = errors.New("stub failure")

type cycleEntryRepositoryStub struct {
	entries map[string]models.CycleEntry
	nextID  uint
	listErr error
}

func newCycleEntryRepositoryStub() *cycleEntryRepositoryStub {
	return &cycleEntryRepositoryStub{
		entries: make(map[string]models.CycleEntry),
		nextID:  1,
	}
}

func (stub *cycleEntryRepositoryStub) sorted(keep func(models.CycleEntry) bool) []models.CycleEntry {
	entries := make([]models.CycleEntry, 0, len(stub.entries))
	for _, entry := range stub.entries {
		if keep(entry) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}

func (stub *cycleEntryRepositoryStub) List() ([]models.CycleEntry, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	return stub.sorted(func(models.CycleEntry) bool { return true }), nil
}

func (stub *cycleEntryRepositoryStub) ListRange(from *time.Time, to *time.Time) ([]models.CycleEntry, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	return stub.sorted(func(entry models.CycleEntry) bool {
		if from != nil && entry.Date.Before(*from) {
			return false
		}
		return to == nil || entry.Date.Before(*to)
	}), nil
}

func (stub *cycleEntryRepositoryStub) ListPeriodDays() ([]models.CycleEntry, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	return stub.sorted(func(entry models.CycleEntry) bool { return entry.IsPeriod }), nil
}

func (stub *cycleEntryRepositoryStub) FindByDate(dayStart time.Time) (models.CycleEntry, bool, error) {
	entry, ok := stub.entries[FormatDay(dayStart)]
	return entry, ok, nil
}

func (stub *cycleEntryRepositoryStub) Upsert(entry *models.CycleEntry) error {
	key := FormatDay(entry.Date)
	if existing, ok := stub.entries[key]; ok {
		entry.ID = existing.ID
	} else {
		entry.ID = stub.nextID
		stub.nextID++
	}
	stub.entries[key] = *entry
	return nil
}

func (stub *cycleEntryRepositoryStub) DeleteByDate(dayStart time.Time) (bool, error) {
	key := FormatDay(dayStart)
	if _, ok := stub.entries[key]; !ok {
		return false, nil
	}
	delete(stub.entries, key)
	return true, nil
}

func (stub *cycleEntryRepositoryStub) DeleteAll() error {
	stub.entries = make(map[string]models.CycleEntry)
	return nil
}

func (stub *cycleEntryRepositoryStub) addPeriodDays(t *testing.T, days ...string) {
	t.Helper()
	for _, raw := range days {
		entry := models.CycleEntry{
			Date:      mustParseDay(t, raw),
			IsPeriod:  true,
			FlowLevel: models.FlowMedium,
			Cramps:    models.CrampsNone,
		}
		if err := stub.Upsert(&entry); err != nil {
			t.Fatalf("seed %s: %v", raw, err)
		}
	}
}

type settingsRepositoryStub struct {
	settings models.UserSettings
	saves    int
	loadErr  error
}

func newSettingsRepositoryStub() *settingsRepositoryStub {
	return &settingsRepositoryStub{settings: models.DefaultUserSettings()}
}

func (stub *settingsRepositoryStub) Load() (models.UserSettings, error) {
	if stub.loadErr != nil {
		return models.UserSettings{}, stub.loadErr
	}
	return stub.settings, nil
}

func (stub *settingsRepositoryStub) Save(settings *models.UserSettings) error {
	settings.ID = models.SettingsRowID
	stub.settings = *settings
	stub.saves++
	return nil
}

type accountRepositoryStub struct {
	account *models.Account
}

func (stub *accountRepositoryStub) Find() (models.Account, bool, error) {
	if stub.account == nil {
		return models.Account{}, false, nil
	}
	return *stub.account, true, nil
}

func (stub *accountRepositoryStub) Save(account *models.Account) error {
	account.ID = models.AccountRowID
	stored := *account
	stub.account = &stored
	return nil
}

type reminderSenderStub struct {
	mu   sync.Mutex
	sent []Reminder
	err  error
}

func (stub *reminderSenderStub) Send(_ context.Context, reminder Reminder) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.err != nil {
		return stub.err
	}
	stub.sent = append(stub.sent, reminder)
	return nil
}

func (stub *reminderSenderStub) count() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return len(stub.sent)
}

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()

	day, err := ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}

func intPtr(value int) *int {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}

func stringPtr(value string) *string {
	return &value
}

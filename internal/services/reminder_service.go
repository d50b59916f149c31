package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
)

const maxSentReminderKeys = 500

// ReminderSender delivers a reminder to the user.
type ReminderSender interface {
	Send(ctx context.Context, reminder Reminder) error
}

type ReminderService struct {
	entries  PeriodHistoryRepository
	settings SettingsRepository
	sender   ReminderSender
	location *time.Location
	log      *logrus.Logger

	mu   sync.Mutex
	sent map[string]struct{}
}

func NewReminderService(entries PeriodHistoryRepository, settings SettingsRepository, sender ReminderSender, location *time.Location, log *logrus.Logger) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ReminderService{
		entries:  entries,
		settings: settings,
		sender:   sender,
		location: location,
		log:      log,
		sent:     make(map[string]struct{}),
	}
}

// Upcoming plans the reminders of the next predicted cycle as of today.
func (service *ReminderService) Upcoming(today time.Time) ([]Reminder, error) {
	periodDays, err := service.entries.ListPeriodDays()
	if err != nil {
		return nil, fmt.Errorf("load period days: %w", err)
	}
	settings, err := service.settings.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	summary, err := prediction.CreateCycleSummary(toPredictionEntries(periodDays), settings.AvgCycleLength, today)
	if err != nil {
		return nil, err
	}
	return PlanReminders(summary.NextPrediction, settings, today), nil
}

// Run sends the reminders due on the local date of now. Each kind+date pair
// is sent at most once per process; delivery failures are logged and retried
// on the next run.
func (service *ReminderService) Run(ctx context.Context, now time.Time) error {
	today := DateAtLocation(now, service.location)
	reminders, err := service.Upcoming(today)
	if err != nil {
		return err
	}

	for _, reminder := range reminders {
		if reminder.DaysAhead != 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !service.markSending(reminder.Key()) {
			continue
		}

		entry := service.log.WithFields(logrus.Fields{
			"kind": reminder.Kind,
			"date": FormatDay(reminder.Date),
		})
		if err := service.sender.Send(ctx, reminder); err != nil {
			service.unmark(reminder.Key())
			entry.WithError(err).Error("reminder delivery failed")
			continue
		}
		entry.Info("reminder sent")
	}
	return nil
}

func (service *ReminderService) markSending(key string) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if _, ok := service.sent[key]; ok {
		return false
	}
	if len(service.sent) >= maxSentReminderKeys {
		service.sent = make(map[string]struct{})
	}
	service.sent[key] = struct{}{}
	return true
}

func (service *ReminderService) unmark(key string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.sent, key)
}

package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/periodcalendar/internal/db"
	"github.com/terraincognita07/periodcalendar/internal/notify"
	"github.com/terraincognita07/periodcalendar/internal/services"
	"gorm.io/gorm"
)

// NewHandler wires repositories and services over database.
func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if len(options.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	options = options.withDefaults()

	handler := &Handler{
		location:      options.Location,
		log:           options.Log,
		defaultCycles: options.DefaultCycles,
		cookieSecure:  options.CookieSecure,
		loginLimiter:  newAttemptLimiter(loginAttemptBurst, loginAttemptRefill),
		now:           time.Now,
	}
	return handler.withDependencies(database, options), nil
}

func (handler *Handler) withDependencies(database *gorm.DB, options Options) *Handler {
	handler.repositories = db.NewRepositories(database)
	repos := handler.repositories

	sender := options.Sender
	if sender == nil {
		sender = notify.NewLogSender(options.Log)
	}

	handler.authService = services.NewAuthService(repos.Accounts, options.SecretKey, options.TokenTTL)
	handler.cycleService = services.NewCycleService(repos.Entries, repos.Settings, options.RecentWeight)
	handler.entryService = services.NewEntryService(repos.Entries)
	handler.settingsService = services.NewSettingsService(repos.Settings)
	handler.calendarService = services.NewCalendarService(repos.Entries, repos.Settings)
	handler.reminderService = services.NewReminderService(repos.Entries, repos.Settings, sender, options.Location, options.Log)
	return handler
}

// Reminders exposes the reminder service so the scheduler shares its
// delivery state with the API.
func (handler *Handler) Reminders() *services.ReminderService {
	return handler.reminderService
}

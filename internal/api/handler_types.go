package api

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/periodcalendar/internal/db"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

type Handler struct {
	repositories    *db.Repositories
	authService     *services.AuthService
	cycleService    *services.CycleService
	entryService    *services.EntryService
	settingsService *services.SettingsService
	calendarService *services.CalendarService
	reminderService *services.ReminderService

	location      *time.Location
	log           *logrus.Logger
	defaultCycles int
	cookieSecure  bool
	loginLimiter  *attemptLimiter
	now           func() time.Time
}

// Options carries everything the handler needs besides the database.
type Options struct {
	SecretKey     []byte
	TokenTTL      time.Duration
	Location      *time.Location
	Log           *logrus.Logger
	DefaultCycles int
	RecentWeight  float64
	CookieSecure  bool
	Sender        services.ReminderSender
}

func (options Options) withDefaults() Options {
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Log == nil {
		options.Log = logrus.StandardLogger()
	}
	if options.DefaultCycles <= 0 {
		options.DefaultCycles = prediction.DefaultPredictedCycles
	}
	if options.TokenTTL <= 0 {
		options.TokenTTL = services.DefaultTokenTTL
	}
	return options
}

type credentialsInput struct {
	Password string `json:"password" form:"password"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

type dayPayload struct {
	IsPeriod  bool   `json:"is_period"`
	FlowLevel string `json:"flow_level"`
	Mood      string `json:"mood"`
	Cramps    string `json:"cramps"`
	Notes     string `json:"notes"`
}

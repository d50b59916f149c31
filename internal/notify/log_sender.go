package notify

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

// LogSender writes reminders to the log. It stands in when Telegram is not
// configured.
type LogSender struct {
	log *logrus.Logger
}

func NewLogSender(log *logrus.Logger) *LogSender {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogSender{log: log}
}

func (sender *LogSender) Send(_ context.Context, reminder services.Reminder) error {
	sender.log.WithFields(logrus.Fields{
		"kind":  reminder.Kind,
		"date":  services.FormatDay(reminder.Date),
		"title": reminder.Title,
	}).Info(reminder.Message)
	return nil
}

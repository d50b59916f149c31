package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// New builds the application logger writing to stdout.
func New(level string, format string) *logrus.Logger {
	return NewWithOutput(os.Stdout, level, format)
}

// NewWithOutput is New with an explicit destination. Unknown levels fall
// back to info and leave a warning in the log.
func NewWithOutput(output io.Writer, level string, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(output)

	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("invalid log level %q, defaulting to info", level)
		return log
	}
	log.SetLevel(parsed)
	return log
}

// Discard returns a logger that drops everything, for tests and quiet CLI runs.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

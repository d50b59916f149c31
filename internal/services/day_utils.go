package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
)

const DateLayout = "2006-01-02"

var ErrInvalidEntryDate = errors.New("invalid entry date")

// ParseDay parses a YYYY-MM-DD calendar date into its UTC midnight.
func ParseDay(raw string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidEntryDate, raw)
	}
	return prediction.DateOnly(parsed), nil
}

func FormatDay(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(DateLayout)
}

// DateAtLocation returns the calendar date value has in location, as a UTC
// midnight so it can feed the prediction package directly.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return prediction.DateOnly(value.In(location))
}

func toPredictionEntries(entries []models.CycleEntry) []prediction.Entry {
	converted := make([]prediction.Entry, 0, len(entries))
	for _, entry := range entries {
		converted = append(converted, prediction.Entry{
			Date:     prediction.DateOnly(entry.Date),
			IsPeriod: entry.IsPeriod,
		})
	}
	return converted
}

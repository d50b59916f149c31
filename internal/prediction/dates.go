package prediction

import "time"

const secondsPerDay = 24 * 60 * 60

// Date returns the calendar date y-m-d at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOnly drops the clock part of value, keeping the calendar date it has in
// its own location. All arithmetic in this package runs on UTC midnights so
// that day differences are exact.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return Date(year, month, day)
}

// AddDays shifts a calendar date by days, rolling months and years over.
func AddDays(value time.Time, days int) time.Time {
	return DateOnly(value).AddDate(0, 0, days)
}

// DaysBetween returns the signed number of calendar days from start to end.
// Unix seconds are used because time.Duration saturates past ~292 years.
func DaysBetween(start time.Time, end time.Time) int {
	return int((DateOnly(end).Unix() - DateOnly(start).Unix()) / secondsPerDay)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a time.Time, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// BetweenInclusive reports whether day lies in [start, end].
func BetweenInclusive(day time.Time, start time.Time, end time.Time) bool {
	day = DateOnly(day)
	return !day.Before(DateOnly(start)) && !day.After(DateOnly(end))
}

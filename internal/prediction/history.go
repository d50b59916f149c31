package prediction

import (
	"sort"
	"time"
)

const (
	// DefaultRecentCycleWeight is the share given to observed history when
	// blending it into the configured average.
	DefaultRecentCycleWeight = 0.3
	// RegularityMaxSpreadDays is the widest max-min cycle length spread that
	// still counts as regular (about ±3 days around the mean).
	RegularityMaxSpreadDays = 6
)

// Entry is one logged calendar day as seen by the analyzer.
type Entry struct {
	Date     time.Time
	IsPeriod bool
}

// PeriodStartDates returns the distinct period dates in ascending order.
// Several entries sharing a date count once.
func PeriodStartDates(entries []Entry) []time.Time {
	seen := make(map[time.Time]struct{}, len(entries))
	dates := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsPeriod {
			continue
		}
		day := DateOnly(entry.Date)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		dates = append(dates, day)
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// LastPeriodStartDate returns the most recent period date, if any.
func LastPeriodStartDate(entries []Entry) (time.Time, bool) {
	dates := PeriodStartDates(entries)
	if len(dates) == 0 {
		return time.Time{}, false
	}
	return dates[len(dates)-1], true
}

// ActualCycleLengths returns the day gaps between consecutive period dates.
func ActualCycleLengths(entries []Entry) []int {
	dates := PeriodStartDates(entries)
	if len(dates) < 2 {
		return []int{}
	}

	lengths := make([]int, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		lengths = append(lengths, DaysBetween(dates[i-1], dates[i]))
	}
	return lengths
}

// AverageCycleLength returns the truncated mean of ActualCycleLengths, or
// false when fewer than two period dates are known.
func AverageCycleLength(entries []Entry) (int, bool) {
	return truncatedMean(ActualCycleLengths(entries))
}

func truncatedMean(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	total := 0
	for _, value := range values {
		total += value
	}
	return int(float64(total) / float64(len(values))), true
}

// SuggestUpdatedCycleLength blends the observed average into currentAverage
// with recentWeight, truncates and clamps into the valid cycle range. Without
// observed data currentAverage is returned unchanged.
func SuggestUpdatedCycleLength(entries []Entry, currentAverage int, recentWeight float64) int {
	actualAverage, ok := AverageCycleLength(entries)
	if !ok {
		return currentAverage
	}

	blended := float64(currentAverage)*(1-recentWeight) + float64(actualAverage)*recentWeight
	return clampInt(int(blended), MinCycleLength, MaxCycleLength)
}

// IsRegular reports whether the spread of lengths stays within
// RegularityMaxSpreadDays. No data counts as regular.
func IsRegular(lengths []int) bool {
	if len(lengths) == 0 {
		return true
	}
	minLength, maxLength := lengths[0], lengths[0]
	for _, length := range lengths[1:] {
		minLength = min(minLength, length)
		maxLength = max(maxLength, length)
	}
	return maxLength-minLength <= RegularityMaxSpreadDays
}

func clampInt(value int, low int, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

package prediction

import (
	"fmt"
	"strings"
	"time"
)

const (
	// LutealPhaseDays is the fixed distance between ovulation and the next period.
	LutealPhaseDays = 14
	// FertileWindowBeforeOvulation is how many days before ovulation the fertile window opens.
	FertileWindowBeforeOvulation = 5

	MinCycleLength = 15
	MaxCycleLength = 45

	MaxPredictedCycles     = 12
	DefaultPredictedCycles = 3
)

// CyclePrediction holds every date predicted for one upcoming cycle. Values
// are only produced by PredictCycle, which keeps the ovulation and fertile
// window dates anchored to NextPeriodDate.
type CyclePrediction struct {
	NextPeriodDate      time.Time `json:"next_period_date"`
	OvulationDate       time.Time `json:"ovulation_date"`
	FertileWindowStart  time.Time `json:"fertile_window_start"`
	FertileWindowEnd    time.Time `json:"fertile_window_end"`
	DaysUntilNextPeriod int       `json:"days_until_next_period"`
	DaysUntilOvulation  int       `json:"days_until_ovulation"`
}

// Summary renders the prediction as three human readable lines.
func (p CyclePrediction) Summary() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Next Period: %s (in %d days)\n", p.NextPeriodDate.Format(time.DateOnly), p.DaysUntilNextPeriod)
	fmt.Fprintf(&builder, "Ovulation: %s (in %d days)\n", p.OvulationDate.Format(time.DateOnly), p.DaysUntilOvulation)
	fmt.Fprintf(&builder, "Fertile Window: %s to %s\n", p.FertileWindowStart.Format(time.DateOnly), p.FertileWindowEnd.Format(time.DateOnly))
	return builder.String()
}

// IsInPast reports whether the predicted period start is before reference.
func (p CyclePrediction) IsInPast(reference time.Time) bool {
	return p.NextPeriodDate.Before(DateOnly(reference))
}

// FertileWindowLength returns the inclusive length of the fertile window in days.
func (p CyclePrediction) FertileWindowLength() int {
	return DaysBetween(p.FertileWindowStart, p.FertileWindowEnd) + 1
}

func ValidateCycleLength(length int) error {
	if length < MinCycleLength || length > MaxCycleLength {
		return fmt.Errorf("%w: cycle length must be between %d and %d days, got: %d",
			ErrCycleLengthOutOfRange, MinCycleLength, MaxCycleLength, length)
	}
	return nil
}

func validateCycleCount(count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: number of cycles must be positive, got: %d", ErrCycleCountOutOfRange, count)
	}
	if count > MaxPredictedCycles {
		return fmt.Errorf("%w: number of cycles should not exceed %d, got: %d", ErrCycleCountOutOfRange, MaxPredictedCycles, count)
	}
	return nil
}

// NextPeriodDate returns lastPeriodDate shifted by avgCycleLength days.
func NextPeriodDate(lastPeriodDate time.Time, avgCycleLength int) (time.Time, error) {
	if err := ValidateCycleLength(avgCycleLength); err != nil {
		return time.Time{}, err
	}
	return AddDays(lastPeriodDate, avgCycleLength), nil
}

// OvulationDate returns the day LutealPhaseDays before nextPeriodDate.
func OvulationDate(nextPeriodDate time.Time) time.Time {
	return AddDays(nextPeriodDate, -LutealPhaseDays)
}

// FertileWindow returns the inclusive window ending on the ovulation day.
func FertileWindow(ovulationDate time.Time) (time.Time, time.Time) {
	return AddDays(ovulationDate, -FertileWindowBeforeOvulation), DateOnly(ovulationDate)
}

// PredictCycle computes all dates of the cycle following lastPeriodDate.
// Day counters are relative to today.
func PredictCycle(lastPeriodDate time.Time, avgCycleLength int, today time.Time) (CyclePrediction, error) {
	nextPeriodDate, err := NextPeriodDate(lastPeriodDate, avgCycleLength)
	if err != nil {
		return CyclePrediction{}, err
	}

	ovulationDate := OvulationDate(nextPeriodDate)
	fertileStart, fertileEnd := FertileWindow(ovulationDate)

	return CyclePrediction{
		NextPeriodDate:      nextPeriodDate,
		OvulationDate:       ovulationDate,
		FertileWindowStart:  fertileStart,
		FertileWindowEnd:    fertileEnd,
		DaysUntilNextPeriod: DaysBetween(today, nextPeriodDate),
		DaysUntilOvulation:  DaysBetween(today, ovulationDate),
	}, nil
}

// PredictMultipleCycles chains numberOfCycles predictions: every prediction
// starts from the previous predicted period date.
func PredictMultipleCycles(lastPeriodDate time.Time, avgCycleLength int, numberOfCycles int, today time.Time) ([]CyclePrediction, error) {
	if err := ValidateCycleLength(avgCycleLength); err != nil {
		return nil, err
	}
	if err := validateCycleCount(numberOfCycles); err != nil {
		return nil, err
	}

	predictions := make([]CyclePrediction, 0, numberOfCycles)
	periodDate := lastPeriodDate
	for range numberOfCycles {
		prediction, err := PredictCycle(periodDate, avgCycleLength, today)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
		periodDate = prediction.NextPeriodDate
	}
	return predictions, nil
}

func IsInFertileWindow(date time.Time, lastPeriodDate time.Time, avgCycleLength int, today time.Time) (bool, error) {
	prediction, err := PredictCycle(lastPeriodDate, avgCycleLength, today)
	if err != nil {
		return false, err
	}
	return BetweenInclusive(date, prediction.FertileWindowStart, prediction.FertileWindowEnd), nil
}

func IsOvulationDay(date time.Time, lastPeriodDate time.Time, avgCycleLength int, today time.Time) (bool, error) {
	prediction, err := PredictCycle(lastPeriodDate, avgCycleLength, today)
	if err != nil {
		return false, err
	}
	return SameDay(date, prediction.OvulationDate), nil
}

// CurrentCycleDay returns the 1-based cycle day of currentDate. The second
// result is false when currentDate precedes lastPeriodDate.
func CurrentCycleDay(lastPeriodDate time.Time, currentDate time.Time) (int, bool) {
	if DateOnly(currentDate).Before(DateOnly(lastPeriodDate)) {
		return 0, false
	}
	return DaysBetween(lastPeriodDate, currentDate) + 1, true
}

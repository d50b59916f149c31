package prediction

import "time"

// CycleSummary combines history statistics with the next prediction.
// LastPeriodDate is zero and CurrentCycleDay is 0 when they are unknown.
type CycleSummary struct {
	LastPeriodDate     time.Time
	CurrentCycleDay    int
	NextPrediction     *CyclePrediction
	AverageCycleLength int
	ActualCycleLengths []int
	IsRegular          bool
}

func (s CycleSummary) HasLastPeriod() bool {
	return !s.LastPeriodDate.IsZero()
}

// EffectiveCycleLength prefers the observed average over the configured one.
func EffectiveCycleLength(entries []Entry, configuredAvgCycleLength int) int {
	if average, ok := AverageCycleLength(entries); ok {
		return average
	}
	return configuredAvgCycleLength
}

// CreateCycleSummary derives the summary for today. Validation failures of
// the effective cycle length are returned as is.
func CreateCycleSummary(entries []Entry, configuredAvgCycleLength int, today time.Time) (CycleSummary, error) {
	lengths := ActualCycleLengths(entries)
	summary := CycleSummary{
		AverageCycleLength: EffectiveCycleLength(entries, configuredAvgCycleLength),
		ActualCycleLengths: lengths,
		IsRegular:          IsRegular(lengths),
	}

	lastPeriodDate, ok := LastPeriodStartDate(entries)
	if !ok {
		return summary, nil
	}
	summary.LastPeriodDate = lastPeriodDate

	if day, ok := CurrentCycleDay(lastPeriodDate, today); ok {
		summary.CurrentCycleDay = day
	}

	next, err := PredictCycle(lastPeriodDate, summary.AverageCycleLength, today)
	if err != nil {
		return CycleSummary{}, err
	}
	summary.NextPrediction = &next
	return summary, nil
}

// EnhancedPredictions chains numberOfCycles predictions from the latest
// logged period using the effective cycle length. Without period history it
// returns an empty slice.
func EnhancedPredictions(entries []Entry, configuredAvgCycleLength int, numberOfCycles int, today time.Time) ([]CyclePrediction, error) {
	lastPeriodDate, ok := LastPeriodStartDate(entries)
	if !ok {
		return []CyclePrediction{}, nil
	}
	return PredictMultipleCycles(lastPeriodDate, EffectiveCycleLength(entries, configuredAvgCycleLength), numberOfCycles, today)
}

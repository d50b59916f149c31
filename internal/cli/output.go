package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

const emptyCell = "-"

func ValidateFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected table or json)", format)
	}
}

type predictionJSON struct {
	NextPeriodDate      string `json:"next_period_date"`
	OvulationDate       string `json:"ovulation_date"`
	FertileWindowStart  string `json:"fertile_window_start"`
	FertileWindowEnd    string `json:"fertile_window_end"`
	DaysUntilNextPeriod int    `json:"days_until_next_period"`
	DaysUntilOvulation  int    `json:"days_until_ovulation"`
}

type summaryJSON struct {
	LastPeriodDate     *string         `json:"last_period_date"`
	CurrentCycleDay    *int            `json:"current_cycle_day"`
	NextPrediction     *predictionJSON `json:"next_prediction"`
	AverageCycleLength int             `json:"average_cycle_length"`
	ActualCycleLengths []int           `json:"actual_cycle_lengths"`
	IsRegular          bool            `json:"is_regular"`
}

func toPredictionJSON(value prediction.CyclePrediction) predictionJSON {
	return predictionJSON{
		NextPeriodDate:      services.FormatDay(value.NextPeriodDate),
		OvulationDate:       services.FormatDay(value.OvulationDate),
		FertileWindowStart:  services.FormatDay(value.FertileWindowStart),
		FertileWindowEnd:    services.FormatDay(value.FertileWindowEnd),
		DaysUntilNextPeriod: value.DaysUntilNextPeriod,
		DaysUntilOvulation:  value.DaysUntilOvulation,
	}
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func WriteSummary(out io.Writer, summary prediction.CycleSummary, format string) error {
	if format == FormatJSON {
		payload := summaryJSON{
			AverageCycleLength: summary.AverageCycleLength,
			ActualCycleLengths: summary.ActualCycleLengths,
			IsRegular:          summary.IsRegular,
		}
		if payload.ActualCycleLengths == nil {
			payload.ActualCycleLengths = []int{}
		}
		if summary.HasLastPeriod() {
			lastPeriod := services.FormatDay(summary.LastPeriodDate)
			payload.LastPeriodDate = &lastPeriod
		}
		if summary.CurrentCycleDay > 0 {
			day := summary.CurrentCycleDay
			payload.CurrentCycleDay = &day
		}
		if summary.NextPrediction != nil {
			next := toPredictionJSON(*summary.NextPrediction)
			payload.NextPrediction = &next
		}
		return writeJSON(out, payload)
	}

	rows := [][]string{
		{"Last period", orEmpty(services.FormatDay(summary.LastPeriodDate))},
		{"Cycle day", positiveOrEmpty(summary.CurrentCycleDay)},
		{"Average cycle length", strconv.Itoa(summary.AverageCycleLength)},
		{"Cycle lengths", joinInts(summary.ActualCycleLengths)},
		{"Regular", yesNo(summary.IsRegular)},
	}
	if next := summary.NextPrediction; next != nil {
		rows = append(rows,
			[]string{"Next period", services.FormatDay(next.NextPeriodDate)},
			[]string{"Ovulation", services.FormatDay(next.OvulationDate)},
			[]string{"Fertile window", fertileWindow(*next)},
			[]string{"Days until next period", strconv.Itoa(next.DaysUntilNextPeriod)},
		)
	}
	return renderTable(out, []string{"Field", "Value"}, rows)
}

func WritePredictions(out io.Writer, predictions []prediction.CyclePrediction, format string) error {
	if format == FormatJSON {
		payload := make([]predictionJSON, 0, len(predictions))
		for _, value := range predictions {
			payload = append(payload, toPredictionJSON(value))
		}
		return writeJSON(out, payload)
	}

	if len(predictions) == 0 {
		_, err := fmt.Fprintln(out, "No period logged yet. Log a period day to get predictions.")
		return err
	}

	rows := make([][]string, 0, len(predictions))
	for index, value := range predictions {
		rows = append(rows, []string{
			strconv.Itoa(index + 1),
			services.FormatDay(value.NextPeriodDate),
			services.FormatDay(value.OvulationDate),
			fertileWindow(value),
			strconv.Itoa(value.DaysUntilNextPeriod),
		})
	}
	return renderTable(out, []string{"#", "Period", "Ovulation", "Fertile window", "Days until"}, rows)
}

func WriteSettings(out io.Writer, settings models.UserSettings, format string) error {
	if format == FormatJSON {
		return writeJSON(out, settings)
	}

	rows := [][]string{
		{"Average cycle length", strconv.Itoa(settings.AvgCycleLength)},
		{"Period duration", strconv.Itoa(settings.PeriodDuration)},
		{"Notify before period", strconv.Itoa(settings.NotifBeforePeriod)},
		{"Notify ovulation", yesNo(settings.NotifOvulation)},
		{"Notify fertile window", yesNo(settings.NotifFertileWindow)},
		{"Theme", settings.ThemeMode.DisplayName()},
	}
	return renderTable(out, []string{"Setting", "Value"}, rows)
}

func WriteImportResult(out io.Writer, result ImportResult) {
	fmt.Fprintf(out, "Imported %d entries\n", result.Imported)
	if len(result.Skipped) == 0 {
		return
	}
	fmt.Fprintf(out, "Skipped %d rows:\n", len(result.Skipped))
	for _, skipped := range result.Skipped {
		fmt.Fprintf(out, "  %s\n", skipped.Error())
	}
}

func DescribeEntry(entry models.CycleEntry) string {
	parts := []string{services.FormatDay(entry.Date)}
	if entry.IsPeriod {
		parts = append(parts, "period, "+strings.ToLower(entry.FlowLevel.DisplayName())+" flow")
	}
	if entry.Mood != models.MoodNone {
		parts = append(parts, "mood "+entry.Mood.Label())
	}
	if entry.Cramps != models.CrampsNone {
		parts = append(parts, strings.ToLower(entry.Cramps.DisplayName())+" cramps")
	}
	if entry.Notes != "" {
		parts = append(parts, strconv.Quote(entry.Notes))
	}
	return strings.Join(parts, ", ")
}

func renderTable(out io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(out, tablewriter.WithHeader(header))
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func fertileWindow(value prediction.CyclePrediction) string {
	return services.FormatDay(value.FertileWindowStart) + " .. " + services.FormatDay(value.FertileWindowEnd)
}

func orEmpty(value string) string {
	if value == "" {
		return emptyCell
	}
	return value
}

func positiveOrEmpty(value int) string {
	if value <= 0 {
		return emptyCell
	}
	return strconv.Itoa(value)
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return emptyCell
	}
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, strconv.Itoa(value))
	}
	return strings.Join(parts, ", ")
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

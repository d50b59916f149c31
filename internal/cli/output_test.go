package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
)

func samplePrediction(t *testing.T) prediction.CyclePrediction {
	t.Helper()

	today := prediction.Date(2024, time.March, 10)
	next, err := prediction.PredictCycle(prediction.Date(2024, time.February, 26), 28, today)
	if err != nil {
		t.Fatalf("PredictCycle returned error: %v", err)
	}
	return next
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{FormatTable, FormatJSON} {
		if err := ValidateFormat(format); err != nil {
			t.Fatalf("expected %q to be valid, got %v", format, err)
		}
	}
	if err := ValidateFormat("xml"); err == nil {
		t.Fatal("expected unknown format to be rejected")
	}
}

func TestWriteSummaryTable(t *testing.T) {
	t.Parallel()

	next := samplePrediction(t)
	summary := prediction.CycleSummary{
		LastPeriodDate:     prediction.Date(2024, time.February, 26),
		CurrentCycleDay:    14,
		NextPrediction:     &next,
		AverageCycleLength: 28,
		ActualCycleLengths: []int{28, 28},
		IsRegular:          true,
	}

	var out bytes.Buffer
	if err := WriteSummary(&out, summary, FormatTable); err != nil {
		t.Fatalf("WriteSummary returned error: %v", err)
	}
	for _, want := range []string{"2024-02-26", "2024-03-25", "2024-03-11", "2024-03-06 .. 2024-03-11", "28, 28"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in table output:\n%s", want, out.String())
		}
	}
}

func TestWriteSummaryJSONUsesNullForUnknownValues(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := WriteSummary(&out, prediction.CycleSummary{AverageCycleLength: 28, IsRegular: true}, FormatJSON); err != nil {
		t.Fatalf("WriteSummary returned error: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("decode summary json: %v", err)
	}
	for _, key := range []string{"last_period_date", "current_cycle_day", "next_prediction"} {
		if value, ok := payload[key]; !ok || value != nil {
			t.Fatalf("expected %s to be null, got %v", key, value)
		}
	}
	if lengths, ok := payload["actual_cycle_lengths"].([]any); !ok || len(lengths) != 0 {
		t.Fatalf("expected empty cycle length list, got %v", payload["actual_cycle_lengths"])
	}
}

func TestWritePredictions(t *testing.T) {
	t.Parallel()

	predictions, err := prediction.PredictMultipleCycles(prediction.Date(2024, time.February, 26), 28, 2, prediction.Date(2024, time.March, 10))
	if err != nil {
		t.Fatalf("PredictMultipleCycles returned error: %v", err)
	}

	var table bytes.Buffer
	if err := WritePredictions(&table, predictions, FormatTable); err != nil {
		t.Fatalf("WritePredictions returned error: %v", err)
	}
	if !strings.Contains(table.String(), "2024-04-22") {
		t.Fatalf("expected second cycle in table:\n%s", table.String())
	}

	var encoded bytes.Buffer
	if err := WritePredictions(&encoded, predictions, FormatJSON); err != nil {
		t.Fatalf("WritePredictions returned error: %v", err)
	}
	var payload []predictionJSON
	if err := json.Unmarshal(encoded.Bytes(), &payload); err != nil {
		t.Fatalf("decode predictions json: %v", err)
	}
	if len(payload) != 2 || payload[0].NextPeriodDate != "2024-03-25" {
		t.Fatalf("unexpected predictions json %#v", payload)
	}

	var empty bytes.Buffer
	if err := WritePredictions(&empty, nil, FormatTable); err != nil {
		t.Fatalf("WritePredictions returned error: %v", err)
	}
	if !strings.Contains(empty.String(), "No period logged yet") {
		t.Fatalf("expected hint without history, got %q", empty.String())
	}
}

func TestWriteSettingsTable(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := WriteSettings(&out, models.DefaultUserSettings(), FormatTable); err != nil {
		t.Fatalf("WriteSettings returned error: %v", err)
	}
	if !strings.Contains(out.String(), "System Default") {
		t.Fatalf("expected theme display name in output:\n%s", out.String())
	}
}

func TestDescribeEntry(t *testing.T) {
	t.Parallel()

	entry := models.CycleEntry{
		Date:      prediction.Date(2024, time.March, 1),
		IsPeriod:  true,
		FlowLevel: models.FlowMedium,
		Mood:      models.MoodCalm,
		Cramps:    models.CrampsMild,
		Notes:     "rest day",
	}
	got := DescribeEntry(entry)
	want := "2024-03-01, period, medium flow, mood 😌 Calm, mild cramps, \"rest day\""
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/terraincognita07/periodcalendar/internal/models"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

// ErrNothingToImport is returned by a replacing import whose rows are all
// invalid; stored entries are left untouched.
var ErrNothingToImport = errors.New("no valid rows to import, existing entries kept")

type EntryImporter interface {
	Upsert(input services.EntryInput, today time.Time) (models.CycleEntry, error)
	DeleteAll() error
}

type ImportOptions struct {
	// Replace removes all stored entries before the rows are written.
	Replace  bool
	Progress io.Writer
}

type ImportRowError struct {
	Line int
	Err  error
}

func (rowErr ImportRowError) Error() string {
	return fmt.Sprintf("line %d: %v", rowErr.Line, rowErr.Err)
}

type ImportResult struct {
	Imported int
	Skipped  []ImportRowError
}

type importRow struct {
	line  int
	input services.EntryInput
	err   error
}

// ImportCSV reads date,is_period[,flow,mood,cramps,notes] rows. A header row
// is optional. Invalid rows are skipped and reported in the result.
func ImportCSV(source io.Reader, entries EntryImporter, today time.Time, options ImportOptions) (ImportResult, error) {
	rows, err := readImportRows(source)
	if err != nil {
		return ImportResult{}, err
	}

	valid := 0
	for index := range rows {
		if rows[index].err == nil {
			rows[index].err = validateImportRow(rows[index].input, today)
		}
		if rows[index].err == nil {
			valid++
		}
	}

	if options.Replace {
		if valid == 0 {
			return ImportResult{Skipped: skippedRows(rows)}, ErrNothingToImport
		}
		if err := entries.DeleteAll(); err != nil {
			return ImportResult{}, fmt.Errorf("clear entries: %w", err)
		}
	}

	progress := options.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
	)

	result := ImportResult{}
	for _, row := range rows {
		if row.err == nil {
			_, row.err = entries.Upsert(row.input, today)
		}
		if row.err != nil {
			result.Skipped = append(result.Skipped, ImportRowError{Line: row.line, Err: row.err})
		} else {
			result.Imported++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(progress)

	return result, nil
}

// validateImportRow applies the same checks as EntryService.Upsert without
// writing anything.
func validateImportRow(input services.EntryInput, today time.Time) error {
	entry, err := services.NormalizeEntryInput(input)
	if err != nil {
		return err
	}
	if entry.Date.After(prediction.DateOnly(today)) {
		return fmt.Errorf("%w: %s", services.ErrFutureEntryDate, services.FormatDay(entry.Date))
	}
	return nil
}

func skippedRows(rows []importRow) []ImportRowError {
	var skipped []ImportRowError
	for _, row := range rows {
		if row.err != nil {
			skipped = append(skipped, ImportRowError{Line: row.line, Err: row.err})
		}
	}
	return skipped
}

func readImportRows(source io.Reader) ([]importRow, error) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	rows := make([]importRow, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(rows) == 0 && isImportHeader(record) {
			continue
		}
		input, err := parseImportRecord(record)
		rows = append(rows, importRow{line: line, input: input, err: err})
	}
	return rows, nil
}

func isImportHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date")
}

func parseImportRecord(record []string) (services.EntryInput, error) {
	if len(record) < 2 {
		return services.EntryInput{}, errors.New("expected at least date and is_period columns")
	}

	isPeriod, err := parseImportBool(record[1])
	if err != nil {
		return services.EntryInput{}, err
	}

	input := services.EntryInput{
		Date:     strings.TrimSpace(record[0]),
		IsPeriod: isPeriod,
	}
	optional := []*string{&input.FlowLevel, &input.Mood, &input.Cramps, &input.Notes}
	for index, target := range optional {
		if column := index + 2; column < len(record) {
			*target = record[column]
		}
	}
	return input, nil
}

func parseImportBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y":
		return true, nil
	case "no", "n", "":
		return false, nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("invalid is_period value %q", raw)
	}
	return value, nil
}

// Package acled loads and cleans ACLED conflict-event extracts. Input is one
// raw file per study year; output is a single table of typed events with the
// derived flags the rest of the pipeline keys on.
package acled

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// RequiredColumns is the fixed schema every yearly extract must carry.
// Files missing any of these are skipped with a warning, not fatal.
var RequiredColumns = []string{
	"event_id_cnty", "event_date", "event_type", "admin1", "admin2",
	"location", "latitude", "longitude", "fatalities", "actor1", "actor2",
}

// LoadReport summarizes a load run across all study years.
type LoadReport struct {
	FilesLoaded  int
	MissingFiles []string
	SkippedFiles []string
	EventsByYear map[int]int
	TotalEvents  int
}

// Loader reads yearly ACLED extracts into one unified event table.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadAll reads every yearly file in [startYear, endYear] from rawDir.
// Missing or invalid files for individual years are skipped; a run that
// loads zero files is a fatal load error.
func (l *Loader) LoadAll(rawDir string, startYear, endYear int) ([]domain.RawEvent, *LoadReport, error) {
	report := &LoadReport{EventsByYear: make(map[int]int)}
	var all []domain.RawEvent

	for year := startYear; year <= endYear; year++ {
		base := fmt.Sprintf("acled_nga_%d", year)
		path, ok := l.findYearFile(rawDir, base)
		if !ok {
			report.MissingFiles = append(report.MissingFiles, base+".csv")
			l.logger.Warn("yearly file not found", slog.Int("year", year), slog.String("dir", rawDir))
			continue
		}

		events, err := l.loadFile(path)
		if err != nil {
			report.SkippedFiles = append(report.SkippedFiles, filepath.Base(path))
			l.logger.Warn("skipping yearly file",
				slog.Int("year", year),
				slog.String("file", filepath.Base(path)),
				slog.String("error", err.Error()))
			continue
		}

		l.logger.Info("loaded yearly file",
			slog.Int("year", year),
			slog.Int("events", len(events)))

		report.FilesLoaded++
		report.EventsByYear[year] = len(events)
		report.TotalEvents += len(events)
		all = append(all, events...)
	}

	if report.FilesLoaded == 0 {
		return nil, report, apperrors.NewLoadError(
			fmt.Sprintf("no data was successfully loaded from %s", rawDir), nil)
	}

	if len(report.MissingFiles) > 0 {
		l.logger.Warn("some yearly files were missing",
			slog.Int("missing", len(report.MissingFiles)),
			slog.Any("files", report.MissingFiles))
	}

	return all, report, nil
}

// findYearFile probes the CSV name first, then the .xlsx variant.
func (l *Loader) findYearFile(rawDir, base string) (string, bool) {
	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(rawDir, base+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// loadFile dispatches on file extension.
func (l *Loader) loadFile(path string) ([]domain.RawEvent, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return l.loadXLSX(path)
	}
	return l.loadCSV(path)
}

// loadCSV reads one yearly CSV extract, validating the required schema.
func (l *Loader) loadCSV(path string) ([]domain.RawEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to open file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("file is empty", nil)
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\xef\xbb\xbf")
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	return rowsToEvents(rows[1:], columns), nil
}

// loadXLSX reads one yearly Excel extract. The sheet holding the data is
// discovered by scanning for a header row that carries the required columns.
func (l *Loader) loadXLSX(path string) ([]domain.RawEvent, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to open workbook", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		columns, err := mapColumns(rows[0])
		if err != nil {
			l.logger.Debug("sheet does not match schema",
				slog.String("sheet", sheet),
				slog.String("reason", err.Error()))
			continue
		}

		return rowsToEvents(rows[1:], columns), nil
	}

	return nil, apperrors.NewValidationError("no sheet with required columns found", nil)
}

// mapColumns maps required column names to positions in the header row.
func mapColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, name := range RequiredColumns {
		idx, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = idx
	}

	if len(missing) > 0 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	}
	return columns, nil
}

// rowsToEvents converts raw cells to RawEvent records. Cell access is
// bounds-checked; short rows yield empty fields, which the cleaner handles.
func rowsToEvents(rows [][]string, columns map[string]int) []domain.RawEvent {
	cell := func(row []string, name string) string {
		idx := columns[name]
		if idx < len(row) {
			return row[idx]
		}
		return ""
	}

	events := make([]domain.RawEvent, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		events = append(events, domain.RawEvent{
			EventID:    cell(row, "event_id_cnty"),
			EventDate:  cell(row, "event_date"),
			EventType:  cell(row, "event_type"),
			Admin1:     cell(row, "admin1"),
			Admin2:     cell(row, "admin2"),
			Location:   cell(row, "location"),
			Latitude:   cell(row, "latitude"),
			Longitude:  cell(row, "longitude"),
			Fatalities: cell(row, "fatalities"),
			Actor1:     cell(row, "actor1"),
			Actor2:     cell(row, "actor2"),
		})
	}
	return events
}

// Package dhs loads DHS survey micro-data on education. The upstream
// Stata-format extraction happens outside this pipeline; what arrives here is
// a delimited file of individuals, one row per respondent.
package dhs

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/jarretangbazo/economics-senior-thesis/internal/exporter"
	"github.com/jarretangbazo/economics-senior-thesis/internal/panel"
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// Schooling years outside this range are measurement artifacts and get
// clipped.
const (
	MinYearsSchooling = 0.0
	MaxYearsSchooling = 25.0
)

// Attainment thresholds in completed years of schooling.
const (
	primaryYears   = 6.0
	secondaryYears = 12.0
)

// LoadReport summarizes a respondent load.
type LoadReport struct {
	Rows             int
	MissingBirthYear int
	MissingState     int
	ClippedSchooling int
}

// Loader reads the cleaned DHS education extract.
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

// Load reads respondents from path. Missing birth years and states parse to
// nil/empty and are tallied, never fatal: such respondents later receive
// all-zero exposure. State names are standardized here, on the survey side
// of the join, with the same rules the panel side uses.
func (l *Loader) Load(path string) ([]domain.Respondent, *LoadReport, error) {
	table, err := exporter.ReadCSV(path)
	if err != nil {
		return nil, nil, err
	}

	col := func(name string) int { return table.ColumnIndex(name) }
	idx := map[string]int{
		"case_id":         col("case_id"),
		"birth_year":      col("birth_year"),
		"age":             col("age"),
		"state":           col("state"),
		"survey_year":     col("survey_year"),
		"weight":          col("weight"),
		"years_schooling": col("years_schooling"),
		"wealth_quintile": col("wealth_quintile"),
		"urban":           col("urban"),
	}

	report := &LoadReport{}
	respondents := make([]domain.Respondent, 0, len(table.Rows))

	for _, row := range table.Rows {
		cell := func(name string) string {
			i := idx[name]
			if i >= 0 && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		r := domain.Respondent{
			CaseID:     cell("case_id"),
			State:      panel.StandardizeState(cell("state")),
			SurveyYear: parseIntOr(cell("survey_year"), 0),
			Weight:     parseFloatOr(cell("weight"), 1.0),
			BirthYear:  parseIntPtr(cell("birth_year")),
			Age:        parseIntPtr(cell("age")),
		}

		schooling, clipped := clipSchooling(parseFloatOr(cell("years_schooling"), 0))
		if clipped {
			report.ClippedSchooling++
		}
		r.YearsSchooling = schooling
		r.NoEducation = schooling == 0
		r.PrimaryComplete = schooling >= primaryYears
		r.SecondaryComplete = schooling >= secondaryYears

		r.WealthQuintile = parseIntOr(cell("wealth_quintile"), 0)
		r.Urban = parseBool(cell("urban"))

		if r.BirthYear == nil {
			report.MissingBirthYear++
		}
		if r.State == "" {
			report.MissingState++
		}

		respondents = append(respondents, r)
	}

	report.Rows = len(respondents)

	l.logger.Info("DHS respondents loaded",
		slog.String("path", path),
		slog.Int("rows", report.Rows),
		slog.Int("missing_birth_year", report.MissingBirthYear),
		slog.Int("missing_state", report.MissingState),
		slog.Int("clipped_schooling", report.ClippedSchooling))

	return respondents, report, nil
}

// clipSchooling clips to [MinYearsSchooling, MaxYearsSchooling].
func clipSchooling(v float64) (float64, bool) {
	if v < MinYearsSchooling {
		return MinYearsSchooling, true
	}
	if v > MaxYearsSchooling {
		return MaxYearsSchooling, true
	}
	return v, false
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

func parseIntOr(s string, fallback int) int {
	if n := parseIntPtr(s); n != nil {
		return *n
	}
	return fallback
}

func parseFloatOr(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return fallback
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "urban", "yes":
		return true
	default:
		return false
	}
}

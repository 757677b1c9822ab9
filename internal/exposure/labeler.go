package exposure

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jarretangbazo/economics-senior-thesis/internal/panel"
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// Boko Haram cohort bounds: respondents born in this range were of school
// age at some point during the insurgency years.
const (
	postCohortStart = 1991
	postCohortEnd   = 2014
)

// Birth cohorts of school age across the 2009-2015 escalation.
const (
	escalationCohortStart = 1991
	escalationCohortEnd   = 2009
)

// Thresholds are the exposure percentiles that split respondents into
// conflict tiers. They are computed once over the full sample so every
// respondent is labeled against the same cut points.
type Thresholds struct {
	P50 float64
	P75 float64
	P90 float64
}

// ComputeThresholds calculates the tier cut points from the full sample's
// school-age exposure distribution using linear interpolation between order
// statistics.
func ComputeThresholds(respondents []domain.Respondent) Thresholds {
	if len(respondents) == 0 {
		return Thresholds{}
	}

	exposure := make([]float64, len(respondents))
	for i, r := range respondents {
		exposure[i] = r.ConflictExposureSchoolAge
	}
	sort.Float64s(exposure)

	return Thresholds{
		P50: stat.Quantile(0.50, stat.LinInterp, exposure, nil),
		P75: stat.Quantile(0.75, stat.LinInterp, exposure, nil),
		P90: stat.Quantile(0.90, stat.LinInterp, exposure, nil),
	}
}

// Labeler derives treatment indicators and analysis variables from matched
// exposure.
type Labeler struct {
	logger *slog.Logger
}

// NewLabeler creates a labeler. A nil logger falls back to slog.Default.
func NewLabeler(logger *slog.Logger) *Labeler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Labeler{logger: logger}
}

// LabelReport tallies treatment group sizes after labeling.
type LabelReport struct {
	Thresholds     Thresholds
	HighConflict   int
	MediumConflict int
	LowConflict    int
	AnyBokoHaram   int
	Northeast      int
	PostCohort     int
}

// Label fills treatment indicators and analysis variables in place. Tier
// thresholds come from the full sample passed here; callers that label in
// chunks must precompute thresholds with ComputeThresholds and call
// LabelWith instead.
func (l *Labeler) Label(respondents []domain.Respondent) *LabelReport {
	return l.LabelWith(respondents, ComputeThresholds(respondents))
}

// LabelWith labels respondents against precomputed thresholds.
func (l *Labeler) LabelWith(respondents []domain.Respondent, th Thresholds) *LabelReport {
	stateCodes := categoryCodes(respondents, func(r *domain.Respondent) string { return r.State })
	yearCodes := categoryCodes(respondents, func(r *domain.Respondent) string {
		return fmt.Sprintf("%d", r.SurveyYear)
	})

	report := &LabelReport{Thresholds: th}
	for i := range respondents {
		r := &respondents[i]

		r.HighConflict = r.ConflictExposureSchoolAge > th.P75
		r.MediumConflict = r.ConflictExposureSchoolAge > th.P50 && r.ConflictExposureSchoolAge <= th.P75
		r.LowConflict = r.ConflictExposureSchoolAge <= th.P50
		r.AnyBokoHaramExposure = r.BokoHaramEventsSchoolAge > 0

		r.Northeast = panel.IsNortheast(r.State)
		if r.BirthYear != nil {
			by := *r.BirthYear
			r.PostBokoHaram = by >= postCohortStart && by <= postCohortEnd
			r.PreBokoHaram = by < postCohortStart
			r.SchoolAge2009To2015 = by >= escalationCohortStart && by <= escalationCohortEnd
		} else {
			r.PostBokoHaram = false
			r.PreBokoHaram = false
			r.SchoolAge2009To2015 = false
		}

		r.NortheastXPost = r.Northeast && r.PostBokoHaram
		r.HighConflictXPost = r.HighConflict && r.PostBokoHaram

		r.AgeGroup = ageGroup(r.Age)
		r.CohortGroup = cohortGroup(r.BirthYear)
		r.StateCode = stateCodes[r.State]
		r.SurveyYearCode = yearCodes[fmt.Sprintf("%d", r.SurveyYear)]

		if r.HighConflict {
			report.HighConflict++
		}
		if r.MediumConflict {
			report.MediumConflict++
		}
		if r.LowConflict {
			report.LowConflict++
		}
		if r.AnyBokoHaramExposure {
			report.AnyBokoHaram++
		}
		if r.Northeast {
			report.Northeast++
		}
		if r.PostBokoHaram {
			report.PostCohort++
		}
	}

	l.logger.Info("treatment groups labeled",
		slog.Float64("p50", th.P50),
		slog.Float64("p75", th.P75),
		slog.Int("high_conflict", report.HighConflict),
		slog.Int("medium_conflict", report.MediumConflict),
		slog.Int("low_conflict", report.LowConflict),
		slog.Int("any_boko_haram", report.AnyBokoHaram),
		slog.Int("northeast", report.Northeast),
		slog.Int("post_cohort", report.PostCohort))

	return report
}

// categoryCodes assigns a stable integer code to each distinct value,
// ordered lexicographically. Used for state and survey-year fixed effects.
func categoryCodes(respondents []domain.Respondent, key func(*domain.Respondent) string) map[string]int {
	seen := make(map[string]bool)
	for i := range respondents {
		seen[key(&respondents[i])] = true
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	codes := make(map[string]int, len(values))
	for i, v := range values {
		codes[v] = i
	}
	return codes
}

var ageGroupBins = []struct {
	min, max int
	label    string
}{
	{15, 19, "15-19"},
	{20, 24, "20-24"},
	{25, 29, "25-29"},
	{30, 34, "30-34"},
	{35, 39, "35-39"},
	{40, 44, "40-44"},
	{45, 49, "45-49"},
}

func ageGroup(age *int) string {
	if age == nil {
		return ""
	}
	for _, b := range ageGroupBins {
		if *age >= b.min && *age <= b.max {
			return b.label
		}
	}
	return ""
}

var cohortGroupBins = []struct {
	min, max int
	label    string
}{
	{1970, 1974, "1970-74"},
	{1975, 1979, "1975-79"},
	{1980, 1984, "1980-84"},
	{1985, 1989, "1985-89"},
	{1990, 1994, "1990-94"},
	{1995, 1999, "1995-99"},
	{2000, 2004, "2000-04"},
	{2005, 2009, "2005-09"},
}

func cohortGroup(birthYear *int) string {
	if birthYear == nil {
		return ""
	}
	for _, b := range cohortGroupBins {
		if *birthYear >= b.min && *birthYear <= b.max {
			return b.label
		}
	}
	return ""
}

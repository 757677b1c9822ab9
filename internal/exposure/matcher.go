// Package exposure links DHS respondents to the state-year conflict panel.
// The matcher computes each respondent's school-age exposure measures; the
// labeler then derives the treatment indicators used by the regressions.
package exposure

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// stateYearKey indexes the panel by standardized state and calendar year.
type stateYearKey struct {
	State string
	Year  int
}

// Matcher computes school-age conflict exposure for respondents against a
// state-year conflict index. Matching is read-only over the index, so
// respondents can be processed in parallel.
type Matcher struct {
	index   map[stateYearKey]domain.StateYearCell
	logger  *slog.Logger
	workers int
}

// NewMatcher builds a matcher over the given state-year cells. Workers
// defaults to GOMAXPROCS when non-positive.
func NewMatcher(cells []domain.StateYearCell, logger *slog.Logger, workers int) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	index := make(map[stateYearKey]domain.StateYearCell, len(cells))
	for _, c := range cells {
		index[stateYearKey{State: c.State, Year: c.Year}] = c
	}

	return &Matcher{index: index, logger: logger, workers: workers}
}

// MatchReport tallies one matching pass.
type MatchReport struct {
	Respondents int
	Matched     int
	NoBirthYear int
	NoState     int
	Exposed     int
}

// Match fills the school-age exposure fields of every respondent in place.
// Respondents without a birth year or state receive all-zero exposure and
// are tallied, never skipped. The slice order is preserved.
func (m *Matcher) Match(ctx context.Context, respondents []domain.Respondent) (*MatchReport, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	results := make([]matchResult, len(respondents))
	for i := range respondents {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = m.matchOne(&respondents[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &MatchReport{Respondents: len(respondents)}
	for i := range respondents {
		r := results[i]
		if r.noBirthYear {
			report.NoBirthYear++
		}
		if r.noState {
			report.NoState++
		}
		if r.matched {
			report.Matched++
		}
		if respondents[i].ExposedDuringSchoolAge {
			report.Exposed++
		}
	}

	m.logger.Info("school-age exposure matched",
		slog.Int("respondents", report.Respondents),
		slog.Int("matched", report.Matched),
		slog.Int("exposed", report.Exposed),
		slog.Int("no_birth_year", report.NoBirthYear),
		slog.Int("no_state", report.NoState))

	return report, nil
}

type matchResult struct {
	matched     bool
	noBirthYear bool
	noState     bool
}

// matchOne computes exposure for a single respondent. The intensity measure
// is the average violent-event count across the years of the school-age
// window that have a panel cell, so states observed for only part of the
// window are not mechanically diluted.
func (m *Matcher) matchOne(r *domain.Respondent) matchResult {
	r.ConflictExposureSchoolAge = 0
	r.ViolentEventsSchoolAge = 0
	r.BokoHaramEventsSchoolAge = 0
	r.YearsExposedSchoolAge = 0
	r.ExposedDuringSchoolAge = false

	start, end, ok := r.SchoolAgeWindow()
	if !ok {
		return matchResult{noBirthYear: true, noState: r.State == ""}
	}
	if r.State == "" {
		return matchResult{noState: true}
	}

	matchedCells := 0
	for year := start; year <= end; year++ {
		cell, found := m.index[stateYearKey{State: r.State, Year: year}]
		if !found {
			continue
		}
		matchedCells++
		r.ViolentEventsSchoolAge += cell.ViolentEvents
		r.BokoHaramEventsSchoolAge += cell.BokoHaramEvents
		if cell.ViolentEvents > 0 {
			r.YearsExposedSchoolAge++
		}
	}

	if matchedCells > 0 {
		r.ConflictExposureSchoolAge = float64(r.ViolentEventsSchoolAge) / float64(matchedCells)
	}
	r.ExposedDuringSchoolAge = r.ViolentEventsSchoolAge > 0

	return matchResult{matched: matchedCells > 0}
}

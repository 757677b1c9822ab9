// Package analysis produces the descriptive outputs of the study: summary
// statistics by treatment group and the thesis figures.
package analysis

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// GroupStats is the weighted summary of one respondent group.
type GroupStats struct {
	Group           string
	N               int
	MeanSchooling   float64
	SDSchooling     float64
	NoEducationRate float64
	PrimaryRate     float64
	SecondaryRate   float64
	MeanExposure    float64
	ExposedShare    float64
}

// grouper selects group membership; respondents may belong to several
// groups (full sample plus each treatment split).
type grouper struct {
	name string
	in   func(*domain.Respondent) bool
}

var summaryGroups = []grouper{
	{"All respondents", func(r *domain.Respondent) bool { return true }},
	{"Northeast", func(r *domain.Respondent) bool { return r.Northeast }},
	{"Other regions", func(r *domain.Respondent) bool { return !r.Northeast }},
	{"Post cohort", func(r *domain.Respondent) bool { return r.PostBokoHaram }},
	{"Pre cohort", func(r *domain.Respondent) bool { return r.PreBokoHaram }},
	{"High conflict", func(r *domain.Respondent) bool { return r.HighConflict }},
	{"Medium conflict", func(r *domain.Respondent) bool { return r.MediumConflict }},
	{"Low conflict", func(r *domain.Respondent) bool { return r.LowConflict }},
}

// Summarize computes weighted summary statistics for the standard groups.
func Summarize(respondents []domain.Respondent) []GroupStats {
	out := make([]GroupStats, 0, len(summaryGroups))
	for _, g := range summaryGroups {
		out = append(out, summarizeGroup(g.name, g.in, respondents))
	}
	return out
}

func summarizeGroup(name string, in func(*domain.Respondent) bool, respondents []domain.Respondent) GroupStats {
	stats := GroupStats{Group: name}

	var sumW, sumSchool, sumExposure float64
	var wNoEdu, wPrimary, wSecondary, wExposed float64
	for i := range respondents {
		r := &respondents[i]
		if !in(r) {
			continue
		}
		w := r.Weight
		if w <= 0 {
			w = 1
		}
		stats.N++
		sumW += w
		sumSchool += w * r.YearsSchooling
		sumExposure += w * r.ConflictExposureSchoolAge
		if r.NoEducation {
			wNoEdu += w
		}
		if r.PrimaryComplete {
			wPrimary += w
		}
		if r.SecondaryComplete {
			wSecondary += w
		}
		if r.ExposedDuringSchoolAge {
			wExposed += w
		}
	}
	if sumW == 0 {
		return stats
	}

	stats.MeanSchooling = sumSchool / sumW
	stats.MeanExposure = sumExposure / sumW
	stats.NoEducationRate = wNoEdu / sumW
	stats.PrimaryRate = wPrimary / sumW
	stats.SecondaryRate = wSecondary / sumW
	stats.ExposedShare = wExposed / sumW

	var ss float64
	for i := range respondents {
		r := &respondents[i]
		if !in(r) {
			continue
		}
		w := r.Weight
		if w <= 0 {
			w = 1
		}
		d := r.YearsSchooling - stats.MeanSchooling
		ss += w * d * d
	}
	stats.SDSchooling = math.Sqrt(ss / sumW)

	return stats
}

// RenderSummary formats group statistics as a fixed-width table with
// grouped digit separators.
func RenderSummary(stats []GroupStats) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	p.Fprintf(&b, "%-18s %10s %10s %8s %8s %8s %8s %10s %8s\n",
		"group", "n", "schooling", "sd", "no edu", "primary", "second.", "exposure", "exposed")
	for _, s := range stats {
		p.Fprintf(&b, "%-18s %10d %10.2f %8.2f %8.3f %8.3f %8.3f %10.2f %8.3f\n",
			s.Group, s.N, s.MeanSchooling, s.SDSchooling,
			s.NoEducationRate, s.PrimaryRate, s.SecondaryRate,
			s.MeanExposure, s.ExposedShare)
	}
	return b.String()
}

// WriteSummary renders the statistics and writes them under the results
// directory.
func WriteSummary(path string, stats []GroupStats, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create results directory", err)
	}
	if err := os.WriteFile(path, []byte(RenderSummary(stats)), 0644); err != nil {
		return apperrors.NewStorageError("failed to write summary statistics", err)
	}
	logger.Info("summary statistics written",
		slog.String("path", path),
		slog.Int("groups", len(stats)))
	return nil
}

package runner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jarretangbazo/economics-senior-thesis/internal/acled"
	"github.com/jarretangbazo/economics-senior-thesis/internal/analysis"
	"github.com/jarretangbazo/economics-senior-thesis/internal/config"
	"github.com/jarretangbazo/economics-senior-thesis/internal/dhs"
	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
	"github.com/jarretangbazo/economics-senior-thesis/internal/exporter"
	"github.com/jarretangbazo/economics-senior-thesis/internal/exposure"
	"github.com/jarretangbazo/economics-senior-thesis/internal/panel"
	"github.com/jarretangbazo/economics-senior-thesis/internal/regression"
	"github.com/jarretangbazo/economics-senior-thesis/pkg/contracts/domain"
)

// Stage identifiers.
const (
	StageIDAcled         = "acled"
	StageIDPanel         = "panel"
	StageIDLoadStateYear = "load-state-year"
	StageIDMerge         = "merge"
	StageIDLoadAnalysis  = "load-analysis"
	StageIDRegression    = "regression"
	StageIDFigures       = "figures"
)

// AcledStage loads and cleans the yearly conflict extracts, writing the raw
// and clean event artifacts.
type AcledStage struct {
	Config *config.Config
	Paths  *config.Paths
	Logger *slog.Logger
}

func (s *AcledStage) ID() string   { return StageIDAcled }
func (s *AcledStage) Name() string { return "Conflict Event Processing" }

func (s *AcledStage) Validate(state *State) error {
	return s.Paths.RequireRawDir()
}

func (s *AcledStage) Execute(ctx context.Context, state *State) error {
	raw, _, err := acled.NewLoader(s.Logger).LoadAll(
		s.Paths.RawDir, s.Config.Study.StartYear, s.Config.Study.EndYear)
	if err != nil {
		return err
	}
	if err := exporter.WriteRawEvents(s.Paths.DataPath(config.RawEventsFile), raw); err != nil {
		return err
	}

	events, _ := acled.NewCleaner(acled.DefaultCleanerConfig(), s.Logger).Clean(raw)
	if err := exporter.WriteCleanEvents(s.Paths.DataPath(config.CleanEventsFile), events); err != nil {
		return err
	}

	state.Events = events
	return nil
}

// PanelStage aggregates cleaned events to the LGA-year panel, builds
// cumulative exposure, and collapses to state-year cells.
type PanelStage struct {
	Paths  *config.Paths
	Logger *slog.Logger
}

func (s *PanelStage) ID() string   { return StageIDPanel }
func (s *PanelStage) Name() string { return "Panel Aggregation" }

func (s *PanelStage) Validate(state *State) error {
	if len(state.Events) == 0 {
		return apperrors.NewValidationError("no cleaned events to aggregate", nil)
	}
	return nil
}

func (s *PanelStage) Execute(ctx context.Context, state *State) error {
	cells := panel.NewAggregator(s.Logger).Aggregate(state.Events)
	cells = panel.BuildCumulative(cells, s.Logger)
	if err := exporter.WritePanel(s.Paths.DataPath(config.LGAYearPanelFile), cells); err != nil {
		return err
	}

	stateYear := panel.AggregateStateYear(cells, s.Logger)
	if err := exporter.WriteStateYear(s.Paths.DataPath(config.StateYearFile), stateYear); err != nil {
		return err
	}

	state.Panel = cells
	state.StateYear = stateYear
	return nil
}

// LoadStateYearStage reads a previously written state-year artifact into
// the run state, letting the survey merge run as its own binary.
type LoadStateYearStage struct {
	Paths  *config.Paths
	Logger *slog.Logger
}

func (s *LoadStateYearStage) ID() string   { return StageIDLoadStateYear }
func (s *LoadStateYearStage) Name() string { return "State-Year Panel Load" }

func (s *LoadStateYearStage) Validate(state *State) error {
	if _, err := os.Stat(s.Paths.DataPath(config.StateYearFile)); err != nil {
		return apperrors.NewNotFoundError("state-year artifact missing, run acled-process first", err)
	}
	return nil
}

func (s *LoadStateYearStage) Execute(ctx context.Context, state *State) error {
	cells, err := exporter.ReadStateYear(s.Paths.DataPath(config.StateYearFile))
	if err != nil {
		return err
	}
	state.StateYear = cells
	return nil
}

// LoadAnalysisStage reads a previously written analysis dataset into the
// run state, letting estimation run as its own binary.
type LoadAnalysisStage struct {
	Paths  *config.Paths
	Logger *slog.Logger
}

func (s *LoadAnalysisStage) ID() string   { return StageIDLoadAnalysis }
func (s *LoadAnalysisStage) Name() string { return "Analysis Dataset Load" }

func (s *LoadAnalysisStage) Validate(state *State) error {
	if _, err := os.Stat(s.Paths.DataPath(config.AnalysisDatasetFile)); err != nil {
		return apperrors.NewNotFoundError("analysis dataset missing, run merge-data first", err)
	}
	return nil
}

func (s *LoadAnalysisStage) Execute(ctx context.Context, state *State) error {
	respondents, err := exporter.ReadAnalysisDataset(s.Paths.DataPath(config.AnalysisDatasetFile))
	if err != nil {
		return err
	}
	state.Respondents = respondents
	return nil
}

// MergeStage loads DHS respondents, matches school-age exposure against the
// state-year panel, labels treatment groups, and writes the analysis
// dataset. When no DHS extract exists a deterministic synthetic sample
// stands in so the downstream stages stay runnable.
type MergeStage struct {
	Paths  *config.Paths
	Logger *slog.Logger

	// Workers bounds the exposure matcher's parallelism; zero means one
	// worker per CPU.
	Workers int
}

func (s *MergeStage) ID() string   { return StageIDMerge }
func (s *MergeStage) Name() string { return "Survey Merge" }

func (s *MergeStage) Validate(state *State) error {
	if len(state.StateYear) == 0 {
		return apperrors.NewValidationError("no state-year panel to match against", nil)
	}
	return nil
}

func (s *MergeStage) Execute(ctx context.Context, state *State) error {
	respondents, err := s.loadRespondents()
	if err != nil {
		return err
	}

	matcher := exposure.NewMatcher(state.StateYear, s.Logger, s.Workers)
	if _, err := matcher.Match(ctx, respondents); err != nil {
		return err
	}
	exposure.NewLabeler(s.Logger).Label(respondents)

	if err := exporter.WriteAnalysisDataset(s.Paths.DataPath(config.AnalysisDatasetFile), respondents); err != nil {
		return err
	}

	state.Respondents = respondents
	return nil
}

func (s *MergeStage) loadRespondents() ([]domain.Respondent, error) {
	path := s.Paths.DataPath(config.DHSFile)
	if _, err := os.Stat(path); err != nil {
		s.Logger.Warn("DHS extract not found, generating synthetic sample",
			slog.String("path", path))
		return dhs.GenerateSynthetic(5000, 2018, 1), nil
	}
	respondents, _, err := dhs.NewLoader(s.Logger).Load(path)
	return respondents, err
}

// RegressionStage fits the specification battery over the analysis dataset
// and writes the coefficient artifacts.
type RegressionStage struct {
	Paths  *config.Paths
	Logger *slog.Logger
}

func (s *RegressionStage) ID() string   { return StageIDRegression }
func (s *RegressionStage) Name() string { return "Econometric Analysis" }

func (s *RegressionStage) Validate(state *State) error {
	if len(state.Respondents) == 0 {
		return apperrors.NewValidationError("no analysis dataset to estimate over", nil)
	}
	return nil
}

func (s *RegressionStage) Execute(ctx context.Context, state *State) error {
	results := regression.NewRunner(s.Logger).FitAll(regression.Battery(), state.Respondents)
	if len(results) == 0 {
		return apperrors.NewValidationError("every specification failed to estimate", nil)
	}

	if err := regression.WriteResults(s.Paths.ResultsPath(config.RegressionFile), results); err != nil {
		return err
	}
	text := regression.RenderAll(results)
	if err := os.MkdirAll(filepath.Dir(s.Paths.ResultsPath(config.RegressionTextFile)), 0755); err != nil {
		return apperrors.NewStorageError("failed to create results directory", err)
	}
	if err := os.WriteFile(s.Paths.ResultsPath(config.RegressionTextFile), []byte(text), 0644); err != nil {
		return apperrors.NewStorageError("failed to write regression tables", err)
	}
	return nil
}

// FiguresStage renders the thesis figures and summary statistics.
type FiguresStage struct {
	Paths  *config.Paths
	Logger *slog.Logger
}

func (s *FiguresStage) ID() string   { return StageIDFigures }
func (s *FiguresStage) Name() string { return "Figures and Summaries" }

func (s *FiguresStage) Validate(state *State) error {
	if len(state.Respondents) == 0 {
		return apperrors.NewValidationError("no analysis dataset to plot", nil)
	}
	return nil
}

func (s *FiguresStage) Execute(ctx context.Context, state *State) error {
	stats := analysis.Summarize(state.Respondents)
	if err := analysis.WriteSummary(s.Paths.ResultsPath(config.SummaryFile), stats, s.Logger); err != nil {
		return err
	}
	return analysis.NewPlotter(s.Logger).RenderAll(s.Paths.FiguresDir, state.Respondents)
}

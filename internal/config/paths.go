package config

import (
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
)

// Output artifact file names. Each is a delimited tabular file written under
// the data or results directory.
const (
	RawEventsFile       = "acled_nigeria_raw.csv"
	CleanEventsFile     = "acled_nigeria_clean.csv"
	LGAYearPanelFile    = "acled_lga_year.csv"
	StateYearFile       = "state_year_conflict.csv"
	DHSFile             = "dhs_education_clean.csv"
	AnalysisDatasetFile = "analysis_dataset.csv"
	RegressionFile      = "regression_results.csv"
	RegressionTextFile  = "regression_results.txt"
	SummaryFile         = "summary_statistics.txt"
)

// Paths resolves every artifact location from the configured directories.
type Paths struct {
	DataDir    string
	RawDir     string
	ResultsDir string
	FiguresDir string
}

// NewPaths builds a Paths from the configuration, resolving relative
// directories against the current working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	p := &Paths{
		DataDir:    cfg.DataDir,
		RawDir:     cfg.RawDir,
		ResultsDir: cfg.ResultsDir,
		FiguresDir: cfg.FiguresDir,
	}

	for _, dir := range []*string{&p.DataDir, &p.RawDir, &p.ResultsDir, &p.FiguresDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to resolve path", err)
		}
		*dir = abs
	}

	return p, nil
}

// EnsureDirectories creates the writable directories if they do not exist.
// The raw input directory is deliberately not created here: its absence is a
// configuration error, not something to paper over.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ResultsDir, p.FiguresDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}
	return nil
}

// RequireRawDir verifies the raw input directory exists. Called before any
// output is written so a misconfigured run terminates with a clear
// diagnostic.
func (p *Paths) RequireRawDir() error {
	info, err := os.Stat(p.RawDir)
	if err != nil {
		return apperrors.NewConfigError(
			fmt.Sprintf("raw data directory not found: %s", p.RawDir), err)
	}
	if !info.IsDir() {
		return apperrors.NewConfigError(
			fmt.Sprintf("raw data path is not a directory: %s", p.RawDir), nil)
	}
	return nil
}

// RawYearFile returns the expected path of the raw events file for a year.
// The loader also probes the .xlsx variant of the same name.
func (p *Paths) RawYearFile(year int) string {
	return filepath.Join(p.RawDir, fmt.Sprintf("acled_nga_%d.csv", year))
}

// DataPath returns the path of a data artifact.
func (p *Paths) DataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// ResultsPath returns the path of a results artifact.
func (p *Paths) ResultsPath(filename string) string {
	return filepath.Join(p.ResultsDir, filename)
}

// FigurePath returns the path of a generated figure.
func (p *Paths) FigurePath(filename string) string {
	return filepath.Join(p.FiguresDir, filename)
}

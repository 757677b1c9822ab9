package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1997, cfg.Study.StartYear)
	assert.Equal(t, 2019, cfg.Study.EndYear)
	assert.Equal(t, "Nigeria", cfg.Study.Country)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
study:
  start_year: 2000
  end_year: 2010
  country: Nigeria
paths:
  data_dir: /tmp/thesis/data
  raw_dir: /tmp/thesis/data/raw
  results_dir: /tmp/thesis/results
  figures_dir: /tmp/thesis/results/figures
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.Study.StartYear)
	assert.Equal(t, 2010, cfg.Study.EndYear)
	assert.Equal(t, "/tmp/thesis/data", cfg.Paths.DataDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("study:\n  start_year: 2000\n"), 0644))

	t.Setenv("THESIS_STUDY_START_YEAR", "2005")

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, 2005, cfg.Study.StartYear)
}

func TestValidate_StartAfterEnd(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Study.StartYear = 2020
	cfg.Study.EndYear = 2010

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestValidate_BadLoggingLevel(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Years(t *testing.T) {
	cfg := &Config{Study: StudyConfig{StartYear: 2010, EndYear: 2012}}
	assert.Equal(t, []int{2010, 2011, 2012}, cfg.Years())
}

func TestPaths_ArtifactLocations(t *testing.T) {
	p, err := NewPaths(PathsConfig{
		DataDir:    "/tmp/thesis/data",
		RawDir:     "/tmp/thesis/data/raw",
		ResultsDir: "/tmp/thesis/results",
		FiguresDir: "/tmp/thesis/results/figures",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/thesis/data/raw/acled_nga_2010.csv", p.RawYearFile(2010))
	assert.Equal(t, "/tmp/thesis/data/acled_lga_year.csv", p.DataPath(LGAYearPanelFile))
	assert.Equal(t, "/tmp/thesis/results/figures/did_visual.png", p.FigurePath("did_visual.png"))
}

func TestPaths_RequireRawDir(t *testing.T) {
	dir := t.TempDir()

	p, err := NewPaths(PathsConfig{
		DataDir:    dir,
		RawDir:     filepath.Join(dir, "missing"),
		ResultsDir: dir,
		FiguresDir: dir,
	})
	require.NoError(t, err)

	err = p.RequireRawDir()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))

	require.NoError(t, os.MkdirAll(p.RawDir, 0755))
	assert.NoError(t, p.RequireRawDir())
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := t.TempDir()

	p, err := NewPaths(PathsConfig{
		DataDir:    filepath.Join(base, "data"),
		RawDir:     filepath.Join(base, "data", "raw"),
		ResultsDir: filepath.Join(base, "results"),
		FiguresDir: filepath.Join(base, "results", "figures"),
	})
	require.NoError(t, err)
	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.DataDir, p.ResultsDir, p.FiguresDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Raw input dir must not be silently created.
	_, err = os.Stat(p.RawDir)
	assert.True(t, os.IsNotExist(err))
}

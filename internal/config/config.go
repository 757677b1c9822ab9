// Package config holds the static configuration surface of the pipeline:
// input/output directories, the study year range and country filter, and
// logging settings. Configuration is explicit — one struct loaded at startup
// and passed into each component — never ambient state.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
)

// Config represents the complete pipeline configuration
type Config struct {
	Study   StudyConfig   `yaml:"study" envconfig:"STUDY"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// StudyConfig contains the study parameters
type StudyConfig struct {
	StartYear int    `yaml:"start_year" envconfig:"START_YEAR" validate:"required,min=1900"`
	EndYear   int    `yaml:"end_year" envconfig:"END_YEAR" validate:"required,min=1900"`
	Country   string `yaml:"country" envconfig:"COUNTRY" validate:"required"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	RawDir     string `yaml:"raw_dir" envconfig:"RAW_DIR" validate:"required"`
	ResultsDir string `yaml:"results_dir" envconfig:"RESULTS_DIR" validate:"required"`
	FiguresDir string `yaml:"figures_dir" envconfig:"FIGURES_DIR" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns the built-in configuration. The year range covers the
// pre-conflict period through 2019 to allow before/after comparison.
func Default() Config {
	return Config{
		Study: StudyConfig{
			StartYear: 1997,
			EndYear:   2019,
			Country:   "Nigeria",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			RawDir:     "data/ACLED_raw_by_year",
			ResultsDir: "results",
			FiguresDir: "results/figures",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: "logs/pipeline.log",
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file, then environment variables (prefix THESIS), with
// later layers taking precedence.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, apperrors.NewConfigError("failed to load config file", err)
			}
		}
	}

	if err := envconfig.Process("THESIS", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and cross-field invariants.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}

	if c.Study.StartYear > c.Study.EndYear {
		return apperrors.NewConfigError(
			fmt.Sprintf("start year %d is after end year %d", c.Study.StartYear, c.Study.EndYear), nil)
	}

	return nil
}

// Years returns the inclusive list of study years.
func (c *Config) Years() []int {
	years := make([]int, 0, c.Study.EndYear-c.Study.StartYear+1)
	for y := c.Study.StartYear; y <= c.Study.EndYear; y++ {
		years = append(years, y)
	}
	return years
}

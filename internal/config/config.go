package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
)

// Snapshot store backends
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreSheets   = "sheets"
)

// ReportExclusion removes shifts from the coverage report on dates matched by RRule,
// e.g. a ward closed on public holidays
type ReportExclusion struct {
	RRule  string   `yaml:"rrule" validate:"required"`
	Shifts []string `yaml:"shifts,omitempty" validate:"dive,oneof=early late night"`
}

// HTTPConfig configures the JSON service
type HTTPConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// SummaryConfig configures the emailed coverage summary
type SummaryConfig struct {
	Recipients  []string `yaml:"recipients,omitempty" validate:"dive,email"`
	GmailSender string   `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	Subject     string   `yaml:"subject,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Store           string `yaml:"store" validate:"required,oneof=file postgres sheets"`
	SnapshotPath    string `yaml:"snapshotPath,omitempty" validate:"required_if=Store file"`
	DatabaseURL     string `yaml:"databaseURL,omitempty" validate:"required_if=Store postgres"`
	DatabaseSheetID string `yaml:"databaseSheetID,omitempty" validate:"required_if=Store sheets"`
	UnitID          string `yaml:"unitID" validate:"required"`

	// ReportRRule expands the dates of the coverage report, e.g. FREQ=DAILY;COUNT=14
	ReportRRule      string            `yaml:"reportRRule" validate:"required"`
	ReportExclusions []ReportExclusion `yaml:"reportExclusions,omitempty" validate:"dive"`

	// ScreeningConcurrency caps simultaneous move simulations (0 = one per candidate)
	ScreeningConcurrency int `yaml:"screeningConcurrency" validate:"min=0"`

	HTTP    HTTPConfig    `yaml:"http"`
	Summary SummaryConfig `yaml:"summary"`
	LogDir  string        `yaml:"logDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates shift_cockpit_config.yaml from the current or home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" looks for "shift_cockpit_config.test.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findFile(configFileName(env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Config{
		HTTP: HTTPConfig{Addr: ":8080"},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := rrule.StrToRRule(cfg.ReportRRule); err != nil {
		return fmt.Errorf("invalid reportRRule: %w", err)
	}

	for i, exclusion := range cfg.ReportExclusions {
		if _, err := rrule.StrToRRule(exclusion.RRule); err != nil {
			return fmt.Errorf("invalid rrule in reportExclusions[%d]: %w", i, err)
		}
	}

	return nil
}

// ExcludedShifts returns the shifts an exclusion removes; an empty list means every shift
func (e ReportExclusion) ExcludedShifts() ([]coverage.ShiftLabel, error) {
	if len(e.Shifts) == 0 {
		return coverage.Shifts, nil
	}
	shifts := make([]coverage.ShiftLabel, 0, len(e.Shifts))
	for _, s := range e.Shifts {
		shift, err := coverage.ParseShiftLabel(s)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}

func configFileName(env string) string {
	if env == "" {
		return "shift_cockpit_config.yaml"
	}
	return "shift_cockpit_config." + env + ".yaml"
}

// findFile searches for name in the current directory, then the home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}

package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"VolumeProfile/internal/calculator"
)

// EnvPrefix prefixes every environment override, e.g. VOLPROFILE_PROFILE_BINS.
const EnvPrefix = "VOLPROFILE"

// Config holds all application configuration.
type Config struct {
	Profile  ProfileConfig  `yaml:"profile" envconfig:"PROFILE"`
	Input    InputConfig    `yaml:"input" envconfig:"INPUT"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Schedule ScheduleConfig `yaml:"schedule" envconfig:"SCHEDULE"`
	Log      LogConfig      `yaml:"log" envconfig:"LOG"`
}

// Leaf fields carry no envconfig tag: envconfig also looks a tagged name up
// without the prefix, which would let e.g. $PATH leak into input.path.

// ProfileConfig holds the volume profile parameters. Bins and Window are
// read as numbers and must turn out to be positive integers.
type ProfileConfig struct {
	Bins    float64 `yaml:"bins"`
	Window  float64 `yaml:"window"`
	Layout  string  `yaml:"layout" validate:"omitempty,oneof=range origin"`
	Workers int     `yaml:"workers" validate:"gte=0"`
}

// InputConfig names the series file and its columns.
type InputConfig struct {
	Path         string `yaml:"path"`
	Sheet        string `yaml:"sheet"`
	CloseColumn  string `yaml:"close_column" split_words:"true"`
	VolumeColumn string `yaml:"volume_column" split_words:"true"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format    string `yaml:"format" validate:"oneof=text json"`
	Precision int32  `yaml:"precision" validate:"gte=0,lte=12"`
	Tail      int    `yaml:"tail" validate:"gte=0"`
}

// ScheduleConfig enables periodic recomputation when Cron is set.
type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
}

// Default returns the configuration used when neither file nor environment
// sets a value.
func Default() *Config {
	return &Config{
		Profile: ProfileConfig{
			Bins:   calculator.DefaultBins,
			Window: calculator.DefaultWindow,
			Layout: calculator.LayoutPriceRange.String(),
		},
		Output: OutputConfig{Format: "text", Precision: 4, Tail: 1},
		Log:    LogConfig{Level: "info"},
	}
}

// Load starts from Default, decodes the YAML file over it, then applies
// environment variable overrides. Keys absent from the file keep their
// default, so an explicit zero reaches Validate. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides; unset variables leave the field alone.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read env overrides: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints and the profile parameters.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	if _, err := c.Params(); err != nil {
		return err
	}
	return nil
}

// Params converts the profile section into calculator parameters.
func (c *Config) Params() (calculator.Params, error) {
	p, err := calculator.ParamsFromFloat(c.Profile.Bins, c.Profile.Window)
	if err != nil {
		return p, err
	}
	if p.Layout, err = calculator.ParseLayout(c.Profile.Layout); err != nil {
		return p, err
	}
	p.Workers = c.Profile.Workers
	return p, nil
}

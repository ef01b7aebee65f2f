package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/papapumpkin/linkrank/internal/logging"
	"github.com/papapumpkin/linkrank/internal/output"
	"github.com/papapumpkin/linkrank/internal/rank"
)

// ErrInvalid is returned when a loaded value fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all runtime configuration for a linkrank invocation.
// Values are populated from .linkrank.yaml, LINKRANK_* env vars, and CLI flags.
type Config struct {
	// Iterations overrides the count from the input header when >= 0.
	Iterations  int     `mapstructure:"iterations"`
	Variant     string  `mapstructure:"variant"`
	Damping     float64 `mapstructure:"damping"`
	Format      string  `mapstructure:"format"`
	Precision   int     `mapstructure:"precision"`
	EventsFile  string  `mapstructure:"events_file"`
	MetricsFile string  `mapstructure:"metrics_file"`
	Trace       bool    `mapstructure:"trace"`
	LogLevel    string  `mapstructure:"log_level"`
	LogJSON     bool    `mapstructure:"log_json"`
	Verbose     bool    `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("iterations", -1)
	viper.SetDefault("variant", string(rank.VariantUndamped))
	viper.SetDefault("damping", 0.85)
	viper.SetDefault("format", string(output.FormatText))
	viper.SetDefault("precision", 2)
	viper.SetDefault("events_file", "")
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("trace", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_json", false)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and ranged fields.
func (c Config) Validate() error {
	if _, err := c.RankOptions(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// RankOptions converts the rank settings into engine options.
func (c Config) RankOptions() (rank.Options, error) {
	v, err := rank.ParseVariant(c.Variant)
	if err != nil {
		return rank.Options{}, err
	}
	opts := rank.DefaultOptions()
	opts.Variant = v
	opts.Damping = c.Damping
	if err := opts.Validate(); err != nil {
		return rank.Options{}, err
	}
	return opts, nil
}

// OutputFormat returns the parsed output format.
func (c Config) OutputFormat() output.Format {
	f, _ := output.ParseFormat(c.Format)
	return f
}

// Logging returns the logger settings; Verbose forces debug.
func (c Config) Logging() logging.Config {
	lc := logging.Config{Level: c.LogLevel, JSON: c.LogJSON}
	if c.Verbose {
		lc.Level = "debug"
	}
	return lc
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rewired-gh/besttime/internal/binning"
)

// EnvPrefix prefixes environment overrides, e.g. BESTTIME_REPORT_FORMAT.
const EnvPrefix = "BESTTIME"

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Binning BinningConfig `mapstructure:"binning"`
	Report  ReportConfig  `mapstructure:"report"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// InputConfig describes where lines come from and how they are split
type InputConfig struct {
	Path      string `mapstructure:"path"` // "-" reads stdin
	Delimiter string `mapstructure:"delimiter"`
}

// BinningConfig holds the time-of-day bin layout
type BinningConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	StartMinute     int  `mapstructure:"start_minute"`
	IntervalMinutes int  `mapstructure:"interval_minutes"`
	Count           int  `mapstructure:"count"`
}

// ReportConfig holds report output configuration
type ReportConfig struct {
	Format         string `mapstructure:"format"`
	Output         string `mapstructure:"output"` // empty writes to stdout
	IncludeRecords bool   `mapstructure:"include_records"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file, a .env file in the working
// directory and environment variables, in increasing order of precedence.
// An empty path skips the config file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Input defaults
	v.SetDefault("input.path", "-")
	v.SetDefault("input.delimiter", binning.DefaultDelimiter)

	// Binning defaults: hourly bins over the whole day
	v.SetDefault("binning.enabled", false)
	v.SetDefault("binning.start_minute", 0)
	v.SetDefault("binning.interval_minutes", 60)
	v.SetDefault("binning.count", 24)

	// Report defaults
	v.SetDefault("report.format", "table")
	v.SetDefault("report.output", "")
	v.SetDefault("report.include_records", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Input config
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("input.delimiter must be a single character")
	}

	// Validate Binning config
	if c.Binning.Enabled {
		if err := c.BinSpec().Validate(); err != nil {
			return fmt.Errorf("binning: %w", err)
		}
	}

	// Validate Report config
	validFormats := map[string]bool{"table": true, "json": true, "yaml": true}
	if !validFormats[c.Report.Format] {
		return fmt.Errorf("report.format must be one of: table, json, yaml")
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// BinSpec returns the configured bin layout.
func (c *Config) BinSpec() binning.BinSpec {
	return binning.BinSpec{
		StartMinute:     c.Binning.StartMinute,
		IntervalMinutes: c.Binning.IntervalMinutes,
		Count:           c.Binning.Count,
	}
}

// BinnerConfig translates the configuration into binning.Config.
func (c *Config) BinnerConfig() binning.Config {
	cfg := binning.Config{Delimiter: c.Input.Delimiter}
	if c.Binning.Enabled {
		spec := c.BinSpec()
		cfg.Bins = &spec
	}
	return cfg
}

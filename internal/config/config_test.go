package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/besttime/internal/binning"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
input:
  path: "./data/events.csv"
  delimiter: ";"

binning:
  enabled: true
  start_minute: 360
  interval_minutes: 30
  count: 32

report:
  format: "json"
  output: "./out/report.json"
  include_records: true

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./data/events.csv", cfg.Input.Path)
	assert.Equal(t, ";", cfg.Input.Delimiter)
	assert.True(t, cfg.Binning.Enabled)
	assert.Equal(t, 360, cfg.Binning.StartMinute)
	assert.Equal(t, 30, cfg.Binning.IntervalMinutes)
	assert.Equal(t, 32, cfg.Binning.Count)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, "./out/report.json", cfg.Report.Output)
	assert.True(t, cfg.Report.IncludeRecords)
	assert.Equal(t, "debug", cfg.Logging.Level)

	require.NoError(t, cfg.Validate())

	bc := cfg.BinnerConfig()
	assert.Equal(t, ";", bc.Delimiter)
	require.NotNil(t, bc.Bins)
	assert.Equal(t, binning.BinSpec{StartMinute: 360, IntervalMinutes: 30, Count: 32}, *bc.Bins)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "-", cfg.Input.Path)
	assert.Equal(t, ",", cfg.Input.Delimiter)
	assert.False(t, cfg.Binning.Enabled)
	assert.Equal(t, 0, cfg.Binning.StartMinute)
	assert.Equal(t, 60, cfg.Binning.IntervalMinutes)
	assert.Equal(t, 24, cfg.Binning.Count)
	assert.Equal(t, "table", cfg.Report.Format)
	assert.Empty(t, cfg.Report.Output)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	require.NoError(t, cfg.Validate())
	assert.Nil(t, cfg.BinnerConfig().Bins)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
binning:
  enabled: true
  interval_minutes: 15
  count: 96
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Binning.IntervalMinutes)
	assert.Equal(t, 96, cfg.Binning.Count)
	assert.Equal(t, 0, cfg.Binning.StartMinute)
	assert.Equal(t, "table", cfg.Report.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("BESTTIME_REPORT_FORMAT", "yaml")
	t.Setenv("BESTTIME_BINNING_ENABLED", "true")
	t.Setenv("BESTTIME_BINNING_COUNT", "12")

	cfg, err := Load(writeConfig(t, "report:\n  format: json\n"))
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Report.Format)
	assert.True(t, cfg.Binning.Enabled)
	assert.Equal(t, 12, cfg.Binning.Count)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, ":::not valid yaml{{{"))
	assert.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Input:   InputConfig{Path: "-", Delimiter: ","},
			Binning: BinningConfig{Enabled: true, StartMinute: 0, IntervalMinutes: 60, Count: 24},
			Report:  ReportConfig{Format: "table"},
			Logging: LoggingConfig{Level: "info", Format: "text"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty input path", func(c *Config) { c.Input.Path = "" }},
		{"empty delimiter", func(c *Config) { c.Input.Delimiter = "" }},
		{"long delimiter", func(c *Config) { c.Input.Delimiter = "::" }},
		{"bins past midnight", func(c *Config) { c.Binning.StartMinute = 30 }},
		{"zero interval", func(c *Config) { c.Binning.IntervalMinutes = 0 }},
		{"unknown report format", func(c *Config) { c.Report.Format = "xml" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "logfmt" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateRangeViolationIsWrapped(t *testing.T) {
	cfg := &Config{
		Input:   InputConfig{Path: "-", Delimiter: ","},
		Binning: BinningConfig{Enabled: true, StartMinute: 1, IntervalMinutes: 60, Count: 24},
		Report:  ReportConfig{Format: "table"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
	assert.ErrorIs(t, cfg.Validate(), binning.ErrRangeViolation)
}

func TestValidateIgnoresDisabledBins(t *testing.T) {
	cfg := &Config{
		Input:   InputConfig{Path: "-", Delimiter: ","},
		Binning: BinningConfig{Enabled: false, IntervalMinutes: 0},
		Report:  ReportConfig{Format: "yaml"},
		Logging: LoggingConfig{Level: "warn", Format: "json"},
	}
	assert.NoError(t, cfg.Validate())
}

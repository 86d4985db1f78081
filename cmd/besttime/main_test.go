package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/besttime/internal/calendar"
	"github.com/rewired-gh/besttime/internal/report"
	"github.com/rewired-gh/besttime/internal/timestamp"
)

const sampleInput = "2023-01-02T08:15:00Z,x\nnot-a-date,y\n2023-01-03T23:59:00Z,z\n"

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--log-level", "error"))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeReport(t *testing.T, data string) report.Report {
	t.Helper()
	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(data), &r))
	return r
}

func TestBinFromStdin(t *testing.T) {
	out, _, err := execute(t, sampleInput, "bin", "--format", "json")
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, "stdin", r.Source)
	assert.Equal(t, 3, r.Lines)
	assert.Equal(t, 2, r.Accepted)
	assert.Equal(t, 1, r.Rejected)
	assert.Equal(t, 1, r.Days[1].Count)
	assert.Equal(t, 1, r.Days[2].Count)
	assert.Nil(t, r.Days[1].Bins)
}

func TestBinFromFileWithBins(t *testing.T) {
	input := filepath.Join(t.TempDir(), "events.csv")
	require.NoError(t, os.WriteFile(input, []byte(sampleInput), 0644))

	out, _, err := execute(t, "", "bin", input, "--format", "json", "--interval", "360")
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, input, r.Source)
	require.Len(t, r.Days[1].Bins, 4)
	assert.Equal(t, "06:00-12:00", r.Days[1].Bins[1].Label)
	assert.Equal(t, 1, r.Days[1].Bins[1].Count)
	assert.Equal(t, 1, r.Days[2].Bins[3].Count)
}

func TestBinWritesReportFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out", "report.yaml")

	out, _, err := execute(t, sampleInput, "bin", "-", "--format", "yaml", "-o", output, "--records")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "day: Monday")
	assert.Contains(t, string(data), "payload: x")
}

func TestBinTableIsDefault(t *testing.T) {
	out, _, err := execute(t, sampleInput, "bin")
	require.NoError(t, err)
	assert.Contains(t, out, "Lines: 3  Accepted: 2  Rejected: 1")
	assert.Contains(t, out, "Monday")
}

func TestBinWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
input:
  delimiter: "|"
binning:
  enabled: true
  interval_minutes: 720
  count: 2
report:
  format: json
`), 0644))

	out, _, err := execute(t, "2023-01-02T08:15:00Z|x\n2023-01-02T08:15:00Z,y\n", "--config", cfgPath, "bin")
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, 1, r.Accepted)
	assert.Equal(t, 1, r.Rejected)
	require.Len(t, r.Days[1].Bins, 2)
	assert.Equal(t, 1, r.Days[1].Bins[0].Count)
}

func TestBinRejectsBinsPastMidnight(t *testing.T) {
	_, _, err := execute(t, sampleInput, "bin", "--start", "60", "--interval", "60", "--count", "24")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceed one day")
}

func TestBinMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "bin", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestWeekday(t *testing.T) {
	out, _, err := execute(t, "", "weekday", "2000-01-01T00:00:00Z", "2024-02-29T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01T00:00:00Z\tSaturday\n2024-02-29T12:00:00Z\tThursday\n", out)
}

func TestWeekdayReportsFailures(t *testing.T) {
	out, errOut, err := execute(t, "", "weekday", "2023-01-01T00:00:00Z", "garbage", "1850-01-01T00:00:00Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Equal(t, "2023-01-01T00:00:00Z\tSunday\n", out)
	assert.Contains(t, errOut, "garbage")
	assert.Contains(t, errOut, "unsupported century")
	assert.ErrorIs(t, err, timestamp.ErrParseFailure)
	assert.ErrorIs(t, err, calendar.ErrUnsupportedCentury)
}

func TestBinRejectsOverflowingBinCount(t *testing.T) {
	_, _, err := execute(t, sampleInput, "bin", "--interval", "4", "--count", "4611686018427387904")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceed one day")
}

func TestBinStrict(t *testing.T) {
	out, _, err := execute(t, sampleInput, "bin", "--format", "json", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 lines rejected")
	assert.ErrorIs(t, err, timestamp.ErrParseFailure)

	r := decodeReport(t, out)
	assert.Equal(t, 2, r.Accepted)

	_, _, err = execute(t, "2023-01-02T08:15:00Z,x\n", "bin", "--format", "json", "--strict")
	assert.NoError(t, err)
}

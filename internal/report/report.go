// Package report turns a binning run into a presentable summary and writes it
// as a text table, JSON or YAML.
//
// File output is atomic: the report is written to a temporary file next to
// the target and renamed into place, so a reader never sees a partial report.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/rewired-gh/besttime/internal/binning"
	"github.com/rewired-gh/besttime/internal/calendar"
	"github.com/rewired-gh/besttime/internal/models"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Report summarizes one binning run
type Report struct {
	RunID       string         `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Source      string         `json:"source,omitempty" yaml:"source,omitempty"`
	Lines       int            `json:"lines" yaml:"lines"`
	Accepted    int            `json:"accepted" yaml:"accepted"`
	Rejected    int            `json:"rejected" yaml:"rejected"`
	Days        []DayReport    `json:"days" yaml:"days"`
	Errors      map[string]int `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// DayReport holds the totals for one weekday
type DayReport struct {
	Code    int             `json:"code" yaml:"code"`
	Day     string          `json:"day" yaml:"day"`
	Count   int             `json:"count" yaml:"count"`
	Bins    []BinReport     `json:"bins,omitempty" yaml:"bins,omitempty"`
	Records []models.Record `json:"records,omitempty" yaml:"records,omitempty"`
}

// BinReport holds the count of one time bin on one weekday
type BinReport struct {
	Label      string `json:"label" yaml:"label"`
	LowerLimit int    `json:"lower_limit" yaml:"lower_limit"`
	UpperLimit int    `json:"upper_limit" yaml:"upper_limit"`
	Count      int    `json:"count" yaml:"count"`
}

// Options controls what Build includes.
type Options struct {
	Source         string
	IncludeRecords bool
}

// Build summarizes res. Days are listed Sunday first.
func Build(res *binning.Result, opts Options) *Report {
	r := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Source:      opts.Source,
		Lines:       res.Lines,
		Accepted:    res.Accepted(),
		Rejected:    len(res.Errors),
		Days:        make([]DayReport, 0, calendar.DaysPerWeek),
	}
	if len(res.Errors) > 0 {
		r.Errors = res.ErrorCounts()
	}

	for _, day := range calendar.AllDays() {
		records := res.Buckets.Day(day)
		dr := DayReport{
			Code:  day.Code(),
			Day:   day.String(),
			Count: len(records),
		}
		if res.Bins != nil {
			dr.Bins = make([]BinReport, 0, len(res.Bins[day]))
			for _, b := range res.Bins[day] {
				dr.Bins = append(dr.Bins, BinReport{
					Label:      b.Label(),
					LowerLimit: b.LowerLimit,
					UpperLimit: b.UpperLimit,
					Count:      b.Count,
				})
			}
		}
		if opts.IncludeRecords {
			dr.Records = records
		}
		r.Days = append(r.Days, dr)
	}

	return r
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *Report, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	case FormatTable, "":
		_, err := io.WriteString(w, renderTable(r))
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteFile renders r into path, replacing any existing file atomically.
func WriteFile(path string, r *Report, format string) error {
	// Create output directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf strings.Builder
	if err := Write(&buf, r, format); err != nil {
		return err
	}

	// Write to temporary file first (atomic write)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath) // Clean up temp file on rename failure
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

func renderTable(r *Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Run %s\n", r.RunID)
	if r.Source != "" {
		fmt.Fprintf(&sb, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(&sb, "Lines: %s  Accepted: %s  Rejected: %s\n\n",
		humanize.Comma(int64(r.Lines)), humanize.Comma(int64(r.Accepted)), humanize.Comma(int64(r.Rejected)))

	rows := make([][]string, 0, len(r.Days))
	for _, d := range r.Days {
		share := 0.0
		if r.Accepted > 0 {
			share = float64(d.Count) / float64(r.Accepted) * 100
		}
		rows = append(rows, []string{d.Day, humanize.Comma(int64(d.Count)), fmt.Sprintf("%.1f%%", share)})
	}
	sb.WriteString(table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DAY", "COUNT", "SHARE").
		Rows(rows...).
		String())
	sb.WriteString("\n")

	if bins := binTable(r); bins != "" {
		sb.WriteString("\n")
		sb.WriteString(bins)
		sb.WriteString("\n")
	}

	if len(r.Errors) > 0 {
		kinds := make([]string, 0, len(r.Errors))
		for kind := range r.Errors {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)

		sb.WriteString("\nRejected lines:\n")
		for _, kind := range kinds {
			fmt.Fprintf(&sb, "  %-20s %s\n", kind, humanize.Comma(int64(r.Errors[kind])))
		}
	}

	return sb.String()
}

// binTable lays bins out as rows and weekdays as columns.
func binTable(r *Report) string {
	if len(r.Days) == 0 || r.Days[0].Bins == nil {
		return ""
	}

	headers := []string{"TIME"}
	for _, d := range r.Days {
		headers = append(headers, d.Day[:3])
	}

	rows := make([][]string, 0, len(r.Days[0].Bins))
	for i, b := range r.Days[0].Bins {
		row := []string{b.Label}
		for _, d := range r.Days {
			row = append(row, humanize.Comma(int64(d.Bins[i].Count)))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

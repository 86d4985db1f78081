package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/besttime/internal/binning"
	"github.com/rewired-gh/besttime/internal/logger"
	"github.com/rewired-gh/besttime/internal/models"
	"github.com/rewired-gh/besttime/internal/report"
)

type binOptions struct {
	format    string
	output    string
	delimiter string
	start     int
	interval  int
	count     int
	records   bool
	strict    bool
}

func newBinCmd(a *app) *cobra.Command {
	opts := &binOptions{}

	cmd := &cobra.Command{
		Use:   "bin [file]",
		Short: "Count records per weekday and time bin",
		Long: `Reads records from file (or stdin when file is "-" or omitted and the
configuration names no input) and writes a per-weekday report.

Time-of-day bins are enabled by binning.enabled in the configuration or by
passing any of --interval, --start or --count.

Example:
  besttime bin events.csv --interval 60 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBin(cmd, a, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "", "Report format: table | json | yaml")
	f.StringVarP(&opts.output, "output", "o", "", "Write the report to this file instead of stdout")
	f.StringVar(&opts.delimiter, "delimiter", "", "Character separating timestamp and payload")
	f.IntVar(&opts.start, "start", 0, "First time bin starts this many minutes after midnight")
	f.IntVar(&opts.interval, "interval", 0, "Time bin width in minutes")
	f.IntVar(&opts.count, "count", 0, "Number of time bins")
	f.BoolVar(&opts.records, "records", false, "Include every accepted record in the report")
	f.BoolVar(&opts.strict, "strict", false, "Fail after writing the report if any line was rejected")

	return cmd
}

func runBin(cmd *cobra.Command, a *app, opts *binOptions, args []string) error {
	cfg := a.cfg
	f := cmd.Flags()

	if len(args) == 1 {
		cfg.Input.Path = args[0]
	}
	if f.Changed("delimiter") {
		cfg.Input.Delimiter = opts.delimiter
	}
	if f.Changed("format") {
		cfg.Report.Format = opts.format
	}
	if f.Changed("output") {
		cfg.Report.Output = opts.output
	}
	if f.Changed("records") {
		cfg.Report.IncludeRecords = opts.records
	}
	if f.Changed("start") || f.Changed("interval") || f.Changed("count") {
		cfg.Binning.Enabled = true
		if f.Changed("start") {
			cfg.Binning.StartMinute = opts.start
		}
		if f.Changed("interval") {
			cfg.Binning.IntervalMinutes = opts.interval
		}
		if f.Changed("count") {
			cfg.Binning.Count = opts.count
		} else if f.Changed("interval") && opts.interval > 0 {
			// Fill the rest of the day unless told otherwise.
			cfg.Binning.Count = (models.MinutesPerDay - cfg.Binning.StartMinute) / opts.interval
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	binner, err := binning.New(cfg.BinnerConfig())
	if err != nil {
		return err
	}

	in, source, closeInput, err := openInput(cmd, cfg.Input.Path)
	if err != nil {
		return err
	}
	defer closeInput()

	startTime := time.Now()
	logger.Info("Binning records from %s", source)
	res, err := binner.BinReader(in)
	if err != nil {
		return err
	}
	logger.Info("Binned %d of %d lines in %v (%d rejected)",
		res.Accepted(), res.Lines, time.Since(startTime), len(res.Errors))

	rep := report.Build(res, report.Options{Source: source, IncludeRecords: cfg.Report.IncludeRecords})
	if cfg.Report.Output == "" {
		if err := report.Write(cmd.OutOrStdout(), rep, cfg.Report.Format); err != nil {
			return err
		}
	} else {
		if err := report.WriteFile(cfg.Report.Output, rep, cfg.Report.Format); err != nil {
			return err
		}
		logger.Info("Report %s written to %s", rep.RunID, cfg.Report.Output)
	}

	if opts.strict {
		if err := res.Err(); err != nil {
			return fmt.Errorf("%d of %d lines rejected: %w", len(res.Errors), res.Lines, err)
		}
	}
	return nil
}

func openInput(cmd *cobra.Command, path string) (io.Reader, string, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), "stdin", func() {}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to open input: %w", err)
	}
	return file, path, func() {
		if err := file.Close(); err != nil {
			logger.Warn("Failed to close %s: %v", path, err)
		}
	}, nil
}

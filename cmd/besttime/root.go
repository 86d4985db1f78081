package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/besttime/internal/config"
	"github.com/rewired-gh/besttime/internal/logger"
)

// app carries state shared by subcommands once the root command has loaded it.
type app struct {
	configPath string
	logLevel   string
	verbose    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "besttime",
		Short: "Bucket timestamped records by weekday and time of day",
		Long: `besttime reads lines of the form "<timestamp>,<payload>", where the timestamp
is a UTC instant in YYYY-MM-DDTHH:MM:SSZ form between 1900 and 2199, and counts
how many records fall on each day of the week. Optionally each weekday is split
further into fixed-width time-of-day bins.

Lines that cannot be parsed are reported and skipped.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newBinCmd(a), newWeekdayCmd())
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return err
	}
	if a.configPath != "" {
		logger.Debug("Configuration loaded from %s", a.configPath)
	}

	a.cfg = cfg
	return nil
}

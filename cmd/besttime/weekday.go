package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/rewired-gh/besttime/internal/binning"
	"github.com/rewired-gh/besttime/internal/timestamp"
)

func newWeekdayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekday <timestamp>...",
		Short: "Print the day of week of each timestamp",
		Long: `Resolves each ` + timestamp.Layout + ` timestamp to its day of week.

Example:
  besttime weekday 2000-01-01T00:00:00Z 2024-02-29T12:00:00Z`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs error
			for _, arg := range args {
				_, day, err := binning.Resolve(arg)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", arg, err)
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", arg, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, day)
			}
			if errs != nil {
				return fmt.Errorf("%d of %d timestamps could not be resolved: %w",
					len(multierr.Errors(errs)), len(args), errs)
			}
			return nil
		},
	}
}

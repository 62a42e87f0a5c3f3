package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/LeviathanIsI/barkbase/cmd/barkfix/opts"
	"github.com/LeviathanIsI/barkbase/pkg/report"
	"github.com/LeviathanIsI/barkbase/pkg/runner"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(resolve opts.Resolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Run the configured rewrite jobs and write the results",
		Long: `Apply runs every job from the config file over its file tree.
It will:
1. Load and validate the config
2. Walk the tree once per job
3. Rewrite matching files in place, atomically
4. Print a summary of what changed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			o, err := resolve(ctx)
			if err != nil {
				return err
			}

			summary, err := runner.New(o.Config, o.Logger, o.Run).Run(ctx)
			if err != nil {
				return errors.Errorf("running jobs: %w", err)
			}

			formatter := report.NewConsoleFormatter(o.Verbose)
			formatter.PrintSummary(summary, o.TopN)

			if failed := len(summary.Errors()); failed > 0 {
				return errors.Errorf("%d files failed", failed)
			}
			return nil
		},
	}

	return cmd
}

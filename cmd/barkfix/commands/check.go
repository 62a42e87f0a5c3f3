package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/LeviathanIsI/barkbase/cmd/barkfix/opts"
	"github.com/LeviathanIsI/barkbase/pkg/report"
	"github.com/LeviathanIsI/barkbase/pkg/runner"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(resolve opts.Resolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the tree is fully rewritten, for CI",
		Long: `Check runs every job in dry-run mode and fails when any file would
change. A clean tree exits 0, so CI can enforce that every commit has the
rewrite rules already applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			o, err := resolve(ctx)
			if err != nil {
				return err
			}
			o.Run.DryRun = true

			summary, err := runner.New(o.Config, o.Logger, o.Run).Run(ctx)
			if err != nil {
				return errors.Errorf("running jobs: %w", err)
			}

			formatter := report.NewConsoleFormatter(o.Verbose)
			formatter.PrintSummary(summary, o.TopN)

			if failed := len(summary.Errors()); failed > 0 {
				return errors.Errorf("%d files failed", failed)
			}
			if summary.FilesChanged() > 0 {
				return errors.Errorf("%d files need rewriting, run barkfix apply", summary.FilesChanged())
			}

			o.Logger.Success("tree is fully rewritten")
			return nil
		},
	}

	return cmd
}

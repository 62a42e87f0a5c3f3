package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/LeviathanIsI/barkbase/cmd/barkfix/opts"
	"github.com/LeviathanIsI/barkbase/pkg/config"
	"github.com/LeviathanIsI/barkbase/pkg/report"
	"github.com/LeviathanIsI/barkbase/pkg/rules"
	"github.com/LeviathanIsI/barkbase/pkg/runner"
)

// NewThemeCmd creates a new theme command
func NewThemeCmd(resolve opts.Resolver) *cobra.Command {
	var (
		sets    []string
		include []string
	)

	cmd := &cobra.Command{
		Use:   "theme [root]",
		Short: "Run the built-in dark-mode rule sets without a config file",
		Long: `Theme runs the built-in dark-mode sets over a directory, no config file
needed. By default it runs the theme pairing table, the hover:+dark: syntax
fix and the hardcoded hex color swaps over every .jsx and .tsx file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			o, err := resolve(ctx)
			if err != nil {
				return err
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			cfg := &config.Config{Root: root}
			for _, name := range sets {
				if _, ok := rules.Lookup(name); !ok {
					return errors.Errorf("unknown builtin rule set: %s", name)
				}
				cfg.Jobs = append(cfg.Jobs, config.Job{
					Name:    name,
					Builtin: name,
					Include: include,
				})
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// the positional argument wins over --root, and --jobs only
			// applies to config-file jobs
			o.Run.Root = ""
			o.Run.Jobs = nil

			summary, err := runner.New(cfg, o.Logger, o.Run).Run(ctx)
			if err != nil {
				return errors.Errorf("running theme jobs: %w", err)
			}

			formatter := report.NewConsoleFormatter(o.Verbose)
			formatter.PrintSummary(summary, o.TopN)

			if failed := len(summary.Errors()); failed > 0 {
				return errors.Errorf("%d files failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sets, "sets", []string{"theme", "hover-dark-syntax", "hardcoded-colors"}, "builtin rule sets to run, in order")
	cmd.Flags().StringSliceVar(&include, "include", []string{"**/*.jsx", "**/*.tsx"}, "glob patterns of files to rewrite")

	return cmd
}

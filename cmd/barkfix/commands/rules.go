package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LeviathanIsI/barkbase/pkg/rules"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd() *cobra.Command {
	var showRules bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rule sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, set := range rules.Builtins() {
				fmt.Fprintf(out, "%s %s %s\n",
					color.New(color.Bold, color.FgCyan).Sprint(set.Name),
					color.New(color.Faint).Sprintf("(%s scope, %d rules)", set.Scope, len(set.Specs)),
					set.Description)

				if showRules {
					for _, spec := range set.Specs {
						fmt.Fprintf(out, "    %s %s\n",
							color.New(color.FgYellow).Sprintf("%-28s", spec.Name),
							spec.Match)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showRules, "all", false, "also list every rule in each set")

	return cmd
}

// Copyright 2025 BarkBase
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/LeviathanIsI/barkbase/cmd/barkfix/commands"
	"github.com/LeviathanIsI/barkbase/cmd/barkfix/opts"
	"github.com/LeviathanIsI/barkbase/pkg/config"
	"github.com/LeviathanIsI/barkbase/pkg/log"
	"github.com/LeviathanIsI/barkbase/pkg/runner"
)

var (
	// Flags
	configFile string
	rootDir    string
	dryRun     bool
	debug      bool
	verbose    bool
	jobNames   []string
	workers    int
	topN       int
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".barkfix.yaml", "config file path")
	cmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "override the config root directory")
	cmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "report changes without writing files")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also report unchanged files")
	cmd.PersistentFlags().StringSliceVarP(&jobNames, "jobs", "j", nil, "run only these jobs")
	cmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "max files processed concurrently")
	cmd.PersistentFlags().IntVar(&topN, "top", 10, "how many most-changed files the summary lists")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &zlog
}

// newRootOpts builds the shared options without touching the config file
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Logger:  log.New(os.Stdout, level),
		Verbose: verbose,
		TopN:    topN,
		Run: runner.Options{
			Root:    rootDir,
			DryRun:  dryRun,
			Jobs:    jobNames,
			Workers: workers,
		},
	}, nil
}

// newConfigOpts builds the shared options and loads the config file
func newConfigOpts(ctx context.Context) (*opts.RootOpts, error) {
	o, err := newRootOpts(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg

	return o, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "barkfix",
		Short: "Idempotent pattern rewriting for the barkbase codebase",
		Long: `barkfix applies ordered regex rule sets to a file tree: dark-mode class
pairing for the React frontend, authorizer injection for the CDK stacks and
Lambda handler patching. Every rule guards against its own output, so
running barkfix twice never changes a file twice.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewApplyCmd(newConfigOpts),
		commands.NewCheckCmd(newConfigOpts),
		commands.NewThemeCmd(newRootOpts),
		commands.NewRulesCmd(),
		newVersionCmd(),
	)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(FormatVersion())
		},
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

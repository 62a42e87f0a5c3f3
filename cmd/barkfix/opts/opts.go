package opts

import (
	"context"

	"github.com/LeviathanIsI/barkbase/pkg/config"
	"github.com/LeviathanIsI/barkbase/pkg/log"
	"github.com/LeviathanIsI/barkbase/pkg/runner"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config // nil for commands that build their own jobs
	Logger  *log.Logger
	Run     runner.Options
	Verbose bool
	TopN    int // how many most-changed files the summary lists
}

// Resolver builds RootOpts once flags are parsed. Commands that need the
// config file get a resolver that loads it; commands that build their own
// jobs get one that skips it.
type Resolver func(ctx context.Context) (*RootOpts, error)

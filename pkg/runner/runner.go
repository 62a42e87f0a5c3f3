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

// Package runner executes rewrite jobs over a file tree. Jobs run in config
// order; files within a job run in parallel. A failing file never aborts the
// run, it is recorded in the summary and the remaining files proceed.
package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/LeviathanIsI/barkbase/pkg/config"
	"github.com/LeviathanIsI/barkbase/pkg/log"
	"github.com/LeviathanIsI/barkbase/pkg/report"
	"github.com/LeviathanIsI/barkbase/pkg/rewrite"
	"github.com/LeviathanIsI/barkbase/pkg/walker"
)

// defaultWorkers bounds per-job file parallelism
const defaultWorkers = 8

// 🔧 Options controls a run
type Options struct {
	Root    string   // Overrides the config root when non-empty
	DryRun  bool     // Compute changes but write nothing
	Jobs    []string // Run only these jobs, empty means all
	Workers int      // Max files processed concurrently, 0 means default
}

// 🏃 Runner executes the jobs of one config
type Runner struct {
	cfg    *config.Config
	opts   Options
	logger *log.Logger
}

// 🏭 New creates a runner
func New(cfg *config.Config, logger *log.Logger, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	return &Runner{cfg: cfg, opts: opts, logger: logger}
}

// 🎯 Run executes the selected jobs in config order and returns the summary.
// The returned error covers setup problems only (unknown jobs, bad rules,
// bad globs); per-file failures land in the summary instead.
func (r *Runner) Run(ctx context.Context) (*report.Summary, error) {
	jobs, err := r.selectJobs()
	if err != nil {
		return nil, err
	}

	root := r.cfg.Root
	if r.opts.Root != "" {
		root = r.opts.Root
	}

	summary := report.New()
	for _, job := range jobs {
		if err := r.runJob(ctx, root, job, summary); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// selectJobs resolves the job filter against the config, keeping config order
func (r *Runner) selectJobs() ([]config.Job, error) {
	if len(r.opts.Jobs) == 0 {
		return r.cfg.Jobs, nil
	}

	wanted := make(map[string]bool, len(r.opts.Jobs))
	for _, name := range r.opts.Jobs {
		wanted[name] = true
	}

	var jobs []config.Job
	for _, job := range r.cfg.Jobs {
		if wanted[job.Name] {
			jobs = append(jobs, job)
			delete(wanted, job.Name)
		}
	}
	for name := range wanted {
		return nil, errors.Errorf("unknown job: %s", name)
	}
	return jobs, nil
}

// runJob walks the tree once for a job and rewrites every selected file
func (r *Runner) runJob(ctx context.Context, root string, job config.Job, summary *report.Summary) error {
	rs, scope, err := job.Resolve()
	if err != nil {
		return err
	}

	files, err := walker.Walk(ctx, root, job.Include, job.Exclude)
	if err != nil {
		return errors.Errorf("selecting files for job %s: %w", job.Name, err)
	}

	r.logger.StartJobOperation(ctx, log.JobOperation{
		Name:  job.Name,
		Scope: scope.String(),
		Root:  root,
		Rules: rs.Len(),
	})
	defer r.logger.EndJobOperation(ctx)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.opts.Workers)

	for _, rel := range files {
		rel := rel
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			outcome := r.processFile(egCtx, filepath.Join(root, filepath.FromSlash(rel)), rel, job.Name, rs, scope)
			if outcome != nil {
				summary.Record(*outcome)
				r.logger.LogFileOperation(egCtx, log.FileOperation{
					Path:         rel,
					Job:          job.Name,
					IsModified:   outcome.Changes > 0,
					IsDryRun:     r.opts.DryRun,
					IsFailed:     outcome.Err != nil,
					Replacements: outcome.Changes,
				})
			}
			return nil
		})
	}

	return eg.Wait()
}

// processFile rewrites one file. A nil return means the file was skipped
// (binary content), anything else is recorded in the summary.
func (r *Runner) processFile(ctx context.Context, path, rel, jobName string, rs *rewrite.RuleSet, scope rewrite.Scope) *report.FileOutcome {
	logger := zerolog.Ctx(ctx)

	content, err := os.ReadFile(path)
	if err != nil {
		return &report.FileOutcome{Path: rel, Job: jobName, Err: errors.Errorf("reading file: %w", err)}
	}

	if bytes.ContainsRune(content, 0) {
		logger.Debug().Str("file", rel).Msg("skipping binary file")
		return nil
	}

	res := rs.Apply(string(content), scope)
	outcome := &report.FileOutcome{
		Path:     rel,
		Job:      jobName,
		Changes:  res.ChangeCount,
		RuleHits: res.RuleHits,
	}

	if !res.Changed() || r.opts.DryRun {
		return outcome
	}

	if err := writeFileAtomic(path, []byte(res.Text)); err != nil {
		outcome.Changes = 0
		outcome.RuleHits = nil
		outcome.Err = err
		return outcome
	}

	outcome.Written = true
	return outcome
}

// writeFileAtomic replaces path via a temp file and rename, keeping the
// original file mode
func writeFileAtomic(path string, content []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

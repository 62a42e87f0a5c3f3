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

// Package config loads and validates rewrite job configuration from YAML,
// JSON or HCL files. Parsers self-register; Load picks one by filename.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/LeviathanIsI/barkbase/pkg/rewrite"
	"github.com/LeviathanIsI/barkbase/pkg/rules"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔧 Job is one rewrite pass: a rule table plus the files it runs over.
// Exactly one of Builtin or Rules must be set.
type Job struct {
	Name    string             `json:"name" yaml:"name" hcl:"name,label"`
	Builtin string             `json:"builtin,omitempty" yaml:"builtin,omitempty" hcl:"builtin,optional"` // Name of a built-in rule set
	Scope   string             `json:"scope,omitempty" yaml:"scope,omitempty" hcl:"scope,optional"`       // "line" or "whole-file"
	Include []string           `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"` // Glob patterns relative to root
	Exclude []string           `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"` // Glob patterns to skip
	Rules   []rewrite.RuleSpec `json:"rules,omitempty" yaml:"rules,omitempty" hcl:"rule,block"`           // Inline rule table
}

// 📚 Config represents the complete configuration
type Config struct {
	Root string `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"` // Directory the jobs walk, default "."
	Jobs []Job  `json:"jobs" yaml:"jobs" hcl:"job,block"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Jobs) == 0 {
		return errors.Errorf("at least one job is required")
	}

	seen := make(map[string]bool, len(cfg.Jobs))
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.Name == "" {
			return errors.Errorf("job #%d has no name", i+1)
		}
		if seen[job.Name] {
			return errors.Errorf("duplicate job name: %s", job.Name)
		}
		seen[job.Name] = true

		if job.Builtin != "" && len(job.Rules) > 0 {
			return errors.Errorf("job %s: builtin and rules are mutually exclusive", job.Name)
		}
		if job.Builtin == "" && len(job.Rules) == 0 {
			return errors.Errorf("job %s: either builtin or rules is required", job.Name)
		}
		if job.Builtin != "" {
			if _, ok := rules.Lookup(job.Builtin); !ok {
				return errors.Errorf("job %s: unknown builtin rule set: %s", job.Name, job.Builtin)
			}
		}

		switch job.Scope {
		case "", "line", "whole-file":
		default:
			return errors.Errorf("job %s: invalid scope %q (want line or whole-file)", job.Name, job.Scope)
		}

		if len(job.Include) == 0 {
			job.Include = []string{"**/*"}
		}
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)

	return nil
}

// 🧩 Resolve compiles the job into an executable rule set and scope.
// A builtin job inherits the builtin set's scope unless the job overrides it.
func (j *Job) Resolve() (*rewrite.RuleSet, rewrite.Scope, error) {
	specs := j.Rules
	scope := rewrite.ScopeLine

	if j.Builtin != "" {
		set, ok := rules.Lookup(j.Builtin)
		if !ok {
			return nil, scope, errors.Errorf("unknown builtin rule set: %s", j.Builtin)
		}
		specs = set.Specs
		scope = set.Scope
	}

	switch j.Scope {
	case "line":
		scope = rewrite.ScopeLine
	case "whole-file":
		scope = rewrite.ScopeWholeFile
	}

	rs, err := rewrite.CompileRuleSet(specs)
	if err != nil {
		return nil, scope, errors.Errorf("compiling rules for job %s: %w", j.Name, err)
	}

	return rs, scope, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	names := make([]string, 0, len(cfg.Jobs))
	for _, j := range cfg.Jobs {
		names = append(names, j.Name)
	}
	return fmt.Sprintf("%s [%s]", cfg.Root, strings.Join(names, ", "))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

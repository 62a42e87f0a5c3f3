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

// Package rules holds the built-in substitution tables for the barkbase
// codebase. These are configuration data, not logic: each set is a plain
// ordered list of rewrite.RuleSpec consumed by the engine.
package rules

import (
	"regexp"

	"github.com/LeviathanIsI/barkbase/pkg/rewrite"
)

// 📦 Set is a named, ordered rule table plus the scope it must run under
type Set struct {
	Name        string
	Description string
	Scope       rewrite.Scope
	Specs       []rewrite.RuleSpec
}

// 🎯 Builtins returns every built-in rule set, in a stable order.
//
// The historical theme tables disagree on a few mappings (the same light
// token maps to different dark targets in different sets). That conflict is
// deliberate: the sets are kept separate and the caller picks which mapping
// to run; nothing here tries to reconcile them.
func Builtins() []Set {
	return []Set{
		{
			Name:        "theme",
			Description: "pair every light Tailwind class with its dark-mode surface class",
			Scope:       rewrite.ScopeLine,
			Specs:       Theme(),
		},
		{
			Name:        "colored-backgrounds",
			Description: "pair bg-{color}-50/100/200 across the full color palette",
			Scope:       rewrite.ScopeLine,
			Specs:       ColoredBackgrounds(),
		},
		{
			Name:        "hover-dark-syntax",
			Description: "rewrite hover:+dark: combinations to dark:hover: form",
			Scope:       rewrite.ScopeLine,
			Specs:       HoverDarkSyntax(),
		},
		{
			Name:        "hardcoded-colors",
			Description: "replace hardcoded hex colors with theme token classes",
			Scope:       rewrite.ScopeLine,
			Specs:       HardcodedColors(),
		},
		{
			Name:        "info-boxes",
			Description: "tinted info/warning box variants (alternative mapping to colored-backgrounds)",
			Scope:       rewrite.ScopeLine,
			Specs:       InfoBoxes(),
		},
		{
			Name:        "missing-backgrounds",
			Description: "add bg-white dark:bg-surface-primary to bordered classNames that lack a background",
			Scope:       rewrite.ScopeWholeFile,
			Specs:       MissingBackgrounds(),
		},
		{
			Name:        "cdk-authorizers",
			Description: "add the JWT authorizer to every protected CDK route",
			Scope:       rewrite.ScopeWholeFile,
			Specs:       Authorizers(),
		},
		{
			Name:        "tenant-lookup",
			Description: "patch Lambda getUserInfoFromEvent to resolve tenantId from the database",
			Scope:       rewrite.ScopeWholeFile,
			Specs:       TenantLookup(),
		},
	}
}

// 🔍 Lookup returns the built-in set with the given name
func Lookup(name string) (Set, bool) {
	for _, s := range Builtins() {
		if s.Name == name {
			return s, true
		}
	}
	return Set{}, false
}

// pair builds the standard inject-after rule: match the light class token,
// append the dark class after it, and guard on the exact dark class the
// template introduces so a second pass is always a no-op. The matcher
// requires a delimiter (or line start) before the token, so bg-gray-50
// never fires inside hover:bg-gray-50 or dark:bg-gray-50.
func pair(name, class, darkClass string) rewrite.RuleSpec {
	return pairPattern(name, `(^|[^:\w-])`+regexp.QuoteMeta(class)+`\b`, darkClass)
}

// pairPattern is pair for callers that bring their own matcher. The pattern
// must consume any leading delimiter it matches, so that "$0" re-emits it.
func pairPattern(name, pattern, darkClass string) rewrite.RuleSpec {
	return rewrite.RuleSpec{
		Name:    name,
		Match:   pattern,
		Replace: "$0 " + darkClass,
		Guard:   regexp.QuoteMeta(darkClass),
	}
}

// swap builds a full-replacement rule. The template does not re-satisfy the
// matcher, so no guard is needed.
func swap(name, pattern, replacement string) rewrite.RuleSpec {
	return rewrite.RuleSpec{
		Name:    name,
		Match:   pattern,
		Replace: replacement,
	}
}

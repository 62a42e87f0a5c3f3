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

package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📐 Scope controls the unit of text a rule set is matched against
type Scope int

const (
	// ScopeLine applies rules to each line independently
	ScopeLine Scope = iota
	// ScopeWholeFile applies rules to the full text, so matchers may span lines
	ScopeWholeFile
)

// String returns a string representation of Scope
func (s Scope) String() string {
	switch s {
	case ScopeLine:
		return "line"
	case ScopeWholeFile:
		return "whole-file"
	default:
		return "unknown"
	}
}

// 🔍 GuardWindow controls the region of text a guard pattern is checked
// against. The zero value means WindowUnit.
type GuardWindow string

const (
	// WindowUnit checks the guard against the whole line/file being rewritten,
	// in its current (partially rewritten) state
	WindowUnit GuardWindow = "unit"
	// WindowMatch checks the guard against the matched span only
	WindowMatch GuardWindow = "match"
)

// 🔄 RuleSpec is the raw, config-shaped form of a single substitution rule
type RuleSpec struct {
	Name    string      `json:"name" yaml:"name" hcl:"name,label"`                                  // Identifier used in reports
	Match   string      `json:"match" yaml:"match" hcl:"match"`                                     // Regular expression to search for
	Replace string      `json:"replace" yaml:"replace" hcl:"replace"`                               // Replacement template ($1, ${name}) or literal text
	Guard   string      `json:"guard,omitempty" yaml:"guard,omitempty" hcl:"guard,optional"`        // Skip a match when this pattern is already present
	Window  GuardWindow `json:"window,omitempty" yaml:"window,omitempty" hcl:"window,optional"`     // Region the guard is checked against: unit (default) or match
	Literal bool        `json:"literal,omitempty" yaml:"literal,omitempty" hcl:"literal,optional"`  // Insert Replace verbatim, no template expansion
}

// ❌ InvalidRuleError reports a rule that cannot be compiled into a rule set.
// It is the only error kind the engine produces; malformed input text is
// never an error, only malformed rule definitions are.
type InvalidRuleError struct {
	Rule   string // Rule name, or its index when unnamed
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid rule %s: %s", e.Rule, e.Reason)
}

// 🧩 rule is the compiled, immutable form of a RuleSpec
type rule struct {
	name    string
	match   *regexp.Regexp
	replace string
	guard   *regexp.Regexp
	window  GuardWindow
	literal bool
}

// 📦 RuleSet is an ordered sequence of compiled rules. Order is load-bearing:
// a later rule observes the output of earlier rules within the same pass.
type RuleSet struct {
	rules []rule
}

// Len returns the number of rules in the set
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Names returns the rule names in application order
func (rs *RuleSet) Names() []string {
	names := make([]string, 0, len(rs.rules))
	for _, r := range rs.rules {
		names = append(names, r.name)
	}
	return names
}

// 🏭 CompileRuleSet compiles an ordered list of rule specs into a RuleSet.
// It fails with *InvalidRuleError before any text is processed, so a bad
// rule set is never partially applied.
func CompileRuleSet(specs []RuleSpec) (*RuleSet, error) {
	if len(specs) == 0 {
		return nil, errors.New("rule set must contain at least one rule")
	}

	rules := make([]rule, 0, len(specs))
	for i, spec := range specs {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}

		if spec.Match == "" {
			return nil, errors.WithStack(&InvalidRuleError{Rule: name, Reason: "match pattern is required"})
		}

		match, err := regexp.Compile(spec.Match)
		if err != nil {
			return nil, errors.WithStack(&InvalidRuleError{Rule: name, Reason: fmt.Sprintf("compiling match pattern: %v", err)})
		}

		// A matcher that can match the empty string would loop forever
		// inserting its template at every position.
		if match.FindStringIndex("") != nil {
			return nil, errors.WithStack(&InvalidRuleError{Rule: name, Reason: "match pattern matches the empty string"})
		}

		switch spec.Window {
		case "", WindowUnit, WindowMatch:
		default:
			return nil, errors.WithStack(&InvalidRuleError{Rule: name, Reason: fmt.Sprintf("unknown guard window %q", spec.Window)})
		}

		var guard *regexp.Regexp
		if spec.Guard != "" {
			guard, err = regexp.Compile(spec.Guard)
			if err != nil {
				return nil, errors.WithStack(&InvalidRuleError{Rule: name, Reason: fmt.Sprintf("compiling guard pattern: %v", err)})
			}
		}

		if !spec.Literal {
			if reason := checkTemplate(match, spec.Replace); reason != "" {
				return nil, errors.WithStack(&InvalidRuleError{Rule: name, Reason: reason})
			}
		}

		rules = append(rules, rule{
			name:    name,
			match:   match,
			replace: spec.Replace,
			guard:   guard,
			window:  spec.Window,
			literal: spec.Literal,
		})
	}

	return &RuleSet{rules: rules}, nil
}

// checkTemplate verifies every capture reference in the template names a
// group the matcher actually defines. Returns a reason string on failure.
func checkTemplate(match *regexp.Regexp, template string) string {
	names := make(map[string]bool)
	for _, n := range match.SubexpNames() {
		if n != "" {
			names[n] = true
		}
	}

	for _, ref := range findTemplateRefs(template) {
		if ref.number >= 0 {
			if ref.number > match.NumSubexp() {
				return fmt.Sprintf("template references group $%d but match pattern only defines %d group(s)", ref.number, match.NumSubexp())
			}
			continue
		}
		if !names[ref.name] {
			return fmt.Sprintf("template references group $%s which the match pattern does not define", ref.name)
		}
	}
	return ""
}

// templateRef is one $-reference found in a replacement template
type templateRef struct {
	number int    // capture index, -1 for named references
	name   string // set when number is -1
}

// findTemplateRefs scans a template the same way regexp.Expand does,
// returning each capture reference it will try to substitute.
func findTemplateRefs(template string) []templateRef {
	var refs []templateRef
	for i := 0; i < len(template); i++ {
		if template[i] != '$' {
			continue
		}
		if i+1 >= len(template) {
			break
		}
		rest := template[i+1:]
		if rest[0] == '$' {
			i++ // $$ is a literal dollar
			continue
		}

		if rest[0] == '{' {
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				break // unterminated ${ — Expand treats it as literal
			}
			rest = rest[1:end]
			i += end + 1
		} else {
			j := 0
			for j < len(rest) && isRefByte(rest[j]) {
				j++
			}
			rest = rest[:j]
			i += j
		}
		if rest == "" {
			continue
		}

		if num, ok := parseRefNumber(rest); ok {
			refs = append(refs, templateRef{number: num})
		} else {
			refs = append(refs, templateRef{number: -1, name: rest})
		}
	}
	return refs
}

func isRefByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// parseRefNumber mirrors regexp.Expand: a reference is numeric only when it
// consists entirely of digits.
func parseRefNumber(s string) (int, bool) {
	num := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		num = num*10 + int(s[i]-'0')
		if num > 1000 {
			return 0, false
		}
	}
	return num, true
}

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
	"strings"
)

// 📊 Result is the outcome of applying a rule set to one input text
type Result struct {
	Text        string         // The fully rewritten text
	ChangeCount int            // Total matches that were actually replaced
	RuleHits    map[string]int // Replacement count per rule name (only rules that fired)
}

// Changed reports whether the input text was modified at all
func (r Result) Changed() bool {
	return r.ChangeCount > 0
}

// 🏃 Apply rewrites text with every rule in the set, in order, and reports
// how many substitutions fired. It is a pure function: no I/O, no shared
// state, safe to call concurrently across different inputs.
//
// Guarded-out matches are skipped silently and do not count. Text that
// matches nothing is a zero-count success, never an error.
func (rs *RuleSet) Apply(text string, scope Scope) Result {
	result := Result{RuleHits: make(map[string]int)}

	if scope == ScopeLine {
		var b strings.Builder
		b.Grow(len(text))
		for _, line := range splitLines(text) {
			current := line
			for _, r := range rs.rules {
				var n int
				current, n = r.applyToUnit(current)
				if n > 0 {
					result.RuleHits[r.name] += n
					result.ChangeCount += n
				}
			}
			b.WriteString(current)
		}
		result.Text = b.String()
		return result
	}

	current := text
	for _, r := range rs.rules {
		var n int
		current, n = r.applyToUnit(current)
		if n > 0 {
			result.RuleHits[r.name] += n
			result.ChangeCount += n
		}
	}
	result.Text = current
	return result
}

// applyToUnit scans one unit (a line or a whole file body) left to right for
// non-overlapping matches, replacing each match that passes the guard. The
// scan resumes after the inserted replacement, so a rule never rescans its
// own output within a pass.
func (r rule) applyToUnit(unit string) (string, int) {
	loc := r.match.FindStringSubmatchIndex(unit)
	if loc == nil {
		return unit, 0
	}

	count := 0
	out := make([]byte, 0, len(unit)+16)
	rest := unit

	for loc != nil {
		start, end := loc[0], loc[1]

		// Empty matches are rejected at compile time; if one slips through a
		// pathological pattern, step forward instead of looping forever.
		if start == end {
			if end >= len(rest) {
				break
			}
			out = append(out, rest[:end+1]...)
			rest = rest[end+1:]
			loc = r.match.FindStringSubmatchIndex(rest)
			continue
		}

		if r.guardBlocks(out, rest, start, end) {
			// Keep the match as-is and move past it.
			out = append(out, rest[:end]...)
			rest = rest[end:]
			loc = r.match.FindStringSubmatchIndex(rest)
			continue
		}

		out = append(out, rest[:start]...)
		if r.literal {
			out = append(out, r.replace...)
		} else {
			out = r.match.ExpandString(out, r.replace, rest, loc)
		}
		count++

		rest = rest[end:]
		loc = r.match.FindStringSubmatchIndex(rest)
	}

	out = append(out, rest...)
	return string(out), count
}

// guardBlocks evaluates the guard against the current state of the unit
// (not the original input) and reports whether the match must be skipped.
func (r rule) guardBlocks(out []byte, rest string, start, end int) bool {
	if r.guard == nil {
		return false
	}
	switch r.window {
	case WindowMatch:
		return r.guard.MatchString(rest[start:end])
	default:
		// The unit as it stands right now: everything already written plus
		// the unscanned remainder.
		return r.guard.MatchString(string(out) + rest)
	}
}

// splitLines splits text into lines preserving each line terminator, so that
// joining the pieces reproduces the input byte for byte.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

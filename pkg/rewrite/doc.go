/*
Package rewrite is the idempotent text-pattern rewriting engine behind barkfix.

	            +-------------+
	            |   RuleSet   |
	            | (Compiled)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Matcher  |           |  Guard  |
	| (Pattern) |           | (Skip)  |
	+-----------+           +---------+

🎯 Purpose:
- Applies an ordered list of (matcher, template, guard) rules to text
- Guarantees idempotence: re-applying a rule set to its own output is a no-op
- Reports which rules fired and how many times
- Treats source/markup as opaque tokens, never parses a grammar

🔄 Flow:
1. CompileRuleSet validates and compiles every rule up front
2. Apply scans each unit (line or whole file) left to right per rule
3. Guards are checked against the current, partially rewritten state
4. The scan advances past inserted text so a rule never rescans its output

⚡ Key Responsibilities:
- Rule compilation and validation (InvalidRuleError, never partial sets)
- Non-overlapping left-to-right substitution
- Guard evaluation (unit window or match window)
- Per-rule hit counting for reporting

📝 Design Philosophy:
The engine is purely functional over its inputs: text in, text out, no file
I/O, no shared mutable state. Callers own all I/O and may parallelize at
file granularity with no coordination. Idempotence is a contract on rule
authors — a template's output must not re-satisfy its own matcher in a way
that passes the guard — and the guard field makes that contract explicit
and testable instead of an accident of regex ordering.

Malformed input (unterminated quotes, unbalanced braces) is not an error:
the engine simply will not match malformed constructs. The only error the
package produces is *InvalidRuleError, surfaced synchronously at
construction before any text is touched.

🔍 Example:

	rs, err := rewrite.CompileRuleSet([]rewrite.RuleSpec{{
		Name:    "bg-white",
		Match:   `\bbg-white\b`,
		Replace: "$0 dark:bg-surface-primary",
		Guard:   "dark:bg-surface-primary",
	}})
	if err != nil {
		return err
	}

	res := rs.Apply(`class="bg-white"`, rewrite.ScopeLine)
	// res.Text == `class="bg-white dark:bg-surface-primary"`
	// res.ChangeCount == 1
	// rs.Apply(res.Text, rewrite.ScopeLine).ChangeCount == 0
*/
package rewrite

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

package rules

import (
	"fmt"

	"github.com/LeviathanIsI/barkbase/pkg/rewrite"
)

// colorFamilies is the full Tailwind palette used by the frontend
const colorFamilies = "slate|zinc|neutral|stone|red|orange|amber|yellow|lime|green|emerald|teal|cyan|sky|blue|indigo|violet|purple|fuchsia|pink|rose"

// 🎨 Theme returns the core light→dark pairing table: every light surface,
// text, border, divider, hover, focus, ring and placeholder class gets its
// dark-mode companion appended next to it.
func Theme() []rewrite.RuleSpec {
	return []rewrite.RuleSpec{
		// Backgrounds
		pair("bg-white", "bg-white", "dark:bg-surface-primary"),
		pair("bg-gray-50", "bg-gray-50", "dark:bg-surface-secondary"),
		pair("bg-gray-100", "bg-gray-100", "dark:bg-surface-secondary"),
		pair("bg-gray-200", "bg-gray-200", "dark:bg-surface-border"),
		pair("bg-gray-300", "bg-gray-300", "dark:bg-surface-border"),

		// Text colors
		pair("text-gray-900", "text-gray-900", "dark:text-text-primary"),
		pair("text-gray-800", "text-gray-800", "dark:text-text-primary"),
		pair("text-gray-700", "text-gray-700", "dark:text-text-primary"),
		pair("text-gray-600", "text-gray-600", "dark:text-text-secondary"),
		pair("text-gray-500", "text-gray-500", "dark:text-text-secondary"),
		pair("text-gray-400", "text-gray-400", "dark:text-text-tertiary"),
		pair("text-gray-300", "text-gray-300", "dark:text-text-tertiary"),

		// Borders
		pair("border-gray-200", "border-gray-200", "dark:border-surface-border"),
		pair("border-gray-300", "border-gray-300", "dark:border-surface-border"),
		pair("border-gray-400", "border-gray-400", "dark:border-surface-border"),

		// Dividers
		pair("divide-gray-100", "divide-gray-100", "dark:divide-surface-border"),
		pair("divide-gray-200", "divide-gray-200", "dark:divide-surface-border"),

		// Hover states
		pair("hover:bg-gray-50", "hover:bg-gray-50", "dark:hover:bg-surface-secondary"),
		pair("hover:bg-gray-100", "hover:bg-gray-100", "dark:hover:bg-surface-secondary"),
		pair("hover:bg-white", "hover:bg-white", "dark:hover:bg-surface-primary"),
		pair("hover:text-gray-900", "hover:text-gray-900", "dark:hover:text-text-primary"),

		// Focus states
		pair("focus:bg-gray-50", "focus:bg-gray-50", "dark:focus:bg-surface-secondary"),
		pair("focus:border-gray-300", "focus:border-gray-300", "dark:focus:border-surface-border"),

		// Ring colors
		pair("ring-gray-200", "ring-gray-200", "dark:ring-surface-border"),
		pair("ring-gray-300", "ring-gray-300", "dark:ring-surface-border"),

		// Placeholder text
		pair("placeholder:text-gray-500", "placeholder:text-gray-500", "dark:placeholder:text-text-secondary"),
		pair("placeholder:text-gray-400", "placeholder:text-gray-400", "dark:placeholder:text-text-tertiary"),

		// Semantic colors
		pair("bg-primary-50", "bg-primary-50", "dark:bg-surface-primary"),
		pair("bg-primary-100", "bg-primary-100", "dark:bg-surface-secondary"),
		pair("bg-secondary-50", "bg-secondary-50", "dark:bg-surface-primary"),
		pair("bg-secondary-100", "bg-secondary-100", "dark:bg-surface-secondary"),
		pair("bg-success-50", "bg-success-50", "dark:bg-surface-primary"),
		pair("bg-success-100", "bg-success-100", "dark:bg-surface-secondary"),
		pair("bg-warning-50", "bg-warning-50", "dark:bg-surface-primary"),
		pair("bg-warning-100", "bg-warning-100", "dark:bg-surface-secondary"),
		pair("bg-error-50", "bg-error-50", "dark:bg-surface-primary"),
		pair("bg-error-100", "bg-error-100", "dark:bg-surface-secondary"),
	}
}

// 🌈 ColoredBackgrounds pairs the very light shades of the full palette with
// the neutral dark surface classes. -50 shades render as near-white cards in
// light mode, so they all collapse to the primary surface in dark mode.
func ColoredBackgrounds() []rewrite.RuleSpec {
	return []rewrite.RuleSpec{
		pairPattern("colored-bg-50", fmt.Sprintf(`(^|[^:\w-])bg-(%s)-50\b`, colorFamilies), "dark:bg-surface-primary"),
		pairPattern("colored-bg-100", fmt.Sprintf(`(^|[^:\w-])bg-(%s)-100\b`, colorFamilies), "dark:bg-surface-secondary"),
		pairPattern("colored-bg-200", fmt.Sprintf(`(^|[^:\w-])bg-(%s)-200\b`, colorFamilies), "dark:bg-surface-border"),
	}
}

// 🛠️ HoverDarkSyntax fixes the bad interaction left behind by earlier theme
// passes: a hover: light class followed by a plain dark: class, where the
// dark side also needs the hover: variant. The rewritten form no longer
// satisfies the matcher, so these rules need no guard.
func HoverDarkSyntax() []rewrite.RuleSpec {
	return []rewrite.RuleSpec{
		{
			Name:    "hover-dark-text",
			Match:   `(hover:text-gray-\d+)\s+dark:text-(text-\w+)`,
			Replace: "$1 dark:hover:text-$2",
		},
		{
			Name:    "hover-dark-bg",
			Match:   `(hover:bg-gray-\d+)\s+dark:bg-(surface-\w+)`,
			Replace: "$1 dark:hover:bg-$2",
		},
	}
}

// 🎯 HardcodedColors replaces raw hex utility classes with theme tokens.
// These are full swaps: the hex literal disappears from the output, which
// makes the rules self-idempotent.
func HardcodedColors() []rewrite.RuleSpec {
	return []rewrite.RuleSpec{
		swap("hex-bg-app", `\bbg-\[#F5F6FA\]`, "bg-background-primary"),
		swap("hex-bg-card", `\bbg-\[#FFFFFF\]`, "bg-white dark:bg-surface-primary"),
		swap("hex-text-heading", `\btext-\[#263238\]`, "text-gray-900 dark:text-text-primary"),
		swap("hex-text-body", `\btext-\[#64748B\]`, "text-gray-600 dark:text-text-secondary"),
		swap("hex-border", `\bborder-\[#E0E0E0\]`, "border-gray-200 dark:border-surface-border"),
		swap("hex-border-app", `\bborder-\[#F5F6FA\]`, "border-gray-200 dark:border-surface-border"),
	}
}

// 💡 InfoBoxes is the tinted-box variant table: colored info/warning/error
// boxes keep a hint of their hue in dark mode instead of collapsing to the
// neutral surface. It intentionally disagrees with ColoredBackgrounds for
// the same light tokens; run one or the other, not both.
func InfoBoxes() []rewrite.RuleSpec {
	return []rewrite.RuleSpec{
		pair("gradient-promo", "bg-gradient-to-r from-purple-50 to-pink-50", "dark:from-surface-primary dark:to-surface-primary"),

		pair("bg-blue-50", "bg-blue-50", "dark:bg-blue-950/20"),
		pair("border-blue-100", "border-blue-100", "dark:border-blue-900/30"),
		pair("border-blue-200", "border-blue-200", "dark:border-blue-900/30"),
		pair("text-blue-900", "text-blue-900", "dark:text-blue-100"),
		pair("text-blue-800", "text-blue-800", "dark:text-blue-200"),
		pair("text-blue-700", "text-blue-700", "dark:text-blue-300"),
		pair("text-blue-600", "text-blue-600", "dark:text-blue-400"),

		pair("border-purple-200", "border-purple-200", "dark:border-purple-900/30"),
		pair("border-purple-300", "border-purple-300", "dark:border-purple-700"),
		pair("text-purple-900", "text-purple-900", "dark:text-purple-100"),
		pair("text-purple-800", "text-purple-800", "dark:text-purple-200"),
		pair("text-purple-700", "text-purple-700", "dark:text-purple-300"),
		pair("text-purple-600", "text-purple-600", "dark:text-purple-400"),

		pair("bg-yellow-50", "bg-yellow-50", "dark:bg-yellow-950/20"),
		pair("bg-amber-50", "bg-amber-50", "dark:bg-amber-950/20"),
		pair("border-yellow-200", "border-yellow-200", "dark:border-yellow-900/30"),
		pair("border-amber-100", "border-amber-100", "dark:border-amber-900/30"),
		pair("border-amber-200", "border-amber-200", "dark:border-amber-900/30"),

		pair("bg-red-50", "bg-red-50", "dark:bg-red-950/20"),
		pair("border-red-200", "border-red-200", "dark:border-red-900/30"),
		pair("text-red-900", "text-red-900", "dark:text-red-100"),
		pair("text-red-800", "text-red-800", "dark:text-red-200"),

		pair("bg-green-50", "bg-green-50", "dark:bg-green-950/20"),
		pair("border-green-200", "border-green-200", "dark:border-green-900/30"),
		pair("bg-emerald-50", "bg-emerald-50", "dark:bg-emerald-950/20"),
		pair("border-emerald-100", "border-emerald-100", "dark:border-emerald-900/30"),
		pair("border-rose-100", "border-rose-100", "dark:border-rose-900/30"),
	}
}

// 🧱 MissingBackgrounds gives bordered elements an explicit background so
// they stop inheriting the page color in dark mode. Runs under whole-file
// scope: className attributes on form inputs often span lines, and [^"]*
// crosses newlines while still stopping at the closing quote. The guard
// window is the matched attribute only, so a background on a neighboring
// element never suppresses the fix.
func MissingBackgrounds() []rewrite.RuleSpec {
	return []rewrite.RuleSpec{
		{
			Name:    "bordered-background",
			Match:   `(className=")([^"]*\bborder[^"]*)(")`,
			Replace: "${1}bg-white dark:bg-surface-primary $2$3",
			Guard:   `\bbg-`,
			Window:  rewrite.WindowMatch,
		},
	}
}

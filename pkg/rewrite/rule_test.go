package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestCompileRuleSet(t *testing.T) {
	tests := []struct {
		name      string
		specs     []RuleSpec
		wantError string
	}{
		{
			name: "valid_single_rule",
			specs: []RuleSpec{
				{Name: "bg-white", Match: `\bbg-white\b`, Replace: "$0 dark:bg-surface-primary", Guard: "dark:bg-surface-primary"},
			},
		},
		{
			name: "valid_named_groups",
			specs: []RuleSpec{
				{Name: "hover", Match: `(?P<prefix>hover:text-gray-\d+)\s+dark:text-`, Replace: "${prefix} dark:hover:text-"},
			},
		},
		{
			name:      "empty_set",
			specs:     []RuleSpec{},
			wantError: "at least one rule",
		},
		{
			name: "missing_match",
			specs: []RuleSpec{
				{Name: "broken", Replace: "x"},
			},
			wantError: "match pattern is required",
		},
		{
			name: "invalid_match_syntax",
			specs: []RuleSpec{
				{Name: "broken", Match: `(`, Replace: "x"},
			},
			wantError: "compiling match pattern",
		},
		{
			name: "empty_matching_pattern",
			specs: []RuleSpec{
				{Name: "star", Match: `a*`, Replace: "x"},
			},
			wantError: "matches the empty string",
		},
		{
			name: "empty_matching_alternation",
			specs: []RuleSpec{
				{Name: "alt", Match: `foo|`, Replace: "x"},
			},
			wantError: "matches the empty string",
		},
		{
			name: "invalid_guard_syntax",
			specs: []RuleSpec{
				{Name: "guarded", Match: `foo`, Replace: "bar", Guard: `[`},
			},
			wantError: "compiling guard pattern",
		},
		{
			name: "unknown_guard_window",
			specs: []RuleSpec{
				{Name: "guarded", Match: `foo`, Replace: "bar", Guard: `baz`, Window: "paragraph"},
			},
			wantError: "unknown guard window",
		},
		{
			name: "template_references_missing_group",
			specs: []RuleSpec{
				{Name: "refs", Match: `(foo)`, Replace: "$1 $2"},
			},
			wantError: "references group $2",
		},
		{
			name: "template_references_missing_named_group",
			specs: []RuleSpec{
				{Name: "refs", Match: `(?P<a>foo)`, Replace: "${a} ${b}"},
			},
			wantError: "references group $b",
		},
		{
			name: "literal_template_skips_reference_check",
			specs: []RuleSpec{
				{Name: "literal", Match: `foo`, Replace: "costs $5 or ${more}", Literal: true},
			},
		},
		{
			name: "escaped_dollar_is_not_a_reference",
			specs: []RuleSpec{
				{Name: "dollar", Match: `foo`, Replace: "$$99"},
			},
		},
		{
			name: "bad_rule_after_good_rule_rejects_whole_set",
			specs: []RuleSpec{
				{Name: "good", Match: `foo`, Replace: "bar"},
				{Name: "bad", Match: `x?`, Replace: "y"},
			},
			wantError: "matches the empty string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := CompileRuleSet(tt.specs)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.Nil(t, rs, "no partial rule set may escape a failed compile")
				return
			}

			require.NoError(t, err)
			require.NotNil(t, rs)
			assert.Equal(t, len(tt.specs), rs.Len())
		})
	}
}

func TestCompileRuleSet_InvalidRuleErrorType(t *testing.T) {
	_, err := CompileRuleSet([]RuleSpec{
		{Name: "star", Match: `a*`, Replace: "x"},
	})
	require.Error(t, err)

	var ruleErr *InvalidRuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, "star", ruleErr.Rule)
	assert.Contains(t, ruleErr.Reason, "empty string")
}

func TestCompileRuleSet_UnnamedRuleGetsIndex(t *testing.T) {
	_, err := CompileRuleSet([]RuleSpec{
		{Match: `foo`, Replace: "bar"},
		{Match: ``, Replace: "baz"},
	})
	require.Error(t, err)

	var ruleErr *InvalidRuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, "#2", ruleErr.Rule)
}

func TestRuleSet_Names(t *testing.T) {
	rs, err := CompileRuleSet([]RuleSpec{
		{Name: "first", Match: `a+`, Replace: "x"},
		{Name: "second", Match: `b+`, Replace: "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, rs.Names())
}

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

package rules_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeviathanIsI/barkbase/pkg/rewrite"
	"github.com/LeviathanIsI/barkbase/pkg/rules"
)

const cdkStackSample = `httpApi.addRoutes({
  path: '/pets',
  methods: [HttpMethod.GET],
  integration: petsIntegration,
});

httpApi.addRoutes({
  path: '/auth/login',
  methods: [HttpMethod.POST],
  integration: loginIntegration,
});

httpApi.addRoutes({
  path: '/pets',
  methods: [HttpMethod.OPTIONS],
  integration: corsIntegration,
});
`

const lambdaSample = `const pool = new Pool({ connectionString: process.env.DATABASE_URL });

async function getUserInfoFromEvent(event) {
  const claims = event.requestContext?.authorizer?.jwt?.claims;
  if (claims) {
    return {
      userId: claims.sub,
      tenantId: claims['custom:tenantId'],
      role: claims['custom:role'],
    };
  }
  return null;
}
`

func TestBuiltins_CompileAndIdempotence(t *testing.T) {
	// one representative input per set; every sample must change on the
	// first pass and be untouched on the second
	samples := map[string]string{
		"theme":               `<div className="bg-white text-gray-600 border-gray-200">`,
		"colored-backgrounds": `<span className="bg-blue-50 bg-fuchsia-100">`,
		"hover-dark-syntax":   `className="hover:text-gray-600 dark:text-text-secondary"`,
		"hardcoded-colors":    `<div className="bg-[#F5F6FA] text-[#263238]">`,
		"info-boxes":          `<div className="bg-blue-50 border-blue-200 text-blue-800">`,
		"missing-backgrounds": "<input\n  type=\"text\"\n  className=\"w-full border border-gray-300\n    rounded-md px-3 py-2\"\n/>",
		"cdk-authorizers":     cdkStackSample,
		"tenant-lookup":       lambdaSample,
	}

	for _, set := range rules.Builtins() {
		set := set
		t.Run(set.Name, func(t *testing.T) {
			sample, ok := samples[set.Name]
			require.True(t, ok, "no sample input for set %q", set.Name)

			rs, err := rewrite.CompileRuleSet(set.Specs)
			require.NoError(t, err)

			first := rs.Apply(sample, set.Scope)
			require.True(t, first.Changed(), "sample for %q produced no changes", set.Name)

			second := rs.Apply(first.Text, set.Scope)
			require.Zero(t, second.ChangeCount, "second pass over %q output:\n%s", set.Name, first.Text)
		})
	}
}

func TestLookup(t *testing.T) {
	set, ok := rules.Lookup("theme")
	require.True(t, ok)
	require.Equal(t, "theme", set.Name)
	require.Equal(t, rewrite.ScopeLine, set.Scope)

	_, ok = rules.Lookup("no-such-set")
	require.False(t, ok)
}

func TestTheme_InjectsDarkClasses(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.Theme())
	require.NoError(t, err)

	res := rs.Apply(`<div className="bg-white text-gray-900 border-gray-200">`, rewrite.ScopeLine)
	require.Equal(t, 3, res.ChangeCount)
	require.Contains(t, res.Text, "bg-white dark:bg-surface-primary")
	require.Contains(t, res.Text, "text-gray-900 dark:text-text-primary")
	require.Contains(t, res.Text, "border-gray-200 dark:border-surface-border")
}

func TestTheme_SkipsAlreadyThemedLine(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.Theme())
	require.NoError(t, err)

	input := `<div className="bg-white dark:bg-surface-primary">`
	res := rs.Apply(input, rewrite.ScopeLine)
	require.Zero(t, res.ChangeCount)
	require.Equal(t, input, res.Text)
}

func TestTheme_VariantPrefixNotDoublePaired(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.Theme())
	require.NoError(t, err)

	// the base bg-gray-50 rule must not fire inside hover:bg-gray-50
	res := rs.Apply(`<button className="hover:bg-gray-50">`, rewrite.ScopeLine)
	require.Equal(t, 1, res.ChangeCount)
	require.Contains(t, res.Text, "hover:bg-gray-50 dark:hover:bg-surface-secondary")
	require.NotContains(t, res.Text, "hover:bg-gray-50 dark:bg-surface-secondary")

	// already-themed variants stay untouched
	themed := `<button className="hover:bg-gray-50 dark:hover:bg-surface-secondary">`
	res = rs.Apply(themed, rewrite.ScopeLine)
	require.Zero(t, res.ChangeCount)
	require.Equal(t, themed, res.Text)
}

func TestColoredBackgrounds_FullPalette(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.ColoredBackgrounds())
	require.NoError(t, err)

	res := rs.Apply(`<span className="bg-blue-50 bg-fuchsia-100">`, rewrite.ScopeLine)
	require.Equal(t, 2, res.ChangeCount)
	require.Contains(t, res.Text, "bg-blue-50 dark:bg-surface-primary")
	require.Contains(t, res.Text, "bg-fuchsia-100 dark:bg-surface-secondary")

	// gray is handled by the theme set, not the palette set
	res = rs.Apply(`<span className="bg-gray-50">`, rewrite.ScopeLine)
	require.Zero(t, res.ChangeCount)
}

func TestHoverDarkSyntax_RewritesVariant(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.HoverDarkSyntax())
	require.NoError(t, err)

	res := rs.Apply(`className="hover:text-gray-900 dark:text-text-primary"`, rewrite.ScopeLine)
	require.Equal(t, 1, res.ChangeCount)
	require.Contains(t, res.Text, "hover:text-gray-900 dark:hover:text-text-primary")
}

func TestMissingBackgrounds_BorderedWithoutBackground(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.MissingBackgrounds())
	require.NoError(t, err)

	res := rs.Apply(`<div className="border border-gray-200 rounded-lg p-4">`, rewrite.ScopeWholeFile)
	require.Equal(t, 1, res.ChangeCount)
	require.Contains(t, res.Text, `className="bg-white dark:bg-surface-primary border border-gray-200 rounded-lg p-4"`)

	// any existing background in the attribute suppresses the fix
	themed := `<div className="bg-gray-50 border border-gray-200">`
	require.Zero(t, rs.Apply(themed, rewrite.ScopeWholeFile).ChangeCount)

	// no border, nothing to do
	require.Zero(t, rs.Apply(`<div className="p-4 rounded">`, rewrite.ScopeWholeFile).ChangeCount)
}

func TestMissingBackgrounds_MultilineInput(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.MissingBackgrounds())
	require.NoError(t, err)

	input := "<input\n  type=\"text\"\n  className=\"w-full border border-gray-300\n    rounded-md px-3 py-2\"\n/>\n" +
		"<select className=\"bg-white dark:bg-surface-primary border border-gray-300\">\n"

	res := rs.Apply(input, rewrite.ScopeWholeFile)
	require.Equal(t, 1, res.ChangeCount)
	require.Contains(t, res.Text, "className=\"bg-white dark:bg-surface-primary w-full border border-gray-300\n    rounded-md px-3 py-2\"")

	second := rs.Apply(res.Text, rewrite.ScopeWholeFile)
	require.Zero(t, second.ChangeCount)
}

func TestAuthorizers_PatchesProtectedRoutesOnly(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.Authorizers())
	require.NoError(t, err)

	res := rs.Apply(cdkStackSample, rewrite.ScopeWholeFile)
	require.Equal(t, 1, res.ChangeCount)

	// only the /pets GET route gets the authorizer
	require.Contains(t, res.Text, "integration: petsIntegration, authorizer: httpAuthorizer")
	require.NotContains(t, res.Text, "loginIntegration, authorizer:")
	require.NotContains(t, res.Text, "corsIntegration, authorizer:")
	require.Equal(t, 1, strings.Count(res.Text, "authorizer: httpAuthorizer"))

	second := rs.Apply(res.Text, rewrite.ScopeWholeFile)
	require.Zero(t, second.ChangeCount)
}

func TestAuthorizers_IgnoresCommentedOutRoutes(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.Authorizers())
	require.NoError(t, err)

	// the comment markers sit between the integration name and the closing
	// brace, so a commented-out block can never satisfy the matcher
	input := `// httpApi.addRoutes({
//   path: '/legacy',
//   methods: [HttpMethod.GET],
//   integration: legacyIntegration,
// });

httpApi.addRoutes({
  path: '/pets',
  methods: [HttpMethod.GET],
  integration: petsIntegration,
});
`
	res := rs.Apply(input, rewrite.ScopeWholeFile)
	require.Equal(t, 1, res.ChangeCount)
	require.Contains(t, res.Text, "petsIntegration, authorizer: httpAuthorizer")
	require.NotContains(t, res.Text, "legacyIntegration, authorizer:")
}

func TestTenantLookup_PatchesPrologueOnce(t *testing.T) {
	rs, err := rewrite.CompileRuleSet(rules.TenantLookup())
	require.NoError(t, err)

	res := rs.Apply(lambdaSample, rewrite.ScopeWholeFile)
	require.Equal(t, 1, res.ChangeCount)
	require.Contains(t, res.Text, "Fetching tenantId from database")
	require.Contains(t, res.Text, `JOIN public."Membership" m`)
	require.Contains(t, res.Text, `u."cognitoSub" = $1`)

	// the fallback path after the patched prologue survives
	require.Contains(t, res.Text, "return null;")

	second := rs.Apply(res.Text, rewrite.ScopeWholeFile)
	require.Zero(t, second.ChangeCount)
}

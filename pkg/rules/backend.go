package rules

import (
	"github.com/LeviathanIsI/barkbase/pkg/rewrite"
)

// 🔐 Authorizers attaches the shared JWT authorizer to CDK route
// declarations. The guard skips routes that already carry an authorizer,
// CORS preflight routes, and the public auth endpoints. The guard window is
// the matched block only: the same words appearing in a neighboring route
// must not suppress the patch.
func Authorizers() []rewrite.RuleSpec {
	return []rewrite.RuleSpec{
		{
			Name:    "route-authorizer",
			Match:   `(httpApi\.addRoutes\(\{[^}]+integration:\s*\w+)([\s,]*)(\})`,
			Replace: "$1, authorizer: httpAuthorizer$2$3",
			Guard:   `authorizer:|HttpMethod\.OPTIONS|/auth/(?:login|signup|register|refresh|logout)`,
			Window:  rewrite.WindowMatch,
		},
	}
}

// tenantLookupMarker appears only in the rewritten prologue, so it doubles
// as the idempotence guard.
const tenantLookupMarker = "Fetching tenantId from database"

// tenantLookupBody is the replacement prologue for getUserInfoFromEvent:
// instead of trusting a tenantId claim baked into the token at login, it
// resolves the caller's tenant from the Membership table on every request.
const tenantLookupBody = `async function getUserInfoFromEvent(event) {
  const claims = event.requestContext?.authorizer?.jwt?.claims;
  if (claims) {
    const cognitoSub = claims.sub;
    console.log('Fetching tenantId from database for sub:', cognitoSub);
    const result = await pool.query(
      ` + "`" + `SELECT u."id", m."tenantId", m."role"
         FROM public."User" u
         JOIN public."Membership" m ON m."userId" = u."id"
        WHERE u."cognitoSub" = $1
        ORDER BY m."createdAt" ASC
        LIMIT 1` + "`" + `,
      [cognitoSub]
    );
    if (result.rows.length === 0) {
      throw new Error('No membership found for user');
    }
    const row = result.rows[0];
    return {
      userId: row.id,
      tenantId: row.tenantId,
      role: row.role,
    };
  }`

// 🗄️ TenantLookup swaps the claims-only prologue of getUserInfoFromEvent for
// one that resolves the tenant from the database. The replacement contains
// JS template literals and $1 placeholders, so it is applied literally.
func TenantLookup() []rewrite.RuleSpec {
	return []rewrite.RuleSpec{
		{
			Name:    "tenant-lookup",
			Match:   `(?s)async function getUserInfoFromEvent\(event\) \{.*?if \(claims\) \{.*?return \{.*?\};\s*\}`,
			Replace: tenantLookupBody,
			Guard:   tenantLookupMarker,
			Literal: true,
		},
	}
}

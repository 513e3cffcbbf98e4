package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sessionFor(userID uint) *Session {
	return &Session{Identity: Identity{UserID: userID, Email: "user@example.com"}}
}

func TestRequireAuthDeniesAnonymous(t *testing.T) {
	d := RequireAuth()(Input{Path: "/app/library"})

	assert.False(t, d.Allowed)
	assert.Equal(t, "/login?redirectTo=/app/library", d.Target)
}

func TestRequireAuthPreservesDestination(t *testing.T) {
	d := RequireAuth()(Input{Path: "/admin"})

	assert.False(t, d.Allowed)
	assert.Equal(t, "/login?redirectTo=/admin", d.Target)
}

func TestRequireAuthAllowsAuthenticated(t *testing.T) {
	d := RequireAuth()(Input{Session: sessionFor(7), Path: "/app/library"})

	assert.True(t, d.Allowed)
	assert.Empty(t, d.Target)
}

func TestRequireRoleMatrix(t *testing.T) {
	cases := []struct {
		name     string
		role     Role
		expected Role
		allowed  bool
		target   string
	}{
		{"parent denied author area", RoleParent, RoleAuthor, false, "/author/apply"},
		{"author allowed author area", RoleAuthor, RoleAuthor, true, ""},
		{"admin allowed author area", RoleAdmin, RoleAuthor, true, ""},
		{"parent denied admin area", RoleParent, RoleAdmin, false, "/app"},
		{"author denied admin area", RoleAuthor, RoleAdmin, false, "/author"},
		{"admin allowed admin area", RoleAdmin, RoleAdmin, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := RequireRole(tc.expected)(Input{
				Session: sessionFor(7),
				Role:    tc.role,
				Path:    "/whatever",
			})

			assert.Equal(t, tc.allowed, d.Allowed)
			assert.Equal(t, tc.target, d.Target)
		})
	}
}

func TestRequireRoleImpliesAuth(t *testing.T) {
	d := RequireRole(RoleAdmin)(Input{Path: "/admin"})

	assert.False(t, d.Allowed)
	assert.Equal(t, "/login?redirectTo=/admin", d.Target)
}

func TestRequireOwnership(t *testing.T) {
	owner := sessionFor(7)

	t.Run("owner allowed", func(t *testing.T) {
		d := RequireOwnership()(Input{Session: owner, OwnerID: 7})
		assert.True(t, d.Allowed)
	})

	t.Run("other user denied", func(t *testing.T) {
		d := RequireOwnership()(Input{Session: owner, OwnerID: 8})
		assert.False(t, d.Allowed)
		assert.Equal(t, NeutralListing, d.Target)
	})

	t.Run("missing resource denied to same target", func(t *testing.T) {
		d := RequireOwnership()(Input{Session: owner, OwnerID: 0})
		assert.False(t, d.Allowed)
		assert.Equal(t, NeutralListing, d.Target)
	})

	t.Run("anonymous goes to login", func(t *testing.T) {
		d := RequireOwnership()(Input{Path: "/app/kids/3", OwnerID: 7})
		assert.False(t, d.Allowed)
		assert.Equal(t, "/login?redirectTo=/app/kids/3", d.Target)
	})
}

// Not-owned and nonexistent resources must produce identical decisions
// so a caller probing ids learns nothing.
func TestOwnershipDenialsAreIndistinguishable(t *testing.T) {
	s := sessionFor(7)

	notOwned := RequireOwnership()(Input{Session: s, OwnerID: 8})
	missing := RequireOwnership()(Input{Session: s, OwnerID: 0})

	assert.Equal(t, notOwned, missing)
}

func TestChainStopsAtFirstDeny(t *testing.T) {
	calls := 0
	counting := func(d Decision) Policy {
		return func(Input) Decision {
			calls++
			return d
		}
	}

	chain := Chain(
		counting(Allow()),
		counting(Deny("first", "/a")),
		counting(Deny("second", "/b")),
	)
	d := chain(Input{})

	assert.False(t, d.Allowed)
	assert.Equal(t, "/a", d.Target)
	assert.Equal(t, 2, calls)
}

func TestChainAllowsWhenAllAllow(t *testing.T) {
	chain := Chain(RequireAuth(), RequireRole(RoleAuthor))
	d := chain(Input{Session: sessionFor(7), Role: RoleAuthor})

	assert.True(t, d.Allowed)
}

func TestBypassSkipsWrappedPolicy(t *testing.T) {
	p := Bypass(RequireRole(RoleAuthor), "/author/apply")

	t.Run("prefix match skips role check", func(t *testing.T) {
		d := p(Input{Session: sessionFor(7), Role: RoleParent, Path: "/author/apply"})
		assert.True(t, d.Allowed)
	})

	t.Run("other paths still checked", func(t *testing.T) {
		d := p(Input{Session: sessionFor(7), Role: RoleParent, Path: "/author/books"})
		assert.False(t, d.Allowed)
		assert.Equal(t, "/author/apply", d.Target)
	})
}

// Chaining RequireAuth before the bypass keeps bypassed paths login-only.
func TestBypassedPathStillRequiresAuth(t *testing.T) {
	p := Chain(RequireAuth(), Bypass(RequireRole(RoleAuthor), "/author/apply"))

	d := p(Input{Path: "/author/apply"})

	assert.False(t, d.Allowed)
	assert.Equal(t, "/login?redirectTo=/author/apply", d.Target)
}

func TestPoliciesAreIdempotent(t *testing.T) {
	in := Input{Session: sessionFor(7), Role: RoleParent, Path: "/admin"}
	p := RequireRole(RoleAdmin)

	first := p(in)
	second := p(in)

	assert.Equal(t, first, second)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAuthor, ParseRole("author"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleParent, ParseRole("parent"))
	assert.Equal(t, DefaultRole, ParseRole("superuser"))
	assert.Equal(t, DefaultRole, ParseRole(""))
}

func TestHomePath(t *testing.T) {
	assert.Equal(t, "/app", RoleParent.HomePath())
	assert.Equal(t, "/author", RoleAuthor.HomePath())
	assert.Equal(t, "/admin", RoleAdmin.HomePath())
}

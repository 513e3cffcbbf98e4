package access

import (
	"net/http"
	"strings"
)

// Input carries everything a policy may look at for one request.
type Input struct {
	Session *Session
	Role    Role
	Path    string
	OwnerID uint
}

// Decision is the explicit outcome of a policy check. Deny is a normal
// value, never an error: the route layer translates it into a redirect.
type Decision struct {
	Allowed bool
	Reason  string
	Target  string
	Code    int
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason, target string) Decision {
	return Decision{
		Reason: reason,
		Target: target,
		Code:   http.StatusSeeOther,
	}
}

// Policy is one composable access check.
type Policy func(in Input) Decision

// NeutralListing is where ownership denials land. Missing and not-owned
// resources must be indistinguishable, so there is exactly one target.
const NeutralListing = "/app/library"

// RequireAuth allows any authenticated session. A denied request is sent
// to login with the original destination preserved for the return trip.
func RequireAuth() Policy {
	return func(in Input) Decision {
		if in.Session == nil {
			return Deny("unauthenticated", "/login?redirectTo="+in.Path)
		}
		return Allow()
	}
}

// RequireRole allows the expected role; admins pass every role check.
// It implies RequireAuth. An authenticated user with the wrong role is
// sent to a role-appropriate fallback, never back to login: denial of
// the author area lands on the application page, anything else lands on
// the user's own home area.
func RequireRole(expected Role) Policy {
	return func(in Input) Decision {
		if d := RequireAuth()(in); !d.Allowed {
			return d
		}
		if in.Role == expected || in.Role == RoleAdmin {
			return Allow()
		}
		if expected == RoleAuthor {
			return Deny("missing role", "/author/apply")
		}
		return Deny("missing role", in.Role.HomePath())
	}
}

// RequireOwnership allows only the resource owner. It implies
// RequireAuth. The denial target is the same whether the resource is
// owned by someone else or does not exist at all (callers pass
// OwnerID 0 for a missing resource).
func RequireOwnership() Policy {
	return func(in Input) Decision {
		if d := RequireAuth()(in); !d.Allowed {
			return d
		}
		if in.OwnerID == 0 || in.Session.Identity.UserID != in.OwnerID {
			return Deny("not owner", NeutralListing)
		}
		return Allow()
	}
}

// Chain evaluates policies in declared order and stops at the first
// deny, so the redirect never leaks which later check would have failed.
func Chain(policies ...Policy) Policy {
	return func(in Input) Decision {
		for _, p := range policies {
			if d := p(in); !d.Allowed {
				return d
			}
		}
		return Allow()
	}
}

// Bypass skips the wrapped policy for the listed path prefixes. Used for
// sub-areas like /author/apply that must stay reachable without the
// enclosing area's role; chain RequireAuth before it so the bypassed
// path still needs a login.
func Bypass(p Policy, prefixes ...string) Policy {
	return func(in Input) Decision {
		for _, prefix := range prefixes {
			if strings.HasPrefix(in.Path, prefix) {
				return Allow()
			}
		}
		return p(in)
	}
}

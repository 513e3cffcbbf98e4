package middleware

import (
	"net/http"

	"dreamnest-app/database"
	"dreamnest-app/internal/domain/access"

	"github.com/gin-gonic/gin"
)

// RoleLookup resolves the role for an authenticated user. Injected so
// tests can fake the profile store; production routes use LookupRole.
type RoleLookup func(c *gin.Context, userID uint) (access.Role, error)

// LookupRole reads the role from the profiles table.
func LookupRole(c *gin.Context, userID uint) (access.Role, error) {
	return access.ResolveRole(database.DB.WithContext(c.Request.Context()), userID)
}

// RequireAuth blocks anonymous requests, redirecting to login with the
// original destination preserved.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := access.Input{
			Session: CurrentSession(c),
			Path:    c.Request.URL.Path,
		}
		apply(c, access.RequireAuth()(in))
	}
}

// RequireRole blocks users without the expected role (admins always
// pass). Paths under a bypass prefix skip the role check but still
// require authentication. A failing role lookup is an upstream error
// and surfaces as a 500, never as a login redirect: coercing an outage
// into "not logged in" would send users off to re-enter credentials
// for nothing.
func RequireRole(lookup RoleLookup, expected access.Role, bypass ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := access.Input{
			Session: CurrentSession(c),
			Path:    c.Request.URL.Path,
		}

		if in.Session != nil {
			role, err := lookup(c, in.Session.Identity.UserID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve role"})
				return
			}
			in.Role = role
			setResolvedRole(c, role)
		}

		policy := access.Chain(
			access.RequireAuth(),
			access.Bypass(access.RequireRole(expected), bypass...),
		)
		apply(c, policy(in))
	}
}

func apply(c *gin.Context, d access.Decision) {
	if d.Allowed {
		c.Next()
		return
	}
	c.Redirect(d.Code, d.Target)
	c.Abort()
}

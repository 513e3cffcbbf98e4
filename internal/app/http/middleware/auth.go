package middleware

import (
	"strings"
	"time"

	"dreamnest-app/config"
	"dreamnest-app/internal/domain/access"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the JWT for browser clients; API clients may
	// send the same token as a bearer header instead.
	SessionCookie = "dn_session"

	sessionContextKey = "dn.session"
	roleContextKey    = "dn.role"
)

// ResolveSession resolves the request's credentials exactly once and
// stores the result (possibly "no session") in the request context.
// Guards and handlers read the value from there; nothing downstream
// re-parses the token, so resolution is idempotent per request.
//
// A session close to expiry gets its cookie re-issued here, at most once
// per request. Refresh is best effort: a failed mint keeps the old
// cookie and the request proceeds.
func ResolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		resolver := access.NewSessionResolver([]byte(config.JWT_SECRET))

		session := resolver.Resolve(tokenFromRequest(c))
		if session != nil {
			c.Set(sessionContextKey, session)

			now := time.Now()
			if resolver.NeedsRefresh(session, now) {
				fresh, err := resolver.Issue(session.Identity, session.RoleHint, now)
				if err == nil {
					setSessionCookie(c, fresh, int(resolver.TTL.Seconds()))
				}
			}
		}

		c.Next()
	}
}

// CurrentSession returns the session resolved for this request, nil for
// anonymous requests.
func CurrentSession(c *gin.Context) *access.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*access.Session)
	return s
}

// CurrentRole returns the role resolved by a guard on this request,
// defaulting to parent when no role guard ran.
func CurrentRole(c *gin.Context) access.Role {
	v, ok := c.Get(roleContextKey)
	if !ok {
		return access.DefaultRole
	}
	r, _ := v.(access.Role)
	return r
}

func setResolvedRole(c *gin.Context, r access.Role) {
	c.Set(roleContextKey, r)
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return token
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(
		SessionCookie,
		token,
		maxAge,
		"/",
		"",    // domain (set in prod)
		false, // secure (true in prod HTTPS)
		true,  // httpOnly
	)
}

// ClearSessionCookie drops the session cookie (logout).
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// SetSessionCookie installs a freshly issued token (login, signup).
func SetSessionCookie(c *gin.Context, token string) {
	setSessionCookie(c, token, int(access.DefaultSessionTTL.Seconds()))
}

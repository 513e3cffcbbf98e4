package access

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated user a request acts as.
type Identity struct {
	UserID uint
	Email  string
}

// Session is a resolved, still-valid credential. It is resolved once per
// request and passed by value; nothing here mutates shared state.
//
// RoleHint echoes the token's role claim for clients and for re-minting
// the cookie on refresh. Authorization never trusts it; guards re-read
// the profile on every request.
type Session struct {
	Identity  Identity
	RoleHint  Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionResolver validates and mints the HS256 session tokens issued at
// login. Resolve returns nil for anything that is not a currently valid
// token; "no session" is a normal outcome, not an error.
type SessionResolver struct {
	Secret        []byte
	TTL           time.Duration
	RefreshWindow time.Duration
}

const (
	DefaultSessionTTL    = 24 * time.Hour
	DefaultRefreshWindow = 6 * time.Hour
)

func NewSessionResolver(secret []byte) *SessionResolver {
	return &SessionResolver{
		Secret:        secret,
		TTL:           DefaultSessionTTL,
		RefreshWindow: DefaultRefreshWindow,
	}
}

// Resolve parses and validates a token. Absent, malformed, badly signed
// and expired tokens all resolve to nil.
func (sr *SessionResolver) Resolve(token string) *Session {
	if token == "" {
		return nil
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return sr.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return nil
	}

	s := &Session{
		Identity: Identity{UserID: uint(userIDFloat)},
		RoleHint: DefaultRole,
	}
	if email, ok := claims["email"].(string); ok {
		s.Identity.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		s.RoleHint = ParseRole(role)
	}
	if iat, ok := claims["iat"].(float64); ok {
		s.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := claims["exp"].(float64); ok {
		s.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return s
}

// NeedsRefresh reports whether a session is close enough to expiry that
// the transport layer should re-issue its cookie. The caller is
// responsible for doing that at most once per request.
func (sr *SessionResolver) NeedsRefresh(s *Session, now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return s.ExpiresAt.Sub(now) < sr.RefreshWindow
}

// Issue mints a fresh token for an identity. The role claim is a hint
// for clients only; authorization always re-reads the profile.
func (sr *SessionResolver) Issue(identity Identity, role Role, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": identity.UserID,
		"email":   identity.Email,
		"role":    string(role),
		"iat":     now.Unix(),
		"exp":     now.Add(sr.TTL).Unix(),
	})
	return t.SignedString(sr.Secret)
}

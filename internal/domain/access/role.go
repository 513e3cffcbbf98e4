package access

// Role is the closed set of permission classes a profile can hold.
// Adding a role means extending every switch below, on purpose.
type Role string

const (
	RoleParent Role = "parent"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// DefaultRole is what a freshly signed-up (or profile-less) identity gets.
const DefaultRole = RoleParent

// ParseRole maps a stored role string to a Role.
// Unknown or empty values fall back to the default so a new signup
// is never locked out of unprivileged areas.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleParent, RoleAuthor, RoleAdmin:
		return Role(s)
	default:
		return DefaultRole
	}
}

// HomePath is the area a role lands on after login, and the fallback
// target when a role check denies access to someone else's area.
func (r Role) HomePath() string {
	switch r {
	case RoleAuthor:
		return "/author"
	case RoleAdmin:
		return "/admin"
	default:
		return "/app"
	}
}

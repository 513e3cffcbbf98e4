package subscriptions

import (
	"errors"

	"dreamnest-app/internal/domain/access"
	stripeinfra "dreamnest-app/internal/infra/stripe"

	"gorm.io/gorm"
)

// IsActive reports whether a subscription currently grants paid access.
func IsActive(s *Subscription) bool {
	if s == nil {
		return false
	}
	switch stripeinfra.NormalizeStatus(s.Status) {
	case "active", "trialing":
		return true
	default:
		return false
	}
}

// FullAccess is the entitlement rule for book content: an active
// subscription, being the book's own author, or the admin role.
// Pure; the read handler gathers the pieces first.
func FullAccess(sub *Subscription, isBookAuthor bool, role access.Role) bool {
	if IsActive(sub) {
		return true
	}
	if isBookAuthor {
		return true
	}
	return role == access.RoleAdmin
}

// ForUser loads the entitlement record, nil when none exists yet (a
// user without a subscription row simply has no paid access).
func ForUser(db *gorm.DB, userID uint) (*Subscription, error) {
	var sub Subscription
	err := db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

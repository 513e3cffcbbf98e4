package users

import "time"

// DefaultVerificationTTL bounds how long an emailed verification link
// stays redeemable.
const DefaultVerificationTTL = 24 * time.Hour

// VerificationToken is a single-use email verification token, deleted
// once redeemed. One live token per user.
type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token can no longer be redeemed.
func (t VerificationToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

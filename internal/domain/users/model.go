package users

import (
	"time"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`

	// "parent" | "author" | "admin"; parsed through access.ParseRole,
	// unknown values degrade to parent.
	Role       string `gorm:"type:varchar(20);not null;default:'parent'"`
	IsVerified bool

	OnboardingCompleted bool

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	AvatarURL *string `gorm:"column:avatar_url"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthorApplication is the record behind the /author/apply flow. The
// apply sub-area is reachable by any authenticated user even though the
// rest of /author is role-guarded.
type AuthorApplication struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"not null;uniqueIndex:idx_author_applications_user_id"`
	PenName      string
	Bio          string
	PortfolioURL *string
	Status       string `gorm:"type:varchar(20);not null;default:'pending'"` // pending | approved | rejected
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

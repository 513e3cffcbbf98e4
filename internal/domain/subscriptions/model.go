package subscriptions

import "time"

// Subscription is the per-user entitlement record, written only by the
// Stripe webhook path and read by the content gate.
type Subscription struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_subscriptions_user_id" json:"user_id"`

	StripeCustomerID     *string `gorm:"column:stripe_customer_id" json:"-"`
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id;uniqueIndex:idx_subscriptions_stripe_sub_id" json:"-"`

	Tier   string `gorm:"type:varchar(20);not null;default:'family'" json:"tier"`
	Status string `gorm:"type:varchar(30);not null;default:'none'" json:"status"`

	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `gorm:"not null;default:false" json:"cancel_at_period_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

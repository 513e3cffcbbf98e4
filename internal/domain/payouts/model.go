package payouts

import "time"

// RevenuePeriod is one month of subscription revenue to share with
// authors. Money is integer cents throughout.
type RevenuePeriod struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Month string `gorm:"type:varchar(7);not null;uniqueIndex:idx_revenue_periods_month" json:"month"` // YYYY-MM

	Currency                    string  `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	SubscriptionNetRevenueCents int64   `gorm:"not null;default:0" json:"subscription_net_revenue_cents"`
	PoolPercent                 float64 `gorm:"not null;default:30" json:"pool_percent"`

	Status string `gorm:"type:varchar(20);not null;default:'open'" json:"status"` // open | calculated | finalized

	CalculatedAt *time.Time `json:"calculated_at,omitempty"`
	FinalizedAt  *time.Time `json:"finalized_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Payout is one author's earning line. Pool payouts are regenerated
// while their period is still open; approval and payment move the row
// through its one-way status chain.
type Payout struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	AuthorID uint  `gorm:"not null;index" json:"author_id"`
	PeriodID *uint `gorm:"index" json:"period_id,omitempty"`

	Type        string `gorm:"type:varchar(30);not null" json:"type"` // subscription_pool | bonus
	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	Currency    string `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`

	EngagementUnits  int     `gorm:"not null;default:0" json:"engagement_units"`
	PoolSharePercent float64 `gorm:"not null;default:0" json:"pool_share_percent"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // pending | approved | paid | cancelled

	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	PayoutReference *string    `json:"payout_reference,omitempty"`
	FailedReason    *string    `json:"failed_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

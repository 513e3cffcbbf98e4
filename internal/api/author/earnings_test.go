package author

import (
	"testing"

	"dreamnest-app/internal/domain/payouts"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEarnings(t *testing.T) {
	rows := []payouts.Payout{
		{Type: "subscription_pool", Status: "pending", AmountCents: 1200},
		{Type: "subscription_pool", Status: "approved", AmountCents: 800},
		{Type: "subscription_pool", Status: "paid", AmountCents: 5000},
		{Type: "bonus", Status: "paid", AmountCents: 1000},
		{Type: "subscription_pool", Status: "cancelled", AmountCents: 9999},
	}

	summary := summarizeEarnings(rows)

	assert.Equal(t, int64(2000), summary.PendingCents)
	assert.Equal(t, int64(6000), summary.PaidCents)
	assert.Equal(t, int64(7000), summary.PoolCents)
	assert.Equal(t, int64(1000), summary.BonusCents)
	assert.Equal(t, 4, summary.PayoutCount)
}

func TestSummarizeEarningsEmpty(t *testing.T) {
	assert.Equal(t, EarningsSummary{}, summarizeEarnings(nil))
}

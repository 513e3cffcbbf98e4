package author

import (
	"net/http"

	"dreamnest-app/database"
	"dreamnest-app/internal/app/http/middleware"
	"dreamnest-app/internal/domain/payouts"

	"github.com/gin-gonic/gin"
)

type EarningsSummary struct {
	PendingCents int64 `json:"pending_cents"`
	PaidCents    int64 `json:"paid_cents"`
	PoolCents    int64 `json:"pool_cents"`
	BonusCents   int64 `json:"bonus_cents"`
	PayoutCount  int   `json:"payout_count"`
}

// GET /author/earnings
func Earnings(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var rows []payouts.Payout
	if err := database.DB.Where("author_id = ?", session.Identity.UserID).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load earnings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"earnings": summarizeEarnings(rows)})
}

// summarizeEarnings folds an author's payout rows into balance and
// per-type totals. Cancelled rows count toward nothing.
func summarizeEarnings(rows []payouts.Payout) EarningsSummary {
	var summary EarningsSummary
	for _, p := range rows {
		if p.Status == "cancelled" {
			continue
		}
		switch p.Status {
		case "pending", "approved":
			summary.PendingCents += p.AmountCents
		case "paid":
			summary.PaidCents += p.AmountCents
		}
		switch p.Type {
		case "subscription_pool":
			summary.PoolCents += p.AmountCents
		case "bonus":
			summary.BonusCents += p.AmountCents
		}
		summary.PayoutCount++
	}
	return summary
}

// GET /author/payouts?status=
func ListMyPayouts(c *gin.Context) {
	session := middleware.CurrentSession(c)

	q := database.DB.Where("author_id = ?", session.Identity.UserID).
		Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []payouts.Payout
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payouts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payouts": rows})
}

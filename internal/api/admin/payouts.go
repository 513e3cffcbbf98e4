package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dreamnest-app/database"
	"dreamnest-app/internal/domain/books"
	"dreamnest-app/internal/domain/payouts"
	"dreamnest-app/internal/domain/reading"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /admin/payouts/periods
// Opens (or returns) the revenue period for a month, current by default.
func GetOrCreatePeriod(c *gin.Context) {
	var input struct {
		Month string `json:"month"`
	}
	_ = c.ShouldBindJSON(&input)

	month := input.Month
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	var period payouts.RevenuePeriod
	err := database.DB.Where("month = ?", month).First(&period).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"period": period})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load period"})
		return
	}

	period = payouts.RevenuePeriod{
		Month:       month,
		Currency:    "EUR",
		PoolPercent: payouts.DefaultPoolPercent,
		Status:      "open",
	}
	if err := database.DB.Create(&period).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create period"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": period})
}

// GET /admin/payouts/periods
func ListPeriods(c *gin.Context) {
	var periods []payouts.RevenuePeriod
	if err := database.DB.Order("month DESC").Find(&periods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load periods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"periods": periods})
}

// PUT /admin/payouts/periods/:id
// Revenue and pool settings stay editable until the period finalizes.
func UpdatePeriod(c *gin.Context) {
	periodID, ok := parsePayoutID(c)
	if !ok {
		return
	}

	var period payouts.RevenuePeriod
	if err := database.DB.Where("id = ?", periodID).First(&period).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		return
	}
	if period.Status == "finalized" {
		c.JSON(http.StatusConflict, gin.H{"error": "Period is finalized"})
		return
	}

	var input struct {
		SubscriptionNetRevenueCents *int64   `json:"subscription_net_revenue_cents"`
		PoolPercent                 *float64 `json:"pool_percent"`
		Status                      *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.SubscriptionNetRevenueCents != nil {
		if *input.SubscriptionNetRevenueCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Revenue cannot be negative"})
			return
		}
		period.SubscriptionNetRevenueCents = *input.SubscriptionNetRevenueCents
	}
	if input.PoolPercent != nil {
		if *input.PoolPercent < 0 || *input.PoolPercent > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pool_percent must be within 0-100"})
			return
		}
		period.PoolPercent = *input.PoolPercent
	}
	if input.Status != nil {
		switch *input.Status {
		case "open", "calculated":
			period.Status = *input.Status
		case "finalized":
			now := time.Now()
			period.Status = "finalized"
			period.FinalizedAt = &now
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
	}

	if err := database.DB.Save(&period).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update period"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": period})
}

// POST /admin/payouts/periods/:id/calculate
// Aggregates the month's reading into per-book engagement, splits the
// pool, and rewrites the period's pending pool payouts. Recalculating
// an open period replaces its earlier pending rows, so the operation
// is repeatable until the period finalizes.
func CalculatePeriod(c *gin.Context) {
	periodID, ok := parsePayoutID(c)
	if !ok {
		return
	}

	var period payouts.RevenuePeriod
	if err := database.DB.Where("id = ?", periodID).First(&period).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		return
	}
	if period.Status == "finalized" {
		c.JSON(http.StatusConflict, gin.H{"error": "Period is finalized"})
		return
	}

	engagement, err := engagementForMonth(period.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate engagement"})
		return
	}

	pool := payouts.PoolCents(period.SubscriptionNetRevenueCents, period.PoolPercent)
	shares := payouts.DistributePool(pool, engagement)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("period_id = ? AND type = ? AND status = ?",
			period.ID, "subscription_pool", "pending").
			Delete(&payouts.Payout{}).Error; err != nil {
			return err
		}

		for _, share := range shares {
			row := payouts.Payout{
				AuthorID:         share.AuthorID,
				PeriodID:         &period.ID,
				Type:             "subscription_pool",
				AmountCents:      share.AmountCents,
				Currency:         period.Currency,
				EngagementUnits:  share.Units,
				PoolSharePercent: share.PoolSharePercent,
				Status:           "pending",
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		return tx.Model(&period).Updates(map[string]interface{}{
			"status":        "calculated",
			"calculated_at": now,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate payouts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pool_cents":   pool,
		"payout_count": len(shares),
	})
}

// GET /admin/payouts?status=&type=&period=
func ListPayouts(c *gin.Context) {
	q := database.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if payoutType := c.Query("type"); payoutType != "" {
		q = q.Where("type = ?", payoutType)
	}
	if period := c.Query("period"); period != "" {
		q = q.Where("period_id = ?", period)
	}

	var rows []payouts.Payout
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payouts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payouts": rows})
}

// POST /admin/payouts/:id/approve
func ApprovePayout(c *gin.Context) {
	payoutID, ok := parsePayoutID(c)
	if !ok {
		return
	}

	result := database.DB.Model(&payouts.Payout{}).
		Where("id = ? AND status = ?", payoutID, "pending").
		Updates(map[string]interface{}{
			"status":      "approved",
			"approved_at": time.Now(),
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve payout"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Payout not found or not pending"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payout approved"})
}

// POST /admin/payouts/:id/pay
// Records the transfer reference; payment itself happens out of band.
func MarkPayoutPaid(c *gin.Context) {
	payoutID, ok := parsePayoutID(c)
	if !ok {
		return
	}

	var input struct {
		Reference *string `json:"reference"`
	}
	_ = c.ShouldBindJSON(&input)

	result := database.DB.Model(&payouts.Payout{}).
		Where("id = ? AND status = ?", payoutID, "approved").
		Updates(map[string]interface{}{
			"status":           "paid",
			"paid_at":          time.Now(),
			"payout_reference": input.Reference,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark payout paid"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Payout not found or not approved"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payout paid"})
}

// POST /admin/payouts/:id/cancel
func CancelPayout(c *gin.Context) {
	payoutID, ok := parsePayoutID(c)
	if !ok {
		return
	}

	var input struct {
		Reason *string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	result := database.DB.Model(&payouts.Payout{}).
		Where("id = ? AND status IN ?", payoutID, []string{"pending", "approved"}).
		Updates(map[string]interface{}{
			"status":        "cancelled",
			"failed_reason": input.Reason,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel payout"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Payout not found or already settled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payout cancelled"})
}

// engagementForMonth rolls the month's reading sessions up per book.
// A session counts toward the month it was last read in.
func engagementForMonth(month string) ([]payouts.BookEngagement, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 1, 0)

	var sessions []reading.Session
	if err := database.DB.
		Where("last_read_at >= ? AND last_read_at < ?", start, end).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	type agg struct {
		seconds     int
		completions int
	}
	perBook := make(map[uint]*agg)
	for _, s := range sessions {
		a := perBook[s.BookID]
		if a == nil {
			a = &agg{}
			perBook[s.BookID] = a
		}
		a.seconds += s.TotalTimeSeconds
		if s.IsCompleted {
			a.completions++
		}
	}

	bookIDs := make([]uint, 0, len(perBook))
	for id := range perBook {
		bookIDs = append(bookIDs, id)
	}

	var bookRows []books.Book
	if err := database.DB.Where("id IN ?", bookIDs).Find(&bookRows).Error; err != nil {
		return nil, err
	}

	engagement := make([]payouts.BookEngagement, 0, len(bookRows))
	for _, b := range bookRows {
		a := perBook[b.ID]
		engagement = append(engagement, payouts.BookEngagement{
			BookID:      b.ID,
			AuthorID:    b.AuthorID,
			Minutes:     a.seconds / 60,
			Completions: a.completions,
		})
	}
	return engagement, nil
}

func parsePayoutID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id64), true
}

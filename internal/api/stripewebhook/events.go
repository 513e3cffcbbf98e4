package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"dreamnest-app/database"
	"dreamnest-app/internal/domain/subscriptions"
	"dreamnest-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
	"gorm.io/gorm"
)

func handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}

	subData, err := subscription.Get(fullSession.Subscription.ID, nil)
	if err != nil || subData == nil {
		return fmt.Errorf("failed to fetch subscription: %w", err)
	}

	userID, err := userIDFromSubscriptionOrRef(subData, fullSession.ClientReferenceID)
	if err != nil {
		return err
	}

	var customerID *string
	if fullSession.Customer != nil && fullSession.Customer.ID != "" {
		customerID = stripe.String(fullSession.Customer.ID)

		if err := database.DB.Model(&users.User{}).
			Where("id = ?", userID).
			Update("stripe_customer_id", fullSession.Customer.ID).Error; err != nil {
			return fmt.Errorf("failed to link stripe customer: %w", err)
		}
	}

	return upsertSubscription(userID, subData, customerID)
}

func handleSubscriptionUpdated(c *gin.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return errors.New("subscription missing id")
	}

	userID, ok := findUserForSubscription(sub)
	if !ok {
		// acknowledge to avoid Stripe retries if user deleted
		return nil
	}

	return upsertSubscription(userID, sub, nil)
}

func handleSubscriptionDeleted(c *gin.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	userID, ok := findUserForSubscription(sub)
	if !ok {
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	return database.DB.Model(&subscriptions.Subscription{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status":             string(sub.Status),
			"current_period_end": periodEnd,
		}).Error
}

// upsertSubscription writes the entitlement row the content gate reads.
func upsertSubscription(userID uint, sub *stripe.Subscription, customerID *string) error {
	periodStart := time.Unix(sub.CurrentPeriodStart, 0)
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	var existing subscriptions.Subscription
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	existing.UserID = userID
	existing.StripeSubscriptionID = stripe.String(sub.ID)
	if customerID != nil {
		existing.StripeCustomerID = customerID
	}
	existing.Tier = "family"
	existing.Status = string(sub.Status)
	existing.CurrentPeriodStart = &periodStart
	existing.CurrentPeriodEnd = &periodEnd
	existing.CancelAtPeriodEnd = sub.CancelAtPeriodEnd

	if existing.ID == 0 {
		return database.DB.Create(&existing).Error
	}
	return database.DB.Save(&existing).Error
}

// findUserForSubscription identifies the user by subscription metadata
// first, then by the stored stripe subscription id.
func findUserForSubscription(sub *stripe.Subscription) (uint, bool) {
	if userID := userIDFromMetadata(sub.Metadata); userID != 0 {
		var user users.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err == nil {
			return user.ID, true
		}
		return 0, false
	}

	var existing subscriptions.Subscription
	if err := database.DB.Where("stripe_subscription_id = ?", sub.ID).First(&existing).Error; err == nil {
		return existing.UserID, true
	}
	return 0, false
}

func userIDFromMetadata(metadata map[string]string) uint {
	if metadata == nil {
		return 0
	}
	uid64, err := strconv.ParseUint(metadata["user_id"], 10, 64)
	if err != nil {
		return 0
	}
	return uint(uid64)
}

func userIDFromSubscriptionOrRef(sub *stripe.Subscription, clientRef string) (uint, error) {
	if userID := userIDFromMetadata(sub.Metadata); userID != 0 {
		return userID, nil
	}
	if clientRef == "" {
		return 0, errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}
	uid64, err := strconv.ParseUint(clientRef, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id %q: %w", clientRef, err)
	}
	return uint(uid64), nil
}

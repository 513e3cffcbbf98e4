package profile

import (
	"net/http"

	"dreamnest-app/database"
	"dreamnest-app/internal/app/http/middleware"
	"dreamnest-app/internal/domain/access"
	"dreamnest-app/internal/domain/subscriptions"
	"dreamnest-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type MeResponse struct {
	User          UserDTO          `json:"user"`
	Role          string           `json:"role"`
	Subscription  *SubscriptionDTO `json:"subscription,omitempty"`
	HasFullAccess bool             `json:"has_full_access"`
}

type UserDTO struct {
	ID                  uint    `json:"id"`
	Email               string  `json:"email"`
	Name                string  `json:"name"`
	Lastname            string  `json:"lastname"`
	AvatarURL           *string `json:"avatar_url,omitempty"`
	IsVerified          bool    `json:"is_verified"`
	OnboardingCompleted bool    `json:"onboarding_completed"`
}

type SubscriptionDTO struct {
	Tier              string `json:"tier"`
	Status            string `json:"status"`
	CurrentPeriodEnd  string `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
}

// GET /app/me
func GetCurrentUser(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var user users.User
	if err := database.DB.Where("id = ?", session.Identity.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	role, err := access.ResolveRole(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve role"})
		return
	}

	sub, err := subscriptions.ForUser(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	resp := MeResponse{
		User: UserDTO{
			ID:                  user.ID,
			Email:               user.Email,
			Name:                user.Name,
			Lastname:            user.Lastname,
			AvatarURL:           user.AvatarURL,
			IsVerified:          user.IsVerified,
			OnboardingCompleted: user.OnboardingCompleted,
		},
		Role:          string(role),
		HasFullAccess: subscriptions.FullAccess(sub, false, role),
	}
	if sub != nil {
		dto := SubscriptionDTO{
			Tier:              sub.Tier,
			Status:            sub.Status,
			CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		}
		if sub.CurrentPeriodEnd != nil {
			dto.CurrentPeriodEnd = sub.CurrentPeriodEnd.Format("2006-01-02T15:04:05Z07:00")
		}
		resp.Subscription = &dto
	}

	c.JSON(http.StatusOK, resp)
}

// PUT /app/me
func UpdateProfile(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var input struct {
		Name      *string `json:"name"`
		Lastname  *string `json:"lastname"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil && *input.Name != "" {
		updates["name"] = *input.Name
	}
	if input.Lastname != nil {
		updates["lastname"] = *input.Lastname
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", session.Identity.UserID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// POST /app/onboarding/complete
func CompleteOnboarding(c *gin.Context) {
	session := middleware.CurrentSession(c)

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", session.Identity.UserID).
		Update("onboarding_completed", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete onboarding"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Onboarding completed"})
}

package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dreamnest-app/database"
	"dreamnest-app/internal/domain/access"
	"dreamnest-app/internal/domain/books"
	"dreamnest-app/internal/domain/subscriptions"
	"dreamnest-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminUser struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Lastname   string     `json:"lastname"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"is_verified"`
	SubStatus  *string    `json:"subscription_status,omitempty"`
	SubEnd     *time.Time `json:"subscription_end,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalBooks          int64 `json:"total_books"`
	PublishedBooks      int64 `json:"published_books"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	PendingApplications int64 `json:"pending_applications"`
}

// GET /admin/dashboard
func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	database.DB.Model(&users.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&books.Book{}).Count(&stats.TotalBooks)
	database.DB.Model(&books.Book{}).Where("is_published = ?", true).Count(&stats.PublishedBooks)
	database.DB.Model(&subscriptions.Subscription{}).
		Where("status IN ?", []string{"active", "trialing"}).
		Count(&stats.ActiveSubscriptions)
	database.DB.Model(&users.AuthorApplication{}).
		Where("status = ?", "pending").
		Count(&stats.PendingApplications)

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GET /admin/users
func ListAllUsers(c *gin.Context) {
	var allUsers []users.User
	if err := database.DB.Order("created_at DESC").Find(&allUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range allUsers {
		entry := AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Lastname:   u.Lastname,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt,
		}

		var sub subscriptions.Subscription
		if err := database.DB.Where("user_id = ?", u.ID).First(&sub).Error; err == nil {
			entry.SubStatus = &sub.Status
			entry.SubEnd = sub.CurrentPeriodEnd
		}

		adminUsers = append(adminUsers, entry)
	}

	c.JSON(http.StatusOK, gin.H{"users": adminUsers})
}

// GET /admin/user/:id
func GetUserDetails(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var sub *subscriptions.Subscription
	var s subscriptions.Subscription
	if err := database.DB.Where("user_id = ?", userID).First(&s).Error; err == nil {
		sub = &s
	}

	var authoredBooks []books.Book
	database.DB.Where("author_id = ?", userID).Find(&authoredBooks)

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"subscription": sub,
		"books":        authoredBooks,
	})
}

// POST /admin/users/:id/role
// Role changes take effect on the target's next request because roles
// are resolved per request and never cached across them.
func SetUserRole(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := access.ParseRole(input.Role)
	if string(role) != input.Role {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	result := database.DB.Model(&users.User{}).
		Where("id = ?", userID).
		Update("role", string(role))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "role": role})
}

// GET /admin/subscriptions
func ListSubscriptions(c *gin.Context) {
	q := database.DB.Order("updated_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var subs []subscriptions.Subscription
	if err := q.Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

// GET /admin/applications
func ListApplications(c *gin.Context) {
	status := c.DefaultQuery("status", "pending")

	var applications []users.AuthorApplication
	if err := database.DB.Where("status = ?", status).
		Order("created_at ASC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// POST /admin/applications/:id/approve
// Approval promotes the applicant to the author role.
func ApproveApplication(c *gin.Context) {
	reviewApplication(c, "approved")
}

// POST /admin/applications/:id/reject
func RejectApplication(c *gin.Context) {
	reviewApplication(c, "rejected")
}

func reviewApplication(c *gin.Context, status string) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var application users.AuthorApplication
	dbErr := database.DB.Where("id = ?", uint(id64)).First(&application).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	if dbErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load application"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&application).Update("status", status).Error; err != nil {
			return err
		}
		if status == "approved" {
			return tx.Model(&users.User{}).
				Where("id = ?", application.UserID).
				Update("role", string(access.RoleAuthor)).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application " + status})
}

func parseUserID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(id64), true
}

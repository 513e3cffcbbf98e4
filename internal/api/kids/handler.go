package kids

import (
	"errors"
	"net/http"
	"strconv"

	"dreamnest-app/database"
	"dreamnest-app/internal/app/http/middleware"
	"dreamnest-app/internal/domain/access"
	"dreamnest-app/internal/domain/reading"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /app/kids
func List(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var result []reading.Kid
	if err := database.DB.Where("user_id = ?", session.Identity.UserID).
		Order("created_at ASC").
		Find(&result).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load kid profiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kids": result})
}

// POST /app/kids
func Create(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var input struct {
		Name      string  `json:"name" binding:"required"`
		AvatarURL *string `json:"avatar_url"`
		BirthYear *int    `json:"birth_year"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kid := reading.Kid{
		UserID:    session.Identity.UserID,
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
		BirthYear: input.BirthYear,
	}
	if err := database.DB.Create(&kid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create kid profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kid": kid})
}

// PUT /app/kids/:id
func Update(c *gin.Context) {
	kid, ok := ownedKid(c)
	if !ok {
		return
	}

	var input struct {
		Name      *string `json:"name"`
		AvatarURL *string `json:"avatar_url"`
		BirthYear *int    `json:"birth_year"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil && *input.Name != "" {
		kid.Name = *input.Name
	}
	if input.AvatarURL != nil {
		kid.AvatarURL = input.AvatarURL
	}
	if input.BirthYear != nil {
		kid.BirthYear = input.BirthYear
	}

	if err := database.DB.Save(kid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update kid profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kid": kid})
}

// DELETE /app/kids/:id
func Delete(c *gin.Context) {
	kid, ok := ownedKid(c)
	if !ok {
		return
	}

	if err := database.DB.Delete(kid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete kid profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Kid profile deleted"})
}

// ownedKid loads the kid and enforces ownership. A kid belonging to
// another account and a kid that does not exist produce the same
// redirect, so the response never confirms the profile exists.
func ownedKid(c *gin.Context) (*reading.Kid, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid kid id"})
		return nil, false
	}

	var kid reading.Kid
	dbErr := database.DB.Where("id = ?", uint(id64)).First(&kid).Error
	if dbErr != nil && !errors.Is(dbErr, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load kid profile"})
		return nil, false
	}

	in := access.Input{
		Session: middleware.CurrentSession(c),
		Path:    c.Request.URL.Path,
		OwnerID: kid.UserID, // zero when not found
	}
	if d := access.RequireOwnership()(in); !d.Allowed {
		c.Redirect(d.Code, d.Target)
		c.Abort()
		return nil, false
	}

	return &kid, true
}

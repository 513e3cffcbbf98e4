package bookmarks

import (
	"errors"
	"net/http"
	"strconv"

	"dreamnest-app/database"
	"dreamnest-app/internal/app/http/middleware"
	"dreamnest-app/internal/domain/books"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /app/books/:id/bookmark
// Toggles the bookmark for the current user.
func Toggle(c *gin.Context) {
	session := middleware.CurrentSession(c)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
		return
	}
	bookID := uint(id64)

	if err := database.DB.Where("id = ? AND is_published = ?", bookID, true).
		First(&books.Book{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load book"})
		return
	}

	var existing books.Bookmark
	err = database.DB.Where("user_id = ? AND book_id = ?", session.Identity.UserID, bookID).
		First(&existing).Error
	if err == nil {
		if err := database.DB.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove bookmark"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookmarked": false})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookmark"})
		return
	}

	bookmark := books.Bookmark{UserID: session.Identity.UserID, BookID: bookID}
	if err := database.DB.Create(&bookmark).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bookmark"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": true})
}

// GET /app/bookmarks
func List(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var bookmarks []books.Bookmark
	if err := database.DB.Where("user_id = ?", session.Identity.UserID).
		Order("created_at DESC").
		Find(&bookmarks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookmarks"})
		return
	}

	ids := make([]uint, 0, len(bookmarks))
	for _, b := range bookmarks {
		ids = append(ids, b.BookID)
	}

	var result []books.Book
	if len(ids) > 0 {
		if err := database.DB.Where("id IN ? AND is_published = ?", ids, true).
			Find(&result).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load books"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"books": result})
}

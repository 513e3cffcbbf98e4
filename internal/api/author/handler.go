package author

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dreamnest-app/database"
	"dreamnest-app/internal/api/auth"
	"dreamnest-app/internal/app/http/middleware"
	"dreamnest-app/internal/domain/access"
	"dreamnest-app/internal/domain/books"
	"dreamnest-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /author/apply
// Reachable by any authenticated user: the route sits on the role
// guard's bypass list. Approval happens in the admin area.
func Apply(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var input struct {
		PenName      string  `json:"pen_name" binding:"required"`
		Bio          string  `json:"bio"`
		PortfolioURL *string `json:"portfolio_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing users.AuthorApplication
	err := database.DB.Where("user_id = ?", session.Identity.UserID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Application already submitted", "status": existing.Status})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check application"})
		return
	}

	application := users.AuthorApplication{
		UserID:       session.Identity.UserID,
		PenName:      input.PenName,
		Bio:          input.Bio,
		PortfolioURL: input.PortfolioURL,
	}
	if err := database.DB.Create(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	// Notification is best effort; the application is already stored.
	_ = auth.SendAuthorApplicationEmail(session.Identity.Email, input.PenName)

	c.JSON(http.StatusOK, gin.H{"message": "Application submitted", "application": application})
}

// GET /author/apply
func ApplicationStatus(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var application users.AuthorApplication
	err := database.DB.Where("user_id = ?", session.Identity.UserID).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"status": "none"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": application.Status, "application": application})
}

// GET /author/books
func ListMyBooks(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var result []books.Book
	if err := database.DB.Where("author_id = ?", session.Identity.UserID).
		Order("updated_at DESC").
		Find(&result).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load books"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": result})
}

// POST /author/books
func CreateBook(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var input struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		AgeRange    string  `json:"age_range"`
		CoverURL    *string `json:"cover_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book := books.Book{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		AgeRange:    input.AgeRange,
		CoverURL:    input.CoverURL,
		AuthorID:    session.Identity.UserID,
	}
	if err := database.DB.Create(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": book})
}

// PUT /author/books/:id
func UpdateBook(c *gin.Context) {
	book, ok := ownedBook(c)
	if !ok {
		return
	}

	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		AgeRange    *string `json:"age_range"`
		CoverURL    *string `json:"cover_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil && *input.Title != "" {
		book.Title = *input.Title
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Category != nil {
		book.Category = *input.Category
	}
	if input.AgeRange != nil {
		book.AgeRange = *input.AgeRange
	}
	if input.CoverURL != nil {
		book.CoverURL = input.CoverURL
	}

	if err := database.DB.Save(book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": book})
}

// DELETE /author/books/:id
func DeleteBook(c *gin.Context) {
	book, ok := ownedBook(c)
	if !ok {
		return
	}

	if err := database.DB.Where("book_id = ?", book.ID).Delete(&books.Page{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pages"})
		return
	}
	if err := database.DB.Delete(book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}

// POST /author/books/:id/publish
func PublishBook(c *gin.Context) {
	book, ok := ownedBook(c)
	if !ok {
		return
	}

	if book.PageCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot publish a book with no pages"})
		return
	}

	now := time.Now()
	book.IsPublished = true
	book.PublishedAt = &now
	if err := database.DB.Save(book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": book})
}

// POST /author/books/:id/unpublish
func UnpublishBook(c *gin.Context) {
	book, ok := ownedBook(c)
	if !ok {
		return
	}

	book.IsPublished = false
	book.PublishedAt = nil
	if err := database.DB.Save(book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unpublish book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": book})
}

// ownedBook loads a book and enforces ownership through the access
// policy. Admins do not get a pass here: writing to a book is for its
// author alone, and a missing book produces the same redirect as a
// not-owned one.
func ownedBook(c *gin.Context) (*books.Book, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
		return nil, false
	}

	var book books.Book
	dbErr := database.DB.Where("id = ?", uint(id64)).First(&book).Error
	if dbErr != nil && !errors.Is(dbErr, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load book"})
		return nil, false
	}

	in := access.Input{
		Session: middleware.CurrentSession(c),
		Path:    c.Request.URL.Path,
		OwnerID: book.AuthorID, // zero when not found
	}
	if d := access.RequireOwnership()(in); !d.Allowed {
		c.Redirect(d.Code, d.Target)
		c.Abort()
		return nil, false
	}

	return &book, true
}

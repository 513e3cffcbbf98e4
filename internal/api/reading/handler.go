package reading

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dreamnest-app/database"
	"dreamnest-app/internal/app/http/middleware"
	"dreamnest-app/internal/domain/books"
	"dreamnest-app/internal/domain/reading"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type progressInput struct {
	PageIndex int    `json:"page_index"`
	KidID     *uint  `json:"kid_id"`
	Mode      string `json:"mode"`
}

// PUT /app/books/:id/progress
// Upserts the reading session for (user, book, kid) and moves the resume
// position. The stored index is clamped to the book's page range so it
// can never point at a page that does not exist.
func UpdateProgress(c *gin.Context) {
	session := middleware.CurrentSession(c)
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	var input progressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.PageIndex < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_index must be non-negative"})
		return
	}

	var book books.Book
	if err := database.DB.Where("id = ?", bookID).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load book"})
		return
	}

	pageIndex := input.PageIndex
	if book.PageCount > 0 && pageIndex >= book.PageCount {
		pageIndex = book.PageCount - 1
	}

	rs, err := findOrInitSession(session.Identity.UserID, bookID, input.KidID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reading session"})
		return
	}

	rs.CurrentPageIndex = pageIndex
	if input.Mode == "manual" || input.Mode == "auto" {
		rs.Mode = input.Mode
	}
	rs.LastReadAt = time.Now()

	if err := database.DB.Save(rs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": rs})
}

// POST /app/books/:id/complete
func MarkCompleted(c *gin.Context) {
	session := middleware.CurrentSession(c)
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	var input struct {
		KidID *uint `json:"kid_id"`
	}
	_ = c.ShouldBindJSON(&input)

	rs, err := findOrInitSession(session.Identity.UserID, bookID, input.KidID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reading session"})
		return
	}

	now := time.Now()
	rs.IsCompleted = true
	rs.CompletedAt = &now
	rs.LastReadAt = now

	if err := database.DB.Save(rs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark completed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": rs})
}

// POST /app/books/:id/reading-time
func IncrementReadingTime(c *gin.Context) {
	session := middleware.CurrentSession(c)
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	var input struct {
		Seconds int   `json:"seconds"`
		KidID   *uint `json:"kid_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Seconds <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seconds must be positive"})
		return
	}

	rs, err := findOrInitSession(session.Identity.UserID, bookID, input.KidID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reading session"})
		return
	}

	rs.TotalTimeSeconds += input.Seconds
	rs.LastReadAt = time.Now()

	if err := database.DB.Save(rs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reading time"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_time_seconds": rs.TotalTimeSeconds})
}

// GET /app/reading/continue
func ContinueReading(c *gin.Context) {
	session := middleware.CurrentSession(c)

	limit := 5
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	var sessions []reading.Session
	if err := database.DB.
		Where("user_id = ? AND is_completed = ?", session.Identity.UserID, false).
		Order("last_read_at DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reading history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": withBooks(sessions)})
}

// GET /app/reading/completed
func CompletedBooks(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var sessions []reading.Session
	if err := database.DB.
		Where("user_id = ? AND is_completed = ?", session.Identity.UserID, true).
		Order("completed_at DESC").
		Limit(10).
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reading history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": withBooks(sessions)})
}

type sessionWithBook struct {
	reading.Session
	Book *books.Book `json:"book,omitempty"`
}

func withBooks(sessions []reading.Session) []sessionWithBook {
	out := make([]sessionWithBook, 0, len(sessions))
	for _, rs := range sessions {
		entry := sessionWithBook{Session: rs}
		var book books.Book
		if err := database.DB.Where("id = ?", rs.BookID).First(&book).Error; err == nil {
			entry.Book = &book
		}
		out = append(out, entry)
	}
	return out
}

func findOrInitSession(userID, bookID uint, kidID *uint) (*reading.Session, error) {
	q := database.DB.Where("user_id = ? AND book_id = ?", userID, bookID)
	if kidID != nil {
		q = q.Where("kid_id = ?", *kidID)
	} else {
		q = q.Where("kid_id IS NULL")
	}

	var rs reading.Session
	err := q.First(&rs).Error
	if err == nil {
		return &rs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &reading.Session{
		UserID:     userID,
		BookID:     bookID,
		KidID:      kidID,
		LastReadAt: time.Now(),
	}, nil
}

func parseBookID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
		return 0, false
	}
	return uint(id64), true
}

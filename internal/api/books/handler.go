package books

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"dreamnest-app/database"
	"dreamnest-app/internal/app/http/middleware"
	"dreamnest-app/internal/domain/access"
	"dreamnest-app/internal/domain/books"
	"dreamnest-app/internal/domain/reading"
	"dreamnest-app/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /app/books?category=&q=
func ListBooks(c *gin.Context) {
	q := database.DB.Where("is_published = ?", true)

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if search := c.Query("q"); search != "" {
		q = q.Where("title ILIKE ?", "%"+search+"%")
	}

	var results []books.Book
	if err := q.Order("published_at DESC").Find(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load books"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": results})
}

// GET /app/books/:id
func GetBook(c *gin.Context) {
	session := middleware.CurrentSession(c)
	bookID, ok := parseID(c)
	if !ok {
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

	// Unpublished books are visible only to their author
	if !book.IsPublished && book.AuthorID != session.Identity.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	var bookmarked bool
	var resume *reading.Session
	if err := database.DB.Where("user_id = ? AND book_id = ?", session.Identity.UserID, bookID).
		First(&books.Bookmark{}).Error; err == nil {
		bookmarked = true
	}
	var rs reading.Session
	if err := database.DB.Where("user_id = ? AND book_id = ? AND kid_id IS NULL", session.Identity.UserID, bookID).
		First(&rs).Error; err == nil {
		resume = &rs
	}

	c.JSON(http.StatusOK, gin.H{
		"book":       book,
		"bookmarked": bookmarked,
		"session":    resume,
	})
}

// Read serves GET /app/books/:id/read?page=&kid=, the entitlement-gated
// reader. The book, its pages, the reading session and the subscription
// are independent lookups and are fetched concurrently; the resume
// computation runs once all of them are in.
func Read(c *gin.Context) {
	session := middleware.CurrentSession(c)
	userID := session.Identity.UserID

	bookID, ok := parseID(c)
	if !ok {
		return
	}

	kidID, kidGiven := parseKidParam(c.Query("kid"))

	db := database.DB.WithContext(c.Request.Context())

	var (
		wg sync.WaitGroup

		book    books.Book
		bookErr error

		pages    []books.Page
		pagesErr error

		readSession *reading.Session
		sessionErr  error

		sub    *subscriptions.Subscription
		subErr error

		role    access.Role
		roleErr error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		bookErr = db.Where("id = ?", bookID).First(&book).Error
	}()
	go func() {
		defer wg.Done()
		pagesErr = db.Where("book_id = ?", bookID).Order("page_index ASC").Find(&pages).Error
	}()
	go func() {
		defer wg.Done()
		q := db.Where("user_id = ? AND book_id = ?", userID, bookID)
		if kidGiven {
			q = q.Where("kid_id = ?", kidID)
		} else {
			q = q.Where("kid_id IS NULL")
		}
		var rs reading.Session
		err := q.First(&rs).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}
		if err != nil {
			sessionErr = err
			return
		}
		readSession = &rs
	}()
	go func() {
		defer wg.Done()
		sub, subErr = subscriptions.ForUser(db, userID)
	}()
	go func() {
		defer wg.Done()
		role, roleErr = access.ResolveRole(db, userID)
	}()
	wg.Wait()

	// A missing book is a plain 404, decided before any gating.
	if errors.Is(bookErr, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	if err := firstError(bookErr, pagesErr, sessionErr, subErr, roleErr); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load book"})
		return
	}
	if !book.IsPublished && book.AuthorID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	hasFullAccess := subscriptions.FullAccess(sub, book.AuthorID == userID, role)

	previewLimit := reading.DefaultPreviewLimit
	startIndex := reading.StartIndex(c.Query("page"), readSession, len(pages))

	if !reading.CanAccess(hasFullAccess, startIndex, previewLimit) {
		preview := pages
		if len(preview) > previewLimit {
			preview = preview[:previewLimit]
		}
		c.JSON(http.StatusOK, gin.H{
			"gated":          true,
			"book":           book,
			"preview_pages":  preview,
			"preview_limit":  previewLimit,
			"requested_page": startIndex,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gated":           false,
		"book":            book,
		"pages":           pages,
		"initial_page":    startIndex,
		"has_full_access": hasFullAccess,
		"preview_limit":   previewLimit,
		"session":         readSession,
		"kid_id":          c.Query("kid"),
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
		return 0, false
	}
	return uint(id64), true
}

// parseKidParam accepts the opaque secondary-viewer id. It selects which
// resume position applies and nothing else.
func parseKidParam(raw string) (uint, bool) {
	if raw == "" {
		return 0, false
	}
	id64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

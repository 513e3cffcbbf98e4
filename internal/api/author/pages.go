package author

import (
	"errors"
	"net/http"
	"strconv"

	"dreamnest-app/database"
	"dreamnest-app/internal/domain/books"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GET /author/books/:id/pages
func ListPages(c *gin.Context) {
	book, ok := ownedBook(c)
	if !ok {
		return
	}

	var pages []books.Page
	if err := database.DB.Where("book_id = ?", book.ID).
		Order("page_index ASC").
		Find(&pages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// POST /author/books/:id/pages
// Appends a page at the end of the book.
func CreatePage(c *gin.Context) {
	book, ok := ownedBook(c)
	if !ok {
		return
	}

	var input struct {
		Text         string  `json:"text"`
		ImageURL     *string `json:"image_url"`
		NarrationURL *string `json:"narration_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := books.Page{
		BookID:       book.ID,
		Text:         input.Text,
		ImageURL:     input.ImageURL,
		NarrationURL: input.NarrationURL,
	}

	// The next index comes from a count read under a row lock inside the
	// transaction, so concurrent appends to the same book serialize
	// instead of colliding on the (book_id, page_index) unique index.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var current books.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", book.ID).First(&current).Error; err != nil {
			return err
		}
		page.PageIndex = current.PageCount
		if err := tx.Create(&page).Error; err != nil {
			return err
		}
		return tx.Model(&books.Book{}).
			Where("id = ?", book.ID).
			Update("page_count", current.PageCount+1).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// PUT /author/books/:id/pages/:pageIndex
func UpdatePage(c *gin.Context) {
	book, ok := ownedBook(c)
	if !ok {
		return
	}

	pageIndex, ok := parsePageIndex(c)
	if !ok {
		return
	}

	var page books.Page
	if err := database.DB.Where("book_id = ? AND page_index = ?", book.ID, pageIndex).
		First(&page).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	var input struct {
		Text         *string `json:"text"`
		ImageURL     *string `json:"image_url"`
		NarrationURL *string `json:"narration_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Text != nil {
		page.Text = *input.Text
	}
	if input.ImageURL != nil {
		page.ImageURL = input.ImageURL
	}
	if input.NarrationURL != nil {
		page.NarrationURL = input.NarrationURL
	}

	if err := database.DB.Save(&page).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// DELETE /author/books/:id/pages/:pageIndex
// Removes a page and closes the index gap so page indexes stay dense.
func DeletePage(c *gin.Context) {
	book, ok := ownedBook(c)
	if !ok {
		return
	}

	pageIndex, ok := parsePageIndex(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("book_id = ? AND page_index = ?", book.ID, pageIndex).
			Delete(&books.Page{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&books.Page{}).
			Where("book_id = ? AND page_index > ?", book.ID, pageIndex).
			Update("page_index", gorm.Expr("page_index - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&books.Book{}).
			Where("id = ?", book.ID).
			Update("page_count", gorm.Expr("page_count - 1")).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Page deleted"})
}

// PUT /author/books/:id/pages/reorder
// Takes the full list of page ids in their new order. The unique
// (book_id, page_index) constraint forces a two-step move: all indexes
// are shifted out of range first, then assigned their final positions.
func ReorderPages(c *gin.Context) {
	book, ok := ownedBook(c)
	if !ok {
		return
	}

	var req struct {
		PageIDs []uint `json:"page_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.PageIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_ids required"})
		return
	}

	var existingIDs []uint
	if err := database.DB.Model(&books.Page{}).
		Where("book_id = ?", book.ID).
		Pluck("id", &existingIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}
	// A duplicated or unknown id would leave gaps and out-of-range
	// indexes behind, so anything short of an exact permutation is
	// rejected before any index moves.
	if !isPermutationOf(req.PageIDs, existingIDs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_ids must list every page exactly once"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&books.Page{}).
			Where("book_id = ?", book.ID).
			Update("page_index", gorm.Expr("page_index + ?", len(existingIDs))).Error; err != nil {
			return err
		}

		for i, pageID := range req.PageIDs {
			result := tx.Model(&books.Page{}).
				Where("id = ? AND book_id = ?", pageID, book.ID).
				Update("page_index", i)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_ids contains an unknown page"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder pages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// isPermutationOf reports whether ids lists exactly the members of
// want, each once.
func isPermutationOf(ids, want []uint) bool {
	if len(ids) != len(want) {
		return false
	}
	remaining := make(map[uint]struct{}, len(want))
	for _, id := range want {
		remaining[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := remaining[id]; !ok {
			return false
		}
		delete(remaining, id)
	}
	return true
}

func parsePageIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("pageIndex"))
	if err != nil || idx < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page index"})
		return 0, false
	}
	return idx, true
}

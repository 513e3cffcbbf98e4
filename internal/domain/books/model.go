package books

import (
	"time"

	"dreamnest-app/internal/domain/users"
)

type Book struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `gorm:"index" json:"category,omitempty"`
	AgeRange    string `json:"age_range,omitempty"`

	AuthorID uint       `gorm:"not null;index" json:"author_id"`
	Author   users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CoverURL *string `gorm:"column:cover_url" json:"cover_url,omitempty"`

	// Denormalized count of pages; kept in step by the page handlers so
	// the reader can clamp resume positions without loading every page.
	PageCount int `gorm:"not null;default:0" json:"page_count"`

	IsPublished bool       `gorm:"not null;default:false;index" json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page is one addressable content unit. PageIndex is zero-based and
// unique per book; the preview gate compares against it directly.
type Page struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BookID uint `gorm:"not null;uniqueIndex:idx_pages_book_index,priority:1" json:"book_id"`

	PageIndex int `gorm:"not null;uniqueIndex:idx_pages_book_index,priority:2" json:"page_index"`

	Text         string  `json:"text,omitempty"`
	ImageURL     *string `gorm:"column:image_url" json:"image_url,omitempty"`
	NarrationURL *string `gorm:"column:narration_url" json:"narration_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bookmark marks a book saved by a user; one row per (user, book).
type Bookmark struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_bookmarks_user_book,priority:1" json:"user_id"`
	BookID uint `gorm:"not null;uniqueIndex:idx_bookmarks_user_book,priority:2" json:"book_id"`

	CreatedAt time.Time `json:"created_at"`
}

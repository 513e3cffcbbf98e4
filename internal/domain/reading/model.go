package reading

import "time"

// Kid is an optional secondary viewer profile under a parent account.
// Which kid is reading never changes access decisions; it only selects
// which resume position to use.
type Kid struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"not null;index" json:"user_id"`
	Name      string  `gorm:"not null" json:"name"`
	AvatarURL *string `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	BirthYear *int    `json:"birth_year,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session tracks reading progress per (user, book, kid). Created lazily
// on the first progress write; CurrentPageIndex is clamped into the
// book's page range whenever it is read back.
type Session struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;uniqueIndex:idx_reading_sessions_user_book_kid,priority:1" json:"user_id"`
	BookID uint  `gorm:"not null;uniqueIndex:idx_reading_sessions_user_book_kid,priority:2" json:"book_id"`
	KidID  *uint `gorm:"uniqueIndex:idx_reading_sessions_user_book_kid,priority:3" json:"kid_id,omitempty"`

	CurrentPageIndex int    `gorm:"not null;default:0" json:"current_page_index"`
	Mode             string `gorm:"type:varchar(20);not null;default:'manual'" json:"mode"` // manual | auto

	IsCompleted bool       `gorm:"not null;default:false;index" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	TotalTimeSeconds int       `gorm:"not null;default:0" json:"total_time_seconds"`
	LastReadAt       time.Time `gorm:"index" json:"last_read_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

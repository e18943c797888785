// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultPostImage is used when a post is created without a cover image.
const DefaultPostImage = "https://cdn.quill.dev/images/post-default.png"

// PostCategories is the enumerated set of allowed post categories.
var PostCategories = []string{"uncategorized", "javascript", "reactjs", "nextjs"}

// Post represents a published article in the Quill application.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"userId"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title     string         `gorm:"unique;not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Image     string         `json:"image"`
	Category  string         `gorm:"default:uncategorized;index" json:"category"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidCategory reports whether c is one of the enumerated post categories.
func ValidCategory(c string) bool {
	for _, v := range PostCategories {
		if v == c {
			return true
		}
	}
	return false
}

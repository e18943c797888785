// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxCommentLength bounds the length of a comment's content.
const MaxCommentLength = 200

// Comment represents a comment on a post.
// Likes and NumberOfLikes are derived from comment_likes rows at query time.
type Comment struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PostID        uint           `gorm:"not null;index" json:"postId"`
	UserID        uint           `gorm:"not null;index" json:"userId"`
	Content       string         `gorm:"not null" json:"content"`
	Likes         []uint         `gorm:"-" json:"likes"`
	NumberOfLikes int            `gorm:"-" json:"numberOfLikes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// CommentLike records that a user liked a comment.
// The combination of UserID and CommentID must be unique.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"userId"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}

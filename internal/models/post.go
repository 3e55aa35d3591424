// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents an image post in the Snapfeed application.
type Post struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	Image       string   `gorm:"not null" json:"image"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	Category    Category `gorm:"not null;index" json:"category"`
	CreatorID   uint     `gorm:"not null;index" json:"creator_id"`
	Creator     User     `gorm:"foreignKey:CreatorID" json:"creator"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Comments      []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

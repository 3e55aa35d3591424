package models

import "time"

// Like records a user liking a post. The (UserID, PostID) pair is unique,
// and rows are hard-deleted on unlike so a user can re-like later.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

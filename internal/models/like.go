package models

import "time"

// Like represents a like fact on a post. The composite unique index is the
// arbiter under concurrent requests: two simultaneous likes from the same
// user leave at most one row.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

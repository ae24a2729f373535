package models

import "time"

// Known notification target kinds. Handlers only ever write these
// constants, so target_type behaves as a tagged variant over the
// referenced entity kinds.
const (
	TargetPost    = "post"
	TargetComment = "comment"
	TargetUser    = "user"
)

// Notification represents an actor -> recipient event. Rows are append-only
// except for the is_read flag, which only transitions unread -> read.
// The target reference is weak: deleting the target leaves the row behind
// and renderers treat the target as unavailable.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Verb        string    `json:"verb" gorm:"size:255"` // e.g. "liked your post", "started following you"
	TargetType  string    `json:"target_type,omitempty" gorm:"size:20"`
	TargetID    *uint     `json:"target_id,omitempty"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

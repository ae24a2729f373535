package models

import "time"

// Activity represents a fitness activity logged by a user
type Activity struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index"`
	ActivityType   string    `json:"activity_type" gorm:"size:20"` // RUNNING, WALKING, CYCLING, GYM, SWIMMING
	Duration       int       `json:"duration"`                     // minutes
	CaloriesBurned int       `json:"calories_burned"`
	Date           time.Time `json:"date" gorm:"index"`
}

// CreateActivityRequest defines the request body for logging an activity
type CreateActivityRequest struct {
	ActivityType   string `json:"activity_type" validate:"required,oneof=RUNNING WALKING CYCLING GYM SWIMMING"`
	Duration       int    `json:"duration" validate:"required,min=1"`
	CaloriesBurned int    `json:"calories_burned" validate:"min=0"`
}

// UpdateActivityRequest defines the request body for updating an activity
type UpdateActivityRequest struct {
	ActivityType   string `json:"activity_type,omitempty" validate:"omitempty,oneof=RUNNING WALKING CYCLING GYM SWIMMING"`
	Duration       int    `json:"duration,omitempty" validate:"omitempty,min=1"`
	CaloriesBurned int    `json:"calories_burned,omitempty" validate:"omitempty,min=0"`
}

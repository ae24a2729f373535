package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;size:150"`
	Email          string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password       string    `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"` // URL, avoids image storage setup
	FollowersCount int       `json:"followers_count" gorm:"default:0"`
	FollowingCount int       `json:"following_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserCompact is the minimal public projection of a user (no credential or bio leakage)
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ToCompact converts a User to its compact projection
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username}
}

// PublicProfile is the anonymous-visible view of an account; contact
// details stay private to the owner
type PublicProfile struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
}

// ToPublicProfile converts a User to its public projection
func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		ID:             u.ID,
		Username:       u.Username,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// LoginRequest defines the request body for user login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for partial profile updates
type UpdateProfileRequest struct {
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Bio            string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePicture string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

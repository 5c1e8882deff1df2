package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account. Followers and Following are derived from the follow
// edge table and filled in by the repository on every read.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"` // always lowercase
	Password  string    `json:"-" gorm:"not null"`                 // bcrypt hash
	Bio       string    `json:"bio" gorm:"not null;default:''"`
	Followers []uint    `json:"followers" gorm:"-"`
	Following []uint    `json:"following" gorm:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary is the public subset of a user embedded in other views.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// Summary returns the public fields of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, Bio: u.Bio}
}

// IsFollowing reports whether u follows the given user.
func (u *User) IsFollowing(id uint) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}

// Profile is the public profile of a user with its social graph expanded.
type Profile struct {
	UserSummary
	Followers []UserSummary `json:"followers"`
	Following []UserSummary `json:"following"`
	CreatedAt time.Time     `json:"created_at"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest only overwrites the fields that are present.
type UpdateProfileRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=160"`
	OldPassword string  `json:"oldPassword,omitempty"`
	Password    string  `json:"password,omitempty" validate:"omitempty,min=6"`
}

// AuthResponse is returned by signup, login and profile updates.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// FollowResult is the outcome of a follow toggle.
type FollowResult struct {
	Following       bool   `json:"is_following"`
	TargetFollowers []uint `json:"followers"`
	ActorFollowing  []uint `json:"following"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth providers accepted for an account.
const (
	AuthByEmail  = "email"
	AuthByGoogle = "google"
)

// User represents a platform account stored in MongoDB
type User struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FullName        string             `json:"fullName" bson:"fullName"`
	UserName        string             `json:"userName" bson:"userName"`
	Email           string             `json:"email" bson:"email"`
	Avatar          string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Password        string             `json:"-" bson:"password,omitempty"` // bcrypt hash, empty for Google accounts
	AuthBy          string             `json:"authBy" bson:"authBy"`
	LoginID         string             `json:"-" bson:"loginId,omitempty"` // Google subject id for OAuth accounts
	FollowersCount  int                `json:"followersCount" bson:"followersCount"`
	FollowingsCount int                `json:"followingsCount" bson:"followingsCount"`
	RefreshToken    string             `json:"-" bson:"refreshToken,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserListItem is the projected shape returned by the user list query
type UserListItem struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	UserName string             `json:"userName" bson:"userName"`
	FullName string             `json:"fullName" bson:"fullName"`
	Avatar   string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Email    string             `json:"email" bson:"email"`
}

// CreateUserRequest defines the multipart form fields for registration
type CreateUserRequest struct {
	FullName string `form:"fullName" json:"fullName" validate:"required,min=2,max=50"`
	UserName string `form:"userName" json:"userName" validate:"required,min=3,max=20"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"omitempty,min=8"`
	AuthBy   string `form:"authBy" json:"authBy" validate:"omitempty,oneof=email google"`
}

// LoginUserRequest defines the request body for login
type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	LoginID  string `json:"loginId"`
}

// UpdateUserRequest defines the request body for profile updates
type UpdateUserRequest struct {
	FullName string `json:"fullName" validate:"omitempty,min=2,max=50"`
	UserName string `json:"userName" validate:"omitempty,min=3,max=20"`
}

// UpdatePasswordRequest defines the request body for password changes
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

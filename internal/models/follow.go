package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow represents a follow relationship between two users
type Follow struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FollowingTo primitive.ObjectID `json:"followingTo" bson:"followingTo"`
	FollowedBy  primitive.ObjectID `json:"followedBy" bson:"followedBy"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FollowRequest defines the request body for following/unfollowing a user
type FollowRequest struct {
	FollowingTo string `json:"followingTo" validate:"required"`
}

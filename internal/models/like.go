package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like represents a like on a blog. At most one per (postId, likedByUser)
// pair; the handler enforces this with a check before insert.
type Like struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID      primitive.ObjectID `json:"postId" bson:"postId"`
	LikedByUser primitive.ObjectID `json:"likedByUser" bson:"likedByUser"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateLikeRequest defines the request body for liking/unliking a blog
type CreateLikeRequest struct {
	BlogID string `json:"blogId" validate:"required"`
}

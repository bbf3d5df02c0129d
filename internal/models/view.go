package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// View represents a viewing record for a blog. A repeat view by the same
// viewer bumps Repetition on the existing row instead of inserting.
type View struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID     primitive.ObjectID `json:"postId" bson:"postId"`
	ViewedBy   primitive.ObjectID `json:"viewedBy" bson:"viewedBy"`
	Repetition int                `json:"repetition" bson:"repetition"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AddViewRequest defines the request body for recording a view
type AddViewRequest struct {
	BlogID string `json:"blogId" validate:"required"`
}

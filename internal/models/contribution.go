package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contribution represents an invitation for a user to co-edit a blog.
// Active accepted contributors pass the blog editor gate alongside the
// creator.
type Contribution struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BlogID      primitive.ObjectID `json:"blogId" bson:"blogId"`
	BlogDetails bson.M             `json:"blogDetails,omitempty" bson:"blogDetails,omitempty"` // snapshot shown with the invitation
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	UserName    string             `json:"userName" bson:"userName"`
	Avatar      string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsRespond   bool               `json:"isRespond" bson:"isRespond"`
	IsAccepted  bool               `json:"isAccepted" bson:"isAccepted"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AddContributorRequest defines the request body for inviting a contributor
type AddContributorRequest struct {
	BlogID   string `json:"blogId" validate:"required"`
	UserName string `json:"userName" validate:"required"`
}

// ContributionResponseRequest defines the request body for answering an invitation
type ContributionResponseRequest struct {
	ContributionID string `json:"contributionId" validate:"required"`
	Accepted       bool   `json:"accepted"`
}

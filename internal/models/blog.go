package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload statuses a blog moves through.
const (
	UploadStatusDraft  = "draft"
	UploadStatusPublic = "public"
)

// Blog represents a blog post stored in MongoDB
type Blog struct {
	ID             primitive.ObjectID       `json:"id,omitempty" bson:"_id,omitempty"`
	Creator        primitive.ObjectID       `json:"creator" bson:"creator"`
	BlogTitle      string                   `json:"blogTitle" bson:"blogTitle"`
	ContentList    []map[string]interface{} `json:"contentList" bson:"contentList"` // ordered editor blocks, opaque to the backend
	BlogCategories []string                 `json:"blogCategories,omitempty" bson:"blogCategories,omitempty"`
	Thumbnail      string                   `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	TagList        []string                 `json:"tagList,omitempty" bson:"tagList,omitempty"`
	UploadStatus   string                   `json:"uploadStatus" bson:"uploadStatus"`
	TotalLikes     int                      `json:"totalLikes" bson:"totalLikes"`
	TotalViews     int                      `json:"totalViews" bson:"totalViews"`
	CreatedAt      time.Time                `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt" bson:"updatedAt"`
}

// BlogListItem is the projected shape used by every listing query; it
// never carries contentList.
type BlogListItem struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Creator      primitive.ObjectID `json:"creator" bson:"creator"`
	BlogTitle    string             `json:"blogTitle" bson:"blogTitle"`
	Thumbnail    string             `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	TotalViews   int                `json:"totalViews" bson:"totalViews"`
	TotalLikes   int                `json:"totalLikes" bson:"totalLikes"`
	UploadStatus string             `json:"uploadStatus" bson:"uploadStatus"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CreateBlogRequest defines the request body for creating a blog
type CreateBlogRequest struct {
	BlogTitle   string                   `json:"blogTitle" validate:"required"`
	ContentList []map[string]interface{} `json:"contentList" validate:"required"`
	Thumbnail   string                   `json:"thumbnail"`
}

// UpdateBlogRequest defines the request body for updating title/content
type UpdateBlogRequest struct {
	BlogID      string                   `json:"blogId" validate:"required"`
	BlogTitle   string                   `json:"blogTitle"`
	ContentList []map[string]interface{} `json:"contentList"`
}

// UpdateTagListRequest defines the request body for replacing a blog's tags
type UpdateTagListRequest struct {
	BlogID  string   `json:"blogId" validate:"required"`
	TagList []string `json:"tagList" validate:"required"`
}

// UpdateThumbnailRequest defines the request body for replacing the thumbnail
type UpdateThumbnailRequest struct {
	BlogID    string `json:"blogId" validate:"required"`
	Thumbnail string `json:"thumbnail" validate:"required"`
}

// UpdateUploadStatusRequest defines the request body for publishing/unpublishing
type UpdateUploadStatusRequest struct {
	BlogID string `json:"blogId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=draft public"`
}

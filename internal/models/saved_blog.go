package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedBlog represents a bookmarked blog in a user's save list
type SavedBlog struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BlogID    primitive.ObjectID `json:"blogId" bson:"blogId"`
	SavedBy   primitive.ObjectID `json:"savedBy" bson:"savedBy"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SavedBlogGroup is one calendar day of saves, blogs joined from the
// blogs collection with contentList stripped.
type SavedBlogGroup struct {
	Date  string   `json:"date" bson:"date"`
	Blogs []bson.M `json:"blogs" bson:"blogs"`
}

// SavedBlogIDList is the grouped id-only view of a user's save list
type SavedBlogIDList struct {
	BlogIDList []primitive.ObjectID `json:"blogIdList" bson:"blogIdList"`
}

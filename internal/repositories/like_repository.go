package repositories

import (
	"context"
	"time"

	"github.com/sibsankar910/inkflows-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, postID, userID primitive.ObjectID) error
	HasUserLiked(ctx context.Context, postID, userID primitive.ObjectID) (bool, error)
	CountByPostID(ctx context.Context, postID primitive.ObjectID) (int64, error)
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// CreateLike creates a new like in MongoDB
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	like.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, like)
	return err
}

// DeleteLike deletes the like of a user on a blog
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"postId": postID, "likedByUser": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// HasUserLiked checks if a user has liked a specific blog
func (r *MongoLikeRepository) HasUserLiked(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"postId": postID, "likedByUser": userID})
	return count > 0, err
}

// CountByPostID counts the likes referencing a blog via a grouped
// aggregation; no group means zero likes.
func (r *MongoLikeRepository) CountByPostID(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"postId": postID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$postId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Count int64 `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Count, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/sibsankar910/inkflows-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followingTo, followedBy primitive.ObjectID) error
	IsFollowing(ctx context.Context, followingTo, followedBy primitive.ObjectID) (bool, error)
	CountFollowersAndFollowings(ctx context.Context, followingTo, followedBy primitive.ObjectID) (followers, followings int64, err error)
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection("follows")}
}

// CreateFollow creates a new follow relationship in MongoDB
func (r *MongoFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	follow.ID = primitive.NewObjectID()
	follow.CreatedAt = time.Now()
	follow.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, follow)
	return err
}

// DeleteFollow deletes a follow relationship
func (r *MongoFollowRepository) DeleteFollow(ctx context.Context, followingTo, followedBy primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"followingTo": followingTo, "followedBy": followedBy})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// IsFollowing checks if followedBy already follows followingTo
func (r *MongoFollowRepository) IsFollowing(ctx context.Context, followingTo, followedBy primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"followingTo": followingTo, "followedBy": followedBy})
	return count > 0, err
}

// CountFollowersAndFollowings counts, in one $facet round trip, the
// followers of the target user and the followings of the acting user.
// A missing facet group means zero rows.
func (r *MongoFollowRepository) CountFollowersAndFollowings(ctx context.Context, followingTo, followedBy primitive.ObjectID) (int64, int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$facet", Value: bson.M{
			"followers": bson.A{
				bson.M{"$match": bson.M{"followingTo": followingTo}},
				bson.M{"$group": bson.M{"_id": nil, "count": bson.M{"$sum": 1}}},
				bson.M{"$project": bson.M{"_id": 0, "count": 1}},
			},
			"followings": bson.A{
				bson.M{"$match": bson.M{"followedBy": followedBy}},
				bson.M{"$group": bson.M{"_id": nil, "count": bson.M{"$sum": 1}}},
				bson.M{"$project": bson.M{"_id": 0, "count": 1}},
			},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"followersCount":  bson.M{"$arrayElemAt": bson.A{"$followers.count", 0}},
			"followingsCount": bson.M{"$arrayElemAt": bson.A{"$followings.count", 0}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		FollowersCount  int64 `bson:"followersCount"`
		FollowingsCount int64 `bson:"followingsCount"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].FollowersCount, results[0].FollowingsCount, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/sibsankar910/inkflows-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ViewRepository defines the interface for view data operations
type ViewRepository interface {
	CreateView(ctx context.Context, view *models.View) error
	GetView(ctx context.Context, postID, viewerID primitive.ObjectID) (*models.View, error)
	IncrementRepetition(ctx context.Context, id primitive.ObjectID) error
	CountByPostID(ctx context.Context, postID primitive.ObjectID) (int64, error)
}

// MongoViewRepository implements ViewRepository for MongoDB
type MongoViewRepository struct {
	collection *mongo.Collection
}

// NewMongoViewRepository creates a new MongoViewRepository
func NewMongoViewRepository(db *mongo.Database) *MongoViewRepository {
	return &MongoViewRepository{collection: db.Collection("views")}
}

// CreateView creates a new view record in MongoDB
func (r *MongoViewRepository) CreateView(ctx context.Context, view *models.View) error {
	view.ID = primitive.NewObjectID()
	view.CreatedAt = time.Now()
	view.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, view)
	return err
}

// GetView retrieves the view record of a viewer on a blog
func (r *MongoViewRepository) GetView(ctx context.Context, postID, viewerID primitive.ObjectID) (*models.View, error) {
	var view models.View
	err := r.collection.FindOne(ctx, bson.M{"postId": postID, "viewedBy": viewerID}).Decode(&view)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrViewNotFound
		}
		return nil, err
	}
	return &view, nil
}

// IncrementRepetition bumps the repeat-view counter on an existing
// view record. It deliberately leaves Blog.totalViews alone.
func (r *MongoViewRepository) IncrementRepetition(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"repetition": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	return err
}

// CountByPostID counts the view rows referencing a blog; repetition
// values are not summed in.
func (r *MongoViewRepository) CountByPostID(ctx context.Context, postID primitive.ObjectID) (int64, error) {
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

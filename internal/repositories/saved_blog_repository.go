package repositories

import (
	"context"
	"time"

	"github.com/sibsankar910/inkflows-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SavedBlogRepository defines the interface for save-list operations
type SavedBlogRepository interface {
	CreateSavedBlog(ctx context.Context, saved *models.SavedBlog) error
	DeleteSavedBlog(ctx context.Context, blogID, userID primitive.ObjectID) error
	IsBlogSaved(ctx context.Context, blogID, userID primitive.ObjectID) (bool, error)
	GetSavedBlogIDList(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	GetSavedBlogsGroupedByDay(ctx context.Context, userID primitive.ObjectID) ([]models.SavedBlogGroup, error)
}

// MongoSavedBlogRepository implements SavedBlogRepository for MongoDB
type MongoSavedBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoSavedBlogRepository creates a new MongoSavedBlogRepository
func NewMongoSavedBlogRepository(db *mongo.Database) *MongoSavedBlogRepository {
	return &MongoSavedBlogRepository{collection: db.Collection("savedblogs")}
}

// CreateSavedBlog creates a new save-list entry in MongoDB
func (r *MongoSavedBlogRepository) CreateSavedBlog(ctx context.Context, saved *models.SavedBlog) error {
	saved.ID = primitive.NewObjectID()
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, saved)
	return err
}

// DeleteSavedBlog removes a blog from a user's save list
func (r *MongoSavedBlogRepository) DeleteSavedBlog(ctx context.Context, blogID, userID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"blogId": blogID, "savedBy": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSavedBlogNotFound
	}
	return nil
}

// IsBlogSaved checks if a user has already saved a blog
func (r *MongoSavedBlogRepository) IsBlogSaved(ctx context.Context, blogID, userID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"blogId": blogID, "savedBy": userID})
	return count > 0, err
}

// GetSavedBlogIDList retrieves the ids of every blog a user has saved
func (r *MongoSavedBlogRepository) GetSavedBlogIDList(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"savedBy": userID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$savedBy",
			"blogIdList": bson.M{"$push": "$blogId"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "blogIdList": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.SavedBlogIDList
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []primitive.ObjectID{}, nil
	}
	return results[0].BlogIDList, nil
}

// GetSavedBlogsGroupedByDay joins save-list rows to their blog
// documents (contentList stripped) and groups them by the calendar day
// the save happened, oldest day first.
func (r *MongoSavedBlogRepository) GetSavedBlogsGroupedByDay(ctx context.Context, userID primitive.ObjectID) ([]models.SavedBlogGroup, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"savedBy": userID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "blogs",
			"localField":   "blogId",
			"foreignField": "_id",
			"as":           "blogDetails",
		}}},
		bson.D{{Key: "$unwind", Value: "$blogDetails"}},
		bson.D{{Key: "$project", Value: bson.M{
			"blogDetails.contentList": 0,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"blogs": bson.M{"$push": "$blogDetails"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":   0,
			"date":  "$_id",
			"blogs": 1,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	groups := []models.SavedBlogGroup{}
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

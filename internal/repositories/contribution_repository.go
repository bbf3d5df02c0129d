package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/sibsankar910/inkflows-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContributionRepository defines the interface for contributor operations
type ContributionRepository interface {
	CreateContribution(ctx context.Context, contribution *models.Contribution) error
	GetContributionByID(ctx context.Context, id string) (*models.Contribution, error)
	SetResponse(ctx context.Context, id primitive.ObjectID, accepted bool) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Contribution, error)
	ListActiveForBlog(ctx context.Context, blogID primitive.ObjectID) ([]models.Contribution, error)
	IsActiveContributor(ctx context.Context, blogID, userID primitive.ObjectID) (bool, error)
}

// MongoContributionRepository implements ContributionRepository for MongoDB
type MongoContributionRepository struct {
	collection *mongo.Collection
}

// NewMongoContributionRepository creates a new MongoContributionRepository
func NewMongoContributionRepository(db *mongo.Database) *MongoContributionRepository {
	return &MongoContributionRepository{collection: db.Collection("contributions")}
}

// CreateContribution creates a new contributor invitation in MongoDB
func (r *MongoContributionRepository) CreateContribution(ctx context.Context, contribution *models.Contribution) error {
	contribution.ID = primitive.NewObjectID()
	contribution.CreatedAt = time.Now()
	contribution.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, contribution)
	return err
}

// GetContributionByID retrieves a contribution by ID
func (r *MongoContributionRepository) GetContributionByID(ctx context.Context, id string) (*models.Contribution, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid contribution ID format: %w", err)
	}

	var contribution models.Contribution
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&contribution)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrContributionNotFound
		}
		return nil, err
	}
	return &contribution, nil
}

// SetResponse records the invited user's answer
func (r *MongoContributionRepository) SetResponse(ctx context.Context, id primitive.ObjectID, accepted bool) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"isRespond":  true,
		"isAccepted": accepted,
		"updatedAt":  time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrContributionNotFound
	}
	return nil
}

// Deactivate removes a contributor from a blog without deleting the record
func (r *MongoContributionRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"isActive":  false,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrContributionNotFound
	}
	return nil
}

// ListForUser retrieves the active invitations addressed to a user
func (r *MongoContributionRepository) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Contribution, error) {
	return r.list(ctx, bson.M{"userId": userID, "isActive": true})
}

// ListActiveForBlog retrieves the accepted, active contributors of a blog
func (r *MongoContributionRepository) ListActiveForBlog(ctx context.Context, blogID primitive.ObjectID) ([]models.Contribution, error) {
	return r.list(ctx, bson.M{"blogId": blogID, "isActive": true, "isAccepted": true})
}

// IsActiveContributor checks if a user is an accepted, active
// contributor of a blog; used by the blog editor gate.
func (r *MongoContributionRepository) IsActiveContributor(ctx context.Context, blogID, userID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"blogId":     blogID,
		"userId":     userID,
		"isActive":   true,
		"isAccepted": true,
	})
	return count > 0, err
}

func (r *MongoContributionRepository) list(ctx context.Context, filter bson.M) ([]models.Contribution, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	contributions := []models.Contribution{}
	if err = cursor.All(ctx, &contributions); err != nil {
		return nil, err
	}
	return contributions, nil
}

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

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUserName(ctx context.Context, userName string) (*models.User, error)
	UserExists(ctx context.Context, userName, email string) (bool, error)
	UserNameTaken(ctx context.Context, userName string) (bool, error)
	UpdateProfile(ctx context.Context, id, fullName, userName string) error
	SetAvatar(ctx context.Context, id, avatar string) error
	SetPassword(ctx context.Context, id, passwordHash string) error
	SetRefreshToken(ctx context.Context, id, token string) error
	ClearRefreshToken(ctx context.Context, id string) error
	SetFollowersCount(ctx context.Context, id primitive.ObjectID, count int64) error
	SetFollowingsCount(ctx context.Context, id primitive.ObjectID, count int64) error
	GetUserList(ctx context.Context) ([]models.UserListItem, error)
	GetUserNameList(ctx context.Context) ([]string, error)
	SearchUsers(ctx context.Context, query string) ([]models.UserListItem, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser creates a new user in MongoDB
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by ID from MongoDB
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from MongoDB
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUserName retrieves a user by username from MongoDB
func (r *MongoUserRepository) GetUserByUserName(ctx context.Context, userName string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"userName": userName}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UserExists reports whether a user with the given username or email exists
func (r *MongoUserRepository) UserExists(ctx context.Context, userName, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"$or": bson.A{
			bson.M{"userName": userName},
			bson.M{"email": email},
		},
	})
	return count > 0, err
}

// UserNameTaken reports whether a username is already in use
func (r *MongoUserRepository) UserNameTaken(ctx context.Context, userName string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userName": userName})
	return count > 0, err
}

// UpdateProfile updates the mutable profile fields of a user
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id, fullName, userName string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	set := bson.M{"updatedAt": time.Now()}
	if fullName != "" {
		set["fullName"] = fullName
	}
	if userName != "" {
		set["userName"] = userName
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	return err
}

// SetAvatar replaces the avatar URL of a user
func (r *MongoUserRepository) SetAvatar(ctx context.Context, id, avatar string) error {
	return r.setField(ctx, id, "avatar", avatar)
}

// SetPassword replaces the stored password hash of a user
func (r *MongoUserRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	return r.setField(ctx, id, "password", passwordHash)
}

// SetRefreshToken stores the active refresh token of a user
func (r *MongoUserRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	return r.setField(ctx, id, "refreshToken", token)
}

// ClearRefreshToken removes the stored refresh token, revoking the session
func (r *MongoUserRepository) ClearRefreshToken(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$unset": bson.M{"refreshToken": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	})
	return err
}

func (r *MongoUserRepository) setField(ctx context.Context, id, field string, value interface{}) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{field: value, "updatedAt": time.Now()},
	})
	return err
}

// SetFollowersCount overwrites the denormalized followers counter. A
// missing user id matches nothing and is a silent no-op.
func (r *MongoUserRepository) SetFollowersCount(ctx context.Context, id primitive.ObjectID, count int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"followersCount": count}})
	return err
}

// SetFollowingsCount overwrites the denormalized followings counter
func (r *MongoUserRepository) SetFollowingsCount(ctx context.Context, id primitive.ObjectID, count int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"followingsCount": count}})
	return err
}

// GetUserList retrieves the projected list of all users
func (r *MongoUserRepository) GetUserList(ctx context.Context) ([]models.UserListItem, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$project", Value: bson.M{
			"_id":      1,
			"userName": 1,
			"fullName": 1,
			"avatar":   1,
			"email":    1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.UserListItem{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserNameList retrieves every username as a flat list
func (r *MongoUserRepository) GetUserNameList(ctx context.Context) ([]string, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"userNames": bson.M{"$push": "$userName"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":       0,
			"userNames": 1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		UserNames []string `bson:"userNames"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []string{}, nil
	}
	return results[0].UserNames, nil
}

// SearchUsers matches userName/fullName case-insensitively against the
// query, ranked by follower count.
func (r *MongoUserRepository) SearchUsers(ctx context.Context, query string) ([]models.UserListItem, error) {
	regex := primitive.Regex{Pattern: regexQuote(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"userName": regex},
		bson.M{"fullName": regex},
	}}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "followersCount", Value: -1}}).
		SetProjection(bson.M{"_id": 1, "userName": 1, "fullName": 1, "avatar": 1, "email": 1})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.UserListItem{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

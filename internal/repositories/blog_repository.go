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

// blogListProjection is the field subset every listing query returns;
// contentList is always left out.
var blogListProjection = bson.M{
	"_id":          1,
	"creator":      1,
	"blogTitle":    1,
	"thumbnail":    1,
	"totalViews":   1,
	"totalLikes":   1,
	"uploadStatus": 1,
	"createdAt":    1,
	"updatedAt":    1,
}

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	UpdateContent(ctx context.Context, id, blogTitle string, contentList []map[string]interface{}) (*models.Blog, error)
	UpdateTagList(ctx context.Context, id string, tagList []string) (*models.Blog, error)
	UpdateThumbnail(ctx context.Context, id, thumbnail string) (*models.Blog, error)
	UpdateUploadStatus(ctx context.Context, id, status string) (*models.Blog, error)
	SetTotalLikes(ctx context.Context, id primitive.ObjectID, count int64) error
	SetTotalViews(ctx context.Context, id primitive.ObjectID, count int64) error
	GetPublicBlogList(ctx context.Context) ([]models.BlogListItem, error)
	GetUserBlogList(ctx context.Context, creator primitive.ObjectID, status string) ([]models.BlogListItem, error)
	CountByCreatorAndStatus(ctx context.Context, creator primitive.ObjectID, status string) (int64, error)
	GetAllTags(ctx context.Context) ([]string, error)
	SearchBlogs(ctx context.Context, query string) ([]models.BlogListItem, error)
	GetRecommendedTitles(ctx context.Context) ([]string, error)
}

// MongoBlogRepository implements BlogRepository for MongoDB
type MongoBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoBlogRepository creates a new MongoBlogRepository
func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{collection: db.Collection("blogs")}
}

// CreateBlog creates a new blog in MongoDB
func (r *MongoBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	blog.ID = primitive.NewObjectID()
	if blog.UploadStatus == "" {
		blog.UploadStatus = models.UploadStatusDraft
	}
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, blog)
	return err
}

// GetBlogByID retrieves a blog by ID from MongoDB
func (r *MongoBlogRepository) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid blog ID format: %w", err)
	}

	var blog models.Blog
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// UpdateContent replaces title and/or content blocks and returns the
// updated document.
func (r *MongoBlogRepository) UpdateContent(ctx context.Context, id, blogTitle string, contentList []map[string]interface{}) (*models.Blog, error) {
	set := bson.M{"updatedAt": time.Now()}
	if blogTitle != "" {
		set["blogTitle"] = blogTitle
	}
	if contentList != nil {
		set["contentList"] = contentList
	}
	return r.findByIDAndUpdate(ctx, id, bson.M{"$set": set})
}

// UpdateTagList replaces the tag set of a blog
func (r *MongoBlogRepository) UpdateTagList(ctx context.Context, id string, tagList []string) (*models.Blog, error) {
	return r.findByIDAndUpdate(ctx, id, bson.M{"$set": bson.M{"tagList": tagList, "updatedAt": time.Now()}})
}

// UpdateThumbnail replaces the thumbnail URL of a blog
func (r *MongoBlogRepository) UpdateThumbnail(ctx context.Context, id, thumbnail string) (*models.Blog, error) {
	return r.findByIDAndUpdate(ctx, id, bson.M{"$set": bson.M{"thumbnail": thumbnail, "updatedAt": time.Now()}})
}

// UpdateUploadStatus flips a blog between draft and public
func (r *MongoBlogRepository) UpdateUploadStatus(ctx context.Context, id, status string) (*models.Blog, error) {
	return r.findByIDAndUpdate(ctx, id, bson.M{"$set": bson.M{"uploadStatus": status, "updatedAt": time.Now()}})
}

func (r *MongoBlogRepository) findByIDAndUpdate(ctx context.Context, id string, update bson.M) (*models.Blog, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid blog ID format: %w", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var blog models.Blog
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// SetTotalLikes overwrites the denormalized like counter. A missing
// blog id matches nothing and is a silent no-op.
func (r *MongoBlogRepository) SetTotalLikes(ctx context.Context, id primitive.ObjectID, count int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"totalLikes": count}})
	return err
}

// SetTotalViews overwrites the denormalized view counter
func (r *MongoBlogRepository) SetTotalViews(ctx context.Context, id primitive.ObjectID, count int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"totalViews": count}})
	return err
}

// GetPublicBlogList retrieves all public blogs, newest first, without
// their contentList.
func (r *MongoBlogRepository) GetPublicBlogList(ctx context.Context) ([]models.BlogListItem, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"uploadStatus": models.UploadStatusPublic}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$project", Value: blogListProjection}},
	}
	return r.aggregateListItems(ctx, pipeline)
}

// GetUserBlogList retrieves a creator's blogs of the requested status.
// Drafts sort by last edit, public posts by publish order.
func (r *MongoBlogRepository) GetUserBlogList(ctx context.Context, creator primitive.ObjectID, status string) ([]models.BlogListItem, error) {
	sortField := "createdAt"
	if status == models.UploadStatusDraft {
		sortField = "updatedAt"
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"creator": creator, "uploadStatus": status}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: sortField, Value: -1}}}},
		bson.D{{Key: "$project", Value: blogListProjection}},
	}
	return r.aggregateListItems(ctx, pipeline)
}

// CountByCreatorAndStatus counts a creator's blogs with the given status
func (r *MongoBlogRepository) CountByCreatorAndStatus(ctx context.Context, creator primitive.ObjectID, status string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"creator": creator, "uploadStatus": status})
}

// GetAllTags flattens every blog's tagList into a distinct,
// alphabetically sorted set.
func (r *MongoBlogRepository) GetAllTags(ctx context.Context) ([]string, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$tagList"}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$tagList"}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "tag": "$_id"}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "tag", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Tag string `bson:"tag"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(results))
	for _, res := range results {
		tags = append(tags, res.Tag)
	}
	return tags, nil
}

// SearchBlogs matches blogTitle/tagList case-insensitively against the
// query, public posts only, ranked by view count.
func (r *MongoBlogRepository) SearchBlogs(ctx context.Context, query string) ([]models.BlogListItem, error) {
	regex := primitive.Regex{Pattern: regexQuote(query), Options: "i"}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"uploadStatus": models.UploadStatusPublic,
			"$or": bson.A{
				bson.M{"blogTitle": regex},
				bson.M{"tagList": regex},
			},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "totalViews", Value: -1}}}},
		bson.D{{Key: "$project", Value: blogListProjection}},
	}
	return r.aggregateListItems(ctx, pipeline)
}

// GetRecommendedTitles returns every public blog title, most viewed
// first, flattened into a single ordered list.
func (r *MongoBlogRepository) GetRecommendedTitles(ctx context.Context) ([]string, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"uploadStatus": models.UploadStatusPublic}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "totalViews", Value: -1}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"titles": bson.M{"$push": "$blogTitle"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "titles": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Titles []string `bson:"titles"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []string{}, nil
	}
	return results[0].Titles, nil
}

func (r *MongoBlogRepository) aggregateListItems(ctx context.Context, pipeline mongo.Pipeline) ([]models.BlogListItem, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	blogs := []models.BlogListItem{}
	if err = cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

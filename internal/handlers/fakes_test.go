package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/middleware"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"github.com/sibsankar910/inkflows-server/validators"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the handler tests. They mirror
// the contracts of the Mongo implementations closely enough that the
// handlers cannot tell the difference.

func newTestContext(method, path, body string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	return c, rec
}

func testUser() *models.User {
	return &models.User{ID: primitive.NewObjectID(), UserName: "writer01", Email: "writer01@mail.test"}
}

// --- blog repository fake ---

type fakeBlogRepo struct {
	blogs map[primitive.ObjectID]*models.Blog
}

func newFakeBlogRepo(blogs ...*models.Blog) *fakeBlogRepo {
	repo := &fakeBlogRepo{blogs: make(map[primitive.ObjectID]*models.Blog)}
	for _, b := range blogs {
		if b.ID.IsZero() {
			b.ID = primitive.NewObjectID()
		}
		repo.blogs[b.ID] = b
	}
	return repo
}

func (r *fakeBlogRepo) CreateBlog(_ context.Context, blog *models.Blog) error {
	blog.ID = primitive.NewObjectID()
	if blog.UploadStatus == "" {
		blog.UploadStatus = models.UploadStatusDraft
	}
	r.blogs[blog.ID] = blog
	return nil
}

func (r *fakeBlogRepo) GetBlogByID(_ context.Context, id string) (*models.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrBlogNotFound
	}
	blog, ok := r.blogs[oid]
	if !ok {
		return nil, repositories.ErrBlogNotFound
	}
	return blog, nil
}

func (r *fakeBlogRepo) UpdateContent(ctx context.Context, id, blogTitle string, contentList []map[string]interface{}) (*models.Blog, error) {
	blog, err := r.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blogTitle != "" {
		blog.BlogTitle = blogTitle
	}
	if contentList != nil {
		blog.ContentList = contentList
	}
	return blog, nil
}

func (r *fakeBlogRepo) UpdateTagList(ctx context.Context, id string, tagList []string) (*models.Blog, error) {
	blog, err := r.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	blog.TagList = tagList
	return blog, nil
}

func (r *fakeBlogRepo) UpdateThumbnail(ctx context.Context, id, thumbnail string) (*models.Blog, error) {
	blog, err := r.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	blog.Thumbnail = thumbnail
	return blog, nil
}

func (r *fakeBlogRepo) UpdateUploadStatus(ctx context.Context, id, status string) (*models.Blog, error) {
	blog, err := r.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	blog.UploadStatus = status
	return blog, nil
}

func (r *fakeBlogRepo) SetTotalLikes(_ context.Context, id primitive.ObjectID, count int64) error {
	if blog, ok := r.blogs[id]; ok {
		blog.TotalLikes = int(count)
	}
	return nil
}

func (r *fakeBlogRepo) SetTotalViews(_ context.Context, id primitive.ObjectID, count int64) error {
	if blog, ok := r.blogs[id]; ok {
		blog.TotalViews = int(count)
	}
	return nil
}

func (r *fakeBlogRepo) GetPublicBlogList(context.Context) ([]models.BlogListItem, error) {
	var items []models.BlogListItem
	for _, b := range r.blogs {
		if b.UploadStatus == models.UploadStatusPublic {
			items = append(items, models.BlogListItem{ID: b.ID, BlogTitle: b.BlogTitle, UploadStatus: b.UploadStatus})
		}
	}
	return items, nil
}

func (r *fakeBlogRepo) GetUserBlogList(_ context.Context, creator primitive.ObjectID, status string) ([]models.BlogListItem, error) {
	var items []models.BlogListItem
	for _, b := range r.blogs {
		if b.Creator == creator && b.UploadStatus == status {
			items = append(items, models.BlogListItem{ID: b.ID, BlogTitle: b.BlogTitle, UploadStatus: b.UploadStatus})
		}
	}
	return items, nil
}

func (r *fakeBlogRepo) CountByCreatorAndStatus(_ context.Context, creator primitive.ObjectID, status string) (int64, error) {
	var n int64
	for _, b := range r.blogs {
		if b.Creator == creator && b.UploadStatus == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeBlogRepo) GetAllTags(context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, b := range r.blogs {
		for _, t := range b.TagList {
			seen[t] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

func (r *fakeBlogRepo) SearchBlogs(_ context.Context, query string) ([]models.BlogListItem, error) {
	var items []models.BlogListItem
	for _, b := range r.blogs {
		if b.UploadStatus != models.UploadStatusPublic {
			continue
		}
		if strings.Contains(strings.ToLower(b.BlogTitle), strings.ToLower(query)) {
			items = append(items, models.BlogListItem{ID: b.ID, BlogTitle: b.BlogTitle, TotalViews: b.TotalViews})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TotalViews > items[j].TotalViews })
	return items, nil
}

func (r *fakeBlogRepo) GetRecommendedTitles(context.Context) ([]string, error) {
	var titles []string
	for _, b := range r.blogs {
		if b.UploadStatus == models.UploadStatusPublic {
			titles = append(titles, b.BlogTitle)
		}
	}
	sort.Strings(titles)
	return titles, nil
}

// --- like repository fake ---

type fakeLikeRepo struct {
	likes []models.Like
}

func (r *fakeLikeRepo) CreateLike(_ context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	r.likes = append(r.likes, *like)
	return nil
}

func (r *fakeLikeRepo) DeleteLike(_ context.Context, postID, userID primitive.ObjectID) error {
	for i, l := range r.likes {
		if l.PostID == postID && l.LikedByUser == userID {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrLikeNotFound
}

func (r *fakeLikeRepo) HasUserLiked(_ context.Context, postID, userID primitive.ObjectID) (bool, error) {
	for _, l := range r.likes {
		if l.PostID == postID && l.LikedByUser == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLikeRepo) CountByPostID(_ context.Context, postID primitive.ObjectID) (int64, error) {
	var n int64
	for _, l := range r.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}

// --- view repository fake ---

type fakeViewRepo struct {
	views []*models.View
}

func (r *fakeViewRepo) CreateView(_ context.Context, view *models.View) error {
	view.ID = primitive.NewObjectID()
	r.views = append(r.views, view)
	return nil
}

func (r *fakeViewRepo) GetView(_ context.Context, postID, viewerID primitive.ObjectID) (*models.View, error) {
	for _, v := range r.views {
		if v.PostID == postID && v.ViewedBy == viewerID {
			return v, nil
		}
	}
	return nil, repositories.ErrViewNotFound
}

func (r *fakeViewRepo) IncrementRepetition(_ context.Context, id primitive.ObjectID) error {
	for _, v := range r.views {
		if v.ID == id {
			v.Repetition++
			return nil
		}
	}
	return repositories.ErrViewNotFound
}

func (r *fakeViewRepo) CountByPostID(_ context.Context, postID primitive.ObjectID) (int64, error) {
	var n int64
	for _, v := range r.views {
		if v.PostID == postID {
			n++
		}
	}
	return n, nil
}

// --- follow repository fake ---

type fakeFollowRepo struct {
	follows []models.Follow
}

func (r *fakeFollowRepo) CreateFollow(_ context.Context, follow *models.Follow) error {
	follow.ID = primitive.NewObjectID()
	r.follows = append(r.follows, *follow)
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(_ context.Context, followingTo, followedBy primitive.ObjectID) error {
	for i, f := range r.follows {
		if f.FollowingTo == followingTo && f.FollowedBy == followedBy {
			r.follows = append(r.follows[:i], r.follows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrFollowNotFound
}

func (r *fakeFollowRepo) IsFollowing(_ context.Context, followingTo, followedBy primitive.ObjectID) (bool, error) {
	for _, f := range r.follows {
		if f.FollowingTo == followingTo && f.FollowedBy == followedBy {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) CountFollowersAndFollowings(_ context.Context, followingTo, followedBy primitive.ObjectID) (int64, int64, error) {
	var followers, followings int64
	for _, f := range r.follows {
		if f.FollowingTo == followingTo {
			followers++
		}
		if f.FollowedBy == followedBy {
			followings++
		}
	}
	return followers, followings, nil
}

// --- user repository fake ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrUserNotFound
	}
	user, ok := r.users[oid]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByUserName(_ context.Context, userName string) (*models.User, error) {
	for _, u := range r.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UserExists(_ context.Context, userName, email string) (bool, error) {
	for _, u := range r.users {
		if u.UserName == userName || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UserNameTaken(_ context.Context, userName string) (bool, error) {
	for _, u := range r.users {
		if u.UserName == userName {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id, fullName, userName string) error {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if fullName != "" {
		user.FullName = fullName
	}
	if userName != "" {
		user.UserName = userName
	}
	return nil
}

func (r *fakeUserRepo) SetAvatar(ctx context.Context, id, avatar string) error {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	user.Avatar = avatar
	return nil
}

func (r *fakeUserRepo) SetPassword(ctx context.Context, id, passwordHash string) error {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	user.Password = passwordHash
	return nil
}

func (r *fakeUserRepo) SetRefreshToken(ctx context.Context, id, token string) error {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	user.RefreshToken = token
	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(ctx context.Context, id string) error {
	return r.SetRefreshToken(ctx, id, "")
}

func (r *fakeUserRepo) SetFollowersCount(_ context.Context, id primitive.ObjectID, count int64) error {
	if user, ok := r.users[id]; ok {
		user.FollowersCount = int(count)
	}
	return nil
}

func (r *fakeUserRepo) SetFollowingsCount(_ context.Context, id primitive.ObjectID, count int64) error {
	if user, ok := r.users[id]; ok {
		user.FollowingsCount = int(count)
	}
	return nil
}

func (r *fakeUserRepo) GetUserList(context.Context) ([]models.UserListItem, error) {
	var items []models.UserListItem
	for _, u := range r.users {
		items = append(items, models.UserListItem{ID: u.ID, UserName: u.UserName, FullName: u.FullName, Email: u.Email})
	}
	return items, nil
}

func (r *fakeUserRepo) GetUserNameList(context.Context) ([]string, error) {
	var names []string
	for _, u := range r.users {
		names = append(names, u.UserName)
	}
	sort.Strings(names)
	return names, nil
}

func (r *fakeUserRepo) SearchUsers(_ context.Context, query string) ([]models.UserListItem, error) {
	var items []models.UserListItem
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.UserName), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(u.FullName), strings.ToLower(query)) {
			items = append(items, models.UserListItem{ID: u.ID, UserName: u.UserName, FullName: u.FullName})
		}
	}
	return items, nil
}

// --- saved blog repository fake ---

type fakeSavedBlogRepo struct {
	saved []models.SavedBlog
}

func (r *fakeSavedBlogRepo) CreateSavedBlog(_ context.Context, s *models.SavedBlog) error {
	s.ID = primitive.NewObjectID()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.saved = append(r.saved, *s)
	return nil
}

func (r *fakeSavedBlogRepo) DeleteSavedBlog(_ context.Context, blogID, userID primitive.ObjectID) error {
	for i, s := range r.saved {
		if s.BlogID == blogID && s.SavedBy == userID {
			r.saved = append(r.saved[:i], r.saved[i+1:]...)
			return nil
		}
	}
	return repositories.ErrSavedBlogNotFound
}

func (r *fakeSavedBlogRepo) IsBlogSaved(_ context.Context, blogID, userID primitive.ObjectID) (bool, error) {
	for _, s := range r.saved {
		if s.BlogID == blogID && s.SavedBy == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSavedBlogRepo) GetSavedBlogIDList(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, s := range r.saved {
		if s.SavedBy == userID {
			ids = append(ids, s.BlogID)
		}
	}
	return ids, nil
}

// GetSavedBlogsGroupedByDay mirrors the aggregation contract: one
// group per calendar day of the save, days ascending.
func (r *fakeSavedBlogRepo) GetSavedBlogsGroupedByDay(_ context.Context, userID primitive.ObjectID) ([]models.SavedBlogGroup, error) {
	byDay := map[string][]bson.M{}
	for _, s := range r.saved {
		if s.SavedBy != userID {
			continue
		}
		day := s.CreatedAt.Format("2006-01-02")
		byDay[day] = append(byDay[day], bson.M{"blogId": s.BlogID})
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	groups := make([]models.SavedBlogGroup, 0, len(days))
	for _, day := range days {
		groups = append(groups, models.SavedBlogGroup{Date: day, Blogs: byDay[day]})
	}
	return groups, nil
}

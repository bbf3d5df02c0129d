package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/middleware"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"github.com/sibsankar910/inkflows-server/pkg/firebase"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BlogHandler handles blog CRUD and listing HTTP requests
type BlogHandler struct {
	blogRepository repositories.BlogRepository
	userRepository repositories.UserRepository
	storage        *firebase.App
	logger         *zap.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogRepo repositories.BlogRepository, userRepo repositories.UserRepository, storage *firebase.App, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		blogRepository: blogRepo,
		userRepository: userRepo,
		storage:        storage,
		logger:         logger,
	}
}

// RegisterBlogRoutes registers blog routes; editor gates every
// mutation behind the creator/contributor check.
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group, auth, editor echo.MiddlewareFunc) {
	g.POST("/create-blog", h.CreateBlog, auth)
	g.POST("/upload-image", h.UploadImage)

	g.PATCH("/update-tags", h.UpdateTagList, auth, editor)
	g.PATCH("/update-tnail", h.UpdateThumbnail, auth, editor)
	g.PATCH("/update-blog", h.UpdateBlog, auth, editor)
	g.PATCH("/upload-status", h.UpdateUploadStatus, auth, editor)

	g.GET("/get-blog/:blogId", h.GetBlog)
	g.GET("/get-auth-blog/:blogId", h.GetAuthBlog, auth, editor)
	g.GET("/get-bloglist", h.GetBlogList)
	g.GET("/get-taglist", h.GetTagList)

	g.GET("/user-bloglist", h.GetUserBlogList)
	g.GET("/get-blognumber/:userId", h.GetBlogNumber)
}

// CreateBlog creates a new draft for the acting user
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	user := currentUser(c)

	var req models.CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and content is required")
	}

	blog := &models.Blog{
		Creator:     user.ID,
		BlogTitle:   req.BlogTitle,
		ContentList: req.ContentList,
		Thumbnail:   req.Thumbnail,
	}
	if err := h.blogRepository.CreateBlog(c.Request().Context(), blog); err != nil {
		return err
	}
	return respond(c, http.StatusOK, blog, "Blog created successfully")
}

// UploadImage stages a multipart image and pushes it to the bucket
func (h *BlogHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image is required")
	}

	localPath, err := stageUploadedFile(fileHeader)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to stage image")
	}
	imageURL, err := h.storage.UploadFile(c.Request().Context(), localPath)
	if err != nil {
		h.logger.Error("image upload failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to upload image")
	}
	return respond(c, http.StatusOK, echo.Map{"imageUrl": imageURL}, "Image uploaded on cloud")
}

// UpdateTagList replaces the tag set of a blog
func (h *BlogHandler) UpdateTagList(c echo.Context) error {
	var req models.UpdateTagListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	blog, err := h.blogRepository.UpdateTagList(c.Request().Context(), req.BlogID, req.TagList)
	if err != nil {
		return h.translateBlogError(err)
	}
	return respond(c, http.StatusOK, blog, "Taglist updated")
}

// UpdateThumbnail replaces the thumbnail URL of a blog
func (h *BlogHandler) UpdateThumbnail(c echo.Context) error {
	var req models.UpdateThumbnailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	blog, err := h.blogRepository.UpdateThumbnail(c.Request().Context(), req.BlogID, req.Thumbnail)
	if err != nil {
		return h.translateBlogError(err)
	}
	return respond(c, http.StatusOK, blog, "Thumbnail updated")
}

// UpdateBlog replaces the title/content of a blog
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	var req models.UpdateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Blog id is required")
	}

	blog, err := h.blogRepository.UpdateContent(c.Request().Context(), req.BlogID, req.BlogTitle, req.ContentList)
	if err != nil {
		return h.translateBlogError(err)
	}
	return respond(c, http.StatusOK, blog, "Blog updated")
}

// UpdateUploadStatus flips a blog between draft and public
func (h *BlogHandler) UpdateUploadStatus(c echo.Context) error {
	var req models.UpdateUploadStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	blog, err := h.blogRepository.UpdateUploadStatus(c.Request().Context(), req.BlogID, req.Status)
	if err != nil {
		return h.translateBlogError(err)
	}
	return respond(c, http.StatusOK, blog, "Blog status updated")
}

// GetBlog retrieves a single blog by id
func (h *BlogHandler) GetBlog(c echo.Context) error {
	blogID := c.Param("blogId")
	if blogID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Blog Id is required")
	}

	blog, err := h.blogRepository.GetBlogByID(c.Request().Context(), blogID)
	if err != nil {
		return h.translateBlogError(err)
	}
	return respond(c, http.StatusOK, blog, "Blog fetched successfully")
}

// GetAuthBlog retrieves a blog for its editors, drafts included. The
// editor gate has already loaded and authorised the document.
func (h *BlogHandler) GetAuthBlog(c echo.Context) error {
	blog, ok := c.Get(middleware.ContextBlogKey).(*models.Blog)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
	}
	return respond(c, http.StatusOK, blog, "Blog fetched successfully")
}

// GetBlogList retrieves all public blogs, newest first
func (h *BlogHandler) GetBlogList(c echo.Context) error {
	blogs, err := h.blogRepository.GetPublicBlogList(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, blogs, "Bloglist fetched successfully")
}

// GetTagList retrieves the distinct, sorted set of every tag in use
func (h *BlogHandler) GetTagList(c echo.Context) error {
	tags, err := h.blogRepository.GetAllTags(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tags, "Taglist fetched")
}

// GetUserBlogList retrieves a creator's blogs of the requested status
func (h *BlogHandler) GetUserBlogList(c echo.Context) error {
	userName := c.QueryParam("userName")
	blogType := c.QueryParam("blogType")
	if userName == "" || blogType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Incomplete request")
	}
	if blogType != models.UploadStatusDraft && blogType != models.UploadStatusPublic {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown blog type")
	}

	user, err := h.userRepository.GetUserByUserName(c.Request().Context(), userName)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User does not exist")
		}
		return err
	}

	blogs, err := h.blogRepository.GetUserBlogList(c.Request().Context(), user.ID, blogType)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, blogs, "Blog list fetched successfully")
}

// GetBlogNumber counts a creator's drafts and public posts
func (h *BlogHandler) GetBlogNumber(c echo.Context) error {
	userID := c.Param("userId")
	creator, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	draftCount, err := h.blogRepository.CountByCreatorAndStatus(c.Request().Context(), creator, models.UploadStatusDraft)
	if err != nil {
		return err
	}
	publicCount, err := h.blogRepository.CountByCreatorAndStatus(c.Request().Context(), creator, models.UploadStatusPublic)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, echo.Map{
		"draftBlogCount":  draftCount,
		"publicBlogCount": publicCount,
	}, "Blog number fetched successfully")
}

func (h *BlogHandler) translateBlogError(err error) error {
	if errors.Is(err, repositories.ErrBlogNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Blog does not exist")
	}
	return err
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeHandler handles like/unlike HTTP requests and keeps the
// denormalized like counter on the blog in sync.
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	blogRepository repositories.BlogRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, blogRepo repositories.BlogRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		blogRepository: blogRepo,
	}
}

// RegisterLikeRoutes registers like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/create-like", h.CreateLike, auth)
	g.POST("/remove-like", h.RemoveLike, auth)
	g.GET("/check-like/:blogId", h.CheckLike, auth)
}

// CreateLike records a like, rejecting duplicates from the same user
func (h *LikeHandler) CreateLike(c echo.Context) error {
	user := currentUser(c)

	blogID, err := h.bindBlogID(c)
	if err != nil {
		return err
	}

	hasLiked, err := h.likeRepository.HasUserLiked(c.Request().Context(), blogID, user.ID)
	if err != nil {
		return err
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "User already liked")
	}

	like := &models.Like{
		PostID:      blogID,
		LikedByUser: user.ID,
	}
	if err := h.likeRepository.CreateLike(c.Request().Context(), like); err != nil {
		return err
	}

	if err := h.syncTotalLikes(c.Request().Context(), blogID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Like added successfully")
}

// RemoveLike deletes a like, failing when none exists
func (h *LikeHandler) RemoveLike(c echo.Context) error {
	user := currentUser(c)

	blogID, err := h.bindBlogID(c)
	if err != nil {
		return err
	}

	if err := h.likeRepository.DeleteLike(c.Request().Context(), blogID, user.ID); err != nil {
		if errors.Is(err, repositories.ErrLikeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not liked")
		}
		return err
	}

	if err := h.syncTotalLikes(c.Request().Context(), blogID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Like removed successfully")
}

// CheckLike reports whether the acting user has liked a blog; absence
// is a normal answer, never an error.
func (h *LikeHandler) CheckLike(c echo.Context) error {
	user := currentUser(c)

	blogID, err := primitive.ObjectIDFromHex(c.Param("blogId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	isLiked, err := h.likeRepository.HasUserLiked(c.Request().Context(), blogID, user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"isLiked": isLiked}, "Like fetched successfully")
}

// syncTotalLikes recomputes the like count from the like rows and
// writes it onto the blog, immediately after every insert/delete. A
// vanished blog makes the write a no-op.
func (h *LikeHandler) syncTotalLikes(ctx context.Context, blogID primitive.ObjectID) error {
	count, err := h.likeRepository.CountByPostID(ctx, blogID)
	if err != nil {
		return err
	}
	return h.blogRepository.SetTotalLikes(ctx, blogID, count)
}

func (h *LikeHandler) bindBlogID(c echo.Context) (primitive.ObjectID, error) {
	var req models.CreateLikeRequest
	if err := c.Bind(&req); err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	blogID, err := primitive.ObjectIDFromHex(req.BlogID)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	return blogID, nil
}

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

// FollowHandler handles follow/unfollow HTTP requests and keeps the
// follower/following counters on both users in sync.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/create-follow", h.CreateFollow, auth)
	g.POST("/remove-follow", h.RemoveFollow, auth)
	g.GET("/check-follow/:followingTo", h.CheckFollow, auth)
}

// CreateFollow records a follow, rejecting duplicates and self-follows
func (h *FollowHandler) CreateFollow(c echo.Context) error {
	user := currentUser(c)

	followingTo, err := h.bindFollowingTo(c)
	if err != nil {
		return err
	}
	if followingTo == user.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	isFollowing, err := h.followRepository.IsFollowing(c.Request().Context(), followingTo, user.ID)
	if err != nil {
		return err
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "User already followed this profile")
	}

	follow := &models.Follow{
		FollowingTo: followingTo,
		FollowedBy:  user.ID,
	}
	if err := h.followRepository.CreateFollow(c.Request().Context(), follow); err != nil {
		return err
	}

	if err := h.syncFollowCounts(c.Request().Context(), followingTo, user.ID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Follow successfully")
}

// RemoveFollow deletes a follow, failing when none exists
func (h *FollowHandler) RemoveFollow(c echo.Context) error {
	user := currentUser(c)

	followingTo, err := h.bindFollowingTo(c)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(c.Request().Context(), followingTo, user.ID); err != nil {
		if errors.Is(err, repositories.ErrFollowNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not followed this profile")
		}
		return err
	}

	if err := h.syncFollowCounts(c.Request().Context(), followingTo, user.ID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Unfollowed successfully")
}

// CheckFollow reports whether the acting user follows a profile
func (h *FollowHandler) CheckFollow(c echo.Context) error {
	user := currentUser(c)

	followingTo, err := primitive.ObjectIDFromHex(c.Param("followingTo"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User id is required")
	}

	isFollowed, err := h.followRepository.IsFollowing(c.Request().Context(), followingTo, user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"isFollowed": isFollowed}, "Follow fetched")
}

// syncFollowCounts recomputes, in one $facet round trip, the followers
// of the target user and the followings of the acting user, then
// writes both counters back. Zero rows write an explicit 0.
func (h *FollowHandler) syncFollowCounts(ctx context.Context, followingTo, followedBy primitive.ObjectID) error {
	followers, followings, err := h.followRepository.CountFollowersAndFollowings(ctx, followingTo, followedBy)
	if err != nil {
		return err
	}
	if err := h.userRepository.SetFollowingsCount(ctx, followedBy, followings); err != nil {
		return err
	}
	return h.userRepository.SetFollowersCount(ctx, followingTo, followers)
}

func (h *FollowHandler) bindFollowingTo(c echo.Context) (primitive.ObjectID, error) {
	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	followingTo, err := primitive.ObjectIDFromHex(req.FollowingTo)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	return followingTo, nil
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedBlogHandler handles the user's save list
type SavedBlogHandler struct {
	savedBlogRepository repositories.SavedBlogRepository
}

// NewSavedBlogHandler creates a new SavedBlogHandler
func NewSavedBlogHandler(savedBlogRepo repositories.SavedBlogRepository) *SavedBlogHandler {
	return &SavedBlogHandler{savedBlogRepository: savedBlogRepo}
}

// RegisterSavedBlogRoutes registers save-list routes
func (h *SavedBlogHandler) RegisterSavedBlogRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/add-savelist/:blogId", h.AddToSaveList, auth)
	g.POST("/remove-savelist/:blogId", h.RemoveFromSaveList, auth)
	g.GET("/savedblog-list", h.GetSavedBlogList, auth)
	g.GET("/savedblogId-list", h.GetSavedBlogIDList, auth)
}

// AddToSaveList bookmarks a blog, rejecting duplicates
func (h *SavedBlogHandler) AddToSaveList(c echo.Context) error {
	user := currentUser(c)

	blogID, err := primitive.ObjectIDFromHex(c.Param("blogId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	isSaved, err := h.savedBlogRepository.IsBlogSaved(c.Request().Context(), blogID, user.ID)
	if err != nil {
		return err
	}
	if isSaved {
		return echo.NewHTTPError(http.StatusConflict, "Blog is already added to save list")
	}

	saved := &models.SavedBlog{
		BlogID:  blogID,
		SavedBy: user.ID,
	}
	if err := h.savedBlogRepository.CreateSavedBlog(c.Request().Context(), saved); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Blog added to save list")
}

// RemoveFromSaveList drops a bookmark, failing when none exists
func (h *SavedBlogHandler) RemoveFromSaveList(c echo.Context) error {
	user := currentUser(c)

	blogID, err := primitive.ObjectIDFromHex(c.Param("blogId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	if err := h.savedBlogRepository.DeleteSavedBlog(c.Request().Context(), blogID, user.ID); err != nil {
		if errors.Is(err, repositories.ErrSavedBlogNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog is not added to save list")
		}
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Blog removed from save list")
}

// GetSavedBlogList returns the save list joined to its blogs, grouped
// by the calendar day of the save, oldest day first.
func (h *SavedBlogHandler) GetSavedBlogList(c echo.Context) error {
	user := currentUser(c)

	groups, err := h.savedBlogRepository.GetSavedBlogsGroupedByDay(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, groups, "Saved list created successfully")
}

// GetSavedBlogIDList returns the ids of every saved blog
func (h *SavedBlogHandler) GetSavedBlogIDList(c echo.Context) error {
	user := currentUser(c)

	blogIDs, err := h.savedBlogRepository.GetSavedBlogIDList(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"blogIdList": blogIDs}, "Saved blog id list fetched")
}

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

// ViewHandler records blog views and keeps the denormalized view
// counter in sync for first views.
type ViewHandler struct {
	viewRepository repositories.ViewRepository
	blogRepository repositories.BlogRepository
}

// NewViewHandler creates a new ViewHandler
func NewViewHandler(viewRepo repositories.ViewRepository, blogRepo repositories.BlogRepository) *ViewHandler {
	return &ViewHandler{
		viewRepository: viewRepo,
		blogRepository: blogRepo,
	}
}

// RegisterViewRoutes registers view routes
func (h *ViewHandler) RegisterViewRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/add-views", h.AddView, auth)
}

// AddView records a viewing event. A first view inserts a row and
// recomputes Blog.totalViews from the row count; a repeat view only
// bumps the row's repetition counter, leaving totalViews untouched.
func (h *ViewHandler) AddView(c echo.Context) error {
	user := currentUser(c)

	var req models.AddViewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User and Blog id is required")
	}
	blogID, err := primitive.ObjectIDFromHex(req.BlogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User and Blog id is required")
	}

	prev, err := h.viewRepository.GetView(c.Request().Context(), blogID, user.ID)
	if err != nil && !errors.Is(err, repositories.ErrViewNotFound) {
		return err
	}

	if prev != nil {
		if err := h.viewRepository.IncrementRepetition(c.Request().Context(), prev.ID); err != nil {
			return err
		}
		return respond(c, http.StatusOK, echo.Map{}, "View repetition added")
	}

	view := &models.View{
		PostID:   blogID,
		ViewedBy: user.ID,
	}
	if err := h.viewRepository.CreateView(c.Request().Context(), view); err != nil {
		return err
	}

	if err := h.syncTotalViews(c.Request().Context(), blogID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Views added successfully")
}

// syncTotalViews recomputes the view-row count for a blog and writes
// it onto the document. Repetition bumps never reach this path.
func (h *ViewHandler) syncTotalViews(ctx context.Context, blogID primitive.ObjectID) error {
	count, err := h.viewRepository.CountByPostID(ctx, blogID)
	if err != nil {
		return err
	}
	return h.blogRepository.SetTotalViews(ctx, blogID, count)
}

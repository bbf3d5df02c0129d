package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// SearchHandler serves the mixed user/blog search endpoints
type SearchHandler struct {
	userRepository repositories.UserRepository
	blogRepository repositories.BlogRepository
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(userRepo repositories.UserRepository, blogRepo repositories.BlogRepository) *SearchHandler {
	return &SearchHandler{
		userRepository: userRepo,
		blogRepository: blogRepo,
	}
}

// RegisterSearchRoutes registers search routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.GET("/recom-search", h.RecommendedSearches)
}

// Search runs the user and blog queries concurrently and merges the
// results into one tagged list, users first.
func (h *SearchHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}

	var (
		users []models.UserListItem
		blogs []models.BlogListItem
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		users, err = h.userRepository.SearchUsers(ctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		blogs, err = h.blogRepository.SearchBlogs(ctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	results := make([]models.SearchItem, 0, len(users)+len(blogs))
	for _, u := range users {
		results = append(results, models.SearchItem{Type: models.SearchTypeUser, Data: u})
	}
	for _, b := range blogs {
		results = append(results, models.SearchItem{Type: models.SearchTypeBlog, Data: b})
	}
	return respond(c, http.StatusOK, results, "Search results fetched")
}

// RecommendedSearches returns the public blog titles used as search
// suggestions.
func (h *SearchHandler) RecommendedSearches(c echo.Context) error {
	titles, err := h.blogRepository.GetRecommendedTitles(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"titleList": titles}, "Recommended searches fetched")
}

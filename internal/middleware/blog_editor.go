package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
)

// BlogEditorGate loads the blog named by the request and passes only
// its creator or an active accepted contributor. The loaded blog is
// stashed in the context so handlers need not fetch it again.
func BlogEditorGate(blogRepo repositories.BlogRepository, contributionRepo repositories.ContributionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			blogID := c.Param("blogId")
			if blogID == "" {
				blogID = peekBlogID(c)
			}
			if blogID == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Blog id is required")
			}

			blog, err := blogRepo.GetBlogByID(c.Request().Context(), blogID)
			if err != nil {
				if errors.Is(err, repositories.ErrBlogNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
				}
				return echo.NewHTTPError(http.StatusBadRequest, "Blog id is not valid")
			}

			user := mustUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authorised")
			}

			if blog.Creator != user.ID {
				isContributor, err := contributionRepo.IsActiveContributor(c.Request().Context(), blog.ID, user.ID)
				if err != nil {
					return err
				}
				if !isContributor {
					return echo.NewHTTPError(http.StatusUnauthorized, "User can not edit this blog")
				}
			}

			c.Set(ContextBlogKey, blog)
			return next(c)
		}
	}
}

func mustUser(c echo.Context) *models.User {
	user, _ := c.Get(ContextUserKey).(*models.User)
	return user
}

// peekBlogID reads blogId out of a JSON body without consuming it for
// the downstream handler.
func peekBlogID(c echo.Context) string {
	if c.Request().Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return ""
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		BlogID string `json:"blogId"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.BlogID
}

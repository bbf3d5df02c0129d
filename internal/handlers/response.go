package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/middleware"
	"github.com/sibsankar910/inkflows-server/internal/models"
)

// respond writes the uniform response envelope every endpoint returns
func respond(c echo.Context, statusCode int, data interface{}, message string) error {
	return c.JSON(statusCode, models.NewApiResponse(statusCode, data, message))
}

// currentUser pulls the authenticated user stashed by the auth gate;
// nil when the route was not gated.
func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(middleware.ContextUserKey).(*models.User)
	return user
}

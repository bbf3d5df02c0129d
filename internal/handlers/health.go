package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports service liveness
func HealthCheck(c echo.Context) error {
	return respond(c, http.StatusOK, echo.Map{"status": "ok"}, "Service is healthy")
}

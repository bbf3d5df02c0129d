package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/validators"
)

// userNameChecker is the slice of the user repository the username
// generator needs.
type userNameChecker interface {
	UserNameTaken(ctx context.Context, userName string) (bool, error)
}

// maxUserNameAttempts bounds the suffix probe for auto-generated
// usernames; past it the signup fails with a conflict.
const maxUserNameAttempts = 100

// generateUniqueUserName picks the base name when free, otherwise the
// base with the smallest non-negative numeric suffix not yet taken.
func generateUniqueUserName(ctx context.Context, repo userNameChecker, base string) (string, error) {
	candidate := base
	for i := 0; i <= maxUserNameAttempts; i++ {
		if validators.IsUserNameAllowed(candidate) {
			taken, err := repo.UserNameTaken(ctx, candidate)
			if err != nil {
				return "", err
			}
			if !taken {
				return candidate, nil
			}
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return "", echo.NewHTTPError(http.StatusConflict, "Unable to allocate a free username")
}

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnsureUserGeneratesSuffixedUserName(t *testing.T) {
	repo := repoWithNames("gopher")
	h := NewGoogleAuthHandler(repo, &config.Config{}, zap.NewNop())

	c, _ := newTestContext(http.MethodGet, "/google-login/callback", "", nil)
	err := h.ensureUser(c, &googleUserInfo{ID: "sub-1", Email: "gopher@mail.test", Name: "Gopher"})
	require.NoError(t, err)

	_, err = repo.GetUserByUserName(c.Request().Context(), "gopher0")
	assert.NoError(t, err)
}

func TestEnsureUserExhaustedUserNamesConflicts(t *testing.T) {
	names := []string{"gopher"}
	for i := 0; i <= maxUserNameAttempts; i++ {
		names = append(names, fmt.Sprintf("gopher%d", i))
	}
	repo := repoWithNames(names...)
	h := NewGoogleAuthHandler(repo, &config.Config{}, zap.NewNop())

	c, _ := newTestContext(http.MethodGet, "/google-login/callback", "", nil)
	err := h.ensureUser(c, &googleUserInfo{ID: "sub-1", Email: "gopher@mail.test", Name: "Gopher"})
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestSignupFailureURLNamesTheConflict(t *testing.T) {
	conflict := echo.NewHTTPError(http.StatusConflict, "Unable to allocate a free username")
	assert.Equal(t, "https://front.test/auth/login?error=username-conflict",
		signupFailureURL("https://front.test", conflict))

	assert.Equal(t, "https://front.test/auth/login?error=signup-failed",
		signupFailureURL("https://front.test", assert.AnError))
}

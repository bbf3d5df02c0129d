package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"github.com/sibsankar910/inkflows-server/pkg/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleUserInfo is the subset of the userinfo payload the signup needs
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleAuthHandler handles the Google OAuth code flow
type GoogleAuthHandler struct {
	userRepository repositories.UserRepository
	oauth          *oauth2.Config
	cfg            *config.Config
	logger         *zap.Logger
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler
func NewGoogleAuthHandler(userRepo repositories.UserRepository, cfg *config.Config, logger *zap.Logger) *GoogleAuthHandler {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		RedirectURL:  cfg.CurrentOrigin + "/api/v1/user/google-login/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
	return &GoogleAuthHandler{
		userRepository: userRepo,
		oauth:          oauthConfig,
		cfg:            cfg,
		logger:         logger,
	}
}

// RegisterGoogleAuthRoutes registers the OAuth routes
func (h *GoogleAuthHandler) RegisterGoogleAuthRoutes(g *echo.Group) {
	g.GET("/google-login", h.GoogleLogin)
	g.GET("/google-login/callback", h.GoogleCallback)
	g.GET("/google-login/auth-user", h.GoogleAuthUser)
}

// GoogleLogin redirects the browser to the Google consent screen
func (h *GoogleAuthHandler) GoogleLogin(c echo.Context) error {
	return c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL("", oauth2.AccessTypeOffline))
}

// GoogleCallback exchanges the authorization code, provisions an
// account on first sign-in and hands the browser back to the frontend.
func (h *GoogleAuthHandler) GoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Authorization code is required")
	}

	token, err := h.oauth.Exchange(c.Request().Context(), code)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Can not get tokens right now")
	}

	userInfo, err := h.fetchUserInfo(c, token.AccessToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to get user")
	}

	if err := h.ensureUser(c, userInfo); err != nil {
		h.logger.Error("google signup failed", zap.String("email", userInfo.Email), zap.Error(err))
		return c.Redirect(http.StatusTemporaryRedirect, signupFailureURL(h.cfg.CorsOrigin, err))
	}

	expires := time.Now().Add(time.Duration(h.cfg.LoginCookieDays) * 24 * time.Hour)
	c.SetCookie(&http.Cookie{
		Name:     "authToken",
		Value:    token.AccessToken,
		Path:     "/",
		Expires:  expires,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
	return c.Redirect(http.StatusTemporaryRedirect, h.cfg.CorsOrigin+"/auth/login?token="+token.AccessToken)
}

// GoogleAuthUser returns the Google profile behind the authToken cookie
func (h *GoogleAuthHandler) GoogleAuthUser(c echo.Context) error {
	cookie, err := c.Cookie("authToken")
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Can not get tokens")
	}

	userInfo, err := h.fetchUserInfo(c, cookie.Value)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to get user")
	}
	return respond(c, http.StatusOK, userInfo, "User fetched successfully")
}

// signupFailureURL builds the frontend redirect for a failed Google
// signup, naming the username-exhaustion conflict so the browser can
// tell it apart from transient failures.
func signupFailureURL(origin string, err error) string {
	reason := "signup-failed"
	if httpErr, ok := err.(*echo.HTTPError); ok && httpErr.Code == http.StatusConflict {
		reason = "username-conflict"
	}
	return origin + "/auth/login?error=" + reason
}

// ensureUser creates the account on first Google sign-in
func (h *GoogleAuthHandler) ensureUser(c echo.Context, info *googleUserInfo) error {
	ctx := c.Request().Context()

	_, err := h.userRepository.GetUserByEmail(ctx, info.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	base := strings.SplitN(info.Email, "@", 2)[0]
	userName, err := generateUniqueUserName(ctx, h.userRepository, base)
	if err != nil {
		return err
	}

	return h.userRepository.CreateUser(ctx, &models.User{
		FullName: info.Name,
		UserName: userName,
		Email:    info.Email,
		Avatar:   info.Picture,
		AuthBy:   models.AuthByGoogle,
		LoginID:  info.ID,
	})
}

func (h *GoogleAuthHandler) fetchUserInfo(c echo.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", res.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

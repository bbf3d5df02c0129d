package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/middleware"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"github.com/sibsankar910/inkflows-server/pkg/config"
	"github.com/sibsankar910/inkflows-server/pkg/firebase"
	"github.com/sibsankar910/inkflows-server/validators"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles registration, login and session lifecycle
type AuthHandler struct {
	userRepository repositories.UserRepository
	storage        *firebase.App
	cfg            *config.Config
	logger         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, storage *firebase.App, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		storage:        storage,
		cfg:            cfg,
		logger:         logger,
	}
}

// RegisterAuthRoutes registers account and session routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/create-user", h.CreateUser)
	g.POST("/login-user", h.LoginUser)
	g.GET("/logout-user", h.LogoutUser, auth)
	g.GET("/check-auth", h.CheckAuth, auth)
	g.GET("/refresh-token", h.RefreshToken)
}

// CreateUser registers a new email account, staging an optional avatar
// through the storage bucket.
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.AuthBy == "" {
		req.AuthBy = models.AuthByEmail
	}
	if req.AuthBy == models.AuthByEmail && req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Password is required")
	}
	if !validators.IsUserNameAllowed(req.UserName) {
		return echo.NewHTTPError(http.StatusBadRequest, "Username is not allowed")
	}

	exists, err := h.userRepository.UserExists(c.Request().Context(), req.UserName, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return echo.NewHTTPError(http.StatusConflict, "User already exist")
	}

	avatarURL := ""
	if fileHeader, err := c.FormFile("avatar"); err == nil {
		localPath, err := stageUploadedFile(fileHeader)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Unable to stage avatar")
		}
		avatarURL, err = h.storage.UploadFile(c.Request().Context(), localPath)
		if err != nil {
			h.logger.Error("avatar upload failed", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "Unable to upload avatar")
		}
	}

	passwordHash := ""
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
		}
		passwordHash = string(hashed)
	}

	user := &models.User{
		FullName: req.FullName,
		UserName: req.UserName,
		Email:    req.Email,
		Avatar:   avatarURL,
		Password: passwordHash,
		AuthBy:   req.AuthBy,
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return err
	}

	return respond(c, http.StatusOK, user, "User registered successfully")
}

// LoginUser authenticates an account and issues the cookie pair
func (h *AuthHandler) LoginUser(c echo.Context) error {
	var req models.LoginUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}

	switch user.AuthBy {
	case models.AuthByEmail:
		if req.Password == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Password is required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Password is incorrect")
		}
	case models.AuthByGoogle:
		if req.LoginID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Google login id is required")
		}
	}

	accessToken, refreshToken, err := h.issueTokenPair(c, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error on generating tokens")
	}
	h.setAuthCookies(c, accessToken, refreshToken)

	return respond(c, http.StatusOK, echo.Map{}, "User loggedin successfully")
}

// LogoutUser revokes the stored refresh token and clears the cookies
func (h *AuthHandler) LogoutUser(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorised request")
	}

	if err := h.userRepository.ClearRefreshToken(c.Request().Context(), user.ID.Hex()); err != nil {
		return err
	}
	h.clearAuthCookies(c)

	return respond(c, http.StatusOK, echo.Map{}, "User loggedout successfully")
}

// CheckAuth reports whether the request carries a valid session
func (h *AuthHandler) CheckAuth(c echo.Context) error {
	isAuthenticated := currentUser(c) != nil
	return respond(c, http.StatusOK, echo.Map{"isAuthenticated": isAuthenticated}, "Authentication checked")
}

// RefreshToken exchanges a valid, non-revoked refresh token for a new
// cookie pair.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	incoming := ""
	if cookie, err := c.Cookie(middleware.RefreshTokenCookie); err == nil {
		incoming = cookie.Value
	}
	if incoming == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.Bind(&body); err == nil {
			incoming = body.RefreshToken
		}
	}
	if incoming == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Unauthorized request")
	}

	claims, err := parseToken(incoming, h.cfg.RefreshTokenSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}
	if user.RefreshToken != incoming {
		return echo.NewHTTPError(http.StatusUnauthorized, "Refresh token is expired")
	}

	accessToken, refreshToken, err := h.issueTokenPair(c, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error on generating tokens")
	}
	h.setAuthCookies(c, accessToken, refreshToken)

	return respond(c, http.StatusOK, echo.Map{}, "Access token refreshed")
}

// issueTokenPair signs a fresh access/refresh pair and stores the
// refresh token on the user document.
func (h *AuthHandler) issueTokenPair(c echo.Context, user *models.User) (string, string, error) {
	accessToken, err := signToken(user.ID.Hex(), h.cfg.AccessTokenSecret, h.cfg.AccessTokenExpiry)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := signToken(user.ID.Hex(), h.cfg.RefreshTokenSecret, h.cfg.RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}
	if err := h.userRepository.SetRefreshToken(c.Request().Context(), user.ID.Hex(), refreshToken); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (h *AuthHandler) setAuthCookies(c echo.Context, accessToken, refreshToken string) {
	expires := time.Now().Add(time.Duration(h.cfg.LoginCookieDays) * 24 * time.Hour)
	c.SetCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: accessToken, Path: "/", Expires: expires, Secure: true})
	c.SetCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: refreshToken, Path: "/", Expires: expires, Secure: true})
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	expired := time.Unix(0, 0)
	c.SetCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "", Path: "/", Expires: expired, Secure: true})
	c.SetCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: "", Path: "/", Expires: expired, Secure: true})
}

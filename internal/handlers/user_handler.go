package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"github.com/sibsankar910/inkflows-server/pkg/firebase"
	"github.com/sibsankar910/inkflows-server/validators"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles profile HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	storage        *firebase.App
	logger         *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, storage *firebase.App, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		storage:        storage,
		logger:         logger,
	}
}

// RegisterUserRoutes registers profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.PATCH("/update-user", h.UpdateUser, auth)
	g.PATCH("/update-avatar", h.UpdateAvatar, auth)
	g.PATCH("/update-password", h.UpdatePassword, auth)

	g.GET("/get-userlist", h.GetUserList)
	g.GET("/get-usernamelist", h.GetUserNameList)

	g.GET("/get-by-name/:userName", h.GetUserByUserName)
	g.GET("/get-by-id/:userId", h.GetUserByID)
	g.GET("/current-user", h.GetCurrentUser, auth)
}

// UpdateUser updates the mutable profile fields of the acting user
func (h *UserHandler) UpdateUser(c echo.Context) error {
	user := currentUser(c)

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.UserName != "" && req.UserName != user.UserName {
		if !validators.IsUserNameAllowed(req.UserName) {
			return echo.NewHTTPError(http.StatusBadRequest, "Username is not allowed")
		}
		taken, err := h.userRepository.UserNameTaken(c.Request().Context(), req.UserName)
		if err != nil {
			return err
		}
		if taken {
			return echo.NewHTTPError(http.StatusConflict, "Username is already taken")
		}
	}

	if err := h.userRepository.UpdateProfile(c.Request().Context(), user.ID.Hex(), req.FullName, req.UserName); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Username updated")
}

// UpdateAvatar replaces the avatar, deleting the previous object from
// the bucket once the new one is in place.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	user := currentUser(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Avatar is required")
	}

	localPath, err := stageUploadedFile(fileHeader)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to stage avatar")
	}
	avatarURL, err := h.storage.UploadFile(c.Request().Context(), localPath)
	if err != nil {
		h.logger.Error("avatar upload failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to upload avatar")
	}

	if user.Avatar != "" {
		if err := h.storage.DeleteByURL(c.Request().Context(), user.Avatar); err != nil {
			h.logger.Warn("failed deleting old avatar", zap.Error(err))
		}
	}

	if err := h.userRepository.SetAvatar(c.Request().Context(), user.ID.Hex(), avatarURL); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Avatar updated successfully")
}

// UpdatePassword changes the password of an email account after
// verifying the current one.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	user := currentUser(c)

	var req models.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// The gate strips the hash, reload it for the comparison
	stored, err := h.userRepository.GetUserByID(c.Request().Context(), user.ID.Hex())
	if err != nil {
		return err
	}
	if stored.AuthBy != models.AuthByEmail {
		return echo.NewHTTPError(http.StatusBadRequest, "Only email authenticates can change password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.CurrentPassword)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Correct password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.userRepository.SetPassword(c.Request().Context(), user.ID.Hex(), string(hashed)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Password updated")
}

// GetUserByUserName retrieves a public profile by username
func (h *UserHandler) GetUserByUserName(c echo.Context) error {
	userName := c.Param("userName")
	if userName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username is required")
	}

	user, err := h.userRepository.GetUserByUserName(c.Request().Context(), userName)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User does not exist")
		}
		return err
	}
	user.Password = ""
	user.RefreshToken = ""
	return respond(c, http.StatusOK, user, "User fetched successfully")
}

// GetUserByID retrieves a public profile by id
func (h *UserHandler) GetUserByID(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "UserId is required")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User does not exist")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "UserId is not valid")
	}
	user.Password = ""
	user.RefreshToken = ""
	return respond(c, http.StatusOK, user, "User fetched successfully")
}

// GetCurrentUser returns the profile of the acting user
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorised request")
	}
	return respond(c, http.StatusOK, user, "User fetched successfully")
}

// GetUserList returns every user in the projected list shape
func (h *UserHandler) GetUserList(c echo.Context) error {
	users, err := h.userRepository.GetUserList(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, users, "User list fetched successfully")
}

// GetUserNameList returns every username as a flat list
func (h *UserHandler) GetUserNameList(c echo.Context) error {
	userNames, err := h.userRepository.GetUserNameList(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, userNames, "Username list fetched")
}

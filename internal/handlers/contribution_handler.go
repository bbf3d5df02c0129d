package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/middleware"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContributionHandler manages co-editing invitations on blogs
type ContributionHandler struct {
	contributionRepository repositories.ContributionRepository
	userRepository         repositories.UserRepository
}

// NewContributionHandler creates a new ContributionHandler
func NewContributionHandler(contributionRepo repositories.ContributionRepository, userRepo repositories.UserRepository) *ContributionHandler {
	return &ContributionHandler{
		contributionRepository: contributionRepo,
		userRepository:         userRepo,
	}
}

// RegisterContributionRoutes registers contribution routes. Inviting
// and revoking go through the editor gate; answering an invitation
// only needs the invitee's session.
func (h *ContributionHandler) RegisterContributionRoutes(g *echo.Group, auth, editor echo.MiddlewareFunc) {
	g.POST("/add-contributor", h.AddContributor, auth, editor)
	g.PATCH("/contributor-response", h.RespondToInvitation, auth)
	g.PATCH("/remove-contribution/:contributionId", h.RemoveContribution, auth)
	g.GET("/get-contribution-list", h.GetContributionList, auth)
	g.GET("/contributor-list/:blogId", h.GetContributorList)
}

// AddContributor invites a user, by username, to co-edit a blog
func (h *ContributionHandler) AddContributor(c echo.Context) error {
	actor := currentUser(c)

	var req models.AddContributorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Blog id and user name is required")
	}

	blog, ok := c.Get(middleware.ContextBlogKey).(*models.Blog)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Blog does not exist")
	}

	invitee, err := h.userRepository.GetUserByUserName(c.Request().Context(), req.UserName)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User does not exist")
		}
		return err
	}
	if invitee.ID == actor.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot invite yourself")
	}

	isContributor, err := h.contributionRepository.IsActiveContributor(c.Request().Context(), blog.ID, invitee.ID)
	if err != nil {
		return err
	}
	if isContributor {
		return echo.NewHTTPError(http.StatusConflict, "User is already a contributor")
	}

	contribution := &models.Contribution{
		BlogID: blog.ID,
		BlogDetails: bson.M{
			"blogTitle": blog.BlogTitle,
			"thumbnail": blog.Thumbnail,
		},
		UserID:   invitee.ID,
		UserName: invitee.UserName,
		Avatar:   invitee.Avatar,
		IsActive: true,
	}
	if err := h.contributionRepository.CreateContribution(c.Request().Context(), contribution); err != nil {
		return err
	}
	return respond(c, http.StatusOK, contribution, "Contributor invited successfully")
}

// RespondToInvitation records the invitee's accept/decline answer
func (h *ContributionHandler) RespondToInvitation(c echo.Context) error {
	user := currentUser(c)

	var req models.ContributionResponseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Contribution id is required")
	}

	contribution, err := h.loadOwnContribution(c, req.ContributionID, user.ID)
	if err != nil {
		return err
	}
	if contribution.IsRespond {
		return echo.NewHTTPError(http.StatusConflict, "Invitation is already answered")
	}

	if err := h.contributionRepository.SetResponse(c.Request().Context(), contribution.ID, req.Accepted); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Contribution response recorded")
}

// RemoveContribution deactivates a contribution. The invitee can leave
// at any time; anyone else gets a 401.
func (h *ContributionHandler) RemoveContribution(c echo.Context) error {
	user := currentUser(c)

	contribution, err := h.loadOwnContribution(c, c.Param("contributionId"), user.ID)
	if err != nil {
		return err
	}

	if err := h.contributionRepository.Deactivate(c.Request().Context(), contribution.ID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{}, "Contribution removed successfully")
}

// GetContributionList returns every invitation addressed to the user
func (h *ContributionHandler) GetContributionList(c echo.Context) error {
	user := currentUser(c)

	contributions, err := h.contributionRepository.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, contributions, "Contribution list fetched")
}

// GetContributorList returns the active contributions of a blog
func (h *ContributionHandler) GetContributorList(c echo.Context) error {
	blogID, err := primitive.ObjectIDFromHex(c.Param("blogId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Blog Id is required")
	}

	contributions, err := h.contributionRepository.ListActiveForBlog(c.Request().Context(), blogID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, contributions, "Contributor list fetched")
}

func (h *ContributionHandler) loadOwnContribution(c echo.Context, id string, userID primitive.ObjectID) (*models.Contribution, error) {
	contribution, err := h.contributionRepository.GetContributionByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrContributionNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Contribution does not exist")
		}
		return nil, err
	}
	if contribution.UserID != userID {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized request")
	}
	return contribution, nil
}

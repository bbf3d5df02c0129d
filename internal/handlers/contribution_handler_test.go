package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/middleware"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeContributionRepo struct {
	contributions []*models.Contribution
}

func (r *fakeContributionRepo) CreateContribution(_ context.Context, contribution *models.Contribution) error {
	contribution.ID = primitive.NewObjectID()
	r.contributions = append(r.contributions, contribution)
	return nil
}

func (r *fakeContributionRepo) GetContributionByID(_ context.Context, id string) (*models.Contribution, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrContributionNotFound
	}
	for _, c := range r.contributions {
		if c.ID == oid {
			return c, nil
		}
	}
	return nil, repositories.ErrContributionNotFound
}

func (r *fakeContributionRepo) SetResponse(_ context.Context, id primitive.ObjectID, accepted bool) error {
	for _, c := range r.contributions {
		if c.ID == id {
			c.IsRespond = true
			c.IsAccepted = accepted
			return nil
		}
	}
	return repositories.ErrContributionNotFound
}

func (r *fakeContributionRepo) Deactivate(_ context.Context, id primitive.ObjectID) error {
	for _, c := range r.contributions {
		if c.ID == id {
			c.IsActive = false
			return nil
		}
	}
	return repositories.ErrContributionNotFound
}

func (r *fakeContributionRepo) ListForUser(_ context.Context, userID primitive.ObjectID) ([]models.Contribution, error) {
	var out []models.Contribution
	for _, c := range r.contributions {
		if c.UserID == userID && c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeContributionRepo) ListActiveForBlog(_ context.Context, blogID primitive.ObjectID) ([]models.Contribution, error) {
	var out []models.Contribution
	for _, c := range r.contributions {
		if c.BlogID == blogID && c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeContributionRepo) IsActiveContributor(_ context.Context, blogID, userID primitive.ObjectID) (bool, error) {
	for _, c := range r.contributions {
		if c.BlogID == blogID && c.UserID == userID && c.IsActive && c.IsAccepted {
			return true, nil
		}
	}
	return false, nil
}

func TestAddContributorCreatesInvitation(t *testing.T) {
	creator := testUser()
	invitee := testUser()
	invitee.UserName = "editor07"
	userRepo := newFakeUserRepo(creator, invitee)
	blog := &models.Blog{Creator: creator.ID, BlogTitle: "Shared draft"}
	newFakeBlogRepo(blog)
	repo := &fakeContributionRepo{}
	h := NewContributionHandler(repo, userRepo)

	body := fmt.Sprintf(`{"blogId":%q,"userName":%q}`, blog.ID.Hex(), invitee.UserName)
	c, rec := newTestContext(http.MethodPost, "/add-contributor", body, creator)
	c.Set(middleware.ContextBlogKey, blog)

	require.NoError(t, h.AddContributor(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.contributions, 1)
	assert.Equal(t, invitee.ID, repo.contributions[0].UserID)
	assert.False(t, repo.contributions[0].IsRespond)
	assert.True(t, repo.contributions[0].IsActive)
}

func TestAddContributorSelfRejected(t *testing.T) {
	creator := testUser()
	userRepo := newFakeUserRepo(creator)
	blog := &models.Blog{Creator: creator.ID, ID: primitive.NewObjectID()}
	h := NewContributionHandler(&fakeContributionRepo{}, userRepo)

	body := fmt.Sprintf(`{"blogId":%q,"userName":%q}`, blog.ID.Hex(), creator.UserName)
	c, _ := newTestContext(http.MethodPost, "/add-contributor", body, creator)
	c.Set(middleware.ContextBlogKey, blog)

	err := h.AddContributor(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestRespondToInvitationByStrangerUnauthorized(t *testing.T) {
	invitee := testUser()
	stranger := testUser()
	repo := &fakeContributionRepo{}
	contribution := &models.Contribution{UserID: invitee.ID, IsActive: true}
	require.NoError(t, repo.CreateContribution(context.Background(), contribution))
	h := NewContributionHandler(repo, newFakeUserRepo(invitee, stranger))

	body := fmt.Sprintf(`{"contributionId":%q,"accepted":true}`, contribution.ID.Hex())
	c, _ := newTestContext(http.MethodPatch, "/contributor-response", body, stranger)

	err := h.RespondToInvitation(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRespondToInvitationTwiceConflicts(t *testing.T) {
	invitee := testUser()
	repo := &fakeContributionRepo{}
	contribution := &models.Contribution{UserID: invitee.ID, IsActive: true}
	require.NoError(t, repo.CreateContribution(context.Background(), contribution))
	h := NewContributionHandler(repo, newFakeUserRepo(invitee))

	body := fmt.Sprintf(`{"contributionId":%q,"accepted":true}`, contribution.ID.Hex())
	c, _ := newTestContext(http.MethodPatch, "/contributor-response", body, invitee)
	require.NoError(t, h.RespondToInvitation(c))
	assert.True(t, contribution.IsAccepted)

	c, _ = newTestContext(http.MethodPatch, "/contributor-response", body, invitee)
	err := h.RespondToInvitation(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestRemoveContributionDeactivates(t *testing.T) {
	invitee := testUser()
	repo := &fakeContributionRepo{}
	contribution := &models.Contribution{UserID: invitee.ID, IsActive: true, IsRespond: true, IsAccepted: true}
	require.NoError(t, repo.CreateContribution(context.Background(), contribution))
	h := NewContributionHandler(repo, newFakeUserRepo(invitee))

	c, rec := newTestContext(http.MethodPatch, "/remove-contribution/"+contribution.ID.Hex(), "", invitee)
	c.SetParamNames("contributionId")
	c.SetParamValues(contribution.ID.Hex())

	require.NoError(t, h.RemoveContribution(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, contribution.IsActive)
}

func TestContributionRouteMethods(t *testing.T) {
	e := echo.New()
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	h := NewContributionHandler(&fakeContributionRepo{}, newFakeUserRepo())
	h.RegisterContributionRoutes(e.Group(""), passthrough, passthrough)

	methods := map[string]string{}
	for _, route := range e.Routes() {
		methods[route.Path] = route.Method
	}
	assert.Equal(t, http.MethodPost, methods["/add-contributor"])
	assert.Equal(t, http.MethodPatch, methods["/contributor-response"])
	assert.Equal(t, http.MethodPatch, methods["/remove-contribution/:contributionId"])
}

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFollowSyncsBothCounters(t *testing.T) {
	actor := testUser()
	target := testUser()
	target.UserName = "reader02"
	userRepo := newFakeUserRepo(actor, target)
	followRepo := &fakeFollowRepo{}
	h := NewFollowHandler(followRepo, userRepo)

	body := fmt.Sprintf(`{"followingTo":%q}`, target.ID.Hex())
	c, rec := newTestContext(http.MethodPost, "/create-follow", body, actor)

	require.NoError(t, h.CreateFollow(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, target.FollowersCount)
	assert.Equal(t, 1, actor.FollowingsCount)
	assert.Equal(t, 0, target.FollowingsCount)
	assert.Equal(t, 0, actor.FollowersCount)
}

func TestCreateFollowSelfRejected(t *testing.T) {
	actor := testUser()
	userRepo := newFakeUserRepo(actor)
	h := NewFollowHandler(&fakeFollowRepo{}, userRepo)

	body := fmt.Sprintf(`{"followingTo":%q}`, actor.ID.Hex())
	c, _ := newTestContext(http.MethodPost, "/create-follow", body, actor)

	err := h.CreateFollow(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateFollowDuplicateConflicts(t *testing.T) {
	actor := testUser()
	target := testUser()
	userRepo := newFakeUserRepo(actor, target)
	h := NewFollowHandler(&fakeFollowRepo{}, userRepo)

	body := fmt.Sprintf(`{"followingTo":%q}`, target.ID.Hex())
	c, _ := newTestContext(http.MethodPost, "/create-follow", body, actor)
	require.NoError(t, h.CreateFollow(c))

	c, _ = newTestContext(http.MethodPost, "/create-follow", body, actor)
	err := h.CreateFollow(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestRemoveFollowResetsCountersToZero(t *testing.T) {
	actor := testUser()
	target := testUser()
	userRepo := newFakeUserRepo(actor, target)
	h := NewFollowHandler(&fakeFollowRepo{}, userRepo)

	body := fmt.Sprintf(`{"followingTo":%q}`, target.ID.Hex())
	c, _ := newTestContext(http.MethodPost, "/create-follow", body, actor)
	require.NoError(t, h.CreateFollow(c))

	c, _ = newTestContext(http.MethodPost, "/remove-follow", body, actor)
	require.NoError(t, h.RemoveFollow(c))
	assert.Equal(t, 0, target.FollowersCount)
	assert.Equal(t, 0, actor.FollowingsCount)
}

func TestRemoveFollowMissingNotFound(t *testing.T) {
	actor := testUser()
	target := testUser()
	userRepo := newFakeUserRepo(actor, target)
	h := NewFollowHandler(&fakeFollowRepo{}, userRepo)

	body := fmt.Sprintf(`{"followingTo":%q}`, target.ID.Hex())
	c, _ := newTestContext(http.MethodPost, "/remove-follow", body, actor)

	err := h.RemoveFollow(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

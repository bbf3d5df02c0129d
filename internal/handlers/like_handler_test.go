package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLikeSyncsCounter(t *testing.T) {
	user := testUser()
	blog := &models.Blog{BlogTitle: "Go channels", UploadStatus: models.UploadStatusPublic}
	blogRepo := newFakeBlogRepo(blog)
	likeRepo := &fakeLikeRepo{}
	h := NewLikeHandler(likeRepo, blogRepo)

	body := fmt.Sprintf(`{"blogId":%q}`, blog.ID.Hex())
	c, rec := newTestContext(http.MethodPost, "/create-like", body, user)

	require.NoError(t, h.CreateLike(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, blog.TotalLikes)
}

func TestCreateLikeDuplicateConflicts(t *testing.T) {
	user := testUser()
	blog := &models.Blog{BlogTitle: "Go channels"}
	blogRepo := newFakeBlogRepo(blog)
	likeRepo := &fakeLikeRepo{}
	h := NewLikeHandler(likeRepo, blogRepo)

	body := fmt.Sprintf(`{"blogId":%q}`, blog.ID.Hex())
	c, _ := newTestContext(http.MethodPost, "/create-like", body, user)
	require.NoError(t, h.CreateLike(c))

	c, _ = newTestContext(http.MethodPost, "/create-like", body, user)
	err := h.CreateLike(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.Equal(t, 1, blog.TotalLikes)
}

func TestRemoveLikeSyncsCounter(t *testing.T) {
	user := testUser()
	blog := &models.Blog{BlogTitle: "Go channels"}
	blogRepo := newFakeBlogRepo(blog)
	likeRepo := &fakeLikeRepo{}
	h := NewLikeHandler(likeRepo, blogRepo)

	body := fmt.Sprintf(`{"blogId":%q}`, blog.ID.Hex())
	c, _ := newTestContext(http.MethodPost, "/create-like", body, user)
	require.NoError(t, h.CreateLike(c))
	require.Equal(t, 1, blog.TotalLikes)

	c, rec := newTestContext(http.MethodPost, "/remove-like", body, user)
	require.NoError(t, h.RemoveLike(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, blog.TotalLikes)
}

func TestRemoveLikeMissingNotFound(t *testing.T) {
	user := testUser()
	blog := &models.Blog{BlogTitle: "Go channels"}
	blogRepo := newFakeBlogRepo(blog)
	h := NewLikeHandler(&fakeLikeRepo{}, blogRepo)

	body := fmt.Sprintf(`{"blogId":%q}`, blog.ID.Hex())
	c, _ := newTestContext(http.MethodPost, "/remove-like", body, user)
	err := h.RemoveLike(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestCheckLikeReportsAbsenceAsFalse(t *testing.T) {
	user := testUser()
	blog := &models.Blog{BlogTitle: "Go channels"}
	blogRepo := newFakeBlogRepo(blog)
	h := NewLikeHandler(&fakeLikeRepo{}, blogRepo)

	c, rec := newTestContext(http.MethodGet, "/check-like/"+blog.ID.Hex(), "", user)
	c.SetParamNames("blogId")
	c.SetParamValues(blog.ID.Hex())

	require.NoError(t, h.CheckLike(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isLiked":false`)
}

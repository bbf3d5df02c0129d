package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewApiResponseSuccessFlag(t *testing.T) {
	ok := NewApiResponse(http.StatusOK, nil, "done")
	assert.True(t, ok.Success)

	created := NewApiResponse(http.StatusCreated, nil, "done")
	assert.True(t, created.Success)

	badRequest := NewApiResponse(http.StatusBadRequest, nil, "nope")
	assert.False(t, badRequest.Success)

	serverError := NewApiResponse(http.StatusInternalServerError, nil, "boom")
	assert.False(t, serverError.Success)
}

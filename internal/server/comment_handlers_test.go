package server

import (
	"net/http"
	"testing"
	"time"

	"nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListComments(t *testing.T) {
	_, app, db := setupTestServer(t)
	seller := createTestUser(t, db, "seller1")
	createTestUser(t, db, "buyer1")
	createTestProduct(t, db, seller.ID, "commented", true, time.Now())

	resp := doJSON(t, app, http.MethodPost, "/api/products/1/comments", map[string]any{
		"username": "buyer1",
		"text":     "Is the charger included?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.Comment](t, resp)
	assert.Equal(t, "Test", created.UserName)
	assert.Equal(t, "Is the charger included?", created.Text)
	assert.False(t, created.Timestamp.IsZero())

	// second comment, later timestamp
	resp = doJSON(t, app, http.MethodPost, "/api/products/1/comments", map[string]any{
		"username": "seller1",
		"text":     "Yes, original charger.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products/1/comments", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	comments := decodeBody[[]models.Comment](t, resp)
	require.Len(t, comments, 2)
	assert.Equal(t, "Is the charger included?", comments[0].Text, "oldest first")
	assert.Equal(t, "Yes, original charger.", comments[1].Text)

	// comments ride along on the product detail in the same order
	resp = doJSON(t, app, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[models.Product](t, resp)
	require.Len(t, fetched.Comments, 2)
	assert.Equal(t, "Is the charger included?", fetched.Comments[0].Text)
}

func TestCreateCommentValidation(t *testing.T) {
	_, app, db := setupTestServer(t)
	seller := createTestUser(t, db, "seller1")
	createTestProduct(t, db, seller.ID, "commented", true, time.Now())

	resp := doJSON(t, app, http.MethodPost, "/api/products/1/comments", map[string]any{
		"username": "seller1",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/products/1/comments", map[string]any{
		"username": "nobody",
		"text":     "hello",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCommentsOnMissingProduct(t *testing.T) {
	_, app, db := setupTestServer(t)
	createTestUser(t, db, "seller1")

	resp := doJSON(t, app, http.MethodGet, "/api/products/42/comments", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/products/42/comments", map[string]any{
		"username": "seller1",
		"text":     "anyone home?",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentAuthorDefaultsToFirstUser(t *testing.T) {
	_, app, db := setupTestServer(t)
	seller := createTestUser(t, db, "seller1")
	createTestProduct(t, db, seller.ID, "commented", true, time.Now())

	resp := doJSON(t, app, http.MethodPost, "/api/products/1/comments", map[string]any{
		"text": "anonymous drive-by",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.Comment](t, resp)
	assert.Equal(t, "Test", created.UserName)
}

package server

import (
	"io"
	"net/http"
	"testing"

	"nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginReturnsProjection(t *testing.T) {
	_, app, db := setupTestServer(t)
	user := createTestUser(t, db, "aarav")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "aarav",
		"password": "anything at all",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decodeBody[models.UserProjection](t, resp)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "aarav", got.Username)
	assert.Equal(t, "Test", got.FirstName)
	assert.Equal(t, "College of Engineering", got.College)
	assert.NotEmpty(t, got.Avatar)
}

func TestLoginIgnoresPassword(t *testing.T) {
	_, app, db := setupTestServer(t)
	createTestUser(t, db, "aarav")

	// no password field at all
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "aarav",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginUnknownUsername(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "ghost",
		"password": "pw",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Node not found"}`, string(raw))
}

func TestLoginWithoutUsername(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"password": "pw",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Node not found"}`, string(body))
}

func TestLoginProjectionWithoutProfile(t *testing.T) {
	_, app, db := setupTestServer(t)

	user := models.User{Username: "bare", FirstName: "Bare", Email: "bare@example.com", Password: "pw"}
	require.NoError(t, db.Create(&user).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "bare",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[models.UserProjection](t, resp)
	assert.Equal(t, "", got.College)
	assert.Equal(t, "", got.Avatar)
}

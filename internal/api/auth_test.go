package api

import (
	"blog_system/internal/domain"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := setupDB(t)
	r := newTestRouter(db)

	w := doRequest(r, "POST", "/users", registerBody("alice", domain.RoleUser), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["user"])
	assert.Equal(t, "user", body["role"])
	assert.NotZero(t, body["id"])
	// The password hash must never appear on the wire
	assert.NotContains(t, w.Body.String(), "password")

	// The stored password is hashed, not plaintext
	var stored domain.User
	require.NoError(t, db.Where("user = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestRegisterMissingFields(t *testing.T) {
	r := newTestRouter(setupDB(t))

	body := registerBody("bob", domain.RoleUser)
	delete(body, "email")
	w := doRequest(r, "POST", "/users", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterInvalidRole(t *testing.T) {
	r := newTestRouter(setupDB(t))

	body := registerBody("mallory", domain.RoleUser)
	body["role"] = "superadmin"
	w := doRequest(r, "POST", "/users", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	r := newTestRouter(setupDB(t))

	w := doRequest(r, "POST", "/users", registerBody("carol", domain.RoleAdmin), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, "POST", "/login", map[string]any{"user": "carol", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "admin", body["role"])
}

func TestLoginUnknownUser(t *testing.T) {
	r := newTestRouter(setupDB(t))

	w := doRequest(r, "POST", "/login", map[string]any{"user": "ghost", "password": "whatever1"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRouter(setupDB(t))

	w := doRequest(r, "POST", "/users", registerBody("dave", domain.RoleUser), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, "POST", "/login", map[string]any{"user": "dave", "password": "wrongpass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginBannedUser(t *testing.T) {
	db := setupDB(t)
	r := newTestRouter(db)

	w := doRequest(r, "POST", "/users", registerBody("eve", domain.RoleUser), "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, db.Model(&domain.User{}).Where("user = ?", "eve").Update("is_banned", true).Error)

	// Rejected before the password is even checked
	w = doRequest(r, "POST", "/login", map[string]any{"user": "eve", "password": "secret123"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "banned")
}

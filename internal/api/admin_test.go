package api

import (
	"blog_system/internal/domain"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	r := newTestRouter(setupDB(t))
	token, _ := registerAndLogin(t, r, "judy", domain.RoleUser)
	_, _ = registerAndLogin(t, r, "mike", domain.RoleAdmin)

	w := doRequest(r, "GET", "/users", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Contains(t, u, "id")
		assert.Contains(t, u, "name")
		assert.Contains(t, u, "user")
		assert.Contains(t, u, "email")
		assert.Contains(t, u, "role")
		assert.Contains(t, u, "isBanned")
		assert.NotContains(t, u, "password")
	}
}

func TestListUsersRequiresToken(t *testing.T) {
	r := newTestRouter(setupDB(t))

	w := doRequest(r, "GET", "/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleBanRequiresAdmin(t *testing.T) {
	r := newTestRouter(setupDB(t))
	userToken, _ := registerAndLogin(t, r, "nancy", domain.RoleUser)
	_, targetID := registerAndLogin(t, r, "oscar", domain.RoleUser)

	w := doRequest(r, "POST", fmt.Sprintf("/users/%d/ban", targetID), nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestToggleBanInvalidAction(t *testing.T) {
	r := newTestRouter(setupDB(t))
	adminToken, _ := registerAndLogin(t, r, "peggy", domain.RoleAdmin)
	_, targetID := registerAndLogin(t, r, "quinn", domain.RoleUser)

	w := doRequest(r, "POST", fmt.Sprintf("/users/%d/freeze", targetID), nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleBanUnknownTarget(t *testing.T) {
	r := newTestRouter(setupDB(t))
	adminToken, _ := registerAndLogin(t, r, "rita", domain.RoleAdmin)

	w := doRequest(r, "POST", "/users/9999/ban", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBanLifecycle(t *testing.T) {
	db := setupDB(t)
	r := newTestRouter(db)
	adminToken, _ := registerAndLogin(t, r, "sybil", domain.RoleAdmin)
	targetToken, targetID := registerAndLogin(t, r, "trent", domain.RoleUser)

	// Ban the target
	w := doRequest(r, "POST", fmt.Sprintf("/users/%d/ban", targetID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored domain.User
	require.NoError(t, db.First(&stored, targetID).Error)
	assert.True(t, stored.IsBanned)

	// Banning an already-banned user is a no-op success
	w = doRequest(r, "POST", fmt.Sprintf("/users/%d/ban", targetID), nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// Login is rejected pre-token
	w = doRequest(r, "POST", "/login", map[string]any{"user": "trent", "password": "secret123"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The previously issued token stops working too
	w = doRequest(r, "GET", "/users/me", nil, targetToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unban restores access
	w = doRequest(r, "POST", fmt.Sprintf("/users/%d/unban", targetID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, "GET", "/users/me", nil, targetToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

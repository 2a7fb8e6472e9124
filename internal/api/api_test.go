package api

// Shared test harness: an in-memory database and a router wired exactly like
// cmd/server, with no Redis (the cache helpers degrade to misses).

import (
	"blog_system/internal/config"
	"blog_system/internal/domain"
	"blog_system/internal/middleware"
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{JWTSecret: testSecret, JWTExpiration: time.Hour}
}

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Post{}, &domain.Reaction{}))
	return db
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	r := gin.New()

	authGate := middleware.JWTAuthMiddleware(db, cfg.JWTSecret)
	adminGate := middleware.RequireRoleMiddleware(domain.RoleAdmin)

	r.POST("/users", RegisterHandler(db, nil))
	r.POST("/login", LoginHandler(db, cfg))
	r.GET("/users/me", authGate, GetProfileHandler(db))
	r.PUT("/users/me", authGate, UpdateProfileHandler(db, nil))
	r.GET("/users", authGate, ListUsersHandler(db, nil))
	r.POST("/users/:id/:action", authGate, adminGate, ToggleBanHandler(db, nil))
	r.POST("/publicacion", authGate, CreatePostHandler(db, nil))
	r.GET("/publicacion", ListPostsHandler(db, nil, cfg.JWTSecret))
	r.DELETE("/publicacion/:id", authGate, DeletePostHandler(db, nil))
	r.POST("/publicacion/:id/like", authGate, LikePostHandler(db, nil))
	r.POST("/publicacion/:id/dislike", authGate, DislikePostHandler(db, nil))
	return r
}

func doRequest(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerBody(handle string, role domain.Role) map[string]any {
	return map[string]any{
		"name":     "Ana",
		"lastName": "Lopez",
		"email":    handle + "@example.com",
		"user":     handle,
		"password": "secret123",
		"role":     role,
	}
}

// registerAndLogin creates an account and returns its token and ID
func registerAndLogin(t *testing.T, r *gin.Engine, handle string, role domain.Role) (string, uint) {
	w := doRequest(r, "POST", "/users", registerBody(handle, role), "")
	require.Equal(t, 201, w.Code, w.Body.String())
	created := decodeBody(t, w)
	id := uint(created["id"].(float64))

	w = doRequest(r, "POST", "/login", map[string]any{"user": handle, "password": "secret123"}, "")
	require.Equal(t, 200, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string), id
}

// createPost publishes a post and returns its ID
func createPost(t *testing.T, r *gin.Engine, token, text string) uint {
	w := doRequest(r, "POST", "/publicacion", map[string]any{"text": text}, token)
	require.Equal(t, 201, w.Code, w.Body.String())
	return uint(decodeBody(t, w)["id"].(float64))
}

func fetchPost(t *testing.T, db *gorm.DB, id uint) domain.Post {
	var post domain.Post
	require.NoError(t, db.First(&post, id).Error)
	return post
}

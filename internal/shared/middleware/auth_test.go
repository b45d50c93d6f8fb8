package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-platform-backend/pkg/jwt"
)

func setupAuthRouter(t *testing.T, manager *jwt.Manager, optional bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	mw := AuthMiddleware(manager)
	if optional {
		mw = OptionalAuthMiddleware(manager)
	}
	router.GET("/protected", mw, func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "userId": userID.String()})
	})
	return router
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID.String(), "user@example.com")
	require.NoError(t, err)

	router := setupAuthRouter(t, manager, false)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestAuthMiddlewareRejections(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	otherToken, err := jwt.NewManager("other-secret").GenerateAccessToken(uuid.New().String(), "user@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + otherToken},
	}

	router := setupAuthRouter(t, manager, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
			assert.Contains(t, rec.Body.String(), `"operation":"GET /protected"`)
		})
	}
}

func TestOptionalAuthMiddlewareAnonymous(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	router := setupAuthRouter(t, manager, true)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestOptionalAuthMiddlewareInvalidTokenStaysAnonymous(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	router := setupAuthRouter(t, manager, true)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

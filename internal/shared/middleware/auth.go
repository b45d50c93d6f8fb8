package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course-platform-backend/internal/shared/response"
	"course-platform-backend/pkg/jwt"
)

// UserIDKey is the gin context key the middlewares set for the caller's id.
const UserIDKey = "userID"

// AuthMiddleware rejects requests without a valid access token and puts the
// caller's user id into the context.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := extractUserID(c, manager)
		if !ok {
			response.ErrorWithDetails(c, http.StatusUnauthorized, "UNAUTHORIZED",
				"missing or invalid access token",
				gin.H{"operation": c.Request.Method + " " + c.FullPath()})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the caller's user id when a valid token is
// present and lets anonymous requests straight through. Used by endpoints
// where authentication only adds attribution.
func OptionalAuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := extractUserID(c, manager); ok {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id, or (uuid.Nil, false)
// for anonymous requests.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func extractUserID(c *gin.Context, manager *jwt.Manager) (uuid.UUID, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return uuid.Nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil, false
	}

	claims, err := manager.ValidateAccessToken(parts[1])
	if err != nil {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

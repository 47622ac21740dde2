package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusbook/venue-booking/internal/auth"
	"github.com/campusbook/venue-booking/internal/entity"
)

// Context keys populated by the Auth middleware.
const (
	ContextUserID  = "userID"
	ContextRole    = "userRole"
	ContextTokenID = "tokenID"
)

// Auth verifies the bearer token's signature and expiry, then requires a
// live session record so revoked tokens stop working immediately.
func Auth(tokens *auth.TokenManager, sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if err := sessions.Check(c.Request.Context(), claims.ID); err != nil {
			if errors.Is(err, entity.ErrStorageUnavailable) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or revoked"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, string(claims.Role))
		c.Set(ContextTokenID, claims.ID)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user is an admin.
// Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(entity.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

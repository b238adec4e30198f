package auth

import (
	"net/http"
	"strings"

	"github.com/WindyDante/Clear/internal/identity"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// RequireAuth returns a middleware that verifies the bearer token and puts
// the user id into the request context. Missing or invalid tokens get 401.
func RequireAuth(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		userID, err := tokens.Parse(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Request = c.Request.WithContext(identity.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// CurrentUser returns the authenticated user id for a request that passed
// RequireAuth. 0 if the middleware did not run.
func CurrentUser(c *gin.Context) int64 {
	id, ok := identity.UserID(c.Request.Context())
	if !ok {
		return 0
	}
	return id
}

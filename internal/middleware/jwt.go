package middleware

import (
	"net/http"                  // HTTP status codes
	"storefront/internal/utils" // JWT utility functions
	"strings"                   // String manipulation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client for the logout denylist
)

// JWTAuthMiddleware validates session tokens and extracts user information.
// Tokens that went through /logout sit on a redis denylist and are rejected.
func JWTAuthMiddleware(secret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the session token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// Reject tokens that were logged out
		if utils.IsTokenDenied(c.Request.Context(), rdb, tokenStr) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has been logged out"})
			return
		}
		c.Set("userID", claims.UserID) // Store userID in context
		c.Set("token", tokenStr)       // Store raw token for logout
		if claims.ExpiresAt != nil {
			c.Set("tokenExpiry", claims.ExpiresAt.Time) // Denylist entries live this long
		}
		c.Next() // Proceed to the next handler
	}
}

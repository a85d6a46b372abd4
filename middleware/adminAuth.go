package middleware

import (
	"context"
	"net/http"
	"strings"

	"refugio/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthAdminMiddleware guards the panel endpoints. A token must both verify
// against the signing secret and still be present in the revocation cache.
func JWTAuthAdminMiddleware(authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if err := utils.ValidateAdminToken(tokenString); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		key := utils.AdminTokenPrefix + utils.HashToken(tokenString)
		exists, err := authCache.Exists(context.Background(), key).Result()
		if err != nil || exists == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		c.Set("adminToken", tokenString)
		c.Set("isAdmin", true)
		c.Next()
	}
}

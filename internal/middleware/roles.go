package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles authorizes a request when the caller's role claim is in
// the allowed set. Roles are fixed at signup, so the claim is
// authoritative and no user lookup is needed. Routes declare their
// allowed roles in one table in cmd/server rather than checking role
// strings inline.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}
		c.Next()
	}
}

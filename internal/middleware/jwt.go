package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"cems/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by the auth middleware
const (
	CtxUserID = "userID"
	CtxClaims = "claims"
)

// JWTAuthMiddleware validates bearer tokens and stores the caller's
// identity and role claims in the request context
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware parses a bearer token when one is present but
// lets anonymous requests through. The public event listing uses it to
// flag the caller's own registrations.
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := utils.ParseJWT(tokenStr, secret); err == nil {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxClaims, claims)
			}
		}
		c.Next()
	}
}

// Claims returns the parsed token claims for an authenticated request
func Claims(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/types"
)

const identityKey = "identity"

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is required"})
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header format"})
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is sent and
// otherwise lets the request through anonymously.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := validator.ValidateToken(token); err == nil {
				c.Set(identityKey, claims.Identity())
			}
		}
		c.Next()
	}
}

// IdentityFrom returns the caller stored by RequireAuth or OptionalAuth
func IdentityFrom(c *gin.Context) (types.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return types.Identity{}, false
	}
	identity, ok := value.(types.Identity)
	return identity, ok
}

// CallerID is the authenticated user's id, or "" for anonymous requests
func CallerID(c *gin.Context) string {
	identity, _ := IdentityFrom(c)
	return identity.UserID
}

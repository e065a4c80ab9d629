package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Identity is the caller resolved from a bearer token
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// Identity returns the caller described by the claims
func (c *TokenClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Name: c.Name}
}

// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims carried by staff and technician tokens.
type Claims struct {
	IdentityID int64  `json:"identity_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// HasRole checks if the claims carry a specific role.
func (c *Claims) HasRole(role string) bool {
	return c.Role == role
}

// IsAdmin checks if the token belongs to an admin account.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

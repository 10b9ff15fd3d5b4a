package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload issued on login. Subject carries the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// IsAdmin reports whether the claims carry the admin role
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanEdit reports whether the claims carry the editor or admin role
func (c *Claims) CanEdit() bool {
	return c.Role == RoleAdmin || c.Role == RoleEditor
}

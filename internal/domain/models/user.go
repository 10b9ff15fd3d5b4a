package models

import (
	"time"
)

// User roles, in decreasing order of privilege
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name"`
	Role         string     `json:"role" db:"role"`
	Permissions  []string   `json:"permissions" db:"permissions"`
	Company      string     `json:"company" db:"company"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	Avatar       string     `json:"avatar,omitempty" db:"avatar"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

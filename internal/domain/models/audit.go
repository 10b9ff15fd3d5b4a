package models

import (
	"time"
)

// Audit actions
const (
	ActionCreate   = "CREATE"
	ActionRead     = "READ"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionLogin    = "LOGIN"
	ActionLogout   = "LOGOUT"
	ActionDownload = "DOWNLOAD"
	ActionShare    = "SHARE"
	ActionSign     = "SIGN"
)

// Audited entity types
const (
	EntityUser     = "User"
	EntityDocument = "Document"
	EntityContract = "Contract"
	EntityTemplate = "Template"
	EntityFolder   = "Folder"
	EntityAuth     = "Auth"
)

// AuditLog is one best-effort audit record, written alongside every
// mutating operation on the same tenant connection.
type AuditLog struct {
	ID         string         `json:"id" db:"id"`
	Action     string         `json:"action" db:"action"`
	EntityType string         `json:"entity_type" db:"entity_type"`
	EntityID   *string        `json:"entity_id,omitempty" db:"entity_id"`
	UserID     *string        `json:"user_id,omitempty" db:"user_id"`
	UserEmail  string         `json:"user_email,omitempty" db:"user_email"`
	Details    map[string]any `json:"details,omitempty" db:"details"`
	IPAddress  string         `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  string         `json:"user_agent,omitempty" db:"user_agent"`
	Timestamp  time.Time      `json:"timestamp" db:"timestamp"`
}

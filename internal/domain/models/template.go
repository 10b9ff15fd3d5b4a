package models

import (
	"time"
)

// Template types
const (
	TemplateTypeDocument = "document"
	TemplateTypeContract = "contract"
)

// TemplateVariable is a named placeholder substituted into template
// content as {{name}}
type TemplateVariable struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
	Required     bool   `json:"required"`
}

type Template struct {
	ID          string             `json:"id" db:"id"`
	Name        string             `json:"name" db:"name"`
	Description string             `json:"description,omitempty" db:"description"`
	Type        string             `json:"type" db:"type"` // document or contract
	Content     string             `json:"content" db:"content"`
	Variables   []TemplateVariable `json:"variables" db:"variables"`
	Category    string             `json:"category" db:"category"`
	Tags        []string           `json:"tags" db:"tags"`
	CreatedBy   string             `json:"created_by" db:"created_by"`
	UpdatedBy   *string            `json:"updated_by,omitempty" db:"updated_by"`
	IsPublic    bool               `json:"is_public" db:"is_public"`
	UsageCount  int                `json:"usage_count" db:"usage_count"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
}

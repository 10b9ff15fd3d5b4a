package models

import (
	"time"
)

// Document statuses
const (
	DocumentStatusDraft     = "draft"
	DocumentStatusPublished = "published"
	DocumentStatusArchived  = "archived"
)

// ValidDocumentStatus reports whether s is a known document status
func ValidDocumentStatus(s string) bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusPublished, DocumentStatusArchived:
		return true
	}
	return false
}

// DocumentShare grants another user read or write access to a document
type DocumentShare struct {
	UserID     string    `json:"user_id"`
	Permission string    `json:"permission"` // read or write
	SharedAt   time.Time `json:"shared_at"`
}

// Document holds uploaded file metadata. The file bytes themselves live in
// the per-tenant upload directory; StoragePath is never exposed over JSON.
type Document struct {
	ID           string            `json:"id" db:"id"`
	Title        string            `json:"title" db:"title"`
	Description  string            `json:"description,omitempty" db:"description"`
	Filename     string            `json:"filename" db:"filename"`
	OriginalName string            `json:"original_name" db:"original_name"`
	MimeType     string            `json:"mime_type" db:"mime_type"`
	Size         int64             `json:"size" db:"size"`
	StoragePath  string            `json:"-" db:"storage_path"`
	FolderID     *string           `json:"folder_id" db:"folder_id"`
	CreatedBy    string            `json:"created_by" db:"created_by"`
	UpdatedBy    *string           `json:"updated_by,omitempty" db:"updated_by"`
	Tags         []string          `json:"tags" db:"tags"`
	Version      int               `json:"version" db:"version"`
	Status       string            `json:"status" db:"status"`
	SharedWith   []DocumentShare   `json:"shared_with,omitempty" db:"shared_with"`
	Metadata     map[string]string `json:"metadata,omitempty" db:"metadata"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

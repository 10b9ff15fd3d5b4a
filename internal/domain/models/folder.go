package models

import (
	"time"
)

// Defaults applied when a folder is created without display attributes
const (
	DefaultFolderColor = "#3b82f6"
	DefaultFolderIcon  = "folder"
)

// Folder is a node in the per-tenant folder tree. Path is the materialized
// ancestor chain ("/" for root folders, "/Parent/" for their children, and
// so on). Moving or renaming a folder rewrites only that folder's path;
// descendant paths keep their stored value until they are themselves
// written. Tree listings compute paths live, so the staleness is only
// visible through flat reads.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Path      string    `json:"path" db:"path"`
	Color     string    `json:"color" db:"color"`
	Icon      string    `json:"icon" db:"icon"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FolderTreeNode is a folder annotated with its live-computed path and its
// child subtree, ordered ascending by name at each level.
type FolderTreeNode struct {
	Folder
	Children []*FolderTreeNode `json:"children"`
}

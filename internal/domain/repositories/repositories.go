// Package repositories defines the data-access interfaces the services
// depend on. The postgres package implements them against a tenant's
// connection pool; tests implement them in memory.
package repositories

import (
	"context"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
)

// ListUsersFilter narrows and pages a user listing. Only active users are
// returned.
type ListUsersFilter struct {
	Role   string
	Search string // matches name or email, case-insensitive
	Page   int
	Limit  int
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns the user including the password hash, or
	// domain.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]models.User, int, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, id string) (*models.Folder, error)
	// GetByNameAndParent returns (nil, nil) when no sibling with that
	// name exists under parentID (nil parentID = root level).
	GetByNameAndParent(ctx context.Context, name string, parentID *string) (*models.Folder, error)
	// ListChildren lists immediate children of parentID (nil = root
	// folders), ordered ascending by name.
	ListChildren(ctx context.Context, parentID *string) ([]models.Folder, error)
	// ListAll returns every folder in the tenant database.
	ListAll(ctx context.Context) ([]models.Folder, error)
	CountChildren(ctx context.Context, parentID string) (int, error)
	Update(ctx context.Context, folder *models.Folder) error
	Delete(ctx context.Context, id string) error
}

// ListDocumentsFilter narrows and pages a document listing
type ListDocumentsFilter struct {
	FolderID *string
	Status   string
	Search   string // matches title or description, case-insensitive
	Tags     []string
	Page     int
	Limit    int
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id string) (*models.Document, error)
	List(ctx context.Context, filter ListDocumentsFilter) ([]models.Document, int, error)
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id string) error
}

// ListTemplatesFilter narrows and pages a template listing
type ListTemplatesFilter struct {
	Type     string
	Category string
	Search   string
	Page     int
	Limit    int
}

type TemplateRepository interface {
	Create(ctx context.Context, tmpl *models.Template) error
	GetByID(ctx context.Context, id string) (*models.Template, error)
	List(ctx context.Context, filter ListTemplatesFilter) ([]models.Template, int, error)
	Update(ctx context.Context, tmpl *models.Template) error
	Delete(ctx context.Context, id string) error
}

// ListContractsFilter narrows and pages a contract listing
type ListContractsFilter struct {
	Status string
	Search string // matches title or party name/email, case-insensitive
	Page   int
	Limit  int
}

type ContractRepository interface {
	Create(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, id string) (*models.Contract, error)
	List(ctx context.Context, filter ListContractsFilter) ([]models.Contract, int, error)
	Update(ctx context.Context, contract *models.Contract) error
	Delete(ctx context.Context, id string) error
}

// ListAuditLogsFilter narrows and pages an audit-log listing, newest first
type ListAuditLogsFilter struct {
	Action     string
	EntityType string
	UserID     string
	Page       int
	Limit      int
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter ListAuditLogsFilter) ([]models.AuditLog, int, error)
}

package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

// Repositories bundles the typed repositories bound to one tenant's
// connection pool. NewRepositories is a pure function of the pool with no
// hidden global state: handlers call it per request after the tenant
// connection is resolved.
type Repositories struct {
	Users     repositories.UserRepository
	Folders   repositories.FolderRepository
	Documents repositories.DocumentRepository
	Templates repositories.TemplateRepository
	Contracts repositories.ContractRepository
	Audit     repositories.AuditLogRepository
}

// NewRepositories binds all repositories to the given tenant pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(pool),
		Folders:   NewFolderRepository(pool),
		Documents: NewDocumentRepository(pool),
		Templates: NewTemplateRepository(pool),
		Contracts: NewContractRepository(pool),
		Audit:     NewAuditLogRepository(pool),
	}
}

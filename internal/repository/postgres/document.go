package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

const documentColumns = `id, title, description, filename, original_name, mime_type, size, storage_path,
	folder_id, created_by, updated_by, tags, version, status, shared_with, metadata, created_at, updated_at`

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository bound to one
// tenant's pool
func NewDocumentRepository(pool *pgxpool.Pool) repositories.DocumentRepository {
	return &PostgresDocumentRepository{pool: pool}
}

func scanDocument(row interface{ Scan(dest ...any) error }, doc *models.Document) error {
	return row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Description,
		&doc.Filename,
		&doc.OriginalName,
		&doc.MimeType,
		&doc.Size,
		&doc.StoragePath,
		&doc.FolderID,
		&doc.CreatedBy,
		&doc.UpdatedBy,
		&doc.Tags,
		&doc.Version,
		&doc.Status,
		&doc.SharedWith,
		&doc.Metadata,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
}

// Create inserts a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, title, description, filename, original_name, mime_type, size, storage_path,
			folder_id, created_by, updated_by, tags, version, status, shared_with, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.pool.Exec(ctx, query,
		doc.ID,
		doc.Title,
		doc.Description,
		doc.Filename,
		doc.OriginalName,
		doc.MimeType,
		doc.Size,
		doc.StoragePath,
		doc.FolderID,
		doc.CreatedBy,
		doc.UpdatedBy,
		doc.Tags,
		doc.Version,
		doc.Status,
		doc.SharedWith,
		doc.Metadata,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	var doc models.Document
	if err := scanDocument(r.pool.QueryRow(ctx, query, id), &doc); err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// List lists documents with filters and pagination, most recently updated
// first
func (r *PostgresDocumentRepository) List(ctx context.Context, filter repositories.ListDocumentsFilter) ([]models.Document, int, error) {
	where := `WHERE true`
	var args []any

	if filter.FolderID != nil {
		args = append(args, *filter.FolderID)
		where += fmt.Sprintf(` AND folder_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		where += fmt.Sprintf(` AND tags ?| $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM documents `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT `+documentColumns+` FROM documents %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := scanDocument(rows, &doc); err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, total, nil
}

// Update updates a document
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := `
		UPDATE documents
		SET title = $1, description = $2, folder_id = $3, updated_by = $4, tags = $5,
		    version = $6, status = $7, shared_with = $8, metadata = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := r.pool.Exec(ctx, query,
		doc.Title,
		doc.Description,
		doc.FolderID,
		doc.UpdatedBy,
		doc.Tags,
		doc.Version,
		doc.Status,
		doc.SharedWith,
		doc.Metadata,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", doc.ID)}
	}

	return nil
}

// Delete deletes a document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}

	return nil
}

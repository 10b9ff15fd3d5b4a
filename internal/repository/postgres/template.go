package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

const templateColumns = `id, name, description, type, content, variables, category, tags,
	created_by, updated_by, is_public, usage_count, created_at, updated_at`

// PostgresTemplateRepository implements the TemplateRepository interface
type PostgresTemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new template repository bound to one
// tenant's pool
func NewTemplateRepository(pool *pgxpool.Pool) repositories.TemplateRepository {
	return &PostgresTemplateRepository{pool: pool}
}

func scanTemplate(row interface{ Scan(dest ...any) error }, tmpl *models.Template) error {
	return row.Scan(
		&tmpl.ID,
		&tmpl.Name,
		&tmpl.Description,
		&tmpl.Type,
		&tmpl.Content,
		&tmpl.Variables,
		&tmpl.Category,
		&tmpl.Tags,
		&tmpl.CreatedBy,
		&tmpl.UpdatedBy,
		&tmpl.IsPublic,
		&tmpl.UsageCount,
		&tmpl.CreatedAt,
		&tmpl.UpdatedAt,
	)
}

// Create inserts a new template
func (r *PostgresTemplateRepository) Create(ctx context.Context, tmpl *models.Template) error {
	query := `
		INSERT INTO templates (id, name, description, type, content, variables, category, tags,
			created_by, updated_by, is_public, usage_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		tmpl.ID,
		tmpl.Name,
		tmpl.Description,
		tmpl.Type,
		tmpl.Content,
		tmpl.Variables,
		tmpl.Category,
		tmpl.Tags,
		tmpl.CreatedBy,
		tmpl.UpdatedBy,
		tmpl.IsPublic,
		tmpl.UsageCount,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}

	return nil
}

// GetByID retrieves a template by ID
func (r *PostgresTemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = $1`

	var tmpl models.Template
	if err := scanTemplate(r.pool.QueryRow(ctx, query, id), &tmpl); err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("template %s not found", id)}
		}
		return nil, fmt.Errorf("get template: %w", err)
	}

	return &tmpl, nil
}

// List lists templates with filters and pagination, most used first
func (r *PostgresTemplateRepository) List(ctx context.Context, filter repositories.ListTemplatesFilter) ([]models.Template, int, error) {
	where := `WHERE true`
	var args []any

	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM templates `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count templates: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT `+templateColumns+` FROM templates %s ORDER BY usage_count DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		var tmpl models.Template
		if err := scanTemplate(rows, &tmpl); err != nil {
			return nil, 0, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate templates: %w", err)
	}

	return templates, total, nil
}

// Update updates a template
func (r *PostgresTemplateRepository) Update(ctx context.Context, tmpl *models.Template) error {
	query := `
		UPDATE templates
		SET name = $1, description = $2, type = $3, content = $4, variables = $5, category = $6,
		    tags = $7, updated_by = $8, is_public = $9, usage_count = $10, updated_at = $11
		WHERE id = $12
	`

	result, err := r.pool.Exec(ctx, query,
		tmpl.Name,
		tmpl.Description,
		tmpl.Type,
		tmpl.Content,
		tmpl.Variables,
		tmpl.Category,
		tmpl.Tags,
		tmpl.UpdatedBy,
		tmpl.IsPublic,
		tmpl.UsageCount,
		tmpl.UpdatedAt,
		tmpl.ID,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("template %s not found", tmpl.ID)}
	}

	return nil
}

// Delete deletes a template
func (r *PostgresTemplateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("template %s not found", id)}
	}

	return nil
}

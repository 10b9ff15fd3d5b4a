package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

const contractColumns = `id, title, parties, content, template_id, status, value, currency,
	start_date, end_date, created_by, updated_by, audit_trail, tags, attachments, created_at, updated_at`

// PostgresContractRepository implements the ContractRepository interface
type PostgresContractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository creates a new contract repository bound to one
// tenant's pool
func NewContractRepository(pool *pgxpool.Pool) repositories.ContractRepository {
	return &PostgresContractRepository{pool: pool}
}

func scanContract(row interface{ Scan(dest ...any) error }, contract *models.Contract) error {
	return row.Scan(
		&contract.ID,
		&contract.Title,
		&contract.Parties,
		&contract.Content,
		&contract.TemplateID,
		&contract.Status,
		&contract.Value,
		&contract.Currency,
		&contract.StartDate,
		&contract.EndDate,
		&contract.CreatedBy,
		&contract.UpdatedBy,
		&contract.AuditTrail,
		&contract.Tags,
		&contract.Attachments,
		&contract.CreatedAt,
		&contract.UpdatedAt,
	)
}

// Create inserts a new contract
func (r *PostgresContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	query := `
		INSERT INTO contracts (id, title, parties, content, template_id, status, value, currency,
			start_date, end_date, created_by, updated_by, audit_trail, tags, attachments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.pool.Exec(ctx, query,
		contract.ID,
		contract.Title,
		contract.Parties,
		contract.Content,
		contract.TemplateID,
		contract.Status,
		contract.Value,
		contract.Currency,
		contract.StartDate,
		contract.EndDate,
		contract.CreatedBy,
		contract.UpdatedBy,
		contract.AuditTrail,
		contract.Tags,
		contract.Attachments,
		contract.CreatedAt,
		contract.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create contract: %w", err)
	}

	return nil
}

// GetByID retrieves a contract by ID
func (r *PostgresContractRepository) GetByID(ctx context.Context, id string) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`

	var contract models.Contract
	if err := scanContract(r.pool.QueryRow(ctx, query, id), &contract); err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("contract %s not found", id)}
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}

	return &contract, nil
}

// List lists contracts with filters and pagination, most recently updated
// first. Search also matches party names and emails inside the parties
// JSON.
func (r *PostgresContractRepository) List(ctx context.Context, filter repositories.ListContractsFilter) ([]models.Contract, int, error) {
	where := `WHERE true`
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (title ILIKE $%d OR EXISTS (
			SELECT 1 FROM jsonb_array_elements(parties) AS p
			WHERE p->>'name' ILIKE $%d OR p->>'email' ILIKE $%d
		))`, n, n, n)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM contracts `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contracts: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT `+contractColumns+` FROM contracts %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var contract models.Contract
		if err := scanContract(rows, &contract); err != nil {
			return nil, 0, fmt.Errorf("scan contract: %w", err)
		}
		contracts = append(contracts, contract)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contracts: %w", err)
	}

	return contracts, total, nil
}

// Update updates a contract
func (r *PostgresContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	query := `
		UPDATE contracts
		SET title = $1, parties = $2, content = $3, status = $4, value = $5, currency = $6,
		    start_date = $7, end_date = $8, updated_by = $9, audit_trail = $10, tags = $11,
		    attachments = $12, updated_at = $13
		WHERE id = $14
	`

	result, err := r.pool.Exec(ctx, query,
		contract.Title,
		contract.Parties,
		contract.Content,
		contract.Status,
		contract.Value,
		contract.Currency,
		contract.StartDate,
		contract.EndDate,
		contract.UpdatedBy,
		contract.AuditTrail,
		contract.Tags,
		contract.Attachments,
		contract.UpdatedAt,
		contract.ID,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("contract %s not found", contract.ID)}
	}

	return nil
}

// Delete deletes a contract
func (r *PostgresContractRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("contract %s not found", id)}
	}

	return nil
}

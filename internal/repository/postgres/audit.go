package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

const auditLogColumns = `id, action, entity_type, entity_id, user_id, user_email, details, ip_address, user_agent, ts`

// PostgresAuditLogRepository implements the AuditLogRepository interface
type PostgresAuditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository creates a new audit log repository bound to one
// tenant's pool
func NewAuditLogRepository(pool *pgxpool.Pool) repositories.AuditLogRepository {
	return &PostgresAuditLogRepository{pool: pool}
}

func scanAuditLog(row interface{ Scan(dest ...any) error }, entry *models.AuditLog) error {
	return row.Scan(
		&entry.ID,
		&entry.Action,
		&entry.EntityType,
		&entry.EntityID,
		&entry.UserID,
		&entry.UserEmail,
		&entry.Details,
		&entry.IPAddress,
		&entry.UserAgent,
		&entry.Timestamp,
	)
}

// Create inserts a new audit log entry
func (r *PostgresAuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, action, entity_type, entity_id, user_id, user_email, details, ip_address, user_agent, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.UserID,
		entry.UserEmail,
		entry.Details,
		entry.IPAddress,
		entry.UserAgent,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}

	return nil
}

// List lists audit log entries newest first with filters and pagination
func (r *PostgresAuditLogRepository) List(ctx context.Context, filter repositories.ListAuditLogsFilter) ([]models.AuditLog, int, error) {
	where := `WHERE true`
	var args []any

	if filter.Action != "" {
		args = append(args, filter.Action)
		where += fmt.Sprintf(` AND action = $%d`, len(args))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		where += fmt.Sprintf(` AND entity_type = $%d`, len(args))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM audit_logs `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT `+auditLogColumns+` FROM audit_logs %s ORDER BY ts DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		if err := scanAuditLog(rows, &entry); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit logs: %w", err)
	}

	return entries, total, nil
}

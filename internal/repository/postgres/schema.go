package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements is executed in order on first contact with a tenant
// database. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            uuid PRIMARY KEY,
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		name          text NOT NULL,
		role          text NOT NULL DEFAULT 'viewer',
		permissions   jsonb NOT NULL DEFAULT '[]',
		company       text NOT NULL,
		last_login    timestamptz,
		is_active     boolean NOT NULL DEFAULT true,
		avatar        text NOT NULL DEFAULT '',
		created_at    timestamptz NOT NULL DEFAULT now(),
		updated_at    timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS folders (
		id         uuid PRIMARY KEY,
		name       text NOT NULL,
		parent_id  uuid,
		path       text NOT NULL DEFAULT '/',
		color      text NOT NULL DEFAULT '#3b82f6',
		icon       text NOT NULL DEFAULT 'folder',
		created_by uuid,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS folders_root_name_key
		ON folders (name) WHERE parent_id IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS folders_parent_name_key
		ON folders (parent_id, name) WHERE parent_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS folders_parent_idx ON folders (parent_id)`,

	`CREATE TABLE IF NOT EXISTS documents (
		id            uuid PRIMARY KEY,
		title         text NOT NULL,
		description   text NOT NULL DEFAULT '',
		filename      text NOT NULL,
		original_name text NOT NULL,
		mime_type     text NOT NULL,
		size          bigint NOT NULL,
		storage_path  text NOT NULL DEFAULT '',
		folder_id     uuid,
		created_by    uuid,
		updated_by    uuid,
		tags          jsonb NOT NULL DEFAULT '[]',
		version       integer NOT NULL DEFAULT 1,
		status        text NOT NULL DEFAULT 'draft',
		shared_with   jsonb NOT NULL DEFAULT '[]',
		metadata      jsonb NOT NULL DEFAULT '{}',
		created_at    timestamptz NOT NULL DEFAULT now(),
		updated_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS documents_folder_idx ON documents (folder_id)`,
	`CREATE INDEX IF NOT EXISTS documents_status_idx ON documents (status)`,

	`CREATE TABLE IF NOT EXISTS templates (
		id          uuid PRIMARY KEY,
		name        text NOT NULL,
		description text NOT NULL DEFAULT '',
		type        text NOT NULL,
		content     text NOT NULL,
		variables   jsonb NOT NULL DEFAULT '[]',
		category    text NOT NULL DEFAULT 'General',
		tags        jsonb NOT NULL DEFAULT '[]',
		created_by  uuid,
		updated_by  uuid,
		is_public   boolean NOT NULL DEFAULT false,
		usage_count integer NOT NULL DEFAULT 0,
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS templates_type_idx ON templates (type)`,
	`CREATE INDEX IF NOT EXISTS templates_category_idx ON templates (category)`,

	`CREATE TABLE IF NOT EXISTS contracts (
		id          uuid PRIMARY KEY,
		title       text NOT NULL,
		parties     jsonb NOT NULL DEFAULT '[]',
		content     text NOT NULL,
		template_id uuid,
		status      text NOT NULL DEFAULT 'draft',
		value       numeric NOT NULL DEFAULT 0,
		currency    text NOT NULL DEFAULT 'USD',
		start_date  timestamptz,
		end_date    timestamptz,
		created_by  uuid,
		updated_by  uuid,
		audit_trail jsonb NOT NULL DEFAULT '[]',
		tags        jsonb NOT NULL DEFAULT '[]',
		attachments jsonb NOT NULL DEFAULT '[]',
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS contracts_status_idx ON contracts (status)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id          uuid PRIMARY KEY,
		action      text NOT NULL,
		entity_type text NOT NULL,
		entity_id   uuid,
		user_id     uuid,
		user_email  text NOT NULL DEFAULT '',
		details     jsonb NOT NULL DEFAULT '{}',
		ip_address  text NOT NULL DEFAULT '',
		user_agent  text NOT NULL DEFAULT '',
		ts          timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_ts_idx ON audit_logs (ts DESC)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_entity_idx ON audit_logs (entity_type, entity_id)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_action_idx ON audit_logs (action)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_user_idx ON audit_logs (user_id)`,
}

// EnsureSchema creates the tenant schema if it is not already present.
// Ran once per pool, on first open of a tenant database.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}

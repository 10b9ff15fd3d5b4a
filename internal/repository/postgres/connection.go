package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateConnectionPool creates a pgx connection pool for one tenant
// database and verifies it with a ping.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Pools are per tenant and live for the process lifetime, so keep
	// each one small.
	config.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// OpenTenantDatabase returns the open function the tenant registry uses.
// On first contact with a tenant the logical database may not exist yet
// (SQLSTATE 3D000); it is then created through the admin URL and the
// schema is bootstrapped before the pool is handed back.
func OpenTenantDatabase(adminURL string) func(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	return func(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
		pool, err := CreateConnectionPool(ctx, databaseURL)
		if err != nil && isPgDatabaseMissing(err) {
			name, nameErr := databaseNameFromURL(databaseURL)
			if nameErr != nil {
				return nil, nameErr
			}
			if createErr := createDatabase(ctx, adminURL, name); createErr != nil {
				return nil, createErr
			}
			pool, err = CreateConnectionPool(ctx, databaseURL)
		}
		if err != nil {
			return nil, err
		}

		if err := EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("bootstrap tenant schema: %w", err)
		}
		return pool, nil
	}
}

func databaseNameFromURL(databaseURL string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", fmt.Errorf("database url has no database name")
	}
	return name, nil
}

// createDatabase creates the tenant database through a short-lived admin
// connection. Losing the creation race to a concurrent open is not an
// error.
func createDatabase(ctx context.Context, adminURL, name string) error {
	conn, err := pgx.Connect(ctx, adminURL)
	if err != nil {
		return fmt.Errorf("connect admin database: %w", err)
	}
	defer conn.Close(ctx)

	// CREATE DATABASE does not accept bind parameters; the identifier is
	// quoted instead.
	_, err = conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{name}.Sanitize()))
	if err != nil && !isPgDuplicateDatabase(err) {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}

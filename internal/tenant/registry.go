// Package tenant resolves tenant names to isolated logical databases.
// Each tenant gets its own database on the shared server; the registry
// lazily opens and caches one connection handle per tenant key for the
// process lifetime.
package tenant

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
)

// DefaultDatabase is the logical database used when a tenant name
// normalizes to nothing.
const DefaultDatabase = "documaster_default"

// Conn is the minimal surface the registry needs from a tenant database
// handle. *pgxpool.Pool satisfies it directly.
type Conn interface {
	Ping(ctx context.Context) error
	Close()
}

// OpenFunc opens a connection to the given database URL.
type OpenFunc[C Conn] func(ctx context.Context, databaseURL string) (C, error)

// Normalize folds a raw tenant name into a tenant key: lower-cased with
// all non-alphanumeric characters removed. Names differing only in case
// or punctuation intentionally share a key.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DatabaseName returns the logical database name for a tenant key. The
// mapping is deterministic: same key, same database, always.
func DatabaseName(key string) string {
	if key == "" {
		return DefaultDatabase
	}
	return "documaster_" + key
}

type entry[C Conn] struct {
	conn C
	stop chan struct{}
}

// Registry owns the tenant-key -> connection cache. At most one live
// connection per tenant key exists at any time; creation is serialized
// per key so concurrent first requests for a tenant share a single open.
type Registry[C Conn] struct {
	baseURL       string
	open          OpenFunc[C]
	checkInterval time.Duration // 0 disables health monitoring
	logger        *slog.Logger

	group singleflight.Group
	mu    sync.Mutex
	conns map[string]*entry[C]
}

// NewRegistry creates a registry opening tenant databases relative to
// baseURL (scheme, host and credentials are kept; only the database name
// changes per tenant). When checkInterval is positive, each connection is
// pinged on that interval and evicted from the cache on failure so the
// next Resolve reopens it.
func NewRegistry[C Conn](baseURL string, open OpenFunc[C], checkInterval time.Duration, logger *slog.Logger) *Registry[C] {
	return &Registry[C]{
		baseURL:       baseURL,
		open:          open,
		checkInterval: checkInterval,
		logger:        logger,
		conns:         make(map[string]*entry[C]),
	}
}

// DatabaseURL derives the tenant's database URL from the registry base
// URL and the normalized tenant key.
func (r *Registry[C]) DatabaseURL(key string) (string, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base database url: %w", err)
	}
	u.Path = "/" + DatabaseName(key)
	return u.String(), nil
}

// Resolve returns the live connection for the tenant, opening and caching
// it on first use. A failed open is reported as a TenantConnectionError
// and is not cached, so a later call retries cleanly.
func (r *Registry[C]) Resolve(ctx context.Context, tenantName string) (C, error) {
	key := Normalize(tenantName)

	r.mu.Lock()
	if e, ok := r.conns[key]; ok {
		conn := e.conn
		r.mu.Unlock()
		return conn, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(key, func() (any, error) {
		// An earlier flight may have populated the cache between the
		// lookup above and this call.
		r.mu.Lock()
		if e, ok := r.conns[key]; ok {
			conn := e.conn
			r.mu.Unlock()
			return conn, nil
		}
		r.mu.Unlock()

		databaseURL, err := r.DatabaseURL(key)
		if err != nil {
			return nil, &domain.TenantConnectionError{Tenant: tenantName, Err: err}
		}

		conn, err := r.open(ctx, databaseURL)
		if err != nil {
			return nil, &domain.TenantConnectionError{Tenant: tenantName, Err: err}
		}

		e := &entry[C]{conn: conn, stop: make(chan struct{})}
		r.mu.Lock()
		r.conns[key] = e
		r.mu.Unlock()

		if r.checkInterval > 0 {
			go r.monitor(key, e)
		}

		r.logger.Info("tenant database connected",
			"tenant", key,
			"database", DatabaseName(key),
		)
		return conn, nil
	})
	if err != nil {
		var zero C
		return zero, err
	}
	return v.(C), nil
}

// monitor pings the connection until it fails, then closes it and evicts
// the cache entry so the next Resolve opens a fresh connection.
func (r *Registry[C]) monitor(key string, e *entry[C]) {
	ticker := time.NewTicker(r.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.checkInterval)
			err := e.conn.Ping(ctx)
			cancel()
			if err == nil {
				continue
			}

			r.logger.Warn("tenant database connection lost",
				"tenant", key,
				"error", err,
			)

			r.mu.Lock()
			// Only evict if this entry is still the cached one; Close
			// may already have replaced or removed it.
			if cur, ok := r.conns[key]; ok && cur == e {
				delete(r.conns, key)
			}
			r.mu.Unlock()

			e.conn.Close()
			return
		}
	}
}

// Close closes and evicts the connection for one tenant. Closing an
// already-absent entry is a no-op.
func (r *Registry[C]) Close(tenantName string) {
	key := Normalize(tenantName)

	r.mu.Lock()
	e, ok := r.conns[key]
	if ok {
		delete(r.conns, key)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	close(e.stop)
	e.conn.Close()

	r.logger.Info("tenant database closed", "tenant", key)
}

// CloseAll closes every cached connection; used at process shutdown.
func (r *Registry[C]) CloseAll() {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]*entry[C])
	r.mu.Unlock()

	for key, e := range conns {
		close(e.stop)
		e.conn.Close()
		r.logger.Info("tenant database closed", "tenant", key)
	}
}

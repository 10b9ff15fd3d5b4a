package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/repository/postgres"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/tenant"
)

// CompanyHeader carries the tenant name on every API request.
const CompanyHeader = "x-company-name"

// TenantContext is what downstream handlers see for the resolved tenant.
type TenantContext struct {
	Name  string
	Key   string
	Repos *postgres.Repositories
}

type tenantContextKey struct{}

// TenantFrom retrieves the resolved tenant from the request context,
// nil when tenant resolution did not run
func TenantFrom(r *http.Request) *TenantContext {
	tc, _ := r.Context().Value(tenantContextKey{}).(*TenantContext)
	return tc
}

// Tenant middleware resolves the x-company-name header to a tenant
// database connection and attaches per-request repositories. Requests
// without the header are rejected except for the health endpoint.
func Tenant(registry *tenant.Registry[*pgxpool.Pool], logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/health" {
				next.ServeHTTP(w, r)
				return
			}

			name := r.Header.Get(CompanyHeader)
			if name == "" {
				httputil.RespondError(w, http.StatusBadRequest, "missing "+CompanyHeader+" header")
				return
			}

			pool, err := registry.Resolve(r.Context(), name)
			if err != nil {
				logger.Error("tenant resolution failed", "tenant", name, "error", err)
				httputil.RespondError(w, http.StatusInternalServerError, "tenant database unavailable")
				return
			}

			tc := &TenantContext{
				Name:  name,
				Key:   tenant.Normalize(name),
				Repos: postgres.NewRepositories(pool),
			}

			ctx := context.WithValue(r.Context(), tenantContextKey{}, tc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

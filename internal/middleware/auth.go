package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/auth"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
)

// publicPaths are reachable without a bearer token.
var publicPaths = map[string]bool{
	"/api/health":     true,
	"/api/auth/login": true,
}

// Auth middleware validates the Authorization bearer token and stores
// the verified claims in the request context. Public paths pass through
// untouched.
func Auth(issuer *auth.TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithClaims(r, claims))
		})
	}
}

// RequireAdmin wraps a handler so only admins can reach it
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := httputil.GetClaims(r)
		if claims == nil || !claims.IsAdmin() {
			httputil.RespondError(w, http.StatusForbidden, "admin role required")
			return
		}
		next(w, r)
	}
}

// RequireEditor wraps a handler so only admins and editors can reach it
func RequireEditor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := httputil.GetClaims(r)
		if claims == nil || !claims.CanEdit() {
			httputil.RespondError(w, http.StatusForbidden, "editor role required")
			return
		}
		next(w, r)
	}
}

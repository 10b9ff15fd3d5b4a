package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
)

// Recovery middleware turns handler panics into 500 responses. The
// panic value and stack are logged; the client only sees a generic
// internal error.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					logger.Error("panic recovered",
						"panic", v,
						"method", r.Method,
						"path", r.URL.Path,
						"remote_addr", r.RemoteAddr,
						"stack", string(debug.Stack()),
					)

					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

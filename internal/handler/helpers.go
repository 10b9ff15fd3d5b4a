package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/middleware"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/service"
)

// paginationMeta mirrors the list response envelope of the API.
type paginationMeta struct {
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

func newPaginationMeta(total, page, limit int) paginationMeta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return paginationMeta{
		Total:       total,
		TotalPages:  pages,
		CurrentPage: page,
	}
}

// actorFrom builds the audit actor for the current request.
func actorFrom(r *http.Request) service.Actor {
	actor := service.Actor{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
	if claims := httputil.GetClaims(r); claims != nil {
		actor.UserID = claims.Subject
		actor.Email = claims.Email
	}
	return actor
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// tenantFrom returns the resolved tenant, responding 500 when the
// middleware did not run.
func tenantFrom(w http.ResponseWriter, r *http.Request) (*middleware.TenantContext, bool) {
	tc := middleware.TenantFrom(r)
	if tc == nil {
		httputil.RespondError(w, http.StatusInternalServerError, "tenant context missing")
		return nil, false
	}
	return tc, true
}

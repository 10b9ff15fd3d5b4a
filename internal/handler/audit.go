package handler

import (
	"log/slog"
	"net/http"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/service"
)

// AuditHandler handles audit log requests, admin only
type AuditHandler struct {
	logger *slog.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(logger *slog.Logger) *AuditHandler {
	return &AuditHandler{logger: logger}
}

// List lists audit entries newest first
// GET /api/audit-logs
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	p := httputil.ParsePagination(r)
	filter := repositories.ListAuditLogsFilter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		UserID:     r.URL.Query().Get("userId"),
		Page:       p.Page,
		Limit:      p.Limit,
	}

	recorder := service.NewAuditRecorder(tc.Repos.Audit, h.logger)
	entries, total, err := recorder.List(r.Context(), filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"logs":       entries,
		"pagination": newPaginationMeta(total, p.Page, p.Limit),
	})
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/middleware"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/service"
)

// TemplateHandler handles template requests
type TemplateHandler struct {
	logger *slog.Logger
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{logger: logger}
}

func (h *TemplateHandler) service(tc *middleware.TenantContext) *service.TemplateService {
	return service.NewTemplateService(
		tc.Repos.Templates,
		service.NewAuditRecorder(tc.Repos.Audit, h.logger),
		h.logger,
	)
}

// Create creates a template
// POST /api/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.TemplateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tmpl, err := h.service(tc).Create(r.Context(), actorFrom(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]any{
		"message":  "template created",
		"template": tmpl,
	})
}

// List lists templates with filters and pagination
// GET /api/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	p := httputil.ParsePagination(r)
	filter := repositories.ListTemplatesFilter{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Page:     p.Page,
		Limit:    p.Limit,
	}

	templates, total, err := h.service(tc).List(r.Context(), filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if templates == nil {
		templates = []models.Template{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"templates":  templates,
		"pagination": newPaginationMeta(total, p.Page, p.Limit),
	})
}

// Get retrieves a template by ID
// GET /api/templates/{id}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	tmpl, err := h.service(tc).Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"template": tmpl})
}

// Update replaces a template
// PUT /api/templates/{id}
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.TemplateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tmpl, err := h.service(tc).Update(r.Context(), actorFrom(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"message":  "template updated",
		"template": tmpl,
	})
}

// Delete removes a template
// DELETE /api/templates/{id}
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	if err := h.service(tc).Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"message": "template deleted"})
}

// Use renders a template with the given variable values
// POST /api/templates/{id}/use
func (h *TemplateHandler) Use(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req struct {
		Variables map[string]string `json:"variables"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, tmpl, err := h.service(tc).Use(r.Context(), actorFrom(r), r.PathValue("id"), req.Variables)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"content":  content,
		"template": tmpl,
	})
}

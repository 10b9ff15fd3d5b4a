package handler

import (
	"log/slog"
	"net/http"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/middleware"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/service"
)

// FolderHandler handles folder hierarchy requests
type FolderHandler struct {
	logger *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(logger *slog.Logger) *FolderHandler {
	return &FolderHandler{logger: logger}
}

func (h *FolderHandler) service(tc *middleware.TenantContext) *service.FolderService {
	return service.NewFolderService(
		tc.Repos.Folders,
		service.NewAuditRecorder(tc.Repos.Audit, h.logger),
		h.logger,
	)
}

// Create creates a new folder
// POST /api/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.service(tc).Create(r.Context(), actorFrom(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "folder created",
		"folder":  folder,
	})
}

// List lists folders flat. Without parentId every folder is returned,
// parentId=null returns root folders, any other value returns that
// folder's children.
// GET /api/folders
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var parentID *string
	if r.URL.Query().Has("parentId") {
		v := r.URL.Query().Get("parentId")
		if v == "null" {
			v = ""
		}
		parentID = &v
	}

	folders, err := h.service(tc).List(r.Context(), parentID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if folders == nil {
		folders = []models.Folder{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"folders": folders})
}

// Tree returns the full folder hierarchy as nested nodes
// GET /api/folders/tree
func (h *FolderHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	tree, err := h.service(tc).Tree(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"tree": tree})
}

// Get retrieves a folder with its immediate children
// GET /api/folders/{id}
func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	folder, children, err := h.service(tc).Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if children == nil {
		children = []models.Folder{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"folder":   folder,
		"children": children,
	})
}

// Update renames, moves, or restyles a folder
// PUT /api/folders/{id}
func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.service(tc).Update(r.Context(), actorFrom(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "folder updated",
		"folder":  folder,
	})
}

// Delete removes an empty folder
// DELETE /api/folders/{id}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	if err := h.service(tc).Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"message": "folder deleted"})
}

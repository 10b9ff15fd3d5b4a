package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/middleware"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/service"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/storage"
)

// DocumentHandler handles document upload and metadata requests
type DocumentHandler struct {
	store          *storage.DiskStore
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(store *storage.DiskStore, maxUploadBytes int64, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		store:          store,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *DocumentHandler) service(tc *middleware.TenantContext) *service.DocumentService {
	return service.NewDocumentService(
		tc.Repos.Documents,
		h.store,
		service.NewAuditRecorder(tc.Repos.Audit, h.logger),
		h.logger,
	)
}

// Upload stores a multipart file upload with its metadata
// POST /api/documents
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	req := &service.UploadRequest{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		File:         file,
	}
	if v := r.FormValue("folderId"); v != "" {
		req.FolderID = &v
	}
	if v := r.FormValue("tags"); v != "" {
		req.Tags = splitTags(v)
	}

	doc, err := h.service(tc).Upload(r.Context(), actorFrom(r), tc.Key, req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]any{
		"message":  "document uploaded",
		"document": doc,
	})
}

// List lists documents with filters and pagination
// GET /api/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	p := httputil.ParsePagination(r)
	filter := repositories.ListDocumentsFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Page:   p.Page,
		Limit:  p.Limit,
	}
	if v := r.URL.Query().Get("folderId"); v != "" {
		filter.FolderID = &v
	}
	if v := r.URL.Query().Get("tags"); v != "" {
		filter.Tags = splitTags(v)
	}

	docs, total, err := h.service(tc).List(r.Context(), filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"documents":  docs,
		"pagination": newPaginationMeta(total, p.Page, p.Limit),
	})
}

// Get retrieves a document's metadata
// GET /api/documents/{id}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	doc, err := h.service(tc).Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"document": doc})
}

// Download streams the stored file back to the client
// GET /api/documents/{id}/download
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	doc, f, err := h.service(tc).Download(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.OriginalName+`"`)
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Warn("download interrupted", "document_id", doc.ID, "error", err)
	}
}

// Update changes a document's metadata
// PUT /api/documents/{id}
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.service(tc).Update(r.Context(), actorFrom(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"message":  "document updated",
		"document": doc,
	})
}

// Delete removes a document and its stored file
// DELETE /api/documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	if err := h.service(tc).Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"message": "document deleted"})
}

func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

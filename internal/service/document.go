package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/storage"
)

// DocumentService manages uploaded documents and their files.
type DocumentService struct {
	documents repositories.DocumentRepository
	store     *storage.DiskStore
	audit     *AuditRecorder
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documents repositories.DocumentRepository,
	store *storage.DiskStore,
	audit *AuditRecorder,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		documents: documents,
		store:     store,
		audit:     audit,
		logger:    logger,
	}
}

// UploadRequest carries one file upload plus its metadata fields.
type UploadRequest struct {
	Title        string
	Description  string
	FolderID     *string
	Tags         []string
	OriginalName string
	MimeType     string
	Size         int64
	File         io.Reader
}

// UpdateDocumentRequest carries metadata changes. FolderID uses
// tri-state presence so a document can be moved to the root with null.
type UpdateDocumentRequest struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	FolderID    httputil.OptionalString `json:"folderId"`
	Tags        *[]string               `json:"tags"`
	Status      *string                 `json:"status"`
}

// Upload stores the file under the tenant's upload directory and
// creates the document record.
func (s *DocumentService) Upload(ctx context.Context, actor Actor, tenantKey string, req *UploadRequest) (*models.Document, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = req.OriginalName
	}
	if err := validation.Validate(title, validation.Required, validation.Length(1, 255)); err != nil {
		return nil, &domain.ValidationError{Message: "title must be between 1 and 255 characters"}
	}

	filename := storage.GenerateFilename("file", req.OriginalName)
	storagePath, err := s.store.Save(tenantKey, req.MimeType, filename, req.File)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &models.Document{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  req.Description,
		Filename:     filename,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		StoragePath:  storagePath,
		FolderID:     req.FolderID,
		CreatedBy:    actor.UserID,
		Tags:         req.Tags,
		Version:      1,
		Status:       models.DocumentStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.SharedWith == nil {
		doc.SharedWith = []models.DocumentShare{}
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]string{}
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		// Keep disk and database consistent when the insert fails
		if rmErr := s.store.Remove(storagePath); rmErr != nil {
			s.logger.Warn("orphaned upload left on disk", "path", storagePath, "error", rmErr)
		}
		return nil, err
	}

	s.logger.Info("document uploaded",
		"id", doc.ID,
		"title", doc.Title,
		"size", doc.Size,
		"mime_type", doc.MimeType,
	)
	s.audit.Record(ctx, actor, models.ActionCreate, models.EntityDocument, &doc.ID, map[string]any{"title": doc.Title})

	return doc, nil
}

// List lists documents with filters and pagination.
func (s *DocumentService) List(ctx context.Context, filter repositories.ListDocumentsFilter) ([]models.Document, int, error) {
	return s.documents.List(ctx, filter)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	return s.documents.GetByID(ctx, id)
}

// Download opens the stored file for a document and records the access.
// The caller must close the returned file.
func (s *DocumentService) Download(ctx context.Context, actor Actor, id string) (*models.Document, *os.File, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.store.Open(doc.StoragePath)
	if err != nil {
		return nil, nil, err
	}

	s.audit.Record(ctx, actor, models.ActionDownload, models.EntityDocument, &doc.ID, map[string]any{"title": doc.Title})

	return doc, f, nil
}

// Update changes document metadata. The stored file is immutable, a new
// version requires a new upload.
func (s *DocumentService) Update(ctx context.Context, actor Actor, id string, req *UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validation.Validate(title, validation.Required, validation.Length(1, 255)); err != nil {
			return nil, &domain.ValidationError{Message: "title must be between 1 and 255 characters"}
		}
		doc.Title = title
	}
	if req.Description != nil {
		doc.Description = *req.Description
	}
	if req.FolderID.Present {
		doc.FolderID = req.FolderID.Value
	}
	if req.Tags != nil {
		doc.Tags = *req.Tags
	}
	if req.Status != nil {
		if !models.ValidDocumentStatus(*req.Status) {
			return nil, &domain.ValidationError{Message: "status must be draft, published, or archived"}
		}
		doc.Status = *req.Status
	}

	doc.UpdatedBy = &actor.UserID
	doc.UpdatedAt = time.Now()

	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document updated", "id", doc.ID, "title", doc.Title, "status", doc.Status)
	s.audit.Record(ctx, actor, models.ActionUpdate, models.EntityDocument, &doc.ID, map[string]any{"title": doc.Title})

	return doc, nil
}

// Delete removes a document record and its stored file.
func (s *DocumentService) Delete(ctx context.Context, actor Actor, id string) error {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.Remove(doc.StoragePath); err != nil {
		s.logger.Warn("failed to remove stored file", "path", doc.StoragePath, "error", err)
	}

	s.logger.Info("document deleted", "id", id, "title", doc.Title)
	s.audit.Record(ctx, actor, models.ActionDelete, models.EntityDocument, &id, map[string]any{"title": doc.Title})

	return nil
}

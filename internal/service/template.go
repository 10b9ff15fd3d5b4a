package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

// TemplateService manages reusable document and contract templates.
type TemplateService struct {
	templates repositories.TemplateRepository
	audit     *AuditRecorder
	logger    *slog.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(templates repositories.TemplateRepository, audit *AuditRecorder, logger *slog.Logger) *TemplateService {
	return &TemplateService{
		templates: templates,
		audit:     audit,
		logger:    logger,
	}
}

// TemplateRequest carries create/update input for a template.
type TemplateRequest struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Type        string                    `json:"type"`
	Content     string                    `json:"content"`
	Variables   []models.TemplateVariable `json:"variables"`
	Category    string                    `json:"category"`
	Tags        []string                  `json:"tags"`
	IsPublic    bool                      `json:"isPublic"`
}

func (r *TemplateRequest) validate() error {
	return validation.Errors{
		"name":    validation.Validate(r.Name, validation.Required, validation.Length(1, 255)),
		"type":    validation.Validate(r.Type, validation.Required, validation.In(models.TemplateTypeDocument, models.TemplateTypeContract)),
		"content": validation.Validate(r.Content, validation.Required),
	}.Filter()
}

// Create creates a template.
func (s *TemplateService) Create(ctx context.Context, actor Actor, req *TemplateRequest) (*models.Template, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	now := time.Now()
	tmpl := &models.Template{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Content:     req.Content,
		Variables:   req.Variables,
		Category:    req.Category,
		Tags:        req.Tags,
		CreatedBy:   actor.UserID,
		IsPublic:    req.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tmpl.Variables == nil {
		tmpl.Variables = []models.TemplateVariable{}
	}
	if tmpl.Tags == nil {
		tmpl.Tags = []string{}
	}

	if err := s.templates.Create(ctx, tmpl); err != nil {
		return nil, err
	}

	s.logger.Info("template created", "id", tmpl.ID, "name", tmpl.Name, "type", tmpl.Type)
	s.audit.Record(ctx, actor, models.ActionCreate, models.EntityTemplate, &tmpl.ID, map[string]any{"name": tmpl.Name})

	return tmpl, nil
}

// List lists templates with filters and pagination.
func (s *TemplateService) List(ctx context.Context, filter repositories.ListTemplatesFilter) ([]models.Template, int, error) {
	return s.templates.List(ctx, filter)
}

// Get retrieves a template by ID.
func (s *TemplateService) Get(ctx context.Context, id string) (*models.Template, error) {
	return s.templates.GetByID(ctx, id)
}

// Update replaces a template's editable fields.
func (s *TemplateService) Update(ctx context.Context, actor Actor, id string, req *TemplateRequest) (*models.Template, error) {
	tmpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := req.validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	tmpl.Name = req.Name
	tmpl.Description = req.Description
	tmpl.Type = req.Type
	tmpl.Content = req.Content
	tmpl.Variables = req.Variables
	tmpl.Category = req.Category
	tmpl.Tags = req.Tags
	tmpl.IsPublic = req.IsPublic
	tmpl.UpdatedBy = &actor.UserID
	tmpl.UpdatedAt = time.Now()

	if err := s.templates.Update(ctx, tmpl); err != nil {
		return nil, err
	}

	s.logger.Info("template updated", "id", tmpl.ID, "name", tmpl.Name)
	s.audit.Record(ctx, actor, models.ActionUpdate, models.EntityTemplate, &tmpl.ID, map[string]any{"name": tmpl.Name})

	return tmpl, nil
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, actor Actor, id string) error {
	tmpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.templates.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("template deleted", "id", id, "name", tmpl.Name)
	s.audit.Record(ctx, actor, models.ActionDelete, models.EntityTemplate, &id, map[string]any{"name": tmpl.Name})

	return nil
}

// Use renders a template by substituting {{variable}} placeholders and
// increments its usage counter. Missing required variables are
// rejected, optional ones fall back to their default value.
func (s *TemplateService) Use(ctx context.Context, actor Actor, id string, values map[string]string) (string, *models.Template, error) {
	tmpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}

	content := tmpl.Content
	for _, v := range tmpl.Variables {
		value, ok := values[v.Name]
		if !ok || value == "" {
			if v.Required && v.DefaultValue == "" {
				return "", nil, &domain.ValidationError{Message: "missing required variable: " + v.Name}
			}
			value = v.DefaultValue
		}
		content = strings.ReplaceAll(content, "{{"+v.Name+"}}", value)
	}

	tmpl.UsageCount++
	tmpl.UpdatedAt = time.Now()
	if err := s.templates.Update(ctx, tmpl); err != nil {
		s.logger.Warn("failed to increment template usage", "id", tmpl.ID, "error", err)
	}

	s.audit.Record(ctx, actor, models.ActionRead, models.EntityTemplate, &tmpl.ID, map[string]any{"name": tmpl.Name, "used": true})

	return content, tmpl, nil
}

package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
)

func newTestTemplateService() *TemplateService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	audit := NewAuditRecorder(&fakeAuditRepo{}, logger)
	return NewTemplateService(newFakeTemplateRepo(), audit, logger)
}

func TestTemplateUseSubstitution(t *testing.T) {
	svc := newTestTemplateService()
	ctx := context.Background()
	actor := testActor()

	tmpl, err := svc.Create(ctx, actor, &TemplateRequest{
		Name:    "NDA",
		Type:    models.TemplateTypeContract,
		Content: "This agreement is between {{company}} and {{counterparty}}, effective {{date}}.",
		Variables: []models.TemplateVariable{
			{Name: "company", Required: true},
			{Name: "counterparty", Required: true},
			{Name: "date", DefaultValue: "upon signature"},
		},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	content, used, err := svc.Use(ctx, actor, tmpl.ID, map[string]string{
		"company":      "Acme Corp",
		"counterparty": "Widget Co",
	})
	if err != nil {
		t.Fatalf("use template: %v", err)
	}

	want := "This agreement is between Acme Corp and Widget Co, effective upon signature."
	if content != want {
		t.Errorf("rendered content = %q, want %q", content, want)
	}
	if used.UsageCount != 1 {
		t.Errorf("usage count = %d, want 1", used.UsageCount)
	}
}

func TestTemplateUseMissingRequiredVariable(t *testing.T) {
	svc := newTestTemplateService()
	ctx := context.Background()
	actor := testActor()

	tmpl, err := svc.Create(ctx, actor, &TemplateRequest{
		Name:      "Offer Letter",
		Type:      models.TemplateTypeDocument,
		Content:   "Dear {{name}},",
		Variables: []models.TemplateVariable{{Name: "name", Required: true}},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	if _, _, err := svc.Use(ctx, actor, tmpl.ID, nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestTemplateCreateValidation(t *testing.T) {
	svc := newTestTemplateService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  TemplateRequest
	}{
		{"missing name", TemplateRequest{Type: models.TemplateTypeDocument, Content: "x"}},
		{"missing content", TemplateRequest{Name: "T", Type: models.TemplateTypeDocument}},
		{"bad type", TemplateRequest{Name: "T", Type: "spreadsheet", Content: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, testActor(), &tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

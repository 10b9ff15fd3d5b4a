package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

// Actor identifies who performed an operation, for audit entries.
type Actor struct {
	UserID    string
	Email     string
	IPAddress string
	UserAgent string
}

// AuditRecorder writes audit entries for mutations. Recording is best
// effort, a failed write is logged and never fails the operation it
// describes.
type AuditRecorder struct {
	repo   repositories.AuditLogRepository
	logger *slog.Logger
}

// NewAuditRecorder creates an audit recorder
func NewAuditRecorder(repo repositories.AuditLogRepository, logger *slog.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, logger: logger}
}

// Record writes one audit entry for an action by an actor.
func (a *AuditRecorder) Record(ctx context.Context, actor Actor, action, entityType string, entityID *string, details map[string]any) {
	entry := &models.AuditLog{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserEmail:  actor.Email,
		Details:    details,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
		Timestamp:  time.Now(),
	}
	if actor.UserID != "" {
		entry.UserID = &actor.UserID
	}

	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Warn("audit log write failed",
			"action", action,
			"entity_type", entityType,
			"error", err,
		)
	}
}

// List returns audit entries newest first.
func (a *AuditRecorder) List(ctx context.Context, filter repositories.ListAuditLogsFilter) ([]models.AuditLog, int, error) {
	return a.repo.List(ctx, filter)
}

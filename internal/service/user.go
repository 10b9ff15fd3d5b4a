package service

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/auth"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

// UserService manages user accounts within one tenant.
type UserService struct {
	users  repositories.UserRepository
	perms  *auth.PermissionRegistry
	audit  *AuditRecorder
	logger *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	users repositories.UserRepository,
	perms *auth.PermissionRegistry,
	audit *AuditRecorder,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		perms:  perms,
		audit:  audit,
		logger: logger,
	}
}

// UpdateUserRequest carries profile and role changes.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
	Avatar   *string `json:"avatar"`
}

// List lists active users with filters and pagination.
func (s *UserService) List(ctx context.Context, filter repositories.ListUsersFilter) ([]models.User, int, error) {
	return s.users.List(ctx, filter)
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update changes a user's profile, role, or active flag. Admins cannot
// demote or deactivate themselves.
func (s *UserService) Update(ctx context.Context, actor Actor, id string, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validation.Validate(*req.Name, validation.Required, validation.Length(1, 100)); err != nil {
			return nil, &domain.ValidationError{Message: "name must be between 1 and 100 characters"}
		}
		user.Name = *req.Name
	}

	if req.Role != nil && *req.Role != user.Role {
		if !models.ValidRole(*req.Role) {
			return nil, &domain.ValidationError{Message: "role must be admin, editor, or viewer"}
		}
		if id == actor.UserID {
			return nil, &domain.ForbiddenError{Message: "you cannot change your own role"}
		}
		user.Role = *req.Role
		user.Permissions = s.perms.ForRole(*req.Role)
	}

	if req.IsActive != nil && *req.IsActive != user.IsActive {
		if id == actor.UserID {
			return nil, &domain.ForbiddenError{Message: "you cannot deactivate your own account"}
		}
		user.IsActive = *req.IsActive
	}

	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", user.ID, "role", user.Role, "is_active", user.IsActive)
	s.audit.Record(ctx, actor, models.ActionUpdate, models.EntityUser, &user.ID, map[string]any{"email": user.Email})

	return user, nil
}

// Delete removes a user account. Self-deletion is rejected.
func (s *UserService) Delete(ctx context.Context, actor Actor, id string) error {
	if id == actor.UserID {
		return &domain.ForbiddenError{Message: "you cannot delete your own account"}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", id, "email", user.Email)
	s.audit.Record(ctx, actor, models.ActionDelete, models.EntityUser, &id, map[string]any{"email": user.Email})

	return nil
}

// ResetPassword sets a new password for a user without requiring the
// old one. Restricted to admins at the routing layer.
func (s *UserService) ResetPassword(ctx context.Context, actor Actor, id, newPassword string) error {
	if err := validation.Validate(newPassword, validation.Required, validation.Length(8, 128)); err != nil {
		return &domain.ValidationError{Message: "password must be between 8 and 128 characters"}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password reset", "user_id", user.ID, "by", actor.UserID)
	s.audit.Record(ctx, actor, models.ActionUpdate, models.EntityUser, &user.ID, map[string]any{"change": "password_reset"})

	return nil
}

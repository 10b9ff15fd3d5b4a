package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/auth"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

// AuthService handles login, registration, and password changes.
type AuthService struct {
	users  repositories.UserRepository
	issuer *auth.TokenIssuer
	perms  *auth.PermissionRegistry
	audit  *AuditRecorder
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	issuer *auth.TokenIssuer,
	perms *auth.PermissionRegistry,
	audit *AuditRecorder,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		issuer: issuer,
		perms:  perms,
		audit:  audit,
		logger: logger,
	}
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries new user input.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ChangePasswordRequest carries a password change for the current user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login verifies credentials and issues a session token. Inactive
// accounts and bad credentials both come back as ErrUnauthorized so the
// response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, actor Actor, company string, req *LoginRequest) (string, *models.User, error) {
	if req.Email == "" || req.Password == "" {
		return "", nil, &domain.ValidationError{Message: "email and password are required"}
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, err
	}

	if !user.IsActive {
		s.logger.Warn("login attempt on inactive account", "email", user.Email)
		return "", nil, domain.ErrUnauthorized
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	user.Company = company
	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	actor.UserID = user.ID
	actor.Email = user.Email
	s.audit.Record(ctx, actor, models.ActionLogin, models.EntityAuth, &user.ID, map[string]any{"email": user.Email})

	s.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)

	return token, user, nil
}

// Register creates a new user account. Role defaults to viewer, the
// permission set is derived from the role catalog.
func (s *AuthService) Register(ctx context.Context, actor Actor, company string, req *RegisterRequest) (*models.User, error) {
	if req.Role == "" {
		req.Role = models.RoleViewer
	}

	err := validation.Errors{
		"email":    validation.Validate(req.Email, validation.Required, is.Email),
		"password": validation.Validate(req.Password, validation.Required, validation.Length(8, 128)),
		"name":     validation.Validate(req.Name, validation.Required, validation.Length(1, 100)),
		"role":     validation.Validate(req.Role, validation.By(roleRule)),
	}.Filter()
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		Permissions:  s.perms.ForRole(req.Role),
		Company:      company,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email, "role", user.Role)
	s.audit.Record(ctx, actor, models.ActionCreate, models.EntityUser, &user.ID, map[string]any{"email": user.Email, "role": user.Role})

	return user, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(ctx context.Context, actor Actor, userID string, req *ChangePasswordRequest) error {
	if err := validation.Validate(req.NewPassword, validation.Required, validation.Length(8, 128)); err != nil {
		return &domain.ValidationError{Message: "new password must be between 8 and 128 characters"}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := auth.CheckPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return &domain.UnauthorizedError{Message: "current password is incorrect"}
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", user.ID)
	s.audit.Record(ctx, actor, models.ActionUpdate, models.EntityAuth, &user.ID, map[string]any{"change": "password"})

	return nil
}

// Me returns the current user's profile.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func roleRule(value any) error {
	role, _ := value.(string)
	if !models.ValidRole(role) {
		return errors.New("role must be admin, editor, or viewer")
	}
	return nil
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/auth"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/middleware"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/service"
)

// AuthHandler handles login, registration, and profile requests
type AuthHandler struct {
	issuer *auth.TokenIssuer
	perms  *auth.PermissionRegistry
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(issuer *auth.TokenIssuer, perms *auth.PermissionRegistry, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		issuer: issuer,
		perms:  perms,
		logger: logger,
	}
}

func (h *AuthHandler) service(tc *middleware.TenantContext) *service.AuthService {
	return service.NewAuthService(
		tc.Repos.Users,
		h.issuer,
		h.perms,
		service.NewAuditRecorder(tc.Repos.Audit, h.logger),
		h.logger,
	)
}

// Login authenticates a user and returns a session token
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.service(tc).Login(r.Context(), actorFrom(r), tc.Name, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}

// Register creates a new user account, admin only
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service(tc).Register(r.Context(), actorFrom(r), tc.Name, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered",
		"user":    user,
	})
}

// Me returns the current user's profile
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	claims := httputil.GetClaims(r)
	user, err := h.service(tc).Me(r.Context(), claims.Subject)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"user": user})
}

// ChangePassword changes the current user's password
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.ChangePasswordRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := httputil.GetClaims(r)
	if err := h.service(tc).ChangePassword(r.Context(), actorFrom(r), claims.Subject, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"message": "password changed"})
}

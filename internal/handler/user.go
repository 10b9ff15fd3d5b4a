package handler

import (
	"log/slog"
	"net/http"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/auth"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/middleware"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/service"
)

// UserHandler handles user management requests, admin only
type UserHandler struct {
	perms  *auth.PermissionRegistry
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(perms *auth.PermissionRegistry, logger *slog.Logger) *UserHandler {
	return &UserHandler{perms: perms, logger: logger}
}

func (h *UserHandler) service(tc *middleware.TenantContext) *service.UserService {
	return service.NewUserService(
		tc.Repos.Users,
		h.perms,
		service.NewAuditRecorder(tc.Repos.Audit, h.logger),
		h.logger,
	)
}

// List lists users with filters and pagination
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	p := httputil.ParsePagination(r)
	filter := repositories.ListUsersFilter{
		Role:   r.URL.Query().Get("role"),
		Search: r.URL.Query().Get("search"),
		Page:   p.Page,
		Limit:  p.Limit,
	}

	users, total, err := h.service(tc).List(r.Context(), filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"users":      users,
		"pagination": newPaginationMeta(total, p.Page, p.Limit),
	})
}

// Get retrieves a user by ID
// GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	user, err := h.service(tc).Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Update changes a user's profile, role, or active flag
// PUT /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service(tc).Update(r.Context(), actorFrom(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "user updated",
		"user":    user,
	})
}

// Delete removes a user
// DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	if err := h.service(tc).Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"message": "user deleted"})
}

// ResetPassword sets a new password for a user
// POST /api/users/{id}/reset-password
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service(tc).ResetPassword(r.Context(), actorFrom(r), r.PathValue("id"), req.NewPassword); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"message": "password reset"})
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/middleware"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/service"
)

// ContractHandler handles contract requests
type ContractHandler struct {
	logger *slog.Logger
}

// NewContractHandler creates a new contract handler
func NewContractHandler(logger *slog.Logger) *ContractHandler {
	return &ContractHandler{logger: logger}
}

func (h *ContractHandler) service(tc *middleware.TenantContext) *service.ContractService {
	return service.NewContractService(
		tc.Repos.Contracts,
		service.NewAuditRecorder(tc.Repos.Audit, h.logger),
		h.logger,
	)
}

// Create creates a contract
// POST /api/contracts
func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.ContractRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contract, err := h.service(tc).Create(r.Context(), actorFrom(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]any{
		"message":  "contract created",
		"contract": contract,
	})
}

// List lists contracts with filters and pagination
// GET /api/contracts
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	p := httputil.ParsePagination(r)
	filter := repositories.ListContractsFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Page:   p.Page,
		Limit:  p.Limit,
	}

	contracts, total, err := h.service(tc).List(r.Context(), filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if contracts == nil {
		contracts = []models.Contract{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"contracts":  contracts,
		"pagination": newPaginationMeta(total, p.Page, p.Limit),
	})
}

// Get retrieves a contract by ID
// GET /api/contracts/{id}
func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	contract, err := h.service(tc).Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"contract": contract})
}

// Update replaces a contract's editable fields
// PUT /api/contracts/{id}
func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.ContractRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contract, err := h.service(tc).Update(r.Context(), actorFrom(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"message":  "contract updated",
		"contract": contract,
	})
}

// Delete removes a contract
// DELETE /api/contracts/{id}
func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	if err := h.service(tc).Delete(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"message": "contract deleted"})
}

// Sign records one party's signature on a contract
// POST /api/contracts/{id}/sign
func (h *ContractHandler) Sign(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req service.SignRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contract, err := h.service(tc).Sign(r.Context(), actorFrom(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"message":  "contract signed",
		"contract": contract,
	})
}

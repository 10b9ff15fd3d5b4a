package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

// ContractService manages contracts and their signature lifecycle.
type ContractService struct {
	contracts repositories.ContractRepository
	audit     *AuditRecorder
	logger    *slog.Logger
}

// NewContractService creates a new contract service
func NewContractService(contracts repositories.ContractRepository, audit *AuditRecorder, logger *slog.Logger) *ContractService {
	return &ContractService{
		contracts: contracts,
		audit:     audit,
		logger:    logger,
	}
}

// ContractRequest carries create/update input for a contract.
type ContractRequest struct {
	Title      string         `json:"title"`
	Parties    []models.Party `json:"parties"`
	Content    string         `json:"content"`
	TemplateID *string        `json:"templateId"`
	Status     *string        `json:"status"`
	Value      float64        `json:"value"`
	Currency   string         `json:"currency"`
	StartDate  *time.Time     `json:"startDate"`
	EndDate    *time.Time     `json:"endDate"`
	Tags       []string       `json:"tags"`
}

// SignRequest carries one party's signature.
type SignRequest struct {
	Email     string `json:"email"`
	Signature string `json:"signature"`
}

func (r *ContractRequest) validate() error {
	errs := validation.Errors{
		"title":   validation.Validate(strings.TrimSpace(r.Title), validation.Required, validation.Length(1, 255)),
		"content": validation.Validate(r.Content, validation.Required),
		"parties": validation.Validate(r.Parties, validation.Required.Error("at least one party is required")),
	}
	for _, p := range r.Parties {
		if err := validation.Validate(p.Email, validation.Required, is.Email); err != nil {
			errs["parties"] = err
			break
		}
	}
	return errs.Filter()
}

// Create creates a contract in draft status with an opening trail entry.
func (s *ContractService) Create(ctx context.Context, actor Actor, req *ContractRequest) (*models.Contract, error) {
	if err := req.validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	now := time.Now()
	contract := &models.Contract{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(req.Title),
		Parties:    req.Parties,
		Content:    req.Content,
		TemplateID: req.TemplateID,
		Status:     models.ContractStatusDraft,
		Value:      req.Value,
		Currency:   req.Currency,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		CreatedBy:  actor.UserID,
		Tags:       req.Tags,
		AuditTrail: []models.TrailEntry{{
			Action:      "created",
			PerformedBy: actor.Email,
			PerformedAt: now,
			IPAddress:   actor.IPAddress,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if contract.Currency == "" {
		contract.Currency = "USD"
	}
	if contract.Tags == nil {
		contract.Tags = []string{}
	}
	if contract.Attachments == nil {
		contract.Attachments = []models.Attachment{}
	}

	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}

	s.logger.Info("contract created", "id", contract.ID, "title", contract.Title, "parties", len(contract.Parties))
	s.audit.Record(ctx, actor, models.ActionCreate, models.EntityContract, &contract.ID, map[string]any{"title": contract.Title})

	return contract, nil
}

// List lists contracts with filters and pagination.
func (s *ContractService) List(ctx context.Context, filter repositories.ListContractsFilter) ([]models.Contract, int, error) {
	return s.contracts.List(ctx, filter)
}

// Get retrieves a contract by ID.
func (s *ContractService) Get(ctx context.Context, id string) (*models.Contract, error) {
	return s.contracts.GetByID(ctx, id)
}

// Update replaces a contract's editable fields. Signed contracts can no
// longer be edited.
func (s *ContractService) Update(ctx context.Context, actor Actor, id string, req *ContractRequest) (*models.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if contract.Status == models.ContractStatusSigned {
		return nil, &domain.ValidationError{Message: "a fully signed contract cannot be edited"}
	}

	if err := req.validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	contract.Title = strings.TrimSpace(req.Title)
	contract.Parties = req.Parties
	contract.Content = req.Content
	contract.TemplateID = req.TemplateID
	contract.Value = req.Value
	contract.Currency = req.Currency
	contract.StartDate = req.StartDate
	contract.EndDate = req.EndDate
	contract.Tags = req.Tags
	if req.Status != nil {
		if !models.ValidContractStatus(*req.Status) {
			return nil, &domain.ValidationError{Message: "unknown contract status"}
		}
		contract.Status = *req.Status
	}
	contract.UpdatedBy = &actor.UserID
	contract.AuditTrail = append(contract.AuditTrail, models.TrailEntry{
		Action:      "updated",
		PerformedBy: actor.Email,
		PerformedAt: time.Now(),
		IPAddress:   actor.IPAddress,
	})
	contract.UpdatedAt = time.Now()

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, err
	}

	s.logger.Info("contract updated", "id", contract.ID, "status", contract.Status)
	s.audit.Record(ctx, actor, models.ActionUpdate, models.EntityContract, &contract.ID, map[string]any{"title": contract.Title})

	return contract, nil
}

// Delete removes a contract.
func (s *ContractService) Delete(ctx context.Context, actor Actor, id string) error {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.contracts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("contract deleted", "id", id, "title", contract.Title)
	s.audit.Record(ctx, actor, models.ActionDelete, models.EntityContract, &id, map[string]any{"title": contract.Title})

	return nil
}

// Sign records one party's signature, matched by email. The contract
// status follows the signatures: partially_signed once anyone has
// signed, signed once everyone has.
func (s *ContractService) Sign(ctx context.Context, actor Actor, id string, req *SignRequest) (*models.Contract, error) {
	if err := validation.Validate(req.Email, validation.Required, is.Email); err != nil {
		return nil, &domain.ValidationError{Message: "a valid party email is required"}
	}

	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch contract.Status {
	case models.ContractStatusCancelled, models.ContractStatusExpired:
		return nil, &domain.ValidationError{Message: "this contract is no longer open for signing"}
	}

	email := strings.ToLower(req.Email)
	idx := -1
	for i := range contract.Parties {
		if strings.ToLower(contract.Parties[i].Email) == email {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &domain.NotFoundError{Message: "no party with this email on the contract"}
	}
	if contract.Parties[idx].SignedAt != nil {
		return nil, &domain.ConflictError{
			Message:      "this party has already signed",
			ResourceType: "contract",
			ResourceID:   contract.ID,
		}
	}

	now := time.Now()
	contract.Parties[idx].SignedAt = &now
	contract.Parties[idx].Signature = req.Signature
	contract.Parties[idx].IPAddress = actor.IPAddress

	switch {
	case contract.AllSigned():
		contract.Status = models.ContractStatusSigned
	case contract.AnySigned():
		contract.Status = models.ContractStatusPartiallySigned
	}

	contract.AuditTrail = append(contract.AuditTrail, models.TrailEntry{
		Action:      "signed",
		PerformedBy: contract.Parties[idx].Email,
		PerformedAt: now,
		Details:     "signed by " + contract.Parties[idx].Name,
		IPAddress:   actor.IPAddress,
	})
	contract.UpdatedAt = now

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, err
	}

	s.logger.Info("contract signed",
		"id", contract.ID,
		"party", contract.Parties[idx].Email,
		"status", contract.Status,
	)
	s.audit.Record(ctx, actor, models.ActionSign, models.EntityContract, &contract.ID, map[string]any{
		"title": contract.Title,
		"party": contract.Parties[idx].Email,
	})

	return contract, nil
}

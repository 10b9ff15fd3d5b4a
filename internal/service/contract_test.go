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

func newTestContractService() *ContractService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	audit := NewAuditRecorder(&fakeAuditRepo{}, logger)
	return NewContractService(newFakeContractRepo(), audit, logger)
}

func twoPartyContract(t *testing.T, svc *ContractService) *models.Contract {
	t.Helper()
	contract, err := svc.Create(context.Background(), testActor(), &ContractRequest{
		Title:   "Service Agreement",
		Content: "Terms and conditions",
		Parties: []models.Party{
			{Name: "Acme Corp", Email: "legal@acme.example", Role: "client"},
			{Name: "Widget Co", Email: "sales@widget.example", Role: "vendor"},
		},
		Value: 10000,
	})
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	return contract
}

func TestContractCreateDefaults(t *testing.T) {
	svc := newTestContractService()
	contract := twoPartyContract(t, svc)

	if contract.Status != models.ContractStatusDraft {
		t.Errorf("status = %q, want draft", contract.Status)
	}
	if contract.Currency != "USD" {
		t.Errorf("currency = %q, want USD", contract.Currency)
	}
	if len(contract.AuditTrail) != 1 || contract.AuditTrail[0].Action != "created" {
		t.Errorf("audit trail = %+v, want single created entry", contract.AuditTrail)
	}
}

func TestContractCreateValidation(t *testing.T) {
	svc := newTestContractService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  ContractRequest
	}{
		{"missing title", ContractRequest{Content: "x", Parties: []models.Party{{Name: "A", Email: "a@b.c"}}}},
		{"missing content", ContractRequest{Title: "T", Parties: []models.Party{{Name: "A", Email: "a@b.c"}}}},
		{"no parties", ContractRequest{Title: "T", Content: "x"}},
		{"bad party email", ContractRequest{Title: "T", Content: "x", Parties: []models.Party{{Name: "A", Email: "not-an-email"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, testActor(), &tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestContractSignFlow(t *testing.T) {
	svc := newTestContractService()
	ctx := context.Background()
	actor := testActor()
	contract := twoPartyContract(t, svc)

	// First signature moves the contract to partially_signed
	signed, err := svc.Sign(ctx, actor, contract.ID, &SignRequest{Email: "legal@acme.example", Signature: "sig-1"})
	if err != nil {
		t.Fatalf("first sign: %v", err)
	}
	if signed.Status != models.ContractStatusPartiallySigned {
		t.Errorf("status = %q, want partially_signed", signed.Status)
	}
	if signed.Parties[0].SignedAt == nil {
		t.Error("party signature timestamp not set")
	}

	// Email matching is case-insensitive
	signed, err = svc.Sign(ctx, actor, contract.ID, &SignRequest{Email: "SALES@widget.example", Signature: "sig-2"})
	if err != nil {
		t.Fatalf("second sign: %v", err)
	}
	if signed.Status != models.ContractStatusSigned {
		t.Errorf("status = %q, want signed", signed.Status)
	}

	// Trail records both signatures plus the created entry
	if len(signed.AuditTrail) != 3 {
		t.Errorf("trail length = %d, want 3", len(signed.AuditTrail))
	}
}

func TestContractSignRejections(t *testing.T) {
	svc := newTestContractService()
	ctx := context.Background()
	actor := testActor()
	contract := twoPartyContract(t, svc)

	if _, err := svc.Sign(ctx, actor, contract.ID, &SignRequest{Email: "stranger@nowhere.example"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown party: got %v, want not found", err)
	}

	if _, err := svc.Sign(ctx, actor, contract.ID, &SignRequest{Email: "legal@acme.example"}); err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Sign(ctx, actor, contract.ID, &SignRequest{Email: "legal@acme.example"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("double sign: got %v, want conflict", err)
	}
}

func TestContractSignedCannotBeEdited(t *testing.T) {
	svc := newTestContractService()
	ctx := context.Background()
	actor := testActor()
	contract := twoPartyContract(t, svc)

	svc.Sign(ctx, actor, contract.ID, &SignRequest{Email: "legal@acme.example"})
	svc.Sign(ctx, actor, contract.ID, &SignRequest{Email: "sales@widget.example"})

	_, err := svc.Update(ctx, actor, contract.ID, &ContractRequest{
		Title:   "Amended",
		Content: "New terms",
		Parties: contract.Parties,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestContractCancelledNotSignable(t *testing.T) {
	svc := newTestContractService()
	ctx := context.Background()
	actor := testActor()
	contract := twoPartyContract(t, svc)

	status := models.ContractStatusCancelled
	if _, err := svc.Update(ctx, actor, contract.ID, &ContractRequest{
		Title:   contract.Title,
		Content: contract.Content,
		Parties: contract.Parties,
		Status:  &status,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := svc.Sign(ctx, actor, contract.ID, &SignRequest{Email: "legal@acme.example"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

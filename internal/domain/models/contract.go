package models

import (
	"time"
)

// Contract statuses
const (
	ContractStatusDraft           = "draft"
	ContractStatusSent            = "sent"
	ContractStatusPartiallySigned = "partially_signed"
	ContractStatusSigned          = "signed"
	ContractStatusExpired         = "expired"
	ContractStatusCancelled       = "cancelled"
)

// ValidContractStatus reports whether s is a known contract status
func ValidContractStatus(s string) bool {
	switch s {
	case ContractStatusDraft, ContractStatusSent, ContractStatusPartiallySigned,
		ContractStatusSigned, ContractStatusExpired, ContractStatusCancelled:
		return true
	}
	return false
}

// Party is one signatory on a contract
type Party struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"` // client, vendor, partner, employee
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	Signature string     `json:"signature,omitempty"` // base64 signature image or hash
	IPAddress string     `json:"ip_address,omitempty"`
}

// TrailEntry is one row of a contract's embedded audit trail
type TrailEntry struct {
	Action      string    `json:"action"`
	PerformedBy string    `json:"performed_by"`
	PerformedAt time.Time `json:"performed_at"`
	Details     string    `json:"details,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
}

// Attachment is a file attached to a contract
type Attachment struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Path         string `json:"-"`
}

type Contract struct {
	ID          string       `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Parties     []Party      `json:"parties" db:"parties"`
	Content     string       `json:"content" db:"content"`
	TemplateID  *string      `json:"template_id,omitempty" db:"template_id"`
	Status      string       `json:"status" db:"status"`
	Value       float64      `json:"value" db:"value"`
	Currency    string       `json:"currency" db:"currency"`
	StartDate   *time.Time   `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time   `json:"end_date,omitempty" db:"end_date"`
	CreatedBy   string       `json:"created_by" db:"created_by"`
	UpdatedBy   *string      `json:"updated_by,omitempty" db:"updated_by"`
	AuditTrail  []TrailEntry `json:"audit_trail" db:"audit_trail"`
	Tags        []string     `json:"tags" db:"tags"`
	Attachments []Attachment `json:"attachments,omitempty" db:"attachments"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// AllSigned reports whether every party on the contract has signed
func (c *Contract) AllSigned() bool {
	if len(c.Parties) == 0 {
		return false
	}
	for _, p := range c.Parties {
		if p.SignedAt == nil {
			return false
		}
	}
	return true
}

// AnySigned reports whether at least one party has signed
func (c *Contract) AnySigned() bool {
	for _, p := range c.Parties {
		if p.SignedAt != nil {
			return true
		}
	}
	return false
}

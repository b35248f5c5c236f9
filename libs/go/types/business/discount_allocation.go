package business

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/shopspring/decimal"
)

// Allocation methods
const (
	AllocationMethodProportional = "proportional"
	AllocationMethodEqual        = "equal"
)

// Allocation statuses
const (
	AllocationStatusPending = "pending"
	AllocationStatusApplied = "applied"
	AllocationStatusVoid    = "void"
)

// AllocationLineInput is a line the aggregate discount is spread across
type AllocationLineInput struct {
	LineItemID string          `json:"line_item_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// AllocatedLine is a line's share of an aggregate discount
type AllocatedLine struct {
	LineItemID      string          `json:"line_item_id"`
	Position        int32           `json:"position"`
	LineAmount      decimal.Decimal `json:"line_amount"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
}

// AllocationWithLines is a persisted allocation and its lines in position order
type AllocationWithLines struct {
	Allocation db.DiscountAllocation
	Lines      []db.DiscountAllocationLine
}

// ApprovalWithDecisions is an approval record and the sign-offs collected so far
type ApprovalWithDecisions struct {
	Approval  db.DiscountApproval
	Decisions []db.DiscountApprovalDecision
}

// CalculationOutcome is the result of a committed discount calculation
type CalculationOutcome struct {
	Result     *CombinationResult
	Allocation *AllocationWithLines
	ApprovalID *uuid.UUID
}

// Discount events consumed by the accounting bridge
const (
	EventTransactionFinalized = "discount.transaction_finalized"
	EventAllocationVoided     = "discount.allocation_voided"
)

// DiscountEvent is published after an allocation is applied or voided
type DiscountEvent struct {
	EventID         uuid.UUID       `json:"event_id"`
	EventType       string          `json:"event_type"`
	WorkspaceID     uuid.UUID       `json:"workspace_id"`
	AllocationID    uuid.UUID       `json:"allocation_id"`
	TransactionType string          `json:"transaction_type"`
	TransactionID   string          `json:"transaction_id"`
	Currency        string          `json:"currency"`
	TotalDiscount   decimal.Decimal `json:"total_discount"`
	Lines           []AllocatedLine `json:"lines,omitempty"`
	AppliedRuleIDs  []uuid.UUID     `json:"applied_rule_ids,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// Audit entity types
const (
	AuditEntityDiscountRule       = "discount_rule"
	AuditEntityDiscountApproval   = "discount_approval"
	AuditEntityDiscountAllocation = "discount_allocation"
	AuditEntityDiscountSettings   = "discount_settings"
)

// Audit actions
const (
	AuditActionRuleCreated       = "rule_created"
	AuditActionRuleDeactivated   = "rule_deactivated"
	AuditActionRuleRedeemed      = "rule_redeemed"
	AuditActionApprovalRequested = "approval_requested"
	AuditActionApprovalSignedOff = "approval_signed_off"
	AuditActionApprovalApproved  = "approval_approved"
	AuditActionApprovalRejected  = "approval_rejected"
	AuditActionApprovalExpired   = "approval_expired"
	AuditActionAllocationCreated = "allocation_created"
	AuditActionAllocationApplied = "allocation_applied"
	AuditActionAllocationVoided  = "allocation_voided"
	AuditActionSettingsUpdated   = "settings_updated"
)

// AuditEntry is one row of the discount audit trail
type AuditEntry struct {
	WorkspaceID uuid.UUID
	EntityType  string
	EntityID    uuid.UUID
	Action      string
	ActorID     *uuid.UUID
	Details     map[string]interface{}
}

package params

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
)

// DiscountContextParams is the caller-supplied part of a discount context.
// Segment and minor-unit precision are resolved by the engine.
type DiscountContextParams struct {
	WorkspaceID uuid.UUID
	CustomerID  uuid.UUID
	Currency    string
	Subtotal    *decimal.Decimal
	LineItems   []business.LineItem
	PromoCode   string
	EvaluatedAt time.Time
	Transaction *business.TransactionRef
	Payment     *business.PaymentInfo
}

// PreviewDiscountParams contains parameters for a side-effect free preview
type PreviewDiscountParams struct {
	Context                  DiscountContextParams
	ApprovalThresholdPercent *decimal.Decimal
}

// CalculateDiscountParams contains parameters for committing a discount
type CalculateDiscountParams struct {
	Context                  DiscountContextParams
	ApprovalThresholdPercent *decimal.Decimal
	AllocationMethod         string
	RequestedBy              uuid.UUID
}

// EvaluateEarlyPaymentParams contains parameters for an early-payment eligibility check
type EvaluateEarlyPaymentParams struct {
	WorkspaceID uuid.UUID
	InvoiceID   uuid.UUID
	PaymentDate time.Time
}

// ApproveDiscountParams contains parameters for an approver sign-off
type ApproveDiscountParams struct {
	WorkspaceID uuid.UUID
	ApprovalID  uuid.UUID
	ApproverID  uuid.UUID
}

// RejectDiscountParams contains parameters for rejecting a pending approval
type RejectDiscountParams struct {
	WorkspaceID uuid.UUID
	ApprovalID  uuid.UUID
	ApproverID  uuid.UUID
	Reason      string
}

// ListDiscountApprovalsParams contains filters for listing approvals
type ListDiscountApprovalsParams struct {
	WorkspaceID uuid.UUID
	Status      string
	Limit       int32
	Offset      int32
}

// AllocateDiscountParams contains parameters for spreading a discount over line items
type AllocateDiscountParams struct {
	WorkspaceID     uuid.UUID
	TransactionType string
	TransactionID   string
	Currency        string
	Method          string
	TotalDiscount   decimal.Decimal
	Lines           []business.AllocationLineInput
	ApprovalID      *uuid.UUID
	CreatedBy       *uuid.UUID
	Apply           bool
	AppliedRuleIDs  []uuid.UUID
}

// AllocationTransitionParams contains parameters for applying or voiding an allocation
type AllocationTransitionParams struct {
	WorkspaceID  uuid.UUID
	AllocationID uuid.UUID
	ActorID      *uuid.UUID
	Reason       string
}

// VolumeTierParams describes one tier of a volume rule
type VolumeTierParams struct {
	ThresholdType string
	Threshold     decimal.Decimal
	DiscountType  string
	DiscountValue decimal.Decimal
}

// CreateDiscountRuleParams contains parameters for creating a discount rule
type CreateDiscountRuleParams struct {
	WorkspaceID               uuid.UUID
	Name                      string
	Source                    string
	DiscountType              string
	DiscountValue             decimal.Decimal
	CategoryIDs               []uuid.UUID
	ServiceIDs                []uuid.UUID
	CustomerSegments          []string
	ValidFrom                 *time.Time
	ValidUntil                *time.Time
	MaxRedemptions            *int32
	MaxRedemptionsPerCustomer *int32
	StackingPolicy            string
	Priority                  int32
	PromoCode                 *string
	DiscountDays              *int32
	Conditions                json.RawMessage
	PricingMode               *string
	VolumeTiers               []VolumeTierParams
	CreatedBy                 *uuid.UUID
}

// ListDiscountRulesParams contains filters for listing rules
type ListDiscountRulesParams struct {
	WorkspaceID     uuid.UUID
	Source          string
	IncludeInactive bool
	Limit           int32
	Offset          int32
}

// UpdateDiscountSettingsParams contains a workspace's new discount policy
type UpdateDiscountSettingsParams struct {
	WorkspaceID uuid.UUID
	Policy      business.DiscountPolicy
	UpdatedBy   *uuid.UUID
}

package responses

import (
	"time"

	"github.com/google/uuid"
)

// Amounts are rendered as strings with exactly the currency's minor-unit digits.

// DiscountOfferResponse is one rule's candidate discount
type DiscountOfferResponse struct {
	RuleID         uuid.UUID `json:"rule_id"`
	RuleName       string    `json:"rule_name"`
	Source         string    `json:"source"`
	DiscountType   string    `json:"discount_type"`
	DiscountValue  string    `json:"discount_value"`
	Amount         string    `json:"amount"`
	StackingPolicy string    `json:"stacking_policy"`
	Priority       int32     `json:"priority"`
	Description    string    `json:"description,omitempty"`
}

// DiscardedOfferResponse is an offer left out of the applied combination
type DiscardedOfferResponse struct {
	Offer  DiscountOfferResponse `json:"offer"`
	Reason string                `json:"reason"`
}

// CombinationResponse is the resolved combination for a pricing request
type CombinationResponse struct {
	Currency        string                   `json:"currency"`
	Subtotal        string                   `json:"subtotal"`
	AppliedOffers   []DiscountOfferResponse  `json:"applied_offers"`
	DiscardedOffers []DiscardedOfferResponse `json:"discarded_offers"`
	TotalDiscount   string                   `json:"total_discount"`
	FinalAmount     string                   `json:"final_amount"`
	Capped          bool                     `json:"capped"`
	CapReason       string                   `json:"cap_reason,omitempty"`
}

// CalculateDiscountResponse is returned by a committed calculation
type CalculateDiscountResponse struct {
	Status     string                      `json:"status"`
	Result     CombinationResponse         `json:"result"`
	Allocation *DiscountAllocationResponse `json:"allocation,omitempty"`
	ApprovalID *uuid.UUID                  `json:"approval_id,omitempty"`
}

// ApprovalRequiredResponse is the 202 body when a discount needs sign-off
type ApprovalRequiredResponse struct {
	Status        string                  `json:"status"`
	Approval      ApprovalSummaryResponse `json:"approval"`
	CorrelationID string                  `json:"correlation_id,omitempty"`
}

// ApprovalSummaryResponse is the caller-facing view of a pending approval
type ApprovalSummaryResponse struct {
	ID                uuid.UUID  `json:"id"`
	Status            string     `json:"status"`
	TransactionType   string     `json:"transaction_type"`
	TransactionID     string     `json:"transaction_id"`
	RequestedPercent  string     `json:"requested_percent"`
	RequestedAmount   string     `json:"requested_amount"`
	ThresholdPercent  string     `json:"threshold_percent"`
	RequiredApprovals int32      `json:"required_approvals"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

// CodeValidationResponse is the feedback for a promotional code
type CodeValidationResponse struct {
	Code   string                 `json:"code"`
	Valid  bool                   `json:"valid"`
	Reason string                 `json:"reason,omitempty"`
	Offer  *DiscountOfferResponse `json:"offer,omitempty"`
}

// EarlyPaymentResponse reports early-payment eligibility for an invoice
type EarlyPaymentResponse struct {
	InvoiceID uuid.UUID  `json:"invoice_id"`
	Eligible  bool       `json:"eligible"`
	Reason    string     `json:"reason,omitempty"`
	RuleID    *uuid.UUID `json:"rule_id,omitempty"`
	Currency  string     `json:"currency"`
	Amount    string     `json:"amount"`
	Deadline  *time.Time `json:"deadline,omitempty"`
}

// VolumeTierResponse is one tier of a volume rule
type VolumeTierResponse struct {
	ID            uuid.UUID `json:"id"`
	ThresholdType string    `json:"threshold_type"`
	Threshold     string    `json:"threshold"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue string    `json:"discount_value"`
}

// DiscountRuleResponse is a discount rule as exposed over the API
type DiscountRuleResponse struct {
	ID                        uuid.UUID            `json:"id"`
	Object                    string               `json:"object"`
	Name                      string               `json:"name"`
	Source                    string               `json:"source"`
	DiscountType              string               `json:"discount_type"`
	DiscountValue             string               `json:"discount_value"`
	CategoryIDs               []uuid.UUID          `json:"category_ids"`
	ServiceIDs                []uuid.UUID          `json:"service_ids"`
	CustomerSegments          []string             `json:"customer_segments"`
	ValidFrom                 *time.Time           `json:"valid_from,omitempty"`
	ValidUntil                *time.Time           `json:"valid_until,omitempty"`
	MaxRedemptions            *int32               `json:"max_redemptions,omitempty"`
	MaxRedemptionsPerCustomer *int32               `json:"max_redemptions_per_customer,omitempty"`
	UsageCount                int32                `json:"usage_count"`
	StackingPolicy            string               `json:"stacking_policy"`
	Priority                  int32                `json:"priority"`
	PromoCode                 *string              `json:"promo_code,omitempty"`
	DiscountDays              *int32               `json:"discount_days,omitempty"`
	PricingMode               *string              `json:"pricing_mode,omitempty"`
	VolumeTiers               []VolumeTierResponse `json:"volume_tiers,omitempty"`
	IsActive                  bool                 `json:"is_active"`
	CreatedAt                 time.Time            `json:"created_at"`
}

// ApprovalDecisionResponse is one approver's sign-off
type ApprovalDecisionResponse struct {
	ApproverID uuid.UUID `json:"approver_id"`
	DecidedAt  time.Time `json:"decided_at"`
}

// DiscountApprovalResponse is an approval record with its decisions
type DiscountApprovalResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Object            string                     `json:"object"`
	Status            string                     `json:"status"`
	TransactionType   string                     `json:"transaction_type"`
	TransactionID     string                     `json:"transaction_id"`
	CustomerID        uuid.UUID                  `json:"customer_id"`
	Currency          string                     `json:"currency"`
	Subtotal          string                     `json:"subtotal"`
	RequestedPercent  string                     `json:"requested_percent"`
	RequestedAmount   string                     `json:"requested_amount"`
	ThresholdPercent  string                     `json:"threshold_percent"`
	RequiredApprovals int32                      `json:"required_approvals"`
	RequestedBy       uuid.UUID                  `json:"requested_by"`
	ApprovedBy        *uuid.UUID                 `json:"approved_by,omitempty"`
	RejectionReason   *string                    `json:"rejection_reason,omitempty"`
	Decisions         []ApprovalDecisionResponse `json:"decisions,omitempty"`
	RequestedAt       time.Time                  `json:"requested_at"`
	ResolvedAt        *time.Time                 `json:"resolved_at,omitempty"`
	ExpiresAt         *time.Time                 `json:"expires_at,omitempty"`
}

// AllocationLineResponse is a line's share of a discount
type AllocationLineResponse struct {
	LineItemID      string `json:"line_item_id"`
	Position        int32  `json:"position"`
	LineAmount      string `json:"line_amount"`
	AllocatedAmount string `json:"allocated_amount"`
}

// DiscountAllocationResponse is a persisted allocation and its lines
type DiscountAllocationResponse struct {
	ID               uuid.UUID                `json:"id"`
	Object           string                   `json:"object"`
	TransactionType  string                   `json:"transaction_type"`
	TransactionID    string                   `json:"transaction_id"`
	Currency         string                   `json:"currency"`
	AllocationMethod string                   `json:"allocation_method"`
	TotalDiscount    string                   `json:"total_discount"`
	Status           string                   `json:"status"`
	ApprovalID       *uuid.UUID               `json:"approval_id,omitempty"`
	VoidReason       *string                  `json:"void_reason,omitempty"`
	Lines            []AllocationLineResponse `json:"lines,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	AppliedAt        *time.Time               `json:"applied_at,omitempty"`
	VoidedAt         *time.Time               `json:"voided_at,omitempty"`
}

// AllocationSummaryResponse totals the applied discounts on one transaction
type AllocationSummaryResponse struct {
	TransactionType      string                       `json:"transaction_type"`
	TransactionID        string                       `json:"transaction_id"`
	AppliedDiscountTotal string                       `json:"applied_discount_total"`
	Allocations          []DiscountAllocationResponse `json:"allocations"`
}

// DiscountSettingsResponse is a workspace's discount policy
type DiscountSettingsResponse struct {
	MaxDiscountPercent             *string `json:"max_discount_percent,omitempty"`
	ApprovalThresholdPercent       string  `json:"approval_threshold_percent"`
	SecondApprovalThresholdPercent *string `json:"second_approval_threshold_percent,omitempty"`
	ApprovalAmountThreshold        *string `json:"approval_amount_threshold,omitempty"`
	ApprovalExpirySeconds          int32   `json:"approval_expiry_seconds"`
	ApprovalExpiryAction           string  `json:"approval_expiry_action"`
}

// ValidationErrorResponse is the 400 body for rejected input
type ValidationErrorResponse struct {
	Error         string            `json:"error"`
	Fields        []FieldErrorEntry `json:"fields"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

// FieldErrorEntry is one rejected field
type FieldErrorEntry struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

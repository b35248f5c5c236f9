package requests

import (
	"encoding/json"
	"time"

	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
)

// TransactionRefRequest names the invoice or POS sale a discount is committed against
type TransactionRefRequest struct {
	Type string `json:"type" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

// PaymentInfoRequest carries the dates used by early-payment terms
type PaymentInfoRequest struct {
	InvoiceID   string    `json:"invoice_id" binding:"required"`
	InvoiceDate time.Time `json:"invoice_date"`
	PaymentDate time.Time `json:"payment_date"`
}

// DiscountContextRequest is the pricing input shared by preview, calculate and code validation
type DiscountContextRequest struct {
	CustomerID  string                 `json:"customer_id" binding:"required"`
	Currency    string                 `json:"currency" binding:"required"`
	Subtotal    *decimal.Decimal       `json:"subtotal,omitempty"`
	LineItems   []business.LineItem    `json:"line_items,omitempty"`
	PromoCode   string                 `json:"promo_code,omitempty"`
	EvaluatedAt *time.Time             `json:"evaluated_at,omitempty"`
	Transaction *TransactionRefRequest `json:"transaction,omitempty"`
	Payment     *PaymentInfoRequest    `json:"payment,omitempty"`
}

// PreviewDiscountRequest asks for the best combination without committing anything
type PreviewDiscountRequest struct {
	DiscountContextRequest
	ApprovalThresholdPercent *decimal.Decimal `json:"approval_threshold_percent,omitempty"`
}

// CalculateDiscountRequest commits the best combination against a transaction
type CalculateDiscountRequest struct {
	DiscountContextRequest
	ApprovalThresholdPercent *decimal.Decimal `json:"approval_threshold_percent,omitempty"`
	AllocationMethod         string           `json:"allocation_method,omitempty"`
}

// EvaluateEarlyPaymentRequest checks an invoice's early-payment term against a payment date
type EvaluateEarlyPaymentRequest struct {
	InvoiceID   string     `json:"invoice_id" binding:"required"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

// VolumeTierRequest is one tier of a volume rule
type VolumeTierRequest struct {
	ThresholdType string          `json:"threshold_type"`
	Threshold     decimal.Decimal `json:"threshold"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// CreateDiscountRuleRequest defines a new discount rule
type CreateDiscountRuleRequest struct {
	Name                      string              `json:"name" binding:"required"`
	Source                    string              `json:"source" binding:"required"`
	DiscountType              string              `json:"discount_type,omitempty"`
	DiscountValue             decimal.Decimal     `json:"discount_value"`
	CategoryIDs               []string            `json:"category_ids,omitempty"`
	ServiceIDs                []string            `json:"service_ids,omitempty"`
	CustomerSegments          []string            `json:"customer_segments,omitempty"`
	ValidFrom                 *time.Time          `json:"valid_from,omitempty"`
	ValidUntil                *time.Time          `json:"valid_until,omitempty"`
	MaxRedemptions            *int32              `json:"max_redemptions,omitempty"`
	MaxRedemptionsPerCustomer *int32              `json:"max_redemptions_per_customer,omitempty"`
	StackingPolicy            string              `json:"stacking_policy,omitempty"`
	Priority                  int32               `json:"priority"`
	PromoCode                 *string             `json:"promo_code,omitempty"`
	DiscountDays              *int32              `json:"discount_days,omitempty"`
	Conditions                json.RawMessage     `json:"conditions,omitempty"`
	PricingMode               *string             `json:"pricing_mode,omitempty"`
	VolumeTiers               []VolumeTierRequest `json:"volume_tiers,omitempty"`
}

// RejectDiscountRequest carries an approver's optional rejection reason
type RejectDiscountRequest struct {
	Reason string `json:"reason"`
}

// AllocationLineRequest is one line the aggregate discount is spread across
type AllocationLineRequest struct {
	LineItemID string          `json:"line_item_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// AllocateDiscountRequest spreads an already-decided discount over line items
type AllocateDiscountRequest struct {
	TransactionType string                  `json:"transaction_type" binding:"required"`
	TransactionID   string                  `json:"transaction_id" binding:"required"`
	Currency        string                  `json:"currency" binding:"required"`
	Method          string                  `json:"method,omitempty"`
	TotalDiscount   decimal.Decimal         `json:"total_discount"`
	Lines           []AllocationLineRequest `json:"lines"`
	ApprovalID      *string                 `json:"approval_id,omitempty"`
	Apply           bool                    `json:"apply"`
	AppliedRuleIDs  []string                `json:"applied_rule_ids,omitempty"`
}

// VoidAllocationRequest carries the reason an allocation is voided
type VoidAllocationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UpdateDiscountSettingsRequest replaces a workspace's discount policy
type UpdateDiscountSettingsRequest struct {
	MaxDiscountPercent             *decimal.Decimal `json:"max_discount_percent,omitempty"`
	ApprovalThresholdPercent       decimal.Decimal  `json:"approval_threshold_percent"`
	SecondApprovalThresholdPercent *decimal.Decimal `json:"second_approval_threshold_percent,omitempty"`
	ApprovalAmountThreshold        *decimal.Decimal `json:"approval_amount_threshold,omitempty"`
	ApprovalExpirySeconds          int32            `json:"approval_expiry_seconds"`
	ApprovalExpiryAction           string           `json:"approval_expiry_action,omitempty"`
}

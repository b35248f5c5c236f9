package business

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Approval statuses. A transaction with no approval record is implicitly not_required.
const (
	ApprovalStatusNotRequired = "not_required"
	ApprovalStatusPending     = "pending"
	ApprovalStatusApproved    = "approved"
	ApprovalStatusRejected    = "rejected"
	ApprovalStatusExpired     = "expired"
)

// What happens to a pending approval once it outlives the workspace expiry window
const (
	ApprovalExpiryActionNone   = "none"
	ApprovalExpiryActionExpire = "expire"
	ApprovalExpiryActionReject = "reject"
)

var hundred = decimal.NewFromInt(100)

// DiscountPolicy is the per-workspace configuration the resolver and approval gate run under
type DiscountPolicy struct {
	MaxDiscountPercent             *decimal.Decimal `json:"max_discount_percent,omitempty"`
	ApprovalThresholdPercent       decimal.Decimal  `json:"approval_threshold_percent"`
	SecondApprovalThresholdPercent *decimal.Decimal `json:"second_approval_threshold_percent,omitempty"`
	ApprovalAmountThreshold        *decimal.Decimal `json:"approval_amount_threshold,omitempty"`
	ApprovalExpirySeconds          int32            `json:"approval_expiry_seconds"`
	ApprovalExpiryAction           string           `json:"approval_expiry_action"`
}

// WithApprovalThreshold returns a copy using a per-call threshold override
func (p DiscountPolicy) WithApprovalThreshold(threshold *decimal.Decimal) DiscountPolicy {
	if threshold != nil {
		p.ApprovalThresholdPercent = *threshold
	}
	return p
}

// DiscountPercent expresses total as a percentage of subtotal
func DiscountPercent(subtotal, total decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	return total.Div(subtotal).Mul(hundred)
}

// RequiredApprovals returns how many distinct approvers a discount of total
// against subtotal needs: 0 below every threshold, 1 at or above the
// approval threshold, 2 at or above the second-approval threshold.
func (p DiscountPolicy) RequiredApprovals(subtotal, total decimal.Decimal) int32 {
	if !total.IsPositive() {
		return 0
	}

	var required int32
	if subtotal.IsPositive() {
		pct := DiscountPercent(subtotal, total)
		if pct.GreaterThanOrEqual(p.ApprovalThresholdPercent) {
			required = 1
		}
		if p.SecondApprovalThresholdPercent != nil && pct.GreaterThanOrEqual(*p.SecondApprovalThresholdPercent) {
			required = 2
		}
	}
	if required == 0 && p.ApprovalAmountThreshold != nil && total.GreaterThanOrEqual(*p.ApprovalAmountThreshold) {
		required = 1
	}
	return required
}

// ApprovalExpiresAt returns when an approval requested at requestedAt lapses, or nil if it never does.
func (p DiscountPolicy) ApprovalExpiresAt(requestedAt time.Time) *time.Time {
	if p.ApprovalExpirySeconds <= 0 || p.ApprovalExpiryAction == ApprovalExpiryActionNone || p.ApprovalExpiryAction == "" {
		return nil
	}
	at := requestedAt.Add(time.Duration(p.ApprovalExpirySeconds) * time.Second)
	return &at
}

// ExpiredStatus is the status a lapsed approval moves to
func (p DiscountPolicy) ExpiredStatus() string {
	if p.ApprovalExpiryAction == ApprovalExpiryActionReject {
		return ApprovalStatusRejected
	}
	return ApprovalStatusExpired
}

// ApprovalSummary is the caller-facing view of an approval request
type ApprovalSummary struct {
	ID                uuid.UUID       `json:"id"`
	Status            string          `json:"status"`
	TransactionType   string          `json:"transaction_type"`
	TransactionID     string          `json:"transaction_id"`
	RequestedPercent  decimal.Decimal `json:"requested_percent"`
	RequestedAmount   decimal.Decimal `json:"requested_amount"`
	ThresholdPercent  decimal.Decimal `json:"threshold_percent"`
	RequiredApprovals int32           `json:"required_approvals"`
	ExpiresAt         *time.Time      `json:"expires_at,omitempty"`
}

package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type DiscountRule struct {
	ID                        uuid.UUID          `json:"id"`
	WorkspaceID               uuid.UUID          `json:"workspace_id"`
	Name                      string             `json:"name"`
	Source                    string             `json:"source"`
	DiscountType              string             `json:"discount_type"`
	DiscountValue             decimal.Decimal    `json:"discount_value"`
	CategoryIds               []uuid.UUID        `json:"category_ids"`
	ServiceIds                []uuid.UUID        `json:"service_ids"`
	CustomerSegments          []string           `json:"customer_segments"`
	ValidFrom                 pgtype.Timestamptz `json:"valid_from"`
	ValidUntil                pgtype.Timestamptz `json:"valid_until"`
	MaxRedemptions            pgtype.Int4        `json:"max_redemptions"`
	MaxRedemptionsPerCustomer pgtype.Int4        `json:"max_redemptions_per_customer"`
	UsageCount                int32              `json:"usage_count"`
	StackingPolicy            string             `json:"stacking_policy"`
	Priority                  int32              `json:"priority"`
	PromoCode                 pgtype.Text        `json:"promo_code"`
	DiscountDays              pgtype.Int4        `json:"discount_days"`
	Conditions                []byte             `json:"conditions"`
	PricingMode               pgtype.Text        `json:"pricing_mode"`
	IsActive                  bool               `json:"is_active"`
	CreatedBy                 pgtype.UUID        `json:"created_by"`
	CreatedAt                 pgtype.Timestamptz `json:"created_at"`
	UpdatedAt                 pgtype.Timestamptz `json:"updated_at"`
	DeactivatedAt             pgtype.Timestamptz `json:"deactivated_at"`
}

type DiscountVolumeTier struct {
	ID            uuid.UUID          `json:"id"`
	RuleID        uuid.UUID          `json:"rule_id"`
	ThresholdType string             `json:"threshold_type"`
	Threshold     decimal.Decimal    `json:"threshold"`
	DiscountType  string             `json:"discount_type"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type DiscountApproval struct {
	ID                uuid.UUID          `json:"id"`
	WorkspaceID       uuid.UUID          `json:"workspace_id"`
	TransactionType   string             `json:"transaction_type"`
	TransactionID     string             `json:"transaction_id"`
	CustomerID        uuid.UUID          `json:"customer_id"`
	Currency          string             `json:"currency"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	RequestedPercent  decimal.Decimal    `json:"requested_percent"`
	RequestedAmount   decimal.Decimal    `json:"requested_amount"`
	ThresholdPercent  decimal.Decimal    `json:"threshold_percent"`
	RequiredApprovals int32              `json:"required_approvals"`
	Status            string             `json:"status"`
	RequestedBy       uuid.UUID          `json:"requested_by"`
	ApprovedBy        pgtype.UUID        `json:"approved_by"`
	RejectionReason   pgtype.Text        `json:"rejection_reason"`
	Offers            []byte             `json:"offers"`
	RequestedAt       pgtype.Timestamptz `json:"requested_at"`
	ResolvedAt        pgtype.Timestamptz `json:"resolved_at"`
	ExpiresAt         pgtype.Timestamptz `json:"expires_at"`
}

type DiscountApprovalDecision struct {
	ApprovalID uuid.UUID          `json:"approval_id"`
	ApproverID uuid.UUID          `json:"approver_id"`
	DecidedAt  pgtype.Timestamptz `json:"decided_at"`
}

type DiscountAllocation struct {
	ID                  uuid.UUID          `json:"id"`
	WorkspaceID         uuid.UUID          `json:"workspace_id"`
	TransactionType     string             `json:"transaction_type"`
	TransactionID       string             `json:"transaction_id"`
	Currency            string             `json:"currency"`
	AllocationMethod    string             `json:"allocation_method"`
	TotalDiscountAmount decimal.Decimal    `json:"total_discount_amount"`
	Status              string             `json:"status"`
	ApprovalID          pgtype.UUID        `json:"approval_id"`
	VoidReason          pgtype.Text        `json:"void_reason"`
	CreatedBy           pgtype.UUID        `json:"created_by"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
	UpdatedAt           pgtype.Timestamptz `json:"updated_at"`
	AppliedAt           pgtype.Timestamptz `json:"applied_at"`
	VoidedAt            pgtype.Timestamptz `json:"voided_at"`
}

type DiscountAllocationLine struct {
	ID              uuid.UUID       `json:"id"`
	AllocationID    uuid.UUID       `json:"allocation_id"`
	LineItemID      string          `json:"line_item_id"`
	Position        int32           `json:"position"`
	LineAmount      decimal.Decimal `json:"line_amount"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
}

type WorkspaceDiscountSetting struct {
	WorkspaceID                    uuid.UUID           `json:"workspace_id"`
	MaxDiscountPercent             decimal.NullDecimal `json:"max_discount_percent"`
	ApprovalThresholdPercent       decimal.Decimal     `json:"approval_threshold_percent"`
	SecondApprovalThresholdPercent decimal.NullDecimal `json:"second_approval_threshold_percent"`
	ApprovalAmountThreshold        decimal.NullDecimal `json:"approval_amount_threshold"`
	ApprovalExpirySeconds          int32               `json:"approval_expiry_seconds"`
	ApprovalExpiryAction           string              `json:"approval_expiry_action"`
	UpdatedBy                      pgtype.UUID         `json:"updated_by"`
	UpdatedAt                      pgtype.Timestamptz  `json:"updated_at"`
}

type DiscountAuditLog struct {
	ID          uuid.UUID          `json:"id"`
	WorkspaceID uuid.UUID          `json:"workspace_id"`
	EntityType  string             `json:"entity_type"`
	EntityID    uuid.UUID          `json:"entity_id"`
	Action      string             `json:"action"`
	ActorID     pgtype.UUID        `json:"actor_id"`
	Details     []byte             `json:"details"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

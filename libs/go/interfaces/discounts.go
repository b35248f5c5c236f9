package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
)

// RuleSource produces candidate offers for a context. "Does not apply" is an
// empty list; errors are reserved for infrastructure failures.
type RuleSource interface {
	Name() string
	FindCandidates(ctx context.Context, dctx *business.DiscountContext) ([]business.DiscountOffer, error)
}

// TxRunner runs fn inside one database transaction, committing when fn returns nil.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(q db.Querier) error) error
}

// CurrencyPrecisionResolver resolves a currency's minor-unit precision
type CurrencyPrecisionResolver interface {
	DecimalPlaces(ctx context.Context, currency string) (int32, error)
}

// EventPublisher hands discount events to the accounting bridge
type EventPublisher interface {
	Publish(ctx context.Context, event business.DiscountEvent) error
}

// AuditLogger records discount decisions
type AuditLogger interface {
	Record(ctx context.Context, entry business.AuditEntry) error
}

// ApprovalNotifier tells approvers that a discount awaits their decision
type ApprovalNotifier interface {
	NotifyApprovalRequested(ctx context.Context, approval db.DiscountApproval) error
}

// SettingsCache caches resolved workspace discount policies. Get returns nil on a miss.
type SettingsCache interface {
	Get(ctx context.Context, workspaceID uuid.UUID) (*business.DiscountPolicy, error)
	Set(ctx context.Context, workspaceID uuid.UUID, policy business.DiscountPolicy) error
	Delete(ctx context.Context, workspaceID uuid.UUID) error
}

// DiscountEngine discovers, resolves and commits discounts
type DiscountEngine interface {
	BuildContext(ctx context.Context, params params.DiscountContextParams) (*business.DiscountContext, error)
	GetAvailableDiscounts(ctx context.Context, params params.DiscountContextParams) ([]business.DiscountOffer, error)
	FindBestCombination(ctx context.Context, dctx *business.DiscountContext, policy business.DiscountPolicy) (*business.CombinationResult, error)
	PreviewDiscounts(ctx context.Context, params params.PreviewDiscountParams) (*business.CombinationResult, error)
	CalculateFinalPrice(ctx context.Context, params params.CalculateDiscountParams) (*business.CalculationOutcome, error)
	ValidatePromoCode(ctx context.Context, params params.DiscountContextParams) (*business.CodeValidationResult, error)
}

// EarlyPaymentService evaluates early-payment terms outside of a sale
type EarlyPaymentService interface {
	EvaluateEarlyPayment(ctx context.Context, params params.EvaluateEarlyPaymentParams) (*business.EarlyPaymentEligibility, error)
}

// DiscountApprovalService manages the approval gate
type DiscountApprovalService interface {
	GetApproval(ctx context.Context, workspaceID, approvalID uuid.UUID) (*business.ApprovalWithDecisions, error)
	ListApprovals(ctx context.Context, params params.ListDiscountApprovalsParams) ([]db.DiscountApproval, error)
	Approve(ctx context.Context, params params.ApproveDiscountParams) (*business.ApprovalWithDecisions, error)
	Reject(ctx context.Context, params params.RejectDiscountParams) (*business.ApprovalWithDecisions, error)
	ExpireStaleApprovals(ctx context.Context) (int, error)
}

// DiscountAllocationService persists and transitions discount allocations
type DiscountAllocationService interface {
	Allocate(ctx context.Context, params params.AllocateDiscountParams) (*business.AllocationWithLines, error)
	ApplyAllocation(ctx context.Context, params params.AllocationTransitionParams) (*business.AllocationWithLines, error)
	VoidAllocation(ctx context.Context, params params.AllocationTransitionParams) (*business.AllocationWithLines, error)
	GetAllocation(ctx context.Context, workspaceID, allocationID uuid.UUID) (*business.AllocationWithLines, error)
	ListAllocations(ctx context.Context, workspaceID uuid.UUID, ref business.TransactionRef) ([]db.DiscountAllocation, error)
	SumAppliedDiscounts(ctx context.Context, workspaceID uuid.UUID, ref business.TransactionRef) (decimal.Decimal, error)
}

// DiscountRuleService manages the rule lifecycle
type DiscountRuleService interface {
	CreateRule(ctx context.Context, params params.CreateDiscountRuleParams) (*db.DiscountRule, []db.DiscountVolumeTier, error)
	GetRule(ctx context.Context, workspaceID, ruleID uuid.UUID) (*db.DiscountRule, error)
	ListRules(ctx context.Context, params params.ListDiscountRulesParams) ([]db.DiscountRule, error)
	DeactivateRule(ctx context.Context, workspaceID, ruleID uuid.UUID, actorID *uuid.UUID) (*db.DiscountRule, error)
}

// DiscountSettingsService resolves and updates workspace discount policy
type DiscountSettingsService interface {
	GetPolicy(ctx context.Context, workspaceID uuid.UUID) (business.DiscountPolicy, error)
	UpdatePolicy(ctx context.Context, params params.UpdateDiscountSettingsParams) (business.DiscountPolicy, error)
}

package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type Querier interface {
	// discount rules
	CreateDiscountRule(ctx context.Context, arg CreateDiscountRuleParams) (DiscountRule, error)
	GetDiscountRule(ctx context.Context, arg GetDiscountRuleParams) (DiscountRule, error)
	ListDiscountRules(ctx context.Context, arg ListDiscountRulesParams) ([]DiscountRule, error)
	ListActiveDiscountRulesBySource(ctx context.Context, arg ListActiveDiscountRulesBySourceParams) ([]DiscountRule, error)
	GetPromotionalRuleByCode(ctx context.Context, arg GetPromotionalRuleByCodeParams) (DiscountRule, error)
	DeactivateDiscountRule(ctx context.Context, arg DeactivateDiscountRuleParams) (DiscountRule, error)
	IncrementDiscountRuleUsage(ctx context.Context, id uuid.UUID) (DiscountRule, error)
	GetCustomerRuleUsage(ctx context.Context, arg GetCustomerRuleUsageParams) (int32, error)
	IncrementCustomerRuleUsage(ctx context.Context, arg IncrementCustomerRuleUsageParams) (int32, error)
	CreateVolumeTier(ctx context.Context, arg CreateVolumeTierParams) (DiscountVolumeTier, error)
	ListVolumeTiersByRuleIDs(ctx context.Context, ruleIds []uuid.UUID) ([]DiscountVolumeTier, error)

	// collaborator lookups
	GetCustomerSegment(ctx context.Context, arg GetCustomerSegmentParams) (string, error)
	GetProductCategory(ctx context.Context, arg GetProductCategoryParams) (pgtype.UUID, error)
	GetInvoiceEarlyPaymentTerms(ctx context.Context, arg GetInvoiceEarlyPaymentTermsParams) (GetInvoiceEarlyPaymentTermsRow, error)
	GetCurrencyDecimalPlaces(ctx context.Context, code string) (int32, error)

	// approvals
	CreateDiscountApproval(ctx context.Context, arg CreateDiscountApprovalParams) (DiscountApproval, error)
	GetDiscountApproval(ctx context.Context, arg GetDiscountApprovalParams) (DiscountApproval, error)
	GetDiscountApprovalForUpdate(ctx context.Context, arg GetDiscountApprovalParams) (DiscountApproval, error)
	GetLatestDiscountApprovalForTransaction(ctx context.Context, arg GetLatestDiscountApprovalForTransactionParams) (DiscountApproval, error)
	ListDiscountApprovals(ctx context.Context, arg ListDiscountApprovalsParams) ([]DiscountApproval, error)
	ResolveDiscountApproval(ctx context.Context, arg ResolveDiscountApprovalParams) (DiscountApproval, error)
	CreateApprovalDecision(ctx context.Context, arg CreateApprovalDecisionParams) (DiscountApprovalDecision, error)
	ListApprovalDecisions(ctx context.Context, approvalID uuid.UUID) ([]DiscountApprovalDecision, error)
	ListExpiredPendingApprovals(ctx context.Context, arg ListExpiredPendingApprovalsParams) ([]DiscountApproval, error)

	// allocations
	AcquireTransactionLock(ctx context.Context, lockKey string) error
	CountAppliedAllocationsForTransaction(ctx context.Context, arg TransactionRefParams) (int64, error)
	CreateDiscountAllocation(ctx context.Context, arg CreateDiscountAllocationParams) (DiscountAllocation, error)
	CreateDiscountAllocationLine(ctx context.Context, arg CreateDiscountAllocationLineParams) (DiscountAllocationLine, error)
	GetDiscountAllocation(ctx context.Context, arg GetDiscountAllocationParams) (DiscountAllocation, error)
	ListDiscountAllocationLines(ctx context.Context, allocationID uuid.UUID) ([]DiscountAllocationLine, error)
	ListDiscountAllocationsForTransaction(ctx context.Context, arg TransactionRefParams) ([]DiscountAllocation, error)
	UpdateDiscountAllocationStatus(ctx context.Context, arg UpdateDiscountAllocationStatusParams) (DiscountAllocation, error)
	SumAppliedDiscountForTransaction(ctx context.Context, arg TransactionRefParams) (decimal.Decimal, error)

	// settings and audit
	GetWorkspaceDiscountSettings(ctx context.Context, workspaceID uuid.UUID) (WorkspaceDiscountSetting, error)
	UpsertWorkspaceDiscountSettings(ctx context.Context, arg UpsertWorkspaceDiscountSettingsParams) (WorkspaceDiscountSetting, error)
	CreateDiscountAuditEntry(ctx context.Context, arg CreateDiscountAuditEntryParams) (DiscountAuditLog, error)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DiscountServiceDeps wires the discount engine's collaborators
type DiscountServiceDeps struct {
	Queries     db.Querier
	Tx          interfaces.TxRunner
	Currency    interfaces.CurrencyPrecisionResolver
	Policies    PolicyProvider
	Sources     []interfaces.RuleSource
	Promotions  *PromotionalRuleSource
	Approvals   *DiscountApprovalService
	Allocations *DiscountAllocationService
	Audit       interfaces.AuditLogger
}

// DiscountService is the discount engine: it builds contexts, discovers and
// resolves offers, and commits them behind the approval gate
type DiscountService struct {
	queries     db.Querier
	tx          interfaces.TxRunner
	currency    interfaces.CurrencyPrecisionResolver
	policies    PolicyProvider
	discovery   *DiscountDiscoveryService
	promotions  *PromotionalRuleSource
	resolver    *CombinationResolver
	approvals   *DiscountApprovalService
	allocations *DiscountAllocationService
	audit       interfaces.AuditLogger
	logger      *zap.Logger
}

// NewDiscountService creates the discount engine
func NewDiscountService(deps DiscountServiceDeps) *DiscountService {
	return &DiscountService{
		queries:     deps.Queries,
		tx:          deps.Tx,
		currency:    deps.Currency,
		policies:    deps.Policies,
		discovery:   NewDiscountDiscoveryService(deps.Sources...),
		promotions:  deps.Promotions,
		resolver:    NewCombinationResolver(),
		approvals:   deps.Approvals,
		allocations: deps.Allocations,
		audit:       deps.Audit,
		logger:      logger.Log,
	}
}

// usageExhaustedError aborts a commit attempt whose rule ran out of redemptions
type usageExhaustedError struct {
	RuleID uuid.UUID
}

func (e *usageExhaustedError) Error() string {
	return fmt.Sprintf("discount rule %s has no redemptions left", e.RuleID)
}

// BuildContext resolves the customer's segment, the currency precision and
// missing product categories, then validates everything into a DiscountContext
func (s *DiscountService) BuildContext(ctx context.Context, p params.DiscountContextParams) (*business.DiscountContext, error) {
	places, err := s.currency.DecimalPlaces(ctx, p.Currency)
	if err != nil {
		return nil, err
	}

	var segment string
	if p.WorkspaceID != uuid.Nil && p.CustomerID != uuid.Nil {
		segment, err = s.queries.GetCustomerSegment(ctx, db.GetCustomerSegmentParams{
			ID:          p.CustomerID,
			WorkspaceID: p.WorkspaceID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("customer %s: %w", p.CustomerID, business.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to look up customer segment: %w", err)
		}
	}

	lines, err := s.fillCategories(ctx, p.WorkspaceID, p.LineItems)
	if err != nil {
		return nil, err
	}

	return business.NewDiscountContext(business.DiscountContextInput{
		WorkspaceID:     p.WorkspaceID,
		CustomerID:      p.CustomerID,
		CustomerSegment: segment,
		Currency:        p.Currency,
		DecimalPlaces:   places,
		Subtotal:        p.Subtotal,
		LineItems:       lines,
		PromoCode:       p.PromoCode,
		EvaluatedAt:     p.EvaluatedAt,
		Transaction:     p.Transaction,
		Payment:         p.Payment,
	})
}

// fillCategories sets the catalog category on lines that name a product but no category
func (s *DiscountService) fillCategories(ctx context.Context, workspaceID uuid.UUID, lines []business.LineItem) ([]business.LineItem, error) {
	out := make([]business.LineItem, len(lines))
	copy(out, lines)
	categories := make(map[uuid.UUID]*uuid.UUID)

	for i, li := range out {
		if li.ProductID == nil || li.CategoryID != nil {
			continue
		}
		category, seen := categories[*li.ProductID]
		if !seen {
			row, err := s.queries.GetProductCategory(ctx, db.GetProductCategoryParams{
				ID:          *li.ProductID,
				WorkspaceID: workspaceID,
			})
			switch {
			case err == nil && row.Valid:
				id := uuid.UUID(row.Bytes)
				category = &id
			case err == nil, errors.Is(err, pgx.ErrNoRows):
			default:
				return nil, fmt.Errorf("failed to look up product category: %w", err)
			}
			categories[*li.ProductID] = category
		}
		out[i].CategoryID = category
	}
	return out, nil
}

func validateThresholdOverride(threshold *decimal.Decimal) error {
	if threshold != nil && (threshold.IsNegative() || threshold.GreaterThan(hundred)) {
		return business.NewValidationError("approval_threshold_percent", "must be between 0 and 100")
	}
	return nil
}

// GetAvailableDiscounts lists every offer that applies to the context, unresolved
func (s *DiscountService) GetAvailableDiscounts(ctx context.Context, p params.DiscountContextParams) ([]business.DiscountOffer, error) {
	dctx, err := s.BuildContext(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.discovery.DiscoverDiscounts(ctx, dctx)
}

// FindBestCombination discovers and resolves offers for dctx under policy
func (s *DiscountService) FindBestCombination(ctx context.Context, dctx *business.DiscountContext, policy business.DiscountPolicy) (*business.CombinationResult, error) {
	offers, err := s.discovery.DiscoverDiscounts(ctx, dctx)
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(offers, dctx.Subtotal(), dctx.Currency(), dctx.DecimalPlaces(), policy)
}

// PreviewDiscounts resolves the best combination without side effects
func (s *DiscountService) PreviewDiscounts(ctx context.Context, p params.PreviewDiscountParams) (*business.CombinationResult, error) {
	if err := validateThresholdOverride(p.ApprovalThresholdPercent); err != nil {
		return nil, err
	}
	dctx, err := s.BuildContext(ctx, p.Context)
	if err != nil {
		return nil, err
	}
	policy, err := s.policies.GetPolicy(ctx, dctx.WorkspaceID())
	if err != nil {
		return nil, err
	}
	return s.FindBestCombination(ctx, dctx, policy.WithApprovalThreshold(p.ApprovalThresholdPercent))
}

// ValidatePromoCode explains whether the context's promo code applies
func (s *DiscountService) ValidatePromoCode(ctx context.Context, p params.DiscountContextParams) (*business.CodeValidationResult, error) {
	dctx, err := s.BuildContext(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.promotions.ValidateCode(ctx, dctx)
}

// CalculateFinalPrice resolves the best combination and commits it: approval
// check, usage counters and, for a referenced transaction, an applied allocation.
// A rule whose usage limit is hit during commit is dropped and the combination
// recomputed.
func (s *DiscountService) CalculateFinalPrice(ctx context.Context, p params.CalculateDiscountParams) (*business.CalculationOutcome, error) {
	verr := &business.ValidationError{}
	if p.RequestedBy == uuid.Nil {
		verr.Add("requested_by", "is required")
	}
	switch p.AllocationMethod {
	case "", business.AllocationMethodProportional, business.AllocationMethodEqual:
	default:
		verr.Add("allocation_method", "must be proportional or equal")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if err := validateThresholdOverride(p.ApprovalThresholdPercent); err != nil {
		return nil, err
	}

	dctx, err := s.BuildContext(ctx, p.Context)
	if err != nil {
		return nil, err
	}
	policy, err := s.policies.GetPolicy(ctx, dctx.WorkspaceID())
	if err != nil {
		return nil, err
	}
	policy = policy.WithApprovalThreshold(p.ApprovalThresholdPercent)

	offers, err := s.discovery.DiscoverDiscounts(ctx, dctx)
	if err != nil {
		return nil, err
	}

	excluded := make(map[uuid.UUID]bool)
	for attempt := 0; attempt <= len(offers); attempt++ {
		result, err := s.resolveExcluding(offers, excluded, dctx, policy)
		if err != nil {
			return nil, err
		}

		var planned []business.AllocatedLine
		ref := dctx.Transaction()
		if ref != nil && result.TotalDiscount.IsPositive() {
			planned, err = s.allocations.PlanAllocation(result.TotalDiscount, allocationInputs(dctx), p.AllocationMethod, dctx.DecimalPlaces())
			if err != nil {
				return nil, err
			}
		}

		var (
			gate       *GateDecision
			allocation *business.AllocationWithLines
		)
		err = s.tx.RunInTransaction(ctx, func(q db.Querier) error {
			gate, allocation = nil, nil
			if ref != nil {
				if err := q.AcquireTransactionLock(ctx, ref.LockKey(dctx.WorkspaceID())); err != nil {
					return fmt.Errorf("failed to lock transaction: %w", err)
				}
			}

			var err error
			gate, err = s.approvals.CheckGate(ctx, q, dctx, result, policy, p.RequestedBy)
			if err != nil {
				return err
			}
			if !gate.Committable() {
				return nil
			}

			for _, o := range result.AppliedOffers {
				if err := redeemRule(ctx, q, o.RuleID, dctx.CustomerID()); err != nil {
					return err
				}
			}

			if planned != nil {
				requestedBy := p.RequestedBy
				allocation, err = s.allocations.CommitInTx(ctx, q, AllocationRequest{
					WorkspaceID: dctx.WorkspaceID(),
					Transaction: *ref,
					Currency:    dctx.Currency(),
					Method:      p.AllocationMethod,
					Total:       result.TotalDiscount,
					Lines:       planned,
					ApprovalID:  gate.ApprovalID,
					CreatedBy:   &requestedBy,
					Apply:       true,
					GateChecked: true,
				})
				if err != nil {
					return err
				}
			}
			return nil
		})

		var exhausted *usageExhaustedError
		if errors.As(err, &exhausted) {
			s.logger.Info("Discount rule exhausted during commit, recomputing",
				zap.String("workspace_id", dctx.WorkspaceID().String()),
				zap.String("rule_id", exhausted.RuleID.String()))
			excluded[exhausted.RuleID] = true
			continue
		}
		if err != nil {
			return nil, err
		}

		s.approvals.AfterCommit(ctx, gate)
		if !gate.Committable() {
			return nil, gate.Halt
		}

		s.afterCalculate(ctx, dctx, result, allocation, p.RequestedBy)
		return &business.CalculationOutcome{
			Result:     result,
			Allocation: allocation,
			ApprovalID: gate.ApprovalID,
		}, nil
	}

	return nil, &business.ConsistencyError{Message: "discount commit did not converge"}
}

func (s *DiscountService) resolveExcluding(offers []business.DiscountOffer, excluded map[uuid.UUID]bool, dctx *business.DiscountContext, policy business.DiscountPolicy) (*business.CombinationResult, error) {
	eligible := make([]business.DiscountOffer, 0, len(offers))
	var dropped []business.DiscardedOffer
	for _, o := range offers {
		if excluded[o.RuleID] {
			dropped = append(dropped, business.DiscardedOffer{Offer: o, Reason: business.DiscardReasonUsageLimitReached})
			continue
		}
		eligible = append(eligible, o)
	}

	result, err := s.resolver.Resolve(eligible, dctx.Subtotal(), dctx.Currency(), dctx.DecimalPlaces(), policy)
	if err != nil {
		return nil, err
	}
	result.DiscardedOffers = append(result.DiscardedOffers, dropped...)
	return result, nil
}

// redeemRule takes one global and one per-customer redemption of a rule,
// each as a single conditional update
func redeemRule(ctx context.Context, q db.Querier, ruleID, customerID uuid.UUID) error {
	rule, err := q.IncrementDiscountRuleUsage(ctx, ruleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &usageExhaustedError{RuleID: ruleID}
		}
		return fmt.Errorf("failed to increment rule usage: %w", err)
	}

	if _, err := q.IncrementCustomerRuleUsage(ctx, db.IncrementCustomerRuleUsageParams{
		RuleID:     ruleID,
		CustomerID: customerID,
		MaxUses:    rule.MaxRedemptionsPerCustomer,
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &usageExhaustedError{RuleID: ruleID}
		}
		return fmt.Errorf("failed to increment customer usage: %w", err)
	}
	return nil
}

func allocationInputs(dctx *business.DiscountContext) []business.AllocationLineInput {
	lines := dctx.EffectiveLines()
	inputs := make([]business.AllocationLineInput, len(lines))
	for i, li := range lines {
		inputs[i] = business.AllocationLineInput{LineItemID: li.LineItemID, Amount: li.Amount}
	}
	return inputs
}

func (s *DiscountService) afterCalculate(ctx context.Context, dctx *business.DiscountContext, result *business.CombinationResult, allocation *business.AllocationWithLines, actor uuid.UUID) {
	fields := []zap.Field{
		zap.String("workspace_id", dctx.WorkspaceID().String()),
		zap.String("customer_id", dctx.CustomerID().String()),
		zap.String("subtotal", result.Subtotal.String()),
		zap.String("total_discount", result.TotalDiscount.String()),
		zap.Int("applied_offers", len(result.AppliedOffers)),
	}
	if ref := dctx.Transaction(); ref != nil {
		fields = append(fields, zap.String("transaction_type", ref.Type), zap.String("transaction_id", ref.ID))
	}
	s.logger.Info("Discount committed", fields...)

	if s.audit != nil {
		for _, o := range result.AppliedOffers {
			entry := business.AuditEntry{
				WorkspaceID: dctx.WorkspaceID(),
				EntityType:  business.AuditEntityDiscountRule,
				EntityID:    o.RuleID,
				Action:      business.AuditActionRuleRedeemed,
				ActorID:     &actor,
				Details: map[string]interface{}{
					"customer_id": dctx.CustomerID().String(),
					"amount":      o.Amount.String(),
				},
			}
			if err := s.audit.Record(ctx, entry); err != nil {
				s.logger.Error("Failed to audit rule redemption",
					zap.String("rule_id", o.RuleID.String()),
					zap.Error(err))
			}
		}
	}

	if allocation != nil {
		s.allocations.AfterCommit(ctx, allocation, result.AppliedRuleIDs(), &actor)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"go.uber.org/zap"
)

// PromotionalRuleSource turns an entered promo code into an offer
type PromotionalRuleSource struct {
	queries db.Querier
	logger  *zap.Logger
}

// NewPromotionalRuleSource creates a new promotional rule source
func NewPromotionalRuleSource(queries db.Querier) *PromotionalRuleSource {
	return &PromotionalRuleSource{
		queries: queries,
		logger:  logger.Log,
	}
}

func (s *PromotionalRuleSource) Name() string {
	return business.DiscountSourcePromotional
}

// FindCandidates returns the code's offer when the context carries a valid promo code
func (s *PromotionalRuleSource) FindCandidates(ctx context.Context, dctx *business.DiscountContext) ([]business.DiscountOffer, error) {
	if dctx.PromoCode() == "" {
		return []business.DiscountOffer{}, nil
	}

	result, err := s.ValidateCode(ctx, dctx)
	if err != nil {
		return nil, err
	}
	if !result.Valid || result.Offer == nil {
		s.logger.Debug("Promo code does not apply",
			zap.String("workspace_id", dctx.WorkspaceID().String()),
			zap.String("reason", result.Reason))
		return []business.DiscountOffer{}, nil
	}
	return []business.DiscountOffer{*result.Offer}, nil
}

// ValidateCode explains whether the context's promo code applies and, if not, why
func (s *PromotionalRuleSource) ValidateCode(ctx context.Context, dctx *business.DiscountContext) (*business.CodeValidationResult, error) {
	code := dctx.PromoCode()
	result := &business.CodeValidationResult{Code: code}
	invalid := func(reason string) (*business.CodeValidationResult, error) {
		result.Reason = reason
		return result, nil
	}

	if code == "" {
		return invalid(business.CodeReasonNotFound)
	}

	rule, err := s.queries.GetPromotionalRuleByCode(ctx, db.GetPromotionalRuleByCodeParams{
		WorkspaceID: dctx.WorkspaceID(),
		PromoCode:   code,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invalid(business.CodeReasonNotFound)
		}
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}

	if !rule.IsActive {
		return invalid(business.CodeReasonInactive)
	}
	if reason := ruleValidityReason(rule, dctx.EvaluatedAt()); reason != "" {
		return invalid(reason)
	}
	if rule.MaxRedemptions.Valid && rule.UsageCount >= rule.MaxRedemptions.Int32 {
		return invalid(business.CodeReasonUsageLimitReached)
	}
	if rule.MaxRedemptionsPerCustomer.Valid {
		used, err := s.queries.GetCustomerRuleUsage(ctx, db.GetCustomerRuleUsageParams{
			RuleID:     rule.ID,
			CustomerID: dctx.CustomerID(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read customer usage: %w", err)
		}
		if used >= rule.MaxRedemptionsPerCustomer.Int32 {
			return invalid(business.CodeReasonCustomerLimitReached)
		}
	}
	if !ruleAllowsSegment(rule, dctx.CustomerSegment()) {
		return invalid(business.CodeReasonSegmentNotEligible)
	}

	lines := scopedLines(rule, dctx.EffectiveLines())
	scopeAmount, _ := sumLines(lines)
	amount := computeDiscountAmount(rule.DiscountType, rule.DiscountValue, scopeAmount, dctx.DecimalPlaces())
	if len(lines) == 0 || !amount.IsPositive() {
		return invalid(business.CodeReasonNoEligibleItems)
	}

	offer := offerFromRule(rule, rule.DiscountType, rule.DiscountValue, amount, scopeAmount,
		fmt.Sprintf("Promo code %s: %s", code, describeDiscount(rule.DiscountType, rule.DiscountValue, dctx.Currency())))
	result.Valid = true
	result.Offer = &offer
	return result, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// VolumeTierSource offers quantity and spend based discounts
type VolumeTierSource struct {
	queries db.Querier
	logger  *zap.Logger
}

// NewVolumeTierSource creates a new volume tier source
func NewVolumeTierSource(queries db.Querier) *VolumeTierSource {
	return &VolumeTierSource{
		queries: queries,
		logger:  logger.Log,
	}
}

func (s *VolumeTierSource) Name() string {
	return business.DiscountSourceVolume
}

// FindCandidates measures each active volume rule's in-scope quantity and
// amount and offers the best tier reached, if any
func (s *VolumeTierSource) FindCandidates(ctx context.Context, dctx *business.DiscountContext) ([]business.DiscountOffer, error) {
	rules, err := s.queries.ListActiveDiscountRulesBySource(ctx, db.ListActiveDiscountRulesBySourceParams{
		WorkspaceID: dctx.WorkspaceID(),
		Source:      business.DiscountSourceVolume,
		At:          helpers.TimeToNullableTimestamptz(dctx.EvaluatedAt()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list volume rules: %w", err)
	}
	if len(rules) == 0 {
		return []business.DiscountOffer{}, nil
	}

	ruleIDs := make([]uuid.UUID, len(rules))
	for i, r := range rules {
		ruleIDs[i] = r.ID
	}
	tiers, err := s.queries.ListVolumeTiersByRuleIDs(ctx, ruleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list volume tiers: %w", err)
	}
	tiersByRule := make(map[uuid.UUID][]db.DiscountVolumeTier, len(rules))
	for _, t := range tiers {
		tiersByRule[t.RuleID] = append(tiersByRule[t.RuleID], t)
	}

	offers := make([]business.DiscountOffer, 0, len(rules))
	lines := dctx.EffectiveLines()
	for _, rule := range rules {
		if !ruleAllowsSegment(rule, dctx.CustomerSegment()) {
			continue
		}
		scoped := scopedLines(rule, lines)
		if len(scoped) == 0 {
			continue
		}
		scopeAmount, scopeQuantity := sumLines(scoped)

		tier, ok := bestVolumeTier(tiersByRule[rule.ID], scopeQuantity, scopeAmount)
		if !ok {
			continue
		}

		amount := computeDiscountAmount(tier.DiscountType, tier.DiscountValue, scopeAmount, dctx.DecimalPlaces())
		if !amount.IsPositive() {
			continue
		}

		description := fmt.Sprintf("Volume %s >= %s: %s", tier.ThresholdType, tier.Threshold.String(),
			describeDiscount(tier.DiscountType, tier.DiscountValue, dctx.Currency()))
		offers = append(offers, offerFromRule(rule, tier.DiscountType, tier.DiscountValue, amount, scopeAmount, description))
	}

	s.logger.Debug("Volume tiers evaluated",
		zap.String("workspace_id", dctx.WorkspaceID().String()),
		zap.Int("rules", len(rules)),
		zap.Int("offers", len(offers)))

	return offers, nil
}

// bestVolumeTier picks the highest threshold the measures reach. Equal
// thresholds prefer the larger discount value.
func bestVolumeTier(tiers []db.DiscountVolumeTier, quantity, amount decimal.Decimal) (db.DiscountVolumeTier, bool) {
	var best db.DiscountVolumeTier
	found := false
	for _, t := range tiers {
		measure := quantity
		if t.ThresholdType == business.VolumeThresholdAmount {
			measure = amount
		}
		if t.Threshold.GreaterThan(measure) {
			continue
		}
		switch {
		case !found:
			best, found = t, true
		case t.Threshold.GreaterThan(best.Threshold):
			best = t
		case t.Threshold.Equal(best.Threshold) && t.DiscountValue.GreaterThan(best.DiscountValue):
			best = t
		}
	}
	return best, found
}

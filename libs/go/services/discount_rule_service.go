package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/diegoholiveira/jsonlogic/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation     = "23505"
	defaultRuleListLimit  = 20
	maxRuleListLimit      = 100
	maxPromoCodeLength    = 64
	maxEarlyPaymentPeriod = 365
)

// DiscountRuleService manages the discount rule lifecycle
type DiscountRuleService struct {
	queries db.Querier
	tx      interfaces.TxRunner
	audit   interfaces.AuditLogger
	logger  *zap.Logger
}

// NewDiscountRuleService creates a new rule service. audit may be nil.
func NewDiscountRuleService(queries db.Querier, tx interfaces.TxRunner, audit interfaces.AuditLogger) *DiscountRuleService {
	return &DiscountRuleService{
		queries: queries,
		tx:      tx,
		audit:   audit,
		logger:  logger.Log,
	}
}

func isValidSource(source string) bool {
	switch source {
	case business.DiscountSourcePromotional, business.DiscountSourceEarlyPayment,
		business.DiscountSourceVolume, business.DiscountSourceAttributeBased:
		return true
	}
	return false
}

func validateDiscountValue(verr *business.ValidationError, field, discountType string, value decimal.Decimal) {
	switch discountType {
	case business.DiscountTypePercentage, business.DiscountTypeFixedAmount:
	default:
		verr.Add(field+"discount_type", "must be percentage or fixed_amount")
		return
	}
	if !value.IsPositive() {
		verr.Add(field+"discount_value", "must be greater than zero")
	}
	if discountType == business.DiscountTypePercentage && value.GreaterThan(hundred) {
		verr.Add(field+"discount_value", "must not exceed 100 for a percentage")
	}
}

// ValidateRuleParams checks the common fields and the source-specific ones
func ValidateRuleParams(p *params.CreateDiscountRuleParams) error {
	verr := &business.ValidationError{}

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		verr.Add("name", "is required")
	}
	if !isValidSource(p.Source) {
		verr.Add("source", "must be promotional, early_payment, volume or attribute_based")
		return verr
	}
	if p.StackingPolicy == "" {
		p.StackingPolicy = business.StackingStackable
	}
	if p.StackingPolicy != business.StackingStackable && p.StackingPolicy != business.StackingExclusive {
		verr.Add("stacking_policy", "must be exclusive or stackable")
	}
	if p.ValidFrom != nil && p.ValidUntil != nil && !p.ValidUntil.After(*p.ValidFrom) {
		verr.Add("valid_until", "must be after valid_from")
	}
	if p.MaxRedemptions != nil && *p.MaxRedemptions <= 0 {
		verr.Add("max_redemptions", "must be greater than zero")
	}
	if p.MaxRedemptionsPerCustomer != nil && *p.MaxRedemptionsPerCustomer <= 0 {
		verr.Add("max_redemptions_per_customer", "must be greater than zero")
	}

	if p.Source != business.DiscountSourcePromotional && p.PromoCode != nil {
		verr.Add("promo_code", "is only allowed on promotional rules")
	}
	if p.Source != business.DiscountSourceEarlyPayment && p.DiscountDays != nil {
		verr.Add("discount_days", "is only allowed on early_payment rules")
	}
	if p.Source != business.DiscountSourceVolume && len(p.VolumeTiers) > 0 {
		verr.Add("volume_tiers", "are only allowed on volume rules")
	}
	if p.Source != business.DiscountSourceAttributeBased && (len(p.Conditions) > 0 || p.PricingMode != nil) {
		verr.Add("conditions", "are only allowed on attribute_based rules")
	}

	switch p.Source {
	case business.DiscountSourcePromotional:
		if p.PromoCode == nil || strings.TrimSpace(*p.PromoCode) == "" {
			verr.Add("promo_code", "is required")
		} else {
			code := strings.TrimSpace(*p.PromoCode)
			if len(code) > maxPromoCodeLength || strings.ContainsAny(code, " \t\n") {
				verr.Add("promo_code", fmt.Sprintf("must be at most %d characters without spaces", maxPromoCodeLength))
			}
			p.PromoCode = &code
		}
		validateDiscountValue(verr, "", p.DiscountType, p.DiscountValue)

	case business.DiscountSourceEarlyPayment:
		if p.DiscountDays == nil || *p.DiscountDays <= 0 || *p.DiscountDays > maxEarlyPaymentPeriod {
			verr.Add("discount_days", fmt.Sprintf("must be between 1 and %d", maxEarlyPaymentPeriod))
		}
		validateDiscountValue(verr, "", p.DiscountType, p.DiscountValue)

	case business.DiscountSourceVolume:
		if len(p.VolumeTiers) == 0 {
			verr.Add("volume_tiers", "at least one tier is required")
		}
		for i, t := range p.VolumeTiers {
			field := fmt.Sprintf("volume_tiers[%d].", i)
			if t.ThresholdType != business.VolumeThresholdQuantity && t.ThresholdType != business.VolumeThresholdAmount {
				verr.Add(field+"threshold_type", "must be quantity or amount")
			}
			if !t.Threshold.IsPositive() {
				verr.Add(field+"threshold", "must be greater than zero")
			}
			validateDiscountValue(verr, field, t.DiscountType, t.DiscountValue)
		}
		// the rule row mirrors its first tier when no headline value is given
		if p.DiscountType == "" && len(p.VolumeTiers) > 0 {
			p.DiscountType = p.VolumeTiers[0].DiscountType
			p.DiscountValue = p.VolumeTiers[0].DiscountValue
		}

	case business.DiscountSourceAttributeBased:
		mode := business.PricingModeDelta
		if p.PricingMode != nil {
			mode = *p.PricingMode
		}
		switch mode {
		case business.PricingModeDelta:
			validateDiscountValue(verr, "", p.DiscountType, p.DiscountValue)
		case business.PricingModeOverride:
			if p.DiscountType == "" {
				p.DiscountType = business.DiscountTypeFixedAmount
			}
			if p.DiscountType != business.DiscountTypeFixedAmount {
				verr.Add("discount_type", "must be fixed_amount for override pricing")
			}
			if p.DiscountValue.IsNegative() {
				verr.Add("discount_value", "must not be negative")
			}
		default:
			verr.Add("pricing_mode", "must be delta or override")
		}
		p.PricingMode = &mode
		if len(p.Conditions) > 0 {
			if !json.Valid(p.Conditions) || !jsonlogic.IsValid(bytes.NewReader(p.Conditions)) {
				verr.Add("conditions", "must be a valid JSON-logic expression")
			}
		}
	}

	return verr.OrNil()
}

// CreateRule validates and stores a rule together with its volume tiers
func (s *DiscountRuleService) CreateRule(ctx context.Context, p params.CreateDiscountRuleParams) (*db.DiscountRule, []db.DiscountVolumeTier, error) {
	if p.WorkspaceID == uuid.Nil {
		return nil, nil, business.NewValidationError("workspace_id", "is required")
	}
	if err := ValidateRuleParams(&p); err != nil {
		return nil, nil, err
	}

	var conditions []byte
	if len(p.Conditions) > 0 {
		conditions = []byte(p.Conditions)
	}

	var (
		rule  db.DiscountRule
		tiers []db.DiscountVolumeTier
	)
	err := s.tx.RunInTransaction(ctx, func(q db.Querier) error {
		var err error
		rule, err = q.CreateDiscountRule(ctx, db.CreateDiscountRuleParams{
			WorkspaceID:               p.WorkspaceID,
			Name:                      p.Name,
			Source:                    p.Source,
			DiscountType:              p.DiscountType,
			DiscountValue:             p.DiscountValue,
			CategoryIds:               nonNilUUIDs(p.CategoryIDs),
			ServiceIds:                nonNilUUIDs(p.ServiceIDs),
			CustomerSegments:          nonNilStrings(p.CustomerSegments),
			ValidFrom:                 helpers.TimePtrToNullableTimestamptz(p.ValidFrom),
			ValidUntil:                helpers.TimePtrToNullableTimestamptz(p.ValidUntil),
			MaxRedemptions:            helpers.Int32PtrToNullableInt4(p.MaxRedemptions),
			MaxRedemptionsPerCustomer: helpers.Int32PtrToNullableInt4(p.MaxRedemptionsPerCustomer),
			StackingPolicy:            p.StackingPolicy,
			Priority:                  p.Priority,
			PromoCode:                 helpers.StringPtrToNullableText(p.PromoCode),
			DiscountDays:              helpers.Int32PtrToNullableInt4(p.DiscountDays),
			Conditions:                conditions,
			PricingMode:               helpers.StringPtrToNullableText(p.PricingMode),
			CreatedBy:                 helpers.UUIDPtrToNullableUUID(p.CreatedBy),
		})
		if err != nil {
			return err
		}

		tiers = make([]db.DiscountVolumeTier, 0, len(p.VolumeTiers))
		for _, t := range p.VolumeTiers {
			tier, err := q.CreateVolumeTier(ctx, db.CreateVolumeTierParams{
				RuleID:        rule.ID,
				ThresholdType: t.ThresholdType,
				Threshold:     t.Threshold,
				DiscountType:  t.DiscountType,
				DiscountValue: t.DiscountValue,
			})
			if err != nil {
				return err
			}
			tiers = append(tiers, tier)
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, nil, &business.ConflictError{Resource: "discount_rule", Reason: "a rule with this promo code already exists"}
		}
		s.logger.Error("Failed to create discount rule",
			zap.String("workspace_id", p.WorkspaceID.String()),
			zap.String("source", p.Source),
			zap.Error(err))
		return nil, nil, fmt.Errorf("failed to create discount rule: %w", err)
	}

	s.logger.Info("Discount rule created",
		zap.String("workspace_id", p.WorkspaceID.String()),
		zap.String("rule_id", rule.ID.String()),
		zap.String("source", rule.Source))
	s.record(ctx, business.AuditEntry{
		WorkspaceID: p.WorkspaceID,
		EntityType:  business.AuditEntityDiscountRule,
		EntityID:    rule.ID,
		Action:      business.AuditActionRuleCreated,
		ActorID:     p.CreatedBy,
		Details: map[string]interface{}{
			"name":           rule.Name,
			"source":         rule.Source,
			"discount_type":  rule.DiscountType,
			"discount_value": rule.DiscountValue.String(),
			"tiers":          len(tiers),
		},
	})

	return &rule, tiers, nil
}

func nonNilUUIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// GetRule returns a rule of the workspace
func (s *DiscountRuleService) GetRule(ctx context.Context, workspaceID, ruleID uuid.UUID) (*db.DiscountRule, error) {
	rule, err := s.queries.GetDiscountRule(ctx, db.GetDiscountRuleParams{ID: ruleID, WorkspaceID: workspaceID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("discount rule %s: %w", ruleID, business.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get discount rule: %w", err)
	}
	return &rule, nil
}

// ListRules lists the workspace's rules, newest first
func (s *DiscountRuleService) ListRules(ctx context.Context, p params.ListDiscountRulesParams) ([]db.DiscountRule, error) {
	if p.Source != "" && !isValidSource(p.Source) {
		return nil, business.NewValidationError("source", "must be promotional, early_payment, volume or attribute_based")
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultRuleListLimit
	}
	if limit > maxRuleListLimit {
		limit = maxRuleListLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	rules, err := s.queries.ListDiscountRules(ctx, db.ListDiscountRulesParams{
		WorkspaceID:     p.WorkspaceID,
		Source:          helpers.StringToNullableText(p.Source),
		IncludeInactive: p.IncludeInactive,
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list discount rules: %w", err)
	}
	return rules, nil
}

// DeactivateRule soft-deactivates a rule. Rules are never deleted.
func (s *DiscountRuleService) DeactivateRule(ctx context.Context, workspaceID, ruleID uuid.UUID, actorID *uuid.UUID) (*db.DiscountRule, error) {
	rule, err := s.queries.DeactivateDiscountRule(ctx, db.DeactivateDiscountRuleParams{ID: ruleID, WorkspaceID: workspaceID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("discount rule %s: %w", ruleID, business.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to deactivate discount rule: %w", err)
	}

	s.logger.Info("Discount rule deactivated",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("rule_id", ruleID.String()))
	s.record(ctx, business.AuditEntry{
		WorkspaceID: workspaceID,
		EntityType:  business.AuditEntityDiscountRule,
		EntityID:    ruleID,
		Action:      business.AuditActionRuleDeactivated,
		ActorID:     actorID,
	})
	return &rule, nil
}

func (s *DiscountRuleService) record(ctx context.Context, entry business.AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Error("Failed to write rule audit entry",
			zap.String("entity_id", entry.EntityID.String()),
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}

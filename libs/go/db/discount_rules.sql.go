package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const discountRuleColumns = `id, workspace_id, name, source, discount_type, discount_value, category_ids, service_ids,
    customer_segments, valid_from, valid_until, max_redemptions, max_redemptions_per_customer, usage_count,
    stacking_policy, priority, promo_code, discount_days, conditions, pricing_mode, is_active, created_by,
    created_at, updated_at, deactivated_at`

func scanDiscountRule(row pgx.Row) (DiscountRule, error) {
	var i DiscountRule
	err := row.Scan(
		&i.ID,
		&i.WorkspaceID,
		&i.Name,
		&i.Source,
		&i.DiscountType,
		&i.DiscountValue,
		&i.CategoryIds,
		&i.ServiceIds,
		&i.CustomerSegments,
		&i.ValidFrom,
		&i.ValidUntil,
		&i.MaxRedemptions,
		&i.MaxRedemptionsPerCustomer,
		&i.UsageCount,
		&i.StackingPolicy,
		&i.Priority,
		&i.PromoCode,
		&i.DiscountDays,
		&i.Conditions,
		&i.PricingMode,
		&i.IsActive,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeactivatedAt,
	)
	return i, err
}

func collectDiscountRules(rows pgx.Rows) ([]DiscountRule, error) {
	defer rows.Close()
	items := []DiscountRule{}
	for rows.Next() {
		i, err := scanDiscountRule(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createDiscountRule = `-- name: CreateDiscountRule :one
INSERT INTO discount_rules (
    workspace_id, name, source, discount_type, discount_value, category_ids, service_ids, customer_segments,
    valid_from, valid_until, max_redemptions, max_redemptions_per_customer, stacking_policy, priority,
    promo_code, discount_days, conditions, pricing_mode, created_by
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
)
RETURNING ` + discountRuleColumns

type CreateDiscountRuleParams struct {
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
	StackingPolicy            string             `json:"stacking_policy"`
	Priority                  int32              `json:"priority"`
	PromoCode                 pgtype.Text        `json:"promo_code"`
	DiscountDays              pgtype.Int4        `json:"discount_days"`
	Conditions                []byte             `json:"conditions"`
	PricingMode               pgtype.Text        `json:"pricing_mode"`
	CreatedBy                 pgtype.UUID        `json:"created_by"`
}

func (q *Queries) CreateDiscountRule(ctx context.Context, arg CreateDiscountRuleParams) (DiscountRule, error) {
	row := q.db.QueryRow(ctx, createDiscountRule,
		arg.WorkspaceID,
		arg.Name,
		arg.Source,
		arg.DiscountType,
		arg.DiscountValue,
		arg.CategoryIds,
		arg.ServiceIds,
		arg.CustomerSegments,
		arg.ValidFrom,
		arg.ValidUntil,
		arg.MaxRedemptions,
		arg.MaxRedemptionsPerCustomer,
		arg.StackingPolicy,
		arg.Priority,
		arg.PromoCode,
		arg.DiscountDays,
		arg.Conditions,
		arg.PricingMode,
		arg.CreatedBy,
	)
	return scanDiscountRule(row)
}

const getDiscountRule = `-- name: GetDiscountRule :one
SELECT ` + discountRuleColumns + `
FROM discount_rules
WHERE id = $1 AND workspace_id = $2`

type GetDiscountRuleParams struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

func (q *Queries) GetDiscountRule(ctx context.Context, arg GetDiscountRuleParams) (DiscountRule, error) {
	row := q.db.QueryRow(ctx, getDiscountRule, arg.ID, arg.WorkspaceID)
	return scanDiscountRule(row)
}

const listDiscountRules = `-- name: ListDiscountRules :many
SELECT ` + discountRuleColumns + `
FROM discount_rules
WHERE workspace_id = $1
  AND ($2::text IS NULL OR source = $2::text)
  AND ($3::bool OR is_active)
ORDER BY created_at DESC, id
LIMIT $4 OFFSET $5`

type ListDiscountRulesParams struct {
	WorkspaceID     uuid.UUID   `json:"workspace_id"`
	Source          pgtype.Text `json:"source"`
	IncludeInactive bool        `json:"include_inactive"`
	Limit           int32       `json:"limit"`
	Offset          int32       `json:"offset"`
}

func (q *Queries) ListDiscountRules(ctx context.Context, arg ListDiscountRulesParams) ([]DiscountRule, error) {
	rows, err := q.db.Query(ctx, listDiscountRules,
		arg.WorkspaceID,
		arg.Source,
		arg.IncludeInactive,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	return collectDiscountRules(rows)
}

const listActiveDiscountRulesBySource = `-- name: ListActiveDiscountRulesBySource :many
SELECT ` + discountRuleColumns + `
FROM discount_rules
WHERE workspace_id = $1
  AND source = $2
  AND is_active
  AND (valid_from IS NULL OR valid_from <= $3)
  AND (valid_until IS NULL OR valid_until >= $3)
ORDER BY priority DESC, created_at, id`

type ListActiveDiscountRulesBySourceParams struct {
	WorkspaceID uuid.UUID          `json:"workspace_id"`
	Source      string             `json:"source"`
	At          pgtype.Timestamptz `json:"at"`
}

func (q *Queries) ListActiveDiscountRulesBySource(ctx context.Context, arg ListActiveDiscountRulesBySourceParams) ([]DiscountRule, error) {
	rows, err := q.db.Query(ctx, listActiveDiscountRulesBySource, arg.WorkspaceID, arg.Source, arg.At)
	if err != nil {
		return nil, err
	}
	return collectDiscountRules(rows)
}

const getPromotionalRuleByCode = `-- name: GetPromotionalRuleByCode :one
SELECT ` + discountRuleColumns + `
FROM discount_rules
WHERE workspace_id = $1
  AND source = 'promotional'
  AND LOWER(promo_code) = LOWER($2)`

type GetPromotionalRuleByCodeParams struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	PromoCode   string    `json:"promo_code"`
}

func (q *Queries) GetPromotionalRuleByCode(ctx context.Context, arg GetPromotionalRuleByCodeParams) (DiscountRule, error) {
	row := q.db.QueryRow(ctx, getPromotionalRuleByCode, arg.WorkspaceID, arg.PromoCode)
	return scanDiscountRule(row)
}

const deactivateDiscountRule = `-- name: DeactivateDiscountRule :one
UPDATE discount_rules
SET is_active = FALSE,
    deactivated_at = COALESCE(deactivated_at, NOW()),
    updated_at = NOW()
WHERE id = $1 AND workspace_id = $2
RETURNING ` + discountRuleColumns

type DeactivateDiscountRuleParams struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

func (q *Queries) DeactivateDiscountRule(ctx context.Context, arg DeactivateDiscountRuleParams) (DiscountRule, error) {
	row := q.db.QueryRow(ctx, deactivateDiscountRule, arg.ID, arg.WorkspaceID)
	return scanDiscountRule(row)
}

// Returns pgx.ErrNoRows when the rule is inactive or its global limit is
// already reached.
const incrementDiscountRuleUsage = `-- name: IncrementDiscountRuleUsage :one
UPDATE discount_rules
SET usage_count = usage_count + 1,
    updated_at = NOW()
WHERE id = $1
  AND is_active
  AND (max_redemptions IS NULL OR usage_count < max_redemptions)
RETURNING ` + discountRuleColumns

func (q *Queries) IncrementDiscountRuleUsage(ctx context.Context, id uuid.UUID) (DiscountRule, error) {
	row := q.db.QueryRow(ctx, incrementDiscountRuleUsage, id)
	return scanDiscountRule(row)
}

const getCustomerRuleUsage = `-- name: GetCustomerRuleUsage :one
SELECT COALESCE((
    SELECT usage_count FROM discount_rule_customer_usage
    WHERE rule_id = $1 AND customer_id = $2
), 0)::int AS usage_count`

type GetCustomerRuleUsageParams struct {
	RuleID     uuid.UUID `json:"rule_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

func (q *Queries) GetCustomerRuleUsage(ctx context.Context, arg GetCustomerRuleUsageParams) (int32, error) {
	row := q.db.QueryRow(ctx, getCustomerRuleUsage, arg.RuleID, arg.CustomerID)
	var usageCount int32
	err := row.Scan(&usageCount)
	return usageCount, err
}

// Returns pgx.ErrNoRows when the customer already used the rule MaxUses times.
const incrementCustomerRuleUsage = `-- name: IncrementCustomerRuleUsage :one
INSERT INTO discount_rule_customer_usage (rule_id, customer_id, usage_count, last_used_at)
VALUES ($1, $2, 1, NOW())
ON CONFLICT (rule_id, customer_id) DO UPDATE
SET usage_count = discount_rule_customer_usage.usage_count + 1,
    last_used_at = NOW()
WHERE $3::int IS NULL OR discount_rule_customer_usage.usage_count < $3::int
RETURNING usage_count`

type IncrementCustomerRuleUsageParams struct {
	RuleID     uuid.UUID   `json:"rule_id"`
	CustomerID uuid.UUID   `json:"customer_id"`
	MaxUses    pgtype.Int4 `json:"max_uses"`
}

func (q *Queries) IncrementCustomerRuleUsage(ctx context.Context, arg IncrementCustomerRuleUsageParams) (int32, error) {
	row := q.db.QueryRow(ctx, incrementCustomerRuleUsage, arg.RuleID, arg.CustomerID, arg.MaxUses)
	var usageCount int32
	err := row.Scan(&usageCount)
	return usageCount, err
}

const createVolumeTier = `-- name: CreateVolumeTier :one
INSERT INTO discount_volume_tiers (rule_id, threshold_type, threshold, discount_type, discount_value)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, rule_id, threshold_type, threshold, discount_type, discount_value, created_at`

type CreateVolumeTierParams struct {
	RuleID        uuid.UUID       `json:"rule_id"`
	ThresholdType string          `json:"threshold_type"`
	Threshold     decimal.Decimal `json:"threshold"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

func (q *Queries) CreateVolumeTier(ctx context.Context, arg CreateVolumeTierParams) (DiscountVolumeTier, error) {
	row := q.db.QueryRow(ctx, createVolumeTier,
		arg.RuleID,
		arg.ThresholdType,
		arg.Threshold,
		arg.DiscountType,
		arg.DiscountValue,
	)
	var i DiscountVolumeTier
	err := row.Scan(
		&i.ID,
		&i.RuleID,
		&i.ThresholdType,
		&i.Threshold,
		&i.DiscountType,
		&i.DiscountValue,
		&i.CreatedAt,
	)
	return i, err
}

const listVolumeTiersByRuleIDs = `-- name: ListVolumeTiersByRuleIDs :many
SELECT id, rule_id, threshold_type, threshold, discount_type, discount_value, created_at
FROM discount_volume_tiers
WHERE rule_id = ANY($1::uuid[])
ORDER BY rule_id, threshold, id`

func (q *Queries) ListVolumeTiersByRuleIDs(ctx context.Context, ruleIds []uuid.UUID) ([]DiscountVolumeTier, error) {
	rows, err := q.db.Query(ctx, listVolumeTiersByRuleIDs, ruleIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []DiscountVolumeTier{}
	for rows.Next() {
		var i DiscountVolumeTier
		if err := rows.Scan(
			&i.ID,
			&i.RuleID,
			&i.ThresholdType,
			&i.Threshold,
			&i.DiscountType,
			&i.DiscountValue,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

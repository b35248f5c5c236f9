package services

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed config/discount_policy_defaults.yaml
var defaultPolicyYAML []byte

// policyFile mirrors the defaults file. Percentages are strings so they parse
// as exact decimals.
type policyFile struct {
	MaxDiscountPercent             string `yaml:"max_discount_percent"`
	ApprovalThresholdPercent       string `yaml:"approval_threshold_percent"`
	SecondApprovalThresholdPercent string `yaml:"second_approval_threshold_percent"`
	ApprovalAmountThreshold        string `yaml:"approval_amount_threshold"`
	ApprovalExpirySeconds          int32  `yaml:"approval_expiry_seconds"`
	ApprovalExpiryAction           string `yaml:"approval_expiry_action"`
}

func parseOptionalDecimal(field, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &d, nil
}

// ParseDiscountPolicy reads a policy from YAML and validates it
func ParseDiscountPolicy(data []byte) (business.DiscountPolicy, error) {
	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return business.DiscountPolicy{}, fmt.Errorf("failed to parse discount policy: %w", err)
	}

	policy := business.DiscountPolicy{
		ApprovalExpirySeconds: file.ApprovalExpirySeconds,
		ApprovalExpiryAction:  file.ApprovalExpiryAction,
	}
	if policy.ApprovalExpiryAction == "" {
		policy.ApprovalExpiryAction = business.ApprovalExpiryActionNone
	}

	var err error
	if policy.MaxDiscountPercent, err = parseOptionalDecimal("max_discount_percent", file.MaxDiscountPercent); err != nil {
		return business.DiscountPolicy{}, err
	}
	threshold, err := parseOptionalDecimal("approval_threshold_percent", file.ApprovalThresholdPercent)
	if err != nil {
		return business.DiscountPolicy{}, err
	}
	if threshold == nil {
		return business.DiscountPolicy{}, errors.New("approval_threshold_percent is required")
	}
	policy.ApprovalThresholdPercent = *threshold
	if policy.SecondApprovalThresholdPercent, err = parseOptionalDecimal("second_approval_threshold_percent", file.SecondApprovalThresholdPercent); err != nil {
		return business.DiscountPolicy{}, err
	}
	if policy.ApprovalAmountThreshold, err = parseOptionalDecimal("approval_amount_threshold", file.ApprovalAmountThreshold); err != nil {
		return business.DiscountPolicy{}, err
	}

	if err := ValidateDiscountPolicy(policy); err != nil {
		return business.DiscountPolicy{}, err
	}
	return policy, nil
}

// DefaultDiscountPolicy returns the policy for workspaces without saved settings
func DefaultDiscountPolicy() business.DiscountPolicy {
	policy, err := ParseDiscountPolicy(defaultPolicyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded discount policy defaults are invalid: %v", err))
	}
	return policy
}

// ValidateDiscountPolicy checks ranges and the relationship between thresholds
func ValidateDiscountPolicy(p business.DiscountPolicy) error {
	verr := &business.ValidationError{}
	if p.MaxDiscountPercent != nil && (!p.MaxDiscountPercent.IsPositive() || p.MaxDiscountPercent.GreaterThan(hundred)) {
		verr.Add("max_discount_percent", "must be greater than 0 and at most 100")
	}
	if p.ApprovalThresholdPercent.IsNegative() || p.ApprovalThresholdPercent.GreaterThan(hundred) {
		verr.Add("approval_threshold_percent", "must be between 0 and 100")
	}
	if p.SecondApprovalThresholdPercent != nil {
		if p.SecondApprovalThresholdPercent.GreaterThan(hundred) {
			verr.Add("second_approval_threshold_percent", "must be at most 100")
		}
		if !p.SecondApprovalThresholdPercent.GreaterThan(p.ApprovalThresholdPercent) {
			verr.Add("second_approval_threshold_percent", "must be greater than approval_threshold_percent")
		}
	}
	if p.ApprovalAmountThreshold != nil && !p.ApprovalAmountThreshold.IsPositive() {
		verr.Add("approval_amount_threshold", "must be greater than 0")
	}
	if p.ApprovalExpirySeconds < 0 {
		verr.Add("approval_expiry_seconds", "must not be negative")
	}
	switch p.ApprovalExpiryAction {
	case business.ApprovalExpiryActionNone, business.ApprovalExpiryActionExpire, business.ApprovalExpiryActionReject:
	default:
		verr.Add("approval_expiry_action", "must be none, expire or reject")
	}
	return verr.OrNil()
}

// DiscountSettingsService resolves each workspace's discount policy
type DiscountSettingsService struct {
	queries  db.Querier
	cache    interfaces.SettingsCache
	audit    interfaces.AuditLogger
	defaults business.DiscountPolicy
	logger   *zap.Logger
}

// NewDiscountSettingsService creates a new settings service. cache and audit may be nil.
func NewDiscountSettingsService(queries db.Querier, cache interfaces.SettingsCache, audit interfaces.AuditLogger) *DiscountSettingsService {
	return &DiscountSettingsService{
		queries:  queries,
		cache:    cache,
		audit:    audit,
		defaults: DefaultDiscountPolicy(),
		logger:   logger.Log,
	}
}

func policyFromSettings(s db.WorkspaceDiscountSetting) business.DiscountPolicy {
	return business.DiscountPolicy{
		MaxDiscountPercent:             helpers.NullDecimalToPtr(s.MaxDiscountPercent),
		ApprovalThresholdPercent:       s.ApprovalThresholdPercent,
		SecondApprovalThresholdPercent: helpers.NullDecimalToPtr(s.SecondApprovalThresholdPercent),
		ApprovalAmountThreshold:        helpers.NullDecimalToPtr(s.ApprovalAmountThreshold),
		ApprovalExpirySeconds:          s.ApprovalExpirySeconds,
		ApprovalExpiryAction:           s.ApprovalExpiryAction,
	}
}

// GetPolicy returns the workspace's saved policy, or the defaults
func (s *DiscountSettingsService) GetPolicy(ctx context.Context, workspaceID uuid.UUID) (business.DiscountPolicy, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, workspaceID)
		if err != nil {
			s.logger.Warn("Discount settings cache read failed",
				zap.String("workspace_id", workspaceID.String()),
				zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	policy := s.defaults
	settings, err := s.queries.GetWorkspaceDiscountSettings(ctx, workspaceID)
	switch {
	case err == nil:
		policy = policyFromSettings(settings)
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return business.DiscountPolicy{}, fmt.Errorf("failed to load discount settings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, workspaceID, policy); err != nil {
			s.logger.Warn("Discount settings cache write failed",
				zap.String("workspace_id", workspaceID.String()),
				zap.Error(err))
		}
	}
	return policy, nil
}

// UpdatePolicy validates and saves the workspace's policy
func (s *DiscountSettingsService) UpdatePolicy(ctx context.Context, params params.UpdateDiscountSettingsParams) (business.DiscountPolicy, error) {
	if params.Policy.ApprovalExpiryAction == "" {
		params.Policy.ApprovalExpiryAction = business.ApprovalExpiryActionNone
	}
	if err := ValidateDiscountPolicy(params.Policy); err != nil {
		return business.DiscountPolicy{}, err
	}

	saved, err := s.queries.UpsertWorkspaceDiscountSettings(ctx, db.UpsertWorkspaceDiscountSettingsParams{
		WorkspaceID:                    params.WorkspaceID,
		MaxDiscountPercent:             helpers.DecimalPtrToNullDecimal(params.Policy.MaxDiscountPercent),
		ApprovalThresholdPercent:       params.Policy.ApprovalThresholdPercent,
		SecondApprovalThresholdPercent: helpers.DecimalPtrToNullDecimal(params.Policy.SecondApprovalThresholdPercent),
		ApprovalAmountThreshold:        helpers.DecimalPtrToNullDecimal(params.Policy.ApprovalAmountThreshold),
		ApprovalExpirySeconds:          params.Policy.ApprovalExpirySeconds,
		ApprovalExpiryAction:           params.Policy.ApprovalExpiryAction,
		UpdatedBy:                      helpers.UUIDPtrToNullableUUID(params.UpdatedBy),
	})
	if err != nil {
		return business.DiscountPolicy{}, fmt.Errorf("failed to save discount settings: %w", err)
	}
	policy := policyFromSettings(saved)

	if s.cache != nil {
		if err := s.cache.Delete(ctx, params.WorkspaceID); err != nil {
			s.logger.Warn("Discount settings cache invalidation failed",
				zap.String("workspace_id", params.WorkspaceID.String()),
				zap.Error(err))
		}
	}

	if s.audit != nil {
		if err := s.audit.Record(ctx, business.AuditEntry{
			WorkspaceID: params.WorkspaceID,
			EntityType:  business.AuditEntityDiscountSettings,
			EntityID:    params.WorkspaceID,
			Action:      business.AuditActionSettingsUpdated,
			ActorID:     params.UpdatedBy,
			Details:     map[string]interface{}{"policy": policy},
		}); err != nil {
			s.logger.Error("Failed to audit discount settings update", zap.Error(err))
		}
	}

	s.logger.Info("Discount settings updated",
		zap.String("workspace_id", params.WorkspaceID.String()),
		zap.String("approval_threshold_percent", policy.ApprovalThresholdPercent.String()))

	return policy, nil
}

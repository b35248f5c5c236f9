package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"go.uber.org/zap"
)

const discountBodyLimit = 256 * 1024

// discountContextRules cover the fields every pricing request shares
var discountContextRules = []ValidationRule{
	{Field: "customer_id", Type: "uuid", Required: true},
	{Field: "currency", Type: "string", Required: true, Pattern: CurrencyRegex.String()},
	{Field: "subtotal", Type: "decimal", MinDecimal: decimalPtr("0")},
	{Field: "line_items", Type: "array", MaxItems: 500},
	{Field: "promo_code", Type: "string", MaxLength: 64},
	{Field: "evaluated_at", Type: "string"},
	{Field: "transaction", Type: "object", Custom: validateTransactionObject},
	{Field: "payment", Type: "object"},
}

func withContextRules(extra ...ValidationRule) []ValidationRule {
	rules := make([]ValidationRule, 0, len(discountContextRules)+len(extra))
	rules = append(rules, discountContextRules...)
	return append(rules, extra...)
}

var thresholdOverrideRule = ValidationRule{
	Field: "approval_threshold_percent", Type: "decimal", MinDecimal: decimalPtr("0"),
}

// PreviewDiscountValidation guards POST /discounts/preview and /discounts/validate-code
var PreviewDiscountValidation = ValidationConfig{
	MaxBodySize: discountBodyLimit,
	Rules:       withContextRules(thresholdOverrideRule),
}

// CalculateDiscountValidation guards POST /discounts/calculate
var CalculateDiscountValidation = ValidationConfig{
	MaxBodySize: discountBodyLimit,
	Rules: withContextRules(
		thresholdOverrideRule,
		ValidationRule{
			Field:         "allocation_method",
			Type:          "string",
			AllowedValues: []string{business.AllocationMethodProportional, business.AllocationMethodEqual},
		},
	),
}

// EarlyPaymentValidation guards POST /discounts/early-payment/evaluate
var EarlyPaymentValidation = ValidationConfig{
	MaxBodySize: 4 * 1024,
	Rules: []ValidationRule{
		{Field: "invoice_id", Type: "uuid", Required: true},
		{Field: "payment_date", Type: "string"},
	},
}

// CreateDiscountRuleValidation guards POST /discounts/rules. Cross-field
// checks live in the rule service.
var CreateDiscountRuleValidation = ValidationConfig{
	MaxBodySize: 64 * 1024,
	Rules: []ValidationRule{
		{Field: "name", Type: "string", Required: true, MinLength: 1, MaxLength: 200},
		{
			Field:    "source",
			Type:     "string",
			Required: true,
			AllowedValues: []string{
				business.DiscountSourcePromotional,
				business.DiscountSourceEarlyPayment,
				business.DiscountSourceVolume,
				business.DiscountSourceAttributeBased,
			},
		},
		{Field: "discount_type", Type: "string", AllowedValues: []string{business.DiscountTypePercentage, business.DiscountTypeFixedAmount}},
		{Field: "discount_value", Type: "decimal", MinDecimal: decimalPtr("0")},
		{Field: "category_ids", Type: "array", MaxItems: 200},
		{Field: "service_ids", Type: "array", MaxItems: 200},
		{Field: "customer_segments", Type: "array", MaxItems: 50},
		{Field: "valid_from", Type: "string"},
		{Field: "valid_until", Type: "string"},
		{Field: "max_redemptions", Type: "int", Min: float64Ptr(1)},
		{Field: "max_redemptions_per_customer", Type: "int", Min: float64Ptr(1)},
		{Field: "stacking_policy", Type: "string", AllowedValues: []string{business.StackingExclusive, business.StackingStackable}},
		{Field: "priority", Type: "int", Min: float64Ptr(0)},
		{Field: "promo_code", Type: "string", MaxLength: 64, Pattern: `^[A-Za-z0-9_-]+$`},
		{Field: "discount_days", Type: "int", Min: float64Ptr(0)},
		{Field: "conditions", Type: "object"},
		{Field: "pricing_mode", Type: "string", AllowedValues: []string{business.PricingModeDelta, business.PricingModeOverride}},
		{Field: "volume_tiers", Type: "array", MaxItems: 50},
	},
}

// RejectDiscountValidation guards POST /discounts/approvals/:id/reject
var RejectDiscountValidation = ValidationConfig{
	MaxBodySize: 4 * 1024,
	Rules: []ValidationRule{
		{Field: "reason", Type: "string", MaxLength: 1000},
	},
}

// AllocateDiscountValidation guards POST /discounts/allocations
var AllocateDiscountValidation = ValidationConfig{
	MaxBodySize: discountBodyLimit,
	Rules: []ValidationRule{
		{
			Field:         "transaction_type",
			Type:          "string",
			Required:      true,
			AllowedValues: []string{business.TransactionTypeInvoice, business.TransactionTypePOSSale},
		},
		{Field: "transaction_id", Type: "string", Required: true, MaxLength: 128},
		{Field: "currency", Type: "string", Required: true, Pattern: CurrencyRegex.String()},
		{Field: "method", Type: "string", AllowedValues: []string{business.AllocationMethodProportional, business.AllocationMethodEqual}},
		{Field: "total_discount", Type: "decimal", Required: true, MinDecimal: decimalPtr("0")},
		{Field: "lines", Type: "array", Required: true, MaxItems: 500},
		{Field: "approval_id", Type: "uuid"},
		{Field: "apply", Type: "boolean"},
		{Field: "applied_rule_ids", Type: "array", MaxItems: 100},
	},
}

// VoidAllocationValidation guards POST /discounts/allocations/:id/void
var VoidAllocationValidation = ValidationConfig{
	MaxBodySize: 4 * 1024,
	Rules: []ValidationRule{
		{Field: "reason", Type: "string", Required: true, MinLength: 1, MaxLength: 1000},
	},
}

// UpdateDiscountSettingsValidation guards PUT /discounts/settings
var UpdateDiscountSettingsValidation = ValidationConfig{
	MaxBodySize: 4 * 1024,
	Rules: []ValidationRule{
		{Field: "max_discount_percent", Type: "decimal", MinDecimal: decimalPtr("0")},
		{Field: "approval_threshold_percent", Type: "decimal", Required: true, MinDecimal: decimalPtr("0")},
		{Field: "second_approval_threshold_percent", Type: "decimal", MinDecimal: decimalPtr("0")},
		{Field: "approval_amount_threshold", Type: "decimal", MinDecimal: decimalPtr("0")},
		{Field: "approval_expiry_seconds", Type: "int", Min: float64Ptr(0)},
		{
			Field: "approval_expiry_action",
			Type:  "string",
			AllowedValues: []string{
				business.ApprovalExpiryActionNone,
				business.ApprovalExpiryActionExpire,
				business.ApprovalExpiryActionReject,
			},
		},
	},
}

// ListQueryValidation covers the paging and filter parameters of list endpoints
var ListQueryValidation = ValidationConfig{
	AllowUnknownFields: true,
	Rules: []ValidationRule{
		{Field: "page", Type: "string", Pattern: `^[1-9][0-9]{0,5}$`},
		{Field: "offset", Type: "string", Pattern: `^[0-9]{1,7}$`},
		{Field: "limit", Type: "string", Pattern: `^[1-9][0-9]{0,2}$`},
		{
			Field: "status",
			Type:  "string",
			AllowedValues: []string{
				business.ApprovalStatusPending,
				business.ApprovalStatusApproved,
				business.ApprovalStatusRejected,
				business.ApprovalStatusExpired,
			},
		},
		{
			Field: "source",
			Type:  "string",
			AllowedValues: []string{
				business.DiscountSourcePromotional,
				business.DiscountSourceEarlyPayment,
				business.DiscountSourceVolume,
				business.DiscountSourceAttributeBased,
			},
		},
		{Field: "include_inactive", Type: "string", AllowedValues: []string{"true", "false"}},
	},
}

func validateTransactionObject(value interface{}) error {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Errorf("must be an object")
	}
	txType, _ := obj["type"].(string)
	if txType != business.TransactionTypeInvoice && txType != business.TransactionTypePOSSale {
		return fmt.Errorf("type must be invoice or pos_sale")
	}
	if id, _ := obj["id"].(string); strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

// ValidateQueryParams validates URL query parameters as strings
func ValidateQueryParams(config ValidationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := make(map[string]interface{})
		for key, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		if errs := validateFields(params, config.Rules, config.AllowUnknownFields); len(errs) > 0 {
			LogWithCorrelationID(c.Request.Context()).Debug("Query parameters rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Any("errors", errs))
			c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrors{Errors: errs})
			return
		}

		c.Set("validatedQuery", params)
		c.Next()
	}
}

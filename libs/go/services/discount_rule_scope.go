package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
)

func containsUUID(ids []uuid.UUID, id *uuid.UUID) bool {
	if id == nil {
		return false
	}
	for _, candidate := range ids {
		if candidate == *id {
			return true
		}
	}
	return false
}

// ruleAllowsSegment reports whether the customer's segment is eligible. An
// empty segment list is unrestricted.
func ruleAllowsSegment(rule db.DiscountRule, segment string) bool {
	if len(rule.CustomerSegments) == 0 {
		return true
	}
	for _, s := range rule.CustomerSegments {
		if s == segment {
			return true
		}
	}
	return false
}

// lineInRuleScope matches a line against the rule's category and service
// lists. A rule with neither list covers every line.
func lineInRuleScope(rule db.DiscountRule, li business.LineItem) bool {
	if len(rule.CategoryIds) == 0 && len(rule.ServiceIds) == 0 {
		return true
	}
	return containsUUID(rule.CategoryIds, li.CategoryID) || containsUUID(rule.ServiceIds, li.ServiceID)
}

func scopedLines(rule db.DiscountRule, lines []business.LineItem) []business.LineItem {
	out := make([]business.LineItem, 0, len(lines))
	for _, li := range lines {
		if lineInRuleScope(rule, li) {
			out = append(out, li)
		}
	}
	return out
}

func sumLines(lines []business.LineItem) (amount, quantity decimal.Decimal) {
	amount, quantity = decimal.Zero, decimal.Zero
	for _, li := range lines {
		amount = amount.Add(li.Amount)
		quantity = quantity.Add(li.Quantity)
	}
	return amount, quantity
}

// ruleValidityReason returns "" when at falls inside the rule's validity
// window, otherwise the promo-code reason describing why not.
func ruleValidityReason(rule db.DiscountRule, at time.Time) string {
	if rule.ValidFrom.Valid && at.Before(rule.ValidFrom.Time) {
		return business.CodeReasonNotYetValid
	}
	if rule.ValidUntil.Valid && at.After(rule.ValidUntil.Time) {
		return business.CodeReasonExpired
	}
	return ""
}

// computeDiscountAmount applies a percentage or fixed value to the in-scope
// amount, never exceeding it, rounded to the currency's minor unit.
func computeDiscountAmount(discountType string, value, scopeAmount decimal.Decimal, places int32) decimal.Decimal {
	if !scopeAmount.IsPositive() || !value.IsPositive() {
		return decimal.Zero
	}
	var amount decimal.Decimal
	switch discountType {
	case business.DiscountTypePercentage:
		amount = scopeAmount.Mul(value).Div(hundred)
	case business.DiscountTypeFixedAmount:
		amount = value
	default:
		return decimal.Zero
	}
	if amount.GreaterThan(scopeAmount) {
		amount = scopeAmount
	}
	return helpers.RoundToMinorUnits(amount, places)
}

func describeDiscount(discountType string, value decimal.Decimal, currency string) string {
	if discountType == business.DiscountTypePercentage {
		return fmt.Sprintf("%s%% off", value.String())
	}
	return fmt.Sprintf("%s %s off", value.String(), currency)
}

func offerFromRule(rule db.DiscountRule, discountType string, value, amount, scopeAmount decimal.Decimal, description string) business.DiscountOffer {
	return business.DiscountOffer{
		RuleID:         rule.ID,
		RuleName:       rule.Name,
		Source:         rule.Source,
		DiscountType:   discountType,
		DiscountValue:  value,
		Amount:         amount,
		StackingPolicy: rule.StackingPolicy,
		Priority:       rule.Priority,
		ScopeAmount:    scopeAmount,
		Description:    description,
	}
}

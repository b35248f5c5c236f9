package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/diegoholiveira/jsonlogic/v3"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PricingRuleSource evaluates attribute-based pricing rules. Each rule's
// conditions are a JSON-logic expression evaluated once per line item.
type PricingRuleSource struct {
	queries db.Querier
	logger  *zap.Logger
}

// NewPricingRuleSource creates a new attribute-based pricing source
func NewPricingRuleSource(queries db.Querier) *PricingRuleSource {
	return &PricingRuleSource{
		queries: queries,
		logger:  logger.Log,
	}
}

func (s *PricingRuleSource) Name() string {
	return business.DiscountSourceAttributeBased
}

func (s *PricingRuleSource) FindCandidates(ctx context.Context, dctx *business.DiscountContext) ([]business.DiscountOffer, error) {
	rules, err := s.queries.ListActiveDiscountRulesBySource(ctx, db.ListActiveDiscountRulesBySourceParams{
		WorkspaceID: dctx.WorkspaceID(),
		Source:      business.DiscountSourceAttributeBased,
		At:          helpers.TimeToNullableTimestamptz(dctx.EvaluatedAt()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing rules: %w", err)
	}

	offers := make([]business.DiscountOffer, 0, len(rules))
	lines := dctx.EffectiveLines()
	for _, rule := range rules {
		if !ruleAllowsSegment(rule, dctx.CustomerSegment()) {
			continue
		}

		matched := make([]business.LineItem, 0, len(lines))
		for _, li := range scopedLines(rule, lines) {
			ok, err := s.lineMatches(rule, dctx, li)
			if err != nil {
				// a broken expression disables its own rule, not the whole discovery
				s.logger.Warn("Skipping pricing rule with invalid conditions",
					zap.String("rule_id", rule.ID.String()),
					zap.Error(err))
				matched = matched[:0]
				break
			}
			if ok {
				matched = append(matched, li)
			}
		}
		if len(matched) == 0 {
			continue
		}

		scopeAmount, _ := sumLines(matched)
		var amount decimal.Decimal
		var description string
		if rule.PricingMode.Valid && rule.PricingMode.String == business.PricingModeOverride {
			amount = overrideDiscount(matched, rule.DiscountValue, dctx.DecimalPlaces())
			description = fmt.Sprintf("%s: unit price %s %s", rule.Name, rule.DiscountValue.String(), dctx.Currency())
		} else {
			amount = computeDiscountAmount(rule.DiscountType, rule.DiscountValue, scopeAmount, dctx.DecimalPlaces())
			description = fmt.Sprintf("%s: %s", rule.Name, describeDiscount(rule.DiscountType, rule.DiscountValue, dctx.Currency()))
		}
		if !amount.IsPositive() {
			continue
		}

		offers = append(offers, offerFromRule(rule, rule.DiscountType, rule.DiscountValue, amount, scopeAmount, description))
	}

	return offers, nil
}

// overrideDiscount is the gap between each line's price and the override unit
// price. Lines already cheaper than the override contribute nothing.
func overrideDiscount(lines []business.LineItem, unitPrice decimal.Decimal, places int32) decimal.Decimal {
	total := decimal.Zero
	for _, li := range lines {
		gap := li.Amount.Sub(unitPrice.Mul(li.Quantity))
		if gap.IsPositive() {
			total = total.Add(gap)
		}
	}
	return helpers.RoundToMinorUnits(total, places)
}

func (s *PricingRuleSource) lineMatches(rule db.DiscountRule, dctx *business.DiscountContext, li business.LineItem) (bool, error) {
	if len(rule.Conditions) == 0 || string(rule.Conditions) == "null" {
		return true, nil
	}

	data := map[string]interface{}{
		"customer_segment": dctx.CustomerSegment(),
		"currency":         dctx.Currency(),
		"line_item_id":     li.LineItemID,
		"quantity":         li.Quantity.InexactFloat64(),
		"amount":           li.Amount.InexactFloat64(),
		"attributes":       li.Attributes,
	}
	if li.ProductID != nil {
		data["product_id"] = li.ProductID.String()
	}
	if li.CategoryID != nil {
		data["category_id"] = li.CategoryID.String()
	}
	if li.ServiceID != nil {
		data["service_id"] = li.ServiceID.String()
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return false, err
	}

	var out bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(rule.Conditions), bytes.NewReader(dataJSON), &out); err != nil {
		return false, err
	}
	if out.Len() == 0 {
		return false, nil
	}

	var res interface{}
	dec := json.NewDecoder(&out)
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return false, err
	}
	return truthy(res), nil
}

// truthy follows JSON-logic truthiness
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	default:
		return true
	}
}

package helpers

import (
	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/responses"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
)

// Percentages and rates are rendered with this many fractional digits
const percentPlaces int32 = 2

// ToDiscountOfferResponse renders an offer's amounts in the currency's minor units
func ToDiscountOfferResponse(o business.DiscountOffer, places int32) responses.DiscountOfferResponse {
	valuePlaces := places
	if o.DiscountType == business.DiscountTypePercentage {
		valuePlaces = percentPlaces
	}
	return responses.DiscountOfferResponse{
		RuleID:         o.RuleID,
		RuleName:       o.RuleName,
		Source:         o.Source,
		DiscountType:   o.DiscountType,
		DiscountValue:  FormatAmount(o.DiscountValue, valuePlaces),
		Amount:         FormatAmount(o.Amount, places),
		StackingPolicy: o.StackingPolicy,
		Priority:       o.Priority,
		Description:    o.Description,
	}
}

// ToDiscountOfferResponses converts a list of offers
func ToDiscountOfferResponses(offers []business.DiscountOffer, places int32) []responses.DiscountOfferResponse {
	out := make([]responses.DiscountOfferResponse, len(offers))
	for i, o := range offers {
		out[i] = ToDiscountOfferResponse(o, places)
	}
	return out
}

// ToCombinationResponse renders a resolved combination
func ToCombinationResponse(r *business.CombinationResult) responses.CombinationResponse {
	places := r.DecimalPlaces
	discarded := make([]responses.DiscardedOfferResponse, len(r.DiscardedOffers))
	for i, d := range r.DiscardedOffers {
		discarded[i] = responses.DiscardedOfferResponse{
			Offer:  ToDiscountOfferResponse(d.Offer, places),
			Reason: d.Reason,
		}
	}
	return responses.CombinationResponse{
		Currency:        r.Currency,
		Subtotal:        FormatAmount(r.Subtotal, places),
		AppliedOffers:   ToDiscountOfferResponses(r.AppliedOffers, places),
		DiscardedOffers: discarded,
		TotalDiscount:   FormatAmount(r.TotalDiscount, places),
		FinalAmount:     FormatAmount(r.FinalAmount, places),
		Capped:          r.Capped,
		CapReason:       r.CapReason,
	}
}

// ToApprovalSummaryResponse renders the approval a calculate call is waiting on
func ToApprovalSummaryResponse(a business.ApprovalSummary, places int32) responses.ApprovalSummaryResponse {
	return responses.ApprovalSummaryResponse{
		ID:                a.ID,
		Status:            a.Status,
		TransactionType:   a.TransactionType,
		TransactionID:     a.TransactionID,
		RequestedPercent:  FormatAmount(a.RequestedPercent, percentPlaces),
		RequestedAmount:   FormatAmount(a.RequestedAmount, places),
		ThresholdPercent:  FormatAmount(a.ThresholdPercent, percentPlaces),
		RequiredApprovals: a.RequiredApprovals,
		ExpiresAt:         a.ExpiresAt,
	}
}

// ToCodeValidationResponse renders promo code feedback
func ToCodeValidationResponse(r *business.CodeValidationResult, places int32) responses.CodeValidationResponse {
	out := responses.CodeValidationResponse{Code: r.Code, Valid: r.Valid, Reason: r.Reason}
	if r.Offer != nil {
		offer := ToDiscountOfferResponse(*r.Offer, places)
		out.Offer = &offer
	}
	return out
}

// ToEarlyPaymentResponse renders early-payment eligibility
func ToEarlyPaymentResponse(e *business.EarlyPaymentEligibility) responses.EarlyPaymentResponse {
	return responses.EarlyPaymentResponse{
		InvoiceID: e.InvoiceID,
		Eligible:  e.Eligible,
		Reason:    e.Reason,
		RuleID:    e.RuleID,
		Currency:  e.Currency,
		Amount:    FormatAmount(e.Amount, e.DecimalPlaces),
		Deadline:  e.Deadline,
	}
}

// ToDiscountRuleResponse renders a rule. Fixed amounts carry no currency of
// their own and are shown with the default two places.
func ToDiscountRuleResponse(rule db.DiscountRule, tiers []db.DiscountVolumeTier) responses.DiscountRuleResponse {
	valuePlaces := DefaultDecimalPlaces
	if rule.DiscountType == business.DiscountTypePercentage {
		valuePlaces = percentPlaces
	}

	out := responses.DiscountRuleResponse{
		ID:                        rule.ID,
		Object:                    "discount_rule",
		Name:                      rule.Name,
		Source:                    rule.Source,
		DiscountType:              rule.DiscountType,
		DiscountValue:             FormatAmount(rule.DiscountValue, valuePlaces),
		CategoryIDs:               nonNilUUIDs(rule.CategoryIds),
		ServiceIDs:                nonNilUUIDs(rule.ServiceIds),
		CustomerSegments:          nonNilStrings(rule.CustomerSegments),
		ValidFrom:                 NullableTimestamptzToPtr(rule.ValidFrom),
		ValidUntil:                NullableTimestamptzToPtr(rule.ValidUntil),
		MaxRedemptions:            NullableInt4ToPtr(rule.MaxRedemptions),
		MaxRedemptionsPerCustomer: NullableInt4ToPtr(rule.MaxRedemptionsPerCustomer),
		UsageCount:                rule.UsageCount,
		StackingPolicy:            rule.StackingPolicy,
		Priority:                  rule.Priority,
		DiscountDays:              NullableInt4ToPtr(rule.DiscountDays),
		IsActive:                  rule.IsActive,
		CreatedAt:                 rule.CreatedAt.Time,
	}
	if rule.PromoCode.Valid {
		code := rule.PromoCode.String
		out.PromoCode = &code
	}
	if rule.PricingMode.Valid {
		mode := rule.PricingMode.String
		out.PricingMode = &mode
	}
	for _, t := range tiers {
		tierPlaces := DefaultDecimalPlaces
		if t.DiscountType == business.DiscountTypePercentage {
			tierPlaces = percentPlaces
		}
		out.VolumeTiers = append(out.VolumeTiers, responses.VolumeTierResponse{
			ID:            t.ID,
			ThresholdType: t.ThresholdType,
			Threshold:     t.Threshold.String(),
			DiscountType:  t.DiscountType,
			DiscountValue: FormatAmount(t.DiscountValue, tierPlaces),
		})
	}
	return out
}

// ToDiscountApprovalResponse renders an approval and its decisions
func ToDiscountApprovalResponse(a db.DiscountApproval, decisions []db.DiscountApprovalDecision, places int32) responses.DiscountApprovalResponse {
	out := responses.DiscountApprovalResponse{
		ID:                a.ID,
		Object:            "discount_approval",
		Status:            a.Status,
		TransactionType:   a.TransactionType,
		TransactionID:     a.TransactionID,
		CustomerID:        a.CustomerID,
		Currency:          a.Currency,
		Subtotal:          FormatAmount(a.Subtotal, places),
		RequestedPercent:  FormatAmount(a.RequestedPercent, percentPlaces),
		RequestedAmount:   FormatAmount(a.RequestedAmount, places),
		ThresholdPercent:  FormatAmount(a.ThresholdPercent, percentPlaces),
		RequiredApprovals: a.RequiredApprovals,
		RequestedBy:       a.RequestedBy,
		ApprovedBy:        NullableUUIDToPtr(a.ApprovedBy),
		RequestedAt:       a.RequestedAt.Time,
		ResolvedAt:        NullableTimestamptzToPtr(a.ResolvedAt),
		ExpiresAt:         NullableTimestamptzToPtr(a.ExpiresAt),
	}
	if a.RejectionReason.Valid {
		reason := a.RejectionReason.String
		out.RejectionReason = &reason
	}
	for _, d := range decisions {
		out.Decisions = append(out.Decisions, responses.ApprovalDecisionResponse{
			ApproverID: d.ApproverID,
			DecidedAt:  d.DecidedAt.Time,
		})
	}
	return out
}

// ToDiscountAllocationResponse renders an allocation; lines may be nil for list views
func ToDiscountAllocationResponse(a db.DiscountAllocation, lines []db.DiscountAllocationLine, places int32) responses.DiscountAllocationResponse {
	out := responses.DiscountAllocationResponse{
		ID:               a.ID,
		Object:           "discount_allocation",
		TransactionType:  a.TransactionType,
		TransactionID:    a.TransactionID,
		Currency:         a.Currency,
		AllocationMethod: a.AllocationMethod,
		TotalDiscount:    FormatAmount(a.TotalDiscountAmount, places),
		Status:           a.Status,
		ApprovalID:       NullableUUIDToPtr(a.ApprovalID),
		CreatedAt:        a.CreatedAt.Time,
		AppliedAt:        NullableTimestamptzToPtr(a.AppliedAt),
		VoidedAt:         NullableTimestamptzToPtr(a.VoidedAt),
	}
	if a.VoidReason.Valid {
		reason := a.VoidReason.String
		out.VoidReason = &reason
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, responses.AllocationLineResponse{
			LineItemID:      l.LineItemID,
			Position:        l.Position,
			LineAmount:      FormatAmount(l.LineAmount, places),
			AllocatedAmount: FormatAmount(l.AllocatedAmount, places),
		})
	}
	return out
}

// ToDiscountSettingsResponse renders a workspace policy
func ToDiscountSettingsResponse(p business.DiscountPolicy) responses.DiscountSettingsResponse {
	action := p.ApprovalExpiryAction
	if action == "" {
		action = business.ApprovalExpiryActionNone
	}
	return responses.DiscountSettingsResponse{
		MaxDiscountPercent:             FormatOptionalAmount(p.MaxDiscountPercent, percentPlaces),
		ApprovalThresholdPercent:       FormatAmount(p.ApprovalThresholdPercent, percentPlaces),
		SecondApprovalThresholdPercent: FormatOptionalAmount(p.SecondApprovalThresholdPercent, percentPlaces),
		ApprovalAmountThreshold:        FormatOptionalAmount(p.ApprovalAmountThreshold, DefaultDecimalPlaces),
		ApprovalExpirySeconds:          p.ApprovalExpirySeconds,
		ApprovalExpiryAction:           action,
	}
}

// FormatPercent renders a percentage with two fractional digits
func FormatPercent(d decimal.Decimal) string {
	return FormatAmount(d, percentPlaces)
}

func nonNilUUIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

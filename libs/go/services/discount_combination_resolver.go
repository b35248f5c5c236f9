package services

import (
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CombinationResolver decides which discovered offers apply together. It is
// pure over its inputs and safe for concurrent use.
type CombinationResolver struct {
	allocator *DiscountAllocator
}

// NewCombinationResolver creates a new resolver
func NewCombinationResolver() *CombinationResolver {
	return &CombinationResolver{allocator: NewDiscountAllocator()}
}

// outranks reports whether a beats b for the exclusive slot. Equal offers keep
// discovery order, so the incumbent wins ties.
func outranks(a, b business.DiscountOffer) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Amount.GreaterThan(b.Amount)
}

// Resolve picks the best combination of offers for a subtotal.
//
// An exclusive offer, when present, is applied alone: the highest priority
// wins, then the larger amount, then discovery order. Otherwise every
// stackable offer applies. The sum is clamped to the subtotal and to the
// policy's max discount percent; clamped offers are scaled down
// proportionally so their amounts still sum exactly to the total.
func (r *CombinationResolver) Resolve(offers []business.DiscountOffer, subtotal decimal.Decimal, currency string, places int32, policy business.DiscountPolicy) (*business.CombinationResult, error) {
	result := &business.CombinationResult{
		Currency:        currency,
		DecimalPlaces:   places,
		Subtotal:        subtotal,
		AppliedOffers:   []business.DiscountOffer{},
		DiscardedOffers: []business.DiscardedOffer{},
		TotalDiscount:   decimal.Zero,
		FinalAmount:     subtotal,
	}

	winner := -1
	for i, o := range offers {
		if o.IsExclusive() && (winner < 0 || outranks(o, offers[winner])) {
			winner = i
		}
	}

	for i, o := range offers {
		switch {
		case winner < 0:
			result.AppliedOffers = append(result.AppliedOffers, o)
		case i == winner:
			result.AppliedOffers = append(result.AppliedOffers, o)
		case o.IsExclusive():
			result.DiscardedOffers = append(result.DiscardedOffers, business.DiscardedOffer{Offer: o, Reason: business.DiscardReasonExclusiveOutranked})
		default:
			result.DiscardedOffers = append(result.DiscardedOffers, business.DiscardedOffer{Offer: o, Reason: business.DiscardReasonExclusivityDominates})
		}
	}

	total := decimal.Zero
	for _, o := range result.AppliedOffers {
		total = total.Add(o.Amount)
	}

	capped := total
	if capped.GreaterThan(subtotal) {
		capped = subtotal
		result.CapReason = business.CapReasonSubtotal
	}
	if policy.MaxDiscountPercent != nil {
		maxAmount := subtotal.Mul(*policy.MaxDiscountPercent).Div(hundred).Truncate(places)
		if capped.GreaterThan(maxAmount) {
			capped = maxAmount
			result.CapReason = business.CapReasonMaxDiscountPercent
		}
	}
	if capped.IsNegative() {
		capped = decimal.Zero
	}

	if capped.LessThan(total) {
		weights := make([]decimal.Decimal, len(result.AppliedOffers))
		for i, o := range result.AppliedOffers {
			weights[i] = o.Amount
		}
		scaled, err := r.allocator.Split(capped, weights, places)
		if err != nil {
			return nil, err
		}
		for i := range result.AppliedOffers {
			result.AppliedOffers[i].Amount = scaled[i]
		}
		result.Capped = true
		total = capped
	}

	result.TotalDiscount = total
	result.FinalAmount = subtotal.Sub(total)
	if result.FinalAmount.IsNegative() {
		result.FinalAmount = decimal.Zero
	}
	return result, nil
}

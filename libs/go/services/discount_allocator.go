package services

import (
	"fmt"
	"sort"

	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
)

// DiscountAllocator spreads an aggregate amount over weighted lines using the
// largest-remainder method. It holds no state and is safe for concurrent use.
type DiscountAllocator struct{}

// NewDiscountAllocator creates a new allocator
func NewDiscountAllocator() *DiscountAllocator {
	return &DiscountAllocator{}
}

type remainderShare struct {
	index     int
	units     decimal.Decimal
	remainder decimal.Decimal
}

// Split divides total across weights at the given minor-unit precision. The
// returned amounts are whole minor units, proportional to the weights, and
// sum exactly to total. Leftover units go to the largest fractional
// remainders; equal remainders are resolved by position.
func (a *DiscountAllocator) Split(total decimal.Decimal, weights []decimal.Decimal, places int32) ([]decimal.Decimal, error) {
	if len(weights) == 0 {
		return nil, business.NewValidationError("line_items", "at least one line is required")
	}
	if total.IsNegative() {
		return nil, business.NewValidationError("total_discount", "must not be negative")
	}
	if !helpers.IsMinorUnitPrecise(total, places) {
		return nil, business.NewValidationError("total_discount", fmt.Sprintf("must not have more than %d decimal places", places))
	}

	weightSum := decimal.Zero
	for i, w := range weights {
		if w.IsNegative() {
			return nil, business.NewValidationError(fmt.Sprintf("line_items[%d].amount", i), "must not be negative")
		}
		weightSum = weightSum.Add(w)
	}

	amounts := make([]decimal.Decimal, len(weights))
	if total.IsZero() {
		for i := range amounts {
			amounts[i] = decimal.Zero
		}
		return amounts, nil
	}
	if weightSum.IsZero() {
		return nil, business.NewValidationError("total_discount", "must be zero when the subtotal is zero")
	}

	totalUnits := total.Shift(places)
	shares := make([]remainderShare, len(weights))
	assigned := decimal.Zero
	for i, w := range weights {
		// exact integer quotient and remainder of totalUnits*w / weightSum
		q, r := totalUnits.Mul(w).QuoRem(weightSum, 0)
		shares[i] = remainderShare{index: i, units: q, remainder: r}
		assigned = assigned.Add(q)
	}

	leftover := totalUnits.Sub(assigned).IntPart()
	if leftover < 0 || leftover > int64(len(weights)) {
		return nil, &business.ConsistencyError{Message: fmt.Sprintf("largest remainder left %d units for %d lines", leftover, len(weights))}
	}

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return shares[order[x]].remainder.GreaterThan(shares[order[y]].remainder)
	})
	for k := int64(0); k < leftover; k++ {
		idx := order[k]
		shares[idx].units = shares[idx].units.Add(decimal.NewFromInt(1))
	}

	sum := decimal.Zero
	for i, s := range shares {
		amounts[i] = s.units.Shift(-places)
		sum = sum.Add(amounts[i])
	}
	if !sum.Equal(total) {
		return nil, &business.ConsistencyError{Message: fmt.Sprintf("allocated %s does not match total %s", sum, total)}
	}

	return amounts, nil
}

// AllocateLines computes each line's share of total using the given method.
// Proportional weights are the line amounts; equal weights are one per line.
func (a *DiscountAllocator) AllocateLines(total decimal.Decimal, lines []business.AllocationLineInput, method string, places int32) ([]business.AllocatedLine, error) {
	verr := &business.ValidationError{}
	if len(lines) == 0 {
		verr.Add("line_items", "at least one line is required")
	}
	subtotal := decimal.Zero
	for i, l := range lines {
		if l.LineItemID == "" {
			verr.Add(fmt.Sprintf("line_items[%d].line_item_id", i), "is required")
		}
		if l.Amount.IsNegative() {
			verr.Add(fmt.Sprintf("line_items[%d].amount", i), "must not be negative")
		}
		subtotal = subtotal.Add(l.Amount)
	}
	if total.GreaterThan(subtotal) {
		verr.Add("total_discount", "must not exceed the line subtotal")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	weights := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		switch method {
		case business.AllocationMethodEqual:
			weights[i] = decimal.NewFromInt(1)
		case business.AllocationMethodProportional, "":
			weights[i] = l.Amount
		default:
			return nil, business.NewValidationError("allocation_method", "must be proportional or equal")
		}
	}

	amounts, err := a.Split(total, weights, places)
	if err != nil {
		return nil, err
	}

	allocated := make([]business.AllocatedLine, len(lines))
	for i, l := range lines {
		// equal weighting must not push a line's discount past its own amount
		if amounts[i].GreaterThan(l.Amount) {
			return nil, business.NewValidationError(fmt.Sprintf("line_items[%d].amount", i), "allocated discount exceeds the line amount")
		}
		allocated[i] = business.AllocatedLine{
			LineItemID:      l.LineItemID,
			Position:        int32(i),
			LineAmount:      l.Amount,
			AllocatedAmount: amounts[i],
		}
	}
	return allocated, nil
}

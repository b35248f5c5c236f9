package business

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rule sources
const (
	DiscountSourcePromotional    = "promotional"
	DiscountSourceEarlyPayment   = "early_payment"
	DiscountSourceVolume         = "volume"
	DiscountSourceAttributeBased = "attribute_based"
)

// Discount value types
const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixedAmount = "fixed_amount"
)

// Stacking policies
const (
	StackingExclusive = "exclusive"
	StackingStackable = "stackable"
)

// Attribute-based pricing modes
const (
	PricingModeDelta    = "delta"
	PricingModeOverride = "override"
)

// Volume tier threshold types
const (
	VolumeThresholdQuantity = "quantity"
	VolumeThresholdAmount   = "amount"
)

// Transaction types a discount can be committed against
const (
	TransactionTypeInvoice = "invoice"
	TransactionTypePOSSale = "pos_sale"
)

// Reasons an offer is left out of the applied combination
const (
	DiscardReasonExclusiveOutranked   = "exclusive_outranked"
	DiscardReasonExclusivityDominates = "exclusivity_dominates"
	DiscardReasonUsageLimitReached    = "usage_limit_reached"
)

// Cap reasons
const (
	CapReasonSubtotal           = "subtotal"
	CapReasonMaxDiscountPercent = "max_discount_percent"
)

// LineItem is one priced line of an invoice or POS sale
type LineItem struct {
	LineItemID string                 `json:"line_item_id"`
	ProductID  *uuid.UUID             `json:"product_id,omitempty"`
	CategoryID *uuid.UUID             `json:"category_id,omitempty"`
	ServiceID  *uuid.UUID             `json:"service_id,omitempty"`
	Quantity   decimal.Decimal        `json:"quantity"`
	Amount     decimal.Decimal        `json:"amount"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

func (li LineItem) clone() LineItem {
	out := li
	if li.ProductID != nil {
		id := *li.ProductID
		out.ProductID = &id
	}
	if li.CategoryID != nil {
		id := *li.CategoryID
		out.CategoryID = &id
	}
	if li.ServiceID != nil {
		id := *li.ServiceID
		out.ServiceID = &id
	}
	if li.Attributes != nil {
		out.Attributes = make(map[string]interface{}, len(li.Attributes))
		for k, v := range li.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

// TransactionRef identifies the invoice or POS sale a discount is committed against
type TransactionRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// LockKey is the advisory lock key that serializes work on one transaction.
func (r TransactionRef) LockKey(workspaceID uuid.UUID) string {
	return fmt.Sprintf("%s|%s|%s", workspaceID, r.Type, r.ID)
}

// PaymentInfo carries the dates needed to evaluate early-payment terms
type PaymentInfo struct {
	InvoiceID   uuid.UUID `json:"invoice_id"`
	InvoiceDate time.Time `json:"invoice_date"`
	PaymentDate time.Time `json:"payment_date"`
}

// DiscountContextInput is the raw material for a DiscountContext
type DiscountContextInput struct {
	WorkspaceID     uuid.UUID
	CustomerID      uuid.UUID
	CustomerSegment string
	Currency        string
	DecimalPlaces   int32
	Subtotal        *decimal.Decimal
	LineItems       []LineItem
	PromoCode       string
	EvaluatedAt     time.Time
	Transaction     *TransactionRef
	Payment         *PaymentInfo
}

// DiscountContext is the immutable input every rule source evaluates against.
type DiscountContext struct {
	workspaceID     uuid.UUID
	customerID      uuid.UUID
	customerSegment string
	currency        string
	decimalPlaces   int32
	subtotal        decimal.Decimal
	lineItems       []LineItem
	promoCode       string
	evaluatedAt     time.Time
	transaction     *TransactionRef
	payment         *PaymentInfo
}

// NewDiscountContext validates the input and copies it into a DiscountContext.
// When a subtotal is given alongside line items it must equal their sum.
func NewDiscountContext(in DiscountContextInput) (*DiscountContext, error) {
	verr := &ValidationError{}

	if in.WorkspaceID == uuid.Nil {
		verr.Add("workspace_id", "is required")
	}
	if in.CustomerID == uuid.Nil {
		verr.Add("customer_id", "is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if len(currency) != 3 {
		verr.Add("currency", "must be a 3-letter ISO 4217 code")
	}
	if in.DecimalPlaces < 0 || in.DecimalPlaces > 8 {
		verr.Add("currency", "unsupported minor unit precision")
	}

	seen := make(map[string]bool, len(in.LineItems))
	lines := make([]LineItem, 0, len(in.LineItems))
	lineSum := decimal.Zero
	for i, li := range in.LineItems {
		field := fmt.Sprintf("line_items[%d]", i)
		if li.LineItemID == "" {
			verr.Add(field+".line_item_id", "is required")
		} else if seen[li.LineItemID] {
			verr.Add(field+".line_item_id", "must be unique")
		}
		seen[li.LineItemID] = true
		if !li.Quantity.IsPositive() {
			verr.Add(field+".quantity", "must be greater than zero")
		}
		if li.Amount.IsNegative() {
			verr.Add(field+".amount", "must not be negative")
		}
		lineSum = lineSum.Add(li.Amount)
		lines = append(lines, li.clone())
	}

	subtotal := lineSum
	switch {
	case in.Subtotal != nil && in.Subtotal.IsNegative():
		verr.Add("subtotal", "must not be negative")
	case in.Subtotal != nil && len(lines) > 0 && !in.Subtotal.Equal(lineSum):
		verr.Add("subtotal", "must equal the sum of line item amounts")
	case in.Subtotal != nil:
		subtotal = *in.Subtotal
	case len(lines) == 0:
		verr.Add("line_items", "at least one line item or a subtotal is required")
	}

	var txRef *TransactionRef
	if in.Transaction != nil {
		if in.Transaction.Type != TransactionTypeInvoice && in.Transaction.Type != TransactionTypePOSSale {
			verr.Add("transaction.type", "must be invoice or pos_sale")
		}
		if strings.TrimSpace(in.Transaction.ID) == "" {
			verr.Add("transaction.id", "is required")
		}
		ref := *in.Transaction
		txRef = &ref
	}

	var payment *PaymentInfo
	if in.Payment != nil {
		if in.Payment.InvoiceID == uuid.Nil {
			verr.Add("payment.invoice_id", "is required")
		}
		if in.Payment.PaymentDate.IsZero() {
			verr.Add("payment.payment_date", "is required")
		}
		p := *in.Payment
		payment = &p
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	evaluatedAt := in.EvaluatedAt
	if evaluatedAt.IsZero() {
		evaluatedAt = time.Now()
	}

	return &DiscountContext{
		workspaceID:     in.WorkspaceID,
		customerID:      in.CustomerID,
		customerSegment: in.CustomerSegment,
		currency:        currency,
		decimalPlaces:   in.DecimalPlaces,
		subtotal:        subtotal,
		lineItems:       lines,
		promoCode:       strings.TrimSpace(in.PromoCode),
		evaluatedAt:     evaluatedAt.UTC(),
		transaction:     txRef,
		payment:         payment,
	}, nil
}

func (c *DiscountContext) WorkspaceID() uuid.UUID     { return c.workspaceID }
func (c *DiscountContext) CustomerID() uuid.UUID      { return c.customerID }
func (c *DiscountContext) CustomerSegment() string    { return c.customerSegment }
func (c *DiscountContext) Currency() string           { return c.currency }
func (c *DiscountContext) DecimalPlaces() int32       { return c.decimalPlaces }
func (c *DiscountContext) Subtotal() decimal.Decimal  { return c.subtotal }
func (c *DiscountContext) PromoCode() string          { return c.promoCode }
func (c *DiscountContext) EvaluatedAt() time.Time     { return c.evaluatedAt }
func (c *DiscountContext) HasLineItems() bool         { return len(c.lineItems) > 0 }
func (c *DiscountContext) HasTransaction() bool       { return c.transaction != nil }
func (c *DiscountContext) HasPayment() bool           { return c.payment != nil }
func (c *DiscountContext) LineItemCount() int         { return len(c.lineItems) }

// LineItems returns a copy of the context's line items
func (c *DiscountContext) LineItems() []LineItem {
	out := make([]LineItem, len(c.lineItems))
	for i, li := range c.lineItems {
		out[i] = li.clone()
	}
	return out
}

// EffectiveLines returns the line items, or a single unscoped line carrying
// the subtotal when the context was built from an amount alone.
func (c *DiscountContext) EffectiveLines() []LineItem {
	if len(c.lineItems) > 0 {
		return c.LineItems()
	}
	return []LineItem{{
		LineItemID: "subtotal",
		Quantity:   decimal.NewFromInt(1),
		Amount:     c.subtotal,
	}}
}

// Transaction returns a copy of the transaction reference, or nil
func (c *DiscountContext) Transaction() *TransactionRef {
	if c.transaction == nil {
		return nil
	}
	ref := *c.transaction
	return &ref
}

// Payment returns a copy of the payment info, or nil
func (c *DiscountContext) Payment() *PaymentInfo {
	if c.payment == nil {
		return nil
	}
	p := *c.payment
	return &p
}

// DiscountOffer is one rule's candidate discount computed for a context
type DiscountOffer struct {
	RuleID         uuid.UUID       `json:"rule_id"`
	RuleName       string          `json:"rule_name"`
	Source         string          `json:"source"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	Amount         decimal.Decimal `json:"amount"`
	StackingPolicy string          `json:"stacking_policy"`
	Priority       int32           `json:"priority"`
	ScopeAmount    decimal.Decimal `json:"scope_amount"`
	Description    string          `json:"description"`
}

// IsExclusive reports whether the offer refuses to combine with others
func (o DiscountOffer) IsExclusive() bool {
	return o.StackingPolicy == StackingExclusive
}

// DiscardedOffer is an offer that was considered but not applied
type DiscardedOffer struct {
	Offer  DiscountOffer `json:"offer"`
	Reason string        `json:"reason"`
}

// CombinationResult is the resolved set of offers for a context
type CombinationResult struct {
	Currency        string           `json:"currency"`
	DecimalPlaces   int32            `json:"-"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	AppliedOffers   []DiscountOffer  `json:"applied_offers"`
	DiscardedOffers []DiscardedOffer `json:"discarded_offers"`
	TotalDiscount   decimal.Decimal  `json:"total_discount"`
	FinalAmount     decimal.Decimal  `json:"final_amount"`
	Capped          bool             `json:"capped"`
	CapReason       string           `json:"cap_reason,omitempty"`
}

// AppliedRuleIDs lists the rules of the applied offers in order
func (r *CombinationResult) AppliedRuleIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.AppliedOffers))
	for _, o := range r.AppliedOffers {
		ids = append(ids, o.RuleID)
	}
	return ids
}

// Promo code validation reasons
const (
	CodeReasonNotFound             = "code_not_found"
	CodeReasonInactive             = "inactive"
	CodeReasonNotYetValid          = "not_yet_valid"
	CodeReasonExpired              = "expired"
	CodeReasonUsageLimitReached    = "usage_limit_reached"
	CodeReasonCustomerLimitReached = "customer_limit_reached"
	CodeReasonSegmentNotEligible   = "segment_not_eligible"
	CodeReasonNoEligibleItems      = "no_eligible_items"
)

// CodeValidationResult is the explicit feedback for a promotional code
type CodeValidationResult struct {
	Code   string         `json:"code"`
	Valid  bool           `json:"valid"`
	Reason string         `json:"reason,omitempty"`
	Offer  *DiscountOffer `json:"offer,omitempty"`
}

// Early-payment ineligibility reasons
const (
	EarlyPaymentReasonNoTermAssigned       = "no_term_assigned"
	EarlyPaymentReasonPaymentAfterDeadline = "payment_after_deadline"
	EarlyPaymentReasonTermInactive         = "term_inactive"
	EarlyPaymentReasonInvoiceNotIssued     = "invoice_not_issued"
)

// EarlyPaymentEligibility reports whether a payment earns the invoice's early-payment discount
type EarlyPaymentEligibility struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Eligible      bool            `json:"eligible"`
	Reason        string          `json:"reason,omitempty"`
	RuleID        *uuid.UUID      `json:"rule_id,omitempty"`
	Currency      string          `json:"currency"`
	DecimalPlaces int32           `json:"-"`
	Amount        decimal.Decimal `json:"amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Offer         *DiscountOffer  `json:"-"`
}

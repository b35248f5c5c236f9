package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EarlyPaymentService evaluates the early-payment term assigned to an
// invoice. It only produces candidates when a payment is being evaluated,
// never at sale time.
type EarlyPaymentService struct {
	queries  db.Querier
	currency interfaces.CurrencyPrecisionResolver
	logger   *zap.Logger
}

// NewEarlyPaymentService creates a new early payment service
func NewEarlyPaymentService(queries db.Querier, currency interfaces.CurrencyPrecisionResolver) *EarlyPaymentService {
	return &EarlyPaymentService{
		queries:  queries,
		currency: currency,
		logger:   logger.Log,
	}
}

func (s *EarlyPaymentService) Name() string {
	return business.DiscountSourceEarlyPayment
}

// FindCandidates offers the invoice's early-payment discount when the
// context's payment is within the term
func (s *EarlyPaymentService) FindCandidates(ctx context.Context, dctx *business.DiscountContext) ([]business.DiscountOffer, error) {
	payment := dctx.Payment()
	if payment == nil {
		return []business.DiscountOffer{}, nil
	}

	invoice, err := s.queries.GetInvoiceEarlyPaymentTerms(ctx, db.GetInvoiceEarlyPaymentTermsParams{
		ID:          payment.InvoiceID,
		WorkspaceID: dctx.WorkspaceID(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []business.DiscountOffer{}, nil
		}
		return nil, fmt.Errorf("failed to load invoice terms: %w", err)
	}

	invoiceDate := payment.InvoiceDate
	if invoiceDate.IsZero() && invoice.IssuedAt.Valid {
		invoiceDate = invoice.IssuedAt.Time
	}

	eligibility, err := s.evaluateTerm(ctx, dctx.WorkspaceID(), invoice, invoiceDate, payment.PaymentDate, dctx.Subtotal(), dctx.DecimalPlaces(), dctx.Currency())
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible || eligibility.Offer == nil {
		return []business.DiscountOffer{}, nil
	}
	return []business.DiscountOffer{*eligibility.Offer}, nil
}

// EvaluateEarlyPayment reports whether paying the invoice on the given date
// earns its early-payment discount. Ineligibility is a result, not an error.
func (s *EarlyPaymentService) EvaluateEarlyPayment(ctx context.Context, params params.EvaluateEarlyPaymentParams) (*business.EarlyPaymentEligibility, error) {
	verr := &business.ValidationError{}
	if params.InvoiceID == uuid.Nil {
		verr.Add("invoice_id", "is required")
	}
	if params.PaymentDate.IsZero() {
		verr.Add("payment_date", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	invoice, err := s.queries.GetInvoiceEarlyPaymentTerms(ctx, db.GetInvoiceEarlyPaymentTermsParams{
		ID:          params.InvoiceID,
		WorkspaceID: params.WorkspaceID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", params.InvoiceID, business.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load invoice terms: %w", err)
	}

	places, err := s.currency.DecimalPlaces(ctx, invoice.Currency)
	if err != nil {
		return nil, err
	}

	var invoiceDate time.Time
	if invoice.IssuedAt.Valid {
		invoiceDate = invoice.IssuedAt.Time
	}

	return s.evaluateTerm(ctx, params.WorkspaceID, invoice, invoiceDate, params.PaymentDate, invoice.TotalAmount, places, invoice.Currency)
}

// paymentDeadline is the last instant, in UTC, at which a payment still earns
// the discount: the end of the calendar day discountDays after the invoice date.
func paymentDeadline(invoiceDate time.Time, discountDays int32) time.Time {
	d := invoiceDate.UTC().AddDate(0, 0, int(discountDays))
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

func (s *EarlyPaymentService) evaluateTerm(
	ctx context.Context,
	workspaceID uuid.UUID,
	invoice db.GetInvoiceEarlyPaymentTermsRow,
	invoiceDate, paymentDate time.Time,
	baseAmount decimal.Decimal,
	places int32,
	currency string,
) (*business.EarlyPaymentEligibility, error) {
	result := &business.EarlyPaymentEligibility{
		InvoiceID:     invoice.ID,
		Currency:      currency,
		DecimalPlaces: places,
		Amount:        decimal.Zero,
	}

	if !invoice.EarlyPaymentRuleID.Valid {
		result.Reason = business.EarlyPaymentReasonNoTermAssigned
		return result, nil
	}

	rule, err := s.queries.GetDiscountRule(ctx, db.GetDiscountRuleParams{
		ID:          uuid.UUID(invoice.EarlyPaymentRuleID.Bytes),
		WorkspaceID: workspaceID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			result.Reason = business.EarlyPaymentReasonNoTermAssigned
			return result, nil
		}
		return nil, fmt.Errorf("failed to load early payment term: %w", err)
	}
	if rule.Source != business.DiscountSourceEarlyPayment || !rule.DiscountDays.Valid {
		result.Reason = business.EarlyPaymentReasonNoTermAssigned
		return result, nil
	}

	ruleID := rule.ID
	result.RuleID = &ruleID
	if !rule.IsActive || ruleValidityReason(rule, paymentDate) != "" {
		result.Reason = business.EarlyPaymentReasonTermInactive
		return result, nil
	}

	if invoiceDate.IsZero() {
		result.Reason = business.EarlyPaymentReasonInvoiceNotIssued
		return result, nil
	}

	deadline := paymentDeadline(invoiceDate, rule.DiscountDays.Int32)
	result.Deadline = &deadline
	if paymentDate.After(deadline) {
		result.Reason = business.EarlyPaymentReasonPaymentAfterDeadline
		return result, nil
	}

	amount := computeDiscountAmount(rule.DiscountType, rule.DiscountValue, baseAmount, places)
	result.Eligible = true
	result.Amount = amount
	if amount.IsPositive() {
		offer := offerFromRule(rule, rule.DiscountType, rule.DiscountValue, amount, baseAmount,
			fmt.Sprintf("Early payment within %d days: %s", rule.DiscountDays.Int32, describeDiscount(rule.DiscountType, rule.DiscountValue, currency)))
		result.Offer = &offer
	}

	s.logger.Debug("Evaluated early payment term",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("rule_id", rule.ID.String()),
		zap.Time("deadline", deadline),
		zap.Bool("eligible", result.Eligible))

	return result, nil
}

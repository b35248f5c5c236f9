package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

var (
	testWorkspaceID = uuid.MustParse("7b0e6f3c-2f1a-4c55-9d8e-0a1b2c3d4e5f")
	testCustomerID  = uuid.MustParse("a9c1d2e3-4f56-4789-8abc-def012345678")
	testNow         = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
)

type contextOption func(*business.DiscountContextInput)

func withPromoCode(code string) contextOption {
	return func(in *business.DiscountContextInput) { in.PromoCode = code }
}

func withSegment(segment string) contextOption {
	return func(in *business.DiscountContextInput) { in.CustomerSegment = segment }
}

func withLines(lines ...business.LineItem) contextOption {
	return func(in *business.DiscountContextInput) { in.LineItems = lines }
}

func withTransaction(txType, id string) contextOption {
	return func(in *business.DiscountContextInput) {
		in.Transaction = &business.TransactionRef{Type: txType, ID: id}
	}
}

func withPayment(invoiceID uuid.UUID, invoiceDate, paymentDate time.Time) contextOption {
	return func(in *business.DiscountContextInput) {
		in.Payment = &business.PaymentInfo{InvoiceID: invoiceID, InvoiceDate: invoiceDate, PaymentDate: paymentDate}
	}
}

func line(id, quantity, amount string) business.LineItem {
	return business.LineItem{LineItemID: id, Quantity: dec(quantity), Amount: dec(amount)}
}

// newTestContext builds a USD context with a single 100.00 line unless options say otherwise
func newTestContext(t *testing.T, opts ...contextOption) *business.DiscountContext {
	t.Helper()
	in := business.DiscountContextInput{
		WorkspaceID:   testWorkspaceID,
		CustomerID:    testCustomerID,
		Currency:      "USD",
		DecimalPlaces: 2,
		LineItems:     []business.LineItem{line("line-1", "1", "100.00")},
		EvaluatedAt:   testNow,
	}
	for _, opt := range opts {
		opt(&in)
	}
	dctx, err := business.NewDiscountContext(in)
	require.NoError(t, err)
	return dctx
}

func ts(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func int4(v int32) pgtype.Int4 {
	return pgtype.Int4{Int32: v, Valid: true}
}

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func promoRule(code, discountType, value string) db.DiscountRule {
	return db.DiscountRule{
		ID:             uuid.New(),
		WorkspaceID:    testWorkspaceID,
		Name:           "Promo " + code,
		Source:         business.DiscountSourcePromotional,
		DiscountType:   discountType,
		DiscountValue:  dec(value),
		StackingPolicy: business.StackingStackable,
		PromoCode:      text(code),
		IsActive:       true,
	}
}

func nullUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const getCustomerSegment = `-- name: GetCustomerSegment :one
SELECT COALESCE(segment, '')::text
FROM customers
WHERE id = $1 AND workspace_id = $2 AND deleted_at IS NULL`

type GetCustomerSegmentParams struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

func (q *Queries) GetCustomerSegment(ctx context.Context, arg GetCustomerSegmentParams) (string, error) {
	row := q.db.QueryRow(ctx, getCustomerSegment, arg.ID, arg.WorkspaceID)
	var segment string
	err := row.Scan(&segment)
	return segment, err
}

const getProductCategory = `-- name: GetProductCategory :one
SELECT category_id
FROM products
WHERE id = $1 AND workspace_id = $2`

type GetProductCategoryParams struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

func (q *Queries) GetProductCategory(ctx context.Context, arg GetProductCategoryParams) (pgtype.UUID, error) {
	row := q.db.QueryRow(ctx, getProductCategory, arg.ID, arg.WorkspaceID)
	var categoryID pgtype.UUID
	err := row.Scan(&categoryID)
	return categoryID, err
}

const getInvoiceEarlyPaymentTerms = `-- name: GetInvoiceEarlyPaymentTerms :one
SELECT id, customer_id, currency, total_amount, issued_at, early_payment_rule_id
FROM invoices
WHERE id = $1 AND workspace_id = $2`

type GetInvoiceEarlyPaymentTermsParams struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

type GetInvoiceEarlyPaymentTermsRow struct {
	ID                 uuid.UUID          `json:"id"`
	CustomerID         uuid.UUID          `json:"customer_id"`
	Currency           string             `json:"currency"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	IssuedAt           pgtype.Timestamptz `json:"issued_at"`
	EarlyPaymentRuleID pgtype.UUID        `json:"early_payment_rule_id"`
}

func (q *Queries) GetInvoiceEarlyPaymentTerms(ctx context.Context, arg GetInvoiceEarlyPaymentTermsParams) (GetInvoiceEarlyPaymentTermsRow, error) {
	row := q.db.QueryRow(ctx, getInvoiceEarlyPaymentTerms, arg.ID, arg.WorkspaceID)
	var i GetInvoiceEarlyPaymentTermsRow
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.TotalAmount,
		&i.IssuedAt,
		&i.EarlyPaymentRuleID,
	)
	return i, err
}

const getCurrencyDecimalPlaces = `-- name: GetCurrencyDecimalPlaces :one
SELECT decimal_places
FROM fiat_currencies
WHERE UPPER(code) = UPPER($1)`

func (q *Queries) GetCurrencyDecimalPlaces(ctx context.Context, code string) (int32, error) {
	row := q.db.QueryRow(ctx, getCurrencyDecimalPlaces, code)
	var decimalPlaces int32
	err := row.Scan(&decimalPlaces)
	return decimalPlaces, err
}

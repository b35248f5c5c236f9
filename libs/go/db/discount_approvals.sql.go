package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const discountApprovalColumns = `id, workspace_id, transaction_type, transaction_id, customer_id, currency, subtotal,
    requested_percent, requested_amount, threshold_percent, required_approvals, status, requested_by,
    approved_by, rejection_reason, offers, requested_at, resolved_at, expires_at`

func scanDiscountApproval(row pgx.Row) (DiscountApproval, error) {
	var i DiscountApproval
	err := row.Scan(
		&i.ID,
		&i.WorkspaceID,
		&i.TransactionType,
		&i.TransactionID,
		&i.CustomerID,
		&i.Currency,
		&i.Subtotal,
		&i.RequestedPercent,
		&i.RequestedAmount,
		&i.ThresholdPercent,
		&i.RequiredApprovals,
		&i.Status,
		&i.RequestedBy,
		&i.ApprovedBy,
		&i.RejectionReason,
		&i.Offers,
		&i.RequestedAt,
		&i.ResolvedAt,
		&i.ExpiresAt,
	)
	return i, err
}

func collectDiscountApprovals(rows pgx.Rows) ([]DiscountApproval, error) {
	defer rows.Close()
	items := []DiscountApproval{}
	for rows.Next() {
		i, err := scanDiscountApproval(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createDiscountApproval = `-- name: CreateDiscountApproval :one
INSERT INTO discount_approvals (
    workspace_id, transaction_type, transaction_id, customer_id, currency, subtotal, requested_percent,
    requested_amount, threshold_percent, required_approvals, requested_by, offers, expires_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
)
RETURNING ` + discountApprovalColumns

type CreateDiscountApprovalParams struct {
	WorkspaceID       uuid.UUID          `json:"workspace_id"`
	TransactionType   string             `json:"transaction_type"`
	TransactionID     string             `json:"transaction_id"`
	CustomerID        uuid.UUID          `json:"customer_id"`
	Currency          string             `json:"currency"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	RequestedPercent  decimal.Decimal    `json:"requested_percent"`
	RequestedAmount   decimal.Decimal    `json:"requested_amount"`
	ThresholdPercent  decimal.Decimal    `json:"threshold_percent"`
	RequiredApprovals int32              `json:"required_approvals"`
	RequestedBy       uuid.UUID          `json:"requested_by"`
	Offers            []byte             `json:"offers"`
	ExpiresAt         pgtype.Timestamptz `json:"expires_at"`
}

func (q *Queries) CreateDiscountApproval(ctx context.Context, arg CreateDiscountApprovalParams) (DiscountApproval, error) {
	row := q.db.QueryRow(ctx, createDiscountApproval,
		arg.WorkspaceID,
		arg.TransactionType,
		arg.TransactionID,
		arg.CustomerID,
		arg.Currency,
		arg.Subtotal,
		arg.RequestedPercent,
		arg.RequestedAmount,
		arg.ThresholdPercent,
		arg.RequiredApprovals,
		arg.RequestedBy,
		arg.Offers,
		arg.ExpiresAt,
	)
	return scanDiscountApproval(row)
}

const getDiscountApproval = `-- name: GetDiscountApproval :one
SELECT ` + discountApprovalColumns + `
FROM discount_approvals
WHERE id = $1 AND workspace_id = $2`

type GetDiscountApprovalParams struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

func (q *Queries) GetDiscountApproval(ctx context.Context, arg GetDiscountApprovalParams) (DiscountApproval, error) {
	row := q.db.QueryRow(ctx, getDiscountApproval, arg.ID, arg.WorkspaceID)
	return scanDiscountApproval(row)
}

const getDiscountApprovalForUpdate = getDiscountApproval + `
FOR UPDATE`

func (q *Queries) GetDiscountApprovalForUpdate(ctx context.Context, arg GetDiscountApprovalParams) (DiscountApproval, error) {
	row := q.db.QueryRow(ctx, getDiscountApprovalForUpdate, arg.ID, arg.WorkspaceID)
	return scanDiscountApproval(row)
}

const getLatestDiscountApprovalForTransaction = `-- name: GetLatestDiscountApprovalForTransaction :one
SELECT ` + discountApprovalColumns + `
FROM discount_approvals
WHERE workspace_id = $1 AND transaction_type = $2 AND transaction_id = $3
ORDER BY requested_at DESC, id DESC
LIMIT 1`

type GetLatestDiscountApprovalForTransactionParams struct {
	WorkspaceID     uuid.UUID `json:"workspace_id"`
	TransactionType string    `json:"transaction_type"`
	TransactionID   string    `json:"transaction_id"`
}

func (q *Queries) GetLatestDiscountApprovalForTransaction(ctx context.Context, arg GetLatestDiscountApprovalForTransactionParams) (DiscountApproval, error) {
	row := q.db.QueryRow(ctx, getLatestDiscountApprovalForTransaction, arg.WorkspaceID, arg.TransactionType, arg.TransactionID)
	return scanDiscountApproval(row)
}

const listDiscountApprovals = `-- name: ListDiscountApprovals :many
SELECT ` + discountApprovalColumns + `
FROM discount_approvals
WHERE workspace_id = $1
  AND ($2::text IS NULL OR status = $2::text)
ORDER BY requested_at DESC, id DESC
LIMIT $3 OFFSET $4`

type ListDiscountApprovalsParams struct {
	WorkspaceID uuid.UUID   `json:"workspace_id"`
	Status      pgtype.Text `json:"status"`
	Limit       int32       `json:"limit"`
	Offset      int32       `json:"offset"`
}

func (q *Queries) ListDiscountApprovals(ctx context.Context, arg ListDiscountApprovalsParams) ([]DiscountApproval, error) {
	rows, err := q.db.Query(ctx, listDiscountApprovals, arg.WorkspaceID, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectDiscountApprovals(rows)
}

// Only pending approvals move; pgx.ErrNoRows means the record was already
// resolved.
const resolveDiscountApproval = `-- name: ResolveDiscountApproval :one
UPDATE discount_approvals
SET status = $3,
    approved_by = $4,
    rejection_reason = $5,
    resolved_at = NOW()
WHERE id = $1 AND workspace_id = $2 AND status = 'pending'
RETURNING ` + discountApprovalColumns

type ResolveDiscountApprovalParams struct {
	ID              uuid.UUID   `json:"id"`
	WorkspaceID     uuid.UUID   `json:"workspace_id"`
	Status          string      `json:"status"`
	ApprovedBy      pgtype.UUID `json:"approved_by"`
	RejectionReason pgtype.Text `json:"rejection_reason"`
}

func (q *Queries) ResolveDiscountApproval(ctx context.Context, arg ResolveDiscountApprovalParams) (DiscountApproval, error) {
	row := q.db.QueryRow(ctx, resolveDiscountApproval,
		arg.ID,
		arg.WorkspaceID,
		arg.Status,
		arg.ApprovedBy,
		arg.RejectionReason,
	)
	return scanDiscountApproval(row)
}

// A repeated sign-off by the same approver inserts nothing and yields
// pgx.ErrNoRows.
const createApprovalDecision = `-- name: CreateApprovalDecision :one
INSERT INTO discount_approval_decisions (approval_id, approver_id)
VALUES ($1, $2)
ON CONFLICT (approval_id, approver_id) DO NOTHING
RETURNING approval_id, approver_id, decided_at`

type CreateApprovalDecisionParams struct {
	ApprovalID uuid.UUID `json:"approval_id"`
	ApproverID uuid.UUID `json:"approver_id"`
}

func (q *Queries) CreateApprovalDecision(ctx context.Context, arg CreateApprovalDecisionParams) (DiscountApprovalDecision, error) {
	row := q.db.QueryRow(ctx, createApprovalDecision, arg.ApprovalID, arg.ApproverID)
	var i DiscountApprovalDecision
	err := row.Scan(&i.ApprovalID, &i.ApproverID, &i.DecidedAt)
	return i, err
}

const listApprovalDecisions = `-- name: ListApprovalDecisions :many
SELECT approval_id, approver_id, decided_at
FROM discount_approval_decisions
WHERE approval_id = $1
ORDER BY decided_at, approver_id`

func (q *Queries) ListApprovalDecisions(ctx context.Context, approvalID uuid.UUID) ([]DiscountApprovalDecision, error) {
	rows, err := q.db.Query(ctx, listApprovalDecisions, approvalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []DiscountApprovalDecision{}
	for rows.Next() {
		var i DiscountApprovalDecision
		if err := rows.Scan(&i.ApprovalID, &i.ApproverID, &i.DecidedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listExpiredPendingApprovals = `-- name: ListExpiredPendingApprovals :many
SELECT ` + discountApprovalColumns + `
FROM discount_approvals
WHERE status = 'pending'
  AND expires_at IS NOT NULL
  AND expires_at <= $1
ORDER BY expires_at, id
LIMIT $2`

type ListExpiredPendingApprovalsParams struct {
	Now   pgtype.Timestamptz `json:"now"`
	Limit int32              `json:"limit"`
}

func (q *Queries) ListExpiredPendingApprovals(ctx context.Context, arg ListExpiredPendingApprovalsParams) ([]DiscountApproval, error) {
	rows, err := q.db.Query(ctx, listExpiredPendingApprovals, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectDiscountApprovals(rows)
}

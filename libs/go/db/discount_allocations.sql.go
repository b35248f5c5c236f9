package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const discountAllocationColumns = `id, workspace_id, transaction_type, transaction_id, currency, allocation_method,
    total_discount_amount, status, approval_id, void_reason, created_by, created_at, updated_at, applied_at, voided_at`

func scanDiscountAllocation(row pgx.Row) (DiscountAllocation, error) {
	var i DiscountAllocation
	err := row.Scan(
		&i.ID,
		&i.WorkspaceID,
		&i.TransactionType,
		&i.TransactionID,
		&i.Currency,
		&i.AllocationMethod,
		&i.TotalDiscountAmount,
		&i.Status,
		&i.ApprovalID,
		&i.VoidReason,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.AppliedAt,
		&i.VoidedAt,
	)
	return i, err
}

// TransactionRefParams addresses every allocation of one invoice or POS sale.
type TransactionRefParams struct {
	WorkspaceID     uuid.UUID `json:"workspace_id"`
	TransactionType string    `json:"transaction_type"`
	TransactionID   string    `json:"transaction_id"`
}

// Held until the surrounding transaction ends.
const acquireTransactionLock = `-- name: AcquireTransactionLock :exec
SELECT pg_advisory_xact_lock(hashtext($1))`

func (q *Queries) AcquireTransactionLock(ctx context.Context, lockKey string) error {
	_, err := q.db.Exec(ctx, acquireTransactionLock, lockKey)
	return err
}

const countAppliedAllocationsForTransaction = `-- name: CountAppliedAllocationsForTransaction :one
SELECT COUNT(*)
FROM discount_allocations
WHERE workspace_id = $1 AND transaction_type = $2 AND transaction_id = $3 AND status = 'applied'`

func (q *Queries) CountAppliedAllocationsForTransaction(ctx context.Context, arg TransactionRefParams) (int64, error) {
	row := q.db.QueryRow(ctx, countAppliedAllocationsForTransaction, arg.WorkspaceID, arg.TransactionType, arg.TransactionID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createDiscountAllocation = `-- name: CreateDiscountAllocation :one
INSERT INTO discount_allocations (
    workspace_id, transaction_type, transaction_id, currency, allocation_method, total_discount_amount,
    approval_id, created_by
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8
)
RETURNING ` + discountAllocationColumns

type CreateDiscountAllocationParams struct {
	WorkspaceID         uuid.UUID       `json:"workspace_id"`
	TransactionType     string          `json:"transaction_type"`
	TransactionID       string          `json:"transaction_id"`
	Currency            string          `json:"currency"`
	AllocationMethod    string          `json:"allocation_method"`
	TotalDiscountAmount decimal.Decimal `json:"total_discount_amount"`
	ApprovalID          pgtype.UUID     `json:"approval_id"`
	CreatedBy           pgtype.UUID     `json:"created_by"`
}

func (q *Queries) CreateDiscountAllocation(ctx context.Context, arg CreateDiscountAllocationParams) (DiscountAllocation, error) {
	row := q.db.QueryRow(ctx, createDiscountAllocation,
		arg.WorkspaceID,
		arg.TransactionType,
		arg.TransactionID,
		arg.Currency,
		arg.AllocationMethod,
		arg.TotalDiscountAmount,
		arg.ApprovalID,
		arg.CreatedBy,
	)
	return scanDiscountAllocation(row)
}

const createDiscountAllocationLine = `-- name: CreateDiscountAllocationLine :one
INSERT INTO discount_allocation_lines (allocation_id, line_item_id, position, line_amount, allocated_amount)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, allocation_id, line_item_id, position, line_amount, allocated_amount`

type CreateDiscountAllocationLineParams struct {
	AllocationID    uuid.UUID       `json:"allocation_id"`
	LineItemID      string          `json:"line_item_id"`
	Position        int32           `json:"position"`
	LineAmount      decimal.Decimal `json:"line_amount"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
}

func (q *Queries) CreateDiscountAllocationLine(ctx context.Context, arg CreateDiscountAllocationLineParams) (DiscountAllocationLine, error) {
	row := q.db.QueryRow(ctx, createDiscountAllocationLine,
		arg.AllocationID,
		arg.LineItemID,
		arg.Position,
		arg.LineAmount,
		arg.AllocatedAmount,
	)
	var i DiscountAllocationLine
	err := row.Scan(
		&i.ID,
		&i.AllocationID,
		&i.LineItemID,
		&i.Position,
		&i.LineAmount,
		&i.AllocatedAmount,
	)
	return i, err
}

const getDiscountAllocation = `-- name: GetDiscountAllocation :one
SELECT ` + discountAllocationColumns + `
FROM discount_allocations
WHERE id = $1 AND workspace_id = $2`

type GetDiscountAllocationParams struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

func (q *Queries) GetDiscountAllocation(ctx context.Context, arg GetDiscountAllocationParams) (DiscountAllocation, error) {
	row := q.db.QueryRow(ctx, getDiscountAllocation, arg.ID, arg.WorkspaceID)
	return scanDiscountAllocation(row)
}

const listDiscountAllocationLines = `-- name: ListDiscountAllocationLines :many
SELECT id, allocation_id, line_item_id, position, line_amount, allocated_amount
FROM discount_allocation_lines
WHERE allocation_id = $1
ORDER BY position`

func (q *Queries) ListDiscountAllocationLines(ctx context.Context, allocationID uuid.UUID) ([]DiscountAllocationLine, error) {
	rows, err := q.db.Query(ctx, listDiscountAllocationLines, allocationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []DiscountAllocationLine{}
	for rows.Next() {
		var i DiscountAllocationLine
		if err := rows.Scan(
			&i.ID,
			&i.AllocationID,
			&i.LineItemID,
			&i.Position,
			&i.LineAmount,
			&i.AllocatedAmount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listDiscountAllocationsForTransaction = `-- name: ListDiscountAllocationsForTransaction :many
SELECT ` + discountAllocationColumns + `
FROM discount_allocations
WHERE workspace_id = $1 AND transaction_type = $2 AND transaction_id = $3
ORDER BY created_at DESC, id`

func (q *Queries) ListDiscountAllocationsForTransaction(ctx context.Context, arg TransactionRefParams) ([]DiscountAllocation, error) {
	rows, err := q.db.Query(ctx, listDiscountAllocationsForTransaction, arg.WorkspaceID, arg.TransactionType, arg.TransactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []DiscountAllocation{}
	for rows.Next() {
		i, err := scanDiscountAllocation(rows)
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

// Moves an allocation only when it is still in FromStatus; pgx.ErrNoRows
// otherwise.
const updateDiscountAllocationStatus = `-- name: UpdateDiscountAllocationStatus :one
UPDATE discount_allocations
SET status = $4::text,
    void_reason = COALESCE($5, void_reason),
    applied_at = CASE WHEN $4::text = 'applied' THEN NOW() ELSE applied_at END,
    voided_at = CASE WHEN $4::text = 'void' THEN NOW() ELSE voided_at END,
    updated_at = NOW()
WHERE id = $1 AND workspace_id = $2 AND status = $3
RETURNING ` + discountAllocationColumns

type UpdateDiscountAllocationStatusParams struct {
	ID          uuid.UUID   `json:"id"`
	WorkspaceID uuid.UUID   `json:"workspace_id"`
	FromStatus  string      `json:"from_status"`
	ToStatus    string      `json:"to_status"`
	VoidReason  pgtype.Text `json:"void_reason"`
}

func (q *Queries) UpdateDiscountAllocationStatus(ctx context.Context, arg UpdateDiscountAllocationStatusParams) (DiscountAllocation, error) {
	row := q.db.QueryRow(ctx, updateDiscountAllocationStatus,
		arg.ID,
		arg.WorkspaceID,
		arg.FromStatus,
		arg.ToStatus,
		arg.VoidReason,
	)
	return scanDiscountAllocation(row)
}

const sumAppliedDiscountForTransaction = `-- name: SumAppliedDiscountForTransaction :one
SELECT COALESCE(SUM(total_discount_amount), 0)::numeric
FROM discount_allocations
WHERE workspace_id = $1 AND transaction_type = $2 AND transaction_id = $3 AND status = 'applied'`

func (q *Queries) SumAppliedDiscountForTransaction(ctx context.Context, arg TransactionRefParams) (decimal.Decimal, error) {
	row := q.db.QueryRow(ctx, sumAppliedDiscountForTransaction, arg.WorkspaceID, arg.TransactionType, arg.TransactionID)
	var total decimal.Decimal
	err := row.Scan(&total)
	return total, err
}

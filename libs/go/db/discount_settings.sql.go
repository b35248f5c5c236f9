package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const getWorkspaceDiscountSettings = `-- name: GetWorkspaceDiscountSettings :one
SELECT workspace_id, max_discount_percent, approval_threshold_percent, second_approval_threshold_percent,
    approval_amount_threshold, approval_expiry_seconds, approval_expiry_action, updated_by, updated_at
FROM workspace_discount_settings
WHERE workspace_id = $1`

func (q *Queries) GetWorkspaceDiscountSettings(ctx context.Context, workspaceID uuid.UUID) (WorkspaceDiscountSetting, error) {
	row := q.db.QueryRow(ctx, getWorkspaceDiscountSettings, workspaceID)
	var i WorkspaceDiscountSetting
	err := row.Scan(
		&i.WorkspaceID,
		&i.MaxDiscountPercent,
		&i.ApprovalThresholdPercent,
		&i.SecondApprovalThresholdPercent,
		&i.ApprovalAmountThreshold,
		&i.ApprovalExpirySeconds,
		&i.ApprovalExpiryAction,
		&i.UpdatedBy,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertWorkspaceDiscountSettings = `-- name: UpsertWorkspaceDiscountSettings :one
INSERT INTO workspace_discount_settings (
    workspace_id, max_discount_percent, approval_threshold_percent, second_approval_threshold_percent,
    approval_amount_threshold, approval_expiry_seconds, approval_expiry_action, updated_by, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, NOW()
)
ON CONFLICT (workspace_id) DO UPDATE
SET max_discount_percent = EXCLUDED.max_discount_percent,
    approval_threshold_percent = EXCLUDED.approval_threshold_percent,
    second_approval_threshold_percent = EXCLUDED.second_approval_threshold_percent,
    approval_amount_threshold = EXCLUDED.approval_amount_threshold,
    approval_expiry_seconds = EXCLUDED.approval_expiry_seconds,
    approval_expiry_action = EXCLUDED.approval_expiry_action,
    updated_by = EXCLUDED.updated_by,
    updated_at = NOW()
RETURNING workspace_id, max_discount_percent, approval_threshold_percent, second_approval_threshold_percent,
    approval_amount_threshold, approval_expiry_seconds, approval_expiry_action, updated_by, updated_at`

type UpsertWorkspaceDiscountSettingsParams struct {
	WorkspaceID                    uuid.UUID           `json:"workspace_id"`
	MaxDiscountPercent             decimal.NullDecimal `json:"max_discount_percent"`
	ApprovalThresholdPercent       decimal.Decimal     `json:"approval_threshold_percent"`
	SecondApprovalThresholdPercent decimal.NullDecimal `json:"second_approval_threshold_percent"`
	ApprovalAmountThreshold        decimal.NullDecimal `json:"approval_amount_threshold"`
	ApprovalExpirySeconds          int32               `json:"approval_expiry_seconds"`
	ApprovalExpiryAction           string              `json:"approval_expiry_action"`
	UpdatedBy                      pgtype.UUID         `json:"updated_by"`
}

func (q *Queries) UpsertWorkspaceDiscountSettings(ctx context.Context, arg UpsertWorkspaceDiscountSettingsParams) (WorkspaceDiscountSetting, error) {
	row := q.db.QueryRow(ctx, upsertWorkspaceDiscountSettings,
		arg.WorkspaceID,
		arg.MaxDiscountPercent,
		arg.ApprovalThresholdPercent,
		arg.SecondApprovalThresholdPercent,
		arg.ApprovalAmountThreshold,
		arg.ApprovalExpirySeconds,
		arg.ApprovalExpiryAction,
		arg.UpdatedBy,
	)
	var i WorkspaceDiscountSetting
	err := row.Scan(
		&i.WorkspaceID,
		&i.MaxDiscountPercent,
		&i.ApprovalThresholdPercent,
		&i.SecondApprovalThresholdPercent,
		&i.ApprovalAmountThreshold,
		&i.ApprovalExpirySeconds,
		&i.ApprovalExpiryAction,
		&i.UpdatedBy,
		&i.UpdatedAt,
	)
	return i, err
}

const createDiscountAuditEntry = `-- name: CreateDiscountAuditEntry :one
INSERT INTO discount_audit_log (workspace_id, entity_type, entity_id, action, actor_id, details)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, workspace_id, entity_type, entity_id, action, actor_id, details, created_at`

type CreateDiscountAuditEntryParams struct {
	WorkspaceID uuid.UUID   `json:"workspace_id"`
	EntityType  string      `json:"entity_type"`
	EntityID    uuid.UUID   `json:"entity_id"`
	Action      string      `json:"action"`
	ActorID     pgtype.UUID `json:"actor_id"`
	Details     []byte      `json:"details"`
}

func (q *Queries) CreateDiscountAuditEntry(ctx context.Context, arg CreateDiscountAuditEntryParams) (DiscountAuditLog, error) {
	row := q.db.QueryRow(ctx, createDiscountAuditEntry,
		arg.WorkspaceID,
		arg.EntityType,
		arg.EntityID,
		arg.Action,
		arg.ActorID,
		arg.Details,
	)
	var i DiscountAuditLog
	err := row.Scan(
		&i.ID,
		&i.WorkspaceID,
		&i.EntityType,
		&i.EntityID,
		&i.Action,
		&i.ActorID,
		&i.Details,
		&i.CreatedAt,
	)
	return i, err
}

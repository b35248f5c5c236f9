package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"go.uber.org/zap"
)

const (
	defaultApprovalListLimit = 20
	maxApprovalListLimit     = 100
	expirySweepBatchSize     = 100
)

// PolicyProvider resolves a workspace's discount policy
type PolicyProvider interface {
	GetPolicy(ctx context.Context, workspaceID uuid.UUID) (business.DiscountPolicy, error)
}

// DiscountApprovalService runs the approval gate: it decides when a discount
// needs sign-off, records requests and collects approver decisions.
type DiscountApprovalService struct {
	queries  db.Querier
	tx       interfaces.TxRunner
	policies PolicyProvider
	notifier interfaces.ApprovalNotifier
	audit    interfaces.AuditLogger
	logger   *zap.Logger
	now      func() time.Time
}

// NewDiscountApprovalService creates a new approval service. notifier and audit may be nil.
func NewDiscountApprovalService(
	queries db.Querier,
	tx interfaces.TxRunner,
	policies PolicyProvider,
	notifier interfaces.ApprovalNotifier,
	audit interfaces.AuditLogger,
) *DiscountApprovalService {
	return &DiscountApprovalService{
		queries:  queries,
		tx:       tx,
		policies: policies,
		notifier: notifier,
		audit:    audit,
		logger:   logger.Log,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Used by tests and the expiry sweeper.
func (s *DiscountApprovalService) WithClock(now func() time.Time) *DiscountApprovalService {
	s.now = now
	return s
}

// GateDecision is the approval gate's verdict for one commit attempt.
type GateDecision struct {
	// ApprovalID is the approved record authorizing the commit, if one was needed.
	ApprovalID *uuid.UUID
	// Halt, when set, is returned to the caller after the surrounding
	// transaction commits; nothing else may be committed with it.
	Halt error

	requested *db.DiscountApproval
	expired   *db.DiscountApproval
}

// Committable reports whether the discount may be committed
func (d *GateDecision) Committable() bool {
	return d.Halt == nil
}

// SummarizeApproval builds the caller-facing view of an approval record
func SummarizeApproval(a db.DiscountApproval) business.ApprovalSummary {
	return business.ApprovalSummary{
		ID:                a.ID,
		Status:            a.Status,
		TransactionType:   a.TransactionType,
		TransactionID:     a.TransactionID,
		RequestedPercent:  a.RequestedPercent,
		RequestedAmount:   a.RequestedAmount,
		ThresholdPercent:  a.ThresholdPercent,
		RequiredApprovals: a.RequiredApprovals,
		ExpiresAt:         helpers.NullableTimestamptzToPtr(a.ExpiresAt),
	}
}

func (s *DiscountApprovalService) isStale(a db.DiscountApproval) bool {
	return a.Status == business.ApprovalStatusPending &&
		a.ExpiresAt.Valid &&
		!s.now().Before(a.ExpiresAt.Time)
}

// CheckGate decides, inside the caller's transaction q, whether result may be
// committed. The transaction must already hold the transaction lock.
func (s *DiscountApprovalService) CheckGate(
	ctx context.Context,
	q db.Querier,
	dctx *business.DiscountContext,
	result *business.CombinationResult,
	policy business.DiscountPolicy,
	requestedBy uuid.UUID,
) (*GateDecision, error) {
	decision := &GateDecision{}
	required := policy.RequiredApprovals(result.Subtotal, result.TotalDiscount)
	if required == 0 {
		return decision, nil
	}

	ref := dctx.Transaction()
	if ref == nil {
		return nil, business.NewValidationError("transaction", "is required when the discount needs approval")
	}

	latest, err := q.GetLatestDiscountApprovalForTransaction(ctx, db.GetLatestDiscountApprovalForTransactionParams{
		WorkspaceID:     dctx.WorkspaceID(),
		TransactionType: ref.Type,
		TransactionID:   ref.ID,
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load approval: %w", err)
	}

	if err == nil {
		if s.isStale(latest) {
			expired, err := s.expireInTx(ctx, q, latest, policy)
			if err != nil {
				return nil, err
			}
			decision.expired = expired
			latest = *expired
		}

		switch latest.Status {
		case business.ApprovalStatusPending:
			decision.Halt = &business.ApprovalPendingError{ApprovalID: latest.ID}
			return decision, nil
		case business.ApprovalStatusApproved:
			if result.TotalDiscount.LessThanOrEqual(latest.RequestedAmount) {
				id := latest.ID
				decision.ApprovalID = &id
				return decision, nil
			}
		case business.ApprovalStatusRejected:
			if result.TotalDiscount.GreaterThanOrEqual(latest.RequestedAmount) {
				return nil, &business.ConflictError{
					Resource: "discount_approval",
					Reason:   fmt.Sprintf("a discount of %s was rejected for this transaction", latest.RequestedAmount),
				}
			}
		}
	}

	offers, err := json.Marshal(result.AppliedOffers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode offers: %w", err)
	}

	record, err := q.CreateDiscountApproval(ctx, db.CreateDiscountApprovalParams{
		WorkspaceID:       dctx.WorkspaceID(),
		TransactionType:   ref.Type,
		TransactionID:     ref.ID,
		CustomerID:        dctx.CustomerID(),
		Currency:          dctx.Currency(),
		Subtotal:          result.Subtotal,
		RequestedPercent:  business.DiscountPercent(result.Subtotal, result.TotalDiscount).Round(4),
		RequestedAmount:   result.TotalDiscount,
		ThresholdPercent:  policy.ApprovalThresholdPercent,
		RequiredApprovals: required,
		RequestedBy:       requestedBy,
		Offers:            offers,
		ExpiresAt:         helpers.TimePtrToNullableTimestamptz(policy.ApprovalExpiresAt(s.now())),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create approval: %w", err)
	}

	decision.requested = &record
	decision.Halt = &business.ApprovalRequiredError{Approval: SummarizeApproval(record)}
	return decision, nil
}

// AfterCommit notifies approvers and writes the audit trail for whatever the
// gate recorded. Failures are logged, never returned.
func (s *DiscountApprovalService) AfterCommit(ctx context.Context, decision *GateDecision) {
	if decision == nil {
		return
	}
	if decision.expired != nil {
		s.recordExpiry(ctx, *decision.expired)
	}
	if decision.requested == nil {
		return
	}

	a := *decision.requested
	s.logger.Info("Discount approval requested",
		zap.String("workspace_id", a.WorkspaceID.String()),
		zap.String("approval_id", a.ID.String()),
		zap.String("transaction_type", a.TransactionType),
		zap.String("transaction_id", a.TransactionID),
		zap.String("requested_percent", a.RequestedPercent.String()),
		zap.Int32("required_approvals", a.RequiredApprovals))

	requestedBy := a.RequestedBy
	s.record(ctx, business.AuditEntry{
		WorkspaceID: a.WorkspaceID,
		EntityType:  business.AuditEntityDiscountApproval,
		EntityID:    a.ID,
		Action:      business.AuditActionApprovalRequested,
		ActorID:     &requestedBy,
		Details: map[string]interface{}{
			"transaction_type":   a.TransactionType,
			"transaction_id":     a.TransactionID,
			"requested_amount":   a.RequestedAmount.String(),
			"requested_percent":  a.RequestedPercent.String(),
			"required_approvals": a.RequiredApprovals,
		},
	})

	if s.notifier != nil {
		if err := s.notifier.NotifyApprovalRequested(ctx, a); err != nil {
			s.logger.Error("Failed to notify approvers",
				zap.String("approval_id", a.ID.String()),
				zap.Error(err))
		}
	}
}

func (s *DiscountApprovalService) expireInTx(ctx context.Context, q db.Querier, a db.DiscountApproval, policy business.DiscountPolicy) (*db.DiscountApproval, error) {
	status := policy.ExpiredStatus()
	var reason string
	if status == business.ApprovalStatusRejected {
		reason = "approval window elapsed"
	}
	updated, err := q.ResolveDiscountApproval(ctx, db.ResolveDiscountApprovalParams{
		ID:              a.ID,
		WorkspaceID:     a.WorkspaceID,
		Status:          status,
		RejectionReason: helpers.StringToNullableText(reason),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to expire approval: %w", err)
	}
	return &updated, nil
}

func (s *DiscountApprovalService) recordExpiry(ctx context.Context, a db.DiscountApproval) {
	s.logger.Info("Discount approval expired",
		zap.String("workspace_id", a.WorkspaceID.String()),
		zap.String("approval_id", a.ID.String()),
		zap.String("status", a.Status))
	s.record(ctx, business.AuditEntry{
		WorkspaceID: a.WorkspaceID,
		EntityType:  business.AuditEntityDiscountApproval,
		EntityID:    a.ID,
		Action:      business.AuditActionApprovalExpired,
		Details:     map[string]interface{}{"status": a.Status},
	})
}

func (s *DiscountApprovalService) record(ctx context.Context, entry business.AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Error("Failed to write approval audit entry",
			zap.String("entity_id", entry.EntityID.String()),
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}

func (s *DiscountApprovalService) withDecisions(ctx context.Context, q db.Querier, a db.DiscountApproval) (*business.ApprovalWithDecisions, error) {
	decisions, err := q.ListApprovalDecisions(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval decisions: %w", err)
	}
	return &business.ApprovalWithDecisions{Approval: a, Decisions: decisions}, nil
}

func approvalNotFound(id uuid.UUID) error {
	return fmt.Errorf("discount approval %s: %w", id, business.ErrNotFound)
}

// loadForUpdate locks the approval and applies a pending expiry first. The
// returned record reflects any expiry.
func (s *DiscountApprovalService) loadForUpdate(ctx context.Context, q db.Querier, workspaceID, approvalID uuid.UUID) (db.DiscountApproval, *db.DiscountApproval, error) {
	a, err := q.GetDiscountApprovalForUpdate(ctx, db.GetDiscountApprovalParams{ID: approvalID, WorkspaceID: workspaceID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.DiscountApproval{}, nil, approvalNotFound(approvalID)
		}
		return db.DiscountApproval{}, nil, fmt.Errorf("failed to load approval: %w", err)
	}
	if !s.isStale(a) {
		return a, nil, nil
	}

	policy, err := s.policies.GetPolicy(ctx, workspaceID)
	if err != nil {
		return db.DiscountApproval{}, nil, err
	}
	expired, err := s.expireInTx(ctx, q, a, policy)
	if err != nil {
		return db.DiscountApproval{}, nil, err
	}
	return *expired, expired, nil
}

// GetApproval returns an approval and its sign-offs, expiring it first if its window has passed
func (s *DiscountApprovalService) GetApproval(ctx context.Context, workspaceID, approvalID uuid.UUID) (*business.ApprovalWithDecisions, error) {
	a, err := s.queries.GetDiscountApproval(ctx, db.GetDiscountApprovalParams{ID: approvalID, WorkspaceID: workspaceID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, approvalNotFound(approvalID)
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}
	if !s.isStale(a) {
		return s.withDecisions(ctx, s.queries, a)
	}

	var out *business.ApprovalWithDecisions
	var expired *db.DiscountApproval
	err = s.tx.RunInTransaction(ctx, func(q db.Querier) error {
		current, exp, err := s.loadForUpdate(ctx, q, workspaceID, approvalID)
		if err != nil {
			return err
		}
		expired = exp
		out, err = s.withDecisions(ctx, q, current)
		return err
	})
	if err != nil {
		return nil, err
	}
	if expired != nil {
		s.recordExpiry(ctx, *expired)
	}
	return out, nil
}

// ListApprovals lists a workspace's approvals, newest first
func (s *DiscountApprovalService) ListApprovals(ctx context.Context, params params.ListDiscountApprovalsParams) ([]db.DiscountApproval, error) {
	switch params.Status {
	case "", business.ApprovalStatusPending, business.ApprovalStatusApproved, business.ApprovalStatusRejected, business.ApprovalStatusExpired:
	default:
		return nil, business.NewValidationError("status", "must be pending, approved, rejected or expired")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultApprovalListLimit
	}
	if limit > maxApprovalListLimit {
		limit = maxApprovalListLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	approvals, err := s.queries.ListDiscountApprovals(ctx, db.ListDiscountApprovalsParams{
		WorkspaceID: params.WorkspaceID,
		Status:      helpers.StringToNullableText(params.Status),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	return approvals, nil
}

// Approve records an approver's sign-off and approves the request once enough
// distinct approvers have signed. Approving an approved request returns it unchanged.
func (s *DiscountApprovalService) Approve(ctx context.Context, params params.ApproveDiscountParams) (*business.ApprovalWithDecisions, error) {
	verr := &business.ValidationError{}
	if params.ApprovalID == uuid.Nil {
		verr.Add("approval_id", "is required")
	}
	if params.ApproverID == uuid.Nil {
		verr.Add("approver_id", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var (
		out      *business.ApprovalWithDecisions
		expired  *db.DiscountApproval
		action   string
		conflict error
	)
	err := s.tx.RunInTransaction(ctx, func(q db.Querier) error {
		a, exp, err := s.loadForUpdate(ctx, q, params.WorkspaceID, params.ApprovalID)
		if err != nil {
			return err
		}
		expired = exp

		switch a.Status {
		case business.ApprovalStatusApproved:
			out, err = s.withDecisions(ctx, q, a)
			return err
		case business.ApprovalStatusPending:
		default:
			// commit the expiry, if any, and report the conflict afterwards
			conflict = &business.ConflictError{
				Resource: "discount_approval",
				Reason:   fmt.Sprintf("cannot approve a %s approval", a.Status),
			}
			return nil
		}

		if _, err := q.CreateApprovalDecision(ctx, db.CreateApprovalDecisionParams{
			ApprovalID: a.ID,
			ApproverID: params.ApproverID,
		}); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to record sign-off: %w", err)
		} else if err == nil {
			action = business.AuditActionApprovalSignedOff
		}

		decisions, err := q.ListApprovalDecisions(ctx, a.ID)
		if err != nil {
			return fmt.Errorf("failed to list approval decisions: %w", err)
		}
		if int32(len(decisions)) >= a.RequiredApprovals {
			a, err = q.ResolveDiscountApproval(ctx, db.ResolveDiscountApprovalParams{
				ID:          a.ID,
				WorkspaceID: a.WorkspaceID,
				Status:      business.ApprovalStatusApproved,
				ApprovedBy:  helpers.UUIDPtrToNullableUUID(&params.ApproverID),
			})
			if err != nil {
				return fmt.Errorf("failed to approve: %w", err)
			}
			action = business.AuditActionApprovalApproved
		}

		out = &business.ApprovalWithDecisions{Approval: a, Decisions: decisions}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if expired != nil {
		s.recordExpiry(ctx, *expired)
	}
	if conflict != nil {
		return nil, conflict
	}
	if action != "" {
		approver := params.ApproverID
		s.record(ctx, business.AuditEntry{
			WorkspaceID: params.WorkspaceID,
			EntityType:  business.AuditEntityDiscountApproval,
			EntityID:    params.ApprovalID,
			Action:      action,
			ActorID:     &approver,
			Details: map[string]interface{}{
				"status":    out.Approval.Status,
				"sign_offs": len(out.Decisions),
				"required":  out.Approval.RequiredApprovals,
			},
		})
		s.logger.Info("Discount approval signed off",
			zap.String("approval_id", params.ApprovalID.String()),
			zap.String("approver_id", params.ApproverID.String()),
			zap.String("status", out.Approval.Status))
	}
	return out, nil
}

// Reject moves a pending approval to rejected. A reason is mandatory.
func (s *DiscountApprovalService) Reject(ctx context.Context, params params.RejectDiscountParams) (*business.ApprovalWithDecisions, error) {
	verr := &business.ValidationError{}
	if params.ApprovalID == uuid.Nil {
		verr.Add("approval_id", "is required")
	}
	if params.ApproverID == uuid.Nil {
		verr.Add("approver_id", "is required")
	}
	if len(params.Reason) == 0 {
		verr.Add("reason", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var (
		out      *business.ApprovalWithDecisions
		expired  *db.DiscountApproval
		conflict error
	)
	err := s.tx.RunInTransaction(ctx, func(q db.Querier) error {
		a, exp, err := s.loadForUpdate(ctx, q, params.WorkspaceID, params.ApprovalID)
		if err != nil {
			return err
		}
		expired = exp

		if a.Status != business.ApprovalStatusPending {
			conflict = &business.ConflictError{
				Resource: "discount_approval",
				Reason:   fmt.Sprintf("cannot reject a %s approval", a.Status),
			}
			return nil
		}

		a, err = q.ResolveDiscountApproval(ctx, db.ResolveDiscountApprovalParams{
			ID:              a.ID,
			WorkspaceID:     a.WorkspaceID,
			Status:          business.ApprovalStatusRejected,
			ApprovedBy:      helpers.UUIDPtrToNullableUUID(&params.ApproverID),
			RejectionReason: helpers.StringToNullableText(params.Reason),
		})
		if err != nil {
			return fmt.Errorf("failed to reject: %w", err)
		}
		out, err = s.withDecisions(ctx, q, a)
		return err
	})
	if err != nil {
		return nil, err
	}

	if expired != nil {
		s.recordExpiry(ctx, *expired)
	}
	if conflict != nil {
		return nil, conflict
	}

	approver := params.ApproverID
	s.record(ctx, business.AuditEntry{
		WorkspaceID: params.WorkspaceID,
		EntityType:  business.AuditEntityDiscountApproval,
		EntityID:    params.ApprovalID,
		Action:      business.AuditActionApprovalRejected,
		ActorID:     &approver,
		Details:     map[string]interface{}{"reason": params.Reason},
	})
	s.logger.Info("Discount approval rejected",
		zap.String("approval_id", params.ApprovalID.String()),
		zap.String("approver_id", params.ApproverID.String()))

	return out, nil
}

// ExpireStaleApprovals applies each workspace's expiry action to pending
// approvals whose window has passed. It returns how many were expired.
func (s *DiscountApprovalService) ExpireStaleApprovals(ctx context.Context) (int, error) {
	stale, err := s.queries.ListExpiredPendingApprovals(ctx, db.ListExpiredPendingApprovalsParams{
		Now:   helpers.TimeToNullableTimestamptz(s.now()),
		Limit: expirySweepBatchSize,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list stale approvals: %w", err)
	}

	expiredCount := 0
	for _, a := range stale {
		var expired *db.DiscountApproval
		err := s.tx.RunInTransaction(ctx, func(q db.Querier) error {
			_, exp, err := s.loadForUpdate(ctx, q, a.WorkspaceID, a.ID)
			expired = exp
			return err
		})
		if err != nil {
			s.logger.Error("Failed to expire approval",
				zap.String("approval_id", a.ID.String()),
				zap.Error(err))
			continue
		}
		if expired != nil {
			s.recordExpiry(ctx, *expired)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		s.logger.Info("Expired stale discount approvals", zap.Int("count", expiredCount))
	}
	return expiredCount, nil
}

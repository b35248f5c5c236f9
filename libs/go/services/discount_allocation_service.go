package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AllocationRequest is a planned allocation ready to be persisted
type AllocationRequest struct {
	WorkspaceID uuid.UUID
	Transaction business.TransactionRef
	Currency    string
	Method      string
	Total       decimal.Decimal
	Lines       []business.AllocatedLine
	ApprovalID  *uuid.UUID
	CreatedBy   *uuid.UUID
	Apply       bool
	// GateChecked is set by callers that already ran the approval gate
	// under the same transaction lock.
	GateChecked bool
}

// DiscountAllocationService persists discount allocations and moves them
// through pending, applied and void
type DiscountAllocationService struct {
	queries   db.Querier
	tx        interfaces.TxRunner
	currency  interfaces.CurrencyPrecisionResolver
	policies  PolicyProvider
	publisher interfaces.EventPublisher
	audit     interfaces.AuditLogger
	allocator *DiscountAllocator
	logger    *zap.Logger
	now       func() time.Time
}

// NewDiscountAllocationService creates a new allocation service. publisher and audit may be nil.
func NewDiscountAllocationService(
	queries db.Querier,
	tx interfaces.TxRunner,
	currency interfaces.CurrencyPrecisionResolver,
	policies PolicyProvider,
	publisher interfaces.EventPublisher,
	audit interfaces.AuditLogger,
) *DiscountAllocationService {
	return &DiscountAllocationService{
		queries:   queries,
		tx:        tx,
		currency:  currency,
		policies:  policies,
		publisher: publisher,
		audit:     audit,
		allocator: NewDiscountAllocator(),
		logger:    logger.Log,
		now:       time.Now,
	}
}

func validateTransactionRef(verr *business.ValidationError, ref business.TransactionRef) {
	if ref.Type != business.TransactionTypeInvoice && ref.Type != business.TransactionTypePOSSale {
		verr.Add("transaction_type", "must be invoice or pos_sale")
	}
	if strings.TrimSpace(ref.ID) == "" {
		verr.Add("transaction_id", "is required")
	}
}

// PlanAllocation computes the line split without touching the database
func (s *DiscountAllocationService) PlanAllocation(total decimal.Decimal, lines []business.AllocationLineInput, method string, places int32) ([]business.AllocatedLine, error) {
	planned, err := s.allocator.AllocateLines(total, lines, method, places)
	if err != nil {
		var cerr *business.ConsistencyError
		if errors.As(err, &cerr) {
			s.logger.Error("Allocation failed to reconcile",
				zap.String("total", total.String()),
				zap.Int("lines", len(lines)),
				zap.Error(err))
		}
		return nil, err
	}
	return planned, nil
}

// CommitInTx persists req inside the caller's transaction. It takes the
// transaction's advisory lock and refuses when an applied allocation exists.
func (s *DiscountAllocationService) CommitInTx(ctx context.Context, q db.Querier, req AllocationRequest) (*business.AllocationWithLines, error) {
	if err := q.AcquireTransactionLock(ctx, req.Transaction.LockKey(req.WorkspaceID)); err != nil {
		return nil, fmt.Errorf("failed to lock transaction: %w", err)
	}
	if err := s.ensureNoAppliedAllocation(ctx, q, req.WorkspaceID, req.Transaction); err != nil {
		return nil, err
	}
	if !req.GateChecked {
		approvalID, err := s.authorizeInTx(ctx, q, allocationGate{
			WorkspaceID: req.WorkspaceID,
			Transaction: req.Transaction,
			Total:       req.Total,
			ApprovalID:  req.ApprovalID,
			Subtotal: func() (decimal.Decimal, error) {
				return plannedSubtotal(req.Lines), nil
			},
		})
		if err != nil {
			return nil, err
		}
		req.ApprovalID = approvalID
	}

	method := req.Method
	if method == "" {
		method = business.AllocationMethodProportional
	}

	allocation, err := q.CreateDiscountAllocation(ctx, db.CreateDiscountAllocationParams{
		WorkspaceID:         req.WorkspaceID,
		TransactionType:     req.Transaction.Type,
		TransactionID:       req.Transaction.ID,
		Currency:            req.Currency,
		AllocationMethod:    method,
		TotalDiscountAmount: req.Total,
		ApprovalID:          helpers.UUIDPtrToNullableUUID(req.ApprovalID),
		CreatedBy:           helpers.UUIDPtrToNullableUUID(req.CreatedBy),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}

	lines := make([]db.DiscountAllocationLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		line, err := q.CreateDiscountAllocationLine(ctx, db.CreateDiscountAllocationLineParams{
			AllocationID:    allocation.ID,
			LineItemID:      l.LineItemID,
			Position:        l.Position,
			LineAmount:      l.LineAmount,
			AllocatedAmount: l.AllocatedAmount,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create allocation line: %w", err)
		}
		lines = append(lines, line)
	}

	if req.Apply {
		allocation, err = q.UpdateDiscountAllocationStatus(ctx, db.UpdateDiscountAllocationStatusParams{
			ID:          allocation.ID,
			WorkspaceID: req.WorkspaceID,
			FromStatus:  business.AllocationStatusPending,
			ToStatus:    business.AllocationStatusApplied,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to apply allocation: %w", err)
		}
	}

	return &business.AllocationWithLines{Allocation: allocation, Lines: lines}, nil
}

// allocationGate describes a discount about to be committed outside the
// calculate flow
type allocationGate struct {
	WorkspaceID uuid.UUID
	Transaction business.TransactionRef
	Total       decimal.Decimal
	ApprovalID  *uuid.UUID
	Subtotal    func() (decimal.Decimal, error)
}

func plannedSubtotal(lines []business.AllocatedLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineAmount)
	}
	return subtotal
}

func storedSubtotal(lines []db.DiscountAllocationLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineAmount)
	}
	return subtotal
}

// authorizeInTx applies the approval gate to a direct allocation. The caller
// must hold the transaction lock. It returns the approval that authorizes the
// discount, if one is needed.
func (s *DiscountAllocationService) authorizeInTx(ctx context.Context, q db.Querier, g allocationGate) (*uuid.UUID, error) {
	latest, err := q.GetLatestDiscountApprovalForTransaction(ctx, db.GetLatestDiscountApprovalForTransactionParams{
		WorkspaceID:     g.WorkspaceID,
		TransactionType: g.Transaction.Type,
		TransactionID:   g.Transaction.ID,
	})
	hasLatest := err == nil
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load approval: %w", err)
	}
	if hasLatest && latest.Status == business.ApprovalStatusPending &&
		(!latest.ExpiresAt.Valid || s.now().Before(latest.ExpiresAt.Time)) {
		return nil, &business.ApprovalPendingError{ApprovalID: latest.ID}
	}

	if g.ApprovalID != nil {
		if err := s.checkApprovalInTx(ctx, q, g); err != nil {
			return nil, err
		}
		return g.ApprovalID, nil
	}

	policy, err := s.policies.GetPolicy(ctx, g.WorkspaceID)
	if err != nil {
		return nil, err
	}
	subtotal, err := g.Subtotal()
	if err != nil {
		return nil, err
	}
	if policy.RequiredApprovals(subtotal, g.Total) == 0 {
		return nil, nil
	}

	if hasLatest && latest.Status == business.ApprovalStatusApproved && g.Total.LessThanOrEqual(latest.RequestedAmount) {
		id := latest.ID
		return &id, nil
	}
	return nil, &business.ConflictError{
		Resource: "discount_approval",
		Reason: fmt.Sprintf("a discount of %s%% on %s %s requires approval",
			business.DiscountPercent(subtotal, g.Total).StringFixed(2), g.Transaction.Type, g.Transaction.ID),
	}
}

func (s *DiscountAllocationService) checkApprovalInTx(ctx context.Context, q db.Querier, g allocationGate) error {
	approval, err := q.GetDiscountApproval(ctx, db.GetDiscountApprovalParams{ID: *g.ApprovalID, WorkspaceID: g.WorkspaceID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return business.NewValidationError("approval_id", "does not exist in this workspace")
		}
		return fmt.Errorf("failed to load approval: %w", err)
	}
	if approval.TransactionType != g.Transaction.Type || approval.TransactionID != g.Transaction.ID {
		return business.NewValidationError("approval_id", "belongs to a different transaction")
	}
	if approval.Status != business.ApprovalStatusApproved {
		return &business.ConflictError{
			Resource: "discount_approval",
			Reason:   fmt.Sprintf("approval %s is %s", approval.ID, approval.Status),
		}
	}
	if g.Total.GreaterThan(approval.RequestedAmount) {
		return &business.ConflictError{
			Resource: "discount_approval",
			Reason:   fmt.Sprintf("discount %s exceeds the approved amount %s", g.Total, approval.RequestedAmount),
		}
	}
	return nil
}

func (s *DiscountAllocationService) ensureNoAppliedAllocation(ctx context.Context, q db.Querier, workspaceID uuid.UUID, ref business.TransactionRef) error {
	applied, err := q.CountAppliedAllocationsForTransaction(ctx, db.TransactionRefParams{
		WorkspaceID:     workspaceID,
		TransactionType: ref.Type,
		TransactionID:   ref.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to check existing allocations: %w", err)
	}
	if applied > 0 {
		return &business.ConflictError{
			Resource: "discount_allocation",
			Reason:   fmt.Sprintf("%s %s already has an applied discount allocation", ref.Type, ref.ID),
		}
	}
	return nil
}

// AfterCommit writes the audit trail for a persisted allocation and, when it
// was applied, publishes the finalized event. Failures are logged only.
func (s *DiscountAllocationService) AfterCommit(ctx context.Context, result *business.AllocationWithLines, ruleIDs []uuid.UUID, actorID *uuid.UUID) {
	a := result.Allocation
	s.record(ctx, business.AuditEntry{
		WorkspaceID: a.WorkspaceID,
		EntityType:  business.AuditEntityDiscountAllocation,
		EntityID:    a.ID,
		Action:      business.AuditActionAllocationCreated,
		ActorID:     actorID,
		Details: map[string]interface{}{
			"transaction_type": a.TransactionType,
			"transaction_id":   a.TransactionID,
			"total_discount":   a.TotalDiscountAmount.String(),
			"method":           a.AllocationMethod,
			"lines":            len(result.Lines),
		},
	})
	if a.Status == business.AllocationStatusApplied {
		s.afterApply(ctx, result, ruleIDs, actorID)
	}
}

func (s *DiscountAllocationService) afterApply(ctx context.Context, result *business.AllocationWithLines, ruleIDs []uuid.UUID, actorID *uuid.UUID) {
	a := result.Allocation
	s.record(ctx, business.AuditEntry{
		WorkspaceID: a.WorkspaceID,
		EntityType:  business.AuditEntityDiscountAllocation,
		EntityID:    a.ID,
		Action:      business.AuditActionAllocationApplied,
		ActorID:     actorID,
		Details:     map[string]interface{}{"total_discount": a.TotalDiscountAmount.String()},
	})
	s.publish(ctx, newDiscountEvent(business.EventTransactionFinalized, result, ruleIDs, ""))
}

func newDiscountEvent(eventType string, result *business.AllocationWithLines, ruleIDs []uuid.UUID, reason string) business.DiscountEvent {
	a := result.Allocation
	lines := make([]business.AllocatedLine, len(result.Lines))
	for i, l := range result.Lines {
		lines[i] = business.AllocatedLine{
			LineItemID:      l.LineItemID,
			Position:        l.Position,
			LineAmount:      l.LineAmount,
			AllocatedAmount: l.AllocatedAmount,
		}
	}
	return business.DiscountEvent{
		EventID:         uuid.New(),
		EventType:       eventType,
		WorkspaceID:     a.WorkspaceID,
		AllocationID:    a.ID,
		TransactionType: a.TransactionType,
		TransactionID:   a.TransactionID,
		Currency:        a.Currency,
		TotalDiscount:   a.TotalDiscountAmount,
		Lines:           lines,
		AppliedRuleIDs:  ruleIDs,
		Reason:          reason,
		OccurredAt:      time.Now().UTC(),
	}
}

func (s *DiscountAllocationService) publish(ctx context.Context, event business.DiscountEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish discount event",
			zap.String("event_type", event.EventType),
			zap.String("allocation_id", event.AllocationID.String()),
			zap.Error(err))
	}
}

func (s *DiscountAllocationService) record(ctx context.Context, entry business.AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Error("Failed to write allocation audit entry",
			zap.String("entity_id", entry.EntityID.String()),
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}

// Allocate spreads a total discount over line items and persists the result
func (s *DiscountAllocationService) Allocate(ctx context.Context, params params.AllocateDiscountParams) (*business.AllocationWithLines, error) {
	ref := business.TransactionRef{Type: params.TransactionType, ID: params.TransactionID}
	verr := &business.ValidationError{}
	if params.WorkspaceID == uuid.Nil {
		verr.Add("workspace_id", "is required")
	}
	validateTransactionRef(verr, ref)
	if params.TotalDiscount.IsNegative() {
		verr.Add("total_discount", "must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	places, err := s.currency.DecimalPlaces(ctx, params.Currency)
	if err != nil {
		return nil, err
	}
	planned, err := s.PlanAllocation(params.TotalDiscount, params.Lines, params.Method, places)
	if err != nil {
		return nil, err
	}

	req := AllocationRequest{
		WorkspaceID: params.WorkspaceID,
		Transaction: ref,
		Currency:    strings.ToUpper(params.Currency),
		Method:      params.Method,
		Total:       params.TotalDiscount,
		Lines:       planned,
		ApprovalID:  params.ApprovalID,
		CreatedBy:   params.CreatedBy,
		Apply:       params.Apply,
	}

	var result *business.AllocationWithLines
	err = s.tx.RunInTransaction(ctx, func(q db.Querier) error {
		var err error
		result, err = s.CommitInTx(ctx, q, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Discount allocated",
		zap.String("workspace_id", params.WorkspaceID.String()),
		zap.String("allocation_id", result.Allocation.ID.String()),
		zap.String("transaction_type", ref.Type),
		zap.String("transaction_id", ref.ID),
		zap.String("total_discount", params.TotalDiscount.String()),
		zap.String("status", result.Allocation.Status))

	s.AfterCommit(ctx, result, params.AppliedRuleIDs, params.CreatedBy)
	return result, nil
}

func allocationNotFound(id uuid.UUID) error {
	return fmt.Errorf("discount allocation %s: %w", id, business.ErrNotFound)
}

func (s *DiscountAllocationService) transition(
	ctx context.Context,
	params params.AllocationTransitionParams,
	from, to string,
	beforeUpdate func(ctx context.Context, q db.Querier, a db.DiscountAllocation) error,
) (*business.AllocationWithLines, error) {
	var result *business.AllocationWithLines
	err := s.tx.RunInTransaction(ctx, func(q db.Querier) error {
		current, err := q.GetDiscountAllocation(ctx, db.GetDiscountAllocationParams{ID: params.AllocationID, WorkspaceID: params.WorkspaceID})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return allocationNotFound(params.AllocationID)
			}
			return fmt.Errorf("failed to load allocation: %w", err)
		}

		ref := business.TransactionRef{Type: current.TransactionType, ID: current.TransactionID}
		if err := q.AcquireTransactionLock(ctx, ref.LockKey(params.WorkspaceID)); err != nil {
			return fmt.Errorf("failed to lock transaction: %w", err)
		}
		if current.Status != from {
			return &business.ConflictError{
				Resource: "discount_allocation",
				Reason:   fmt.Sprintf("cannot move a %s allocation to %s", current.Status, to),
			}
		}
		if beforeUpdate != nil {
			if err := beforeUpdate(ctx, q, current); err != nil {
				return err
			}
		}

		updated, err := q.UpdateDiscountAllocationStatus(ctx, db.UpdateDiscountAllocationStatusParams{
			ID:          current.ID,
			WorkspaceID: params.WorkspaceID,
			FromStatus:  from,
			ToStatus:    to,
			VoidReason:  helpers.StringToNullableText(params.Reason),
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &business.ConflictError{Resource: "discount_allocation", Reason: "allocation changed concurrently"}
			}
			return fmt.Errorf("failed to update allocation: %w", err)
		}

		lines, err := q.ListDiscountAllocationLines(ctx, updated.ID)
		if err != nil {
			return fmt.Errorf("failed to list allocation lines: %w", err)
		}
		result = &business.AllocationWithLines{Allocation: updated, Lines: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyAllocation marks a pending allocation as the transaction's authoritative discount
func (s *DiscountAllocationService) ApplyAllocation(ctx context.Context, params params.AllocationTransitionParams) (*business.AllocationWithLines, error) {
	params.Reason = ""
	result, err := s.transition(ctx, params, business.AllocationStatusPending, business.AllocationStatusApplied,
		func(ctx context.Context, q db.Querier, a db.DiscountAllocation) error {
			ref := business.TransactionRef{Type: a.TransactionType, ID: a.TransactionID}
			if err := s.ensureNoAppliedAllocation(ctx, q, a.WorkspaceID, ref); err != nil {
				return err
			}
			_, err := s.authorizeInTx(ctx, q, allocationGate{
				WorkspaceID: a.WorkspaceID,
				Transaction: ref,
				Total:       a.TotalDiscountAmount,
				ApprovalID:  helpers.NullableUUIDToPtr(a.ApprovalID),
				Subtotal: func() (decimal.Decimal, error) {
					lines, err := q.ListDiscountAllocationLines(ctx, a.ID)
					if err != nil {
						return decimal.Zero, fmt.Errorf("failed to list allocation lines: %w", err)
					}
					return storedSubtotal(lines), nil
				},
			})
			return err
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Discount allocation applied",
		zap.String("workspace_id", params.WorkspaceID.String()),
		zap.String("allocation_id", params.AllocationID.String()))
	s.afterApply(ctx, result, nil, params.ActorID)
	return result, nil
}

// VoidAllocation voids an applied allocation. Its lines are kept for reporting.
func (s *DiscountAllocationService) VoidAllocation(ctx context.Context, params params.AllocationTransitionParams) (*business.AllocationWithLines, error) {
	params.Reason = strings.TrimSpace(params.Reason)
	if params.Reason == "" {
		return nil, business.NewValidationError("reason", "is required")
	}

	result, err := s.transition(ctx, params, business.AllocationStatusApplied, business.AllocationStatusVoid, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Discount allocation voided",
		zap.String("workspace_id", params.WorkspaceID.String()),
		zap.String("allocation_id", params.AllocationID.String()),
		zap.String("reason", params.Reason))
	s.record(ctx, business.AuditEntry{
		WorkspaceID: params.WorkspaceID,
		EntityType:  business.AuditEntityDiscountAllocation,
		EntityID:    params.AllocationID,
		Action:      business.AuditActionAllocationVoided,
		ActorID:     params.ActorID,
		Details:     map[string]interface{}{"reason": params.Reason},
	})
	s.publish(ctx, newDiscountEvent(business.EventAllocationVoided, result, nil, params.Reason))
	return result, nil
}

// GetAllocation returns an allocation with its lines in position order
func (s *DiscountAllocationService) GetAllocation(ctx context.Context, workspaceID, allocationID uuid.UUID) (*business.AllocationWithLines, error) {
	a, err := s.queries.GetDiscountAllocation(ctx, db.GetDiscountAllocationParams{ID: allocationID, WorkspaceID: workspaceID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, allocationNotFound(allocationID)
		}
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	lines, err := s.queries.ListDiscountAllocationLines(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocation lines: %w", err)
	}
	return &business.AllocationWithLines{Allocation: a, Lines: lines}, nil
}

// ListAllocations returns every allocation of a transaction, void ones included
func (s *DiscountAllocationService) ListAllocations(ctx context.Context, workspaceID uuid.UUID, ref business.TransactionRef) ([]db.DiscountAllocation, error) {
	verr := &business.ValidationError{}
	validateTransactionRef(verr, ref)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	allocations, err := s.queries.ListDiscountAllocationsForTransaction(ctx, db.TransactionRefParams{
		WorkspaceID:     workspaceID,
		TransactionType: ref.Type,
		TransactionID:   ref.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	return allocations, nil
}

// SumAppliedDiscounts totals the transaction's applied allocations. Void and
// pending allocations are excluded.
func (s *DiscountAllocationService) SumAppliedDiscounts(ctx context.Context, workspaceID uuid.UUID, ref business.TransactionRef) (decimal.Decimal, error) {
	verr := &business.ValidationError{}
	validateTransactionRef(verr, ref)
	if err := verr.OrNil(); err != nil {
		return decimal.Zero, err
	}
	sum, err := s.queries.SumAppliedDiscountForTransaction(ctx, db.TransactionRefParams{
		WorkspaceID:     workspaceID,
		TransactionType: ref.Type,
		TransactionID:   ref.ID,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum applied discounts: %w", err)
	}
	return sum, nil
}

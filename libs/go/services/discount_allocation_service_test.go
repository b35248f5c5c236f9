package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/mocks"
	"github.com/ledgerline/ledgerline-api/libs/go/services"
	"github.com/ledgerline/ledgerline-api/libs/go/testutil"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type allocationHarness struct {
	mdb       *testutil.MockDatabase
	currency  *mocks.MockCurrencyPrecisionResolver
	policies  *mocks.MockDiscountSettingsService
	publisher *mocks.MockEventPublisher
	audit     *mocks.MockAuditLogger
	service   *services.DiscountAllocationService
}

func newAllocationHarness(t *testing.T) *allocationHarness {
	mdb := testutil.NewMockDatabase(t)
	h := &allocationHarness{
		mdb:       mdb,
		currency:  mocks.NewMockCurrencyPrecisionResolver(mdb.Ctrl),
		policies:  mocks.NewMockDiscountSettingsService(mdb.Ctrl),
		publisher: mocks.NewMockEventPublisher(mdb.Ctrl),
		audit:     mocks.NewMockAuditLogger(mdb.Ctrl),
	}
	var publisher interfaces.EventPublisher = h.publisher
	var audit interfaces.AuditLogger = h.audit
	h.service = services.NewDiscountAllocationService(mdb.Querier, mdb.Tx, h.currency, h.policies, publisher, audit)
	return h
}

func approvalPolicy() business.DiscountPolicy {
	return business.DiscountPolicy{ApprovalThresholdPercent: dec("15")}
}

// expectOpenGate lets a discount below the approval threshold through
func (h *allocationHarness) expectOpenGate(ctx context.Context) {
	h.mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(db.DiscountApproval{}, pgx.ErrNoRows)
	h.policies.EXPECT().GetPolicy(ctx, testWorkspaceID).Return(approvalPolicy(), nil)
}

func storedApproval(status, amount string) db.DiscountApproval {
	return db.DiscountApproval{
		ID:                uuid.New(),
		WorkspaceID:       testWorkspaceID,
		TransactionType:   business.TransactionTypeInvoice,
		TransactionID:     "INV-2001",
		Subtotal:          dec("100.00"),
		RequestedAmount:   dec(amount),
		RequiredApprovals: 1,
		Status:            status,
	}
}

// expectPersist echoes the created allocation and lines back
func (h *allocationHarness) expectPersist(t *testing.T, ctx context.Context, apply bool) {
	q := h.mdb.Querier
	q.EXPECT().
		CreateDiscountAllocation(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.CreateDiscountAllocationParams) (db.DiscountAllocation, error) {
			return db.DiscountAllocation{
				ID:                  uuid.New(),
				WorkspaceID:         arg.WorkspaceID,
				TransactionType:     arg.TransactionType,
				TransactionID:       arg.TransactionID,
				Currency:            arg.Currency,
				AllocationMethod:    arg.AllocationMethod,
				TotalDiscountAmount: arg.TotalDiscountAmount,
				Status:              business.AllocationStatusPending,
				ApprovalID:          arg.ApprovalID,
				CreatedBy:           arg.CreatedBy,
			}, nil
		})
	q.EXPECT().
		CreateDiscountAllocationLine(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.CreateDiscountAllocationLineParams) (db.DiscountAllocationLine, error) {
			return db.DiscountAllocationLine{
				ID:              uuid.New(),
				AllocationID:    arg.AllocationID,
				LineItemID:      arg.LineItemID,
				Position:        arg.Position,
				LineAmount:      arg.LineAmount,
				AllocatedAmount: arg.AllocatedAmount,
			}, nil
		}).
		AnyTimes()
	if apply {
		q.EXPECT().
			UpdateDiscountAllocationStatus(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.UpdateDiscountAllocationStatusParams) (db.DiscountAllocation, error) {
				assert.Equal(t, business.AllocationStatusPending, arg.FromStatus)
				assert.Equal(t, business.AllocationStatusApplied, arg.ToStatus)
				return db.DiscountAllocation{
					ID:                  arg.ID,
					WorkspaceID:         arg.WorkspaceID,
					TransactionType:     business.TransactionTypeInvoice,
					TransactionID:       "INV-2001",
					Currency:            "USD",
					AllocationMethod:    business.AllocationMethodProportional,
					TotalDiscountAmount: dec("10.00"),
					Status:              business.AllocationStatusApplied,
				}, nil
			})
	}
}

func invoiceAllocationParams(apply bool) params.AllocateDiscountParams {
	return params.AllocateDiscountParams{
		WorkspaceID:     testWorkspaceID,
		TransactionType: business.TransactionTypeInvoice,
		TransactionID:   "INV-2001",
		Currency:        "usd",
		TotalDiscount:   dec("10.00"),
		Lines: []business.AllocationLineInput{
			{LineItemID: "a", Amount: dec("33.33")},
			{LineItemID: "b", Amount: dec("33.33")},
			{LineItemID: "c", Amount: dec("33.34")},
		},
		Apply: apply,
	}
}

func TestDiscountAllocationService_Allocate(t *testing.T) {
	ctx := context.Background()
	lockKey := business.TransactionRef{Type: business.TransactionTypeInvoice, ID: "INV-2001"}.LockKey(testWorkspaceID)

	t.Run("pending allocation is persisted with reconciled lines", func(t *testing.T) {
		h := newAllocationHarness(t)
		h.currency.EXPECT().DecimalPlaces(ctx, "usd").Return(int32(2), nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, lockKey).Return(nil)
		h.mdb.Querier.EXPECT().CountAppliedAllocationsForTransaction(ctx, gomock.Any()).Return(int64(0), nil)
		h.expectOpenGate(ctx)
		h.expectPersist(t, ctx, false)
		h.audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, entry business.AuditEntry) error {
				assert.Equal(t, business.AuditActionAllocationCreated, entry.Action)
				return nil
			})

		result, err := h.service.Allocate(ctx, invoiceAllocationParams(false))
		require.NoError(t, err)

		assert.Equal(t, business.AllocationStatusPending, result.Allocation.Status)
		assert.Equal(t, "USD", result.Allocation.Currency)
		assert.Equal(t, business.AllocationMethodProportional, result.Allocation.AllocationMethod)
		require.Len(t, result.Lines, 3)
		amounts := make([]string, len(result.Lines))
		for i, l := range result.Lines {
			amounts[i] = l.AllocatedAmount.StringFixed(2)
		}
		assert.Equal(t, []string{"3.33", "3.33", "3.34"}, amounts)
	})

	t.Run("applied allocation publishes the finalized event", func(t *testing.T) {
		h := newAllocationHarness(t)
		ruleID := uuid.New()
		h.currency.EXPECT().DecimalPlaces(ctx, "usd").Return(int32(2), nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, lockKey).Return(nil)
		h.mdb.Querier.EXPECT().CountAppliedAllocationsForTransaction(ctx, gomock.Any()).Return(int64(0), nil)
		h.expectOpenGate(ctx)
		h.expectPersist(t, ctx, true)
		h.audit.EXPECT().Record(ctx, gomock.Any()).Return(nil).Times(2)
		h.publisher.EXPECT().
			Publish(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event business.DiscountEvent) error {
				assert.Equal(t, business.EventTransactionFinalized, event.EventType)
				assert.Equal(t, []uuid.UUID{ruleID}, event.AppliedRuleIDs)
				assert.Len(t, event.Lines, 3)
				return nil
			})

		p := invoiceAllocationParams(true)
		p.AppliedRuleIDs = []uuid.UUID{ruleID}
		result, err := h.service.Allocate(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, business.AllocationStatusApplied, result.Allocation.Status)
	})

	t.Run("second applied allocation conflicts", func(t *testing.T) {
		h := newAllocationHarness(t)
		h.currency.EXPECT().DecimalPlaces(ctx, "usd").Return(int32(2), nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, lockKey).Return(nil)
		h.mdb.Querier.EXPECT().CountAppliedAllocationsForTransaction(ctx, gomock.Any()).Return(int64(1), nil)

		_, err := h.service.Allocate(ctx, invoiceAllocationParams(true))
		var conflict *business.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("invalid input never reaches the database", func(t *testing.T) {
		h := newAllocationHarness(t)
		p := invoiceAllocationParams(false)
		p.TransactionType = "quote"
		p.TransactionID = " "

		_, err := h.service.Allocate(ctx, p)
		var verr *business.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
		assert.Zero(t, h.mdb.Tx.Calls)
	})

	t.Run("discount larger than the lines", func(t *testing.T) {
		h := newAllocationHarness(t)
		p := invoiceAllocationParams(false)
		p.TotalDiscount = dec("150.00")
		h.currency.EXPECT().DecimalPlaces(ctx, "usd").Return(int32(2), nil)

		_, err := h.service.Allocate(ctx, p)
		assert.Error(t, err)
		assert.Zero(t, h.mdb.Tx.Calls)
	})
}

func storedAllocation(status string) db.DiscountAllocation {
	return db.DiscountAllocation{
		ID:                  uuid.New(),
		WorkspaceID:         testWorkspaceID,
		TransactionType:     business.TransactionTypeInvoice,
		TransactionID:       "INV-2001",
		Currency:            "USD",
		AllocationMethod:    business.AllocationMethodProportional,
		TotalDiscountAmount: dec("10.00"),
		Status:              status,
	}
}

func TestDiscountAllocationService_Transitions(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("apply pending allocation", func(t *testing.T) {
		h := newAllocationHarness(t)
		current := storedAllocation(business.AllocationStatusPending)
		applied := current
		applied.Status = business.AllocationStatusApplied

		h.mdb.Querier.EXPECT().GetDiscountAllocation(ctx, db.GetDiscountAllocationParams{ID: current.ID, WorkspaceID: testWorkspaceID}).Return(current, nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, gomock.Any()).Return(nil)
		h.mdb.Querier.EXPECT().CountAppliedAllocationsForTransaction(ctx, gomock.Any()).Return(int64(0), nil)
		h.expectOpenGate(ctx)
		h.mdb.Querier.EXPECT().UpdateDiscountAllocationStatus(ctx, gomock.Any()).Return(applied, nil)
		h.mdb.Querier.EXPECT().
			ListDiscountAllocationLines(ctx, current.ID).
			Return([]db.DiscountAllocationLine{{AllocationID: current.ID, LineItemID: "a", LineAmount: dec("100.00"), AllocatedAmount: dec("10.00")}}, nil).
			Times(2)
		h.audit.EXPECT().Record(ctx, gomock.Any()).Return(nil)
		h.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(assert.AnError)

		result, err := h.service.ApplyAllocation(ctx, params.AllocationTransitionParams{
			WorkspaceID:  testWorkspaceID,
			AllocationID: current.ID,
			ActorID:      &actor,
		})
		require.NoError(t, err, "publish failures are logged only")
		assert.Equal(t, business.AllocationStatusApplied, result.Allocation.Status)
	})

	t.Run("void keeps the lines and publishes", func(t *testing.T) {
		h := newAllocationHarness(t)
		current := storedAllocation(business.AllocationStatusApplied)
		voided := current
		voided.Status = business.AllocationStatusVoid
		lines := []db.DiscountAllocationLine{{AllocationID: current.ID, LineItemID: "a", AllocatedAmount: dec("10.00")}}

		h.mdb.Querier.EXPECT().GetDiscountAllocation(ctx, gomock.Any()).Return(current, nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, gomock.Any()).Return(nil)
		h.mdb.Querier.EXPECT().
			UpdateDiscountAllocationStatus(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.UpdateDiscountAllocationStatusParams) (db.DiscountAllocation, error) {
				assert.Equal(t, business.AllocationStatusVoid, arg.ToStatus)
				assert.Equal(t, "order cancelled", arg.VoidReason.String)
				return voided, nil
			})
		h.mdb.Querier.EXPECT().ListDiscountAllocationLines(ctx, current.ID).Return(lines, nil)
		h.audit.EXPECT().Record(ctx, gomock.Any()).Return(nil)
		h.publisher.EXPECT().
			Publish(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event business.DiscountEvent) error {
				assert.Equal(t, business.EventAllocationVoided, event.EventType)
				assert.Equal(t, "order cancelled", event.Reason)
				return nil
			})

		result, err := h.service.VoidAllocation(ctx, params.AllocationTransitionParams{
			WorkspaceID:  testWorkspaceID,
			AllocationID: current.ID,
			ActorID:      &actor,
			Reason:       "  order cancelled ",
		})
		require.NoError(t, err)
		assert.Equal(t, business.AllocationStatusVoid, result.Allocation.Status)
		assert.Len(t, result.Lines, 1)
	})

	t.Run("void needs a reason", func(t *testing.T) {
		h := newAllocationHarness(t)
		_, err := h.service.VoidAllocation(ctx, params.AllocationTransitionParams{WorkspaceID: testWorkspaceID, AllocationID: uuid.New()})
		var verr *business.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("void twice conflicts", func(t *testing.T) {
		h := newAllocationHarness(t)
		h.mdb.Querier.EXPECT().GetDiscountAllocation(ctx, gomock.Any()).Return(storedAllocation(business.AllocationStatusVoid), nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, gomock.Any()).Return(nil)

		_, err := h.service.VoidAllocation(ctx, params.AllocationTransitionParams{
			WorkspaceID:  testWorkspaceID,
			AllocationID: uuid.New(),
			Reason:       "again",
		})
		var conflict *business.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("concurrent status change conflicts", func(t *testing.T) {
		h := newAllocationHarness(t)
		h.mdb.Querier.EXPECT().GetDiscountAllocation(ctx, gomock.Any()).Return(storedAllocation(business.AllocationStatusApplied), nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, gomock.Any()).Return(nil)
		h.mdb.Querier.EXPECT().UpdateDiscountAllocationStatus(ctx, gomock.Any()).Return(db.DiscountAllocation{}, pgx.ErrNoRows)

		_, err := h.service.VoidAllocation(ctx, params.AllocationTransitionParams{
			WorkspaceID:  testWorkspaceID,
			AllocationID: uuid.New(),
			Reason:       "refund",
		})
		var conflict *business.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("unknown allocation", func(t *testing.T) {
		h := newAllocationHarness(t)
		h.mdb.Querier.EXPECT().GetDiscountAllocation(ctx, gomock.Any()).Return(db.DiscountAllocation{}, pgx.ErrNoRows)

		_, err := h.service.ApplyAllocation(ctx, params.AllocationTransitionParams{WorkspaceID: testWorkspaceID, AllocationID: uuid.New()})
		assert.ErrorIs(t, err, business.ErrNotFound)
	})
}

func TestDiscountAllocationService_Queries(t *testing.T) {
	ctx := context.Background()
	ref := business.TransactionRef{Type: business.TransactionTypeInvoice, ID: "INV-2001"}
	refParams := db.TransactionRefParams{WorkspaceID: testWorkspaceID, TransactionType: ref.Type, TransactionID: ref.ID}

	t.Run("sum of applied discounts", func(t *testing.T) {
		h := newAllocationHarness(t)
		h.mdb.Querier.EXPECT().SumAppliedDiscountForTransaction(ctx, refParams).Return(dec("12.50"), nil)

		sum, err := h.service.SumAppliedDiscounts(ctx, testWorkspaceID, ref)
		require.NoError(t, err)
		assert.True(t, dec("12.50").Equal(sum))
	})

	t.Run("list includes every status", func(t *testing.T) {
		h := newAllocationHarness(t)
		h.mdb.Querier.EXPECT().ListDiscountAllocationsForTransaction(ctx, refParams).Return([]db.DiscountAllocation{
			storedAllocation(business.AllocationStatusVoid),
			storedAllocation(business.AllocationStatusApplied),
		}, nil)

		allocations, err := h.service.ListAllocations(ctx, testWorkspaceID, ref)
		require.NoError(t, err)
		assert.Len(t, allocations, 2)
	})

	t.Run("get returns lines", func(t *testing.T) {
		h := newAllocationHarness(t)
		a := storedAllocation(business.AllocationStatusApplied)
		h.mdb.Querier.EXPECT().GetDiscountAllocation(ctx, gomock.Any()).Return(a, nil)
		h.mdb.Querier.EXPECT().ListDiscountAllocationLines(ctx, a.ID).Return([]db.DiscountAllocationLine{{LineItemID: "a"}}, nil)

		result, err := h.service.GetAllocation(ctx, testWorkspaceID, a.ID)
		require.NoError(t, err)
		assert.Len(t, result.Lines, 1)
	})

	t.Run("bad reference", func(t *testing.T) {
		h := newAllocationHarness(t)
		_, err := h.service.SumAppliedDiscounts(ctx, testWorkspaceID, business.TransactionRef{Type: "quote"})
		var verr *business.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestDiscountAllocationService_ApprovalGate(t *testing.T) {
	ctx := context.Background()
	lockKey := business.TransactionRef{Type: business.TransactionTypeInvoice, ID: "INV-2001"}.LockKey(testWorkspaceID)

	deepDiscount := func(approvalID *uuid.UUID) params.AllocateDiscountParams {
		return params.AllocateDiscountParams{
			WorkspaceID:     testWorkspaceID,
			TransactionType: business.TransactionTypeInvoice,
			TransactionID:   "INV-2001",
			Currency:        "USD",
			TotalDiscount:   dec("90.00"),
			Lines:           []business.AllocationLineInput{{LineItemID: "a", Amount: dec("100.00")}},
			ApprovalID:      approvalID,
			Apply:           true,
		}
	}

	rejected := storedApproval(business.ApprovalStatusRejected, "90.00")
	approved := storedApproval(business.ApprovalStatusApproved, "90.00")
	smallApproval := storedApproval(business.ApprovalStatusApproved, "50.00")
	otherTransaction := storedApproval(business.ApprovalStatusApproved, "90.00")
	otherTransaction.TransactionID = "INV-9999"

	tests := []struct {
		name       string
		latest     *db.DiscountApproval
		approvalID *uuid.UUID
		byID       *db.DiscountApproval
		policy     bool
		assertErr  func(t *testing.T, err error)
	}{
		{
			name:   "pending approval blocks the commit",
			latest: &db.DiscountApproval{ID: uuid.New(), Status: business.ApprovalStatusPending, RequestedAmount: dec("90.00")},
			assertErr: func(t *testing.T, err error) {
				var pending *business.ApprovalPendingError
				assert.ErrorAs(t, err, &pending)
			},
		},
		{
			name:       "rejected approval cannot authorize",
			latest:     &rejected,
			approvalID: &rejected.ID,
			byID:       &rejected,
			assertErr: func(t *testing.T, err error) {
				var conflict *business.ConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Contains(t, conflict.Reason, business.ApprovalStatusRejected)
			},
		},
		{
			name:       "approval for another transaction",
			approvalID: &otherTransaction.ID,
			byID:       &otherTransaction,
			assertErr: func(t *testing.T, err error) {
				var verr *business.ValidationError
				assert.ErrorAs(t, err, &verr)
			},
		},
		{
			name:       "discount above the approved amount",
			latest:     &smallApproval,
			approvalID: &smallApproval.ID,
			byID:       &smallApproval,
			assertErr: func(t *testing.T, err error) {
				var conflict *business.ConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Contains(t, conflict.Reason, "exceeds")
			},
		},
		{
			name:   "discount over threshold without approval",
			policy: true,
			assertErr: func(t *testing.T, err error) {
				var conflict *business.ConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Contains(t, conflict.Reason, "requires approval")
			},
		},
		{
			name:   "rejected latest approval does not cover the discount",
			latest: &rejected,
			policy: true,
			assertErr: func(t *testing.T, err error) {
				var conflict *business.ConflictError
				assert.ErrorAs(t, err, &conflict)
			},
		},
		{
			name:       "unknown approval id",
			approvalID: &approved.ID,
			assertErr: func(t *testing.T, err error) {
				var verr *business.ValidationError
				assert.ErrorAs(t, err, &verr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAllocationHarness(t)
			q := h.mdb.Querier
			h.currency.EXPECT().DecimalPlaces(ctx, "USD").Return(int32(2), nil)
			q.EXPECT().AcquireTransactionLock(ctx, lockKey).Return(nil)
			q.EXPECT().CountAppliedAllocationsForTransaction(ctx, gomock.Any()).Return(int64(0), nil)
			if tt.latest != nil {
				q.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(*tt.latest, nil)
			} else {
				q.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(db.DiscountApproval{}, pgx.ErrNoRows)
			}
			if tt.approvalID != nil {
				if tt.byID != nil {
					q.EXPECT().GetDiscountApproval(ctx, db.GetDiscountApprovalParams{ID: *tt.approvalID, WorkspaceID: testWorkspaceID}).Return(*tt.byID, nil)
				} else {
					q.EXPECT().GetDiscountApproval(ctx, gomock.Any()).Return(db.DiscountApproval{}, pgx.ErrNoRows)
				}
			}
			if tt.policy {
				h.policies.EXPECT().GetPolicy(ctx, testWorkspaceID).Return(approvalPolicy(), nil)
			}

			result, err := h.service.Allocate(ctx, deepDiscount(tt.approvalID))
			assert.Nil(t, result)
			tt.assertErr(t, err)
		})
	}

	t.Run("approved request authorizes the commit", func(t *testing.T) {
		h := newAllocationHarness(t)
		q := h.mdb.Querier
		h.currency.EXPECT().DecimalPlaces(ctx, "USD").Return(int32(2), nil)
		q.EXPECT().AcquireTransactionLock(ctx, lockKey).Return(nil)
		q.EXPECT().CountAppliedAllocationsForTransaction(ctx, gomock.Any()).Return(int64(0), nil)
		q.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(approved, nil)
		h.policies.EXPECT().GetPolicy(ctx, testWorkspaceID).Return(approvalPolicy(), nil)
		q.EXPECT().
			CreateDiscountAllocation(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.CreateDiscountAllocationParams) (db.DiscountAllocation, error) {
				assert.Equal(t, approved.ID, uuid.UUID(arg.ApprovalID.Bytes))
				return db.DiscountAllocation{ID: uuid.New(), WorkspaceID: arg.WorkspaceID, Status: business.AllocationStatusPending}, nil
			})
		q.EXPECT().CreateDiscountAllocationLine(ctx, gomock.Any()).Return(db.DiscountAllocationLine{LineItemID: "a"}, nil)
		q.EXPECT().UpdateDiscountAllocationStatus(ctx, gomock.Any()).
			Return(db.DiscountAllocation{ID: uuid.New(), WorkspaceID: testWorkspaceID, Status: business.AllocationStatusApplied}, nil)
		h.audit.EXPECT().Record(ctx, gomock.Any()).Return(nil).Times(2)
		h.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

		result, err := h.service.Allocate(ctx, deepDiscount(nil))
		require.NoError(t, err)
		assert.Equal(t, business.AllocationStatusApplied, result.Allocation.Status)
	})

	t.Run("apply waits for a pending approval", func(t *testing.T) {
		h := newAllocationHarness(t)
		current := storedAllocation(business.AllocationStatusPending)
		h.mdb.Querier.EXPECT().GetDiscountAllocation(ctx, gomock.Any()).Return(current, nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, gomock.Any()).Return(nil)
		h.mdb.Querier.EXPECT().CountAppliedAllocationsForTransaction(ctx, gomock.Any()).Return(int64(0), nil)
		h.mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).
			Return(storedApproval(business.ApprovalStatusPending, "10.00"), nil)

		_, err := h.service.ApplyAllocation(ctx, params.AllocationTransitionParams{WorkspaceID: testWorkspaceID, AllocationID: current.ID})
		var pending *business.ApprovalPendingError
		assert.ErrorAs(t, err, &pending)
	})

	t.Run("apply refuses a rejected approval", func(t *testing.T) {
		h := newAllocationHarness(t)
		rejectedApproval := storedApproval(business.ApprovalStatusRejected, "10.00")
		current := storedAllocation(business.AllocationStatusPending)
		current.ApprovalID = nullUUID(rejectedApproval.ID)
		h.mdb.Querier.EXPECT().GetDiscountAllocation(ctx, gomock.Any()).Return(current, nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, gomock.Any()).Return(nil)
		h.mdb.Querier.EXPECT().CountAppliedAllocationsForTransaction(ctx, gomock.Any()).Return(int64(0), nil)
		h.mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(rejectedApproval, nil)
		h.mdb.Querier.EXPECT().GetDiscountApproval(ctx, gomock.Any()).Return(rejectedApproval, nil)

		_, err := h.service.ApplyAllocation(ctx, params.AllocationTransitionParams{WorkspaceID: testWorkspaceID, AllocationID: current.ID})
		var conflict *business.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("apply over threshold needs approval", func(t *testing.T) {
		h := newAllocationHarness(t)
		current := storedAllocation(business.AllocationStatusPending)
		current.TotalDiscountAmount = dec("40.00")
		h.mdb.Querier.EXPECT().GetDiscountAllocation(ctx, gomock.Any()).Return(current, nil)
		h.mdb.Querier.EXPECT().AcquireTransactionLock(ctx, gomock.Any()).Return(nil)
		h.mdb.Querier.EXPECT().CountAppliedAllocationsForTransaction(ctx, gomock.Any()).Return(int64(0), nil)
		h.mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(db.DiscountApproval{}, pgx.ErrNoRows)
		h.policies.EXPECT().GetPolicy(ctx, testWorkspaceID).Return(approvalPolicy(), nil)
		h.mdb.Querier.EXPECT().ListDiscountAllocationLines(ctx, current.ID).
			Return([]db.DiscountAllocationLine{{LineItemID: "a", LineAmount: dec("100.00"), AllocatedAmount: dec("40.00")}}, nil)

		_, err := h.service.ApplyAllocation(ctx, params.AllocationTransitionParams{WorkspaceID: testWorkspaceID, AllocationID: current.ID})
		var conflict *business.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Reason, "40.00%")
	})
}

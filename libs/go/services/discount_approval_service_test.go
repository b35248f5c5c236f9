package services_test

import (
	"context"
	"testing"
	"time"

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

type staticPolicy business.DiscountPolicy

func (p staticPolicy) GetPolicy(context.Context, uuid.UUID) (business.DiscountPolicy, error) {
	return business.DiscountPolicy(p), nil
}

func gatePolicy() business.DiscountPolicy {
	return business.DiscountPolicy{
		ApprovalThresholdPercent: dec("20"),
		ApprovalExpiryAction:     business.ApprovalExpiryActionNone,
	}
}

func combination(subtotal, total string) *business.CombinationResult {
	return &business.CombinationResult{
		Currency:      "USD",
		DecimalPlaces: 2,
		Subtotal:      dec(subtotal),
		TotalDiscount: dec(total),
		FinalAmount:   dec(subtotal).Sub(dec(total)),
		AppliedOffers: []business.DiscountOffer{offer("manager special", total, business.StackingStackable, 0)},
	}
}

func approvalRecord(status, amount string, required int32) db.DiscountApproval {
	return db.DiscountApproval{
		ID:                uuid.New(),
		WorkspaceID:       testWorkspaceID,
		TransactionType:   business.TransactionTypePOSSale,
		TransactionID:     "sale-1001",
		CustomerID:        testCustomerID,
		Currency:          "USD",
		Subtotal:          dec("100.00"),
		RequestedAmount:   dec(amount),
		RequestedPercent:  dec(amount),
		ThresholdPercent:  dec("20"),
		RequiredApprovals: required,
		Status:            status,
		RequestedBy:       uuid.New(),
		RequestedAt:       ts(testNow.Add(-time.Hour)),
	}
}

func newApprovalService(mdb *testutil.MockDatabase, policy business.DiscountPolicy, notifier *mocks.MockApprovalNotifier, audit *mocks.MockAuditLogger) *services.DiscountApprovalService {
	var n interfaces.ApprovalNotifier
	if notifier != nil {
		n = notifier
	}
	var a interfaces.AuditLogger
	if audit != nil {
		a = audit
	}
	return services.NewDiscountApprovalService(mdb.Querier, mdb.Tx, staticPolicy(policy), n, a).
		WithClock(func() time.Time { return testNow })
}

func TestDiscountApprovalService_CheckGate(t *testing.T) {
	ctx := context.Background()
	requestedBy := uuid.New()
	saleCtx := func(t *testing.T) *business.DiscountContext {
		return newTestContext(t, withTransaction(business.TransactionTypePOSSale, "sale-1001"))
	}

	t.Run("below threshold needs nothing", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)

		decision, err := service.CheckGate(ctx, mdb.Querier, saleCtx(t), combination("100.00", "19.99"), gatePolicy(), requestedBy)
		require.NoError(t, err)
		assert.True(t, decision.Committable())
		assert.Nil(t, decision.ApprovalID)
	})

	t.Run("approval needed without a transaction reference", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)

		_, err := service.CheckGate(ctx, mdb.Querier, newTestContext(t), combination("100.00", "25.00"), gatePolicy(), requestedBy)
		var verr *business.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("first request creates a pending approval", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		notifier := mocks.NewMockApprovalNotifier(mdb.Ctrl)
		audit := mocks.NewMockAuditLogger(mdb.Ctrl)
		service := newApprovalService(mdb, gatePolicy(), notifier, audit)

		mdb.Querier.EXPECT().
			GetLatestDiscountApprovalForTransaction(ctx, db.GetLatestDiscountApprovalForTransactionParams{
				WorkspaceID:     testWorkspaceID,
				TransactionType: business.TransactionTypePOSSale,
				TransactionID:   "sale-1001",
			}).
			Return(db.DiscountApproval{}, pgx.ErrNoRows)

		var created db.DiscountApproval
		mdb.Querier.EXPECT().
			CreateDiscountApproval(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.CreateDiscountApprovalParams) (db.DiscountApproval, error) {
				assert.True(t, dec("25").Equal(arg.RequestedPercent))
				assert.True(t, dec("25.00").Equal(arg.RequestedAmount))
				assert.Equal(t, int32(1), arg.RequiredApprovals)
				assert.Equal(t, requestedBy, arg.RequestedBy)
				assert.False(t, arg.ExpiresAt.Valid, "policy without expiry")
				assert.NotEmpty(t, arg.Offers)
				created = approvalRecord(business.ApprovalStatusPending, "25.00", arg.RequiredApprovals)
				created.RequestedBy = arg.RequestedBy
				return created, nil
			})

		decision, err := service.CheckGate(ctx, mdb.Querier, saleCtx(t), combination("100.00", "25.00"), gatePolicy(), requestedBy)
		require.NoError(t, err)
		assert.False(t, decision.Committable())

		var required *business.ApprovalRequiredError
		require.ErrorAs(t, decision.Halt, &required)
		assert.Equal(t, created.ID, required.Approval.ID)
		assert.Equal(t, business.ApprovalStatusPending, required.Approval.Status)

		audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, entry business.AuditEntry) error {
				assert.Equal(t, business.AuditActionApprovalRequested, entry.Action)
				assert.Equal(t, created.ID, entry.EntityID)
				return nil
			})
		notifier.EXPECT().NotifyApprovalRequested(ctx, created).Return(assert.AnError)

		service.AfterCommit(ctx, decision)
	})

	t.Run("pending approval halts the commit", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)
		pending := approvalRecord(business.ApprovalStatusPending, "25.00", 1)

		mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(pending, nil)

		decision, err := service.CheckGate(ctx, mdb.Querier, saleCtx(t), combination("100.00", "25.00"), gatePolicy(), requestedBy)
		require.NoError(t, err)

		var waiting *business.ApprovalPendingError
		require.ErrorAs(t, decision.Halt, &waiting)
		assert.Equal(t, pending.ID, waiting.ApprovalID)
	})

	t.Run("approved amount covers the discount", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)
		approved := approvalRecord(business.ApprovalStatusApproved, "25.00", 1)

		mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(approved, nil)

		decision, err := service.CheckGate(ctx, mdb.Querier, saleCtx(t), combination("100.00", "22.00"), gatePolicy(), requestedBy)
		require.NoError(t, err)
		assert.True(t, decision.Committable())
		require.NotNil(t, decision.ApprovalID)
		assert.Equal(t, approved.ID, *decision.ApprovalID)
	})

	t.Run("larger discount than approved asks again", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)
		approved := approvalRecord(business.ApprovalStatusApproved, "25.00", 1)

		mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(approved, nil)
		mdb.Querier.EXPECT().CreateDiscountApproval(ctx, gomock.Any()).Return(approvalRecord(business.ApprovalStatusPending, "30.00", 1), nil)

		decision, err := service.CheckGate(ctx, mdb.Querier, saleCtx(t), combination("100.00", "30.00"), gatePolicy(), requestedBy)
		require.NoError(t, err)
		var required *business.ApprovalRequiredError
		assert.ErrorAs(t, decision.Halt, &required)
	})

	t.Run("rejected amount is not retried", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)
		rejected := approvalRecord(business.ApprovalStatusRejected, "25.00", 1)

		mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(rejected, nil)

		_, err := service.CheckGate(ctx, mdb.Querier, saleCtx(t), combination("100.00", "25.00"), gatePolicy(), requestedBy)
		var conflict *business.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("stale pending approval expires and a new one is requested", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		audit := mocks.NewMockAuditLogger(mdb.Ctrl)
		policy := gatePolicy()
		policy.ApprovalExpiryAction = business.ApprovalExpiryActionExpire
		policy.ApprovalExpirySeconds = 1800
		service := newApprovalService(mdb, policy, nil, audit)

		stale := approvalRecord(business.ApprovalStatusPending, "25.00", 1)
		stale.ExpiresAt = ts(testNow.Add(-time.Minute))
		expired := stale
		expired.Status = business.ApprovalStatusExpired

		mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(ctx, gomock.Any()).Return(stale, nil)
		mdb.Querier.EXPECT().
			ResolveDiscountApproval(ctx, db.ResolveDiscountApprovalParams{
				ID:          stale.ID,
				WorkspaceID: testWorkspaceID,
				Status:      business.ApprovalStatusExpired,
			}).
			Return(expired, nil)
		mdb.Querier.EXPECT().
			CreateDiscountApproval(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.CreateDiscountApprovalParams) (db.DiscountApproval, error) {
				require.True(t, arg.ExpiresAt.Valid)
				assert.True(t, testNow.Add(30*time.Minute).Equal(arg.ExpiresAt.Time))
				return approvalRecord(business.ApprovalStatusPending, "25.00", 1), nil
			})

		decision, err := service.CheckGate(ctx, mdb.Querier, saleCtx(t), combination("100.00", "25.00"), policy, requestedBy)
		require.NoError(t, err)
		var required *business.ApprovalRequiredError
		require.ErrorAs(t, decision.Halt, &required)

		var actions []string
		audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, entry business.AuditEntry) error {
				actions = append(actions, entry.Action)
				return nil
			}).
			Times(2)
		service.AfterCommit(ctx, decision)
		assert.Equal(t, []string{business.AuditActionApprovalExpired, business.AuditActionApprovalRequested}, actions)
	})
}

func TestDiscountApprovalService_Approve(t *testing.T) {
	ctx := context.Background()
	approver := uuid.New()

	t.Run("single approver approves", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		audit := mocks.NewMockAuditLogger(mdb.Ctrl)
		service := newApprovalService(mdb, gatePolicy(), nil, audit)
		pending := approvalRecord(business.ApprovalStatusPending, "25.00", 1)
		decisions := []db.DiscountApprovalDecision{{ApprovalID: pending.ID, ApproverID: approver, DecidedAt: ts(testNow)}}

		mdb.Querier.EXPECT().
			GetDiscountApprovalForUpdate(ctx, db.GetDiscountApprovalParams{ID: pending.ID, WorkspaceID: testWorkspaceID}).
			Return(pending, nil)
		mdb.Querier.EXPECT().
			CreateApprovalDecision(ctx, db.CreateApprovalDecisionParams{ApprovalID: pending.ID, ApproverID: approver}).
			Return(decisions[0], nil)
		mdb.Querier.EXPECT().ListApprovalDecisions(ctx, pending.ID).Return(decisions, nil)
		mdb.Querier.EXPECT().
			ResolveDiscountApproval(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.ResolveDiscountApprovalParams) (db.DiscountApproval, error) {
				assert.Equal(t, business.ApprovalStatusApproved, arg.Status)
				assert.True(t, arg.ApprovedBy.Valid)
				approved := pending
				approved.Status = business.ApprovalStatusApproved
				return approved, nil
			})
		audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, entry business.AuditEntry) error {
				assert.Equal(t, business.AuditActionApprovalApproved, entry.Action)
				return nil
			})

		out, err := service.Approve(ctx, params.ApproveDiscountParams{WorkspaceID: testWorkspaceID, ApprovalID: pending.ID, ApproverID: approver})
		require.NoError(t, err)
		assert.Equal(t, business.ApprovalStatusApproved, out.Approval.Status)
		assert.Len(t, out.Decisions, 1)
	})

	t.Run("first of two sign-offs keeps it pending", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		audit := mocks.NewMockAuditLogger(mdb.Ctrl)
		service := newApprovalService(mdb, gatePolicy(), nil, audit)
		pending := approvalRecord(business.ApprovalStatusPending, "45.00", 2)
		decision := db.DiscountApprovalDecision{ApprovalID: pending.ID, ApproverID: approver}

		mdb.Querier.EXPECT().GetDiscountApprovalForUpdate(ctx, gomock.Any()).Return(pending, nil)
		mdb.Querier.EXPECT().CreateApprovalDecision(ctx, gomock.Any()).Return(decision, nil)
		mdb.Querier.EXPECT().ListApprovalDecisions(ctx, pending.ID).Return([]db.DiscountApprovalDecision{decision}, nil)
		audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, entry business.AuditEntry) error {
				assert.Equal(t, business.AuditActionApprovalSignedOff, entry.Action)
				return nil
			})

		out, err := service.Approve(ctx, params.ApproveDiscountParams{WorkspaceID: testWorkspaceID, ApprovalID: pending.ID, ApproverID: approver})
		require.NoError(t, err)
		assert.Equal(t, business.ApprovalStatusPending, out.Approval.Status)
	})

	t.Run("the same approver twice does not count twice", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)
		pending := approvalRecord(business.ApprovalStatusPending, "45.00", 2)
		decision := db.DiscountApprovalDecision{ApprovalID: pending.ID, ApproverID: approver}

		mdb.Querier.EXPECT().GetDiscountApprovalForUpdate(ctx, gomock.Any()).Return(pending, nil)
		mdb.Querier.EXPECT().CreateApprovalDecision(ctx, gomock.Any()).Return(db.DiscountApprovalDecision{}, pgx.ErrNoRows)
		mdb.Querier.EXPECT().ListApprovalDecisions(ctx, pending.ID).Return([]db.DiscountApprovalDecision{decision}, nil)

		out, err := service.Approve(ctx, params.ApproveDiscountParams{WorkspaceID: testWorkspaceID, ApprovalID: pending.ID, ApproverID: approver})
		require.NoError(t, err)
		assert.Equal(t, business.ApprovalStatusPending, out.Approval.Status)
		assert.Len(t, out.Decisions, 1)
	})

	t.Run("approving an approved request is a no-op", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)
		approved := approvalRecord(business.ApprovalStatusApproved, "25.00", 1)

		mdb.Querier.EXPECT().GetDiscountApprovalForUpdate(ctx, gomock.Any()).Return(approved, nil)
		mdb.Querier.EXPECT().ListApprovalDecisions(ctx, approved.ID).Return([]db.DiscountApprovalDecision{}, nil)

		out, err := service.Approve(ctx, params.ApproveDiscountParams{WorkspaceID: testWorkspaceID, ApprovalID: approved.ID, ApproverID: approver})
		require.NoError(t, err)
		assert.Equal(t, approved, out.Approval)
	})

	t.Run("rejected approval cannot be approved", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)
		rejected := approvalRecord(business.ApprovalStatusRejected, "25.00", 1)

		mdb.Querier.EXPECT().GetDiscountApprovalForUpdate(ctx, gomock.Any()).Return(rejected, nil)

		_, err := service.Approve(ctx, params.ApproveDiscountParams{WorkspaceID: testWorkspaceID, ApprovalID: rejected.ID, ApproverID: approver})
		var conflict *business.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("unknown approval", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)

		mdb.Querier.EXPECT().GetDiscountApprovalForUpdate(ctx, gomock.Any()).Return(db.DiscountApproval{}, pgx.ErrNoRows)

		_, err := service.Approve(ctx, params.ApproveDiscountParams{WorkspaceID: testWorkspaceID, ApprovalID: uuid.New(), ApproverID: approver})
		assert.ErrorIs(t, err, business.ErrNotFound)
	})

	t.Run("missing approver", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)

		_, err := service.Approve(ctx, params.ApproveDiscountParams{WorkspaceID: testWorkspaceID, ApprovalID: uuid.New()})
		var verr *business.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Zero(t, mdb.Tx.Calls)
	})
}

func TestDiscountApprovalService_Reject(t *testing.T) {
	ctx := context.Background()
	approver := uuid.New()

	t.Run("pending approval is rejected with a reason", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		audit := mocks.NewMockAuditLogger(mdb.Ctrl)
		service := newApprovalService(mdb, gatePolicy(), nil, audit)
		pending := approvalRecord(business.ApprovalStatusPending, "25.00", 1)
		rejected := pending
		rejected.Status = business.ApprovalStatusRejected

		mdb.Querier.EXPECT().GetDiscountApprovalForUpdate(ctx, gomock.Any()).Return(pending, nil)
		mdb.Querier.EXPECT().
			ResolveDiscountApproval(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.ResolveDiscountApprovalParams) (db.DiscountApproval, error) {
				assert.Equal(t, business.ApprovalStatusRejected, arg.Status)
				assert.Equal(t, "margin too thin", arg.RejectionReason.String)
				return rejected, nil
			})
		mdb.Querier.EXPECT().ListApprovalDecisions(ctx, pending.ID).Return([]db.DiscountApprovalDecision{}, nil)
		audit.EXPECT().Record(ctx, gomock.Any()).Return(nil)

		out, err := service.Reject(ctx, params.RejectDiscountParams{
			WorkspaceID: testWorkspaceID,
			ApprovalID:  pending.ID,
			ApproverID:  approver,
			Reason:      "margin too thin",
		})
		require.NoError(t, err)
		assert.Equal(t, business.ApprovalStatusRejected, out.Approval.Status)
	})

	t.Run("reason is required", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)

		_, err := service.Reject(ctx, params.RejectDiscountParams{WorkspaceID: testWorkspaceID, ApprovalID: uuid.New(), ApproverID: approver})
		var verr *business.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "reason", verr.Fields[0].Field)
	})

	t.Run("approved approval cannot be rejected", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)

		mdb.Querier.EXPECT().GetDiscountApprovalForUpdate(ctx, gomock.Any()).Return(approvalRecord(business.ApprovalStatusApproved, "25.00", 1), nil)

		_, err := service.Reject(ctx, params.RejectDiscountParams{
			WorkspaceID: testWorkspaceID,
			ApprovalID:  uuid.New(),
			ApproverID:  approver,
			Reason:      "too late",
		})
		var conflict *business.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}

func TestDiscountApprovalService_GetApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh approval is read without a transaction", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)
		pending := approvalRecord(business.ApprovalStatusPending, "25.00", 1)

		mdb.Querier.EXPECT().GetDiscountApproval(ctx, db.GetDiscountApprovalParams{ID: pending.ID, WorkspaceID: testWorkspaceID}).Return(pending, nil)
		mdb.Querier.EXPECT().ListApprovalDecisions(ctx, pending.ID).Return([]db.DiscountApprovalDecision{}, nil)

		out, err := service.GetApproval(ctx, testWorkspaceID, pending.ID)
		require.NoError(t, err)
		assert.Equal(t, pending.ID, out.Approval.ID)
		assert.Zero(t, mdb.Tx.Calls)
	})

	t.Run("stale approval is expired on read", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		policy := gatePolicy()
		policy.ApprovalExpiryAction = business.ApprovalExpiryActionReject
		policy.ApprovalExpirySeconds = 60
		service := newApprovalService(mdb, policy, nil, nil)

		stale := approvalRecord(business.ApprovalStatusPending, "25.00", 1)
		stale.ExpiresAt = ts(testNow)
		rejected := stale
		rejected.Status = business.ApprovalStatusRejected

		mdb.Querier.EXPECT().GetDiscountApproval(ctx, gomock.Any()).Return(stale, nil)
		mdb.Querier.EXPECT().GetDiscountApprovalForUpdate(ctx, gomock.Any()).Return(stale, nil)
		mdb.Querier.EXPECT().
			ResolveDiscountApproval(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.ResolveDiscountApprovalParams) (db.DiscountApproval, error) {
				assert.Equal(t, business.ApprovalStatusRejected, arg.Status)
				assert.Equal(t, "approval window elapsed", arg.RejectionReason.String)
				return rejected, nil
			})
		mdb.Querier.EXPECT().ListApprovalDecisions(ctx, stale.ID).Return([]db.DiscountApprovalDecision{}, nil)

		out, err := service.GetApproval(ctx, testWorkspaceID, stale.ID)
		require.NoError(t, err)
		assert.Equal(t, business.ApprovalStatusRejected, out.Approval.Status)
		assert.Equal(t, 1, mdb.Tx.Calls)
	})

	t.Run("unknown approval", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		service := newApprovalService(mdb, gatePolicy(), nil, nil)

		mdb.Querier.EXPECT().GetDiscountApproval(ctx, gomock.Any()).Return(db.DiscountApproval{}, pgx.ErrNoRows)

		_, err := service.GetApproval(ctx, testWorkspaceID, uuid.New())
		assert.ErrorIs(t, err, business.ErrNotFound)
	})
}

func TestDiscountApprovalService_ListApprovals(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        params.ListDiscountApprovalsParams
		wantLimit int32
		wantErr   bool
	}{
		{name: "defaults", in: params.ListDiscountApprovalsParams{WorkspaceID: testWorkspaceID}, wantLimit: 20},
		{name: "clamped", in: params.ListDiscountApprovalsParams{WorkspaceID: testWorkspaceID, Limit: 500, Status: business.ApprovalStatusPending}, wantLimit: 100},
		{name: "unknown status", in: params.ListDiscountApprovalsParams{WorkspaceID: testWorkspaceID, Status: "maybe"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mdb := testutil.NewMockDatabase(t)
			service := newApprovalService(mdb, gatePolicy(), nil, nil)

			if !tt.wantErr {
				mdb.Querier.EXPECT().
					ListDiscountApprovals(ctx, gomock.Any()).
					DoAndReturn(func(_ context.Context, arg db.ListDiscountApprovalsParams) ([]db.DiscountApproval, error) {
						assert.Equal(t, tt.wantLimit, arg.Limit)
						assert.Equal(t, tt.in.Status != "", arg.Status.Valid)
						return []db.DiscountApproval{}, nil
					})
			}

			_, err := service.ListApprovals(ctx, tt.in)
			if tt.wantErr {
				var verr *business.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDiscountApprovalService_ExpireStaleApprovals(t *testing.T) {
	ctx := context.Background()
	mdb := testutil.NewMockDatabase(t)
	audit := mocks.NewMockAuditLogger(mdb.Ctrl)
	policy := gatePolicy()
	policy.ApprovalExpiryAction = business.ApprovalExpiryActionExpire
	policy.ApprovalExpirySeconds = 60
	service := newApprovalService(mdb, policy, nil, audit)

	stale := approvalRecord(business.ApprovalStatusPending, "25.00", 1)
	stale.ExpiresAt = ts(testNow.Add(-time.Second))
	raced := approvalRecord(business.ApprovalStatusApproved, "25.00", 1)
	raced.ExpiresAt = ts(testNow.Add(-time.Second))
	expired := stale
	expired.Status = business.ApprovalStatusExpired

	mdb.Querier.EXPECT().
		ListExpiredPendingApprovals(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.ListExpiredPendingApprovalsParams) ([]db.DiscountApproval, error) {
			assert.True(t, testNow.Equal(arg.Now.Time))
			return []db.DiscountApproval{stale, raced}, nil
		})
	mdb.Querier.EXPECT().
		GetDiscountApprovalForUpdate(ctx, db.GetDiscountApprovalParams{ID: stale.ID, WorkspaceID: testWorkspaceID}).
		Return(stale, nil)
	mdb.Querier.EXPECT().ResolveDiscountApproval(ctx, gomock.Any()).Return(expired, nil)
	// approved between the listing and the lock
	mdb.Querier.EXPECT().
		GetDiscountApprovalForUpdate(ctx, db.GetDiscountApprovalParams{ID: raced.ID, WorkspaceID: testWorkspaceID}).
		Return(raced, nil)
	audit.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, entry business.AuditEntry) error {
			assert.Equal(t, business.AuditActionApprovalExpired, entry.Action)
			assert.Equal(t, stale.ID, entry.EntityID)
			return nil
		})

	count, err := service.ExpireStaleApprovals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, mdb.Tx.Calls)
}

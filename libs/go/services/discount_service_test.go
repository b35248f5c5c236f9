package services_test

import (
	"context"
	"sync"
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

// newEngine wires the engine against a mocked querier with the promotional
// source plus any extra sources
func newEngine(mdb *testutil.MockDatabase, extra ...interfaces.RuleSource) *services.DiscountService {
	currency := services.NewCurrencyService(mdb.Querier)
	settings := services.NewDiscountSettingsService(mdb.Querier, nil, nil)
	promotions := services.NewPromotionalRuleSource(mdb.Querier)
	approvals := services.NewDiscountApprovalService(mdb.Querier, mdb.Tx, settings, nil, nil).
		WithClock(func() time.Time { return testNow })
	allocations := services.NewDiscountAllocationService(mdb.Querier, mdb.Tx, currency, settings, nil, nil)

	return services.NewDiscountService(services.DiscountServiceDeps{
		Queries:     mdb.Querier,
		Tx:          mdb.Tx,
		Currency:    currency,
		Policies:    settings,
		Sources:     append([]interfaces.RuleSource{promotions}, extra...),
		Promotions:  promotions,
		Approvals:   approvals,
		Allocations: allocations,
	})
}

func engineDatabase(t *testing.T) *testutil.MockDatabase {
	mdb := testutil.NewMockDatabase(t)
	mdb.ExpectCurrency("USD", 2)
	mdb.ExpectCustomerSegment(testWorkspaceID, testCustomerID, "retail")
	mdb.ExpectNoWorkspaceSettings(testWorkspaceID)
	return mdb
}

func contextParams(code string, ref *business.TransactionRef, lines ...business.LineItem) params.DiscountContextParams {
	if len(lines) == 0 {
		lines = []business.LineItem{line("line-1", "1", "100.00")}
	}
	return params.DiscountContextParams{
		WorkspaceID: testWorkspaceID,
		CustomerID:  testCustomerID,
		Currency:    "USD",
		LineItems:   lines,
		PromoCode:   code,
		EvaluatedAt: testNow,
		Transaction: ref,
	}
}

func expectRedemption(mdb *testutil.MockDatabase, rule db.DiscountRule) {
	mdb.Querier.EXPECT().IncrementDiscountRuleUsage(gomock.Any(), rule.ID).Return(rule, nil)
	mdb.Querier.EXPECT().
		IncrementCustomerRuleUsage(gomock.Any(), db.IncrementCustomerRuleUsageParams{
			RuleID:     rule.ID,
			CustomerID: testCustomerID,
			MaxUses:    rule.MaxRedemptionsPerCustomer,
		}).
		Return(int32(1), nil)
}

func echoAllocation(mdb *testutil.MockDatabase) {
	mdb.Querier.EXPECT().CountAppliedAllocationsForTransaction(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	mdb.Querier.EXPECT().
		CreateDiscountAllocation(gomock.Any(), gomock.Any()).
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
	mdb.Querier.EXPECT().
		CreateDiscountAllocationLine(gomock.Any(), gomock.Any()).
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
	mdb.Querier.EXPECT().
		UpdateDiscountAllocationStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateDiscountAllocationStatusParams) (db.DiscountAllocation, error) {
			return db.DiscountAllocation{ID: arg.ID, WorkspaceID: arg.WorkspaceID, Status: arg.ToStatus}, nil
		})
}

func TestDiscountService_CalculateFinalPrice(t *testing.T) {
	ctx := context.Background()
	requestedBy := uuid.New()

	t.Run("stacked offers are redeemed and allocated", func(t *testing.T) {
		mdb := engineDatabase(t)
		volume := mocks.NewMockRuleSource(mdb.Ctrl)
		engine := newEngine(mdb, volume)

		promo := promoRule("SAVE10", business.DiscountTypePercentage, "10")
		bulk := offer("bulk", "5.00", business.StackingStackable, 0)
		bulk.Source = business.DiscountSourceVolume
		bulkRule := db.DiscountRule{ID: bulk.RuleID}
		ref := &business.TransactionRef{Type: business.TransactionTypeInvoice, ID: "INV-3001"}

		mdb.Querier.EXPECT().GetPromotionalRuleByCode(gomock.Any(), gomock.Any()).Return(promo, nil)
		volume.EXPECT().FindCandidates(gomock.Any(), gomock.Any()).Return([]business.DiscountOffer{bulk}, nil)
		mdb.Querier.EXPECT().AcquireTransactionLock(gomock.Any(), ref.LockKey(testWorkspaceID)).Return(nil).Times(2)
		expectRedemption(mdb, promo)
		expectRedemption(mdb, bulkRule)
		echoAllocation(mdb)

		outcome, err := engine.CalculateFinalPrice(ctx, params.CalculateDiscountParams{
			Context:     contextParams("SAVE10", ref, line("a", "1", "60.00"), line("b", "1", "40.00")),
			RequestedBy: requestedBy,
		})
		require.NoError(t, err)

		assert.True(t, dec("15.00").Equal(outcome.Result.TotalDiscount), "total %s", outcome.Result.TotalDiscount)
		assert.True(t, dec("85.00").Equal(outcome.Result.FinalAmount))
		assert.Nil(t, outcome.ApprovalID)
		require.NotNil(t, outcome.Allocation)
		assert.Equal(t, business.AllocationStatusApplied, outcome.Allocation.Allocation.Status)
		require.Len(t, outcome.Allocation.Lines, 2)
		assert.True(t, dec("9.00").Equal(outcome.Allocation.Lines[0].AllocatedAmount))
		assert.True(t, dec("6.00").Equal(outcome.Allocation.Lines[1].AllocatedAmount))
	})

	t.Run("without a transaction only usage is counted", func(t *testing.T) {
		mdb := engineDatabase(t)
		engine := newEngine(mdb)
		promo := promoRule("SAVE10", business.DiscountTypePercentage, "10")

		mdb.Querier.EXPECT().GetPromotionalRuleByCode(gomock.Any(), gomock.Any()).Return(promo, nil)
		expectRedemption(mdb, promo)

		outcome, err := engine.CalculateFinalPrice(ctx, params.CalculateDiscountParams{
			Context:     contextParams("SAVE10", nil),
			RequestedBy: requestedBy,
		})
		require.NoError(t, err)
		assert.True(t, dec("10.00").Equal(outcome.Result.TotalDiscount))
		assert.Nil(t, outcome.Allocation)
	})

	t.Run("discount over the threshold halts for approval", func(t *testing.T) {
		mdb := engineDatabase(t)
		engine := newEngine(mdb)
		promo := promoRule("BIG25", business.DiscountTypePercentage, "25")
		ref := &business.TransactionRef{Type: business.TransactionTypePOSSale, ID: "pos-77"}

		mdb.Querier.EXPECT().GetPromotionalRuleByCode(gomock.Any(), gomock.Any()).Return(promo, nil)
		mdb.Querier.EXPECT().AcquireTransactionLock(gomock.Any(), gomock.Any()).Return(nil)
		mdb.Querier.EXPECT().GetLatestDiscountApprovalForTransaction(gomock.Any(), gomock.Any()).Return(db.DiscountApproval{}, pgx.ErrNoRows)
		mdb.Querier.EXPECT().
			CreateDiscountApproval(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.CreateDiscountApprovalParams) (db.DiscountApproval, error) {
				assert.True(t, dec("20").Equal(arg.ThresholdPercent))
				a := approvalRecord(business.ApprovalStatusPending, "25.00", arg.RequiredApprovals)
				a.TransactionType = arg.TransactionType
				a.TransactionID = arg.TransactionID
				return a, nil
			})

		_, err := engine.CalculateFinalPrice(ctx, params.CalculateDiscountParams{
			Context:     contextParams("BIG25", ref),
			RequestedBy: requestedBy,
		})
		var required *business.ApprovalRequiredError
		require.ErrorAs(t, err, &required)
		assert.Equal(t, "pos-77", required.Approval.TransactionID)
	})

	t.Run("per-call threshold override lets the discount through", func(t *testing.T) {
		mdb := engineDatabase(t)
		engine := newEngine(mdb)
		promo := promoRule("BIG25", business.DiscountTypePercentage, "25")
		threshold := dec("30")

		mdb.Querier.EXPECT().GetPromotionalRuleByCode(gomock.Any(), gomock.Any()).Return(promo, nil)
		expectRedemption(mdb, promo)

		outcome, err := engine.CalculateFinalPrice(ctx, params.CalculateDiscountParams{
			Context:                  contextParams("BIG25", nil),
			ApprovalThresholdPercent: &threshold,
			RequestedBy:              requestedBy,
		})
		require.NoError(t, err)
		assert.True(t, dec("25.00").Equal(outcome.Result.TotalDiscount))
	})

	t.Run("invalid requests", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		engine := newEngine(mdb)
		bad := dec("150")

		tests := []struct {
			name  string
			input params.CalculateDiscountParams
		}{
			{name: "missing requester", input: params.CalculateDiscountParams{Context: contextParams("", nil)}},
			{name: "unknown method", input: params.CalculateDiscountParams{Context: contextParams("", nil), RequestedBy: requestedBy, AllocationMethod: "random"}},
			{name: "threshold out of range", input: params.CalculateDiscountParams{Context: contextParams("", nil), RequestedBy: requestedBy, ApprovalThresholdPercent: &bad}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := engine.CalculateFinalPrice(ctx, tt.input)
				var verr *business.ValidationError
				assert.ErrorAs(t, err, &verr)
			})
		}
		assert.Zero(t, mdb.Tx.Calls)
	})
}

func TestDiscountService_LastPromoRedemptionRace(t *testing.T) {
	ctx := context.Background()
	mdb := engineDatabase(t)
	engine := newEngine(mdb)

	promo := promoRule("LASTONE", business.DiscountTypeFixedAmount, "10.00")
	promo.MaxRedemptions = int4(1)

	// both requests validate the code before either redeems it
	mdb.Querier.EXPECT().GetPromotionalRuleByCode(gomock.Any(), gomock.Any()).Return(promo, nil).Times(2)
	mdb.Querier.EXPECT().AcquireTransactionLock(gomock.Any(), gomock.Any()).Return(nil).Times(4)
	mdb.Querier.EXPECT().IncrementDiscountRuleUsage(gomock.Any(), promo.ID).Return(promo, nil).Times(1)
	mdb.Querier.EXPECT().IncrementDiscountRuleUsage(gomock.Any(), promo.ID).Return(db.DiscountRule{}, pgx.ErrNoRows).Times(1)
	mdb.Querier.EXPECT().IncrementCustomerRuleUsage(gomock.Any(), gomock.Any()).Return(int32(1), nil).Times(1)
	echoAllocation(mdb)

	var wg sync.WaitGroup
	outcomes := make([]*business.CalculationOutcome, 2)
	errs := make([]error, 2)
	for i := range outcomes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref := &business.TransactionRef{Type: business.TransactionTypePOSSale, ID: []string{"pos-1", "pos-2"}[i]}
			outcomes[i], errs[i] = engine.CalculateFinalPrice(ctx, params.CalculateDiscountParams{
				Context:     contextParams("LASTONE", ref),
				RequestedBy: uuid.New(),
			})
		}(i)
	}
	wg.Wait()

	applied, limited := 0, 0
	for i := range outcomes {
		require.NoError(t, errs[i])
		result := outcomes[i].Result
		switch {
		case len(result.AppliedOffers) == 1:
			applied++
			assert.True(t, dec("10.00").Equal(result.TotalDiscount))
			assert.NotNil(t, outcomes[i].Allocation)
		case len(result.AppliedOffers) == 0:
			limited++
			assert.True(t, result.TotalDiscount.IsZero())
			assert.Nil(t, outcomes[i].Allocation)
			require.Len(t, result.DiscardedOffers, 1)
			assert.Equal(t, business.DiscardReasonUsageLimitReached, result.DiscardedOffers[0].Reason)
		}
	}
	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, limited)
	assert.Equal(t, 3, mdb.Tx.Calls)
}

func TestDiscountService_PreviewAndValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("preview has no side effects", func(t *testing.T) {
		mdb := engineDatabase(t)
		engine := newEngine(mdb)
		promo := promoRule("BIG25", business.DiscountTypePercentage, "25")
		mdb.Querier.EXPECT().GetPromotionalRuleByCode(gomock.Any(), gomock.Any()).Return(promo, nil)

		result, err := engine.PreviewDiscounts(ctx, params.PreviewDiscountParams{
			Context: contextParams("BIG25", &business.TransactionRef{Type: business.TransactionTypeInvoice, ID: "INV-1"}),
		})
		require.NoError(t, err)
		assert.True(t, dec("25.00").Equal(result.TotalDiscount))
		assert.Zero(t, mdb.Tx.Calls)
	})

	t.Run("validate explains a missing code", func(t *testing.T) {
		mdb := engineDatabase(t)
		engine := newEngine(mdb)
		mdb.Querier.EXPECT().GetPromotionalRuleByCode(gomock.Any(), gomock.Any()).Return(db.DiscountRule{}, pgx.ErrNoRows)

		result, err := engine.ValidatePromoCode(ctx, contextParams("NOPE", nil))
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, business.CodeReasonNotFound, result.Reason)
	})

	t.Run("available discounts are unresolved", func(t *testing.T) {
		mdb := engineDatabase(t)
		volume := mocks.NewMockRuleSource(mdb.Ctrl)
		engine := newEngine(mdb, volume)
		volume.EXPECT().FindCandidates(gomock.Any(), gomock.Any()).Return([]business.DiscountOffer{
			offer("only one", "30.00", business.StackingExclusive, 1),
			offer("or this", "20.00", business.StackingExclusive, 1),
		}, nil)

		offers, err := engine.GetAvailableDiscounts(ctx, contextParams("", nil))
		require.NoError(t, err)
		assert.Len(t, offers, 2)
	})

	t.Run("unknown customer", func(t *testing.T) {
		mdb := testutil.NewMockDatabase(t)
		mdb.ExpectCurrency("USD", 2)
		engine := newEngine(mdb)
		mdb.Querier.EXPECT().GetCustomerSegment(gomock.Any(), gomock.Any()).Return("", pgx.ErrNoRows)

		_, err := engine.GetAvailableDiscounts(ctx, contextParams("", nil))
		assert.ErrorIs(t, err, business.ErrNotFound)
	})

	t.Run("missing category is filled from the catalog", func(t *testing.T) {
		mdb := engineDatabase(t)
		volume := mocks.NewMockRuleSource(mdb.Ctrl)
		engine := newEngine(mdb, volume)

		productID := uuid.New()
		categoryID := uuid.New()
		li := line("shirt", "2", "40.00")
		li.ProductID = &productID

		mdb.Querier.EXPECT().
			GetProductCategory(gomock.Any(), db.GetProductCategoryParams{ID: productID, WorkspaceID: testWorkspaceID}).
			Return(nullUUID(categoryID), nil)
		volume.EXPECT().
			FindCandidates(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dctx *business.DiscountContext) ([]business.DiscountOffer, error) {
				lines := dctx.EffectiveLines()
				require.Len(t, lines, 1)
				require.NotNil(t, lines[0].CategoryID)
				assert.Equal(t, categoryID, *lines[0].CategoryID)
				return []business.DiscountOffer{}, nil
			})

		_, err := engine.GetAvailableDiscounts(ctx, contextParams("", nil, li))
		require.NoError(t, err)
	})
}

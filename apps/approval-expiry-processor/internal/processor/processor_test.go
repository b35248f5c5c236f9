package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

func TestExpiryProcessor_ProcessStaleApprovals(t *testing.T) {
	tests := []struct {
		name        string
		maxBatches  int
		setup       func(m *mocks.MockDiscountApprovalService)
		wantBatches int
		wantExpired int
		wantErr     bool
	}{
		{
			name:       "stops when a batch expires nothing",
			maxBatches: 10,
			setup: func(m *mocks.MockDiscountApprovalService) {
				gomock.InOrder(
					m.EXPECT().ExpireStaleApprovals(gomock.Any()).Return(100, nil),
					m.EXPECT().ExpireStaleApprovals(gomock.Any()).Return(7, nil),
					m.EXPECT().ExpireStaleApprovals(gomock.Any()).Return(0, nil),
				)
			},
			wantBatches: 3,
			wantExpired: 107,
		},
		{
			name:       "respects the batch limit",
			maxBatches: 2,
			setup: func(m *mocks.MockDiscountApprovalService) {
				m.EXPECT().ExpireStaleApprovals(gomock.Any()).Return(100, nil).Times(2)
			},
			wantBatches: 2,
			wantExpired: 200,
		},
		{
			name:       "store failure aborts the sweep",
			maxBatches: 5,
			setup: func(m *mocks.MockDiscountApprovalService) {
				gomock.InOrder(
					m.EXPECT().ExpireStaleApprovals(gomock.Any()).Return(3, nil),
					m.EXPECT().ExpireStaleApprovals(gomock.Any()).Return(0, errors.New("connection reset")),
				)
			},
			wantBatches: 2,
			wantExpired: 3,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			approvals := mocks.NewMockDiscountApprovalService(ctrl)
			tt.setup(approvals)

			results, err := NewExpiryProcessor(approvals, tt.maxBatches).ProcessStaleApprovals(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, results)
			assert.Equal(t, tt.wantBatches, results.Batches)
			assert.Equal(t, tt.wantExpired, results.Expired)
		})
	}
}

func TestExpiryProcessor_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	approvals := mocks.NewMockDiscountApprovalService(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewExpiryProcessor(approvals, 0).ProcessStaleApprovals(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, results.Batches)
}

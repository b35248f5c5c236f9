package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/mocks"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/responses"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newApprovalTestRouter(t *testing.T) (*mocks.MockDiscountApprovalService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockDiscountApprovalService(ctrl)
	currency := mocks.NewMockCurrencyPrecisionResolver(ctrl)
	currency.EXPECT().DecimalPlaces(gomock.Any(), "KWD").Return(int32(3), nil).AnyTimes()

	h := NewDiscountApprovalHandler(NewCommonServices(CommonServicesConfig{Currency: currency}), svc, nil)
	r := gin.New()
	r.GET("/api/v1/discounts/approvals", h.ListApprovals)
	r.GET("/api/v1/discounts/approvals/:id", h.GetApproval)
	r.POST("/api/v1/discounts/approvals/:id/approve", h.ApproveDiscount)
	r.POST("/api/v1/discounts/approvals/:id/reject", h.RejectDiscount)
	return svc, r
}

func sampleApproval(id uuid.UUID, status string) db.DiscountApproval {
	requested := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	return db.DiscountApproval{
		ID:                id,
		WorkspaceID:       testWorkspaceID,
		TransactionType:   business.TransactionTypeInvoice,
		TransactionID:     "INV-2001",
		CustomerID:        testCustomerID,
		Currency:          "KWD",
		Subtotal:          decimal.RequireFromString("200"),
		RequestedPercent:  decimal.RequireFromString("25"),
		RequestedAmount:   decimal.RequireFromString("50"),
		ThresholdPercent:  decimal.RequireFromString("20"),
		RequiredApprovals: 1,
		Status:            status,
		RequestedBy:       testCustomerID,
		RequestedAt:       pgtype.Timestamptz{Time: requested, Valid: true},
	}
}

func TestDiscountApprovalHandler_Approve(t *testing.T) {
	approvalID := uuid.New()

	tests := []struct {
		name           string
		headers        map[string]string
		expectService  bool
		result         *business.ApprovalWithDecisions
		serviceErr     error
		expectedStatus int
	}{
		{
			name:          "approver signs off",
			headers:       workspaceHeaders(true),
			expectService: true,
			result: &business.ApprovalWithDecisions{
				Approval: func() db.DiscountApproval {
					a := sampleApproval(approvalID, business.ApprovalStatusApproved)
					a.ApprovedBy = pgtype.UUID{Bytes: testActorID, Valid: true}
					return a
				}(),
				Decisions: []db.DiscountApprovalDecision{
					{ApprovalID: approvalID, ApproverID: testActorID, DecidedAt: pgtype.Timestamptz{Time: time.Now(), Valid: true}},
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "approver header is required",
			headers:        workspaceHeaders(false),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "already rejected",
			headers:        workspaceHeaders(true),
			expectService:  true,
			serviceErr:     &business.ConflictError{Resource: "discount_approval", Reason: "approval is rejected"},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newApprovalTestRouter(t)
			if tt.expectService {
				svc.EXPECT().
					Approve(gomock.Any(), params.ApproveDiscountParams{
						WorkspaceID: testWorkspaceID,
						ApprovalID:  approvalID,
						ApproverID:  testActorID,
					}).
					Return(tt.result, tt.serviceErr)
			}

			w := doJSON(router, http.MethodPost, "/api/v1/discounts/approvals/"+approvalID.String()+"/approve", nil, tt.headers)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.result != nil {
				var resp responses.DiscountApprovalResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, business.ApprovalStatusApproved, resp.Status)
				assert.Equal(t, "50.000", resp.RequestedAmount)
				assert.Equal(t, "25.00", resp.RequestedPercent)
				require.NotNil(t, resp.ApprovedBy)
				assert.Equal(t, testActorID, *resp.ApprovedBy)
				assert.Len(t, resp.Decisions, 1)
			}
		})
	}
}

func TestDiscountApprovalHandler_Reject(t *testing.T) {
	approvalID := uuid.New()
	svc, router := newApprovalTestRouter(t)

	rejected := sampleApproval(approvalID, business.ApprovalStatusRejected)
	rejected.RejectionReason = pgtype.Text{String: "too generous", Valid: true}
	svc.EXPECT().
		Reject(gomock.Any(), params.RejectDiscountParams{
			WorkspaceID: testWorkspaceID,
			ApprovalID:  approvalID,
			ApproverID:  testActorID,
			Reason:      "too generous",
		}).
		Return(&business.ApprovalWithDecisions{Approval: rejected}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/discounts/approvals/"+approvalID.String()+"/reject",
		map[string]string{"reason": "too generous"}, workspaceHeaders(true))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp responses.DiscountApprovalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, business.ApprovalStatusRejected, resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "too generous", *resp.RejectionReason)
}

func TestDiscountApprovalHandler_ListApprovals(t *testing.T) {
	svc, router := newApprovalTestRouter(t)
	svc.EXPECT().
		ListApprovals(gomock.Any(), params.ListDiscountApprovalsParams{
			WorkspaceID: testWorkspaceID,
			Status:      business.ApprovalStatusPending,
			Limit:       10,
			Offset:      0,
		}).
		Return([]db.DiscountApproval{sampleApproval(uuid.New(), business.ApprovalStatusPending)}, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/discounts/approvals?status=pending", nil, workspaceHeaders(false))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []responses.DiscountApprovalResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "200.000", resp.Data[0].Subtotal)
}

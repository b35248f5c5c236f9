package handlers

import (
	"net/http"

	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/requests"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/responses"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DiscountApprovalHandler exposes the approval gate to approvers
type DiscountApprovalHandler struct {
	common          *CommonServices
	approvalService interfaces.DiscountApprovalService
	logger          *zap.Logger
}

// NewDiscountApprovalHandler creates a handler with interface dependencies
func NewDiscountApprovalHandler(common *CommonServices, approvalService interfaces.DiscountApprovalService, logger *zap.Logger) *DiscountApprovalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscountApprovalHandler{
		common:          common,
		approvalService: approvalService,
		logger:          logger,
	}
}

// ListApprovals godoc
// @Summary List discount approvals
// @Tags discount-approvals
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param status query string false "pending, approved, rejected or expired"
// @Param limit query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {array} responses.DiscountApprovalResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/discounts/approvals [get]
func (h *DiscountApprovalHandler) ListApprovals(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}

	page, err := helpers.ParseListPage(c)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	ctx := c.Request.Context()
	approvals, err := h.approvalService.ListApprovals(ctx, params.ListDiscountApprovalsParams{
		WorkspaceID: workspaceID,
		Status:      c.Query("status"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		handleServiceError(c, err, "Discount approvals not found")
		return
	}

	out := make([]responses.DiscountApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		out = append(out, helpers.ToDiscountApprovalResponse(a, nil, h.common.decimalPlaces(ctx, a.Currency)))
	}
	sendPaginatedList(c, out, len(approvals), page)
}

// GetApproval godoc
// @Summary Get a discount approval
// @Tags discount-approvals
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param id path string true "Approval ID"
// @Success 200 {object} responses.DiscountApprovalResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/discounts/approvals/{id} [get]
func (h *DiscountApprovalHandler) GetApproval(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	approvalID, ok := parsePathUUID(c, "id")
	if !ok {
		return
	}

	approval, err := h.approvalService.GetApproval(c.Request.Context(), workspaceID, approvalID)
	if err != nil {
		handleServiceError(c, err, "Discount approval not found")
		return
	}

	h.sendApproval(c, approval)
}

// ApproveDiscount godoc
// @Summary Approve a pending discount
// @Description Record the caller's sign-off. Approving an already approved discount is a no-op.
// @Tags discount-approvals
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param X-User-ID header string true "Approver"
// @Param id path string true "Approval ID"
// @Success 200 {object} responses.DiscountApprovalResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/discounts/approvals/{id}/approve [post]
func (h *DiscountApprovalHandler) ApproveDiscount(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	approverID, ok := requireActor(c)
	if !ok {
		return
	}
	approvalID, ok := parsePathUUID(c, "id")
	if !ok {
		return
	}

	approval, err := h.approvalService.Approve(c.Request.Context(), params.ApproveDiscountParams{
		WorkspaceID: workspaceID,
		ApprovalID:  approvalID,
		ApproverID:  approverID,
	})
	if err != nil {
		handleServiceError(c, err, "Discount approval not found")
		return
	}

	h.logger.Info("discount approval signed off",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("approval_id", approvalID.String()),
		zap.String("status", approval.Approval.Status))

	h.sendApproval(c, approval)
}

// RejectDiscount godoc
// @Summary Reject a pending discount
// @Tags discount-approvals
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param X-User-ID header string true "Approver"
// @Param id path string true "Approval ID"
// @Param request body requests.RejectDiscountRequest false "Rejection reason"
// @Success 200 {object} responses.DiscountApprovalResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/discounts/approvals/{id}/reject [post]
func (h *DiscountApprovalHandler) RejectDiscount(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	approverID, ok := requireActor(c)
	if !ok {
		return
	}
	approvalID, ok := parsePathUUID(c, "id")
	if !ok {
		return
	}

	var req requests.RejectDiscountRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			sendError(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	approval, err := h.approvalService.Reject(c.Request.Context(), params.RejectDiscountParams{
		WorkspaceID: workspaceID,
		ApprovalID:  approvalID,
		ApproverID:  approverID,
		Reason:      req.Reason,
	})
	if err != nil {
		handleServiceError(c, err, "Discount approval not found")
		return
	}

	h.sendApproval(c, approval)
}

func (h *DiscountApprovalHandler) sendApproval(c *gin.Context, approval *business.ApprovalWithDecisions) {
	places := h.common.decimalPlaces(c.Request.Context(), approval.Approval.Currency)
	sendSuccess(c, http.StatusOK, helpers.ToDiscountApprovalResponse(approval.Approval, approval.Decisions, places))
}

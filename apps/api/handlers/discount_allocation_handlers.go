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
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DiscountAllocationHandler spreads committed discounts over line items
type DiscountAllocationHandler struct {
	common            *CommonServices
	allocationService interfaces.DiscountAllocationService
	logger            *zap.Logger
}

// NewDiscountAllocationHandler creates a handler with interface dependencies
func NewDiscountAllocationHandler(common *CommonServices, allocationService interfaces.DiscountAllocationService, logger *zap.Logger) *DiscountAllocationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscountAllocationHandler{
		common:            common,
		allocationService: allocationService,
		logger:            logger,
	}
}

// AllocateDiscount godoc
// @Summary Allocate a discount over line items
// @Description Split an aggregate discount across line items so the allocated amounts sum exactly to the total
// @Tags discount-allocations
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param request body requests.AllocateDiscountRequest true "Allocation request"
// @Success 201 {object} responses.DiscountAllocationResponse
// @Failure 400 {object} responses.ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/discounts/allocations [post]
func (h *DiscountAllocationHandler) AllocateDiscount(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	actorID, ok := optionalActor(c)
	if !ok {
		return
	}

	var req requests.AllocateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	verr := &business.ValidationError{}
	var approvalID *uuid.UUID
	if req.ApprovalID != nil && *req.ApprovalID != "" {
		id, err := uuid.Parse(*req.ApprovalID)
		if err != nil {
			verr.Add("approval_id", "must be a valid UUID")
		} else {
			approvalID = &id
		}
	}
	ruleIDs := parseUUIDList(verr, "applied_rule_ids", req.AppliedRuleIDs)
	tagTransaction(c, req.TransactionType, req.TransactionID)
	if verr.HasErrors() {
		sendValidationError(c, verr)
		return
	}

	lines := make([]business.AllocationLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, business.AllocationLineInput{LineItemID: l.LineItemID, Amount: l.Amount})
	}

	ctx := c.Request.Context()
	allocation, err := h.allocationService.Allocate(ctx, params.AllocateDiscountParams{
		WorkspaceID:     workspaceID,
		TransactionType: req.TransactionType,
		TransactionID:   req.TransactionID,
		Currency:        req.Currency,
		Method:          req.Method,
		TotalDiscount:   req.TotalDiscount,
		Lines:           lines,
		ApprovalID:      approvalID,
		CreatedBy:       actorID,
		Apply:           req.Apply,
		AppliedRuleIDs:  ruleIDs,
	})
	if err != nil {
		handleServiceError(c, err, "Discount approval not found")
		return
	}

	h.logger.Info("discount allocated",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("allocation_id", allocation.Allocation.ID.String()),
		zap.String("transaction_type", req.TransactionType),
		zap.String("transaction_id", req.TransactionID))

	h.sendAllocation(c, http.StatusCreated, allocation)
}

// GetAllocation godoc
// @Summary Get a discount allocation
// @Tags discount-allocations
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param id path string true "Allocation ID"
// @Success 200 {object} responses.DiscountAllocationResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/discounts/allocations/{id} [get]
func (h *DiscountAllocationHandler) GetAllocation(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	allocationID, ok := parsePathUUID(c, "id")
	if !ok {
		return
	}

	allocation, err := h.allocationService.GetAllocation(c.Request.Context(), workspaceID, allocationID)
	if err != nil {
		handleServiceError(c, err, "Discount allocation not found")
		return
	}

	h.sendAllocation(c, http.StatusOK, allocation)
}

// ListAllocations godoc
// @Summary List allocations for a transaction
// @Description List every allocation recorded against an invoice or POS sale with the applied total
// @Tags discount-allocations
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param transaction_type query string true "invoice or pos_sale"
// @Param transaction_id query string true "Transaction ID"
// @Success 200 {object} responses.AllocationSummaryResponse
// @Failure 400 {object} responses.ValidationErrorResponse
// @Router /api/v1/discounts/allocations [get]
func (h *DiscountAllocationHandler) ListAllocations(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}

	ref := business.TransactionRef{
		Type: c.Query("transaction_type"),
		ID:   c.Query("transaction_id"),
	}
	tagTransaction(c, ref.Type, ref.ID)
	verr := &business.ValidationError{}
	if ref.Type != business.TransactionTypeInvoice && ref.Type != business.TransactionTypePOSSale {
		verr.Add("transaction_type", "must be invoice or pos_sale")
	}
	if ref.ID == "" {
		verr.Add("transaction_id", "is required")
	}
	if verr.HasErrors() {
		sendValidationError(c, verr)
		return
	}

	ctx := c.Request.Context()
	allocations, err := h.allocationService.ListAllocations(ctx, workspaceID, ref)
	if err != nil {
		handleServiceError(c, err, "Discount allocations not found")
		return
	}
	applied, err := h.allocationService.SumAppliedDiscounts(ctx, workspaceID, ref)
	if err != nil {
		handleServiceError(c, err, "Discount allocations not found")
		return
	}

	places := helpers.DefaultDecimalPlaces
	if len(allocations) > 0 {
		places = h.common.decimalPlaces(ctx, allocations[0].Currency)
	}
	out := make([]responses.DiscountAllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, helpers.ToDiscountAllocationResponse(a, nil, places))
	}

	sendSuccess(c, http.StatusOK, responses.AllocationSummaryResponse{
		TransactionType:      ref.Type,
		TransactionID:        ref.ID,
		AppliedDiscountTotal: helpers.FormatAmount(applied, places),
		Allocations:          out,
	})
}

// ApplyAllocation godoc
// @Summary Apply a pending allocation
// @Tags discount-allocations
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param id path string true "Allocation ID"
// @Success 200 {object} responses.DiscountAllocationResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/discounts/allocations/{id}/apply [post]
func (h *DiscountAllocationHandler) ApplyAllocation(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	actorID, ok := optionalActor(c)
	if !ok {
		return
	}
	allocationID, ok := parsePathUUID(c, "id")
	if !ok {
		return
	}

	allocation, err := h.allocationService.ApplyAllocation(c.Request.Context(), params.AllocationTransitionParams{
		WorkspaceID:  workspaceID,
		AllocationID: allocationID,
		ActorID:      actorID,
	})
	if err != nil {
		handleServiceError(c, err, "Discount allocation not found")
		return
	}

	h.sendAllocation(c, http.StatusOK, allocation)
}

// VoidAllocation godoc
// @Summary Void an allocation
// @Description Void a pending or applied allocation. Voiding twice is a conflict.
// @Tags discount-allocations
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param id path string true "Allocation ID"
// @Param request body requests.VoidAllocationRequest true "Void reason"
// @Success 200 {object} responses.DiscountAllocationResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/discounts/allocations/{id}/void [post]
func (h *DiscountAllocationHandler) VoidAllocation(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	actorID, ok := optionalActor(c)
	if !ok {
		return
	}
	allocationID, ok := parsePathUUID(c, "id")
	if !ok {
		return
	}

	var req requests.VoidAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	allocation, err := h.allocationService.VoidAllocation(c.Request.Context(), params.AllocationTransitionParams{
		WorkspaceID:  workspaceID,
		AllocationID: allocationID,
		ActorID:      actorID,
		Reason:       req.Reason,
	})
	if err != nil {
		handleServiceError(c, err, "Discount allocation not found")
		return
	}

	h.sendAllocation(c, http.StatusOK, allocation)
}

func (h *DiscountAllocationHandler) sendAllocation(c *gin.Context, status int, allocation *business.AllocationWithLines) {
	places := h.common.decimalPlaces(c.Request.Context(), allocation.Allocation.Currency)
	sendSuccess(c, status, helpers.ToDiscountAllocationResponse(allocation.Allocation, allocation.Lines, places))
}

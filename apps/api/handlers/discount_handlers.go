package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/middleware"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/requests"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/responses"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	calculationStatusApplied          = "applied"
	calculationStatusCalculated       = "calculated"
	calculationStatusApprovalRequired = "approval_required"
)

// DiscountHandler serves discount discovery, preview and commit
type DiscountHandler struct {
	common       *CommonServices
	engine       interfaces.DiscountEngine
	earlyPayment interfaces.EarlyPaymentService
	logger       *zap.Logger
}

// NewDiscountHandler creates a handler with interface dependencies
func NewDiscountHandler(
	common *CommonServices,
	engine interfaces.DiscountEngine,
	earlyPayment interfaces.EarlyPaymentService,
	logger *zap.Logger,
) *DiscountHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscountHandler{
		common:       common,
		engine:       engine,
		earlyPayment: earlyPayment,
		logger:       logger,
	}
}

// PreviewDiscounts godoc
// @Summary Preview discounts
// @Description Resolve the best discount combination for a cart without committing anything
// @Tags discounts
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param request body requests.PreviewDiscountRequest true "Pricing context"
// @Success 200 {object} responses.CombinationResponse
// @Failure 400 {object} responses.ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/discounts/preview [post]
func (h *DiscountHandler) PreviewDiscounts(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var req requests.PreviewDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctxParams, err := toDiscountContextParams(workspaceID, req.DiscountContextRequest)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}

	result, err := h.engine.PreviewDiscounts(c.Request.Context(), params.PreviewDiscountParams{
		Context:                  ctxParams,
		ApprovalThresholdPercent: req.ApprovalThresholdPercent,
	})
	if err != nil {
		handleServiceError(c, err, "Discount context not found")
		return
	}

	sendSuccess(c, http.StatusOK, helpers.ToCombinationResponse(result))
}

// CalculateDiscount godoc
// @Summary Calculate and commit discounts
// @Description Resolve the best combination and commit it. Returns 202 with the pending approval when the discount needs sign-off.
// @Tags discounts
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param X-User-ID header string true "Requesting user"
// @Param request body requests.CalculateDiscountRequest true "Pricing context"
// @Success 200 {object} responses.CalculateDiscountResponse
// @Success 202 {object} responses.ApprovalRequiredResponse
// @Failure 400 {object} responses.ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/discounts/calculate [post]
func (h *DiscountHandler) CalculateDiscount(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req requests.CalculateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Transaction != nil {
		tagTransaction(c, req.Transaction.Type, req.Transaction.ID)
	}

	ctxParams, err := toDiscountContextParams(workspaceID, req.DiscountContextRequest)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}

	ctx := c.Request.Context()
	outcome, err := h.engine.CalculateFinalPrice(ctx, params.CalculateDiscountParams{
		Context:                  ctxParams,
		ApprovalThresholdPercent: req.ApprovalThresholdPercent,
		AllocationMethod:         req.AllocationMethod,
		RequestedBy:              actorID,
	})

	var required *business.ApprovalRequiredError
	if errors.As(err, &required) {
		h.logger.Info("discount held for approval",
			zap.String("workspace_id", workspaceID.String()),
			zap.String("approval_id", required.Approval.ID.String()),
			zap.String("transaction_id", required.Approval.TransactionID),
			zap.String("correlation_id", middleware.GetCorrelationID(c)))
		places := h.common.decimalPlaces(ctx, req.Currency)
		sendSuccess(c, http.StatusAccepted, responses.ApprovalRequiredResponse{
			Status:        calculationStatusApprovalRequired,
			Approval:      helpers.ToApprovalSummaryResponse(required.Approval, places),
			CorrelationID: middleware.GetCorrelationID(c),
		})
		return
	}
	if err != nil {
		handleServiceError(c, err, "Discount context not found")
		return
	}

	resp := responses.CalculateDiscountResponse{
		Status:     calculationStatusCalculated,
		Result:     helpers.ToCombinationResponse(outcome.Result),
		ApprovalID: outcome.ApprovalID,
	}
	if outcome.Allocation != nil {
		allocation := helpers.ToDiscountAllocationResponse(outcome.Allocation.Allocation, outcome.Allocation.Lines, outcome.Result.DecimalPlaces)
		resp.Status = calculationStatusApplied
		resp.Allocation = &allocation
	}

	sendSuccess(c, http.StatusOK, resp)
}

// GetAvailableDiscounts godoc
// @Summary List available discounts
// @Description List every discount a customer qualifies for on an amount, before combination rules are applied
// @Tags discounts
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param customer_id query string true "Customer ID"
// @Param amount query string true "Amount to price"
// @Param currency query string true "ISO 4217 currency code"
// @Param category_id query string false "Product category of the amount"
// @Success 200 {array} responses.DiscountOfferResponse
// @Failure 400 {object} responses.ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/discounts/available [get]
func (h *DiscountHandler) GetAvailableDiscounts(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}

	verr := &business.ValidationError{}
	customerID, err := uuid.Parse(c.Query("customer_id"))
	if err != nil {
		verr.Add("customer_id", "must be a valid UUID")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(c.Query("amount")))
	if err != nil {
		verr.Add("amount", "must be a decimal amount")
	}
	currency := c.Query("currency")
	if !middleware.CurrencyRegex.MatchString(currency) {
		verr.Add("currency", "must be a 3-letter ISO 4217 code")
	}
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			verr.Add("category_id", "must be a valid UUID")
		} else {
			categoryID = &id
		}
	}
	if verr.HasErrors() {
		sendValidationError(c, verr)
		return
	}

	p := params.DiscountContextParams{
		WorkspaceID: workspaceID,
		CustomerID:  customerID,
		Currency:    currency,
	}
	if categoryID != nil {
		p.LineItems = []business.LineItem{{
			LineItemID: "amount",
			CategoryID: categoryID,
			Quantity:   decimal.NewFromInt(1),
			Amount:     amount,
		}}
	} else {
		p.Subtotal = &amount
	}

	ctx := c.Request.Context()
	offers, err := h.engine.GetAvailableDiscounts(ctx, p)
	if err != nil {
		handleServiceError(c, err, "Customer not found")
		return
	}

	sendList(c, helpers.ToDiscountOfferResponses(offers, h.common.decimalPlaces(ctx, currency)))
}

// ValidatePromoCode godoc
// @Summary Validate a promotional code
// @Description Check a promotional code against a cart and explain why it does not apply
// @Tags discounts
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param request body requests.DiscountContextRequest true "Pricing context with promo_code"
// @Success 200 {object} responses.CodeValidationResponse
// @Failure 400 {object} responses.ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/discounts/validate-code [post]
func (h *DiscountHandler) ValidatePromoCode(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var req requests.DiscountContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.PromoCode) == "" {
		sendValidationError(c, business.NewValidationError("promo_code", "is required"))
		return
	}

	ctxParams, err := toDiscountContextParams(workspaceID, req)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}

	ctx := c.Request.Context()
	result, err := h.engine.ValidatePromoCode(ctx, ctxParams)
	if err != nil {
		handleServiceError(c, err, "Customer not found")
		return
	}

	sendSuccess(c, http.StatusOK, helpers.ToCodeValidationResponse(result, h.common.decimalPlaces(ctx, req.Currency)))
}

// EvaluateEarlyPayment godoc
// @Summary Evaluate early-payment eligibility
// @Description Check whether paying an invoice on the given date earns its early-payment discount
// @Tags discounts
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param request body requests.EvaluateEarlyPaymentRequest true "Invoice and payment date"
// @Success 200 {object} responses.EarlyPaymentResponse
// @Failure 400 {object} responses.ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/discounts/early-payment/evaluate [post]
func (h *DiscountHandler) EvaluateEarlyPayment(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var req requests.EvaluateEarlyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		sendValidationError(c, business.NewValidationError("invoice_id", "must be a valid UUID"))
		return
	}

	result, err := h.earlyPayment.EvaluateEarlyPayment(c.Request.Context(), params.EvaluateEarlyPaymentParams{
		WorkspaceID: workspaceID,
		InvoiceID:   invoiceID,
		PaymentDate: nowOr(req.PaymentDate),
	})
	if err != nil {
		handleServiceError(c, err, "Invoice not found")
		return
	}

	sendSuccess(c, http.StatusOK, helpers.ToEarlyPaymentResponse(result))
}

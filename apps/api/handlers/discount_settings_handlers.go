package handlers

import (
	"net/http"

	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/requests"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DiscountSettingsHandler reads and replaces a workspace's discount policy
type DiscountSettingsHandler struct {
	common          *CommonServices
	settingsService interfaces.DiscountSettingsService
	logger          *zap.Logger
}

// NewDiscountSettingsHandler creates a handler with interface dependencies
func NewDiscountSettingsHandler(common *CommonServices, settingsService interfaces.DiscountSettingsService, logger *zap.Logger) *DiscountSettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscountSettingsHandler{
		common:          common,
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings godoc
// @Summary Get discount settings
// @Description Return the workspace's discount cap and approval policy, with defaults filled in
// @Tags discount-settings
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Success 200 {object} responses.DiscountSettingsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/discounts/settings [get]
func (h *DiscountSettingsHandler) GetSettings(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}

	policy, err := h.settingsService.GetPolicy(c.Request.Context(), workspaceID)
	if err != nil {
		handleServiceError(c, err, "Discount settings not found")
		return
	}

	sendSuccess(c, http.StatusOK, helpers.ToDiscountSettingsResponse(policy))
}

// UpdateSettings godoc
// @Summary Replace discount settings
// @Tags discount-settings
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param settings body requests.UpdateDiscountSettingsRequest true "New policy"
// @Success 200 {object} responses.DiscountSettingsResponse
// @Failure 400 {object} responses.ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/discounts/settings [put]
func (h *DiscountSettingsHandler) UpdateSettings(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	actorID, ok := optionalActor(c)
	if !ok {
		return
	}

	var req requests.UpdateDiscountSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	policy, err := h.settingsService.UpdatePolicy(c.Request.Context(), params.UpdateDiscountSettingsParams{
		WorkspaceID: workspaceID,
		Policy: business.DiscountPolicy{
			MaxDiscountPercent:             req.MaxDiscountPercent,
			ApprovalThresholdPercent:       req.ApprovalThresholdPercent,
			SecondApprovalThresholdPercent: req.SecondApprovalThresholdPercent,
			ApprovalAmountThreshold:        req.ApprovalAmountThreshold,
			ApprovalExpirySeconds:          req.ApprovalExpirySeconds,
			ApprovalExpiryAction:           req.ApprovalExpiryAction,
		},
		UpdatedBy: actorID,
	})
	if err != nil {
		handleServiceError(c, err, "Discount settings not found")
		return
	}

	h.logger.Info("discount settings updated", zap.String("workspace_id", workspaceID.String()))

	sendSuccess(c, http.StatusOK, helpers.ToDiscountSettingsResponse(policy))
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/requests"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/responses"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DiscountRuleHandler manages discount rule definitions
type DiscountRuleHandler struct {
	common      *CommonServices
	ruleService interfaces.DiscountRuleService
	logger      *zap.Logger
}

// NewDiscountRuleHandler creates a handler with interface dependencies
func NewDiscountRuleHandler(common *CommonServices, ruleService interfaces.DiscountRuleService, logger *zap.Logger) *DiscountRuleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscountRuleHandler{
		common:      common,
		ruleService: ruleService,
		logger:      logger,
	}
}

// CreateRule godoc
// @Summary Create a discount rule
// @Description Define a promotional, early-payment, volume or attribute-based discount rule
// @Tags discount-rules
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param rule body requests.CreateDiscountRuleRequest true "Rule definition"
// @Success 201 {object} responses.DiscountRuleResponse
// @Failure 400 {object} responses.ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/discounts/rules [post]
func (h *DiscountRuleHandler) CreateRule(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	actorID, ok := optionalActor(c)
	if !ok {
		return
	}

	var req requests.CreateDiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	verr := &business.ValidationError{}
	categoryIDs := parseUUIDList(verr, "category_ids", req.CategoryIDs)
	serviceIDs := parseUUIDList(verr, "service_ids", req.ServiceIDs)
	if verr.HasErrors() {
		sendValidationError(c, verr)
		return
	}

	tiers := make([]params.VolumeTierParams, 0, len(req.VolumeTiers))
	for _, t := range req.VolumeTiers {
		tiers = append(tiers, params.VolumeTierParams{
			ThresholdType: t.ThresholdType,
			Threshold:     t.Threshold,
			DiscountType:  t.DiscountType,
			DiscountValue: t.DiscountValue,
		})
	}

	rule, createdTiers, err := h.ruleService.CreateRule(c.Request.Context(), params.CreateDiscountRuleParams{
		WorkspaceID:               workspaceID,
		Name:                      req.Name,
		Source:                    req.Source,
		DiscountType:              req.DiscountType,
		DiscountValue:             req.DiscountValue,
		CategoryIDs:               categoryIDs,
		ServiceIDs:                serviceIDs,
		CustomerSegments:          req.CustomerSegments,
		ValidFrom:                 req.ValidFrom,
		ValidUntil:                req.ValidUntil,
		MaxRedemptions:            req.MaxRedemptions,
		MaxRedemptionsPerCustomer: req.MaxRedemptionsPerCustomer,
		StackingPolicy:            req.StackingPolicy,
		Priority:                  req.Priority,
		PromoCode:                 req.PromoCode,
		DiscountDays:              req.DiscountDays,
		Conditions:                req.Conditions,
		PricingMode:               req.PricingMode,
		VolumeTiers:               tiers,
		CreatedBy:                 actorID,
	})
	if err != nil {
		handleServiceError(c, err, "Discount rule not found")
		return
	}

	h.logger.Info("discount rule created",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("rule_id", rule.ID.String()),
		zap.String("source", rule.Source))

	sendSuccess(c, http.StatusCreated, helpers.ToDiscountRuleResponse(*rule, createdTiers))
}

// GetRule godoc
// @Summary Get a discount rule
// @Tags discount-rules
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param id path string true "Rule ID"
// @Success 200 {object} responses.DiscountRuleResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/discounts/rules/{id} [get]
func (h *DiscountRuleHandler) GetRule(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	ruleID, ok := parsePathUUID(c, "id")
	if !ok {
		return
	}

	rule, err := h.ruleService.GetRule(c.Request.Context(), workspaceID, ruleID)
	if err != nil {
		handleServiceError(c, err, "Discount rule not found")
		return
	}

	sendSuccess(c, http.StatusOK, helpers.ToDiscountRuleResponse(*rule, nil))
}

// ListRules godoc
// @Summary List discount rules
// @Tags discount-rules
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param source query string false "Filter by rule source"
// @Param include_inactive query bool false "Include deactivated rules"
// @Param limit query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {array} responses.DiscountRuleResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/discounts/rules [get]
func (h *DiscountRuleHandler) ListRules(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}

	page, err := helpers.ParseListPage(c)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("include_inactive", "false"))

	rules, err := h.ruleService.ListRules(c.Request.Context(), params.ListDiscountRulesParams{
		WorkspaceID:     workspaceID,
		Source:          c.Query("source"),
		IncludeInactive: includeInactive,
		Limit:           page.Limit,
		Offset:          page.Offset,
	})
	if err != nil {
		handleServiceError(c, err, "Discount rules not found")
		return
	}

	out := make([]responses.DiscountRuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, helpers.ToDiscountRuleResponse(r, nil))
	}
	sendPaginatedList(c, out, len(rules), page)
}

// DeactivateRule godoc
// @Summary Deactivate a discount rule
// @Description Stop a rule from being discovered. Past redemptions are kept.
// @Tags discount-rules
// @Produce json
// @Param X-Workspace-ID header string true "Workspace ID"
// @Param id path string true "Rule ID"
// @Success 200 {object} responses.DiscountRuleResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/discounts/rules/{id}/deactivate [post]
func (h *DiscountRuleHandler) DeactivateRule(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	actorID, ok := optionalActor(c)
	if !ok {
		return
	}
	ruleID, ok := parsePathUUID(c, "id")
	if !ok {
		return
	}

	rule, err := h.ruleService.DeactivateRule(c.Request.Context(), workspaceID, ruleID, actorID)
	if err != nil {
		handleServiceError(c, err, "Discount rule not found")
		return
	}

	sendSuccess(c, http.StatusOK, helpers.ToDiscountRuleResponse(*rule, nil))
}

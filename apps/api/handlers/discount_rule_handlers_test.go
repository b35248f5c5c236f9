package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

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

func newRuleTestRouter(t *testing.T) (*mocks.MockDiscountRuleService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockDiscountRuleService(ctrl)

	h := NewDiscountRuleHandler(NewCommonServices(CommonServicesConfig{}), svc, nil)
	r := gin.New()
	r.POST("/api/v1/discounts/rules", h.CreateRule)
	r.GET("/api/v1/discounts/rules", h.ListRules)
	r.GET("/api/v1/discounts/rules/:id", h.GetRule)
	r.POST("/api/v1/discounts/rules/:id/deactivate", h.DeactivateRule)
	return svc, r
}

func sampleRule(id uuid.UUID) db.DiscountRule {
	return db.DiscountRule{
		ID:             id,
		WorkspaceID:    testWorkspaceID,
		Name:           "Spring sale",
		Source:         business.DiscountSourcePromotional,
		DiscountType:   business.DiscountTypePercentage,
		DiscountValue:  decimal.NewFromInt(10),
		StackingPolicy: business.StackingStackable,
		Priority:       5,
		PromoCode:      pgtype.Text{String: "SPRING", Valid: true},
		MaxRedemptions: pgtype.Int4{Int32: 100, Valid: true},
		IsActive:       true,
	}
}

func TestDiscountRuleHandler_CreateRule(t *testing.T) {
	ruleID := uuid.New()
	categoryID := uuid.New()

	t.Run("creates a promotional rule", func(t *testing.T) {
		svc, router := newRuleTestRouter(t)
		svc.EXPECT().
			CreateRule(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p params.CreateDiscountRuleParams) (*db.DiscountRule, []db.DiscountVolumeTier, error) {
				assert.Equal(t, testWorkspaceID, p.WorkspaceID)
				assert.Equal(t, []uuid.UUID{categoryID}, p.CategoryIDs)
				require.NotNil(t, p.CreatedBy)
				assert.Equal(t, testActorID, *p.CreatedBy)
				rule := sampleRule(ruleID)
				rule.CategoryIds = p.CategoryIDs
				return &rule, nil, nil
			})

		body := map[string]interface{}{
			"name":           "Spring sale",
			"source":         "promotional",
			"discount_type":  "percentage",
			"discount_value": "10",
			"category_ids":   []string{categoryID.String()},
			"promo_code":     "SPRING",
		}
		w := doJSON(router, http.MethodPost, "/api/v1/discounts/rules", body, workspaceHeaders(true))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp responses.DiscountRuleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ruleID, resp.ID)
		assert.Equal(t, "discount_rule", resp.Object)
		assert.Equal(t, "10.00", resp.DiscountValue)
		require.NotNil(t, resp.PromoCode)
		assert.Equal(t, "SPRING", *resp.PromoCode)
		require.NotNil(t, resp.MaxRedemptions)
		assert.Equal(t, int32(100), *resp.MaxRedemptions)
		assert.Equal(t, []uuid.UUID{categoryID}, resp.CategoryIDs)
		assert.Equal(t, []string{}, resp.CustomerSegments)
	})

	t.Run("bad category id never reaches the service", func(t *testing.T) {
		_, router := newRuleTestRouter(t)
		body := map[string]interface{}{
			"name":         "Spring sale",
			"source":       "promotional",
			"category_ids": []string{"nope"},
		}
		w := doJSON(router, http.MethodPost, "/api/v1/discounts/rules", body, workspaceHeaders(false))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "category_ids[0]")
	})

	t.Run("duplicate promo code is a conflict", func(t *testing.T) {
		svc, router := newRuleTestRouter(t)
		svc.EXPECT().CreateRule(gomock.Any(), gomock.Any()).
			Return(nil, nil, &business.ConflictError{Resource: "discount_rule", Reason: "promo code SPRING already exists"})

		body := map[string]interface{}{"name": "Spring sale", "source": "promotional", "promo_code": "SPRING"}
		w := doJSON(router, http.MethodPost, "/api/v1/discounts/rules", body, workspaceHeaders(false))
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDiscountRuleHandler_ListAndDeactivate(t *testing.T) {
	ruleID := uuid.New()

	t.Run("list forwards filters and paging", func(t *testing.T) {
		svc, router := newRuleTestRouter(t)
		svc.EXPECT().
			ListRules(gomock.Any(), params.ListDiscountRulesParams{
				WorkspaceID:     testWorkspaceID,
				Source:          business.DiscountSourceVolume,
				IncludeInactive: true,
				Limit:           5,
				Offset:          5,
			}).
			Return([]db.DiscountRule{sampleRule(ruleID)}, nil)

		w := doJSON(router, http.MethodGet, "/api/v1/discounts/rules?source=volume&include_inactive=true&limit=5&page=2", nil, workspaceHeaders(false))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Object  string                           `json:"object"`
			Data    []responses.DiscountRuleResponse `json:"data"`
			HasMore bool                             `json:"has_more"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "list", resp.Object)
		assert.Len(t, resp.Data, 1)
		assert.False(t, resp.HasMore)
	})

	t.Run("deactivate another workspace's rule is not found", func(t *testing.T) {
		svc, router := newRuleTestRouter(t)
		svc.EXPECT().
			DeactivateRule(gomock.Any(), testWorkspaceID, ruleID, nil).
			Return(nil, fmt.Errorf("rule %s: %w", ruleID, business.ErrNotFound))

		w := doJSON(router, http.MethodPost, "/api/v1/discounts/rules/"+ruleID.String()+"/deactivate", nil, workspaceHeaders(false))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Discount rule not found")
	})

	t.Run("invalid rule id", func(t *testing.T) {
		_, router := newRuleTestRouter(t)
		w := doJSON(router, http.MethodGet, "/api/v1/discounts/rules/not-a-uuid", nil, workspaceHeaders(false))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/constants"
	"github.com/ledgerline/ledgerline-api/libs/go/middleware"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/params"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/requests"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
)

// GetWorkspaceID extracts workspace ID from various sources in order of priority:
// 1. Context value set by the workspace middleware
// 2. X-Workspace-ID header
func GetWorkspaceID(c *gin.Context) (uuid.UUID, error) {
	if id, ok := middleware.GetWorkspaceID(c); ok {
		return id, nil
	}

	raw := c.GetHeader(constants.WorkspaceIDHeader)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("workspace ID not found")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("workspace ID not found")
	}
	return id, nil
}

// GetActorID returns the acting user; nil when the request carries none
func GetActorID(c *gin.Context) (*uuid.UUID, error) {
	if id, ok := middleware.GetActorID(c); ok {
		return &id, nil
	}

	raw := c.GetHeader(constants.ActorIDHeader)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// requireWorkspace writes a 400 and returns false when no workspace is present
func requireWorkspace(c *gin.Context) (uuid.UUID, bool) {
	id, err := GetWorkspaceID(c)
	if err != nil {
		sendValidationError(c, business.NewValidationError("workspace_id", "a valid "+constants.WorkspaceIDHeader+" header is required"))
		return uuid.Nil, false
	}
	return id, true
}

// requireActor writes a 400 and returns false when the acting user is missing
func requireActor(c *gin.Context) (uuid.UUID, bool) {
	id, err := GetActorID(c)
	if err != nil || id == nil || *id == uuid.Nil {
		sendValidationError(c, business.NewValidationError("actor_id", "a valid "+constants.ActorIDHeader+" header is required"))
		return uuid.Nil, false
	}
	return *id, true
}

// optionalActor writes a 400 only for a malformed actor header
func optionalActor(c *gin.Context) (*uuid.UUID, bool) {
	id, err := GetActorID(c)
	if err != nil {
		sendValidationError(c, business.NewValidationError("actor_id", "must be a valid UUID"))
		return nil, false
	}
	return id, true
}

// parsePathUUID reads a UUID path parameter, writing a 400 on failure
func parsePathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		sendValidationError(c, business.NewValidationError(name, "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// toDiscountContextParams converts the shared pricing body into service params
func toDiscountContextParams(workspaceID uuid.UUID, req requests.DiscountContextRequest) (params.DiscountContextParams, error) {
	verr := &business.ValidationError{}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		verr.Add("customer_id", "must be a valid UUID")
	}

	p := params.DiscountContextParams{
		WorkspaceID: workspaceID,
		CustomerID:  customerID,
		Currency:    req.Currency,
		Subtotal:    req.Subtotal,
		LineItems:   req.LineItems,
		PromoCode:   req.PromoCode,
	}
	if req.EvaluatedAt != nil {
		p.EvaluatedAt = *req.EvaluatedAt
	}
	if req.Transaction != nil {
		p.Transaction = &business.TransactionRef{Type: req.Transaction.Type, ID: req.Transaction.ID}
	}
	if req.Payment != nil {
		invoiceID, err := uuid.Parse(req.Payment.InvoiceID)
		if err != nil {
			verr.Add("payment.invoice_id", "must be a valid UUID")
		}
		p.Payment = &business.PaymentInfo{
			InvoiceID:   invoiceID,
			InvoiceDate: req.Payment.InvoiceDate,
			PaymentDate: req.Payment.PaymentDate,
		}
	}

	return p, verr.OrNil()
}

// parseUUIDList parses a list of ids, recording the failing index under field
func parseUUIDList(verr *business.ValidationError, field string, raw []string) []uuid.UUID {
	if len(raw) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			verr.Add(fmt.Sprintf("%s[%d]", field, i), "must be a valid UUID")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func nowOr(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now()
	}
	return *t
}

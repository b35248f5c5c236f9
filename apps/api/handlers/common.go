package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/middleware"
	"github.com/ledgerline/ledgerline-api/libs/go/types/api/responses"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommonServices holds common dependencies used across handlers
type CommonServices struct {
	currency interfaces.CurrencyPrecisionResolver
	logger   *zap.Logger
}

// Use types from the centralized packages
type (
	ErrorResponse           = responses.ErrorResponse
	SuccessResponse         = responses.SuccessResponse
	ValidationErrorResponse = responses.ValidationErrorResponse
)

// CommonServicesConfig contains all dependencies needed to create CommonServices
type CommonServicesConfig struct {
	Currency interfaces.CurrencyPrecisionResolver
	Logger   *zap.Logger
}

// NewCommonServices creates a new instance of CommonServices with interface dependencies
func NewCommonServices(config CommonServicesConfig) *CommonServices {
	if config.Logger == nil {
		config.Logger = logger.Log
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &CommonServices{
		currency: config.Currency,
		logger:   config.Logger,
	}
}

// GetLogger returns the logger
func (s *CommonServices) GetLogger() *zap.Logger {
	return s.logger
}

// decimalPlaces resolves the currency's minor units for rendering. Unknown
// currencies fall back to two places; the service layer has already
// rejected them where it matters.
func (s *CommonServices) decimalPlaces(ctx context.Context, currency string) int32 {
	if s == nil || s.currency == nil {
		return helpers.DefaultDecimalPlaces
	}
	places, err := s.currency.DecimalPlaces(ctx, currency)
	if err != nil {
		middleware.LogWithCorrelationID(ctx).Debug("falling back to default precision",
			zap.String("currency", currency),
			zap.Error(err))
		return helpers.DefaultDecimalPlaces
	}
	return places
}

const (
	transactionTypeKey = "discount_transaction_type"
	transactionIDKey   = "discount_transaction_id"
)

// tagTransaction records the invoice or POS sale a request acts on so error
// logs can name it
func tagTransaction(c *gin.Context, txType, txID string) {
	if txID == "" {
		return
	}
	c.Set(transactionTypeKey, txType)
	c.Set(transactionIDKey, txID)
}

// requestLogger carries the request's tenant, correlation and transaction context
func requestLogger(c *gin.Context) *logger.StructuredLogger {
	sl := logger.NewStructuredLogger(logger.ComponentAPI).
		WithCorrelationID(middleware.GetCorrelationID(c)).
		WithField("path", c.Request.URL.Path).
		WithField("method", c.Request.Method)
	if workspaceID, err := GetWorkspaceID(c); err == nil {
		sl = sl.WithWorkspaceID(workspaceID.String())
	}
	if txID := c.GetString(transactionIDKey); txID != "" {
		sl = sl.WithTransaction(c.GetString(transactionTypeKey), txID)
	}
	return sl
}

// sendError is a helper function that combines logging and error response
// It logs the error with the given message and sends a JSON error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	correlationID := middleware.GetCorrelationID(c)

	sl := requestLogger(c).WithField("status", statusCode)
	if statusCode >= http.StatusInternalServerError {
		sl.Error(message, err)
	} else {
		if err != nil {
			sl = sl.WithField("error", err.Error())
		}
		if statusCode == http.StatusConflict {
			sl.Warn(message)
		} else {
			sl.Info(message)
		}
	}

	// Include correlation ID in error response for debugging
	c.JSON(statusCode, ErrorResponse{
		Error:         message,
		CorrelationID: correlationID,
	})
}

// sendValidationError reports rejected fields with a 400
func sendValidationError(c *gin.Context, verr *business.ValidationError) {
	entries := make([]responses.FieldErrorEntry, 0, len(verr.Fields))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		entries = append(entries, responses.FieldErrorEntry{Field: f.Field, Message: f.Message})
		fields = append(fields, f.Field)
	}
	requestLogger(c).
		WithField("status", http.StatusBadRequest).
		WithField("fields", fields).
		Info("Validation failed")

	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:         "Validation failed",
		Fields:        entries,
		CorrelationID: middleware.GetCorrelationID(c),
	})
}

// handleServiceError maps domain errors to HTTP responses. ApprovalRequiredError
// is handled by the calculate endpoint itself and is treated as a conflict here.
func handleServiceError(c *gin.Context, err error, notFoundMsg string) {
	if err == nil {
		return
	}

	var (
		verr        *business.ValidationError
		pendingErr  *business.ApprovalPendingError
		requiredErr *business.ApprovalRequiredError
		conflictErr *business.ConflictError
		consistErr  *business.ConsistencyError
	)

	switch {
	case errors.As(err, &verr):
		sendValidationError(c, verr)
	case errors.As(err, &pendingErr):
		sendError(c, http.StatusConflict, "Discount is awaiting approval", err)
	case errors.As(err, &requiredErr):
		sendError(c, http.StatusConflict, "Discount requires approval", err)
	case errors.As(err, &conflictErr):
		sendError(c, http.StatusConflict, conflictErr.Error(), err)
	case errors.Is(err, business.ErrNotFound):
		sendError(c, http.StatusNotFound, notFoundMsg, err)
	case errors.As(err, &consistErr):
		sendError(c, http.StatusInternalServerError, "Internal consistency error", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		sendError(c, http.StatusServiceUnavailable, "Request cancelled", err)
	default:
		sendError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendList is a helper function that sends a list response
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   items,
	})
}

// sendPaginatedList sends a list page along with its paging window
func sendPaginatedList(c *gin.Context, items interface{}, count int, page helpers.ListPage) {
	c.JSON(http.StatusOK, responses.PaginatedResponse{
		Data:    items,
		Object:  "list",
		HasMore: int32(count) == page.Limit,
		Pagination: responses.Pagination{
			CurrentPage: page.Page,
			PerPage:     page.Limit,
			Offset:      page.Offset,
		},
	})
}
